package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hongminglow/recipes-be/internal/auth"
	"github.com/hongminglow/recipes-be/internal/config"
	"github.com/hongminglow/recipes-be/internal/models"
	"github.com/hongminglow/recipes-be/internal/storage/memory"
)

type apiClient struct {
	t  *testing.T
	ts *httptest.Server
}

func newTestServer(t *testing.T) (*apiClient, *Server, *memory.Store) {
	t.Helper()
	cfg := config.Config{
		Port:          "0",
		StorageDriver: config.DriverMemory,
		JWTSecret:     "server-test-secret",
		JWTIssuer:     "recipes-test",
		CORSOrigins:   []string{"*"},
	}
	store := memory.NewStore()
	srv, err := New(cfg, store, zap.NewNop())
	require.NoError(t, err)
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return &apiClient{t: t, ts: ts}, srv, store
}

func (c *apiClient) do(method, path, token string, body any) (int, map[string]any) {
	c.t.Helper()
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(c.t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}
	req, err := http.NewRequest(method, c.ts.URL+path, reader)
	require.NoError(c.t, err)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("token", token)
	}
	resp, err := http.DefaultClient.Do(req)
	require.NoError(c.t, err)
	defer resp.Body.Close()

	var out map[string]any
	_ = json.NewDecoder(resp.Body).Decode(&out)
	return resp.StatusCode, out
}

func TestRegisterLoginOverHTTP(t *testing.T) {
	c, _, _ := newTestServer(t)

	status, body := c.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "a@x.com", "username": "alice", "password": "pass1234",
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "alice", body["username"])
	assert.Equal(t, false, body["isAdmin"])
	assert.NotContains(t, body, "password")
	assert.NotContains(t, body, "PasswordHash")
	require.NotEmpty(t, body["token"])
	require.NotEmpty(t, body["_id"])

	status, body = c.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "a@x.com", "username": "alice", "password": "pass1234",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, map[string]any{"message": "this user already registred"}, body)

	status, wrongPassword := c.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "a@x.com", "password": "wrongpass",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, map[string]any{"message": "Invalid Email Or Password"}, wrongPassword)

	status, noAccount := c.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "ghost@x.com", "password": "pass1234",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, wrongPassword, noAccount)

	status, body = c.do(http.MethodPost, "/api/auth/login", "", map[string]any{
		"email": "a@x.com", "password": "pass1234",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.NotEmpty(t, body["token"])
}

func TestRegisterIgnoresClientAdminFlag(t *testing.T) {
	c, _, _ := newTestServer(t)

	status, body := c.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "sneaky@x.com", "username": "sneaky", "password": "pass1234", "isAdmin": true,
	})
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, false, body["isAdmin"])

	status, _ = c.do(http.MethodGet, "/api/users", body["token"].(string), nil)
	assert.Equal(t, http.StatusForbidden, status)
}

func TestValidationAndMalformedBodies(t *testing.T) {
	c, _, _ := newTestServer(t)

	status, body := c.do(http.MethodPost, "/api/auth/register", "", map[string]any{
		"email": "a@x.com", "username": "al ice", "password": "pass1234",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, `"username" must only contain alpha-numeric characters`, body["message"])

	req, err := http.NewRequest(http.MethodPost, c.ts.URL+"/api/auth/login", bytes.NewBufferString("{"))
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestAccountRoutesEnforceGuards(t *testing.T) {
	c, srv, _ := newTestServer(t)
	require.NoError(t, srv.SeedAdmin(context.Background(), config.AdminSeed{
		Email: "root@x.com", Username: "root", Password: "rootpass",
	}))

	_, alice := c.do(http.MethodPost, "/api/auth/register", "", map[string]any{"email": "a@x.com", "username": "alice", "password": "pass1234"})
	_, bob := c.do(http.MethodPost, "/api/auth/register", "", map[string]any{"email": "b@x.com", "username": "bob", "password": "pass1234"})
	_, admin := c.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "root@x.com", "password": "rootpass"})
	aliceID, aliceToken := alice["_id"].(string), alice["token"].(string)
	bobID := bob["_id"].(string)
	adminToken := admin["token"].(string)

	status, _ := c.do(http.MethodGet, "/api/users/"+aliceID, "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, body := c.do(http.MethodGet, "/api/users/"+aliceID, "garbage", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "No token provided", body["message"])

	status, body = c.do(http.MethodGet, "/api/users/"+aliceID, aliceToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice", body["username"])

	status, body = c.do(http.MethodGet, "/api/users/"+bobID, aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "You are not allowed", body["message"])

	status, _ = c.do(http.MethodGet, "/api/users/"+bobID, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)

	status, body = c.do(http.MethodGet, "/api/users", aliceToken, nil)
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "You are not allowed, only admin allowed", body["message"])

	status, body = c.do(http.MethodPut, "/api/users/"+aliceID, aliceToken, map[string]any{
		"email": "b@x.com", "username": "alice", "password": "newpass1",
	})
	assert.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "this user already registred", body["message"])

	status, body = c.do(http.MethodPut, "/api/users/"+aliceID, aliceToken, map[string]any{
		"email": "alice@x.com", "username": "alice2", "password": "newpass1",
	})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "alice2", body["username"])

	status, _ = c.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "alice@x.com", "password": "newpass1"})
	assert.Equal(t, http.StatusOK, status)

	status, body = c.do(http.MethodDelete, "/api/users/"+bobID, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "user has been deleted successfully", body["message"])

	status, body = c.do(http.MethodGet, "/api/users/"+bobID, adminToken, nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "user not found", body["message"])
}

func TestRecipeRoutes(t *testing.T) {
	c, srv, _ := newTestServer(t)
	require.NoError(t, srv.SeedAdmin(context.Background(), config.AdminSeed{
		Email: "root@x.com", Username: "root", Password: "rootpass",
	}))
	_, admin := c.do(http.MethodPost, "/api/auth/login", "", map[string]any{"email": "root@x.com", "password": "rootpass"})
	_, member := c.do(http.MethodPost, "/api/auth/register", "", map[string]any{"email": "a@x.com", "username": "alice", "password": "pass1234"})
	adminToken, memberToken := admin["token"].(string), member["token"].(string)

	recipe := map[string]any{
		"title": "Couscous", "category": "Main", "author": "Amina", "origin": "Morocco",
		"ingredients": []string{"semolina", "chickpeas"}, "steps": []string{"steam"},
	}

	status, _ := c.do(http.MethodPost, "/api/recipes", "", recipe)
	assert.Equal(t, http.StatusUnauthorized, status)
	status, _ = c.do(http.MethodPost, "/api/recipes", memberToken, recipe)
	assert.Equal(t, http.StatusForbidden, status)

	status, created := c.do(http.MethodPost, "/api/recipes", adminToken, recipe)
	require.Equal(t, http.StatusCreated, status)
	assert.Equal(t, "default-image.png", created["image"])
	id := created["_id"].(string)

	status, body := c.do(http.MethodGet, "/api/recipes/"+id, "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Couscous", body["title"])

	status, body = c.do(http.MethodPut, "/api/recipes/"+id, adminToken, map[string]any{"title": "Royal couscous"})
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Royal couscous", body["title"])
	assert.Equal(t, "Main", body["category"])

	status, _ = c.do(http.MethodPut, "/api/recipes/missing", adminToken, map[string]any{"title": "Nothing"})
	assert.Equal(t, http.StatusNotFound, status)

	status, body = c.do(http.MethodDelete, "/api/recipes/"+id, adminToken, nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "recipe has been deleted successfuly", body["message"])

	status, body = c.do(http.MethodGet, "/api/recipes/"+id, "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "recipe not found", body["message"])
}

func TestUnknownRouteAndHealth(t *testing.T) {
	c, _, _ := newTestServer(t)

	status, body := c.do(http.MethodGet, "/api/nothing", "", nil)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Not Found - /api/nothing", body["message"])

	status, body = c.do(http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, status)
	assert.Equal(t, "ok", body["status"])
}

func TestTokenFromAnotherServerIsRejected(t *testing.T) {
	c, _, _ := newTestServer(t)
	foreign, err := auth.NewTokenManager("another-secret", "recipes-test").Generate(models.Account{ID: "x", Username: "x"})
	require.NoError(t, err)

	status, body := c.do(http.MethodGet, "/api/users/x", foreign, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "No token provided", body["message"])
}
