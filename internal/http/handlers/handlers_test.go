package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/hongminglow/recipes-be/internal/auth"
	"github.com/hongminglow/recipes-be/internal/middleware"
	"github.com/hongminglow/recipes-be/internal/models"
	"github.com/hongminglow/recipes-be/internal/storage"
	"github.com/hongminglow/recipes-be/internal/storage/memory"
	"github.com/hongminglow/recipes-be/internal/validation"
)

type failingRecipes struct {
	storage.RecipeStore
}

func (failingRecipes) ListRecipes(context.Context) ([]models.Recipe, error) {
	return nil, errors.New("connection refused")
}

func newGuard() (*middleware.Guard, *auth.TokenManager) {
	tokens := auth.NewTokenManager("handler-secret", "recipes-test")
	return middleware.NewGuard(tokens, zap.NewNop()), tokens
}

func TestStoreFailureBecomesGeneric500(t *testing.T) {
	guard, _ := newGuard()
	mux := http.NewServeMux()
	NewRecipesHandler(failingRecipes{}, guard, validation.New(), zap.NewNop()).Register(mux)

	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/recipes", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"internal server error"}`, rec.Body.String())
}

func TestRecipeCreateValidation(t *testing.T) {
	guard, tokens := newGuard()
	mux := http.NewServeMux()
	NewRecipesHandler(memory.NewStore(), guard, validation.New(), zap.NewNop()).Register(mux)

	token, err := tokens.Generate(models.Account{ID: "admin-1", Username: "root", IsAdmin: true})
	require.NoError(t, err)

	body := `{"title":"Couscous","category":"Main","author":"Amina","origin":"Morocco","ingredients":[],"steps":["steam"]}`
	req := httptest.NewRequest(http.MethodPost, "/api/recipes", strings.NewReader(body))
	req.Header.Set(middleware.TokenHeader, token)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"\"ingredients\" must contain at least 1 items"}`, rec.Body.String())
}

func TestAccountGetNotFoundForAdmin(t *testing.T) {
	guard, tokens := newGuard()
	mux := http.NewServeMux()
	NewAccountsHandler(memory.NewStore(), guard, validation.New(), zap.NewNop()).Register(mux)

	token, err := tokens.Generate(models.Account{ID: "admin-1", Username: "root", IsAdmin: true})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/api/users/missing", nil)
	req.Header.Set(middleware.TokenHeader, token)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"user not found"}`, rec.Body.String())
}

func TestOversizedBodyRejected(t *testing.T) {
	issuer, err := auth.NewIssuer(memory.NewStore(), auth.NewTokenManager("s", "i"), validation.New(), zap.NewNop())
	require.NoError(t, err)
	mux := http.NewServeMux()
	NewAuthHandler(issuer, zap.NewNop()).Register(mux)

	huge := `{"email":"a@x.com","password":"` + strings.Repeat("p", maxBodyBytes) + `"}`
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/auth/login", strings.NewReader(huge)))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"message":"invalid JSON payload"}`, rec.Body.String())
}

func TestAccountUpdateHashesPasswordAsSent(t *testing.T) {
	guard, tokens := newGuard()
	store := memory.NewStore()
	mux := http.NewServeMux()
	NewAccountsHandler(store, guard, validation.New(), zap.NewNop()).Register(mux)

	account, err := store.CreateAccount(context.Background(), models.Account{Email: "a@x.com", Username: "alice", PasswordHash: "h"})
	require.NoError(t, err)
	token, err := tokens.Generate(account)
	require.NoError(t, err)

	body := `{"email":"a@x.com","username":"alice","password":" newpass1 "}`
	req := httptest.NewRequest(http.MethodPut, "/api/users/"+account.ID, strings.NewReader(body))
	req.Header.Set(middleware.TokenHeader, token)
	rec := httptest.NewRecorder()
	mux.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	stored, err := store.FindAccountByID(context.Background(), account.ID)
	require.NoError(t, err)
	assert.True(t, auth.ComparePassword(stored.PasswordHash, " newpass1 "))
	assert.False(t, auth.ComparePassword(stored.PasswordHash, "newpass1"))
}
