package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/recipes-be/internal/auth"
	"github.com/hongminglow/recipes-be/internal/http/respond"
	"github.com/hongminglow/recipes-be/internal/models/dto"
)

// AuthHandler owns the register/login endpoints.
type AuthHandler struct {
	issuer *auth.Issuer
	logger *zap.Logger
}

// NewAuthHandler constructs the handler.
func NewAuthHandler(issuer *auth.Issuer, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{issuer: issuer, logger: logger}
}

// Register attaches auth routes to the mux.
func (h *AuthHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("POST /api/auth/register", h.handleRegister)
	mux.HandleFunc("POST /api/auth/login", h.handleLogin)
}

func (h *AuthHandler) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session, err := h.issuer.Register(r.Context(), req)
	if err != nil {
		respond.FromError(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusCreated, dto.AuthResponse{Account: session.Account, Token: session.Token})
}

func (h *AuthHandler) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	session, err := h.issuer.Login(r.Context(), req)
	if err != nil {
		respond.FromError(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, dto.AuthResponse{Account: session.Account, Token: session.Token})
}
