package handlers

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/recipes-be/internal/apperr"
	"github.com/hongminglow/recipes-be/internal/auth"
	"github.com/hongminglow/recipes-be/internal/http/respond"
	"github.com/hongminglow/recipes-be/internal/middleware"
	"github.com/hongminglow/recipes-be/internal/models"
	"github.com/hongminglow/recipes-be/internal/models/dto"
	"github.com/hongminglow/recipes-be/internal/storage"
	"github.com/hongminglow/recipes-be/internal/validation"
)

const msgUserNotFound = "user not found"

// AccountsHandler serves account profile routes. Listing is admin-only; the
// per-account routes admit the account itself or an admin.
type AccountsHandler struct {
	store    storage.AccountStore
	guard    *middleware.Guard
	validate *validation.Validator
	logger   *zap.Logger
}

// NewAccountsHandler constructs the handler.
func NewAccountsHandler(store storage.AccountStore, guard *middleware.Guard, validate *validation.Validator, logger *zap.Logger) *AccountsHandler {
	return &AccountsHandler{store: store, guard: guard, validate: validate, logger: logger}
}

// Register attaches account routes to the mux.
func (h *AccountsHandler) Register(mux *http.ServeMux) {
	mux.Handle("GET /api/users", h.guard.AdminOnly(http.HandlerFunc(h.handleList)))
	mux.Handle("GET /api/users/{id}", h.guard.SelfOrAdmin("id", http.HandlerFunc(h.handleGet)))
	mux.Handle("PUT /api/users/{id}", h.guard.SelfOrAdmin("id", http.HandlerFunc(h.handleUpdate)))
	mux.Handle("DELETE /api/users/{id}", h.guard.SelfOrAdmin("id", http.HandlerFunc(h.handleDelete)))
}

func (h *AccountsHandler) handleList(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.store.ListAccounts(r.Context())
	if err != nil {
		respond.FromError(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, accounts)
}

func (h *AccountsHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	account, err := h.store.FindAccountByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.FromError(w, h.logger, notFoundAs(err, msgUserNotFound))
		return
	}
	respond.JSON(w, http.StatusOK, account)
}

func (h *AccountsHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateAccountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req = req.Normalized()
	if err := h.validate.Struct(req.ForValidation()); err != nil {
		respond.FromError(w, h.logger, err)
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			err = apperr.Validation(auth.MsgPasswordTooLong)
		}
		respond.FromError(w, h.logger, err)
		return
	}

	updated, err := h.store.UpdateAccount(r.Context(), models.Account{
		ID:           r.PathValue("id"),
		Email:        req.Email,
		Username:     req.Username,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			err = apperr.Conflict(auth.MsgAlreadyRegistered)
		}
		respond.FromError(w, h.logger, notFoundAs(err, msgUserNotFound))
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

func (h *AccountsHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.store.DeleteAccount(r.Context(), id); err != nil {
		respond.FromError(w, h.logger, notFoundAs(err, msgUserNotFound))
		return
	}
	if claims, ok := middleware.ClaimsFromContext(r.Context()); ok {
		h.logger.Info("account deleted", zap.String("account_id", id), zap.String("by", claims.ID))
	}
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "user has been deleted successfully"})
}

// notFoundAs turns storage.ErrNotFound into a client-facing 404.
func notFoundAs(err error, message string) error {
	if errors.Is(err, storage.ErrNotFound) {
		return apperr.NotFound(message)
	}
	return err
}
