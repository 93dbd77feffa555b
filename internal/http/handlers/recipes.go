package handlers

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/recipes-be/internal/http/respond"
	"github.com/hongminglow/recipes-be/internal/middleware"
	"github.com/hongminglow/recipes-be/internal/models/dto"
	"github.com/hongminglow/recipes-be/internal/storage"
	"github.com/hongminglow/recipes-be/internal/validation"
)

const msgRecipeNotFound = "recipe not found"

// RecipesHandler serves recipe routes. Reads are public; every mutation
// requires an admin token.
type RecipesHandler struct {
	store    storage.RecipeStore
	guard    *middleware.Guard
	validate *validation.Validator
	logger   *zap.Logger
}

// NewRecipesHandler constructs the handler.
func NewRecipesHandler(store storage.RecipeStore, guard *middleware.Guard, validate *validation.Validator, logger *zap.Logger) *RecipesHandler {
	return &RecipesHandler{store: store, guard: guard, validate: validate, logger: logger}
}

// Register attaches recipe routes to the mux.
func (h *RecipesHandler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/recipes", h.handleList)
	mux.HandleFunc("GET /api/recipes/{id}", h.handleGet)
	mux.Handle("POST /api/recipes", h.guard.AdminOnly(http.HandlerFunc(h.handleCreate)))
	mux.Handle("PUT /api/recipes/{id}", h.guard.AdminOnly(http.HandlerFunc(h.handleUpdate)))
	mux.Handle("DELETE /api/recipes/{id}", h.guard.AdminOnly(http.HandlerFunc(h.handleDelete)))
}

func (h *RecipesHandler) handleList(w http.ResponseWriter, r *http.Request) {
	recipes, err := h.store.ListRecipes(r.Context())
	if err != nil {
		respond.FromError(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusOK, recipes)
}

func (h *RecipesHandler) handleGet(w http.ResponseWriter, r *http.Request) {
	recipe, err := h.store.FindRecipeByID(r.Context(), r.PathValue("id"))
	if err != nil {
		respond.FromError(w, h.logger, notFoundAs(err, msgRecipeNotFound))
		return
	}
	respond.JSON(w, http.StatusOK, recipe)
}

func (h *RecipesHandler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateRecipeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req = req.Normalized()
	if err := h.validate.Struct(req); err != nil {
		respond.FromError(w, h.logger, err)
		return
	}
	created, err := h.store.CreateRecipe(r.Context(), req.Recipe())
	if err != nil {
		respond.FromError(w, h.logger, err)
		return
	}
	respond.JSON(w, http.StatusCreated, created)
}

func (h *RecipesHandler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateRecipeRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req = req.Normalized()
	if err := h.validate.Struct(req); err != nil {
		respond.FromError(w, h.logger, err)
		return
	}
	updated, err := h.store.UpdateRecipe(r.Context(), r.PathValue("id"), req.Patch())
	if err != nil {
		respond.FromError(w, h.logger, notFoundAs(err, msgRecipeNotFound))
		return
	}
	respond.JSON(w, http.StatusOK, updated)
}

func (h *RecipesHandler) handleDelete(w http.ResponseWriter, r *http.Request) {
	if err := h.store.DeleteRecipe(r.Context(), r.PathValue("id")); err != nil {
		respond.FromError(w, h.logger, notFoundAs(err, msgRecipeNotFound))
		return
	}
	respond.JSON(w, http.StatusOK, dto.MessageResponse{Message: "recipe has been deleted successfuly"})
}
