package storage

import (
	"context"
	"errors"

	"github.com/hongminglow/recipes-be/internal/models"
)

// ErrNotFound indicates a record does not exist.
var ErrNotFound = errors.New("record not found")

// ErrAlreadyExists indicates a uniqueness conflict.
var ErrAlreadyExists = errors.New("record already exists")

// AccountStore captures account persistence needed by the issuer and handlers.
// Implementations enforce email uniqueness and report it as ErrAlreadyExists.
type AccountStore interface {
	CreateAccount(ctx context.Context, account models.Account) (models.Account, error)
	FindAccountByID(ctx context.Context, id string) (models.Account, error)
	FindAccountByEmail(ctx context.Context, email string) (models.Account, error)
	ListAccounts(ctx context.Context) ([]models.Account, error)
	UpdateAccount(ctx context.Context, account models.Account) (models.Account, error)
	DeleteAccount(ctx context.Context, id string) error
}

// RecipeStore captures recipe persistence.
type RecipeStore interface {
	CreateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error)
	FindRecipeByID(ctx context.Context, id string) (models.Recipe, error)
	ListRecipes(ctx context.Context) ([]models.Recipe, error)
	UpdateRecipe(ctx context.Context, id string, patch models.RecipePatch) (models.Recipe, error)
	DeleteRecipe(ctx context.Context, id string) error
}

// Store is the full persistence surface wired into the server.
type Store interface {
	AccountStore
	RecipeStore
	Close()
}
