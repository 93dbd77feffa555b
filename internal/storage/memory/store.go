// Package memory is a map-backed storage implementation for tests and local
// runs without a database.
package memory

import (
	"context"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/hongminglow/recipes-be/internal/models"
	"github.com/hongminglow/recipes-be/internal/storage"
)

var _ storage.Store = (*Store)(nil)

// Store keeps accounts and recipes in memory. The email index plays the role
// of the database unique index, so concurrent duplicate inserts fail.
type Store struct {
	mu sync.RWMutex

	accounts map[string]models.Account
	byEmail  map[string]string
	recipes  map[string]models.Recipe

	now func() time.Time
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{
		accounts: make(map[string]models.Account),
		byEmail:  make(map[string]string),
		recipes:  make(map[string]models.Recipe),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Close is a no-op.
func (s *Store) Close() {}

func (s *Store) CreateAccount(_ context.Context, account models.Account) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, taken := s.byEmail[account.Email]; taken {
		return models.Account{}, storage.ErrAlreadyExists
	}
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	if _, taken := s.accounts[account.ID]; taken {
		return models.Account{}, storage.ErrAlreadyExists
	}
	now := s.now()
	account.CreatedAt, account.UpdatedAt = now, now
	s.accounts[account.ID] = account
	s.byEmail[account.Email] = account.ID
	return account, nil
}

func (s *Store) FindAccountByID(_ context.Context, id string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	account, ok := s.accounts[id]
	if !ok {
		return models.Account{}, storage.ErrNotFound
	}
	return account, nil
}

func (s *Store) FindAccountByEmail(_ context.Context, email string) (models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, ok := s.byEmail[email]
	if !ok {
		return models.Account{}, storage.ErrNotFound
	}
	return s.accounts[id], nil
}

func (s *Store) ListAccounts(_ context.Context) ([]models.Account, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		out = append(out, a)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) UpdateAccount(_ context.Context, account models.Account) (models.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	current, ok := s.accounts[account.ID]
	if !ok {
		return models.Account{}, storage.ErrNotFound
	}
	if owner, taken := s.byEmail[account.Email]; taken && owner != account.ID {
		return models.Account{}, storage.ErrAlreadyExists
	}
	delete(s.byEmail, current.Email)
	current.Email = account.Email
	current.Username = account.Username
	current.PasswordHash = account.PasswordHash
	current.UpdatedAt = s.now()
	s.accounts[current.ID] = current
	s.byEmail[current.Email] = current.ID
	return current, nil
}

func (s *Store) DeleteAccount(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	account, ok := s.accounts[id]
	if !ok {
		return storage.ErrNotFound
	}
	delete(s.accounts, id)
	delete(s.byEmail, account.Email)
	return nil
}

func (s *Store) CreateRecipe(_ context.Context, recipe models.Recipe) (models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if recipe.ID == "" {
		recipe.ID = uuid.NewString()
	}
	if _, taken := s.recipes[recipe.ID]; taken {
		return models.Recipe{}, storage.ErrAlreadyExists
	}
	now := s.now()
	recipe.CreatedAt, recipe.UpdatedAt = now, now
	recipe.Ingredients = slices.Clone(recipe.Ingredients)
	recipe.Steps = slices.Clone(recipe.Steps)
	s.recipes[recipe.ID] = recipe
	return cloneRecipe(recipe), nil
}

func (s *Store) FindRecipeByID(_ context.Context, id string) (models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	recipe, ok := s.recipes[id]
	if !ok {
		return models.Recipe{}, storage.ErrNotFound
	}
	return cloneRecipe(recipe), nil
}

func (s *Store) ListRecipes(_ context.Context) ([]models.Recipe, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Recipe, 0, len(s.recipes))
	for _, r := range s.recipes {
		out = append(out, cloneRecipe(r))
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID < out[j].ID
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (s *Store) UpdateRecipe(_ context.Context, id string, patch models.RecipePatch) (models.Recipe, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	recipe, ok := s.recipes[id]
	if !ok {
		return models.Recipe{}, storage.ErrNotFound
	}
	patch.Apply(&recipe)
	recipe = cloneRecipe(recipe)
	recipe.UpdatedAt = s.now()
	s.recipes[id] = recipe
	return cloneRecipe(recipe), nil
}

func (s *Store) DeleteRecipe(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.recipes[id]; !ok {
		return storage.ErrNotFound
	}
	delete(s.recipes, id)
	return nil
}

func cloneRecipe(r models.Recipe) models.Recipe {
	r.Ingredients = slices.Clone(r.Ingredients)
	r.Steps = slices.Clone(r.Steps)
	return r
}
