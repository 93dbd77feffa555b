package postgres

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jackc/pgx/v5/stdlib"
	"github.com/pressly/goose/v3"

	"github.com/hongminglow/recipes-be/internal/models"
	"github.com/hongminglow/recipes-be/internal/storage"
)

// Ensure Store satisfies the storage.Store interface at compile time.
var _ storage.Store = (*Store)(nil)

//go:embed migrations/*.sql
var migrationFiles embed.FS

const uniqueViolation = "23505"

// Store provides Postgres-backed persistence for accounts and recipes.
type Store struct {
	pool *pgxpool.Pool
}

// NewStore connects to the database and applies pending migrations.
func NewStore(ctx context.Context, databaseURL string) (*Store, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}

	s := &Store{pool: pool}
	if err := s.migrate(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}

func (s *Store) migrate(ctx context.Context) error {
	migrations, err := fs.Sub(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("load migrations: %w", err)
	}
	db := stdlib.OpenDBFromPool(s.pool)
	defer db.Close()

	provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations)
	if err != nil {
		return fmt.Errorf("init migrations: %w", err)
	}
	if _, err := provider.Up(ctx); err != nil {
		return fmt.Errorf("apply migrations: %w", err)
	}
	return nil
}

const accountColumns = `id, email, username, password_hash, is_admin, created_at, updated_at`

// CreateAccount inserts a new account row, assigning an id when absent.
func (s *Store) CreateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	if account.ID == "" {
		account.ID = uuid.NewString()
	}
	query := `
		INSERT INTO accounts (id, email, username, password_hash, is_admin)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + accountColumns
	row := s.pool.QueryRow(ctx, query, account.ID, account.Email, account.Username, account.PasswordHash, account.IsAdmin)
	created, err := scanAccount(row)
	if err != nil {
		return models.Account{}, mapWriteError(err)
	}
	return created, nil
}

// FindAccountByID fetches an account by its id.
func (s *Store) FindAccountByID(ctx context.Context, id string) (models.Account, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id)
	return scanAccount(row)
}

// FindAccountByEmail fetches an account by exact email match.
func (s *Store) FindAccountByEmail(ctx context.Context, email string) (models.Account, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+accountColumns+` FROM accounts WHERE email = $1`, email)
	return scanAccount(row)
}

// ListAccounts returns every account ordered by creation time.
func (s *Store) ListAccounts(ctx context.Context) ([]models.Account, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+accountColumns+` FROM accounts ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	defer rows.Close()

	accounts := []models.Account{}
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, err
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount overwrites email, username and password hash.
func (s *Store) UpdateAccount(ctx context.Context, account models.Account) (models.Account, error) {
	query := `
		UPDATE accounts
		SET email = $2, username = $3, password_hash = $4, updated_at = NOW()
		WHERE id = $1
		RETURNING ` + accountColumns
	row := s.pool.QueryRow(ctx, query, account.ID, account.Email, account.Username, account.PasswordHash)
	updated, err := scanAccount(row)
	if err != nil {
		return models.Account{}, mapWriteError(err)
	}
	return updated, nil
}

// DeleteAccount removes the account row.
func (s *Store) DeleteAccount(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM accounts WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete account: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

const recipeColumns = `id, title, category, author, origin, ingredients, steps, image, created_at, updated_at`

// CreateRecipe inserts a new recipe row, assigning an id when absent.
func (s *Store) CreateRecipe(ctx context.Context, recipe models.Recipe) (models.Recipe, error) {
	if recipe.ID == "" {
		recipe.ID = uuid.NewString()
	}
	query := `
		INSERT INTO recipes (id, title, category, author, origin, ingredients, steps, image)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + recipeColumns
	row := s.pool.QueryRow(ctx, query, recipe.ID, recipe.Title, recipe.Category, recipe.Author,
		recipe.Origin, recipe.Ingredients, recipe.Steps, recipe.Image)
	created, err := scanRecipe(row)
	if err != nil {
		return models.Recipe{}, mapWriteError(err)
	}
	return created, nil
}

func (s *Store) FindRecipeByID(ctx context.Context, id string) (models.Recipe, error) {
	row := s.pool.QueryRow(ctx, `SELECT `+recipeColumns+` FROM recipes WHERE id = $1`, id)
	return scanRecipe(row)
}

func (s *Store) ListRecipes(ctx context.Context) ([]models.Recipe, error) {
	rows, err := s.pool.Query(ctx, `SELECT `+recipeColumns+` FROM recipes ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	defer rows.Close()

	recipes := []models.Recipe{}
	for rows.Next() {
		recipe, err := scanRecipe(rows)
		if err != nil {
			return nil, err
		}
		recipes = append(recipes, recipe)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list recipes: %w", err)
	}
	return recipes, nil
}

// UpdateRecipe applies the set fields of patch; NULL parameters keep the stored value.
func (s *Store) UpdateRecipe(ctx context.Context, id string, patch models.RecipePatch) (models.Recipe, error) {
	query := `
		UPDATE recipes SET
			title = COALESCE($2, title),
			category = COALESCE($3, category),
			author = COALESCE($4, author),
			origin = COALESCE($5, origin),
			ingredients = COALESCE($6, ingredients),
			steps = COALESCE($7, steps),
			image = COALESCE($8, image),
			updated_at = NOW()
		WHERE id = $1
		RETURNING ` + recipeColumns
	row := s.pool.QueryRow(ctx, query, id, patch.Title, patch.Category, patch.Author, patch.Origin,
		patch.Ingredients, patch.Steps, patch.Image)
	return scanRecipe(row)
}

func (s *Store) DeleteRecipe(ctx context.Context, id string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM recipes WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return storage.ErrNotFound
	}
	return nil
}

func scanAccount(row pgx.Row) (models.Account, error) {
	var a models.Account
	if err := row.Scan(&a.ID, &a.Email, &a.Username, &a.PasswordHash, &a.IsAdmin, &a.CreatedAt, &a.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Account{}, storage.ErrNotFound
		}
		return models.Account{}, err
	}
	return a, nil
}

func scanRecipe(row pgx.Row) (models.Recipe, error) {
	var r models.Recipe
	if err := row.Scan(&r.ID, &r.Title, &r.Category, &r.Author, &r.Origin, &r.Ingredients, &r.Steps, &r.Image, &r.CreatedAt, &r.UpdatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return models.Recipe{}, storage.ErrNotFound
		}
		return models.Recipe{}, err
	}
	return r, nil
}

func mapWriteError(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return storage.ErrAlreadyExists
	}
	return err
}
