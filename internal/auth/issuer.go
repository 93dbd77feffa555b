package auth

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/hongminglow/recipes-be/internal/apperr"
	"github.com/hongminglow/recipes-be/internal/models"
	"github.com/hongminglow/recipes-be/internal/models/dto"
	"github.com/hongminglow/recipes-be/internal/storage"
	"github.com/hongminglow/recipes-be/internal/validation"
)

// Client-facing messages produced by the issuer.
const (
	MsgAlreadyRegistered  = "this user already registred"
	MsgInvalidCredentials = "Invalid Email Or Password"
	MsgPasswordTooLong    = `"password" length must be less than or equal to 72 bytes`
)

// Session is the outcome of a successful register or login.
type Session struct {
	Account models.Account
	Token   string
}

// Issuer validates credentials, owns password hashing and mints tokens.
// Register and Login are the only operations that produce tokens.
type Issuer struct {
	accounts storage.AccountStore
	tokens   *TokenManager
	validate *validation.Validator
	logger   *zap.Logger

	// decoy is compared against when the email is unknown so both login
	// failure paths pay for one bcrypt comparison.
	decoy string
}

// NewIssuer wires the issuer to its collaborators.
func NewIssuer(accounts storage.AccountStore, tokens *TokenManager, validate *validation.Validator, logger *zap.Logger) (*Issuer, error) {
	decoy, err := HashPassword("decoy-password")
	if err != nil {
		return nil, err
	}
	return &Issuer{
		accounts: accounts,
		tokens:   tokens,
		validate: validate,
		logger:   logger,
		decoy:    decoy,
	}, nil
}

// Register creates a non-admin account and returns it with a fresh token.
func (i *Issuer) Register(ctx context.Context, req dto.RegisterRequest) (Session, error) {
	req = req.Normalized()
	if err := i.validate.Struct(req.ForValidation()); err != nil {
		return Session{}, err
	}

	account, err := i.createAccount(ctx, req.Email, req.Username, req.Password, false)
	if err != nil {
		return Session{}, err
	}
	return i.session(account)
}

// Login authenticates by email and password. Unknown email and wrong
// password fail with the same error.
func (i *Issuer) Login(ctx context.Context, req dto.LoginRequest) (Session, error) {
	req = req.Normalized()
	if err := i.validate.Struct(req.ForValidation()); err != nil {
		return Session{}, err
	}

	account, err := i.accounts.FindAccountByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			ComparePassword(i.decoy, req.Password)
			return Session{}, apperr.Authentication(MsgInvalidCredentials)
		}
		return Session{}, fmt.Errorf("find account: %w", err)
	}
	if !ComparePassword(account.PasswordHash, req.Password) {
		return Session{}, apperr.Authentication(MsgInvalidCredentials)
	}
	return i.session(account)
}

// EnsureAdmin creates an admin account for email unless one already exists.
// It does not promote an existing account.
func (i *Issuer) EnsureAdmin(ctx context.Context, email, username, password string) (models.Account, error) {
	req := dto.RegisterRequest{Email: email, Username: username, Password: password}.Normalized()
	if err := i.validate.Struct(req.ForValidation()); err != nil {
		return models.Account{}, err
	}

	existing, err := i.accounts.FindAccountByEmail(ctx, req.Email)
	switch {
	case err == nil:
		if !existing.IsAdmin {
			i.logger.Warn("seed admin email belongs to a non-admin account; leaving it unchanged",
				zap.String("account_id", existing.ID))
		}
		return existing, nil
	case !errors.Is(err, storage.ErrNotFound):
		return models.Account{}, fmt.Errorf("find account: %w", err)
	}
	return i.createAccount(ctx, req.Email, req.Username, req.Password, true)
}

func (i *Issuer) createAccount(ctx context.Context, email, username, password string, admin bool) (models.Account, error) {
	_, err := i.accounts.FindAccountByEmail(ctx, email)
	switch {
	case err == nil:
		return models.Account{}, apperr.Conflict(MsgAlreadyRegistered)
	case !errors.Is(err, storage.ErrNotFound):
		return models.Account{}, fmt.Errorf("find account: %w", err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		if errors.Is(err, ErrPasswordTooLong) {
			return models.Account{}, apperr.Validation(MsgPasswordTooLong)
		}
		return models.Account{}, err
	}

	created, err := i.accounts.CreateAccount(ctx, models.Account{
		Email:        email,
		Username:     username,
		PasswordHash: hash,
		IsAdmin:      admin,
	})
	if err != nil {
		if errors.Is(err, storage.ErrAlreadyExists) {
			return models.Account{}, apperr.Conflict(MsgAlreadyRegistered)
		}
		return models.Account{}, fmt.Errorf("create account: %w", err)
	}
	i.logger.Info("account registered", zap.String("account_id", created.ID), zap.String("role", created.Role()))
	return created, nil
}

func (i *Issuer) session(account models.Account) (Session, error) {
	token, err := i.tokens.Generate(account)
	if err != nil {
		return Session{}, err
	}
	return Session{Account: account, Token: token}, nil
}
