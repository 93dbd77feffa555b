package server

import (
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/hongminglow/recipes-be/internal/auth"
	"github.com/hongminglow/recipes-be/internal/config"
	"github.com/hongminglow/recipes-be/internal/http/handlers"
	"github.com/hongminglow/recipes-be/internal/middleware"
	"github.com/hongminglow/recipes-be/internal/storage"
	"github.com/hongminglow/recipes-be/internal/validation"
)

// Server wraps an http.Server with configured routes.
type Server struct {
	inner  *http.Server
	issuer *auth.Issuer
	logger *zap.Logger
}

// Option customizes server construction.
type Option func(*options)

type options struct {
	tokenOpts []auth.TokenOption
}

// WithTokenOptions forwards options to the token manager.
func WithTokenOptions(opts ...auth.TokenOption) Option {
	return func(o *options) {
		o.tokenOpts = append(o.tokenOpts, opts...)
	}
}

// New wires up middleware, routes, and returns a ready server.
func New(cfg config.Config, store storage.Store, logger *zap.Logger, opts ...Option) (*Server, error) {
	var o options
	for _, opt := range opts {
		opt(&o)
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTIssuer, o.tokenOpts...)
	validate := validation.New()
	issuer, err := auth.NewIssuer(store, tokens, validate, logger)
	if err != nil {
		return nil, err
	}
	guard := middleware.NewGuard(tokens, logger)

	mux := http.NewServeMux()
	handlers.NewHealthHandler(time.Now()).Register(mux)
	handlers.NewAuthHandler(issuer, logger).Register(mux)
	handlers.NewAccountsHandler(store, guard, validate, logger).Register(mux)
	handlers.NewRecipesHandler(store, guard, validate, logger).Register(mux)
	mux.HandleFunc("/", handlers.NotFound)

	handler := middleware.CORS(cfg.CORSOrigins, middleware.Logging(logger, middleware.Recover(logger, mux)))

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddress(),
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	return &Server{inner: httpServer, issuer: issuer, logger: logger}, nil
}

// Handler exposes the fully wrapped handler chain.
func (s *Server) Handler() http.Handler {
	return s.inner.Handler
}

// SeedAdmin creates the configured admin account when it does not exist yet.
func (s *Server) SeedAdmin(ctx context.Context, seed config.AdminSeed) error {
	if !seed.Enabled() {
		return nil
	}
	account, err := s.issuer.EnsureAdmin(ctx, seed.Email, seed.Username, seed.Password)
	if err != nil {
		return err
	}
	s.logger.Info("admin account ready", zap.String("account_id", account.ID))
	return nil
}

// Start begins serving HTTP traffic.
func (s *Server) Start() error {
	return s.inner.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.inner.Shutdown(ctx)
}
