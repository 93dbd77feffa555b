package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
)

const (
	DriverPostgres = "postgres"
	DriverMemory   = "memory"

	EnvDevelopment = "development"
	EnvProduction  = "production"
)

// Config holds runtime configuration sourced from env vars.
type Config struct {
	Env           string
	Port          string
	StorageDriver string
	DatabaseURL   string
	JWTSecret     string
	JWTIssuer     string
	CORSOrigins   []string
	Admin         AdminSeed
}

// AdminSeed describes the optional admin account created at startup.
type AdminSeed struct {
	Email    string
	Username string
	Password string
}

// Enabled reports whether an admin account should be seeded.
func (a AdminSeed) Enabled() bool {
	return a.Email != ""
}

// Load reads configuration from the environment and performs minimal validation.
func Load() (Config, error) {
	cfg := Config{
		Env:           strings.ToLower(fallback(os.Getenv("APP_ENV"), EnvDevelopment)),
		Port:          fallback(os.Getenv("PORT"), "3030"),
		StorageDriver: strings.ToLower(fallback(os.Getenv("STORAGE_DRIVER"), DriverPostgres)),
		DatabaseURL:   strings.TrimSpace(os.Getenv("DATABASE_URL")),
		JWTSecret:     strings.TrimSpace(os.Getenv("JWT_SECRET_KEY")),
		JWTIssuer:     fallback(os.Getenv("JWT_ISSUER"), "recipes-backend"),
		CORSOrigins:   parseCSV(fallback(os.Getenv("CORS_ALLOWED_ORIGINS"), "*")),
		Admin: AdminSeed{
			Email:    strings.TrimSpace(os.Getenv("ADMIN_EMAIL")),
			Username: fallback(os.Getenv("ADMIN_USERNAME"), "admin"),
			Password: strings.TrimSpace(os.Getenv("ADMIN_PASSWORD")),
		},
	}

	switch cfg.StorageDriver {
	case DriverPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("DATABASE_URL is required")
		}
	case DriverMemory:
	default:
		return Config{}, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}
	if cfg.JWTSecret == "" {
		return Config{}, errors.New("JWT_SECRET_KEY is required")
	}
	if cfg.Admin.Enabled() && cfg.Admin.Password == "" {
		return Config{}, errors.New("ADMIN_PASSWORD is required when ADMIN_EMAIL is set")
	}

	return cfg, nil
}

// HTTPAddress returns the host:port pair for the HTTP server to bind to.
func (c Config) HTTPAddress() string {
	return fmt.Sprintf(":%s", c.Port)
}

// Production reports whether the service runs with production settings.
func (c Config) Production() bool {
	return c.Env == EnvProduction
}

func fallback(value, def string) string {
	if strings.TrimSpace(value) == "" {
		return def
	}
	return strings.TrimSpace(value)
}

func parseCSV(input string) []string {
	parts := strings.Split(input, ",")
	var out []string
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			out = append(out, trimmed)
		}
	}
	if len(out) == 0 {
		return []string{"*"}
	}
	return out
}
