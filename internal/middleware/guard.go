package middleware

import (
	"context"
	"net/http"

	"go.uber.org/zap"

	"github.com/hongminglow/recipes-be/internal/auth"
	"github.com/hongminglow/recipes-be/internal/http/respond"
)

// TokenHeader carries the raw signed token on every protected request.
const TokenHeader = "token"

// Response messages written by the guard.
const (
	MsgNoToken    = "No token provided"
	MsgNotAllowed = "You are not allowed"
	MsgOnlyAdmin  = "You are not allowed, only admin allowed"
)

const (
	defaultIDParam   = "id"
	claimsContextKey = contextKey("claims")
)

type contextKey string

// ClaimsFromContext returns the claims attached by an Authenticated guard.
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsContextKey).(*auth.Claims)
	return claims, ok && claims != nil
}

// WithClaims returns a copy of ctx carrying claims.
func WithClaims(ctx context.Context, claims *auth.Claims) context.Context {
	return context.WithValue(ctx, claimsContextKey, claims)
}

// Guard enforces token-based access policies in front of handlers.
//
// Every policy fails closed. A missing token and a token that does not verify
// for any reason produce the same 401 body; which check failed is only logged.
type Guard struct {
	tokens *auth.TokenManager
	logger *zap.Logger
}

// NewGuard builds a guard verifying tokens with the given manager.
func NewGuard(tokens *auth.TokenManager, logger *zap.Logger) *Guard {
	return &Guard{tokens: tokens, logger: logger}
}

// Authenticated admits requests with a present, well-formed, unexpired and
// correctly signed token, attaching its claims to the request context.
func (g *Guard) Authenticated(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := g.verify(w, r)
		if !ok {
			return
		}
		next.ServeHTTP(w, r.WithContext(WithClaims(r.Context(), claims)))
	})
}

// SelfOrAdmin admits authenticated requests whose token subject equals the
// path parameter param, or whose token carries the admin flag. The comparison
// is exact string equality.
func (g *Guard) SelfOrAdmin(param string, next http.Handler) http.Handler {
	if param == "" {
		param = defaultIDParam
	}
	return g.Authenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		if claims.ID == r.PathValue(param) || claims.IsAdmin {
			next.ServeHTTP(w, r)
			return
		}
		g.logger.Info("access denied",
			zap.String("policy", "self_or_admin"),
			zap.String("account_id", claims.ID),
			zap.String("path", r.URL.Path),
		)
		respond.Error(w, http.StatusForbidden, MsgNotAllowed)
	}))
}

// AdminOnly admits authenticated requests whose token carries the admin flag.
func (g *Guard) AdminOnly(next http.Handler) http.Handler {
	return g.Authenticated(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, _ := ClaimsFromContext(r.Context())
		if claims.IsAdmin {
			next.ServeHTTP(w, r)
			return
		}
		g.logger.Info("access denied",
			zap.String("policy", "admin_only"),
			zap.String("account_id", claims.ID),
			zap.String("path", r.URL.Path),
		)
		respond.Error(w, http.StatusForbidden, MsgOnlyAdmin)
	}))
}

func (g *Guard) verify(w http.ResponseWriter, r *http.Request) (*auth.Claims, bool) {
	raw := r.Header.Get(TokenHeader)
	if raw == "" {
		respond.Error(w, http.StatusUnauthorized, MsgNoToken)
		return nil, false
	}
	claims, err := g.tokens.Parse(raw)
	if err != nil {
		g.logger.Debug("token rejected", zap.Error(err), zap.String("path", r.URL.Path))
		respond.Error(w, http.StatusUnauthorized, MsgNoToken)
		return nil, false
	}
	return claims, true
}
