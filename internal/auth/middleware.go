package auth

import (
	"context"
	"net/http"
	"strings"

	"github.com/karanns19/task-manager/internal/api/respond"
	"github.com/karanns19/task-manager/internal/apperr"
)

type contextKey string

// claimsKey is the context key for the authenticated user's claims.
const claimsKey = contextKey("userClaims")

// ClaimsFromContext returns the claims attached by the middleware.
func ClaimsFromContext(ctx context.Context) (*Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*Claims)
	return claims, ok
}

// Middleware creates the access-control middleware for protected routes.
// Identity is trusted from the token claims for the request's lifetime; the
// credential store is not re-queried.
func (m *Manager) Middleware() func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				respond.Error(w, apperr.MissingToken())
				return
			}

			scheme, token, found := strings.Cut(header, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
				respond.Error(w, apperr.InvalidTokenFormat())
				return
			}

			claims, err := m.Validate(strings.TrimSpace(token))
			if err != nil {
				respond.Error(w, err)
				return
			}
			if claims.TokenType != TokenTypeAccess {
				respond.Error(w, apperr.InvalidToken())
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
