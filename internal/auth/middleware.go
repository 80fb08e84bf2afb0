package auth

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/s-urunov-dev/bookstore/internal/httpapi"
)

// AccountChecker reports whether a user account is still allowed to act.
// Blocked users fail this check even with a syntactically valid token.
type AccountChecker interface {
	IsActive(ctx context.Context, userID string) (bool, error)
}

// Middleware guards routes with bearer-token authentication.
type Middleware struct {
	issuer   *TokenIssuer
	accounts AccountChecker
}

// NewMiddleware constructs authentication middleware.
func NewMiddleware(issuer *TokenIssuer, accounts AccountChecker) *Middleware {
	return &Middleware{issuer: issuer, accounts: accounts}
}

// RequireAuth rejects requests without a valid access token for an active
// user, and places the caller's Identity on the request context.
func (m *Middleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			httpapi.WriteError(w, http.StatusUnauthorized, "missing or malformed Authorization header")
			return
		}

		claims, err := m.issuer.VerifyAccess(token)
		if err != nil {
			if errors.Is(err, ErrTokenExpired) {
				httpapi.WriteError(w, http.StatusUnauthorized, "token expired")
				return
			}
			httpapi.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}

		active, err := m.accounts.IsActive(r.Context(), claims.Subject)
		if err != nil {
			httpapi.WriteError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		if !active {
			httpapi.WriteError(w, http.StatusUnauthorized, "account is blocked")
			return
		}

		identity := Identity{
			UserID:   claims.Subject,
			Username: claims.Username,
			Role:     claims.Role,
		}

		next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), identity)))
	})
}

// RequireAdmin is RequireAuth plus an admin role check.
func (m *Middleware) RequireAdmin(next http.Handler) http.Handler {
	return m.RequireAuth(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		identity, ok := IdentityFrom(r.Context())
		if !ok || !identity.IsAdmin() {
			httpapi.WriteError(w, http.StatusForbidden, "admin role required")
			return
		}
		next.ServeHTTP(w, r)
	}))
}

func bearerToken(r *http.Request) string {
	header := r.Header.Get("Authorization")
	if header == "" {
		return ""
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}
