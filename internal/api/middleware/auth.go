package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// Resolver turns a bearer token into the authenticated user.
// Implemented by auth.IdentityResolver.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*domain.User, error)
}

// AuthMiddleware provides bearer-token authentication for routes.
type AuthMiddleware struct {
	resolver Resolver
}

// NewAuthMiddleware creates a new AuthMiddleware with the given dependencies.
func NewAuthMiddleware(resolver Resolver) *AuthMiddleware {
	return &AuthMiddleware{
		resolver: resolver,
	}
}

// Authenticate validates the Authorization header's bearer token,
// resolves it to a user, and adds the user to the request context.
// Credential failures answer 401 with a bearer challenge and never
// distinguish a bad token from a deleted user; resolver faults that are
// not credential failures (e.g. the user lookup erroring) answer 500.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			unauthorized(w, r, "Not authenticated")
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			unauthorized(w, r, "Invalid authorization header format")
			return
		}

		user, err := m.resolver.Resolve(r.Context(), parts[1])
		if err != nil {
			// Only credential failures get 401; a failed user lookup is
			// an internal fault, not a bad token.
			if errors.Is(err, auth.ErrUnauthorized) {
				unauthorized(w, r, "Could not validate credentials")
				return
			}
			shared.RespondWithErrorAndLog(w, r, http.StatusInternalServerError,
				"An unexpected error occurred", err)
			return
		}

		ctx := shared.WithUser(r.Context(), user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// unauthorized writes a 401 with the bearer challenge header required by
// RFC 6750.
func unauthorized(w http.ResponseWriter, r *http.Request, message string) {
	w.Header().Set("WWW-Authenticate", "Bearer")
	shared.RespondWithError(w, r, http.StatusUnauthorized, message)
}
