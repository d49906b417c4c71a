package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/service/auth"
)

// stubResolver implements Resolver with a single accepted token.
// A non-nil err is returned for every token instead.
type stubResolver struct {
	acceptToken string
	user        *domain.User
	err         error
	calls       int
}

func (s *stubResolver) Resolve(ctx context.Context, token string) (*domain.User, error) {
	s.calls++
	if s.err != nil {
		return nil, s.err
	}
	if token == s.acceptToken {
		return s.user, nil
	}
	return nil, auth.ErrUnauthorized
}

func TestAuthenticate(t *testing.T) {
	t.Parallel()

	user := &domain.User{ID: 42, Email: "user@example.com"}

	tests := []struct {
		name         string
		authHeader   string
		wantStatus   int
		wantResolved bool
	}{
		{
			name:         "valid bearer token",
			authHeader:   "Bearer good-token",
			wantStatus:   http.StatusOK,
			wantResolved: true,
		},
		{
			name:         "lowercase scheme accepted",
			authHeader:   "bearer good-token",
			wantStatus:   http.StatusOK,
			wantResolved: true,
		},
		{
			name:       "missing header",
			authHeader: "",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "wrong scheme",
			authHeader: "Basic dXNlcjpwYXNz",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no token after scheme",
			authHeader: "Bearer",
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "rejected token",
			authHeader: "Bearer bad-token",
			wantStatus: http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			resolver := &stubResolver{acceptToken: "good-token", user: user}
			middleware := NewAuthMiddleware(resolver)

			var gotUser *domain.User
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				gotUser, _ = shared.UserFromContext(r.Context())
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodGet, "/tasks/", nil)
			if tc.authHeader != "" {
				req.Header.Set("Authorization", tc.authHeader)
			}
			w := httptest.NewRecorder()

			middleware.Authenticate(next).ServeHTTP(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)

			if tc.wantResolved {
				require.NotNil(t, gotUser)
				assert.Equal(t, user.ID, gotUser.ID)
			} else {
				assert.Nil(t, gotUser)
				assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
			}
		})
	}
}

func TestAuthenticateResolverFault(t *testing.T) {
	t.Parallel()

	// A resolver failure that is not a credential failure (e.g. the user
	// lookup erroring) is an internal fault: 500, no bearer challenge.
	resolver := &stubResolver{err: errors.New("storage unavailable")}
	middleware := NewAuthMiddleware(resolver)

	nextCalled := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
	})

	req := httptest.NewRequest(http.MethodGet, "/tasks/", nil)
	req.Header.Set("Authorization", "Bearer some-token")
	w := httptest.NewRecorder()

	middleware.Authenticate(next).ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Empty(t, w.Header().Get("WWW-Authenticate"))
	assert.False(t, nextCalled)
	assert.NotContains(t, w.Body.String(), "storage unavailable")
}
