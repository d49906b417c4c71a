package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taskdeck/taskdeck-api/internal/api/shared"
	"github.com/taskdeck/taskdeck-api/internal/domain"
	"github.com/taskdeck/taskdeck-api/internal/mocks"
)

func newTestAuthHandler(userStore *mocks.MockUserStore, verifierSucceeds bool) *AuthHandler {
	return NewAuthHandler(
		userStore,
		&mocks.MockJWTService{Token: "test-token"},
		&mocks.MockPasswordHasher{},
		&mocks.MockPasswordVerifier{ShouldSucceed: verifierSucceeds},
	)
}

func TestRegister(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		payload    map[string]interface{}
		wantStatus int
	}{
		{
			name: "valid registration",
			payload: map[string]interface{}{
				"email":    "test@example.com",
				"password": "password1234567",
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "invalid email",
			payload: map[string]interface{}{
				"email":    "invalid-email",
				"password": "password1234567",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "password too short",
			payload: map[string]interface{}{
				"email":    "test@example.com",
				"password": "short",
			},
			wantStatus: http.StatusBadRequest,
		},
		{
			name: "missing password",
			payload: map[string]interface{}{
				"email": "test@example.com",
			},
			wantStatus: http.StatusBadRequest,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			handler := newTestAuthHandler(mocks.NewMockUserStore(), true)

			body, err := json.Marshal(tc.payload)
			require.NoError(t, err)

			req := httptest.NewRequest(http.MethodPost, "/register/", bytes.NewReader(body))
			req.Header.Set("Content-Type", "application/json")
			w := httptest.NewRecorder()

			handler.Register(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)

			if tc.wantStatus == http.StatusOK {
				var resp UserResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "test@example.com", resp.Email)
				assert.NotZero(t, resp.ID)
				assert.NotContains(t, w.Body.String(), "password")
			}
		})
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	t.Parallel()

	userStore := mocks.NewMockUserStore()
	handler := newTestAuthHandler(userStore, true)

	register := func() *httptest.ResponseRecorder {
		body := `{"email":"dup@example.com","password":"password1234567"}`
		req := httptest.NewRequest(http.MethodPost, "/register/", strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		handler.Register(w, req)
		return w
	}

	first := register()
	require.Equal(t, http.StatusOK, first.Code)

	second := register()
	assert.Equal(t, http.StatusBadRequest, second.Code)

	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(second.Body.Bytes(), &resp))
	assert.Equal(t, "Email already registered", resp.Error)
}

func TestToken(t *testing.T) {
	t.Parallel()

	seedUser := func(store *mocks.MockUserStore) {
		user, err := domain.NewUser("test@example.com", "hashed:password1234567")
		require.NoError(t, err)
		require.NoError(t, store.Create(context.Background(), user))
	}

	tests := []struct {
		name            string
		username        string
		password        string
		verifierSucceed bool
		wantStatus      int
	}{
		{
			name:            "valid credentials",
			username:        "test@example.com",
			password:        "password1234567",
			verifierSucceed: true,
			wantStatus:      http.StatusOK,
		},
		{
			name:            "wrong password",
			username:        "test@example.com",
			password:        "wrong-password",
			verifierSucceed: false,
			wantStatus:      http.StatusUnauthorized,
		},
		{
			name:            "unknown email",
			username:        "nobody@example.com",
			password:        "password1234567",
			verifierSucceed: true,
			wantStatus:      http.StatusUnauthorized,
		},
		{
			name:            "missing credentials",
			username:        "",
			password:        "",
			verifierSucceed: true,
			wantStatus:      http.StatusUnauthorized,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			userStore := mocks.NewMockUserStore()
			seedUser(userStore)
			handler := newTestAuthHandler(userStore, tc.verifierSucceed)

			form := url.Values{}
			if tc.username != "" {
				form.Set("username", tc.username)
			}
			if tc.password != "" {
				form.Set("password", tc.password)
			}

			req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
			req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
			w := httptest.NewRecorder()

			handler.Token(w, req)

			assert.Equal(t, tc.wantStatus, w.Code)

			switch tc.wantStatus {
			case http.StatusOK:
				var resp TokenResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "test-token", resp.AccessToken)
				assert.Equal(t, "bearer", resp.TokenType)
			case http.StatusUnauthorized:
				assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
				var resp shared.ErrorResponse
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
				assert.Equal(t, "Incorrect username or password", resp.Error)
			}
		})
	}
}

func TestTokenFailureIsUniform(t *testing.T) {
	t.Parallel()

	// An unknown email and a wrong password must produce byte-identical
	// error bodies so accounts cannot be enumerated.
	userStore := mocks.NewMockUserStore()
	user, err := domain.NewUser("known@example.com", "hashed:pw")
	require.NoError(t, err)
	require.NoError(t, userStore.Create(context.Background(), user))

	handler := newTestAuthHandler(userStore, false)

	attempt := func(username string) *httptest.ResponseRecorder {
		form := url.Values{"username": {username}, "password": {"whatever-pass"}}
		req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
		w := httptest.NewRecorder()
		handler.Token(w, req)
		return w
	}

	unknownEmail := attempt("nobody@example.com")
	wrongPassword := attempt("known@example.com")

	assert.Equal(t, http.StatusUnauthorized, unknownEmail.Code)
	assert.Equal(t, http.StatusUnauthorized, wrongPassword.Code)
	assert.Equal(t, unknownEmail.Body.String(), wrongPassword.Body.String())
}

func TestMe(t *testing.T) {
	t.Parallel()

	handler := newTestAuthHandler(mocks.NewMockUserStore(), true)

	t.Run("authenticated", func(t *testing.T) {
		t.Parallel()

		user := &domain.User{ID: 7, Email: "me@example.com"}
		req := httptest.NewRequest(http.MethodGet, "/users/me/", nil)
		req = req.WithContext(shared.WithUser(req.Context(), user))
		w := httptest.NewRecorder()

		handler.Me(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
		var resp UserResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Equal(t, int64(7), resp.ID)
		assert.Equal(t, "me@example.com", resp.Email)
	})

	t.Run("no user in context", func(t *testing.T) {
		t.Parallel()

		req := httptest.NewRequest(http.MethodGet, "/users/me/", nil)
		w := httptest.NewRecorder()

		handler.Me(w, req)

		assert.Equal(t, http.StatusUnauthorized, w.Code)
		assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
	})
}
