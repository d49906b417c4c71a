package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("valid user", func(t *testing.T) {
		t.Parallel()
		user, err := NewUser("alice@example.com", "$2a$10$somehashedvalue")
		require.NoError(t, err)
		assert.Equal(t, "alice@example.com", user.Email)
		assert.NotEmpty(t, user.HashedPassword)
	})

	tests := []struct {
		name    string
		email   string
		hash    string
		wantErr error
	}{
		{"empty email", "", "$2a$10$hash", ErrEmptyEmail},
		{"no at sign", "alice.example.com", "$2a$10$hash", ErrInvalidEmail},
		{"no domain dot", "alice@example", "$2a$10$hash", ErrInvalidEmail},
		{"trailing at", "alice@", "$2a$10$hash", ErrInvalidEmail},
		{"empty hash", "alice@example.com", "", ErrEmptyHashedPassword},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			user, err := NewUser(tt.email, tt.hash)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, user)
		})
	}
}
