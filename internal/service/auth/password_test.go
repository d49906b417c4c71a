package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	t.Parallel()

	// MinCost keeps the work factor cheap for tests
	hasher := NewBcryptHasher(bcrypt.MinCost)

	t.Run("hash and verify roundtrip", func(t *testing.T) {
		t.Parallel()
		hash, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)
		require.NotEmpty(t, hash)
		assert.NotEqual(t, "correct horse battery staple", hash)

		assert.NoError(t, hasher.Compare(hash, "correct horse battery staple"))
	})

	t.Run("mutated password fails", func(t *testing.T) {
		t.Parallel()
		hash, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)

		assert.Error(t, hasher.Compare(hash, "correct horse battery stapl"))
		assert.Error(t, hasher.Compare(hash, "Correct horse battery staple"))
		assert.Error(t, hasher.Compare(hash, ""))
	})

	t.Run("same password hashes differently", func(t *testing.T) {
		t.Parallel()
		first, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)
		second, err := hasher.Hash("correct horse battery staple")
		require.NoError(t, err)

		// bcrypt salts every hash
		assert.NotEqual(t, first, second)
	})

	t.Run("corrupt hash fails verification without panicking", func(t *testing.T) {
		t.Parallel()
		assert.Error(t, hasher.Compare("not-a-bcrypt-hash", "anything"))
	})
}

func TestNewBcryptHasherDefaultCost(t *testing.T) {
	t.Parallel()

	hasher := NewBcryptHasher(0)
	assert.Equal(t, bcrypt.DefaultCost, hasher.cost)
}
