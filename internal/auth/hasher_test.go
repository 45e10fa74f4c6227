package auth_test

import (
	"testing"

	"github.com/serroba/shortipy/internal/auth"
	"github.com/serroba/shortipy/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestBcryptHasher(t *testing.T) {
	hasher := auth.NewBcryptHasher(bcrypt.MinCost)

	hash, err := hasher.Hash("s3cret")
	require.NoError(t, err)

	t.Run("never stores the plain password", func(t *testing.T) {
		assert.NotEqual(t, "s3cret", hash)
	})

	t.Run("verifies the right password", func(t *testing.T) {
		assert.NoError(t, hasher.Verify(hash, "s3cret"))
	})

	t.Run("rejects a wrong password as unauthorized", func(t *testing.T) {
		require.ErrorIs(t, hasher.Verify(hash, "wrong"), domain.ErrUnauthorized)
	})

	t.Run("a corrupt hash is not reported as a bad password", func(t *testing.T) {
		err := hasher.Verify("not-a-hash", "s3cret")

		require.Error(t, err)
		assert.NotErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("salts every hash", func(t *testing.T) {
		again, err := hasher.Hash("s3cret")
		require.NoError(t, err)

		assert.NotEqual(t, hash, again)
	})
}
