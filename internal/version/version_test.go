package version_test

import (
	"testing"

	"github.com/serroba/shortipy/internal/domain"
	"github.com/serroba/shortipy/internal/version"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	t.Run("empty declared version means the default", func(t *testing.T) {
		assert.NoError(t, version.Resolve("", version.Default))
	})

	t.Run("exact match is accepted", func(t *testing.T) {
		assert.NoError(t, version.Resolve("1.0", "1.0"))
	})

	t.Run("anything else is rejected", func(t *testing.T) {
		for _, declared := range []string{"2.0", "1", "1.0.0", " 1.0", "v1.0"} {
			err := version.Resolve(declared, "1.0")

			require.ErrorIs(t, err, domain.ErrMethodVersionNotFound, "declared %q", declared)
		}
	})

	t.Run("empty declared version fails when the operation is not on the default", func(t *testing.T) {
		require.ErrorIs(t, version.Resolve("", "2.0"), domain.ErrMethodVersionNotFound)
	})
}
