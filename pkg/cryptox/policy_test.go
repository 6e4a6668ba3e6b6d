package cryptox

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestValidatePassword(t *testing.T) {
	t.Parallel()

	t.Run("accepts compliant password", func(t *testing.T) {
		require.NoError(t, ValidatePassword("Abc!12"))
	})

	t.Run("rejects short password", func(t *testing.T) {
		require.ErrorIs(t, ValidatePassword("A!b1"), ErrWeakPassword)
	})

	t.Run("rejects missing uppercase", func(t *testing.T) {
		require.ErrorIs(t, ValidatePassword("abc!123"), ErrWeakPassword)
	})

	t.Run("rejects missing symbol", func(t *testing.T) {
		require.ErrorIs(t, ValidatePassword("Abc1234"), ErrWeakPassword)
	})
}
