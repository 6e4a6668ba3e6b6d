package service

import (
	"context"
	"testing"

	"github.com/cartloop/storefront-auth/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestSeedSuperAdmin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)

	t.Run("creates the account once", func(t *testing.T) {
		require.NoError(t, SeedSuperAdmin(ctx, st, "root@example.com", "Admin!1"))

		user, err := st.Users().GetUserByEmail(ctx, "root@example.com")
		require.NoError(t, err)
		require.Equal(t, domain.RoleSuperAdmin, user.Role)

		// idempotent
		require.NoError(t, SeedSuperAdmin(ctx, st, "root@example.com", "Admin!1"))
		users, err := st.Users().ListUsers(ctx)
		require.NoError(t, err)
		require.Len(t, users, 1)
	})

	t.Run("skips when unconfigured", func(t *testing.T) {
		require.NoError(t, SeedSuperAdmin(ctx, st, "", ""))
	})
}
