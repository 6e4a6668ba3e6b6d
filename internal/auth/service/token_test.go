package service

import (
	"context"
	"testing"
	"time"

	"github.com/cartloop/storefront-auth/internal/auth/domain"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTestTokenService(st)

	user := mustCreateUser(t, st, "shopper@example.com", "Secret!1", domain.RoleCustomer)

	t.Run("succeeds with correct credentials", func(t *testing.T) {
		pair, got, err := svc.Login(ctx, "shopper@example.com", "Secret!1")
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)
		require.NotEmpty(t, pair.AccessToken)
		require.NotEmpty(t, pair.RefreshToken)

		claims, err := svc.VerifyAccess(pair.AccessToken)
		require.NoError(t, err)
		require.Equal(t, user.ID, claims.Subject)
		require.Equal(t, string(domain.RoleCustomer), claims.Role)
	})

	t.Run("normalizes email case", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "  Shopper@Example.COM ", "Secret!1")
		require.NoError(t, err)
	})

	t.Run("wrong password and unknown email look identical", func(t *testing.T) {
		_, _, errWrongPass := svc.Login(ctx, "shopper@example.com", "Wrong!1")
		_, _, errUnknown := svc.Login(ctx, "nobody@example.com", "Secret!1")
		require.ErrorIs(t, errWrongPass, ErrInvalidCredentials)
		require.ErrorIs(t, errUnknown, ErrInvalidCredentials)

		// counter resets on the next success
		_, _, err := svc.Login(ctx, "shopper@example.com", "Secret!1")
		require.NoError(t, err)
	})
}

func TestLoginLockout(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTestTokenService(st)

	mustCreateUser(t, st, "locked@example.com", "Secret!1", domain.RoleCustomer)

	var lockErr *AccountLockedError
	for i := 0; i < MaxLoginAttempts; i++ {
		_, _, err := svc.Login(ctx, "locked@example.com", "Wrong!1")
		if i < MaxLoginAttempts-1 {
			require.ErrorIs(t, err, ErrInvalidCredentials)
		} else {
			require.ErrorAs(t, err, &lockErr)
		}
	}

	require.WithinDuration(t, time.Now().Add(LoginLockWindow), lockErr.Until, 5*time.Second)
	require.Equal(t, 60, lockErr.MinutesRemaining(lockErr.Until.Add(-LoginLockWindow)))

	// correct password is refused while locked
	_, _, err := svc.Login(ctx, "locked@example.com", "Secret!1")
	require.ErrorAs(t, err, &lockErr)
}

func TestLoginExpiredLockClears(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTestTokenService(st)

	user := mustCreateUser(t, st, "thawed@example.com", "Secret!1", domain.RoleCustomer)

	expired := time.Now().Add(-time.Minute)
	require.NoError(t, st.Users().UpdateLoginState(ctx, user.ID, 0, &expired))

	_, _, err := svc.Login(ctx, "thawed@example.com", "Secret!1")
	require.NoError(t, err)

	got, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Nil(t, got.LockUntil)
}

func TestRefresh(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := newTestTokenService(st)

	user := mustCreateUser(t, st, "refresh@example.com", "Secret!1", domain.RoleCustomer)
	pair, _, err := svc.Login(ctx, "refresh@example.com", "Secret!1")
	require.NoError(t, err)

	t.Run("redeems a valid refresh token", func(t *testing.T) {
		access, got, err := svc.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)
		require.Equal(t, user.ID, got.ID)

		claims, err := svc.VerifyAccess(access)
		require.NoError(t, err)
		require.Equal(t, user.ID, claims.Subject)
	})

	t.Run("picks up a role change", func(t *testing.T) {
		require.NoError(t, st.Users().UpdateRole(ctx, user.ID, domain.RoleAdmin))

		access, _, err := svc.Refresh(ctx, pair.RefreshToken)
		require.NoError(t, err)

		claims, err := svc.VerifyAccess(access)
		require.NoError(t, err)
		require.Equal(t, string(domain.RoleAdmin), claims.Role)
	})

	t.Run("rejects an access token presented as refresh", func(t *testing.T) {
		_, _, err := svc.Refresh(ctx, pair.AccessToken)
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})

	t.Run("rejects garbage", func(t *testing.T) {
		_, _, err := svc.Refresh(ctx, "not-a-token")
		require.ErrorIs(t, err, ErrInvalidRefresh)
	})
}
