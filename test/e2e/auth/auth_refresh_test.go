package auth_test

import (
	"testing"

	"github.com/cartloop/storefront-auth/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestRefreshAndLogout(t *testing.T) {
	baseURL, _ := setupAuthContainer(t)

	t.Run("refresh cookie yields a fresh access token", func(t *testing.T) {
		client := authsdk.NewSDKClient(baseURL)
		session := loginSuperadmin(t, client)

		auth, err := client.Refresh(t.Context())
		require.NoError(t, err)
		require.NotEmpty(t, auth.AccessToken)
		require.NotEqual(t, session.AccessToken(), auth.AccessToken)
		require.Equal(t, superadminEmail, auth.User.Email)
	})

	t.Run("refresh without a cookie is session expired", func(t *testing.T) {
		client := authsdk.NewSDKClient(baseURL)

		_, err := client.Refresh(t.Context())
		require.ErrorIs(t, err, authsdk.ErrSessionExpired)
	})

	t.Run("logout clears the refresh cookie", func(t *testing.T) {
		client := authsdk.NewSDKClient(baseURL)
		session := loginSuperadmin(t, client)

		require.NoError(t, session.Logout(t.Context()))

		_, err := client.Refresh(t.Context())
		require.ErrorIs(t, err, authsdk.ErrSessionExpired)
	})
}
