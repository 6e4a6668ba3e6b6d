package auth_test

import (
	"testing"

	"github.com/cartloop/storefront-auth/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestLogin(t *testing.T) {
	baseURL, _ := setupAuthContainer(t)

	t.Run("seeded superadmin can log in", func(t *testing.T) {
		client := authsdk.NewSDKClient(baseURL)
		session := loginSuperadmin(t, client)

		user, err := session.Me(t.Context())
		require.NoError(t, err)
		require.Equal(t, superadminEmail, user.Email)
		require.Equal(t, "superadmin", user.Role)
	})

	t.Run("wrong password is rejected", func(t *testing.T) {
		client := authsdk.NewSDKClient(baseURL)
		_, err := client.Login(t.Context(), superadminEmail, "Wrong-Password-1!")
		require.ErrorIs(t, err, authsdk.ErrInvalidCredentials)
	})

	t.Run("unknown email gets the same error as wrong password", func(t *testing.T) {
		client := authsdk.NewSDKClient(baseURL)

		_, unknownErr := client.Login(t.Context(), "nobody@example.com", "Whatever-1!")
		_, wrongErr := client.Login(t.Context(), superadminEmail, "Wrong-Password-1!")

		require.ErrorIs(t, unknownErr, authsdk.ErrInvalidCredentials)
		require.ErrorIs(t, wrongErr, authsdk.ErrInvalidCredentials)

		// The messages must be byte-identical so responses cannot be used
		// to probe which emails have accounts.
		require.Equal(t, wrongErr.Error(), unknownErr.Error())
	})
}

func TestLoginLockout(t *testing.T) {
	baseURL, container := setupAuthContainer(t)
	client := authsdk.NewSDKClient(baseURL)

	// Use a disposable account so the lockout doesn't poison other tests.
	email := "lockme@example.com"
	password := "Lock-Me-1!"
	signupCustomer(t, client, container, "Lock Me", email, password)

	// Nine wrong attempts stay on invalid_credentials.
	for i := 0; i < 9; i++ {
		_, err := client.Login(t.Context(), email, "Wrong-Password-1!")
		require.ErrorIs(t, err, authsdk.ErrInvalidCredentials)
	}

	// The tenth locks the account.
	_, err := client.Login(t.Context(), email, "Wrong-Password-1!")
	var apiErr *authsdk.APIError
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, authsdk.ErrorCodeAccountLocked, apiErr.Code)

	// Even the correct password is refused while locked.
	_, err = client.Login(t.Context(), email, password)
	require.ErrorAs(t, err, &apiErr)
	require.Equal(t, authsdk.ErrorCodeAccountLocked, apiErr.Code)
}
