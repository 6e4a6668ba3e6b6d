package auth_test

import (
	"testing"

	"github.com/cartloop/storefront-auth/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestPasswordReset(t *testing.T) {
	baseURL, container := setupAuthContainer(t)
	client := authsdk.NewSDKClient(baseURL)

	email := "resetme@example.com"
	signupCustomer(t, client, container, "Reset Me", email, "Old-Pass-1!")

	t.Run("unknown email is reported", func(t *testing.T) {
		_, err := client.SendResetCode(t.Context(), "nobody@example.com")
		require.ErrorIs(t, err, authsdk.ErrNotFound)
	})

	t.Run("full reset flow", func(t *testing.T) {
		_, err := client.SendResetCode(t.Context(), email)
		require.NoError(t, err)

		code := extractCode(t, container, email)

		_, err = client.ResetPassword(t.Context(), email, code, "New-Pass-1!")
		require.NoError(t, err)

		// Old password is dead, new one works.
		_, err = client.Login(t.Context(), email, "Old-Pass-1!")
		require.ErrorIs(t, err, authsdk.ErrInvalidCredentials)

		_, err = client.Login(t.Context(), email, "New-Pass-1!")
		require.NoError(t, err)

		// The code was consumed by the successful reset.
		_, err = client.ResetPassword(t.Context(), email, code, "Again-Pass-1!")
		require.ErrorIs(t, err, authsdk.ErrNotFound)
	})

	t.Run("weak new password leaves the code redeemable", func(t *testing.T) {
		_, err := client.SendResetCode(t.Context(), email)
		require.NoError(t, err)

		code := extractCode(t, container, email)

		_, err = client.ResetPassword(t.Context(), email, code, "weak")
		require.ErrorIs(t, err, authsdk.ErrWeakPassword)

		_, err = client.ResetPassword(t.Context(), email, code, "Strong-Pass-1!")
		require.NoError(t, err)
	})
}

func TestChangePassword(t *testing.T) {
	baseURL, container := setupAuthContainer(t)
	client := authsdk.NewSDKClient(baseURL)

	email := "changeme@example.com"
	session := signupCustomer(t, client, container, "Change Me", email, "First-Pass-1!")

	t.Run("wrong current password is rejected", func(t *testing.T) {
		err := session.ChangePassword(t.Context(), "Wrong-Pass-1!", "Second-Pass-1!")
		require.ErrorIs(t, err, authsdk.ErrInvalidCredentials)
	})

	t.Run("change takes effect for the next login", func(t *testing.T) {
		err := session.ChangePassword(t.Context(), "First-Pass-1!", "Second-Pass-1!")
		require.NoError(t, err)

		fresh := authsdk.NewSDKClient(baseURL)
		_, err = fresh.Login(t.Context(), email, "First-Pass-1!")
		require.ErrorIs(t, err, authsdk.ErrInvalidCredentials)

		_, err = fresh.Login(t.Context(), email, "Second-Pass-1!")
		require.NoError(t, err)
	})
}
