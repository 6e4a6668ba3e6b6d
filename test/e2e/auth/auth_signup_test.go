package auth_test

import (
	"testing"

	"github.com/cartloop/storefront-auth/pkg/authsdk"
	"github.com/stretchr/testify/require"
)

func TestSignupFlow(t *testing.T) {
	baseURL, container := setupAuthContainer(t)

	t.Run("two step signup creates a customer", func(t *testing.T) {
		client := authsdk.NewSDKClient(baseURL)
		session := signupCustomer(t, client, container, "Jane", "jane@example.com", "Jane-Pass-1!")

		user, err := session.Me(t.Context())
		require.NoError(t, err)
		require.Equal(t, "jane@example.com", user.Email)
		require.Equal(t, "customer", user.Role)
	})

	t.Run("no account exists before verification", func(t *testing.T) {
		client := authsdk.NewSDKClient(baseURL)

		_, err := client.Signup(t.Context(), authsdk.SignupRequest{
			Name:     "Pending",
			Email:    "pending@example.com",
			Password: "Pending-1!",
		})
		require.NoError(t, err)

		// Login must look exactly like an unknown account.
		_, err = client.Login(t.Context(), "pending@example.com", "Pending-1!")
		require.ErrorIs(t, err, authsdk.ErrInvalidCredentials)
	})

	t.Run("code is single use", func(t *testing.T) {
		client := authsdk.NewSDKClient(baseURL)

		_, err := client.Signup(t.Context(), authsdk.SignupRequest{
			Name:     "Once",
			Email:    "once@example.com",
			Password: "Once-Pass-1!",
		})
		require.NoError(t, err)

		code := extractCode(t, container, "once@example.com")

		_, err = client.VerifySignup(t.Context(), "once@example.com", code)
		require.NoError(t, err)

		_, err = client.VerifySignup(t.Context(), "once@example.com", code)
		require.ErrorIs(t, err, authsdk.ErrNotFound)
	})

	t.Run("taken email is refused", func(t *testing.T) {
		client := authsdk.NewSDKClient(baseURL)

		_, err := client.Signup(t.Context(), authsdk.SignupRequest{
			Name:     "Dup",
			Email:    superadminEmail,
			Password: "Dup-Pass-1!",
		})
		require.ErrorIs(t, err, authsdk.ErrEmailTaken)
	})

	t.Run("weak password is refused", func(t *testing.T) {
		client := authsdk.NewSDKClient(baseURL)

		_, err := client.Signup(t.Context(), authsdk.SignupRequest{
			Name:     "Weak",
			Email:    "weak@example.com",
			Password: "weak",
		})
		require.ErrorIs(t, err, authsdk.ErrWeakPassword)
	})

	t.Run("wrong guesses blacklist the email", func(t *testing.T) {
		client := authsdk.NewSDKClient(baseURL)

		_, err := client.Signup(t.Context(), authsdk.SignupRequest{
			Name:     "Guess",
			Email:    "guess@example.com",
			Password: "Guess-Pass-1!",
		})
		require.NoError(t, err)

		for i := 0; i < 10; i++ {
			_, err := client.VerifySignup(t.Context(), "guess@example.com", "000000")
			require.Error(t, err)
		}

		// Blacklisted now: even re-signup is refused until the window passes.
		_, err = client.VerifySignup(t.Context(), "guess@example.com", "000000")
		require.ErrorIs(t, err, authsdk.ErrCodeBlacklisted)

		_, err = client.Signup(t.Context(), authsdk.SignupRequest{
			Name:     "Guess",
			Email:    "guess@example.com",
			Password: "Guess-Pass-1!",
		})
		require.ErrorIs(t, err, authsdk.ErrCodeBlacklisted)
	})
}
