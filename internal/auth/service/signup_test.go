package service

import (
	"context"
	"testing"
	"time"

	"github.com/cartloop/storefront-auth/internal/auth/domain"
	"github.com/cartloop/storefront-auth/internal/auth/store"
	"github.com/cartloop/storefront-auth/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func newTestSignupService(st store.Store, mailer *captureMailer) *SignupService {
	return &SignupService{
		Store:  st,
		Mailer: mailer,
		Tokens: newTestTokenService(st),
	}
}

func TestSignupFlow(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	mailer := &captureMailer{}
	svc := newTestSignupService(st, mailer)

	require.NoError(t, svc.Signup(ctx, "New Shopper", "new@example.com", "Secret!1"))
	require.Equal(t, "new@example.com", mailer.to)
	require.Len(t, mailer.code, 6)

	// no user exists until the code is redeemed
	_, err := st.Users().GetUserByEmail(ctx, "new@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	pair, user, err := svc.VerifySignup(ctx, "new@example.com", mailer.code)
	require.NoError(t, err)
	require.Equal(t, "new@example.com", user.Email)
	require.Equal(t, domain.RoleCustomer, user.Role)
	require.NotEmpty(t, pair.AccessToken)
	require.NotEmpty(t, pair.RefreshToken)

	// promotion consumed the pending record
	_, err = st.PendingSignups().Get(ctx, "new@example.com")
	require.ErrorIs(t, err, store.ErrNotFound)

	// the code is single-use
	_, _, err = svc.VerifySignup(ctx, "new@example.com", mailer.code)
	require.ErrorIs(t, err, ErrCodeNotFound)
}

func TestSignupValidation(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	mailer := &captureMailer{}
	svc := newTestSignupService(st, mailer)

	t.Run("rejects weak password", func(t *testing.T) {
		err := svc.Signup(ctx, "Weak", "weak@example.com", "password")
		require.ErrorIs(t, err, cryptox.ErrWeakPassword)
	})

	t.Run("rejects malformed email", func(t *testing.T) {
		for _, email := range []string{"x", "no-at-sign.example.com", "two@@example.com", "Jane <jane@example.com>"} {
			err := svc.Signup(ctx, "Typo", email, "Secret!1")
			require.ErrorIs(t, err, ErrInvalidEmail, "email %q", email)
		}
	})

	t.Run("rejects registered email", func(t *testing.T) {
		mustCreateUser(t, st, "taken@example.com", "Secret!1", domain.RoleCustomer)
		err := svc.Signup(ctx, "Dupe", "taken@example.com", "Secret!1")
		require.ErrorIs(t, err, ErrEmailTaken)
	})

	t.Run("restages on repeat signup", func(t *testing.T) {
		require.NoError(t, svc.Signup(ctx, "Retry", "retry@example.com", "Secret!1"))
		first := mailer.code
		require.NoError(t, svc.Signup(ctx, "Retry", "retry@example.com", "Secret!1"))
		require.NotEqual(t, first, mailer.code)

		// only the latest code redeems
		_, _, err := svc.VerifySignup(ctx, "retry@example.com", first)
		require.ErrorIs(t, err, ErrCodeInvalid)
		_, _, err = svc.VerifySignup(ctx, "retry@example.com", mailer.code)
		require.NoError(t, err)
	})
}

func TestVerifySignupGuesses(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	mailer := &captureMailer{}
	svc := newTestSignupService(st, mailer)

	require.NoError(t, svc.Signup(ctx, "Guesser", "guess@example.com", "Secret!1"))

	t.Run("unknown email", func(t *testing.T) {
		_, _, err := svc.VerifySignup(ctx, "nobody@example.com", "123456")
		require.ErrorIs(t, err, ErrCodeNotFound)
	})

	t.Run("blacklists after too many wrong guesses", func(t *testing.T) {
		wrong := "000000"
		if mailer.code == wrong {
			wrong = "000001"
		}

		for i := 0; i < MaxOTPAttempts-1; i++ {
			_, _, err := svc.VerifySignup(ctx, "guess@example.com", wrong)
			require.ErrorIs(t, err, ErrCodeInvalid)
		}
		_, _, err := svc.VerifySignup(ctx, "guess@example.com", wrong)
		require.ErrorIs(t, err, ErrCodeBlacklisted)

		// even the right code is refused now
		_, _, err = svc.VerifySignup(ctx, "guess@example.com", mailer.code)
		require.ErrorIs(t, err, ErrCodeBlacklisted)

		// and a fresh signup cannot reset the window
		err = svc.Signup(ctx, "Guesser", "guess@example.com", "Secret!1")
		require.ErrorIs(t, err, ErrCodeBlacklisted)
	})
}

func TestVerifySignupExpiredCode(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	mailer := &captureMailer{}
	svc := newTestSignupService(st, mailer)

	require.NoError(t, svc.Signup(ctx, "Late", "late@example.com", "Secret!1"))

	// age the code out
	pending, err := st.PendingSignups().Get(ctx, "late@example.com")
	require.NoError(t, err)
	pending.CodeExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, st.PendingSignups().Upsert(ctx, pending))

	_, _, err = svc.VerifySignup(ctx, "late@example.com", mailer.code)
	require.ErrorIs(t, err, ErrCodeExpired)

	// expired submissions spend the guess budget like wrong ones
	pending, err = st.PendingSignups().Get(ctx, "late@example.com")
	require.NoError(t, err)
	require.Equal(t, 1, pending.Attempts)

	for i := 0; i < MaxOTPAttempts-2; i++ {
		_, _, err := svc.VerifySignup(ctx, "late@example.com", mailer.code)
		require.ErrorIs(t, err, ErrCodeExpired)
	}

	// the tenth expired retry blacklists, same as the tenth wrong guess
	_, _, err = svc.VerifySignup(ctx, "late@example.com", mailer.code)
	require.ErrorIs(t, err, ErrCodeBlacklisted)
	_, _, err = svc.VerifySignup(ctx, "late@example.com", mailer.code)
	require.ErrorIs(t, err, ErrCodeBlacklisted)
}
