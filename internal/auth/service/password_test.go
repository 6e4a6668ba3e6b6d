package service

import (
	"context"
	"testing"
	"time"

	"github.com/cartloop/storefront-auth/internal/auth/domain"
	"github.com/cartloop/storefront-auth/pkg/cryptox"
	"github.com/stretchr/testify/require"
)

func TestChangePassword(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newTestTokenService(st)
	svc := &PasswordService{Store: st, Mailer: &captureMailer{}}

	user := mustCreateUser(t, st, "change@example.com", "Secret!1", domain.RoleCustomer)

	t.Run("rejects wrong current password", func(t *testing.T) {
		err := svc.Change(ctx, user.ID, "Wrong!1", "Updated!1")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("rejects weak replacement", func(t *testing.T) {
		err := svc.Change(ctx, user.ID, "Secret!1", "short")
		require.ErrorIs(t, err, cryptox.ErrWeakPassword)
	})

	t.Run("rotates the password", func(t *testing.T) {
		require.NoError(t, svc.Change(ctx, user.ID, "Secret!1", "Updated!1"))

		_, _, err := tokens.Login(ctx, "change@example.com", "Secret!1")
		require.ErrorIs(t, err, ErrInvalidCredentials)
		_, _, err = tokens.Login(ctx, "change@example.com", "Updated!1")
		require.NoError(t, err)
	})

	t.Run("unknown user", func(t *testing.T) {
		err := svc.Change(ctx, "no-such-id", "Secret!1", "Updated!1")
		require.ErrorIs(t, err, ErrUserNotFound)
	})
}

func TestChangePasswordLockout(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newTestTokenService(st)
	svc := &PasswordService{Store: st, Mailer: &captureMailer{}}

	user := mustCreateUser(t, st, "guarded@example.com", "Secret!1", domain.RoleCustomer)

	// current-password guessing spends the same budget as login
	for i := 0; i < MaxLoginAttempts-1; i++ {
		err := svc.Change(ctx, user.ID, "Wrong!1", "Updated!1")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}

	var lockErr *AccountLockedError
	err := svc.Change(ctx, user.ID, "Wrong!1", "Updated!1")
	require.ErrorAs(t, err, &lockErr)

	// the lock holds even with the right current password
	err = svc.Change(ctx, user.ID, "Secret!1", "Updated!1")
	require.ErrorAs(t, err, &lockErr)

	// and login shares the counter
	_, _, err = tokens.Login(ctx, "guarded@example.com", "Secret!1")
	require.ErrorAs(t, err, &lockErr)
}

func TestChangePasswordResetsFailures(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	svc := &PasswordService{Store: st, Mailer: &captureMailer{}}

	user := mustCreateUser(t, st, "forgiven@example.com", "Secret!1", domain.RoleCustomer)

	for i := 0; i < 3; i++ {
		err := svc.Change(ctx, user.ID, "Wrong!1", "Updated!1")
		require.ErrorIs(t, err, ErrInvalidCredentials)
	}
	require.NoError(t, svc.Change(ctx, user.ID, "Secret!1", "Updated!1"))

	got, err := st.Users().GetUserByID(ctx, user.ID)
	require.NoError(t, err)
	require.Zero(t, got.LoginAttempts)
}

func TestResetPasswordFlow(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newTestTokenService(st)
	mailer := &captureMailer{}
	svc := &PasswordService{Store: st, Mailer: mailer}

	mustCreateUser(t, st, "reset@example.com", "Secret!1", domain.RoleCustomer)

	t.Run("unknown email is reported", func(t *testing.T) {
		err := svc.SendResetCode(ctx, "nobody@example.com")
		require.ErrorIs(t, err, ErrUserNotFound)
	})

	t.Run("resets with a valid code", func(t *testing.T) {
		require.NoError(t, svc.SendResetCode(ctx, "reset@example.com"))
		require.Len(t, mailer.code, 6)

		require.NoError(t, svc.Reset(ctx, "reset@example.com", mailer.code, "Fresh!1"))

		_, _, err := tokens.Login(ctx, "reset@example.com", "Fresh!1")
		require.NoError(t, err)

		// the code was consumed with the reset
		err = svc.Reset(ctx, "reset@example.com", mailer.code, "Again!1")
		require.ErrorIs(t, err, ErrCodeNotFound)
	})

	t.Run("weak replacement leaves the code redeemable", func(t *testing.T) {
		require.NoError(t, svc.SendResetCode(ctx, "reset@example.com"))

		err := svc.Reset(ctx, "reset@example.com", mailer.code, "weak")
		require.ErrorIs(t, err, cryptox.ErrWeakPassword)

		require.NoError(t, svc.Reset(ctx, "reset@example.com", mailer.code, "Fresh!2"))
	})
}

func TestResetPasswordGuesses(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	mailer := &captureMailer{}
	svc := &PasswordService{Store: st, Mailer: mailer}

	mustCreateUser(t, st, "guesses@example.com", "Secret!1", domain.RoleCustomer)
	require.NoError(t, svc.SendResetCode(ctx, "guesses@example.com"))

	wrong := "000000"
	if mailer.code == wrong {
		wrong = "000001"
	}

	for i := 0; i < MaxOTPAttempts-1; i++ {
		err := svc.Reset(ctx, "guesses@example.com", wrong, "Fresh!1")
		require.ErrorIs(t, err, ErrCodeInvalid)
	}
	err := svc.Reset(ctx, "guesses@example.com", wrong, "Fresh!1")
	require.ErrorIs(t, err, ErrCodeBlacklisted)

	// right code refused while blacklisted, and a new code can't be requested
	err = svc.Reset(ctx, "guesses@example.com", mailer.code, "Fresh!1")
	require.ErrorIs(t, err, ErrCodeBlacklisted)
	err = svc.SendResetCode(ctx, "guesses@example.com")
	require.ErrorIs(t, err, ErrCodeBlacklisted)
}

func TestResetExpiredCodeSpendsAttempts(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	mailer := &captureMailer{}
	svc := &PasswordService{Store: st, Mailer: mailer}

	mustCreateUser(t, st, "patient@example.com", "Secret!1", domain.RoleCustomer)
	require.NoError(t, svc.SendResetCode(ctx, "patient@example.com"))

	// age the code out
	record, err := st.ResetCodes().Get(ctx, "patient@example.com")
	require.NoError(t, err)
	record.CodeExpiresAt = time.Now().Add(-time.Minute)
	require.NoError(t, st.ResetCodes().Upsert(ctx, record))

	// expired submissions spend the guess budget like wrong ones
	for i := 0; i < MaxOTPAttempts-1; i++ {
		err := svc.Reset(ctx, "patient@example.com", mailer.code, "Fresh!1")
		require.ErrorIs(t, err, ErrCodeExpired)
	}

	record, err = st.ResetCodes().Get(ctx, "patient@example.com")
	require.NoError(t, err)
	require.Equal(t, MaxOTPAttempts-1, record.Attempts)

	err = svc.Reset(ctx, "patient@example.com", mailer.code, "Fresh!1")
	require.ErrorIs(t, err, ErrCodeBlacklisted)

	// the blacklist also blocks requesting a fresh code
	err = svc.SendResetCode(ctx, "patient@example.com")
	require.ErrorIs(t, err, ErrCodeBlacklisted)
}

func TestResetDoesNotClearLockout(t *testing.T) {
	ctx := context.Background()
	st := newTestStore(t)
	tokens := newTestTokenService(st)
	mailer := &captureMailer{}
	svc := &PasswordService{Store: st, Mailer: mailer}

	user := mustCreateUser(t, st, "stilllocked@example.com", "Secret!1", domain.RoleCustomer)
	require.NoError(t, st.Users().UpdateLoginState(ctx, user.ID, 0, futureTime(LoginLockWindow)))

	require.NoError(t, svc.SendResetCode(ctx, "stilllocked@example.com"))
	require.NoError(t, svc.Reset(ctx, "stilllocked@example.com", mailer.code, "Fresh!1"))

	// a reset proves mailbox ownership, not innocence: the lock stands
	var lockErr *AccountLockedError
	_, _, err := tokens.Login(ctx, "stilllocked@example.com", "Fresh!1")
	require.ErrorAs(t, err, &lockErr)
}
