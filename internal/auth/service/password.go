package service

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/cartloop/storefront-auth/internal/auth/domain"
	"github.com/cartloop/storefront-auth/internal/auth/mail"
	"github.com/cartloop/storefront-auth/internal/auth/store"
	"github.com/cartloop/storefront-auth/pkg/cryptox"
	"github.com/cartloop/storefront-auth/pkg/slogx"
)

// PasswordService owns the authenticated password change and the emailed
// reset flow. Resetting a password does not touch the login-lockout
// counters; a locked account stays locked until the window passes.
type PasswordService struct {
	Store  store.Store
	Mailer mail.Mailer
}

// Change rotates the password for an authenticated user after re-checking
// the current one. Wrong current passwords feed the same brute-force
// counters as login: an attacker with a stolen session must not get a
// cheaper guessing oracle here than at the login prompt.
func (s *PasswordService) Change(ctx context.Context, userID, currentPassword, newPassword string) error {
	now := time.Now()
	l := slogx.FromContext(ctx)

	user, err := s.Store.Users().GetUserByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if user.Locked(now) {
		l.Info("password change refused, account locked", slog.String("user_id", user.ID))
		return &AccountLockedError{Until: *user.LockUntil}
	}

	if cryptox.VerifyPassword(currentPassword, user.PasswordHash) != nil {
		attempts := user.LoginAttempts + 1
		var lockUntil *time.Time
		if attempts >= MaxLoginAttempts {
			until := now.Add(LoginLockWindow)
			lockUntil = &until
			attempts = 0
			l.Info("account locked after repeated failures", slog.String("user_id", user.ID))
		}
		if err := s.Store.Users().UpdateLoginState(ctx, user.ID, attempts, lockUntil); err != nil {
			return err
		}
		if lockUntil != nil {
			return &AccountLockedError{Until: *lockUntil}
		}
		return ErrInvalidCredentials
	}

	if err := cryptox.ValidatePassword(newPassword); err != nil {
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	if err := s.Store.Users().UpdatePasswordHash(ctx, user.ID, hash); err != nil {
		return err
	}

	// Proving the current password resets the failure counter, the same
	// as a successful login.
	if user.LoginAttempts != 0 || user.LockUntil != nil {
		if err := s.Store.Users().UpdateLoginState(ctx, user.ID, 0, nil); err != nil {
			return err
		}
	}

	l.Info("password changed", slog.String("user_id", user.ID))
	return nil
}

// SendResetCode emails a reset code to an existing account. Unknown emails
// are reported to the caller: unlike login, this endpoint's whole purpose
// is telling the user whether the account exists to reset.
func (s *PasswordService) SendResetCode(ctx context.Context, email string) error {
	now := time.Now()
	l := slogx.FromContext(ctx)
	email = normalizeEmail(email)

	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	// Re-requesting a code must not clear an active blacklist.
	if existing, err := s.Store.ResetCodes().Get(ctx, email); err == nil {
		if existing.Blacklisted(now) {
			return ErrCodeBlacklisted
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	record := domain.ResetCode{
		Email:         email,
		CodeHash:      hashCode(code),
		CodeExpiresAt: now.Add(OTPTTL),
	}
	if err := s.Store.ResetCodes().Upsert(ctx, record); err != nil {
		return err
	}

	if err := s.Mailer.SendResetCode(ctx, email, code); err != nil {
		l.Error("failed to send reset code", slog.String("email", email), slog.Any("error", err))
		return err
	}

	l.Info("reset code sent", slog.String("email", email))
	return nil
}

// Reset redeems a reset code and sets the new password. The code is
// deleted in the same transaction that writes the new hash, so it can
// never be redeemed twice.
func (s *PasswordService) Reset(ctx context.Context, email, code, newPassword string) error {
	now := time.Now()
	l := slogx.FromContext(ctx)
	email = normalizeEmail(email)

	record, err := s.Store.ResetCodes().Get(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrCodeNotFound
		}
		return err
	}

	if record.Blacklisted(now) {
		return ErrCodeBlacklisted
	}

	// Expired and mismatched submissions spend the same attempt budget;
	// waiting for a code to lapse must not buy extra guesses.
	var fail error
	switch {
	case record.CodeExpired(now):
		fail = ErrCodeExpired
	case !codeMatches(code, record.CodeHash):
		fail = ErrCodeInvalid
	}
	if fail != nil {
		attempts, blacklistedUntil := spendAttempt(now, record.Attempts)
		if err := s.Store.ResetCodes().UpdateAttempts(ctx, email, attempts, blacklistedUntil); err != nil {
			return err
		}
		if blacklistedUntil != nil {
			l.Info("password reset blacklisted", slog.String("email", email))
			return ErrCodeBlacklisted
		}
		return fail
	}

	// Weak replacement passwords fail before the code is consumed, so the
	// user can retry with the same code.
	if err := cryptox.ValidatePassword(newPassword); err != nil {
		return err
	}

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	hash, err := cryptox.HashPassword(newPassword)
	if err != nil {
		return err
	}

	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.ResetCodes().Delete(ctx, email); err != nil {
			return err
		}
		return tx.Users().UpdatePasswordHash(ctx, user.ID, hash)
	})
	if err != nil {
		return err
	}

	l.Info("password reset", slog.String("user_id", user.ID))
	return nil
}
