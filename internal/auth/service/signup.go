package service

import (
	"context"
	"errors"
	"log/slog"
	netmail "net/mail"
	"strings"
	"time"

	"github.com/cartloop/storefront-auth/internal/auth/domain"
	"github.com/cartloop/storefront-auth/internal/auth/mail"
	"github.com/cartloop/storefront-auth/internal/auth/store"
	"github.com/cartloop/storefront-auth/pkg/cryptox"
	"github.com/cartloop/storefront-auth/pkg/idx"
	"github.com/cartloop/storefront-auth/pkg/slogx"
)

// SignupService runs the two-phase signup: stage the account with an
// emailed verification code, then promote it to a real user when the code
// checks out. No user row exists until promotion.
type SignupService struct {
	Store  store.Store
	Mailer mail.Mailer
	Tokens *TokenService
}

// Signup validates the request and stages a pending signup. A repeat call
// for the same email re-stages it with a fresh code, unless a previous
// attempt left the email blacklisted.
func (s *SignupService) Signup(ctx context.Context, name, email, password string) error {
	now := time.Now()
	l := slogx.FromContext(ctx)
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	if err := validateEmail(email); err != nil {
		return err
	}
	if err := cryptox.ValidatePassword(password); err != nil {
		return err
	}

	// Staging must not overwrite an active blacklist, or ten wrong guesses
	// followed by a fresh signup would reset the window.
	if existing, err := s.Store.PendingSignups().Get(ctx, email); err == nil {
		if existing.Blacklisted(now) {
			return ErrCodeBlacklisted
		}
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	if _, err := s.Store.Users().GetUserByEmail(ctx, email); err == nil {
		return ErrEmailTaken
	} else if !errors.Is(err, store.ErrNotFound) {
		return err
	}

	hash, err := cryptox.HashPassword(password)
	if err != nil {
		return err
	}

	code, err := generateCode()
	if err != nil {
		return err
	}

	pending := domain.PendingSignup{
		Email:         email,
		Name:          name,
		PasswordHash:  hash,
		Role:          domain.RoleCustomer,
		CodeHash:      hashCode(code),
		CodeExpiresAt: now.Add(OTPTTL),
	}
	if err := s.Store.PendingSignups().Upsert(ctx, pending); err != nil {
		return err
	}

	if err := s.Mailer.SendSignupCode(ctx, email, name, code); err != nil {
		l.Error("failed to send signup code", slog.String("email", email), slog.Any("error", err))
		return err
	}

	l.Info("signup staged", slog.String("email", email))
	return nil
}

// VerifySignup redeems the emailed code. On success the pending record is
// deleted and the user created in one transaction, then a token pair is
// minted so the client is signed in immediately.
func (s *SignupService) VerifySignup(ctx context.Context, email, code string) (domain.TokenPair, domain.User, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)
	email = normalizeEmail(email)

	pending, err := s.Store.PendingSignups().Get(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, domain.User{}, ErrCodeNotFound
		}
		return domain.TokenPair{}, domain.User{}, err
	}

	if pending.Blacklisted(now) {
		return domain.TokenPair{}, domain.User{}, ErrCodeBlacklisted
	}

	// Expired and mismatched submissions spend the same attempt budget;
	// waiting for a code to lapse must not buy extra guesses.
	var fail error
	switch {
	case pending.CodeExpired(now):
		fail = ErrCodeExpired
	case !codeMatches(code, pending.CodeHash):
		fail = ErrCodeInvalid
	}
	if fail != nil {
		attempts, blacklistedUntil := spendAttempt(now, pending.Attempts)
		if err := s.Store.PendingSignups().UpdateAttempts(ctx, email, attempts, blacklistedUntil); err != nil {
			return domain.TokenPair{}, domain.User{}, err
		}
		if blacklistedUntil != nil {
			l.Info("signup verification blacklisted", slog.String("email", email))
			return domain.TokenPair{}, domain.User{}, ErrCodeBlacklisted
		}
		return domain.TokenPair{}, domain.User{}, fail
	}

	user := domain.User{
		ID:           idx.New().String(),
		Email:        pending.Email,
		Name:         pending.Name,
		PasswordHash: pending.PasswordHash,
		Role:         pending.Role,
	}

	// Code is single-use: remove it before the user exists so a crash
	// between the two statements can never leave a redeemable code behind.
	err = s.Store.WithTx(ctx, func(tx store.Tx) error {
		if err := tx.PendingSignups().Delete(ctx, email); err != nil {
			return err
		}
		return tx.Users().CreateUser(ctx, user)
	})
	if err != nil {
		return domain.TokenPair{}, domain.User{}, err
	}

	pair, err := s.Tokens.MintPair(user, now)
	if err != nil {
		return domain.TokenPair{}, domain.User{}, err
	}

	l.Info("signup verified", slog.String("user_id", user.ID), slog.String("email", email))
	return pair, user, nil
}

// validateEmail rejects addresses that cannot receive the verification
// code. Display-name forms ("Jane <jane@example.com>") are refused too;
// the stored address must be the bare mailbox.
func validateEmail(email string) error {
	addr, err := netmail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return ErrInvalidEmail
	}
	return nil
}
