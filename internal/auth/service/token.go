package service

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/cartloop/storefront-auth/internal/auth/domain"
	"github.com/cartloop/storefront-auth/internal/auth/store"
	"github.com/cartloop/storefront-auth/pkg/cryptox"
	"github.com/cartloop/storefront-auth/pkg/jwtx"
	"github.com/cartloop/storefront-auth/pkg/slogx"
)

const (
	// MaxLoginAttempts failed passwords locks the account for LoginLockWindow.
	MaxLoginAttempts = 10
	LoginLockWindow  = 1 * time.Hour
)

// TokenService owns both token classes. Access and refresh tokens are
// HS256-signed under independent secrets, so neither class's key material
// can forge the other.
type TokenService struct {
	Store store.Store

	AccessSigner    *jwtx.Signer
	AccessVerifier  *jwtx.Verifier
	RefreshSigner   *jwtx.Signer
	RefreshVerifier *jwtx.Verifier

	Issuer     string
	AccessTTL  time.Duration
	RefreshTTL time.Duration
}

func (s *TokenService) AccessTokenTTL() time.Duration {
	if s.AccessTTL > 0 {
		return s.AccessTTL
	}
	return jwtx.DefaultAccessTokenTTL
}

func (s *TokenService) RefreshTokenTTL() time.Duration {
	if s.RefreshTTL > 0 {
		return s.RefreshTTL
	}
	return jwtx.DefaultRefreshTokenTTL
}

// MintAccess signs a fresh access token for the user's current role.
func (s *TokenService) MintAccess(user domain.User, now time.Time) (string, error) {
	claims := jwtx.NewClaims(user.ID, string(user.Role), s.AccessTokenTTL(), s.Issuer, now)
	return s.AccessSigner.Sign(claims)
}

// MintPair signs a fresh access/refresh pair. The refresh token carries no
// role claim: the role is re-read from the store every time it is redeemed.
func (s *TokenService) MintPair(user domain.User, now time.Time) (domain.TokenPair, error) {
	access, err := s.MintAccess(user, now)
	if err != nil {
		return domain.TokenPair{}, err
	}

	refreshClaims := jwtx.NewClaims(user.ID, "", s.RefreshTokenTTL(), s.Issuer, now)
	refresh, err := s.RefreshSigner.Sign(refreshClaims)
	if err != nil {
		return domain.TokenPair{}, err
	}

	return domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

// VerifyAccess validates an access token and returns its claims. Callers
// must treat jwtx.ErrExpired as the only recoverable failure.
func (s *TokenService) VerifyAccess(token string) (jwtx.Claims, error) {
	return s.AccessVerifier.Verify(token)
}

// Login authenticates an email/password pair and mints a token pair.
//
// Failures are deliberately indistinguishable between unknown email and
// wrong password. Repeated failures lock the account: once the counter
// reaches MaxLoginAttempts the account is refused for LoginLockWindow,
// correct password or not.
func (s *TokenService) Login(ctx context.Context, email, password string) (domain.TokenPair, domain.User, error) {
	now := time.Now()
	l := slogx.FromContext(ctx)
	email = normalizeEmail(email)

	user, err := s.Store.Users().GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.TokenPair{}, domain.User{}, ErrInvalidCredentials
		}
		return domain.TokenPair{}, domain.User{}, err
	}

	if user.Locked(now) {
		l.Info("login refused, account locked", slog.String("user_id", user.ID))
		return domain.TokenPair{}, domain.User{}, &AccountLockedError{Until: *user.LockUntil}
	}

	if cryptox.VerifyPassword(password, user.PasswordHash) != nil {
		attempts := user.LoginAttempts + 1
		var lockUntil *time.Time
		if attempts >= MaxLoginAttempts {
			until := now.Add(LoginLockWindow)
			lockUntil = &until
			attempts = 0
			l.Info("account locked after repeated failures", slog.String("user_id", user.ID))
		}
		if err := s.Store.Users().UpdateLoginState(ctx, user.ID, attempts, lockUntil); err != nil {
			return domain.TokenPair{}, domain.User{}, err
		}
		if lockUntil != nil {
			return domain.TokenPair{}, domain.User{}, &AccountLockedError{Until: *lockUntil}
		}
		return domain.TokenPair{}, domain.User{}, ErrInvalidCredentials
	}

	// Successful login resets the failure counter. An expired lock is
	// cleared here rather than by housekeeping.
	if user.LoginAttempts != 0 || user.LockUntil != nil {
		if err := s.Store.Users().UpdateLoginState(ctx, user.ID, 0, nil); err != nil {
			return domain.TokenPair{}, domain.User{}, err
		}
	}

	pair, err := s.MintPair(user, now)
	if err != nil {
		return domain.TokenPair{}, domain.User{}, err
	}

	l.Info("login succeeded", slog.String("user_id", user.ID))
	return pair, user, nil
}

// Refresh redeems a refresh token for a new access token. The user's role
// is read fresh from the store so a demoted account cannot keep renewing
// elevated access tokens.
func (s *TokenService) Refresh(ctx context.Context, refreshToken string) (string, domain.User, error) {
	now := time.Now()

	claims, err := s.RefreshVerifier.Verify(refreshToken)
	if err != nil {
		return "", domain.User{}, ErrInvalidRefresh
	}

	user, err := s.Store.Users().GetUserByID(ctx, claims.Subject)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return "", domain.User{}, ErrInvalidRefresh
		}
		return "", domain.User{}, err
	}

	access, err := s.MintAccess(user, now)
	if err != nil {
		return "", domain.User{}, err
	}
	return access, user, nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
