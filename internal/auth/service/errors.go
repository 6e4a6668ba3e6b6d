package service

import (
	"errors"
	"fmt"
	"time"
)

var (
	// ErrInvalidCredentials covers both unknown-email and wrong-password so
	// responses never reveal whether an email is registered.
	ErrInvalidCredentials = errors.New("invalid_credentials")

	ErrInvalidRefresh = errors.New("invalid_refresh_token")
	ErrInvalidEmail   = errors.New("invalid_email")
	ErrEmailTaken     = errors.New("email_taken")
	ErrCodeNotFound   = errors.New("code_not_found")
	ErrCodeInvalid    = errors.New("code_invalid")
	ErrCodeExpired    = errors.New("code_expired")
	ErrCodeBlacklisted = errors.New("code_blacklisted")
	ErrUserNotFound   = errors.New("user_not_found")
)

// AccountLockedError signals that login is refused until the lock window
// passes, regardless of whether the password was correct.
type AccountLockedError struct {
	Until time.Time
}

func (e *AccountLockedError) Error() string {
	return fmt.Sprintf("account_locked until %s", e.Until.Format(time.RFC3339))
}

// MinutesRemaining reports the remaining lock time rounded up to whole
// minutes, for the client-facing message.
func (e *AccountLockedError) MinutesRemaining(now time.Time) int {
	remaining := e.Until.Sub(now)
	if remaining <= 0 {
		return 0
	}
	mins := int((remaining + time.Minute - 1) / time.Minute)
	return mins
}
