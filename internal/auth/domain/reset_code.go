package domain

import "time"

// ResetCode is an emailed password-reset challenge for an existing user.
// Keyed by email; requesting a new code overwrites the previous one. The
// code is stored hashed and deleted on first successful use.
type ResetCode struct {
	Email         string
	CodeHash      string
	CodeExpiresAt time.Time

	Attempts         int
	BlacklistedUntil *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Blacklisted reports whether reset attempts are refused at the given instant.
func (r ResetCode) Blacklisted(now time.Time) bool {
	return r.BlacklistedUntil != nil && now.Before(*r.BlacklistedUntil)
}

// CodeExpired reports whether the emailed code is past its window.
func (r ResetCode) CodeExpired(now time.Time) bool {
	return now.After(r.CodeExpiresAt)
}
