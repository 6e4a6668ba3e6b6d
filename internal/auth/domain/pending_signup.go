package domain

import "time"

// PendingSignup holds everything needed to create a User once the emailed
// verification code checks out. Keyed by email; a re-signup overwrites the
// previous attempt. No User row exists until promotion.
type PendingSignup struct {
	Email        string
	Name         string
	PasswordHash string
	Role         Role

	// CodeHash is a fingerprint of the emailed 6-digit code, never the
	// code itself.
	CodeHash      string
	CodeExpiresAt time.Time

	// Guess accounting. Once Attempts crosses the cap the record is
	// blacklisted until BlacklistedUntil and every code is refused.
	Attempts         int
	BlacklistedUntil *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Blacklisted reports whether verification is refused at the given instant.
func (p PendingSignup) Blacklisted(now time.Time) bool {
	return p.BlacklistedUntil != nil && now.Before(*p.BlacklistedUntil)
}

// CodeExpired reports whether the emailed code is past its window.
func (p PendingSignup) CodeExpired(now time.Time) bool {
	return now.After(p.CodeExpiresAt)
}
