package domain

import "time"

// User is a durable principal. It is only ever created by promoting a
// verified PendingSignup (or by startup seeding), never directly from a
// signup request.
type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string // argon2id encoded, never leaves the server
	Role         Role

	// Brute-force accounting. LoginAttempts resets to 0 on success;
	// while LockUntil is in the future authentication is refused even
	// with the correct password.
	LoginAttempts int
	LockUntil     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Locked reports whether the account lock is active at the given instant.
func (u User) Locked(now time.Time) bool {
	return u.LockUntil != nil && now.Before(*u.LockUntil)
}

// PublicUser is the client-safe projection of a User.
type PublicUser struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public strips everything a client must never see.
func (u User) Public() PublicUser {
	return PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  string(u.Role),
	}
}
