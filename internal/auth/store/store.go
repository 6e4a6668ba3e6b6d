package store

import (
	"context"
	"errors"
	"time"

	"github.com/cartloop/storefront-auth/internal/auth/domain"
)

var (
	ErrNotFound      = errors.New("store: not found")
	ErrAlreadyExists = errors.New("store: already exists")
)

// Store is the root data access interface. Concrete drivers (sqlite, postgres)
// implement this. It exposes sub-repositories to keep concerns tidy and
// testable, and hands out explicit transactions so multi-step operations
// like signup promotion stay atomic.
type Store interface {
	Users() Users
	PendingSignups() PendingSignups
	ResetCodes() ResetCodes

	ApplyMigrations() error

	// Tx starts a read/write transaction and returns a Tx-scoped Store.
	// The caller MUST call Commit() or Rollback() on the returned Tx.
	Tx(ctx context.Context) (Tx, error)

	// WithTx executes a function within a transaction.
	// If fn returns an error, the transaction is rolled back.
	// If fn returns nil, the transaction is committed.
	// This is the recommended way to handle transactions as it automatically
	// handles commit/rollback logic.
	WithTx(ctx context.Context, fn func(tx Tx) error) error

	// Close releases any underlying resources (optional for sqlite).
	Close() error

	// Ping verifies the database connection is still alive.
	Ping(ctx context.Context) error
}

// Tx is a transactional store. It embeds the same repos but adds Commit/Rollback.
type Tx interface {
	Store
	Commit() error
	Rollback() error
}

type Users interface {
	// GetUserByID returns a user by id.
	GetUserByID(ctx context.Context, id string) (domain.User, error)

	// GetUserByEmail is the login lookup. Email is the natural key for
	// storefront accounts.
	GetUserByEmail(ctx context.Context, email string) (domain.User, error)

	// CreateUser inserts a new user (id is provided by app via ULID).
	CreateUser(ctx context.Context, u domain.User) error

	// UpdatePasswordHash sets the password_hash (argon2) and bumps updated_at.
	UpdatePasswordHash(ctx context.Context, userID string, newHash string) error

	// UpdateLoginState writes the brute-force counters after a login
	// attempt. A nil lockUntil clears any active lock.
	UpdateLoginState(ctx context.Context, userID string, attempts int, lockUntil *time.Time) error

	// UpdateRole changes a user's role and bumps updated_at.
	UpdateRole(ctx context.Context, userID string, role domain.Role) error

	// ListUsers returns all users ordered by creation date (newest first).
	ListUsers(ctx context.Context) ([]domain.User, error)

	// IsEmpty returns true if there are no users.
	IsEmpty(ctx context.Context) (bool, error)
}

type PendingSignups interface {
	// Upsert writes a pending signup, replacing any previous attempt for
	// the same email.
	Upsert(ctx context.Context, p domain.PendingSignup) error

	// Get returns the pending signup for an email.
	Get(ctx context.Context, email string) (domain.PendingSignup, error)

	// UpdateAttempts writes the guess counter and optional blacklist window.
	UpdateAttempts(ctx context.Context, email string, attempts int, blacklistedUntil *time.Time) error

	// Delete removes the pending signup (on promotion or housekeeping).
	Delete(ctx context.Context, email string) error

	// DeleteExpired removes records whose code window and any blacklist
	// window have both passed.
	DeleteExpired(ctx context.Context) error
}

type ResetCodes interface {
	// Upsert writes a reset code, replacing any previous one for the email.
	Upsert(ctx context.Context, r domain.ResetCode) error

	// Get returns the reset code record for an email.
	Get(ctx context.Context, email string) (domain.ResetCode, error)

	// UpdateAttempts writes the guess counter and optional blacklist window.
	UpdateAttempts(ctx context.Context, email string, attempts int, blacklistedUntil *time.Time) error

	// Delete removes the record (single-use: called before the password mutates).
	Delete(ctx context.Context, email string) error

	// DeleteExpired removes records whose code window and any blacklist
	// window have both passed.
	DeleteExpired(ctx context.Context) error
}
