package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/cartloop/storefront-auth/internal/auth/domain"
	"github.com/cartloop/storefront-auth/internal/auth/store"
	"github.com/cartloop/storefront-auth/internal/auth/store/drivers/sqlite/gen"
	_ "modernc.org/sqlite"
)

type Store struct {
	db  *sql.DB
	q   *gen.Queries
	dsn string
}

func NewStore(dsn string) (*Store, error) {
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}

	// Enforce FKs
	if _, err := db.ExecContext(context.Background(), `PRAGMA foreign_keys = ON;`); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &Store{
		db:  db,
		q:   gen.New(db),
		dsn: dsn,
	}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Ping verifies the database connection is still alive.
func (s *Store) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

// Tx starts a read/write transaction and returns a Tx-scoped Store.
func (s *Store) Tx(ctx context.Context) (store.Tx, error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, err
	}
	return newTx(tx), nil
}

// WithTx executes fn within a transaction, automatically handling commit/rollback.
func (s *Store) WithTx(ctx context.Context, fn func(tx store.Tx) error) error {
	tx, err := s.Tx(ctx)
	if err != nil {
		return err
	}

	// Ensure rollback is called if we panic or return early with error
	defer func() {
		_ = tx.Rollback() // safe to call even after commit
	}()

	// Execute the function
	if err := fn(tx); err != nil {
		return err // rollback happens in defer
	}

	// Commit on success
	return tx.Commit()
}

func (s *Store) Users() store.Users                   { return &usersRepo{q: s.q} }
func (s *Store) PendingSignups() store.PendingSignups { return &pendingSignupsRepo{q: s.q} }
func (s *Store) ResetCodes() store.ResetCodes         { return &resetCodesRepo{q: s.q} }

func mapNotFound(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return store.ErrNotFound
	}
	return err
}

func mapNullTimePtr(nt sql.NullTime) *time.Time {
	if nt.Valid {
		val := nt.Time
		return &val
	}
	return nil
}

func mapOptionalTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

func mapUser(row gen.User) domain.User {
	return domain.User{
		ID:            row.ID,
		Email:         row.Email,
		Name:          row.Name,
		PasswordHash:  row.PasswordHash,
		Role:          domain.Role(row.Role),
		LoginAttempts: int(row.LoginAttempts),
		LockUntil:     mapNullTimePtr(row.LockUntil),
		CreatedAt:     row.CreatedAt,
		UpdatedAt:     row.UpdatedAt,
	}
}

func mapPendingSignup(row gen.PendingSignup) domain.PendingSignup {
	return domain.PendingSignup{
		Email:            row.Email,
		Name:             row.Name,
		PasswordHash:     row.PasswordHash,
		Role:             domain.Role(row.Role),
		CodeHash:         row.CodeHash,
		CodeExpiresAt:    row.CodeExpiresAt,
		Attempts:         int(row.Attempts),
		BlacklistedUntil: mapNullTimePtr(row.BlacklistedUntil),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}

func mapResetCode(row gen.ResetCode) domain.ResetCode {
	return domain.ResetCode{
		Email:            row.Email,
		CodeHash:         row.CodeHash,
		CodeExpiresAt:    row.CodeExpiresAt,
		Attempts:         int(row.Attempts),
		BlacklistedUntil: mapNullTimePtr(row.BlacklistedUntil),
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}
}
