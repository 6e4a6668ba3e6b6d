package sqlite

import (
	"context"
	"time"

	"github.com/cartloop/storefront-auth/internal/auth/domain"
	"github.com/cartloop/storefront-auth/internal/auth/store/drivers/sqlite/gen"
)

type pendingSignupsRepo struct {
	q *gen.Queries
}

func (r *pendingSignupsRepo) Upsert(ctx context.Context, p domain.PendingSignup) error {
	return r.q.UpsertPendingSignup(ctx, gen.UpsertPendingSignupParams{
		Email:         p.Email,
		Name:          p.Name,
		PasswordHash:  p.PasswordHash,
		Role:          string(p.Role),
		CodeHash:      p.CodeHash,
		CodeExpiresAt: p.CodeExpiresAt,
	})
}

func (r *pendingSignupsRepo) Get(ctx context.Context, email string) (domain.PendingSignup, error) {
	row, err := r.q.GetPendingSignup(ctx, email)
	if err != nil {
		return domain.PendingSignup{}, mapNotFound(err)
	}
	return mapPendingSignup(row), nil
}

func (r *pendingSignupsRepo) UpdateAttempts(
	ctx context.Context,
	email string,
	attempts int,
	blacklistedUntil *time.Time,
) error {
	return r.q.UpdatePendingSignupAttempts(ctx, gen.UpdatePendingSignupAttemptsParams{
		Attempts:         int64(attempts),
		BlacklistedUntil: mapOptionalTime(blacklistedUntil),
		Email:            email,
	})
}

func (r *pendingSignupsRepo) Delete(ctx context.Context, email string) error {
	return r.q.DeletePendingSignup(ctx, email)
}

func (r *pendingSignupsRepo) DeleteExpired(ctx context.Context) error {
	return r.q.DeleteExpiredPendingSignups(ctx)
}
