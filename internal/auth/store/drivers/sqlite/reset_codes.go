package sqlite

import (
	"context"
	"time"

	"github.com/cartloop/storefront-auth/internal/auth/domain"
	"github.com/cartloop/storefront-auth/internal/auth/store/drivers/sqlite/gen"
)

type resetCodesRepo struct {
	q *gen.Queries
}

func (r *resetCodesRepo) Upsert(ctx context.Context, rc domain.ResetCode) error {
	return r.q.UpsertResetCode(ctx, gen.UpsertResetCodeParams{
		Email:         rc.Email,
		CodeHash:      rc.CodeHash,
		CodeExpiresAt: rc.CodeExpiresAt,
	})
}

func (r *resetCodesRepo) Get(ctx context.Context, email string) (domain.ResetCode, error) {
	row, err := r.q.GetResetCode(ctx, email)
	if err != nil {
		return domain.ResetCode{}, mapNotFound(err)
	}
	return mapResetCode(row), nil
}

func (r *resetCodesRepo) UpdateAttempts(
	ctx context.Context,
	email string,
	attempts int,
	blacklistedUntil *time.Time,
) error {
	return r.q.UpdateResetCodeAttempts(ctx, gen.UpdateResetCodeAttemptsParams{
		Attempts:         int64(attempts),
		BlacklistedUntil: mapOptionalTime(blacklistedUntil),
		Email:            email,
	})
}

func (r *resetCodesRepo) Delete(ctx context.Context, email string) error {
	return r.q.DeleteResetCode(ctx, email)
}

func (r *resetCodesRepo) DeleteExpired(ctx context.Context) error {
	return r.q.DeleteExpiredResetCodes(ctx)
}
