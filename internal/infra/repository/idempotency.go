package repository

import (
	"context"
	"time"

	"experience-booking/internal/infra"
	"experience-booking/internal/infra/db"

	"github.com/google/uuid"
)

type IdempotencyRepository struct{}

func NewIdempotencyRepository() *IdempotencyRepository {
	return &IdempotencyRepository{}
}

// Expired keys are reclaimed in place so a retry after the dedupe window
// behaves like a fresh request.
const tryInsertIdempotencySQL = `
INSERT INTO idempotency_keys (key, endpoint, request_hash, status, expires_at)
VALUES ($1, $2, $3, 'processing', $4)
ON CONFLICT (key) DO UPDATE
SET endpoint = EXCLUDED.endpoint,
    request_hash = EXCLUDED.request_hash,
    status = 'processing',
    result_booking_id = NULL,
    expires_at = EXCLUDED.expires_at
WHERE idempotency_keys.expires_at < now()`

// TryInsert reports whether this request claimed the key: a fresh insert
// and a reclaimed expired record both count, an existing live record does
// not.
func (r *IdempotencyRepository) TryInsert(ctx context.Context, tx db.DBTX, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	tag, err := tx.Exec(ctx, tryInsertIdempotencySQL, key, endpoint, requestHash, expiresAt)
	if err != nil {
		return false, infra.WrapRepoErr("failed to insert idempotency key", err)
	}
	return tag.RowsAffected() > 0, nil
}

const completeIdempotencySQL = `
UPDATE idempotency_keys
SET status = 'completed', result_booking_id = $2
WHERE key = $1`

func (r *IdempotencyRepository) UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key uuid.UUID, resultBookingID uuid.UUID) error {
	tag, err := tx.Exec(ctx, completeIdempotencySQL, key, resultBookingID)
	if err != nil {
		return infra.WrapRepoErr("failed to complete idempotency key", err)
	}
	if tag.RowsAffected() == 0 {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	return nil
}

// The status guard keeps a completed record (and its replay result) intact
// when the failure happened after commit.
const releaseIdempotencySQL = `
DELETE FROM idempotency_keys
WHERE key = $1 AND status = 'processing'`

func (r *IdempotencyRepository) Release(ctx context.Context, tx db.DBTX, key uuid.UUID) error {
	if _, err := tx.Exec(ctx, releaseIdempotencySQL, key); err != nil {
		return infra.WrapRepoErr("failed to release idempotency key", err)
	}
	return nil
}
