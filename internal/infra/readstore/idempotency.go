package readstore

import (
	"context"

	"experience-booking/internal/infra"
	"experience-booking/internal/infra/db"
	"experience-booking/internal/pkg/pgconv"
	"experience-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type IdempotencyReadStore struct {
	db db.DBTX
}

func NewIdempotencyReadStore(dbtx db.DBTX) *IdempotencyReadStore {
	return &IdempotencyReadStore{db: dbtx}
}

const getIdempotencyByKeySQL = `
SELECT key, status, request_hash, result_booking_id, expires_at
FROM idempotency_keys
WHERE key = $1`

func (r *IdempotencyReadStore) Get(ctx context.Context, key uuid.UUID) (*shared.IdempotencyRecord, error) {
	var (
		record    shared.IdempotencyRecord
		bookingID pgtype.UUID
		expiresAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, getIdempotencyByKeySQL, key).Scan(
		&record.Key, &record.Status, &record.RequestHash, &bookingID, &expiresAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("idempotency key not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find idempotency key", err)
	}

	record.ResultBookingID = pgconv.UUIDPtrFromPgtype(bookingID)
	record.ExpiresAt = pgconv.TimeFromPgtype(expiresAt)
	return &record, nil
}
