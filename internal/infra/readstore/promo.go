package readstore

import (
	"context"

	"experience-booking/internal/infra"
	"experience-booking/internal/infra/db"
	"experience-booking/internal/pkg/pgconv"
	"experience-booking/internal/usecase/shared"

	"github.com/jackc/pgx/v5/pgtype"
)

type PromoReadStore struct {
	db db.DBTX
}

func NewPromoReadStore(dbtx db.DBTX) *PromoReadStore {
	return &PromoReadStore{db: dbtx}
}

// Codes match exactly as stored; no case folding.
const getPromoByCodeSQL = `
SELECT id, code, type, value, min_amount, max_discount,
       valid_from, valid_until, active
FROM promo_codes
WHERE code = $1`

func (r *PromoReadStore) FindByCode(ctx context.Context, code string) (*shared.PromoSnapshot, error) {
	var (
		snapshot    shared.PromoSnapshot
		minAmount   pgtype.Int8
		maxDiscount pgtype.Int8
		validFrom   pgtype.Timestamptz
		validUntil  pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, getPromoByCodeSQL, code).Scan(
		&snapshot.ID, &snapshot.Code, &snapshot.Type, &snapshot.Value,
		&minAmount, &maxDiscount, &validFrom, &validUntil, &snapshot.Active,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("promo code not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find promo code", err)
	}

	snapshot.MinAmount = pgconv.Int64PtrFromPgtype(minAmount)
	snapshot.MaxDiscount = pgconv.Int64PtrFromPgtype(maxDiscount)
	snapshot.ValidFrom = pgconv.TimeFromPgtype(validFrom)
	snapshot.ValidUntil = pgconv.TimeFromPgtype(validUntil)
	return &snapshot, nil
}
