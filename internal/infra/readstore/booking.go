package readstore

import (
	"context"

	"experience-booking/internal/infra"
	"experience-booking/internal/infra/db"
	"experience-booking/internal/pkg/pgconv"
	"experience-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type BookingReadStore struct {
	db db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{db: dbtx}
}

const getBookingByIDSQL = `
SELECT id, experience_id, slot_id,
       first_name, last_name, email, phone,
       participants, subtotal, discount, total_price, promo_code, created_at
FROM bookings
WHERE id = $1`

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	var (
		view      queries.BookingView
		promoCode pgtype.Text
		createdAt pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, getBookingByIDSQL, id).Scan(
		&view.ID, &view.ExperienceID, &view.SlotID,
		&view.FirstName, &view.LastName, &view.Email, &view.Phone,
		&view.Participants, &view.Subtotal, &view.Discount, &view.TotalPrice,
		&promoCode, &createdAt,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	view.PromoCode = pgconv.StringPtrFromPgtype(promoCode)
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &view, nil
}
