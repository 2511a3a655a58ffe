//go:build unit || e2e

package dbtest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/stretchr/testify/require"
)

func CreateTestExperience(t *testing.T, db DBLike, title string, price int64) uuid.UUID {
	t.Helper()

	id := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx,
		`INSERT INTO experiences (id, title, description, location, category, price, duration, image_url, rating, review_count)
		 VALUES ($1, $2, 'Test description', 'Test City', 'Adventure', $3, '2 hours', '', 4.5, 10)`,
		id, title, price)
	require.NoError(t, err)

	return id
}

func CreateTestSlot(t *testing.T, db DBLike, experienceID uuid.UUID, date time.Time, capacity, booked int32) uuid.UUID {
	t.Helper()

	id := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx,
		`INSERT INTO slots (id, experience_id, date, start_time, end_time, capacity, booked)
		 VALUES ($1, $2, $3, '07:00', '10:00', $4, $5)`,
		id, experienceID, date, capacity, booked)
	require.NoError(t, err)

	return id
}

func CreateTestPromo(t *testing.T, db DBLike, code, promoType string, value float64, validFrom, validUntil time.Time, active bool) uuid.UUID {
	t.Helper()

	id := uuid.New()
	ctx := context.Background()
	_, err := db.Exec(ctx,
		`INSERT INTO promo_codes (id, code, type, value, valid_from, valid_until, active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (code) DO NOTHING`,
		id, code, promoType, value, validFrom, validUntil, active)
	require.NoError(t, err)

	if err := db.QueryRow(ctx, "SELECT id FROM promo_codes WHERE code = $1", code).Scan(&id); err != nil {
		require.NoError(t, err)
	}
	return id
}

func SlotBookedCount(t *testing.T, db DBLike, slotID uuid.UUID) int32 {
	t.Helper()

	var booked int32
	err := db.QueryRow(context.Background(), "SELECT booked FROM slots WHERE id = $1", slotID).Scan(&booked)
	require.NoError(t, err)
	return booked
}

// ResetDB truncates mutable state between subtests. Catalog tables are
// truncated too; each subtest seeds what it needs.
func ResetDB(pool *pgxpool.Pool) error {
	ctx := context.Background()
	_, err := pool.Exec(ctx,
		"TRUNCATE bookings, idempotency_keys, slots, experiences, promo_codes CASCADE")
	return err
}
