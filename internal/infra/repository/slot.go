package repository

import (
	"context"

	"experience-booking/internal/infra"
	"experience-booking/internal/infra/db"
	"experience-booking/internal/pkg/pgconv"

	"github.com/google/uuid"
)

// SlotRepository is the availability ledger. The capacity check and the
// booked increment happen in a single conditional UPDATE so no pair of
// concurrent reservations can both observe the same remaining capacity.
type SlotRepository struct{}

func NewSlotRepository() *SlotRepository {
	return &SlotRepository{}
}

const reserveSlotSQL = `
UPDATE slots
SET booked = booked + $3
WHERE id = $1
  AND experience_id = $2
  AND capacity - booked >= $3
RETURNING booked`

const slotGuardSQL = `
SELECT experience_id FROM slots WHERE id = $1`

// Reserve admits participants into the slot iff remaining capacity
// suffices, returning the post-update booked count. A zero-row update is
// disambiguated with a follow-up read: missing slot or experience
// mismatch yields KindNotFound, a full slot yields KindConflict.
func (r *SlotRepository) Reserve(ctx context.Context, tx db.DBTX, slotID, experienceID uuid.UUID, participants int32) (int32, error) {
	var booked int32
	err := tx.QueryRow(ctx, reserveSlotSQL, slotID, experienceID, participants).Scan(&booked)
	if err == nil {
		return booked, nil
	}
	if !pgconv.IsNoRows(err) {
		return 0, infra.WrapRepoErr("failed to reserve slot", err)
	}

	var ownerID uuid.UUID
	err = tx.QueryRow(ctx, slotGuardSQL, slotID).Scan(&ownerID)
	switch {
	case pgconv.IsNoRows(err):
		return 0, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
	case err != nil:
		return 0, infra.WrapRepoErr("failed to check slot", err)
	case ownerID != experienceID:
		return 0, infra.WrapRepoErr("slot does not belong to experience", nil, infra.KindNotFound)
	default:
		return 0, infra.WrapRepoErr("insufficient capacity", nil, infra.KindConflict)
	}
}
