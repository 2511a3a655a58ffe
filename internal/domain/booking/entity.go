package booking

import (
	"time"

	"github.com/google/uuid"
)

// Booking is the durable record of a successful reservation. It is
// created exactly once and never updated; there is no cancellation path.
type Booking struct {
	id           uuid.UUID
	experienceID uuid.UUID
	slotID       uuid.UUID
	guest        Guest
	participants int32
	pricing      Pricing
	promoCode    *string
	createdAt    time.Time
}

func newBooking(experienceID, slotID uuid.UUID, guest Guest, participants int32, pricing Pricing, promoCode *string) *Booking {
	return &Booking{
		id:           uuid.New(),
		experienceID: experienceID,
		slotID:       slotID,
		guest:        guest,
		participants: participants,
		pricing:      pricing,
		promoCode:    promoCode,
	}
}

func Reconstruct(
	id, experienceID, slotID uuid.UUID,
	guest Guest,
	participants int32,
	pricing Pricing,
	promoCode *string,
	createdAt time.Time,
) *Booking {
	return &Booking{
		id:           id,
		experienceID: experienceID,
		slotID:       slotID,
		guest:        guest,
		participants: participants,
		pricing:      pricing,
		promoCode:    promoCode,
		createdAt:    createdAt,
	}
}

func (b *Booking) ID() uuid.UUID           { return b.id }
func (b *Booking) ExperienceID() uuid.UUID { return b.experienceID }
func (b *Booking) SlotID() uuid.UUID       { return b.slotID }
func (b *Booking) Guest() Guest            { return b.guest }
func (b *Booking) Participants() int32     { return b.participants }
func (b *Booking) Pricing() Pricing        { return b.pricing }
func (b *Booking) PromoCode() *string      { return b.promoCode }
func (b *Booking) CreatedAt() time.Time    { return b.createdAt }

// ConfirmationID is the caller-facing confirmation identifier; the
// booking's own identity is sufficient, no separate token exists.
func (b *Booking) ConfirmationID() uuid.UUID { return b.id }
