package booking

import (
	"errors"

	"experience-booking/internal/domain/experience"
	"experience-booking/internal/domain/promo"
	"experience-booking/internal/pkg/clock"
)

var ErrSlotMismatch = errors.New("slot does not belong to experience")

// Factory assembles a booking from its collaborators. It computes the
// price, runs the promo evaluator, and enforces the slot/experience
// cross-reference. Capacity is NOT checked here: the availability ledger
// performs the authoritative check-and-increment atomically against
// storage.
type Factory struct {
	Clock clock.Clock
}

func NewFactory(c clock.Clock) *Factory {
	return &Factory{Clock: c}
}

// CreateBooking prices participants against exp and applies promoEntity
// when it evaluates as valid. An invalid or expired promo degrades to a
// zero discount rather than failing the booking; the requested code is
// recorded either way. promoEntity may be nil.
func (f *Factory) CreateBooking(
	exp *experience.Experience,
	slot *experience.Slot,
	guest Guest,
	participants int32,
	requestedCode *string,
	promoEntity *promo.PromoCode,
) (*Booking, error) {
	if participants < 1 {
		return nil, ErrInvalidPeople
	}
	if !slot.BelongsTo(exp.ID()) {
		return nil, ErrSlotMismatch
	}

	subtotal := exp.Price() * int64(participants)

	var discount int64
	if promoEntity != nil {
		eval := promoEntity.Evaluate(subtotal, f.Clock.Now())
		discount = eval.Discount
	}

	pricing, err := NewPricing(subtotal, discount)
	if err != nil {
		return nil, err
	}

	return newBooking(exp.ID(), slot.ID(), guest, participants, pricing, requestedCode), nil
}
