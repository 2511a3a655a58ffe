package commands

import (
	"github.com/google/uuid"

	"experience-booking/internal/usecase/queries"
)

type CreateBookingInput struct {
	ExperienceID uuid.UUID `json:"experience_id"`
	SlotID       uuid.UUID `json:"slot_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Participants int32     `json:"participants"`
	PromoCode    *string   `json:"promo_code,omitempty"`
}

type CreateBookingResult struct {
	Booking *queries.BookingView
	// ConfirmationID equals the booking id; no separate token exists.
	ConfirmationID uuid.UUID
	// IsReplayed is true when an idempotency key matched a completed
	// request and the stored booking was returned instead of a new one.
	IsReplayed bool
}
