package request

import (
	"strings"

	"experience-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type CreateBookingRequest struct {
	ExperienceID uuid.UUID `json:"experienceId" binding:"required"`
	SlotID       uuid.UUID `json:"slotId" binding:"required"`
	FirstName    string    `json:"firstName" binding:"required,min=2"`
	LastName     string    `json:"lastName" binding:"required,min=2"`
	Email        string    `json:"email" binding:"required,email"`
	Phone        string    `json:"phone" binding:"required,min=10,max=15"`
	Participants int32     `json:"participants" binding:"required,min=1"`
	PromoCode    *string   `json:"promoCode,omitempty"`
}

// GetPromoCode trims surrounding whitespace but preserves case: promo
// codes are case-sensitive keys.
func (r CreateBookingRequest) GetPromoCode() *string {
	if r.PromoCode == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*r.PromoCode)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

func (r CreateBookingRequest) ToInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ExperienceID: r.ExperienceID,
		SlotID:       r.SlotID,
		FirstName:    r.FirstName,
		LastName:     r.LastName,
		Email:        r.Email,
		Phone:        r.Phone,
		Participants: r.Participants,
		PromoCode:    r.GetPromoCode(),
	}
}
