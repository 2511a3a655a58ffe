package response

import (
	"time"

	"experience-booking/internal/usecase/commands"
	"experience-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type BookingResponse struct {
	ID           uuid.UUID `json:"id"`
	ExperienceID uuid.UUID `json:"experienceId"`
	SlotID       uuid.UUID `json:"slotId"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Participants int32     `json:"participants"`
	Subtotal     int64     `json:"subtotal"`
	Discount     int64     `json:"discount"`
	TotalPrice   int64     `json:"totalPrice"`
	PromoCode    *string   `json:"promoCode,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

type CreateBookingResponse struct {
	Booking        BookingResponse `json:"booking"`
	ConfirmationID uuid.UUID       `json:"confirmationId"`
}

func ToBookingResponse(v *queries.BookingView) BookingResponse {
	return BookingResponse{
		ID:           v.ID,
		ExperienceID: v.ExperienceID,
		SlotID:       v.SlotID,
		FirstName:    v.FirstName,
		LastName:     v.LastName,
		Email:        v.Email,
		Phone:        v.Phone,
		Participants: v.Participants,
		Subtotal:     v.Subtotal,
		Discount:     v.Discount,
		TotalPrice:   v.TotalPrice,
		PromoCode:    v.PromoCode,
		CreatedAt:    v.CreatedAt,
	}
}

func ToCreateBookingResponse(r *commands.CreateBookingResult) CreateBookingResponse {
	return CreateBookingResponse{
		Booking:        ToBookingResponse(r.Booking),
		ConfirmationID: r.ConfirmationID,
	}
}
