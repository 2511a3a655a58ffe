//go:build unit || e2e

package builder

import (
	reqdto "experience-booking/internal/handler/dto/request"
	"experience-booking/internal/usecase/commands"

	"github.com/google/uuid"
)

type BookingBuilder struct {
	ExperienceID uuid.UUID
	SlotID       uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	Phone        string
	Participants int32
	PromoCode    *string
}

func NewBookingBuilder() *BookingBuilder {
	return &BookingBuilder{
		ExperienceID: uuid.New(),
		SlotID:       uuid.New(),
		FirstName:    "Asha",
		LastName:     "Verma",
		Email:        "asha.verma@example.com",
		Phone:        "9876543210",
		Participants: 2,
	}
}

func (b *BookingBuilder) With(mutate func(*BookingBuilder)) *BookingBuilder {
	mutate(b)
	return b
}

func (b *BookingBuilder) WithPromoCode(code string) *BookingBuilder {
	b.PromoCode = &code
	return b
}

func (b *BookingBuilder) WithParticipants(n int32) *BookingBuilder {
	b.Participants = n
	return b
}

func (b *BookingBuilder) BuildInput() commands.CreateBookingInput {
	return commands.CreateBookingInput{
		ExperienceID: b.ExperienceID,
		SlotID:       b.SlotID,
		FirstName:    b.FirstName,
		LastName:     b.LastName,
		Email:        b.Email,
		Phone:        b.Phone,
		Participants: b.Participants,
		PromoCode:    b.PromoCode,
	}
}

func (b *BookingBuilder) BuildCreateRequestDTO() reqdto.CreateBookingRequest {
	return reqdto.CreateBookingRequest{
		ExperienceID: b.ExperienceID,
		SlotID:       b.SlotID,
		FirstName:    b.FirstName,
		LastName:     b.LastName,
		Email:        b.Email,
		Phone:        b.Phone,
		Participants: b.Participants,
		PromoCode:    b.PromoCode,
	}
}
