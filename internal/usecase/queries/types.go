package queries

import (
	"time"

	"github.com/google/uuid"
)

// Read models (DTO for read side)
type BookingView struct {
	ID           uuid.UUID `json:"id"`
	ExperienceID uuid.UUID `json:"experience_id"`
	SlotID       uuid.UUID `json:"slot_id"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone"`
	Participants int32     `json:"participants"`
	Subtotal     int64     `json:"subtotal"`
	Discount     int64     `json:"discount"`
	TotalPrice   int64     `json:"total_price"`
	PromoCode    *string   `json:"promo_code,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
}

type ExperienceView struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Price       int64     `json:"price"`
	Duration    string    `json:"duration"`
	ImageURL    string    `json:"image_url"`
	Rating      float64   `json:"rating"`
	ReviewCount int32     `json:"review_count"`
	CreatedAt   time.Time `json:"created_at"`
}

type SlotView struct {
	ID           uuid.UUID `json:"id"`
	ExperienceID uuid.UUID `json:"experience_id"`
	Date         time.Time `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	Capacity     int32     `json:"capacity"`
	Booked       int32     `json:"booked"`
	Available    int32     `json:"available"`
}

type ExperienceDetailView struct {
	ExperienceView
	Slots []*SlotView `json:"slots"`
}

// ExperienceFilter narrows the catalog listing; nil fields are ignored.
type ExperienceFilter struct {
	Category *string
	MinPrice *int64
	MaxPrice *int64
	Search   *string
}

type PromoValidationView struct {
	Valid    bool    `json:"valid"`
	Discount int64   `json:"discount"`
	Type     string  `json:"type"`
	Message  *string `json:"message,omitempty"`
}
