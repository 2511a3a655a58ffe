package response

import (
	"time"

	"experience-booking/internal/usecase/queries"

	"github.com/google/uuid"
)

type ExperienceResponse struct {
	ID          uuid.UUID `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Location    string    `json:"location"`
	Category    string    `json:"category"`
	Price       int64     `json:"price"`
	Duration    string    `json:"duration"`
	ImageURL    string    `json:"imageUrl"`
	Rating      float64   `json:"rating"`
	ReviewCount int32     `json:"reviewCount"`
	CreatedAt   time.Time `json:"createdAt"`
}

type SlotResponse struct {
	ID           uuid.UUID `json:"id"`
	ExperienceID uuid.UUID `json:"experienceId"`
	Date         time.Time `json:"date"`
	StartTime    string    `json:"startTime"`
	EndTime      string    `json:"endTime"`
	Capacity     int32     `json:"capacity"`
	Booked       int32     `json:"booked"`
	Available    int32     `json:"available"`
}

type ExperienceDetailResponse struct {
	ExperienceResponse
	Slots []SlotResponse `json:"slots"`
}

type ExperienceListResponse struct {
	Experiences []ExperienceResponse `json:"experiences"`
}

type SlotListResponse struct {
	Slots []SlotResponse `json:"slots"`
}

func ToExperienceResponse(v *queries.ExperienceView) ExperienceResponse {
	return ExperienceResponse{
		ID:          v.ID,
		Title:       v.Title,
		Description: v.Description,
		Location:    v.Location,
		Category:    v.Category,
		Price:       v.Price,
		Duration:    v.Duration,
		ImageURL:    v.ImageURL,
		Rating:      v.Rating,
		ReviewCount: v.ReviewCount,
		CreatedAt:   v.CreatedAt,
	}
}

func ToSlotResponse(v *queries.SlotView) SlotResponse {
	return SlotResponse{
		ID:           v.ID,
		ExperienceID: v.ExperienceID,
		Date:         v.Date,
		StartTime:    v.StartTime,
		EndTime:      v.EndTime,
		Capacity:     v.Capacity,
		Booked:       v.Booked,
		Available:    v.Available,
	}
}

func ToExperienceListResponse(views []*queries.ExperienceView) ExperienceListResponse {
	out := make([]ExperienceResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ToExperienceResponse(v))
	}
	return ExperienceListResponse{Experiences: out}
}

func ToExperienceDetailResponse(v *queries.ExperienceDetailView) ExperienceDetailResponse {
	slots := make([]SlotResponse, 0, len(v.Slots))
	for _, s := range v.Slots {
		slots = append(slots, ToSlotResponse(s))
	}
	return ExperienceDetailResponse{
		ExperienceResponse: ToExperienceResponse(&v.ExperienceView),
		Slots:              slots,
	}
}

func ToSlotListResponse(views []*queries.SlotView) SlotListResponse {
	out := make([]SlotResponse, 0, len(views))
	for _, v := range views {
		out = append(out, ToSlotResponse(v))
	}
	return SlotListResponse{Slots: out}
}
