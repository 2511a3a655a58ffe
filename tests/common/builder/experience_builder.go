//go:build unit || e2e

package builder

import (
	"time"

	domexp "experience-booking/internal/domain/experience"
	"experience-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type ExperienceBuilder struct {
	ID          uuid.UUID
	Title       string
	Description string
	Location    string
	Category    string
	Price       int64
	Duration    string
	ImageURL    string
}

func NewExperienceBuilder() *ExperienceBuilder {
	return &ExperienceBuilder{
		ID:          uuid.New(),
		Title:       "Sunrise Himalayan Trek",
		Description: "Experience breathtaking sunrise views",
		Location:    "Manali, Himachal Pradesh",
		Category:    "Adventure",
		Price:       2500,
		Duration:    "6 hours",
		ImageURL:    "https://example.com/trek.jpg",
	}
}

func (e *ExperienceBuilder) WithTitle(title string) *ExperienceBuilder {
	e.Title = title
	return e
}

func (e *ExperienceBuilder) WithPrice(price int64) *ExperienceBuilder {
	e.Price = price
	return e
}

func (e *ExperienceBuilder) BuildDomain() (*domexp.Experience, error) {
	return domexp.NewExperience(e.ID, e.Title, e.Description, e.Location, e.Category, e.Price, e.Duration, e.ImageURL)
}

func (e *ExperienceBuilder) BuildSnapshot() *shared.ExperienceSnapshot {
	return &shared.ExperienceSnapshot{
		ID:    e.ID,
		Title: e.Title,
		Price: e.Price,
	}
}

type SlotBuilder struct {
	ID           uuid.UUID
	ExperienceID uuid.UUID
	Date         time.Time
	StartTime    string
	EndTime      string
	Capacity     int32
	Booked       int32
}

func NewSlotBuilder(experienceID uuid.UUID) *SlotBuilder {
	return &SlotBuilder{
		ID:           uuid.New(),
		ExperienceID: experienceID,
		Date:         time.Date(2026, 9, 15, 0, 0, 0, 0, time.UTC),
		StartTime:    "07:00",
		EndTime:      "10:00",
		Capacity:     12,
		Booked:       0,
	}
}

func (s *SlotBuilder) WithCapacity(capacity int32) *SlotBuilder {
	s.Capacity = capacity
	return s
}

func (s *SlotBuilder) WithBooked(booked int32) *SlotBuilder {
	s.Booked = booked
	return s
}

func (s *SlotBuilder) BuildDomain() (*domexp.Slot, error) {
	return domexp.NewSlot(s.ID, s.ExperienceID, s.Date, s.StartTime, s.EndTime, s.Capacity, s.Booked)
}

func (s *SlotBuilder) BuildSnapshot() *shared.SlotSnapshot {
	return &shared.SlotSnapshot{
		ID:           s.ID,
		ExperienceID: s.ExperienceID,
		Date:         s.Date,
		StartTime:    s.StartTime,
		EndTime:      s.EndTime,
		Capacity:     s.Capacity,
		Booked:       s.Booked,
	}
}
