package experience

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidCapacity = errors.New("capacity must be positive")
	ErrInvalidBooked   = errors.New("booked must be between 0 and capacity")
)

// Slot is a fixed-capacity time window of an experience. The booked
// counter is the only mutable shared state in the system and is advanced
// exclusively by the availability ledger's conditional update; this
// entity carries the arithmetic, never the mutation.
type Slot struct {
	id           uuid.UUID
	experienceID uuid.UUID
	date         time.Time
	startTime    string
	endTime      string
	capacity     int32
	booked       int32
}

func NewSlot(id, experienceID uuid.UUID, date time.Time, startTime, endTime string, capacity, booked int32) (*Slot, error) {
	if capacity <= 0 {
		return nil, ErrInvalidCapacity
	}
	if booked < 0 || booked > capacity {
		return nil, ErrInvalidBooked
	}

	return &Slot{
		id:           id,
		experienceID: experienceID,
		date:         date,
		startTime:    startTime,
		endTime:      endTime,
		capacity:     capacity,
		booked:       booked,
	}, nil
}

func (s *Slot) BelongsTo(experienceID uuid.UUID) bool {
	return s.experienceID == experienceID
}

func (s *Slot) Remaining() int32 {
	return s.capacity - s.booked
}

func (s *Slot) CanAccommodate(participants int32) bool {
	return participants > 0 && s.Remaining() >= participants
}

func (s *Slot) ID() uuid.UUID           { return s.id }
func (s *Slot) ExperienceID() uuid.UUID { return s.experienceID }
func (s *Slot) Date() time.Time         { return s.date }
func (s *Slot) StartTime() string       { return s.startTime }
func (s *Slot) EndTime() string         { return s.endTime }
func (s *Slot) Capacity() int32         { return s.capacity }
func (s *Slot) Booked() int32           { return s.booked }
