package shared

import (
	"context"
	"time"

	"experience-booking/internal/domain/booking"
	"experience-booking/internal/infra/db"

	"github.com/google/uuid"
)

// UnitOfWork is the storage port of the reservation engine. Within gives
// the engine all-or-nothing semantics for the load / evaluate / reserve /
// persist sequence; WithDB serves single-query read paths.
type UnitOfWork interface {
	Within(ctx context.Context, fn func(ctx context.Context, tx Tx) error) error
	WithDB(ctx context.Context, fn func(ctx context.Context, db db.DBTX) error) error
	CommandReads() CommandReads
}

type Tx interface {
	Bookings() BookingRepository
	Slots() SlotRepository
	Idempotency() IdempotencyRepository
	Reads() CommandReads
	DB() db.DBTX
}

type CommandReads interface {
	ExperienceByID(ctx context.Context, id uuid.UUID) (*ExperienceSnapshot, error)
	SlotByID(ctx context.Context, id uuid.UUID) (*SlotSnapshot, error)
	PromoByCode(ctx context.Context, code string) (*PromoSnapshot, error)
	IdempotencyByKey(ctx context.Context, key uuid.UUID) (*IdempotencyRecord, error)
}

type BookingRepository interface {
	Create(ctx context.Context, tx db.DBTX, b *booking.Booking) (uuid.UUID, error)
}

// SlotRepository is the availability ledger. Reserve performs the
// capacity check and increment as one indivisible storage-level update
// and reports the post-update booked count.
type SlotRepository interface {
	Reserve(ctx context.Context, tx db.DBTX, slotID, experienceID uuid.UUID, participants int32) (int32, error)
}

type IdempotencyRepository interface {
	// TryInsert claims the key for this request. claimed is false when a
	// live record already holds the key; expired records are reclaimed.
	TryInsert(ctx context.Context, tx db.DBTX, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (claimed bool, err error)
	UpdateStatusCompleted(ctx context.Context, tx db.DBTX, key uuid.UUID, resultBookingID uuid.UUID) error
	// Release frees a key still in processing so a retry after a failed
	// booking starts fresh. Completed keys are left untouched.
	Release(ctx context.Context, tx db.DBTX, key uuid.UUID) error
}

// Write-side snapshots keep command code independent of read-side view
// types.
type ExperienceSnapshot struct {
	ID    uuid.UUID
	Title string
	Price int64
}

type SlotSnapshot struct {
	ID           uuid.UUID
	ExperienceID uuid.UUID
	Date         time.Time
	StartTime    string
	EndTime      string
	Capacity     int32
	Booked       int32
}

type PromoSnapshot struct {
	ID          uuid.UUID
	Code        string
	Type        string
	Value       float64
	MinAmount   *int64
	MaxDiscount *int64
	ValidFrom   time.Time
	ValidUntil  time.Time
	Active      bool
}

type IdempotencyRecord struct {
	Key             uuid.UUID
	Status          string
	RequestHash     string
	ResultBookingID *uuid.UUID
	ExpiresAt       time.Time
}
