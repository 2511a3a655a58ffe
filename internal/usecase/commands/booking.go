package commands

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"experience-booking/internal/domain/booking"
	"experience-booking/internal/domain/experience"
	"experience-booking/internal/domain/promo"
	"experience-booking/internal/infra"
	"experience-booking/internal/pkg/clock"
	"experience-booking/internal/pkg/errs"
	"experience-booking/internal/usecase/queries"
	"experience-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

var (
	ErrExperienceNotFound      = errs.New("experience not found")
	ErrInvalidSlot             = errs.New("invalid slot")
	ErrInsufficientCapacity    = errs.New("insufficient capacity")
	ErrDuplicateBooking        = errs.New("duplicate booking request")
	ErrIdempotencyInProgress   = errs.New("booking request in progress")
	ErrIdempotencyCheckFailed  = errs.New("idempotency check failed")
	ErrDomainValidation        = errs.New("domain validation error")
	ErrDatabaseOperationFailed = errs.New("database operation failed")
)

const (
	bookingEndpoint      = "POST /api/bookings"
	idempotencyKeyExpiry = 24 * time.Hour
)

type BookingCommands interface {
	// CreateBooking runs the whole reservation as one unit of work:
	// experience and slot lookup, promo evaluation, atomic capacity
	// reservation, booking insert. idempotencyKey is optional; without
	// it every call books independently.
	CreateBooking(ctx context.Context, input CreateBookingInput, idempotencyKey *uuid.UUID) (*CreateBookingResult, error)
}

type bookingCommandsImpl struct {
	uow            shared.UnitOfWork
	factory        *booking.Factory
	bookingQueries queries.BookingQueries
	clock          clock.Clock
}

func NewBookingCommands(
	uow shared.UnitOfWork,
	factory *booking.Factory,
	bookingQueries queries.BookingQueries,
	clock clock.Clock,
) BookingCommands {
	return &bookingCommandsImpl{
		uow:            uow,
		factory:        factory,
		bookingQueries: bookingQueries,
		clock:          clock,
	}
}

func (c *bookingCommandsImpl) CreateBooking(
	ctx context.Context,
	input CreateBookingInput,
	idempotencyKey *uuid.UUID,
) (*CreateBookingResult, error) {
	if idempotencyKey != nil {
		replayed, err := c.claimIdempotencyKey(ctx, *idempotencyKey, input)
		if err != nil {
			return nil, err
		}
		if replayed != nil {
			return &CreateBookingResult{
				Booking:        replayed,
				ConfirmationID: replayed.ID,
				IsReplayed:     true,
			}, nil
		}
	}

	view, err := c.createNewBooking(ctx, input, idempotencyKey)
	if err != nil {
		if idempotencyKey != nil {
			c.releaseIdempotencyKey(ctx, *idempotencyKey)
		}
		return nil, err
	}
	return &CreateBookingResult{
		Booking:        view,
		ConfirmationID: view.ID,
		IsReplayed:     false,
	}, nil
}

// claimIdempotencyKey returns the stored booking view when the key
// belongs to a completed request, nil when this request now owns the key.
func (c *bookingCommandsImpl) claimIdempotencyKey(
	ctx context.Context,
	key uuid.UUID,
	input CreateBookingInput,
) (*queries.BookingView, error) {
	requestHash := calculateRequestHash(input)
	expiresAt := c.clock.Now().Add(idempotencyKeyExpiry)

	var replayID *uuid.UUID
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		claimed, err := tx.Idempotency().TryInsert(ctx, tx.DB(), key, bookingEndpoint, requestHash, expiresAt)
		if err != nil {
			return errs.Mark(err, ErrIdempotencyCheckFailed)
		}
		if claimed {
			return nil
		}

		existing, err := tx.Reads().IdempotencyByKey(ctx, key)
		if err != nil {
			return errs.Mark(err, ErrIdempotencyCheckFailed)
		}

		switch existing.Status {
		case "completed":
			if existing.ResultBookingID == nil {
				return errs.Mark(errs.New("completed request missing result booking ID"), ErrIdempotencyCheckFailed)
			}
			if existing.RequestHash != requestHash {
				return ErrDuplicateBooking
			}
			replayID = existing.ResultBookingID
			return nil
		case "processing":
			if existing.RequestHash != requestHash {
				return ErrDuplicateBooking
			}
			return ErrIdempotencyInProgress
		default:
			return errs.Mark(errs.New("invalid idempotency key status"), ErrIdempotencyCheckFailed)
		}
	})
	if err != nil {
		return nil, err
	}
	if replayID == nil {
		return nil, nil
	}

	return c.bookingQueries.GetByID(ctx, *replayID)
}

// releaseIdempotencyKey frees a claimed key after a failed booking so a
// retry with the same key starts fresh instead of waiting out the dedupe
// window. Best effort: an unreleased key still expires on its own.
func (c *bookingCommandsImpl) releaseIdempotencyKey(ctx context.Context, key uuid.UUID) {
	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		return tx.Idempotency().Release(ctx, tx.DB(), key)
	})
	if err != nil {
		slog.Warn("failed to release idempotency key after booking failure", "key", key.String(), "error", err.Error())
	}
}

func (c *bookingCommandsImpl) createNewBooking(
	ctx context.Context,
	input CreateBookingInput,
	idempotencyKey *uuid.UUID,
) (*queries.BookingView, error) {
	var bookingID uuid.UUID

	err := c.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		expEntity, err := c.loadExperience(ctx, tx, input.ExperienceID)
		if err != nil {
			return err
		}

		slotEntity, err := c.loadSlot(ctx, tx, input.SlotID)
		if err != nil {
			return err
		}

		guest, err := booking.NewGuest(input.FirstName, input.LastName, input.Email, input.Phone)
		if err != nil {
			return errs.Mark(err, ErrDomainValidation)
		}

		// A missing or unusable promo never fails the booking; it
		// degrades to full price.
		promoEntity := c.loadPromo(ctx, tx, input.PromoCode)

		bookingEntity, err := c.factory.CreateBooking(expEntity, slotEntity, guest, input.Participants, input.PromoCode, promoEntity)
		if err != nil {
			if errors.Is(err, booking.ErrSlotMismatch) {
				return ErrInvalidSlot
			}
			return errs.Mark(err, ErrDomainValidation)
		}

		if _, err := tx.Slots().Reserve(ctx, tx.DB(), input.SlotID, input.ExperienceID, input.Participants); err != nil {
			switch {
			case infra.IsKind(err, infra.KindNotFound):
				return ErrInvalidSlot
			case infra.IsKind(err, infra.KindConflict):
				return ErrInsufficientCapacity
			default:
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		bookingID, err = tx.Bookings().Create(ctx, tx.DB(), bookingEntity)
		if err != nil {
			return errs.Mark(err, ErrDatabaseOperationFailed)
		}

		if idempotencyKey != nil {
			if err := tx.Idempotency().UpdateStatusCompleted(ctx, tx.DB(), *idempotencyKey, bookingID); err != nil {
				return errs.Mark(err, ErrDatabaseOperationFailed)
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	// Read-after-write: return the persisted view
	view, err := c.bookingQueries.GetByID(ctx, bookingID)
	if err != nil {
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}
	return view, nil
}

func (c *bookingCommandsImpl) loadExperience(ctx context.Context, tx shared.Tx, id uuid.UUID) (*experience.Experience, error) {
	snapshot, err := tx.Reads().ExperienceByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrExperienceNotFound
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	entity, err := experience.NewExperience(snapshot.ID, snapshot.Title, "", "", "", snapshot.Price, "", "")
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	return entity, nil
}

func (c *bookingCommandsImpl) loadSlot(ctx context.Context, tx shared.Tx, id uuid.UUID) (*experience.Slot, error) {
	snapshot, err := tx.Reads().SlotByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrInvalidSlot
		}
		return nil, errs.Mark(err, ErrDatabaseOperationFailed)
	}

	entity, err := experience.NewSlot(
		snapshot.ID, snapshot.ExperienceID, snapshot.Date,
		snapshot.StartTime, snapshot.EndTime,
		snapshot.Capacity, snapshot.Booked,
	)
	if err != nil {
		return nil, errs.Mark(err, ErrDomainValidation)
	}
	return entity, nil
}

func (c *bookingCommandsImpl) loadPromo(ctx context.Context, tx shared.Tx, code *string) *promo.PromoCode {
	if code == nil {
		return nil
	}

	snapshot, err := tx.Reads().PromoByCode(ctx, *code)
	if err != nil {
		if !infra.IsKind(err, infra.KindNotFound) {
			slog.Warn("promo lookup failed, booking proceeds at full price", "code", *code, "error", err.Error())
		}
		return nil
	}

	entity, err := promo.NewPromoCode(
		snapshot.ID, snapshot.Code, snapshot.Type, snapshot.Value,
		snapshot.MinAmount, snapshot.MaxDiscount,
		snapshot.ValidFrom, snapshot.ValidUntil, snapshot.Active,
	)
	if err != nil {
		slog.Warn("stored promo code is invalid, booking proceeds at full price", "code", *code, "error", err.Error())
		return nil
	}
	return entity
}

func calculateRequestHash(input CreateBookingInput) string {
	data, _ := json.Marshal(input)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
