//go:build unit

package commands_test

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sync"
	"testing"
	"time"

	"experience-booking/internal/domain/booking"
	"experience-booking/internal/infra"
	"experience-booking/internal/infra/db"
	"experience-booking/internal/pkg/clock"
	"experience-booking/internal/usecase/commands"
	"experience-booking/internal/usecase/queries"
	"experience-booking/internal/usecase/shared"
	"experience-booking/tests/common/builder"

	"github.com/google/go-cmp/cmp"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testNow = time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)

// fakeStore is an in-memory stand-in for the persistence layer. It
// implements the unit of work, its repositories and the booking read
// side against maps guarded by one mutex, so the availability ledger's
// check-and-increment stays atomic under concurrent callers.
type fakeStore struct {
	mu          sync.Mutex
	experiences map[uuid.UUID]*shared.ExperienceSnapshot
	slots       map[uuid.UUID]*shared.SlotSnapshot
	promos      map[string]*shared.PromoSnapshot
	bookings    map[uuid.UUID]*queries.BookingView
	idempotency map[uuid.UUID]*shared.IdempotencyRecord
	now         time.Time
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		experiences: make(map[uuid.UUID]*shared.ExperienceSnapshot),
		slots:       make(map[uuid.UUID]*shared.SlotSnapshot),
		promos:      make(map[string]*shared.PromoSnapshot),
		bookings:    make(map[uuid.UUID]*queries.BookingView),
		idempotency: make(map[uuid.UUID]*shared.IdempotencyRecord),
		now:         testNow,
	}
}

// UnitOfWork

func (s *fakeStore) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, s)
}

func (s *fakeStore) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (s *fakeStore) CommandReads() shared.CommandReads { return s }

// Tx

func (s *fakeStore) Bookings() shared.BookingRepository       { return s }
func (s *fakeStore) Slots() shared.SlotRepository             { return s }
func (s *fakeStore) Idempotency() shared.IdempotencyRepository { return s }
func (s *fakeStore) Reads() shared.CommandReads               { return s }
func (s *fakeStore) DB() db.DBTX                              { return nil }

// CommandReads

func (s *fakeStore) ExperienceByID(_ context.Context, id uuid.UUID) (*shared.ExperienceSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.experiences[id]
	if !ok {
		return nil, infra.WrapRepoErr("experience not found", nil, infra.KindNotFound)
	}
	return snapshot, nil
}

func (s *fakeStore) SlotByID(_ context.Context, id uuid.UUID) (*shared.SlotSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.slots[id]
	if !ok {
		return nil, infra.WrapRepoErr("slot not found", nil, infra.KindNotFound)
	}
	copied := *snapshot
	return &copied, nil
}

func (s *fakeStore) PromoByCode(_ context.Context, code string) (*shared.PromoSnapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	snapshot, ok := s.promos[code]
	if !ok {
		return nil, infra.WrapRepoErr("promo not found", nil, infra.KindNotFound)
	}
	return snapshot, nil
}

func (s *fakeStore) IdempotencyByKey(_ context.Context, key uuid.UUID) (*shared.IdempotencyRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.idempotency[key]
	if !ok {
		return nil, infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	copied := *record
	return &copied, nil
}

// Repositories

func (s *fakeStore) Reserve(_ context.Context, _ db.DBTX, slotID, experienceID uuid.UUID, participants int32) (int32, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	slot, ok := s.slots[slotID]
	if !ok || slot.ExperienceID != experienceID {
		return 0, infra.WrapRepoErr("slot not found for experience", nil, infra.KindNotFound)
	}
	if slot.Capacity-slot.Booked < participants {
		return 0, infra.WrapRepoErr("insufficient capacity", nil, infra.KindConflict)
	}
	slot.Booked += participants
	return slot.Booked, nil
}

func (s *fakeStore) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	guest := b.Guest()
	pricing := b.Pricing()
	s.bookings[b.ID()] = &queries.BookingView{
		ID:           b.ID(),
		ExperienceID: b.ExperienceID(),
		SlotID:       b.SlotID(),
		FirstName:    guest.FirstName(),
		LastName:     guest.LastName(),
		Email:        guest.Email(),
		Phone:        guest.Phone(),
		Participants: b.Participants(),
		Subtotal:     pricing.Subtotal(),
		Discount:     pricing.Discount(),
		TotalPrice:   pricing.Total(),
		PromoCode:    b.PromoCode(),
		CreatedAt:    testNow,
	}
	return b.ID(), nil
}

func (s *fakeStore) TryInsert(_ context.Context, _ db.DBTX, key uuid.UUID, endpoint, requestHash string, expiresAt time.Time) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.idempotency[key]; ok && existing.ExpiresAt.After(s.now) {
		return false, nil
	}
	s.idempotency[key] = &shared.IdempotencyRecord{
		Key:         key,
		Status:      "processing",
		RequestHash: requestHash,
		ExpiresAt:   expiresAt,
	}
	_ = endpoint
	return true, nil
}

func (s *fakeStore) UpdateStatusCompleted(_ context.Context, _ db.DBTX, key uuid.UUID, resultBookingID uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	record, ok := s.idempotency[key]
	if !ok {
		return infra.WrapRepoErr("idempotency key not found", nil, infra.KindNotFound)
	}
	record.Status = "completed"
	record.ResultBookingID = &resultBookingID
	return nil
}

func (s *fakeStore) Release(_ context.Context, _ db.DBTX, key uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if record, ok := s.idempotency[key]; ok && record.Status == "processing" {
		delete(s.idempotency, key)
	}
	return nil
}

// BookingQueries

func (s *fakeStore) GetByID(_ context.Context, id uuid.UUID) (*queries.BookingView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	view, ok := s.bookings[id]
	if !ok {
		return nil, queries.ErrBookingNotFound
	}
	copied := *view
	return &copied, nil
}

func newCommandsUnderTest(store *fakeStore) commands.BookingCommands {
	mockClock := clock.NewMockClock(testNow)
	factory := booking.NewFactory(mockClock)
	return commands.NewBookingCommands(store, factory, store, mockClock)
}

func seedCatalog(store *fakeStore, capacity int32) (expID, slotID uuid.UUID) {
	exp := builder.NewExperienceBuilder()
	slot := builder.NewSlotBuilder(exp.ID).WithCapacity(capacity)
	store.experiences[exp.ID] = exp.BuildSnapshot()
	store.slots[slot.ID] = slot.BuildSnapshot()
	return exp.ID, slot.ID
}

func bookingInput(expID, slotID uuid.UUID) commands.CreateBookingInput {
	b := builder.NewBookingBuilder()
	b.ExperienceID = expID
	b.SlotID = slotID
	return b.BuildInput()
}

func TestCreateBooking(t *testing.T) {
	ctx := context.Background()

	t.Run("creates booking and reserves capacity", func(t *testing.T) {
		store := newFakeStore()
		expID, slotID := seedCatalog(store, 12)
		uc := newCommandsUnderTest(store)

		result, err := uc.CreateBooking(ctx, bookingInput(expID, slotID), nil)
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.False(t, result.IsReplayed)
		assert.Equal(t, result.Booking.ID, result.ConfirmationID)
		assert.Equal(t, int64(5000), result.Booking.Subtotal)
		assert.Equal(t, int64(5000), result.Booking.TotalPrice)
		assert.Equal(t, int32(2), store.slots[slotID].Booked)
	})

	t.Run("applies promo discount", func(t *testing.T) {
		store := newFakeStore()
		expID, slotID := seedCatalog(store, 12)
		store.promos["SAVE10"] = builder.NewPromoBuilder().BuildSnapshot()
		uc := newCommandsUnderTest(store)

		input := bookingInput(expID, slotID)
		code := "SAVE10"
		input.PromoCode = &code

		result, err := uc.CreateBooking(ctx, input, nil)
		require.NoError(t, err)

		assert.Equal(t, int64(5000), result.Booking.Subtotal)
		assert.Equal(t, int64(500), result.Booking.Discount)
		assert.Equal(t, int64(4500), result.Booking.TotalPrice)
		require.NotNil(t, result.Booking.PromoCode)
		assert.Equal(t, "SAVE10", *result.Booking.PromoCode)
	})

	t.Run("unknown promo degrades to full price", func(t *testing.T) {
		store := newFakeStore()
		expID, slotID := seedCatalog(store, 12)
		uc := newCommandsUnderTest(store)

		input := bookingInput(expID, slotID)
		code := "NOSUCHCODE"
		input.PromoCode = &code

		result, err := uc.CreateBooking(ctx, input, nil)
		require.NoError(t, err)

		assert.Zero(t, result.Booking.Discount)
		assert.Equal(t, int64(5000), result.Booking.TotalPrice)
		require.NotNil(t, result.Booking.PromoCode)
		assert.Equal(t, "NOSUCHCODE", *result.Booking.PromoCode)
	})

	t.Run("unknown experience", func(t *testing.T) {
		store := newFakeStore()
		_, slotID := seedCatalog(store, 12)
		uc := newCommandsUnderTest(store)

		_, err := uc.CreateBooking(ctx, bookingInput(uuid.New(), slotID), nil)
		assert.ErrorIs(t, err, commands.ErrExperienceNotFound)
	})

	t.Run("unknown slot", func(t *testing.T) {
		store := newFakeStore()
		expID, _ := seedCatalog(store, 12)
		uc := newCommandsUnderTest(store)

		_, err := uc.CreateBooking(ctx, bookingInput(expID, uuid.New()), nil)
		assert.ErrorIs(t, err, commands.ErrInvalidSlot)
	})

	t.Run("slot belonging to another experience", func(t *testing.T) {
		store := newFakeStore()
		expID, _ := seedCatalog(store, 12)
		otherExpID, otherSlotID := seedCatalog(store, 12)
		_ = otherExpID
		uc := newCommandsUnderTest(store)

		_, err := uc.CreateBooking(ctx, bookingInput(expID, otherSlotID), nil)
		assert.ErrorIs(t, err, commands.ErrInvalidSlot)
	})

	t.Run("invalid guest fails with domain validation", func(t *testing.T) {
		store := newFakeStore()
		expID, slotID := seedCatalog(store, 12)
		uc := newCommandsUnderTest(store)

		input := bookingInput(expID, slotID)
		input.Email = "not-an-email"

		_, err := uc.CreateBooking(ctx, input, nil)
		assert.ErrorIs(t, err, commands.ErrDomainValidation)
		assert.Zero(t, store.slots[slotID].Booked, "failed booking must not consume capacity")
	})

	t.Run("insufficient capacity", func(t *testing.T) {
		store := newFakeStore()
		expID, slotID := seedCatalog(store, 3)
		uc := newCommandsUnderTest(store)

		input := bookingInput(expID, slotID)
		input.Participants = 4

		_, err := uc.CreateBooking(ctx, input, nil)
		assert.ErrorIs(t, err, commands.ErrInsufficientCapacity)
		assert.Zero(t, store.slots[slotID].Booked)
	})

	t.Run("exact remaining capacity succeeds", func(t *testing.T) {
		store := newFakeStore()
		expID, slotID := seedCatalog(store, 3)
		uc := newCommandsUnderTest(store)

		input := bookingInput(expID, slotID)
		input.Participants = 3

		_, err := uc.CreateBooking(ctx, input, nil)
		require.NoError(t, err)
		assert.Equal(t, int32(3), store.slots[slotID].Booked)

		_, err = uc.CreateBooking(ctx, bookingInput(expID, slotID), nil)
		assert.ErrorIs(t, err, commands.ErrInsufficientCapacity)
	})
}

func TestCreateBookingConcurrency(t *testing.T) {
	// 20 concurrent two-seat requests against 12 seats: exactly 6 must
	// succeed and booked must land on capacity, never beyond.
	store := newFakeStore()
	expID, slotID := seedCatalog(store, 12)
	uc := newCommandsUnderTest(store)

	const attempts = 20
	var wg sync.WaitGroup
	errCh := make(chan error, attempts)

	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := uc.CreateBooking(context.Background(), bookingInput(expID, slotID), nil)
			errCh <- err
		}()
	}
	wg.Wait()
	close(errCh)

	var succeeded, rejected int
	for err := range errCh {
		switch {
		case err == nil:
			succeeded++
		default:
			require.ErrorIs(t, err, commands.ErrInsufficientCapacity)
			rejected++
		}
	}

	assert.Equal(t, 6, succeeded)
	assert.Equal(t, attempts-6, rejected)
	assert.Equal(t, int32(12), store.slots[slotID].Booked)
	assert.Len(t, store.bookings, 6)
}

func TestCreateBookingIdempotency(t *testing.T) {
	ctx := context.Background()

	t.Run("replays completed request with same payload", func(t *testing.T) {
		store := newFakeStore()
		expID, slotID := seedCatalog(store, 12)
		uc := newCommandsUnderTest(store)

		key := uuid.New()
		input := bookingInput(expID, slotID)

		first, err := uc.CreateBooking(ctx, input, &key)
		require.NoError(t, err)
		assert.False(t, first.IsReplayed)

		second, err := uc.CreateBooking(ctx, input, &key)
		require.NoError(t, err)
		assert.True(t, second.IsReplayed)
		if diff := cmp.Diff(first.Booking, second.Booking); diff != "" {
			t.Errorf("replayed booking differs from original (-first +second):\n%s", diff)
		}

		assert.Equal(t, int32(2), store.slots[slotID].Booked, "replay must not reserve again")
		assert.Len(t, store.bookings, 1)
	})

	t.Run("same key with different payload is rejected", func(t *testing.T) {
		store := newFakeStore()
		expID, slotID := seedCatalog(store, 12)
		uc := newCommandsUnderTest(store)

		key := uuid.New()
		input := bookingInput(expID, slotID)

		_, err := uc.CreateBooking(ctx, input, &key)
		require.NoError(t, err)

		altered := input
		altered.Participants = 5
		_, err = uc.CreateBooking(ctx, altered, &key)
		assert.ErrorIs(t, err, commands.ErrDuplicateBooking)
	})

	t.Run("in-flight key with same payload reports in progress", func(t *testing.T) {
		store := newFakeStore()
		expID, slotID := seedCatalog(store, 12)
		uc := newCommandsUnderTest(store)

		key := uuid.New()
		input := bookingInput(expID, slotID)

		// Simulate a crashed or still-running first request: the key is
		// claimed but never completed.
		claimed, err := store.TryInsert(ctx, nil, key, "POST /api/bookings", requestHashFor(input), testNow.Add(time.Hour))
		require.NoError(t, err)
		require.True(t, claimed)

		_, err = uc.CreateBooking(ctx, input, &key)
		assert.ErrorIs(t, err, commands.ErrIdempotencyInProgress)
	})

	t.Run("expired key is reclaimed", func(t *testing.T) {
		store := newFakeStore()
		expID, slotID := seedCatalog(store, 12)
		uc := newCommandsUnderTest(store)

		key := uuid.New()
		input := bookingInput(expID, slotID)

		store.idempotency[key] = &shared.IdempotencyRecord{
			Key:         key,
			Status:      "processing",
			RequestHash: "stale",
			ExpiresAt:   testNow.Add(-time.Minute),
		}

		result, err := uc.CreateBooking(ctx, input, &key)
		require.NoError(t, err)
		assert.False(t, result.IsReplayed)
	})

	t.Run("failed booking releases the key for retry", func(t *testing.T) {
		store := newFakeStore()
		expID, slotID := seedCatalog(store, 2)
		store.slots[slotID].Booked = 2
		uc := newCommandsUnderTest(store)

		key := uuid.New()
		input := bookingInput(expID, slotID)

		_, err := uc.CreateBooking(ctx, input, &key)
		require.ErrorIs(t, err, commands.ErrInsufficientCapacity)
		assert.NotContains(t, store.idempotency, key, "failed booking must not hold the key")

		// Capacity frees up (a cancellation); the same key must retry as a
		// fresh request, not report an in-progress claim.
		store.slots[slotID].Booked = 0

		result, err := uc.CreateBooking(ctx, input, &key)
		require.NoError(t, err)
		assert.False(t, result.IsReplayed)
		assert.Equal(t, int32(2), store.slots[slotID].Booked)
	})
}

// requestHashFor mirrors the command's canonical request hashing so the
// in-progress fixture matches what a real first request would store.
func requestHashFor(input commands.CreateBookingInput) string {
	data, _ := json.Marshal(input)
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}
