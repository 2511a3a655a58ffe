//go:build unit

package experience_test

import (
	"testing"

	"experience-booking/internal/domain/experience"
	"experience-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewSlot(t *testing.T) {
	cases := []struct {
		name     string
		capacity int32
		booked   int32
		errIs    error
	}{
		{name: "empty slot", capacity: 12, booked: 0},
		{name: "full slot", capacity: 12, booked: 12},
		{name: "zero capacity", capacity: 0, booked: 0, errIs: experience.ErrInvalidCapacity},
		{name: "negative capacity", capacity: -1, booked: 0, errIs: experience.ErrInvalidCapacity},
		{name: "negative booked", capacity: 12, booked: -1, errIs: experience.ErrInvalidBooked},
		{name: "booked above capacity", capacity: 12, booked: 13, errIs: experience.ErrInvalidBooked},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := builder.NewSlotBuilder(uuid.New()).WithCapacity(tc.capacity).WithBooked(tc.booked).BuildDomain()
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSlotCapacityArithmetic(t *testing.T) {
	expID := uuid.New()
	slot, err := builder.NewSlotBuilder(expID).WithCapacity(12).WithBooked(9).BuildDomain()
	require.NoError(t, err)

	assert.Equal(t, int32(3), slot.Remaining())
	assert.True(t, slot.CanAccommodate(3))
	assert.False(t, slot.CanAccommodate(4))
	assert.False(t, slot.CanAccommodate(0))

	assert.True(t, slot.BelongsTo(expID))
	assert.False(t, slot.BelongsTo(uuid.New()))
}

func TestNewExperience(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		exp, err := builder.NewExperienceBuilder().BuildDomain()
		require.NoError(t, err)
		assert.Equal(t, "Sunrise Himalayan Trek", exp.Title())
		assert.Equal(t, int64(2500), exp.Price())
	})

	t.Run("rejects empty title", func(t *testing.T) {
		_, err := builder.NewExperienceBuilder().WithTitle("  ").BuildDomain()
		assert.ErrorIs(t, err, experience.ErrEmptyTitle)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		_, err := builder.NewExperienceBuilder().WithPrice(-1).BuildDomain()
		assert.ErrorIs(t, err, experience.ErrNegativePrice)
	})
}
