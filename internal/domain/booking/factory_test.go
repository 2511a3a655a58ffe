//go:build unit

package booking_test

import (
	"testing"
	"time"

	"experience-booking/internal/domain/booking"
	"experience-booking/internal/pkg/clock"
	"experience-booking/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFactory() *booking.Factory {
	return booking.NewFactory(clock.NewMockClock(time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC)))
}

func mustGuest(t *testing.T) booking.Guest {
	t.Helper()
	guest, err := booking.NewGuest("Asha", "Verma", "asha.verma@example.com", "9876543210")
	require.NoError(t, err)
	return guest
}

func TestFactoryCreateBooking(t *testing.T) {
	factory := newTestFactory()

	expBuilder := builder.NewExperienceBuilder()
	exp, err := expBuilder.BuildDomain()
	require.NoError(t, err)
	slot, err := builder.NewSlotBuilder(exp.ID()).BuildDomain()
	require.NoError(t, err)

	t.Run("prices participants without promo", func(t *testing.T) {
		b, err := factory.CreateBooking(exp, slot, mustGuest(t), 2, nil, nil)
		require.NoError(t, err)

		assert.NotEqual(t, uuid.Nil, b.ID())
		assert.Equal(t, exp.ID(), b.ExperienceID())
		assert.Equal(t, slot.ID(), b.SlotID())
		assert.Equal(t, int32(2), b.Participants())
		assert.Equal(t, int64(5000), b.Pricing().Subtotal())
		assert.Zero(t, b.Pricing().Discount())
		assert.Equal(t, int64(5000), b.Pricing().Total())
		assert.Nil(t, b.PromoCode())
		assert.Equal(t, b.ID(), b.ConfirmationID())
	})

	t.Run("applies valid percentage promo", func(t *testing.T) {
		p, err := builder.NewPromoBuilder().BuildDomain() // SAVE10: 10%
		require.NoError(t, err)

		code := "SAVE10"
		b, err := factory.CreateBooking(exp, slot, mustGuest(t), 1, &code, p)
		require.NoError(t, err)

		assert.Equal(t, int64(2500), b.Pricing().Subtotal())
		assert.Equal(t, int64(250), b.Pricing().Discount())
		assert.Equal(t, int64(2250), b.Pricing().Total())
		require.NotNil(t, b.PromoCode())
		assert.Equal(t, "SAVE10", *b.PromoCode())
	})

	t.Run("fixed promo larger than subtotal floors total at zero", func(t *testing.T) {
		cheapExp, err := builder.NewExperienceBuilder().WithPrice(50).BuildDomain()
		require.NoError(t, err)
		cheapSlot, err := builder.NewSlotBuilder(cheapExp.ID()).BuildDomain()
		require.NoError(t, err)

		p, err := builder.NewPromoBuilder().WithCode("FLAT100").WithType("fixed").WithValue(100).BuildDomain()
		require.NoError(t, err)

		code := "FLAT100"
		b, err := factory.CreateBooking(cheapExp, cheapSlot, mustGuest(t), 1, &code, p)
		require.NoError(t, err)

		assert.Equal(t, int64(50), b.Pricing().Subtotal())
		assert.Equal(t, int64(100), b.Pricing().Discount())
		assert.Zero(t, b.Pricing().Total())
	})

	t.Run("expired promo degrades to zero discount but records the code", func(t *testing.T) {
		p, err := builder.NewPromoBuilder().
			WithValidity(time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC), time.Date(2020, 12, 31, 0, 0, 0, 0, time.UTC)).
			BuildDomain()
		require.NoError(t, err)

		code := "SAVE10"
		b, err := factory.CreateBooking(exp, slot, mustGuest(t), 2, &code, p)
		require.NoError(t, err)

		assert.Zero(t, b.Pricing().Discount())
		assert.Equal(t, int64(5000), b.Pricing().Total())
		require.NotNil(t, b.PromoCode())
		assert.Equal(t, "SAVE10", *b.PromoCode())
	})

	t.Run("rejects zero participants", func(t *testing.T) {
		_, err := factory.CreateBooking(exp, slot, mustGuest(t), 0, nil, nil)
		assert.ErrorIs(t, err, booking.ErrInvalidPeople)
	})

	t.Run("rejects slot from another experience", func(t *testing.T) {
		foreignSlot, err := builder.NewSlotBuilder(uuid.New()).BuildDomain()
		require.NoError(t, err)

		_, err = factory.CreateBooking(exp, foreignSlot, mustGuest(t), 1, nil, nil)
		assert.ErrorIs(t, err, booking.ErrSlotMismatch)
	})
}

func TestNewGuest(t *testing.T) {
	cases := []struct {
		name      string
		firstName string
		lastName  string
		email     string
		phone     string
		errIs     error
	}{
		{name: "valid guest", firstName: "Asha", lastName: "Verma", email: "asha@example.com", phone: "9876543210"},
		{name: "first name too short", firstName: "A", lastName: "Verma", email: "asha@example.com", phone: "9876543210", errIs: booking.ErrNameTooShort},
		{name: "last name too short", firstName: "Asha", lastName: "V", email: "asha@example.com", phone: "9876543210", errIs: booking.ErrNameTooShort},
		{name: "email without at sign", firstName: "Asha", lastName: "Verma", email: "asha.example.com", phone: "9876543210", errIs: booking.ErrInvalidEmail},
		{name: "phone too short", firstName: "Asha", lastName: "Verma", email: "asha@example.com", phone: "987654321", errIs: booking.ErrInvalidPhone},
		{name: "phone too long", firstName: "Asha", lastName: "Verma", email: "asha@example.com", phone: "9876543210987654", errIs: booking.ErrInvalidPhone},
		{name: "phone at boundaries", firstName: "Asha", lastName: "Verma", email: "asha@example.com", phone: "987654321098765"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := booking.NewGuest(tc.firstName, tc.lastName, tc.email, tc.phone)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestNewPricing(t *testing.T) {
	t.Run("total floors at zero", func(t *testing.T) {
		p, err := booking.NewPricing(50, 100)
		require.NoError(t, err)
		assert.Equal(t, int64(50), p.Subtotal())
		assert.Equal(t, int64(100), p.Discount())
		assert.Zero(t, p.Total())
	})

	t.Run("rejects negative amounts", func(t *testing.T) {
		_, err := booking.NewPricing(-1, 0)
		assert.ErrorIs(t, err, booking.ErrNegativePricing)

		_, err = booking.NewPricing(100, -1)
		assert.ErrorIs(t, err, booking.ErrNegativePricing)
	})
}
