package promo

import (
	"time"

	"github.com/google/uuid"
)

const (
	ReasonInvalidOrExpired = "Invalid or expired code"
	ReasonMinAmountNotMet  = "Minimum amount not met"
)

type PromoCode struct {
	id           uuid.UUID
	code         Code
	discountType DiscountType
	value        float64
	minAmount    *int64
	maxDiscount  *int64
	validFrom    time.Time
	validUntil   time.Time
	active       bool
}

func NewPromoCode(
	id uuid.UUID,
	code string,
	discountType string,
	value float64,
	minAmount, maxDiscount *int64,
	validFrom, validUntil time.Time,
	active bool,
) (*PromoCode, error) {
	promoCode, err := NewCode(code)
	if err != nil {
		return nil, err
	}

	dt := DiscountType(discountType)
	if !dt.IsValid() {
		return nil, ErrInvalidType
	}
	if value < 0 {
		return nil, ErrNegativeValue
	}
	if minAmount != nil && *minAmount < 0 {
		return nil, ErrNegativeAmount
	}
	if maxDiscount != nil && *maxDiscount < 0 {
		return nil, ErrNegativeAmount
	}

	return &PromoCode{
		id:           id,
		code:         promoCode,
		discountType: dt,
		value:        value,
		minAmount:    minAmount,
		maxDiscount:  maxDiscount,
		validFrom:    validFrom,
		validUntil:   validUntil,
		active:       active,
	}, nil
}

// Evaluation is the outcome of applying a promo code to a subtotal.
// Discount is zero whenever Valid is false; an invalid promo never fails
// a booking, it just contributes nothing.
type Evaluation struct {
	Valid    bool
	Discount int64
	Reason   string
}

// IsUsableAt reports whether the code is active and inside its
// [validFrom, validUntil] window, both ends inclusive.
func (p *PromoCode) IsUsableAt(now time.Time) bool {
	if !p.active {
		return false
	}
	if now.Before(p.validFrom) || now.After(p.validUntil) {
		return false
	}
	return true
}

// Evaluate computes the discount for subtotal at the given time.
// Percentage codes discount subtotal*value/100; fixed codes discount the
// flat value, which may exceed the subtotal; the final total is floored
// at zero downstream, not here. maxDiscount caps either kind when set.
func (p *PromoCode) Evaluate(subtotal int64, now time.Time) Evaluation {
	if !p.IsUsableAt(now) {
		return Evaluation{Valid: false, Discount: 0, Reason: ReasonInvalidOrExpired}
	}
	if p.minAmount != nil && subtotal < *p.minAmount {
		return Evaluation{Valid: false, Discount: 0, Reason: ReasonMinAmountNotMet}
	}

	var discount int64
	if p.discountType == TypePercentage {
		discount = int64(float64(subtotal) * p.value / 100.0)
	} else {
		discount = int64(p.value)
	}
	if p.maxDiscount != nil && discount > *p.maxDiscount {
		discount = *p.maxDiscount
	}

	return Evaluation{Valid: true, Discount: discount}
}

func (p *PromoCode) ID() uuid.UUID              { return p.id }
func (p *PromoCode) Code() Code                 { return p.code }
func (p *PromoCode) DiscountType() DiscountType { return p.discountType }
func (p *PromoCode) Value() float64             { return p.value }
func (p *PromoCode) MinAmount() *int64          { return p.minAmount }
func (p *PromoCode) MaxDiscount() *int64        { return p.maxDiscount }
func (p *PromoCode) ValidFrom() time.Time       { return p.validFrom }
func (p *PromoCode) ValidUntil() time.Time      { return p.validUntil }
func (p *PromoCode) Active() bool               { return p.active }
