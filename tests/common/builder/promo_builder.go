//go:build unit || e2e

package builder

import (
	"time"

	dompromo "experience-booking/internal/domain/promo"
	"experience-booking/internal/usecase/shared"

	"github.com/google/uuid"
)

type PromoBuilder struct {
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

func NewPromoBuilder() *PromoBuilder {
	return &PromoBuilder{
		ID:         uuid.New(),
		Code:       "SAVE10",
		Type:       "percentage",
		Value:      10,
		ValidFrom:  time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2026, 12, 31, 0, 0, 0, 0, time.UTC),
		Active:     true,
	}
}

func (p *PromoBuilder) WithCode(code string) *PromoBuilder {
	p.Code = code
	return p
}

func (p *PromoBuilder) WithType(discountType string) *PromoBuilder {
	p.Type = discountType
	return p
}

func (p *PromoBuilder) WithValue(value float64) *PromoBuilder {
	p.Value = value
	return p
}

func (p *PromoBuilder) WithMinAmount(minAmount int64) *PromoBuilder {
	p.MinAmount = &minAmount
	return p
}

func (p *PromoBuilder) WithMaxDiscount(maxDiscount int64) *PromoBuilder {
	p.MaxDiscount = &maxDiscount
	return p
}

func (p *PromoBuilder) WithValidity(from, until time.Time) *PromoBuilder {
	p.ValidFrom = from
	p.ValidUntil = until
	return p
}

func (p *PromoBuilder) WithActive(active bool) *PromoBuilder {
	p.Active = active
	return p
}

func (p *PromoBuilder) BuildDomain() (*dompromo.PromoCode, error) {
	return dompromo.NewPromoCode(p.ID, p.Code, p.Type, p.Value, p.MinAmount, p.MaxDiscount, p.ValidFrom, p.ValidUntil, p.Active)
}

func (p *PromoBuilder) BuildSnapshot() *shared.PromoSnapshot {
	return &shared.PromoSnapshot{
		ID:          p.ID,
		Code:        p.Code,
		Type:        p.Type,
		Value:       p.Value,
		MinAmount:   p.MinAmount,
		MaxDiscount: p.MaxDiscount,
		ValidFrom:   p.ValidFrom,
		ValidUntil:  p.ValidUntil,
		Active:      p.Active,
	}
}
