package queries

import (
	"context"

	"experience-booking/internal/domain/promo"
	"experience-booking/internal/infra"
	"experience-booking/internal/pkg/clock"
	"experience-booking/internal/pkg/errs"
	"experience-booking/internal/usecase/shared"
)

type PromoReadStore interface {
	FindByCode(ctx context.Context, code string) (*shared.PromoSnapshot, error)
}

// PromoQueries validates a promo code against a checkout subtotal without
// mutating anything; it is the stateless preview used before booking.
type PromoQueries interface {
	Validate(ctx context.Context, code string, totalAmount int64) (*PromoValidationView, error)
}

type promoQueriesImpl struct {
	store PromoReadStore
	clock clock.Clock
}

func NewPromoQueries(store PromoReadStore, clock clock.Clock) PromoQueries {
	return &promoQueriesImpl{store: store, clock: clock}
}

func (q *promoQueriesImpl) Validate(ctx context.Context, code string, totalAmount int64) (*PromoValidationView, error) {
	snapshot, err := q.store.FindByCode(ctx, code)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			reason := promo.ReasonInvalidOrExpired
			return &PromoValidationView{
				Valid:    false,
				Discount: 0,
				Type:     promo.TypeFixed.String(),
				Message:  &reason,
			}, nil
		}
		return nil, errs.Wrap(err, "failed to look up promo code")
	}

	entity, err := promo.NewPromoCode(
		snapshot.ID, snapshot.Code, snapshot.Type, snapshot.Value,
		snapshot.MinAmount, snapshot.MaxDiscount,
		snapshot.ValidFrom, snapshot.ValidUntil, snapshot.Active,
	)
	if err != nil {
		return nil, errs.Wrap(err, "stored promo code is invalid")
	}

	eval := entity.Evaluate(totalAmount, q.clock.Now())
	view := &PromoValidationView{
		Valid:    eval.Valid,
		Discount: eval.Discount,
		Type:     snapshot.Type,
	}
	if !eval.Valid {
		reason := eval.Reason
		view.Message = &reason
	}
	return view, nil
}
