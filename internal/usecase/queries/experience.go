package queries

import (
	"context"
	"time"

	"experience-booking/internal/infra"
	"experience-booking/internal/pkg/errs"

	"github.com/google/uuid"
)

var ErrExperienceNotFound = errs.New("experience not found")

type ExperienceReadStore interface {
	FindByID(ctx context.Context, id uuid.UUID) (*ExperienceView, error)
	FindAll(ctx context.Context, filter ExperienceFilter) ([]*ExperienceView, error)
}

type SlotReadStore interface {
	FindByExperienceID(ctx context.Context, experienceID uuid.UUID, day *time.Time) ([]*SlotView, error)
}

type ExperienceQueries interface {
	List(ctx context.Context, filter ExperienceFilter) ([]*ExperienceView, error)
	GetByID(ctx context.Context, id uuid.UUID) (*ExperienceDetailView, error)
	ListSlots(ctx context.Context, experienceID uuid.UUID, day *time.Time) ([]*SlotView, error)
}

type experienceQueriesImpl struct {
	experiences ExperienceReadStore
	slots       SlotReadStore
}

func NewExperienceQueries(experiences ExperienceReadStore, slots SlotReadStore) ExperienceQueries {
	return &experienceQueriesImpl{
		experiences: experiences,
		slots:       slots,
	}
}

func (q *experienceQueriesImpl) List(ctx context.Context, filter ExperienceFilter) ([]*ExperienceView, error) {
	views, err := q.experiences.FindAll(ctx, filter)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list experiences")
	}
	return views, nil
}

func (q *experienceQueriesImpl) GetByID(ctx context.Context, id uuid.UUID) (*ExperienceDetailView, error) {
	view, err := q.experiences.FindByID(ctx, id)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return nil, ErrExperienceNotFound
		}
		return nil, errs.Wrap(err, "failed to get experience")
	}

	slots, err := q.slots.FindByExperienceID(ctx, id, nil)
	if err != nil {
		return nil, errs.Wrap(err, "failed to load slots for experience")
	}

	return &ExperienceDetailView{
		ExperienceView: *view,
		Slots:          slots,
	}, nil
}

// ListSlots mirrors the catalog behavior of returning an empty list for
// an unknown experience rather than a not-found error.
func (q *experienceQueriesImpl) ListSlots(ctx context.Context, experienceID uuid.UUID, day *time.Time) ([]*SlotView, error) {
	slots, err := q.slots.FindByExperienceID(ctx, experienceID, day)
	if err != nil {
		return nil, errs.Wrap(err, "failed to list slots")
	}
	return slots, nil
}
