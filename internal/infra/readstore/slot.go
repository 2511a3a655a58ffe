package readstore

import (
	"context"
	"time"

	"experience-booking/internal/infra"
	"experience-booking/internal/infra/db"
	"experience-booking/internal/pkg/pgconv"
	"experience-booking/internal/usecase/queries"
	"experience-booking/internal/usecase/shared"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
)

type SlotReadStore struct {
	db db.DBTX
}

func NewSlotReadStore(dbtx db.DBTX) *SlotReadStore {
	return &SlotReadStore{db: dbtx}
}

const getSlotByIDSQL = `
SELECT id, experience_id, date, start_time, end_time, capacity, booked
FROM slots
WHERE id = $1`

func (r *SlotReadStore) FindByID(ctx context.Context, id uuid.UUID) (*shared.SlotSnapshot, error) {
	var (
		snapshot shared.SlotSnapshot
		date     pgtype.Timestamptz
	)
	err := r.db.QueryRow(ctx, getSlotByIDSQL, id).Scan(
		&snapshot.ID, &snapshot.ExperienceID, &date,
		&snapshot.StartTime, &snapshot.EndTime,
		&snapshot.Capacity, &snapshot.Booked,
	)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("slot not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find slot by ID", err)
	}
	snapshot.Date = pgconv.TimeFromPgtype(date)
	return &snapshot, nil
}

const listSlotsSQL = `
SELECT id, experience_id, date, start_time, end_time, capacity, booked
FROM slots
WHERE experience_id = $1
ORDER BY date ASC, start_time ASC`

const listSlotsByDaySQL = `
SELECT id, experience_id, date, start_time, end_time, capacity, booked
FROM slots
WHERE experience_id = $1 AND date >= $2 AND date < $3
ORDER BY date ASC, start_time ASC`

// FindByExperienceID lists an experience's slots, optionally narrowed to
// one UTC day.
func (r *SlotReadStore) FindByExperienceID(ctx context.Context, experienceID uuid.UUID, day *time.Time) ([]*queries.SlotView, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if day != nil {
		start := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		end := start.AddDate(0, 0, 1)
		rows, err = r.db.Query(ctx, listSlotsByDaySQL, experienceID, pgconv.TimeToPgtype(start), pgconv.TimeToPgtype(end))
	} else {
		rows, err = r.db.Query(ctx, listSlotsSQL, experienceID)
	}
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list slots", err)
	}
	defer rows.Close()

	var result []*queries.SlotView
	for rows.Next() {
		var (
			view queries.SlotView
			date pgtype.Timestamptz
		)
		err := rows.Scan(
			&view.ID, &view.ExperienceID, &date,
			&view.StartTime, &view.EndTime,
			&view.Capacity, &view.Booked,
		)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan slot row", err)
		}
		view.Date = pgconv.TimeFromPgtype(date)
		view.Available = view.Capacity - view.Booked
		result = append(result, &view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate slot rows", err)
	}

	return result, nil
}
