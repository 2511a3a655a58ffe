package readstore

import (
	"context"
	"fmt"
	"strings"

	"experience-booking/internal/infra"
	"experience-booking/internal/infra/db"
	"experience-booking/internal/pkg/pgconv"
	"experience-booking/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

type ExperienceReadStore struct {
	db db.DBTX
}

func NewExperienceReadStore(dbtx db.DBTX) *ExperienceReadStore {
	return &ExperienceReadStore{db: dbtx}
}

const experienceColumns = `
	id, title, description, location, category, price,
	duration, image_url, rating, review_count, created_at`

const getExperienceByIDSQL = `
SELECT` + experienceColumns + `
FROM experiences
WHERE id = $1`

func (r *ExperienceReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.ExperienceView, error) {
	row := r.db.QueryRow(ctx, getExperienceByIDSQL, id)
	view, err := scanExperienceView(row)
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("experience not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find experience by ID", err)
	}
	return view, nil
}

func (r *ExperienceReadStore) FindAll(ctx context.Context, filter queries.ExperienceFilter) ([]*queries.ExperienceView, error) {
	var (
		conds []string
		args  []any
	)
	addArg := func(cond string, value any) {
		args = append(args, value)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}

	if filter.Category != nil {
		addArg("category = $%d", *filter.Category)
	}
	if filter.MinPrice != nil {
		addArg("price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		addArg("price <= $%d", *filter.MaxPrice)
	}
	if filter.Search != nil {
		args = append(args, "%"+*filter.Search+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf("(title ILIKE $%d OR description ILIKE $%d OR location ILIKE $%d)", n, n, n))
	}

	sql := "SELECT" + experienceColumns + "\nFROM experiences"
	if len(conds) > 0 {
		sql += "\nWHERE " + strings.Join(conds, " AND ")
	}
	sql += "\nORDER BY created_at DESC"

	rows, err := r.db.Query(ctx, sql, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list experiences", err)
	}
	defer rows.Close()

	var result []*queries.ExperienceView
	for rows.Next() {
		view, err := scanExperienceView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan experience row", err)
		}
		result = append(result, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate experience rows", err)
	}

	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanExperienceView(row rowScanner) (*queries.ExperienceView, error) {
	var (
		view      queries.ExperienceView
		createdAt pgtype.Timestamptz
	)
	err := row.Scan(
		&view.ID, &view.Title, &view.Description, &view.Location, &view.Category,
		&view.Price, &view.Duration, &view.ImageURL, &view.Rating, &view.ReviewCount,
		&createdAt,
	)
	if err != nil {
		return nil, err
	}
	view.CreatedAt = pgconv.TimeFromPgtype(createdAt)
	return &view, nil
}
