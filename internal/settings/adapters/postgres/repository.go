package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"route-analytics-service/internal/platform/database"
	"route-analytics-service/internal/settings/core/domain"
	"route-analytics-service/internal/settings/core/ports"
)

type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (database.RowScanner, error)
}

type SettingRepository struct {
	db DB
}

func NewSettingRepository(db DB) *SettingRepository {
	return &SettingRepository{db: db}
}

var _ ports.SettingRepositoryPort = (*SettingRepository)(nil)

const insertSettingSQL = `
INSERT INTO settings (
    id,
    name,
    creator,
    shareable,
    range_from,
    range_to,
    granularity,
    axis_x,
    axis_y,
    airlines,
    origins,
    destinations
) VALUES (
    $1, $2, $3, $4, $5, $6,
    $7, $8, $9, $10, $11, $12
);
`

func (r *SettingRepository) InsertSetting(ctx context.Context, s *domain.Setting) error {
	_, err := r.db.ExecContext(ctx, insertSettingSQL,
		s.ID,
		s.Name,
		s.Creator,
		s.Shareable,
		nullTime(s.RangeFrom),
		nullTime(s.RangeTo),
		s.Granularity,
		s.AxisX,
		s.AxisY,
		pq.Array(s.Airlines),
		pq.Array(s.Origins),
		pq.Array(s.Destinations),
	)
	return err
}

const selectSettingColumns = `
SELECT
    id,
    name,
    creator,
    shareable,
    range_from,
    range_to,
    granularity,
    axis_x,
    axis_y,
    airlines,
    origins,
    destinations
FROM settings
`

func (r *SettingRepository) GetSetting(ctx context.Context, id uuid.UUID) (domain.Setting, error) {
	settings, err := r.query(ctx, selectSettingColumns+"WHERE id = $1", id)
	if err != nil {
		return domain.Setting{}, err
	}
	if len(settings) == 0 {
		return domain.Setting{}, ports.ErrSettingNotFound
	}
	return settings[0], nil
}

func (r *SettingRepository) SearchSettings(ctx context.Context, term string) ([]domain.Setting, error) {
	return r.query(ctx, selectSettingColumns+`
WHERE name ILIKE $1 ESCAPE '!' OR creator ILIKE $1 ESCAPE '!'
ORDER BY name, id`, database.ContainsPattern(term))
}

func (r *SettingRepository) VisibleSettings(ctx context.Context, creator string) ([]domain.Setting, error) {
	return r.query(ctx, selectSettingColumns+`
WHERE creator ILIKE $1 ESCAPE '!' OR shareable = TRUE
ORDER BY name, id`, database.ContainsPattern(creator))
}

func (r *SettingRepository) DeleteSetting(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM settings WHERE id = $1", id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ports.ErrSettingNotFound
	}
	return nil
}

func (r *SettingRepository) query(ctx context.Context, query string, args ...any) ([]domain.Setting, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var settings []domain.Setting
	for rows.Next() {
		var (
			s        domain.Setting
			from, to sql.NullTime
		)
		if err := rows.Scan(
			&s.ID,
			&s.Name,
			&s.Creator,
			&s.Shareable,
			&from,
			&to,
			&s.Granularity,
			&s.AxisX,
			&s.AxisY,
			pq.Array(&s.Airlines),
			pq.Array(&s.Origins),
			pq.Array(&s.Destinations),
		); err != nil {
			return nil, err
		}
		s.RangeFrom = timePtr(from)
		s.RangeTo = timePtr(to)
		settings = append(settings, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return settings, nil
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}

func timePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	t := nt.Time.UTC()
	return &t
}
