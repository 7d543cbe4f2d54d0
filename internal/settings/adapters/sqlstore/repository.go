// Package sqlstore stores chart settings in SQLite or MySQL. Filter lists are
// JSON arrays and range bounds are nullable Unix seconds.
package sqlstore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"

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

var _ ports.SettingRepositoryPort = (*SettingRepository)(nil)

func NewSettingRepository(db DB, backend database.Backend) (*SettingRepository, error) {
	if backend != database.SQLite && backend != database.MySQL {
		return nil, fmt.Errorf("sqlstore: unsupported backend %q", backend)
	}
	return &SettingRepository{db: db}, nil
}

const insertSettingSQL = `
INSERT INTO settings (
    id, name, creator, shareable, range_from, range_to,
    granularity, axis_x, axis_y, airlines, origins, destinations
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

func (r *SettingRepository) InsertSetting(ctx context.Context, s *domain.Setting) error {
	airlines, err := encodeList(s.Airlines)
	if err != nil {
		return err
	}
	origins, err := encodeList(s.Origins)
	if err != nil {
		return err
	}
	destinations, err := encodeList(s.Destinations)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, insertSettingSQL,
		s.ID.String(),
		s.Name,
		s.Creator,
		s.Shareable,
		unixOrNull(s.RangeFrom),
		unixOrNull(s.RangeTo),
		s.Granularity,
		s.AxisX,
		s.AxisY,
		airlines,
		origins,
		destinations,
	)
	return err
}

const selectSettingColumns = `
SELECT
    id, name, creator, shareable, range_from, range_to,
    granularity, axis_x, axis_y, airlines, origins, destinations
FROM settings
`

func (r *SettingRepository) GetSetting(ctx context.Context, id uuid.UUID) (domain.Setting, error) {
	settings, err := r.query(ctx, selectSettingColumns+"WHERE id = ?", id.String())
	if err != nil {
		return domain.Setting{}, err
	}
	if len(settings) == 0 {
		return domain.Setting{}, ports.ErrSettingNotFound
	}
	return settings[0], nil
}

func (r *SettingRepository) SearchSettings(ctx context.Context, term string) ([]domain.Setting, error) {
	pattern := database.ContainsPattern(term)
	return r.query(ctx, selectSettingColumns+`
WHERE LOWER(name) LIKE LOWER(?) ESCAPE '!' OR LOWER(creator) LIKE LOWER(?) ESCAPE '!'
ORDER BY name, id`, pattern, pattern)
}

func (r *SettingRepository) VisibleSettings(ctx context.Context, creator string) ([]domain.Setting, error) {
	return r.query(ctx, selectSettingColumns+`
WHERE LOWER(creator) LIKE LOWER(?) ESCAPE '!' OR shareable = 1
ORDER BY name, id`, database.ContainsPattern(creator))
}

func (r *SettingRepository) DeleteSetting(ctx context.Context, id uuid.UUID) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM settings WHERE id = ?", id.String())
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
			s                               domain.Setting
			id                              string
			from, to                        sql.NullInt64
			airlines, origins, destinations string
		)
		if err := rows.Scan(
			&id,
			&s.Name,
			&s.Creator,
			&s.Shareable,
			&from,
			&to,
			&s.Granularity,
			&s.AxisX,
			&s.AxisY,
			&airlines,
			&origins,
			&destinations,
		); err != nil {
			return nil, err
		}

		if s.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("setting id %q: %w", id, err)
		}
		s.RangeFrom = fromUnix(from)
		s.RangeTo = fromUnix(to)
		if s.Airlines, err = decodeList(airlines); err != nil {
			return nil, err
		}
		if s.Origins, err = decodeList(origins); err != nil {
			return nil, err
		}
		if s.Destinations, err = decodeList(destinations); err != nil {
			return nil, err
		}
		settings = append(settings, s)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return settings, nil
}

func encodeList(list []string) (string, error) {
	if list == nil {
		list = []string{}
	}
	b, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeList(raw string) ([]string, error) {
	list := []string{}
	if raw == "" {
		return list, nil
	}
	if err := json.Unmarshal([]byte(raw), &list); err != nil {
		return nil, fmt.Errorf("decode list: %w", err)
	}
	return list, nil
}

func unixOrNull(t *time.Time) sql.NullInt64 {
	if t == nil {
		return sql.NullInt64{}
	}
	return sql.NullInt64{Int64: t.Unix(), Valid: true}
}

func fromUnix(n sql.NullInt64) *time.Time {
	if !n.Valid {
		return nil
	}
	t := time.Unix(n.Int64, 0).UTC()
	return &t
}
