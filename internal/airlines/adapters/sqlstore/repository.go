// Package sqlstore stores airlines in SQLite or MySQL.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"route-analytics-service/internal/airlines/core/domain"
	"route-analytics-service/internal/airlines/core/ports"
	"route-analytics-service/internal/platform/database"
)

type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (database.RowScanner, error)
}

type AirlineRepository struct {
	db        DB
	upsertSQL string
}

var _ ports.AirlineRepositoryPort = (*AirlineRepository)(nil)

const (
	sqliteUpsertSQL = `INSERT INTO airlines (id, name) VALUES (?, ?)
ON CONFLICT (id) DO UPDATE SET name = excluded.name`
	mysqlUpsertSQL = `INSERT INTO airlines (id, name) VALUES (?, ?)
ON DUPLICATE KEY UPDATE name = VALUES(name)`
)

func NewAirlineRepository(db DB, backend database.Backend) (*AirlineRepository, error) {
	switch backend {
	case database.SQLite:
		return &AirlineRepository{db: db, upsertSQL: sqliteUpsertSQL}, nil
	case database.MySQL:
		return &AirlineRepository{db: db, upsertSQL: mysqlUpsertSQL}, nil
	default:
		return nil, fmt.Errorf("sqlstore: unsupported backend %q", backend)
	}
}

func (r *AirlineRepository) SaveAirline(ctx context.Context, a *domain.Airline) error {
	_, err := r.db.ExecContext(ctx, r.upsertSQL, a.ID, a.Name)
	return err
}

func (r *AirlineRepository) GetAirline(ctx context.Context, id string) (domain.Airline, error) {
	airlines, err := r.query(ctx, "SELECT id, name FROM airlines WHERE id = ?", id)
	if err != nil {
		return domain.Airline{}, err
	}
	if len(airlines) == 0 {
		return domain.Airline{}, ports.ErrAirlineNotFound
	}
	return airlines[0], nil
}

func (r *AirlineRepository) ListAirlines(ctx context.Context) ([]domain.Airline, error) {
	return r.query(ctx, "SELECT id, name FROM airlines ORDER BY id")
}

func (r *AirlineRepository) DeleteAirline(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, "DELETE FROM airlines WHERE id = ?", id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ports.ErrAirlineNotFound
	}
	return nil
}

func (r *AirlineRepository) ExistingAirlines(ctx context.Context, ids []string) ([]string, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}

	airlines, err := r.query(ctx,
		"SELECT id, name FROM airlines WHERE id IN ("+placeholders(len(ids))+")", args...)
	if err != nil {
		return nil, err
	}
	found := make([]string, len(airlines))
	for i, a := range airlines {
		found[i] = a.ID
	}
	return found, nil
}

func (r *AirlineRepository) query(ctx context.Context, query string, args ...any) ([]domain.Airline, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var airlines []domain.Airline
	for rows.Next() {
		var a domain.Airline
		if err := rows.Scan(&a.ID, &a.Name); err != nil {
			return nil, err
		}
		airlines = append(airlines, a)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return airlines, nil
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
