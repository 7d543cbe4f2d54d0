package postgres

import (
	"context"
	"database/sql"

	"github.com/lib/pq"

	"route-analytics-service/internal/airlines/core/domain"
	"route-analytics-service/internal/airlines/core/ports"
	"route-analytics-service/internal/platform/database"
)

type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (database.RowScanner, error)
}

type AirlineRepository struct {
	db DB
}

func NewAirlineRepository(db DB) *AirlineRepository {
	return &AirlineRepository{db: db}
}

var _ ports.AirlineRepositoryPort = (*AirlineRepository)(nil)

const upsertAirlineSQL = `
INSERT INTO airlines (id, name)
VALUES ($1, $2)
ON CONFLICT (id) DO UPDATE SET name = EXCLUDED.name;
`

func (r *AirlineRepository) SaveAirline(ctx context.Context, a *domain.Airline) error {
	_, err := r.db.ExecContext(ctx, upsertAirlineSQL, a.ID, a.Name)
	return err
}

func (r *AirlineRepository) GetAirline(ctx context.Context, id string) (domain.Airline, error) {
	airlines, err := r.query(ctx, "SELECT id, name FROM airlines WHERE id = $1", id)
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
	res, err := r.db.ExecContext(ctx, "DELETE FROM airlines WHERE id = $1", id)
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
	rows, err := r.db.QueryContext(ctx, "SELECT id FROM airlines WHERE id = ANY($1)", pq.Array(ids))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var found []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		found = append(found, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
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
