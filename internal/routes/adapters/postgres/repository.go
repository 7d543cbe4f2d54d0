package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"

	"route-analytics-service/internal/platform/database"
	"route-analytics-service/internal/routes/core/domain"
	"route-analytics-service/internal/routes/core/ports"
)

type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (database.RowScanner, error)
}

type RouteRepository struct {
	db DB
}

func NewRouteRepository(db DB) *RouteRepository {
	return &RouteRepository{db: db}
}

var (
	_ ports.RouteRepositoryPort = (*RouteRepository)(nil)
	_ ports.RouteReaderPort     = (*RouteRepository)(nil)
)

// SQL template
const insertRouteSQL = `
INSERT INTO routes (
    id,
    route_date,
    airline,
    origin,
    destination,
    delays,
    cancelled,
    passenger_count,
    flight_count,
    dedupe_key
) VALUES (
    $1, $2, $3, $4, $5,
    $6, $7, $8, $9, $10
)
ON CONFLICT (dedupe_key) DO NOTHING;
`

func (r *RouteRepository) InsertRoute(ctx context.Context, route *domain.Route) (bool, error) {
	res, err := r.db.ExecContext(ctx, insertRouteSQL,
		route.ID,
		route.Date.UTC(),
		route.Airline,
		route.Origin,
		route.Destination,
		route.Delays,
		route.Cancelled,
		route.PassengerCount,
		route.FlightCount,
		route.DedupeKey,
	)
	if err != nil {
		return false, err
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}

	// rows == 1  -> new record
	// rows == 0  -> duplicate (ON CONFLICT DO NOTHING)
	return rows > 0, nil
}

const selectRouteColumns = `
SELECT
    id,
    route_date,
    airline,
    origin,
    destination,
    delays,
    cancelled,
    passenger_count,
    flight_count,
    dedupe_key
FROM routes
WHERE `

func (r *RouteRepository) FetchRoutes(ctx context.Context, q domain.RouteQuery) ([]domain.Route, error) {
	where := "route_date >= $1 AND route_date < $2"
	args := []any{q.From.UTC(), q.To.UTC()}
	argIndex := 3

	if len(q.Airlines) > 0 {
		where += fmt.Sprintf(" AND airline = ANY($%d)", argIndex)
		args = append(args, pq.Array(q.Airlines))
		argIndex++
	}
	if len(q.Destinations) > 0 {
		where += fmt.Sprintf(" AND destination = ANY($%d)", argIndex)
		args = append(args, pq.Array(q.Destinations))
	}

	query := selectRouteColumns + where + "\nORDER BY route_date, id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []domain.Route
	for rows.Next() {
		var rt domain.Route
		if err := rows.Scan(
			&rt.ID,
			&rt.Date,
			&rt.Airline,
			&rt.Origin,
			&rt.Destination,
			&rt.Delays,
			&rt.Cancelled,
			&rt.PassengerCount,
			&rt.FlightCount,
			&rt.DedupeKey,
		); err != nil {
			return nil, err
		}
		rt.Date = rt.Date.UTC()
		routes = append(routes, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return routes, nil
}

const existsBetweenSQL = `
SELECT EXISTS (
    SELECT 1 FROM routes WHERE route_date >= $1 AND route_date < $2
)`

func (r *RouteRepository) ExistsBetween(ctx context.Context, from, to time.Time) (bool, error) {
	rows, err := r.db.QueryContext(ctx, existsBetweenSQL, from.UTC(), to.UTC())
	if err != nil {
		return false, err
	}
	defer rows.Close()

	var exists bool
	if rows.Next() {
		if err := rows.Scan(&exists); err != nil {
			return false, err
		}
	}
	if err := rows.Err(); err != nil {
		return false, err
	}
	return exists, nil
}
