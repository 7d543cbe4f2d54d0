// Package sqlstore stores routes in SQLite or MySQL. Dates are kept as Unix
// seconds so both backends compare them the same way.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"route-analytics-service/internal/platform/database"
	"route-analytics-service/internal/routes/core/domain"
	"route-analytics-service/internal/routes/core/ports"
)

type DB interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (database.RowScanner, error)
}

type RouteRepository struct {
	db        DB
	insertSQL string
}

var (
	_ ports.RouteRepositoryPort = (*RouteRepository)(nil)
	_ ports.RouteReaderPort     = (*RouteRepository)(nil)
)

// NewRouteRepository returns a repository for backend, which must be
// database.SQLite or database.MySQL.
func NewRouteRepository(db DB, backend database.Backend) (*RouteRepository, error) {
	var verb string
	switch backend {
	case database.SQLite:
		verb = "INSERT OR IGNORE INTO"
	case database.MySQL:
		verb = "INSERT IGNORE INTO"
	default:
		return nil, fmt.Errorf("sqlstore: unsupported backend %q", backend)
	}

	return &RouteRepository{
		db: db,
		insertSQL: verb + ` routes (
    id, route_date, airline, origin, destination,
    delays, cancelled, passenger_count, flight_count, dedupe_key
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
	}, nil
}

func (r *RouteRepository) InsertRoute(ctx context.Context, route *domain.Route) (bool, error) {
	res, err := r.db.ExecContext(ctx, r.insertSQL,
		route.ID.String(),
		route.Date.Unix(),
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
	return rows > 0, nil
}

func (r *RouteRepository) FetchRoutes(ctx context.Context, q domain.RouteQuery) ([]domain.Route, error) {
	where := "route_date >= ? AND route_date < ?"
	args := []any{ceilUnix(q.From), ceilUnix(q.To)}

	if len(q.Airlines) > 0 {
		where += " AND airline IN (" + placeholders(len(q.Airlines)) + ")"
		for _, a := range q.Airlines {
			args = append(args, a)
		}
	}
	if len(q.Destinations) > 0 {
		where += " AND destination IN (" + placeholders(len(q.Destinations)) + ")"
		for _, d := range q.Destinations {
			args = append(args, d)
		}
	}

	query := `
SELECT id, route_date, airline, origin, destination,
       delays, cancelled, passenger_count, flight_count, dedupe_key
FROM routes
WHERE ` + where + `
ORDER BY route_date, id`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var routes []domain.Route
	for rows.Next() {
		var (
			rt   domain.Route
			id   string
			unix int64
		)
		if err := rows.Scan(
			&id,
			&unix,
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
		if rt.ID, err = uuid.Parse(id); err != nil {
			return nil, fmt.Errorf("route id %q: %w", id, err)
		}
		rt.Date = time.Unix(unix, 0).UTC()
		routes = append(routes, rt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return routes, nil
}

func (r *RouteRepository) ExistsBetween(ctx context.Context, from, to time.Time) (bool, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM routes WHERE route_date >= ? AND route_date < ?)`,
		ceilUnix(from), ceilUnix(to))
	if err != nil {
		return false, err
	}
	defer rows.Close()

	var n int64
	if rows.Next() {
		if err := rows.Scan(&n); err != nil {
			return false, err
		}
	}
	if err := rows.Err(); err != nil {
		return false, err
	}
	return n > 0, nil
}

// ceilUnix rounds t up to whole seconds. Stored dates are whole seconds, so
// route_date >= ceil(from) and route_date < ceil(to) match [from, to) exactly.
func ceilUnix(t time.Time) int64 {
	s := t.Unix()
	if t.Nanosecond() > 0 {
		s++
	}
	return s
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?, ", n), ", ")
}
