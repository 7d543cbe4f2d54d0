package ports

import (
	"context"
	"time"

	"route-analytics-service/internal/routes/core/domain"
)

type RouteRepositoryPort interface {
	// InsertRoute:
	//   created = true,  err = nil  -> new record
	//   created = false, err = nil  -> duplicate (same dedupe key)
	//   created = false, err != nil -> DB error
	InsertRoute(ctx context.Context, r *domain.Route) (created bool, err error)
}

type RouteReaderPort interface {
	// FetchRoutes returns routes matching q ordered by date.
	FetchRoutes(ctx context.Context, q domain.RouteQuery) ([]domain.Route, error)
	// ExistsBetween reports whether any route is dated in [from, to).
	ExistsBetween(ctx context.Context, from, to time.Time) (bool, error)
}
