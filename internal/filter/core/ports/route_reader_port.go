package ports

import (
	"context"

	routedomain "route-analytics-service/internal/routes/core/domain"
)

type RouteReaderPort interface {
	FetchRoutes(ctx context.Context, q routedomain.RouteQuery) ([]routedomain.Route, error)
}
