package ports

import (
	"context"
	"errors"

	"route-analytics-service/internal/airlines/core/domain"
)

var ErrAirlineNotFound = errors.New("airline not found")

type AirlineRepositoryPort interface {
	// SaveAirline inserts a, or renames the airline when its ID exists.
	SaveAirline(ctx context.Context, a *domain.Airline) error
	// GetAirline returns ErrAirlineNotFound when id is unknown.
	GetAirline(ctx context.Context, id string) (domain.Airline, error)
	// ListAirlines returns every airline ordered by ID.
	ListAirlines(ctx context.Context) ([]domain.Airline, error)
	// DeleteAirline returns ErrAirlineNotFound when nothing was removed.
	DeleteAirline(ctx context.Context, id string) error
	// ExistingAirlines returns the subset of ids that are registered.
	ExistingAirlines(ctx context.Context, ids []string) ([]string, error)
}
