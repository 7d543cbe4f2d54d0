package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"route-analytics-service/internal/platform/events"
	"route-analytics-service/internal/routes/core/domain"
	"route-analytics-service/internal/routes/core/ports"
)

var (
	ErrInvalidRoute   = errors.New("invalid route")
	ErrFutureDate     = errors.New("route date cannot be in the future")
	ErrNegativeMetric = errors.New("route metrics cannot be negative")
	ErrUnknownAirline = fmt.Errorf("%w: unknown airline", ErrInvalidRoute)
)

// Invalidator is told whenever stored routes change.
type Invalidator interface {
	Invalidate(ctx context.Context, scope string) error
}

// AirlineChecker reports which airline IDs are not registered.
type AirlineChecker interface {
	UnknownAirlines(ctx context.Context, ids []string) ([]string, error)
}

type StoreRouteUseCase struct {
	repo        ports.RouteRepositoryPort
	invalidator Invalidator
	airlines    AirlineChecker
	now         func() time.Time
}

func NewStoreRouteUseCase(repo ports.RouteRepositoryPort, invalidator Invalidator) *StoreRouteUseCase {
	return &StoreRouteUseCase{repo: repo, invalidator: invalidator, now: time.Now}
}

// WithAirlineCheck makes ingestion reject routes whose airline is not
// registered.
func (uc *StoreRouteUseCase) WithAirlineCheck(c AirlineChecker) *StoreRouteUseCase {
	uc.airlines = c
	return uc
}

type StoreRouteInput struct {
	Date           time.Time
	Delays         float64
	Cancelled      float64
	PassengerCount float64
	FlightCount    float64
	Airline        string
	Origin         string
	Destination    string
}

func (uc *StoreRouteUseCase) Execute(ctx context.Context, in StoreRouteInput) (bool, error) {
	if err := uc.validateInput(in); err != nil {
		return false, err
	}
	if err := uc.checkAirlines(ctx, []StoreRouteInput{in}); err != nil {
		return false, err
	}

	created, err := uc.insert(ctx, in)
	if err != nil {
		return false, err
	}
	if created {
		uc.invalidate(ctx)
	}
	return created, nil
}

func (uc *StoreRouteUseCase) insert(ctx context.Context, in StoreRouteInput) (bool, error) {
	date := in.Date.UTC()
	r := &domain.Route{
		ID:             uuid.New(),
		Date:           date,
		Delays:         in.Delays,
		Cancelled:      in.Cancelled,
		PassengerCount: in.PassengerCount,
		FlightCount:    in.FlightCount,
		Airline:        strings.TrimSpace(in.Airline),
		Origin:         strings.TrimSpace(in.Origin),
		Destination:    strings.TrimSpace(in.Destination),
	}
	r.DedupeKey = buildDedupeKey(r)

	return uc.repo.InsertRoute(ctx, r)
}

func buildDedupeKey(r *domain.Route) string {
	// unix_date + airline + origin + destination
	return fmt.Sprintf("%d|%s|%s|%s", r.Date.Unix(),
		dedupeField(r.Airline), dedupeField(r.Origin), dedupeField(r.Destination))
}

// dedupeField quotes values that contain the separator or a quote. Plain codes
// stay as they are, so keys of already stored routes do not change.
func dedupeField(s string) string {
	if !strings.ContainsAny(s, `|"`) {
		return s
	}
	return strconv.Quote(s)
}

type BulkCreateRoutesInput struct {
	Routes []StoreRouteInput
}

type BulkCreateRoutesResult struct {
	Created    int
	Duplicates int
}

// BulkCreateRoutes validates every route before writing any of them.
func (uc *StoreRouteUseCase) BulkCreateRoutes(ctx context.Context, in BulkCreateRoutesInput) (BulkCreateRoutesResult, error) {
	var res BulkCreateRoutesResult

	for i, r := range in.Routes {
		if err := uc.validateInput(r); err != nil {
			return res, fmt.Errorf("route %d: %w", i, err)
		}
	}
	if err := uc.checkAirlines(ctx, in.Routes); err != nil {
		return res, err
	}

	// Caches are dropped even if a later insert fails.
	defer func() {
		if res.Created > 0 {
			uc.invalidate(ctx)
		}
	}()

	for _, r := range in.Routes {
		ok, err := uc.insert(ctx, r)
		if err != nil {
			return res, err
		}

		if ok {
			res.Created++
		} else {
			res.Duplicates++
		}
	}

	return res, nil
}

func (uc *StoreRouteUseCase) invalidate(ctx context.Context) {
	if uc.invalidator == nil {
		return
	}
	if err := uc.invalidator.Invalidate(ctx, events.ScopeRoutes); err != nil {
		log.Warnw("route cache invalidation not broadcast", "error", err)
	}
}

func (uc *StoreRouteUseCase) checkAirlines(ctx context.Context, routes []StoreRouteInput) error {
	if uc.airlines == nil {
		return nil
	}

	ids := make([]string, 0, len(routes))
	for _, r := range routes {
		ids = append(ids, strings.TrimSpace(r.Airline))
	}
	unknown, err := uc.airlines.UnknownAirlines(ctx, ids)
	if err != nil {
		return fmt.Errorf("check airlines: %w", err)
	}
	if len(unknown) > 0 {
		return fmt.Errorf("%w: %s", ErrUnknownAirline, strings.Join(unknown, ", "))
	}
	return nil
}

func (uc *StoreRouteUseCase) validateInput(in StoreRouteInput) error {
	if in.Date.IsZero() ||
		strings.TrimSpace(in.Airline) == "" ||
		strings.TrimSpace(in.Origin) == "" ||
		strings.TrimSpace(in.Destination) == "" {
		return ErrInvalidRoute
	}

	if in.Date.After(uc.now()) {
		return ErrFutureDate
	}

	if in.Delays < 0 || in.Cancelled < 0 || in.PassengerCount < 0 || in.FlightCount < 0 {
		return ErrNegativeMetric
	}

	return nil
}
