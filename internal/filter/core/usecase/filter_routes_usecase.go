package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"

	"route-analytics-service/internal/filter/core/aggregation"
	"route-analytics-service/internal/filter/core/domain"
	"route-analytics-service/internal/filter/core/ports"
	"route-analytics-service/internal/platform/cache"
	routedomain "route-analytics-service/internal/routes/core/domain"
)

var (
	ErrMissingAxis      = fmt.Errorf("%w: axis is required", domain.ErrInvalidRequest)
	ErrMissingFilter    = fmt.Errorf("%w: filter is required", domain.ErrInvalidRequest)
	ErrInvalidTimeRange = fmt.Errorf("%w: invalid time range", domain.ErrInvalidRequest)
)

// AxisInput names the category axis (X) and the metric (Y).
type AxisInput struct {
	X string
	Y string
}

type FilterSpec struct {
	Timestep     string
	Airlines     []string
	Destinations []string
}

type FilterInput struct {
	RangeFrom time.Time
	RangeTo   time.Time
	Axis      *AxisInput
	Filter    *FilterSpec
}

type FilterRoutesUseCase struct {
	reader ports.RouteReaderPort
	cache  *cache.Cache[domain.Result]
}

// NewFilterRoutesUseCase builds the filter use case. c may be nil to disable
// result caching.
func NewFilterRoutesUseCase(reader ports.RouteReaderPort, c *cache.Cache[domain.Result]) *FilterRoutesUseCase {
	return &FilterRoutesUseCase{reader: reader, cache: c}
}

// BuildRequest parses raw input into a validated aggregation request.
func BuildRequest(in FilterInput) (domain.Request, error) {
	if in.Axis == nil {
		return domain.Request{}, ErrMissingAxis
	}
	if in.Filter == nil {
		return domain.Request{}, ErrMissingFilter
	}
	if in.RangeFrom.IsZero() || in.RangeTo.IsZero() || in.RangeFrom.After(in.RangeTo) {
		return domain.Request{}, ErrInvalidTimeRange
	}

	axis, err := domain.ParseAxis(in.Axis.X)
	if err != nil {
		return domain.Request{}, err
	}
	metric, err := domain.ParseMetric(in.Axis.Y)
	if err != nil {
		return domain.Request{}, err
	}
	granularity, err := domain.ParseGranularity(in.Filter.Timestep)
	if err != nil {
		return domain.Request{}, err
	}

	req := domain.Request{
		RangeFrom:    in.RangeFrom.UTC(),
		RangeTo:      in.RangeTo.UTC(),
		Granularity:  granularity,
		Axis:         axis,
		Metric:       metric,
		Airlines:     cleanList(in.Filter.Airlines),
		Destinations: cleanList(in.Filter.Destinations),
	}
	return req, req.Validate()
}

func (uc *FilterRoutesUseCase) Execute(ctx context.Context, in FilterInput) (domain.Result, error) {
	req, err := BuildRequest(in)
	if err != nil {
		return domain.Result{}, err
	}
	return uc.Run(ctx, req)
}

// Run fetches the matching routes and aggregates them. Results are cached by
// request until InvalidateCache is called.
func (uc *FilterRoutesUseCase) Run(ctx context.Context, req domain.Request) (domain.Result, error) {
	if err := req.Validate(); err != nil {
		return domain.Result{}, err
	}
	if !req.Metric.Supported() {
		log.Warnw("metric is not computed, returning zeros", "metric", req.Metric)
	}

	compute := func() (domain.Result, error) {
		routes, err := uc.reader.FetchRoutes(ctx, routedomain.RouteQuery{
			From:         req.RangeFrom,
			To:           req.RangeTo,
			Airlines:     req.Airlines,
			Destinations: req.Destinations,
		})
		if err != nil {
			return domain.Result{}, fmt.Errorf("fetch routes: %w", err)
		}
		return aggregation.Aggregate(req, routes)
	}

	if uc.cache == nil {
		return compute()
	}
	return uc.cache.GetOrCompute(req.CacheKey(), compute)
}

func (uc *FilterRoutesUseCase) InvalidateCache() {
	if uc.cache != nil {
		uc.cache.Clear()
	}
}

// cleanList trims entries and drops blanks. An empty result means no filter.
func cleanList(in []string) []string {
	var out []string
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
