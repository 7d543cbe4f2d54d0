package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"route-analytics-service/internal/platform/cache"
	"route-analytics-service/internal/platform/timeutil"
	"route-analytics-service/internal/routes/core/domain"
	"route-analytics-service/internal/routes/core/ports"
)

var ErrInvalidYear = errors.New("year must be 1970 or later")

// MinYear is the earliest year ByYear accepts.
const MinYear = 1970

type FindRoutesUseCase struct {
	reader ports.RouteReaderPort
	cache  *cache.Cache[[]domain.Route]
}

// NewFindRoutesUseCase builds the lookup use case. c may be nil to disable
// caching of year lookups.
func NewFindRoutesUseCase(reader ports.RouteReaderPort, c *cache.Cache[[]domain.Route]) *FindRoutesUseCase {
	return &FindRoutesUseCase{reader: reader, cache: c}
}

// ByYear returns every route dated in the given calendar year. The returned
// slice may be shared with other callers and must not be modified.
func (uc *FindRoutesUseCase) ByYear(ctx context.Context, year int) ([]domain.Route, error) {
	if year < MinYear {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidYear, year)
	}

	from, to := timeutil.YearBounds(year)
	fetch := func() ([]domain.Route, error) {
		return uc.reader.FetchRoutes(ctx, domain.RouteQuery{From: from, To: to})
	}

	if uc.cache == nil {
		return fetch()
	}
	return uc.cache.GetOrCompute("year:"+strconv.Itoa(year), fetch)
}

// InMonthOfYear reports whether any route lies in the calendar month of date.
func (uc *FindRoutesUseCase) InMonthOfYear(ctx context.Context, date time.Time) (bool, error) {
	from, to := timeutil.MonthBounds(date)
	return uc.reader.ExistsBetween(ctx, from, to)
}

// InvalidateCache drops cached year lookups.
func (uc *FindRoutesUseCase) InvalidateCache() {
	if uc.cache != nil {
		uc.cache.Clear()
	}
}
