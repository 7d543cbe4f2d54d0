package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"route-analytics-service/internal/platform/cache"
	"route-analytics-service/internal/routes/core/domain"
	"route-analytics-service/internal/routes/core/usecase"
)

type fakeRouteReader struct {
	FetchFn  func(ctx context.Context, q domain.RouteQuery) ([]domain.Route, error)
	ExistsFn func(ctx context.Context, from, to time.Time) (bool, error)

	fetchCalls int
	lastQuery  domain.RouteQuery
	lastFrom   time.Time
	lastTo     time.Time
}

func (f *fakeRouteReader) FetchRoutes(ctx context.Context, q domain.RouteQuery) ([]domain.Route, error) {
	f.fetchCalls++
	f.lastQuery = q
	if f.FetchFn != nil {
		return f.FetchFn(ctx, q)
	}
	return nil, nil
}

func (f *fakeRouteReader) ExistsBetween(ctx context.Context, from, to time.Time) (bool, error) {
	f.lastFrom = from
	f.lastTo = to
	if f.ExistsFn != nil {
		return f.ExistsFn(ctx, from, to)
	}
	return false, nil
}

// ------------------------------------------------------------
// BY YEAR
// ------------------------------------------------------------
func TestFindRoutes_ByYear_QueriesWholeYear(t *testing.T) {
	reader := &fakeRouteReader{
		FetchFn: func(ctx context.Context, q domain.RouteQuery) ([]domain.Route, error) {
			return []domain.Route{{Airline: "LH"}}, nil
		},
	}
	uc := usecase.NewFindRoutesUseCase(reader, nil)

	routes, err := uc.ByYear(context.Background(), 2014)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(routes) != 1 {
		t.Fatalf("expected 1 route, got %d", len(routes))
	}

	wantFrom := time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC)
	wantTo := time.Date(2015, time.January, 1, 0, 0, 0, 0, time.UTC)
	if !reader.lastQuery.From.Equal(wantFrom) || !reader.lastQuery.To.Equal(wantTo) {
		t.Fatalf("unexpected range %s..%s", reader.lastQuery.From, reader.lastQuery.To)
	}
	if len(reader.lastQuery.Airlines) != 0 || len(reader.lastQuery.Destinations) != 0 {
		t.Fatalf("expected no category filters, got %+v", reader.lastQuery)
	}
}

func TestFindRoutes_ByYear_RejectsEarlyYears(t *testing.T) {
	reader := &fakeRouteReader{}
	uc := usecase.NewFindRoutesUseCase(reader, nil)

	_, err := uc.ByYear(context.Background(), 1969)
	if !errors.Is(err, usecase.ErrInvalidYear) {
		t.Fatalf("expected ErrInvalidYear, got %v", err)
	}
	if reader.fetchCalls != 0 {
		t.Fatalf("reader must not be called")
	}

	if _, err := uc.ByYear(context.Background(), 1970); err != nil {
		t.Fatalf("1970 must be accepted, got %v", err)
	}
}

func TestFindRoutes_ByYear_UsesCacheUntilInvalidated(t *testing.T) {
	reader := &fakeRouteReader{}
	uc := usecase.NewFindRoutesUseCase(reader, cache.New[[]domain.Route](8, time.Minute))

	for range 3 {
		if _, err := uc.ByYear(context.Background(), 2014); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	}
	if reader.fetchCalls != 1 {
		t.Fatalf("expected 1 fetch, got %d", reader.fetchCalls)
	}

	uc.InvalidateCache()
	if _, err := uc.ByYear(context.Background(), 2014); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if reader.fetchCalls != 2 {
		t.Fatalf("expected refetch after invalidation, got %d fetches", reader.fetchCalls)
	}
}

func TestFindRoutes_ByYear_ReaderError(t *testing.T) {
	reader := &fakeRouteReader{
		FetchFn: func(ctx context.Context, q domain.RouteQuery) ([]domain.Route, error) {
			return nil, errors.New("db error")
		},
	}
	uc := usecase.NewFindRoutesUseCase(reader, cache.New[[]domain.Route](8, time.Minute))

	if _, err := uc.ByYear(context.Background(), 2014); err == nil {
		t.Fatalf("expected error, got nil")
	}
}

// ------------------------------------------------------------
// IN MONTH
// ------------------------------------------------------------
func TestFindRoutes_InMonthOfYear(t *testing.T) {
	reader := &fakeRouteReader{
		ExistsFn: func(ctx context.Context, from, to time.Time) (bool, error) {
			return true, nil
		},
	}
	uc := usecase.NewFindRoutesUseCase(reader, nil)

	ok, err := uc.InMonthOfYear(context.Background(), time.Date(2014, time.February, 17, 12, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !ok {
		t.Fatalf("expected true")
	}
	if !reader.lastFrom.Equal(time.Date(2014, time.February, 1, 0, 0, 0, 0, time.UTC)) ||
		!reader.lastTo.Equal(time.Date(2014, time.March, 1, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected month bounds %s..%s", reader.lastFrom, reader.lastTo)
	}
}
