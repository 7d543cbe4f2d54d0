package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"route-analytics-service/internal/routes/core/domain"
)

// Fake repo
type fakeBulkRepo struct {
	InsertCalls []*domain.Route
	Results     []bool
	ErrAt       int
	Err         error
}

func (f *fakeBulkRepo) InsertRoute(ctx context.Context, r *domain.Route) (bool, error) {
	if f.Err != nil && len(f.InsertCalls) == f.ErrAt {
		return false, f.Err
	}
	f.InsertCalls = append(f.InsertCalls, r)

	if len(f.Results) == 0 {
		// default: created
		return true, nil
	}

	res := f.Results[0]
	f.Results = f.Results[1:]
	return res, nil
}

type countingInvalidator struct {
	calls int
}

func (c *countingInvalidator) Invalidate(ctx context.Context, scope string) error {
	c.calls++
	return nil
}

func bulkInput(n int) BulkCreateRoutesInput {
	base := time.Date(2014, time.March, 1, 0, 0, 0, 0, time.UTC)
	in := BulkCreateRoutesInput{}
	for i := range n {
		in.Routes = append(in.Routes, StoreRouteInput{
			Date:        base.AddDate(0, 0, i),
			FlightCount: 1,
			Airline:     "LH",
			Origin:      "FRA",
			Destination: "JFK",
		})
	}
	return in
}

func TestBulkCreateRoutes_AllCreated(t *testing.T) {
	repo := &fakeBulkRepo{Results: []bool{true, true, true}}
	inv := &countingInvalidator{}
	uc := NewStoreRouteUseCase(repo, inv)

	res, err := uc.BulkCreateRoutes(context.Background(), bulkInput(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created != 3 || res.Duplicates != 0 {
		t.Fatalf("expected created=3 duplicates=0, got %+v", res)
	}
	if len(repo.InsertCalls) != 3 {
		t.Fatalf("expected 3 inserts, got %d", len(repo.InsertCalls))
	}
	if inv.calls != 1 {
		t.Fatalf("expected a single invalidation, got %d", inv.calls)
	}
}

func TestBulkCreateRoutes_MixedDuplicates(t *testing.T) {
	repo := &fakeBulkRepo{Results: []bool{true, false, true}}
	uc := NewStoreRouteUseCase(repo, nil)

	res, err := uc.BulkCreateRoutes(context.Background(), bulkInput(3))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created != 2 || res.Duplicates != 1 {
		t.Fatalf("expected created=2 duplicates=1, got %+v", res)
	}
}

func TestBulkCreateRoutes_AllDuplicatesSkipInvalidation(t *testing.T) {
	repo := &fakeBulkRepo{Results: []bool{false, false}}
	inv := &countingInvalidator{}
	uc := NewStoreRouteUseCase(repo, inv)

	if _, err := uc.BulkCreateRoutes(context.Background(), bulkInput(2)); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inv.calls != 0 {
		t.Fatalf("expected no invalidation, got %d", inv.calls)
	}
}

func TestBulkCreateRoutes_ValidationFailsBeforeAnyInsert(t *testing.T) {
	repo := &fakeBulkRepo{}
	uc := NewStoreRouteUseCase(repo, nil)

	in := bulkInput(3)
	in.Routes[2].Destination = ""

	_, err := uc.BulkCreateRoutes(context.Background(), in)
	if !errors.Is(err, ErrInvalidRoute) {
		t.Fatalf("expected ErrInvalidRoute, got %v", err)
	}
	if len(repo.InsertCalls) != 0 {
		t.Fatalf("expected no inserts, got %d", len(repo.InsertCalls))
	}
}

func TestBulkCreateRoutes_RepositoryErrorKeepsPartialCounts(t *testing.T) {
	repo := &fakeBulkRepo{Err: errors.New("db error"), ErrAt: 1}
	inv := &countingInvalidator{}
	uc := NewStoreRouteUseCase(repo, inv)

	res, err := uc.BulkCreateRoutes(context.Background(), bulkInput(3))
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if res.Created != 1 {
		t.Fatalf("expected created=1 before failure, got %d", res.Created)
	}
	if inv.calls != 1 {
		t.Fatalf("expected invalidation for the partial write, got %d", inv.calls)
	}
}

func TestBulkCreateRoutes_FutureDateUsesClock(t *testing.T) {
	uc := NewStoreRouteUseCase(&fakeBulkRepo{}, nil)
	uc.now = func() time.Time { return time.Date(2014, time.March, 2, 0, 0, 0, 0, time.UTC) }

	_, err := uc.BulkCreateRoutes(context.Background(), bulkInput(3))
	if !errors.Is(err, ErrFutureDate) {
		t.Fatalf("expected ErrFutureDate, got %v", err)
	}
}

// keyedRepo reports a duplicate whenever a dedupe key repeats, like the
// unique index on dedupe_key.
type keyedRepo struct {
	seen map[string]bool
}

func (k *keyedRepo) InsertRoute(ctx context.Context, r *domain.Route) (bool, error) {
	if k.seen == nil {
		k.seen = make(map[string]bool)
	}
	if k.seen[r.DedupeKey] {
		return false, nil
	}
	k.seen[r.DedupeKey] = true
	return true, nil
}

func TestBulkCreateRoutes_SeparatorInCodesIsNotADuplicate(t *testing.T) {
	day := time.Date(2014, time.March, 1, 0, 0, 0, 0, time.UTC)
	in := BulkCreateRoutesInput{Routes: []StoreRouteInput{
		{Date: day, FlightCount: 1, Airline: "A|B", Origin: "C", Destination: "JFK"},
		{Date: day, FlightCount: 1, Airline: "A", Origin: "B|C", Destination: "JFK"},
	}}
	uc := NewStoreRouteUseCase(&keyedRepo{}, nil)

	res, err := uc.BulkCreateRoutes(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created != 2 || res.Duplicates != 0 {
		t.Fatalf("expected created=2 duplicates=0, got %+v", res)
	}
}

func TestBuildDedupeKey_QuotesOnlyWhenNeeded(t *testing.T) {
	day := time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC)

	plain := buildDedupeKey(&domain.Route{Date: day, Airline: "LH", Origin: "FRA", Destination: "JFK"})
	if plain != "1388534400|LH|FRA|JFK" {
		t.Fatalf("unexpected plain key %q", plain)
	}

	quoted := buildDedupeKey(&domain.Route{Date: day, Airline: `A|"B`, Origin: "FRA", Destination: "JFK"})
	if quoted != `1388534400|"A|\"B"|FRA|JFK` {
		t.Fatalf("unexpected quoted key %q", quoted)
	}
}

type fakeAirlineChecker struct {
	known   map[string]bool
	err     error
	lastIDs []string
}

func (f *fakeAirlineChecker) UnknownAirlines(ctx context.Context, ids []string) ([]string, error) {
	f.lastIDs = ids
	if f.err != nil {
		return nil, f.err
	}
	var unknown []string
	for _, id := range ids {
		if !f.known[id] {
			unknown = append(unknown, id)
		}
	}
	return unknown, nil
}

func TestBulkCreateRoutes_UnknownAirlineRejectsBatch(t *testing.T) {
	repo := &fakeBulkRepo{}
	checker := &fakeAirlineChecker{known: map[string]bool{"LH": true}}
	uc := NewStoreRouteUseCase(repo, nil).WithAirlineCheck(checker)

	in := bulkInput(3)
	in.Routes[1].Airline = " XX "

	_, err := uc.BulkCreateRoutes(context.Background(), in)
	if !errors.Is(err, ErrUnknownAirline) || !errors.Is(err, ErrInvalidRoute) {
		t.Fatalf("expected ErrUnknownAirline wrapping ErrInvalidRoute, got %v", err)
	}
	if len(repo.InsertCalls) != 0 {
		t.Fatalf("expected no inserts, got %d", len(repo.InsertCalls))
	}
	if len(checker.lastIDs) != 3 || checker.lastIDs[1] != "XX" {
		t.Fatalf("expected trimmed airline ids, got %v", checker.lastIDs)
	}
}

func TestBulkCreateRoutes_KnownAirlinesAreStored(t *testing.T) {
	repo := &fakeBulkRepo{}
	uc := NewStoreRouteUseCase(repo, nil).WithAirlineCheck(&fakeAirlineChecker{known: map[string]bool{"LH": true}})

	res, err := uc.BulkCreateRoutes(context.Background(), bulkInput(2))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if res.Created != 2 {
		t.Fatalf("expected created=2, got %+v", res)
	}
}

func TestExecute_AirlineCheckFailureIsNotAValidationError(t *testing.T) {
	checkErr := errors.New("db error")
	uc := NewStoreRouteUseCase(&fakeBulkRepo{}, nil).WithAirlineCheck(&fakeAirlineChecker{err: checkErr})

	_, err := uc.Execute(context.Background(), bulkInput(1).Routes[0])
	if !errors.Is(err, checkErr) {
		t.Fatalf("expected checker error, got %v", err)
	}
	if errors.Is(err, ErrInvalidRoute) {
		t.Fatalf("checker failure must not look like invalid input: %v", err)
	}
}
