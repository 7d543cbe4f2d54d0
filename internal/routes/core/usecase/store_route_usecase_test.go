package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"route-analytics-service/internal/routes/core/domain"
	"route-analytics-service/internal/routes/core/usecase"
)

// Fake repository implementing RouteRepositoryPort
type fakeRouteRepo struct {
	InsertFn func(ctx context.Context, r *domain.Route) (bool, error)
	calls    int
}

func (f *fakeRouteRepo) InsertRoute(ctx context.Context, r *domain.Route) (bool, error) {
	f.calls++
	if f.InsertFn == nil {
		return true, nil
	}
	return f.InsertFn(ctx, r)
}

type fakeInvalidator struct {
	InvalidateFn func(ctx context.Context, scope string) error
	scopes       []string
}

func (f *fakeInvalidator) Invalidate(ctx context.Context, scope string) error {
	f.scopes = append(f.scopes, scope)
	if f.InvalidateFn != nil {
		return f.InvalidateFn(ctx, scope)
	}
	return nil
}

func validInput() usecase.StoreRouteInput {
	return usecase.StoreRouteInput{
		Date:           time.Date(2014, time.January, 1, 0, 0, 0, 0, time.UTC),
		Delays:         2,
		Cancelled:      0,
		PassengerCount: 180,
		FlightCount:    1,
		Airline:        "LH",
		Origin:         "FRA",
		Destination:    "JFK",
	}
}

// ------------------------------------------------------------
// SUCCESS TEST
// ------------------------------------------------------------
func TestStoreRoute_Success(t *testing.T) {
	var stored *domain.Route

	repo := &fakeRouteRepo{
		InsertFn: func(ctx context.Context, r *domain.Route) (bool, error) {
			stored = r
			return true, nil
		},
	}
	inv := &fakeInvalidator{}

	uc := usecase.NewStoreRouteUseCase(repo, inv)

	in := validInput()
	in.Airline = "  LH "

	created, err := uc.Execute(context.Background(), in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatalf("expected created=true, got false")
	}
	if stored == nil {
		t.Fatalf("repository InsertRoute was not called")
	}
	if stored.Airline != "LH" {
		t.Fatalf("expected trimmed airline 'LH', got %q", stored.Airline)
	}
	if stored.DedupeKey != "1388534400|LH|FRA|JFK" {
		t.Fatalf("unexpected dedupe key %q", stored.DedupeKey)
	}
	if stored.ID.String() == "00000000-0000-0000-0000-000000000000" {
		t.Fatalf("expected generated id")
	}
	if len(inv.scopes) != 1 || inv.scopes[0] != "routes" {
		t.Fatalf("expected one routes invalidation, got %v", inv.scopes)
	}
}

// ------------------------------------------------------------
// DUPLICATE DOES NOT INVALIDATE
// ------------------------------------------------------------
func TestStoreRoute_DuplicateSkipsInvalidation(t *testing.T) {
	repo := &fakeRouteRepo{
		InsertFn: func(ctx context.Context, r *domain.Route) (bool, error) {
			return false, nil
		},
	}
	inv := &fakeInvalidator{}

	uc := usecase.NewStoreRouteUseCase(repo, inv)

	created, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if created {
		t.Fatalf("expected created=false for duplicate")
	}
	if len(inv.scopes) != 0 {
		t.Fatalf("expected no invalidation, got %v", inv.scopes)
	}
}

// ------------------------------------------------------------
// INVALIDATION FAILURE IS NOT A STORE FAILURE
// ------------------------------------------------------------
func TestStoreRoute_InvalidationErrorIgnored(t *testing.T) {
	inv := &fakeInvalidator{
		InvalidateFn: func(ctx context.Context, scope string) error {
			return errors.New("nats down")
		},
	}

	uc := usecase.NewStoreRouteUseCase(&fakeRouteRepo{}, inv)

	created, err := uc.Execute(context.Background(), validInput())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !created {
		t.Fatalf("expected created=true")
	}
}

// ------------------------------------------------------------
// VALIDATION
// ------------------------------------------------------------
func TestStoreRoute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(in *usecase.StoreRouteInput)
		want   error
	}{
		{"missing date", func(in *usecase.StoreRouteInput) { in.Date = time.Time{} }, usecase.ErrInvalidRoute},
		{"missing airline", func(in *usecase.StoreRouteInput) { in.Airline = " " }, usecase.ErrInvalidRoute},
		{"missing origin", func(in *usecase.StoreRouteInput) { in.Origin = "" }, usecase.ErrInvalidRoute},
		{"missing destination", func(in *usecase.StoreRouteInput) { in.Destination = "" }, usecase.ErrInvalidRoute},
		{"future date", func(in *usecase.StoreRouteInput) { in.Date = time.Now().Add(time.Hour) }, usecase.ErrFutureDate},
		{"negative passengers", func(in *usecase.StoreRouteInput) { in.PassengerCount = -1 }, usecase.ErrNegativeMetric},
		{"negative delays", func(in *usecase.StoreRouteInput) { in.Delays = -0.5 }, usecase.ErrNegativeMetric},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeRouteRepo{}
			uc := usecase.NewStoreRouteUseCase(repo, nil)

			in := validInput()
			tt.mutate(&in)

			created, err := uc.Execute(context.Background(), in)
			if !errors.Is(err, tt.want) {
				t.Fatalf("expected %v, got %v", tt.want, err)
			}
			if created {
				t.Fatalf("expected created=false")
			}
			if repo.calls != 0 {
				t.Fatalf("repository must not be called for invalid input")
			}
		})
	}
}

// ------------------------------------------------------------
// REPOSITORY ERROR
// ------------------------------------------------------------
func TestStoreRoute_RepositoryError(t *testing.T) {
	repo := &fakeRouteRepo{
		InsertFn: func(ctx context.Context, r *domain.Route) (bool, error) {
			return false, errors.New("db error")
		},
	}
	inv := &fakeInvalidator{}

	uc := usecase.NewStoreRouteUseCase(repo, inv)

	created, err := uc.Execute(context.Background(), validInput())
	if err == nil {
		t.Fatalf("expected error, got nil")
	}
	if created {
		t.Fatalf("expected created=false on error")
	}
	if len(inv.scopes) != 0 {
		t.Fatalf("expected no invalidation on error")
	}
}
