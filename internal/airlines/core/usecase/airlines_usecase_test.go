package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"route-analytics-service/internal/airlines/core/domain"
)

// ----------------------------------------------------------------------
// Fake repository
// ----------------------------------------------------------------------

type fakeAirlineRepo struct {
	SaveFn     func(ctx context.Context, a *domain.Airline) error
	GetFn      func(ctx context.Context, id string) (domain.Airline, error)
	ListFn     func(ctx context.Context) ([]domain.Airline, error)
	DeleteFn   func(ctx context.Context, id string) error
	ExistingFn func(ctx context.Context, ids []string) ([]string, error)

	saveCalled    bool
	lastSaved     *domain.Airline
	lastID        string
	existingCalls int
	lastIDs       []string
}

func (f *fakeAirlineRepo) SaveAirline(ctx context.Context, a *domain.Airline) error {
	f.saveCalled = true
	f.lastSaved = a
	if f.SaveFn != nil {
		return f.SaveFn(ctx, a)
	}
	return nil
}

func (f *fakeAirlineRepo) GetAirline(ctx context.Context, id string) (domain.Airline, error) {
	f.lastID = id
	if f.GetFn != nil {
		return f.GetFn(ctx, id)
	}
	return domain.Airline{}, ErrAirlineNotFound
}

func (f *fakeAirlineRepo) ListAirlines(ctx context.Context) ([]domain.Airline, error) {
	if f.ListFn != nil {
		return f.ListFn(ctx)
	}
	return nil, nil
}

func (f *fakeAirlineRepo) DeleteAirline(ctx context.Context, id string) error {
	f.lastID = id
	if f.DeleteFn != nil {
		return f.DeleteFn(ctx, id)
	}
	return nil
}

func (f *fakeAirlineRepo) ExistingAirlines(ctx context.Context, ids []string) ([]string, error) {
	f.existingCalls++
	f.lastIDs = ids
	if f.ExistingFn != nil {
		return f.ExistingFn(ctx, ids)
	}
	return nil, nil
}

// ----------------------------------------------------------------------
// Save
// ----------------------------------------------------------------------

func TestSave_TrimsAndStores(t *testing.T) {
	repo := &fakeAirlineRepo{}
	uc := NewAirlinesUseCase(repo)

	a, err := uc.Save(context.Background(), " LH ", "  Lufthansa ")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.ID != "LH" || a.Name != "Lufthansa" {
		t.Fatalf("unexpected airline: %+v", a)
	}
	if !repo.saveCalled || repo.lastSaved.ID != "LH" {
		t.Fatalf("expected repository save with trimmed id, got %+v", repo.lastSaved)
	}
}

func TestSave_Validation(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		airline string
	}{
		{"blank id", "  ", "Lufthansa"},
		{"long id", strings.Repeat("x", MaxIDLength+1), "Lufthansa"},
		{"short name", "LH", "LH"},
		{"blank name", "LH", "   "},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeAirlineRepo{}
			uc := NewAirlinesUseCase(repo)

			_, err := uc.Save(context.Background(), tt.id, tt.airline)
			if !errors.Is(err, ErrInvalidAirline) {
				t.Fatalf("expected ErrInvalidAirline, got %v", err)
			}
			if repo.saveCalled {
				t.Fatalf("repository must not be called for invalid input")
			}
		})
	}
}

func TestSave_RepositoryError(t *testing.T) {
	dbErr := errors.New("db error")
	repo := &fakeAirlineRepo{
		SaveFn: func(ctx context.Context, a *domain.Airline) error { return dbErr },
	}
	uc := NewAirlinesUseCase(repo)

	if _, err := uc.Save(context.Background(), "LH", "Lufthansa"); !errors.Is(err, dbErr) {
		t.Fatalf("expected db error, got %v", err)
	}
}

// ----------------------------------------------------------------------
// Get / Delete
// ----------------------------------------------------------------------

func TestGet_TrimsID(t *testing.T) {
	repo := &fakeAirlineRepo{}
	uc := NewAirlinesUseCase(repo)

	_, err := uc.Get(context.Background(), " XX ")
	if !errors.Is(err, ErrAirlineNotFound) {
		t.Fatalf("expected ErrAirlineNotFound, got %v", err)
	}
	if repo.lastID != "XX" {
		t.Fatalf("expected trimmed id, got %q", repo.lastID)
	}
}

func TestDelete_PassesNotFound(t *testing.T) {
	repo := &fakeAirlineRepo{
		DeleteFn: func(ctx context.Context, id string) error { return ErrAirlineNotFound },
	}
	uc := NewAirlinesUseCase(repo)

	if err := uc.Delete(context.Background(), "LH"); !errors.Is(err, ErrAirlineNotFound) {
		t.Fatalf("expected ErrAirlineNotFound, got %v", err)
	}
}

// ----------------------------------------------------------------------
// UnknownAirlines
// ----------------------------------------------------------------------

func TestUnknownAirlines(t *testing.T) {
	repo := &fakeAirlineRepo{
		ExistingFn: func(ctx context.Context, ids []string) ([]string, error) {
			return []string{"LH"}, nil
		},
	}
	uc := NewAirlinesUseCase(repo)

	unknown, err := uc.UnknownAirlines(context.Background(), []string{"LH", " XX ", "", "AB", "XX"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !reflect.DeepEqual(unknown, []string{"AB", "XX"}) {
		t.Fatalf("unexpected unknown airlines: %v", unknown)
	}
	if !reflect.DeepEqual(repo.lastIDs, []string{"AB", "LH", "XX"}) {
		t.Fatalf("expected distinct sorted lookup, got %v", repo.lastIDs)
	}
}

func TestUnknownAirlines_NoIDsSkipsRepository(t *testing.T) {
	repo := &fakeAirlineRepo{}
	uc := NewAirlinesUseCase(repo)

	unknown, err := uc.UnknownAirlines(context.Background(), []string{" ", ""})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if unknown != nil || repo.existingCalls != 0 {
		t.Fatalf("expected no lookup, got unknown=%v calls=%d", unknown, repo.existingCalls)
	}
}

func TestUnknownAirlines_RepositoryError(t *testing.T) {
	dbErr := errors.New("db error")
	repo := &fakeAirlineRepo{
		ExistingFn: func(ctx context.Context, ids []string) ([]string, error) { return nil, dbErr },
	}
	uc := NewAirlinesUseCase(repo)

	if _, err := uc.UnknownAirlines(context.Background(), []string{"LH"}); !errors.Is(err, dbErr) {
		t.Fatalf("expected db error, got %v", err)
	}
}
