package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"unicode/utf8"

	"route-analytics-service/internal/airlines/core/domain"
	"route-analytics-service/internal/airlines/core/ports"
)

var (
	ErrInvalidAirline  = errors.New("invalid airline")
	ErrAirlineNotFound = ports.ErrAirlineNotFound
)

const (
	MinNameLength = 3
	MaxIDLength   = 64
)

type AirlinesUseCase struct {
	repo ports.AirlineRepositoryPort
}

func NewAirlinesUseCase(repo ports.AirlineRepositoryPort) *AirlinesUseCase {
	return &AirlinesUseCase{repo: repo}
}

// Save registers the airline or renames it when id already exists.
func (uc *AirlinesUseCase) Save(ctx context.Context, id, name string) (domain.Airline, error) {
	a := domain.Airline{
		ID:   strings.TrimSpace(id),
		Name: strings.TrimSpace(name),
	}

	if a.ID == "" || utf8.RuneCountInString(a.ID) > MaxIDLength {
		return domain.Airline{}, fmt.Errorf("%w: id must have 1 to %d characters", ErrInvalidAirline, MaxIDLength)
	}
	if utf8.RuneCountInString(a.Name) < MinNameLength {
		return domain.Airline{}, fmt.Errorf("%w: name must have at least %d characters", ErrInvalidAirline, MinNameLength)
	}

	if err := uc.repo.SaveAirline(ctx, &a); err != nil {
		return domain.Airline{}, err
	}
	return a, nil
}

func (uc *AirlinesUseCase) Get(ctx context.Context, id string) (domain.Airline, error) {
	return uc.repo.GetAirline(ctx, strings.TrimSpace(id))
}

func (uc *AirlinesUseCase) List(ctx context.Context) ([]domain.Airline, error) {
	return uc.repo.ListAirlines(ctx)
}

func (uc *AirlinesUseCase) Delete(ctx context.Context, id string) error {
	return uc.repo.DeleteAirline(ctx, strings.TrimSpace(id))
}

// UnknownAirlines returns the distinct ids, sorted, that are not registered.
// Blank ids are ignored.
func (uc *AirlinesUseCase) UnknownAirlines(ctx context.Context, ids []string) ([]string, error) {
	wanted := make([]string, 0, len(ids))
	for _, id := range ids {
		if id = strings.TrimSpace(id); id != "" {
			wanted = append(wanted, id)
		}
	}
	slices.Sort(wanted)
	wanted = slices.Compact(wanted)
	if len(wanted) == 0 {
		return nil, nil
	}

	existing, err := uc.repo.ExistingAirlines(ctx, wanted)
	if err != nil {
		return nil, err
	}
	known := make(map[string]struct{}, len(existing))
	for _, id := range existing {
		known[id] = struct{}{}
	}

	var unknown []string
	for _, id := range wanted {
		if _, ok := known[id]; !ok {
			unknown = append(unknown, id)
		}
	}
	return unknown, nil
}
