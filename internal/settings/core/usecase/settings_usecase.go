package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	filterdomain "route-analytics-service/internal/filter/core/domain"
	"route-analytics-service/internal/settings/core/domain"
	"route-analytics-service/internal/settings/core/ports"
)

var (
	ErrInvalidSetting  = errors.New("invalid setting")
	ErrMissingCreator  = fmt.Errorf("%w: creator is required", ErrInvalidSetting)
	ErrSettingNotFound = ports.ErrSettingNotFound
)

// MinNameLength applies to both name and creator.
const MinNameLength = 3

// timeAxis is how settings spell the pure time-series axis.
const timeAxis = "TIME"

type SettingInput struct {
	Name         string
	Creator      string
	Shareable    bool
	RangeFrom    *time.Time
	RangeTo      *time.Time
	Granularity  string
	AxisX        string
	AxisY        string
	Airlines     []string
	Origins      []string
	Destinations []string
}

type SettingsUseCase struct {
	repo ports.SettingRepositoryPort
	now  func() time.Time
}

func NewSettingsUseCase(repo ports.SettingRepositoryPort) *SettingsUseCase {
	return &SettingsUseCase{repo: repo, now: time.Now}
}

func (uc *SettingsUseCase) Create(ctx context.Context, in SettingInput) (domain.Setting, error) {
	s, err := uc.build(in)
	if err != nil {
		return domain.Setting{}, err
	}
	s.ID = uuid.New()

	if err := uc.repo.InsertSetting(ctx, &s); err != nil {
		return domain.Setting{}, err
	}
	return s, nil
}

func (uc *SettingsUseCase) Get(ctx context.Context, id uuid.UUID) (domain.Setting, error) {
	return uc.repo.GetSetting(ctx, id)
}

// Search returns settings whose name or creator contains term.
func (uc *SettingsUseCase) Search(ctx context.Context, term string) ([]domain.Setting, error) {
	return uc.repo.SearchSettings(ctx, strings.TrimSpace(term))
}

// ListVisible returns the creator's own settings plus every shareable one.
func (uc *SettingsUseCase) ListVisible(ctx context.Context, creator string) ([]domain.Setting, error) {
	creator = strings.TrimSpace(creator)
	if creator == "" {
		return nil, ErrMissingCreator
	}
	return uc.repo.VisibleSettings(ctx, creator)
}

func (uc *SettingsUseCase) Delete(ctx context.Context, id uuid.UUID) error {
	return uc.repo.DeleteSetting(ctx, id)
}

func (uc *SettingsUseCase) build(in SettingInput) (domain.Setting, error) {
	name := strings.TrimSpace(in.Name)
	creator := strings.TrimSpace(in.Creator)

	if utf8.RuneCountInString(name) < MinNameLength {
		return domain.Setting{}, fmt.Errorf("%w: name must have at least %d characters", ErrInvalidSetting, MinNameLength)
	}
	if utf8.RuneCountInString(creator) < MinNameLength {
		return domain.Setting{}, fmt.Errorf("%w: creator must have at least %d characters", ErrInvalidSetting, MinNameLength)
	}

	now := uc.now()
	from, to := utcPtr(in.RangeFrom), utcPtr(in.RangeTo)
	if from != nil && !from.Before(now) {
		return domain.Setting{}, fmt.Errorf("%w: rangeFrom must be in the past", ErrInvalidSetting)
	}
	if to != nil && !to.Before(now) {
		return domain.Setting{}, fmt.Errorf("%w: rangeTo must be in the past", ErrInvalidSetting)
	}
	if from != nil && to != nil && from.After(*to) {
		return domain.Setting{}, fmt.Errorf("%w: rangeFrom is after rangeTo", ErrInvalidSetting)
	}

	g, err := filterdomain.ParseGranularity(in.Granularity)
	if err != nil {
		return domain.Setting{}, fmt.Errorf("%w: %w", ErrInvalidSetting, err)
	}
	axis, err := filterdomain.ParseAxis(in.AxisX)
	if err != nil {
		return domain.Setting{}, fmt.Errorf("%w: %w", ErrInvalidSetting, err)
	}
	metric, err := filterdomain.ParseMetric(in.AxisY)
	if err != nil {
		return domain.Setting{}, fmt.Errorf("%w: %w", ErrInvalidSetting, err)
	}

	axisX := string(axis)
	if axis == filterdomain.AxisNone {
		axisX = timeAxis
	}

	return domain.Setting{
		Name:         name,
		Creator:      creator,
		Shareable:    in.Shareable,
		RangeFrom:    from,
		RangeTo:      to,
		Granularity:  string(g),
		AxisX:        axisX,
		AxisY:        string(metric),
		Airlines:     cleanList(in.Airlines),
		Origins:      cleanList(in.Origins),
		Destinations: cleanList(in.Destinations),
	}, nil
}

func utcPtr(t *time.Time) *time.Time {
	if t == nil || t.IsZero() {
		return nil
	}
	u := t.UTC()
	return &u
}

// cleanList trims entries and drops blanks. The result is never nil.
func cleanList(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if s = strings.TrimSpace(s); s != "" {
			out = append(out, s)
		}
	}
	return out
}
