package ports

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"route-analytics-service/internal/settings/core/domain"
)

var ErrSettingNotFound = errors.New("setting not found")

type SettingRepositoryPort interface {
	InsertSetting(ctx context.Context, s *domain.Setting) error
	// GetSetting returns ErrSettingNotFound when id is unknown.
	GetSetting(ctx context.Context, id uuid.UUID) (domain.Setting, error)
	// SearchSettings matches term against name or creator, ignoring case.
	SearchSettings(ctx context.Context, term string) ([]domain.Setting, error)
	// VisibleSettings returns settings whose creator contains creator
	// (ignoring case) plus every shareable setting.
	VisibleSettings(ctx context.Context, creator string) ([]domain.Setting, error)
	// DeleteSetting returns ErrSettingNotFound when nothing was removed.
	DeleteSetting(ctx context.Context, id uuid.UUID) error
}
