package fiber

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/google/uuid"

	"route-analytics-service/internal/platform/timeutil"
	"route-analytics-service/internal/settings/core/domain"
	"route-analytics-service/internal/settings/core/usecase"
)

type SettingsUseCase interface {
	Create(ctx context.Context, in usecase.SettingInput) (domain.Setting, error)
	Get(ctx context.Context, id uuid.UUID) (domain.Setting, error)
	Search(ctx context.Context, term string) ([]domain.Setting, error)
	ListVisible(ctx context.Context, creator string) ([]domain.Setting, error)
	Delete(ctx context.Context, id uuid.UUID) error
}

type SettingHandler struct {
	uc SettingsUseCase
}

func NewSettingHandler(uc SettingsUseCase) *SettingHandler {
	return &SettingHandler{uc: uc}
}

// Register mounts the settings endpoints on r. The fixed search paths are
// registered ahead of the :id routes.
func (h *SettingHandler) Register(r fiber.Router) {
	r.Post("/settings", h.CreateSetting)
	r.Get("/settings/search", h.SearchSettings)
	r.Get("/settings/visible", h.VisibleSettings)
	r.Get("/settings/:id", h.GetSetting)
	r.Delete("/settings/:id", h.DeleteSetting)
}

// CreateSetting godoc
// @Summary Save a chart setting
// @Tags Settings
// @Accept json
// @Produce json
// @Param request body SettingRequest true "Setting payload"
// @Success 201 {object} SettingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /settings [post]
func (h *SettingHandler) CreateSetting(c *fiber.Ctx) error {
	var req SettingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	from, err := optionalDate(req.RangeFrom)
	if err != nil {
		return badRequest(c, "invalid_date", "rangeFrom: "+err.Error())
	}
	to, err := optionalDate(req.RangeTo)
	if err != nil {
		return badRequest(c, "invalid_date", "rangeTo: "+err.Error())
	}

	s, err := h.uc.Create(c.UserContext(), usecase.SettingInput{
		Name:         req.Name,
		Creator:      req.Creator,
		Shareable:    req.Shareable,
		RangeFrom:    from,
		RangeTo:      to,
		Granularity:  req.Filter.Timestep,
		AxisX:        req.Axis.X,
		AxisY:        req.Axis.Y,
		Airlines:     req.Filter.Airlines,
		Origins:      req.Filter.Origins,
		Destinations: req.Filter.Destinations,
	})
	if err != nil {
		return settingError(c, err)
	}
	return c.Status(http.StatusCreated).JSON(toSettingResponse(s))
}

// GetSetting godoc
// @Summary Get a chart setting
// @Tags Settings
// @Produce json
// @Param id path string true "Setting ID"
// @Success 200 {object} SettingResponse
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /settings/{id} [get]
func (h *SettingHandler) GetSetting(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid_id", "id must be a UUID")
	}

	s, err := h.uc.Get(c.UserContext(), id)
	if err != nil {
		return settingError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toSettingResponse(s))
}

// SearchSettings godoc
// @Summary Search chart settings
// @Description Case-insensitive substring match on name or creator
// @Tags Settings
// @Produce json
// @Param term query string false "Search term"
// @Success 200 {object} SettingsResponse
// @Failure 500 {object} ErrorResponse
// @Router /settings/search [get]
func (h *SettingHandler) SearchSettings(c *fiber.Ctx) error {
	settings, err := h.uc.Search(c.UserContext(), c.Query("term"))
	if err != nil {
		return settingError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toSettingsResponse(settings))
}

// VisibleSettings godoc
// @Summary Settings visible to a creator
// @Description The creator's own settings plus every shareable one
// @Tags Settings
// @Produce json
// @Param creator query string true "Creator name"
// @Success 200 {object} SettingsResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /settings/visible [get]
func (h *SettingHandler) VisibleSettings(c *fiber.Ctx) error {
	settings, err := h.uc.ListVisible(c.UserContext(), c.Query("creator"))
	if err != nil {
		return settingError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toSettingsResponse(settings))
}

// DeleteSetting godoc
// @Summary Delete a chart setting
// @Tags Settings
// @Param id path string true "Setting ID"
// @Success 204
// @Failure 400 {object} ErrorResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /settings/{id} [delete]
func (h *SettingHandler) DeleteSetting(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return badRequest(c, "invalid_id", "id must be a UUID")
	}

	if err := h.uc.Delete(c.UserContext(), id); err != nil {
		return settingError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func settingError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidSetting):
		return badRequest(c, "invalid_setting", err.Error())
	case errors.Is(err, usecase.ErrSettingNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error: "setting_not_found",
		})
	default:
		log.Errorw("settings request failed", "path", c.Path(), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}

func optionalDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	t, err := timeutil.ParseDate(s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
