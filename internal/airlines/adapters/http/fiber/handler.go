package fiber

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"route-analytics-service/internal/airlines/core/domain"
	"route-analytics-service/internal/airlines/core/usecase"
)

type AirlinesUseCase interface {
	Save(ctx context.Context, id, name string) (domain.Airline, error)
	Get(ctx context.Context, id string) (domain.Airline, error)
	List(ctx context.Context) ([]domain.Airline, error)
	Delete(ctx context.Context, id string) error
}

type AirlineHandler struct {
	uc AirlinesUseCase
}

func NewAirlineHandler(uc AirlinesUseCase) *AirlineHandler {
	return &AirlineHandler{uc: uc}
}

func (h *AirlineHandler) Register(r fiber.Router) {
	r.Get("/airlines", h.ListAirlines)
	r.Put("/airlines/:id", h.SaveAirline)
	r.Get("/airlines/:id", h.GetAirline)
	r.Delete("/airlines/:id", h.DeleteAirline)
}

// SaveAirline godoc
// @Summary Register or rename an airline
// @Tags Airlines
// @Accept json
// @Produce json
// @Param id path string true "Airline ID"
// @Param request body AirlineRequest true "Airline payload"
// @Success 200 {object} AirlineResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /airlines/{id} [put]
func (h *AirlineHandler) SaveAirline(c *fiber.Ctx) error {
	var req AirlineRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	a, err := h.uc.Save(c.UserContext(), c.Params("id"), req.Name)
	if err != nil {
		return airlineError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toAirlineResponse(a))
}

// GetAirline godoc
// @Summary Get an airline
// @Tags Airlines
// @Produce json
// @Param id path string true "Airline ID"
// @Success 200 {object} AirlineResponse
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /airlines/{id} [get]
func (h *AirlineHandler) GetAirline(c *fiber.Ctx) error {
	a, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return airlineError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toAirlineResponse(a))
}

// ListAirlines godoc
// @Summary List airlines
// @Tags Airlines
// @Produce json
// @Success 200 {object} AirlinesResponse
// @Failure 500 {object} ErrorResponse
// @Router /airlines [get]
func (h *AirlineHandler) ListAirlines(c *fiber.Ctx) error {
	airlines, err := h.uc.List(c.UserContext())
	if err != nil {
		return airlineError(c, err)
	}
	return c.Status(http.StatusOK).JSON(toAirlinesResponse(airlines))
}

// DeleteAirline godoc
// @Summary Delete an airline
// @Tags Airlines
// @Param id path string true "Airline ID"
// @Success 204
// @Failure 404 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /airlines/{id} [delete]
func (h *AirlineHandler) DeleteAirline(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return airlineError(c, err)
	}
	return c.SendStatus(http.StatusNoContent)
}

func airlineError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidAirline):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_airline",
			Message: err.Error(),
		})
	case errors.Is(err, usecase.ErrAirlineNotFound):
		return c.Status(http.StatusNotFound).JSON(ErrorResponse{
			Error: "airline_not_found",
		})
	default:
		log.Errorw("airline request failed", "path", c.Path(), "error", err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
