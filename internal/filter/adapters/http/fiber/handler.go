package fiber

import (
	"context"
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"route-analytics-service/internal/filter/core/domain"
	"route-analytics-service/internal/filter/core/usecase"
	"route-analytics-service/internal/platform/timeutil"
)

type FilterRoutesUseCase interface {
	Execute(ctx context.Context, in usecase.FilterInput) (domain.Result, error)
}

type FilterHandler struct {
	filterUC FilterRoutesUseCase
}

func NewFilterHandler(filterUC FilterRoutesUseCase) *FilterHandler {
	return &FilterHandler{filterUC: filterUC}
}

func (h *FilterHandler) Register(r fiber.Router) {
	r.Post("/routes/filter", h.Filter)
}

// Filter godoc
// @Summary Aggregate routes into a chart matrix
// @Description Sums a metric per time bucket and category over a date range, zero-filling empty buckets
// @Tags Filter
// @Accept json
// @Produce json
// @Param request body FilterRequest true "Filter payload"
// @Success 200 {object} FilterResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /routes/filter [post]
func (h *FilterHandler) Filter(c *fiber.Ctx) error {
	var req FilterRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	from, err := timeutil.ParseDate(req.RangeFrom)
	if err != nil {
		return badRequest(c, "invalid_date", "rangeFrom: "+err.Error())
	}
	to, err := timeutil.ParseDate(req.RangeTo)
	if err != nil {
		return badRequest(c, "invalid_date", "rangeTo: "+err.Error())
	}

	in := usecase.FilterInput{RangeFrom: from, RangeTo: to}
	if req.Axis != nil {
		in.Axis = &usecase.AxisInput{X: req.Axis.X, Y: req.Axis.Y}
	}
	if req.Filter != nil {
		in.Filter = &usecase.FilterSpec{
			Timestep:     req.Filter.Timestep,
			Airlines:     req.Filter.Airlines,
			Destinations: req.Filter.Destinations,
		}
	}

	res, err := h.filterUC.Execute(c.UserContext(), in)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidRequest) {
			return badRequest(c, "invalid_request", err.Error())
		}
		log.Errorw("filter failed", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}

	return c.Status(http.StatusOK).JSON(toFilterResponse(res))
}

func toFilterResponse(res domain.Result) FilterResponse {
	resp := FilterResponse{
		X:           res.Labels,
		Y:           string(res.Metric),
		Z:           string(res.Axis),
		Granularity: string(res.Granularity),
		Categories:  res.Categories,
		Data:        res.Data,
	}
	if resp.X == nil {
		resp.X = []string{}
	}
	if resp.Categories == nil {
		resp.Categories = []string{}
	}
	if resp.Data == nil {
		resp.Data = map[string][]float64{}
	}
	if res.Axis == domain.AxisNone {
		resp.Series = res.Series()
	}
	return resp
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
		Error:   code,
		Message: msg,
	})
}
