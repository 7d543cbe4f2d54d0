package fiber

import (
	"context"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"

	"route-analytics-service/internal/platform/timeutil"
	"route-analytics-service/internal/routes/core/domain"
	"route-analytics-service/internal/routes/core/usecase"
)

type StoreRouteUseCase interface {
	Execute(ctx context.Context, in usecase.StoreRouteInput) (bool, error)
	BulkCreateRoutes(ctx context.Context, in usecase.BulkCreateRoutesInput) (usecase.BulkCreateRoutesResult, error)
}

type FindRoutesUseCase interface {
	ByYear(ctx context.Context, year int) ([]domain.Route, error)
	InMonthOfYear(ctx context.Context, date time.Time) (bool, error)
}

type RouteHandler struct {
	storeUC StoreRouteUseCase
	findUC  FindRoutesUseCase
}

func NewRouteHandler(storeUC StoreRouteUseCase, findUC FindRoutesUseCase) *RouteHandler {
	return &RouteHandler{storeUC: storeUC, findUC: findUC}
}

// Register mounts the route endpoints on r.
func (h *RouteHandler) Register(r fiber.Router) {
	r.Post("/routes", h.CreateRoute)
	r.Post("/routes/bulk", h.BulkCreateRoutes)
	r.Get("/routes/search/by-year", h.FindByYear)
	r.Get("/routes/search/in-month", h.InMonthOfYear)
}

// CreateRoute godoc
// @Summary Create a new route
// @Description Stores a single route record with idempotency handling
// @Tags Routes
// @Accept json
// @Produce json
// @Param request body CreateRouteRequest true "Route payload"
// @Success 201 {object} CreateRouteResponse
// @Success 200 {object} CreateRouteResponse "Duplicate route"
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /routes [post]
func (h *RouteHandler) CreateRoute(c *fiber.Ctx) error {
	var req CreateRouteRequest

	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	input, err := toStoreInput(req)
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_date",
			Message: err.Error(),
		})
	}

	created, err := h.storeUC.Execute(c.UserContext(), input)
	if err != nil {
		return storeError(c, err)
	}

	if !created {
		return c.Status(http.StatusOK).JSON(CreateRouteResponse{Status: "duplicate"})
	}
	return c.Status(http.StatusCreated).JSON(CreateRouteResponse{Status: "created"})
}

// BulkCreateRoutes godoc
// @Summary Bulk create routes
// @Description Validates every route, then stores them individually
// @Tags Routes
// @Accept json
// @Produce json
// @Param request body BulkCreateRoutesRequest true "Bulk route payload"
// @Success 201 {object} BulkCreateRoutesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /routes/bulk [post]
func (h *RouteHandler) BulkCreateRoutes(c *fiber.Ctx) error {
	var req BulkCreateRoutesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid_json",
		})
	}

	if len(req.Routes) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "routes_list_required",
		})
	}

	inputs := make([]usecase.StoreRouteInput, len(req.Routes))
	for i, r := range req.Routes {
		in, err := toStoreInput(r)
		if err != nil {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_date",
				Message: "route " + strconv.Itoa(i) + ": " + err.Error(),
			})
		}
		inputs[i] = in
	}

	result, err := h.storeUC.BulkCreateRoutes(
		c.UserContext(),
		usecase.BulkCreateRoutesInput{Routes: inputs},
	)
	if err != nil {
		return storeError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(BulkCreateRoutesResponse{
		Created:    result.Created,
		Duplicates: result.Duplicates,
	})
}

// FindByYear godoc
// @Summary Routes of a year
// @Description Returns every route dated in the given calendar year
// @Tags Routes
// @Produce json
// @Param year query int true "Calendar year, 1970 or later"
// @Success 200 {object} RoutesResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /routes/search/by-year [get]
func (h *RouteHandler) FindByYear(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_year",
			Message: "year must be an integer",
		})
	}

	routes, err := h.findUC.ByYear(c.UserContext(), year)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidYear) {
			return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
				Error:   "invalid_year",
				Message: err.Error(),
			})
		}
		log.Errorw("find routes by year failed", "year", year, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}

	resp := RoutesResponse{Count: len(routes), Routes: make([]RouteResponse, len(routes))}
	for i, r := range routes {
		resp.Routes[i] = toRouteResponse(r)
	}
	return c.Status(http.StatusOK).JSON(resp)
}

// InMonthOfYear godoc
// @Summary Any route in a month
// @Description Reports whether any route lies in the calendar month of date
// @Tags Routes
// @Produce json
// @Param date query string true "Date in the month, YYYY-MM-DD"
// @Success 200 {object} InMonthResponse
// @Failure 400 {object} ErrorResponse
// @Failure 500 {object} ErrorResponse
// @Router /routes/search/in-month [get]
func (h *RouteHandler) InMonthOfYear(c *fiber.Ctx) error {
	date, err := timeutil.ParseDate(c.Query("date"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_date",
			Message: err.Error(),
		})
	}

	exists, err := h.findUC.InMonthOfYear(c.UserContext(), date)
	if err != nil {
		log.Errorw("month lookup failed", "date", date, "error", err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}

	return c.Status(http.StatusOK).JSON(InMonthResponse{
		Date:   date.Format(timeutil.DateLayout),
		Exists: exists,
	})
}

func toStoreInput(r CreateRouteRequest) (usecase.StoreRouteInput, error) {
	date, err := timeutil.ParseDate(r.Date)
	if err != nil {
		return usecase.StoreRouteInput{}, err
	}
	return usecase.StoreRouteInput{
		Date:           date,
		Delays:         r.Delays,
		Cancelled:      r.Cancelled,
		PassengerCount: r.PassengerCount,
		FlightCount:    r.FlightCount,
		Airline:        r.Airline,
		Origin:         r.Origin,
		Destination:    r.Destination,
	}, nil
}

func storeError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, usecase.ErrInvalidRoute),
		errors.Is(err, usecase.ErrFutureDate),
		errors.Is(err, usecase.ErrNegativeMetric):
		return c.Status(http.StatusBadRequest).JSON(ErrorResponse{
			Error:   "invalid_route",
			Message: err.Error(),
		})
	default:
		log.Errorw("store route failed", "error", err)
		return c.Status(http.StatusInternalServerError).JSON(ErrorResponse{
			Error: "internal_server_error",
		})
	}
}
