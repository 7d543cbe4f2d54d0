package fiber

import (
	"time"

	"route-analytics-service/internal/routes/core/domain"
)

// CreateRouteRequest represents route creation payload
// @Description Route creation DTO. date accepts YYYY-MM-DD or RFC 3339.
type CreateRouteRequest struct {
	Date           string  `json:"date" example:"2014-01-01"`
	Delays         float64 `json:"delays"`
	Cancelled      float64 `json:"cancelled"`
	PassengerCount float64 `json:"passengerCount" example:"180"`
	FlightCount    float64 `json:"flightCount" example:"1"`
	Airline        string  `json:"airline" example:"LH"`
	Origin         string  `json:"origin" example:"FRA"`
	Destination    string  `json:"destination" example:"JFK"`
}

type CreateRouteResponse struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
}

type BulkCreateRoutesRequest struct {
	Routes []CreateRouteRequest `json:"routes"`
}

type BulkCreateRoutesResponse struct {
	Created    int `json:"created"`
	Duplicates int `json:"duplicates"`
}

type RouteResponse struct {
	ID             string  `json:"id"`
	Date           string  `json:"date"`
	Delays         float64 `json:"delays"`
	Cancelled      float64 `json:"cancelled"`
	PassengerCount float64 `json:"passengerCount"`
	FlightCount    float64 `json:"flightCount"`
	Airline        string  `json:"airline"`
	Origin         string  `json:"origin"`
	Destination    string  `json:"destination"`
}

type RoutesResponse struct {
	Count  int             `json:"count"`
	Routes []RouteResponse `json:"routes"`
}

type InMonthResponse struct {
	Date   string `json:"date"`
	Exists bool   `json:"exists"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_route"`
	Message string `json:"message" example:"Route payload is invalid"`
}

func toRouteResponse(r domain.Route) RouteResponse {
	return RouteResponse{
		ID:             r.ID.String(),
		Date:           r.Date.UTC().Format(time.RFC3339),
		Delays:         r.Delays,
		Cancelled:      r.Cancelled,
		PassengerCount: r.PassengerCount,
		FlightCount:    r.FlightCount,
		Airline:        r.Airline,
		Origin:         r.Origin,
		Destination:    r.Destination,
	}
}
