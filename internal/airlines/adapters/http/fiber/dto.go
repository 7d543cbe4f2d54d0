package fiber

import "route-analytics-service/internal/airlines/core/domain"

// AirlineRequest names the airline stored under the path ID
type AirlineRequest struct {
	Name string `json:"name" example:"Lufthansa"`
}

type AirlineResponse struct {
	ID   string `json:"id" example:"LH"`
	Name string `json:"name" example:"Lufthansa"`
}

type AirlinesResponse struct {
	Count    int               `json:"count" example:"1"`
	Airlines []AirlineResponse `json:"airlines"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_airline"`
	Message string `json:"message,omitempty"`
}

func toAirlineResponse(a domain.Airline) AirlineResponse {
	return AirlineResponse{ID: a.ID, Name: a.Name}
}

func toAirlinesResponse(airlines []domain.Airline) AirlinesResponse {
	out := AirlinesResponse{Count: len(airlines), Airlines: make([]AirlineResponse, 0, len(airlines))}
	for _, a := range airlines {
		out.Airlines = append(out.Airlines, toAirlineResponse(a))
	}
	return out
}
