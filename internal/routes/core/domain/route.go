package domain

import (
	"time"

	"github.com/google/uuid"
)

// Route is one time-stamped flight-route record. Metrics are never negative
// and the category fields are always set.
type Route struct {
	ID             uuid.UUID
	Date           time.Time
	Delays         float64
	Cancelled      float64
	PassengerCount float64
	FlightCount    float64
	Airline        string
	Origin         string
	Destination    string
	DedupeKey      string
}

// RouteQuery selects routes dated in [From, To). An empty filter slice means
// "any value", never "match nothing".
type RouteQuery struct {
	From         time.Time
	To           time.Time
	Airlines     []string
	Destinations []string
}
