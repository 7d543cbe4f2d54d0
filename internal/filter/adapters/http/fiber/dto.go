package fiber

// FilterRequest is the chart query payload
// @Description Aggregation request. Dates accept YYYY-MM-DD or RFC 3339; the range is half-open.
type FilterRequest struct {
	RangeFrom string        `json:"rangeFrom" example:"2014-01-01"`
	RangeTo   string        `json:"rangeTo" example:"2014-04-01"`
	Axis      *AxisDTO      `json:"axis"`
	Filter    *FilterSpecTO `json:"filter"`
}

// AxisDTO selects the category axis (x: TIME, AIRLINE, DESTINATION) and the
// metric (y: FLIGHTS, PASSENGERS, DELAY_FREQUENCY, CANCELLATIONS, AVERAGE_DELAY).
type AxisDTO struct {
	X string `json:"x" example:"AIRLINE"`
	Y string `json:"y" example:"FLIGHTS"`
}

type FilterSpecTO struct {
	Timestep     string   `json:"timestep" example:"MONTH"`
	Airlines     []string `json:"airlines"`
	Destinations []string `json:"destinations"`
}

// FilterResponse is a rectangular chart matrix: every data row is aligned
// with x.
type FilterResponse struct {
	X           []string             `json:"x"`
	Y           string               `json:"y"`
	Z           string               `json:"z"`
	Granularity string               `json:"granularity"`
	Categories  []string             `json:"categories"`
	Data        map[string][]float64 `json:"data"`
	Series      map[string]float64   `json:"series,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error" example:"invalid_request"`
	Message string `json:"message" example:"axis is required"`
}
