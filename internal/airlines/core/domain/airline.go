package domain

// Airline is a registered carrier. Routes name their airline by ID.
type Airline struct {
	ID   string
	Name string
}
