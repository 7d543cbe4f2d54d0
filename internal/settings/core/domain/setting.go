package domain

import (
	"time"

	"github.com/google/uuid"
)

// Setting is a saved chart configuration. Range bounds are optional; a nil
// bound leaves the range open on that side.
type Setting struct {
	ID           uuid.UUID
	Name         string
	Creator      string
	Shareable    bool
	RangeFrom    *time.Time
	RangeTo      *time.Time
	Granularity  string
	AxisX        string
	AxisY        string
	Airlines     []string
	Origins      []string
	Destinations []string
}
