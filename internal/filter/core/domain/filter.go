package domain

import (
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidRequest is the root of every request validation failure.
var ErrInvalidRequest = errors.New("invalid aggregation request")

// Granularity is the time-reduction scheme applied to route dates.
type Granularity string

const (
	DayOfWeek Granularity = "DAY_OF_WEEK"
	// Month keeps the year: one bucket per calendar month instance.
	Month Granularity = "MONTH"
	// MonthOfYear collapses all years into twelve buckets.
	MonthOfYear Granularity = "MONTH_OF_YEAR"
	Year        Granularity = "YEAR"
	WeekOfYear  Granularity = "WEEK_OF_YEAR"
)

// Granularities lists every supported granularity.
var Granularities = []Granularity{DayOfWeek, Month, MonthOfYear, Year, WeekOfYear}

func (g Granularity) Valid() bool {
	return slices.Contains(Granularities, g)
}

func ParseGranularity(s string) (Granularity, error) {
	g := Granularity(strings.ToUpper(strings.TrimSpace(s)))
	if !g.Valid() {
		return "", fmt.Errorf("%w: unknown granularity %q", ErrInvalidRequest, s)
	}
	return g, nil
}

// Axis is the non-time dimension used to split records into result rows.
type Axis string

const (
	AxisNone        Axis = "NONE"
	AxisAirline     Axis = "AIRLINE"
	AxisDestination Axis = "DESTINATION"
)

func (a Axis) Valid() bool {
	switch a {
	case AxisNone, AxisAirline, AxisDestination:
		return true
	default:
		return false
	}
}

// ParseAxis accepts the category axis names plus "TIME", which is how chart
// settings spell the pure time-series mode.
func ParseAxis(s string) (Axis, error) {
	switch v := strings.ToUpper(strings.TrimSpace(s)); v {
	case "TIME", string(AxisNone):
		return AxisNone, nil
	case string(AxisAirline), string(AxisDestination):
		return Axis(v), nil
	default:
		return "", fmt.Errorf("%w: unknown axis %q", ErrInvalidRequest, s)
	}
}

// Metric selects the quantitative route value that is summed.
type Metric string

const (
	Flights        Metric = "FLIGHTS"
	Passengers     Metric = "PASSENGERS"
	DelayFrequency Metric = "DELAY_FREQUENCY"
	Cancellations  Metric = "CANCELLATIONS"
	// AverageDelay has no computation yet and always yields zero.
	AverageDelay Metric = "AVERAGE_DELAY"
)

func (m Metric) Valid() bool {
	switch m {
	case Flights, Passengers, DelayFrequency, Cancellations, AverageDelay:
		return true
	default:
		return false
	}
}

// Supported reports whether the metric is computed from route data.
func (m Metric) Supported() bool {
	return m.Valid() && m != AverageDelay
}

var metricAliases = map[string]Metric{
	"DELAYFREQ": DelayFrequency,
	"AVGDELAY":  AverageDelay,
}

func ParseMetric(s string) (Metric, error) {
	v := strings.ToUpper(strings.TrimSpace(s))
	if m, ok := metricAliases[v]; ok {
		return m, nil
	}
	m := Metric(v)
	if !m.Valid() {
		return "", fmt.Errorf("%w: unknown metric %q", ErrInvalidRequest, s)
	}
	return m, nil
}

// Request is one fully parsed aggregation request over [RangeFrom, RangeTo).
type Request struct {
	RangeFrom    time.Time
	RangeTo      time.Time
	Granularity  Granularity
	Axis         Axis
	Metric       Metric
	Airlines     []string
	Destinations []string
}

func (r Request) Validate() error {
	switch {
	case r.RangeFrom.IsZero() || r.RangeTo.IsZero():
		return fmt.Errorf("%w: range bounds are required", ErrInvalidRequest)
	case r.RangeFrom.After(r.RangeTo):
		return fmt.Errorf("%w: rangeFrom is after rangeTo", ErrInvalidRequest)
	case !r.Granularity.Valid():
		return fmt.Errorf("%w: unknown granularity %q", ErrInvalidRequest, r.Granularity)
	case r.Axis == "":
		return fmt.Errorf("%w: axis is required", ErrInvalidRequest)
	case !r.Axis.Valid():
		return fmt.Errorf("%w: unknown axis %q", ErrInvalidRequest, r.Axis)
	case !r.Metric.Valid():
		return fmt.Errorf("%w: unknown metric %q", ErrInvalidRequest, r.Metric)
	}
	return nil
}

// CacheKey identifies the request across every field that can change the
// result. Filter order does not matter.
func (r Request) CacheKey() string {
	airlines := slices.Clone(r.Airlines)
	slices.Sort(airlines)
	destinations := slices.Clone(r.Destinations)
	slices.Sort(destinations)

	return strings.Join([]string{
		r.RangeFrom.UTC().Format(time.RFC3339Nano),
		r.RangeTo.UTC().Format(time.RFC3339Nano),
		string(r.Granularity),
		string(r.Axis),
		string(r.Metric),
		quoteList(airlines),
		quoteList(destinations),
	}, "|")
}

// quoteList joins quoted entries so that an entry containing a separator
// cannot be confused with two entries.
func quoteList(list []string) string {
	quoted := make([]string, len(list))
	for i, s := range list {
		quoted[i] = strconv.Quote(s)
	}
	return strings.Join(quoted, ",")
}

// Result is a rectangular chart matrix: every Data row is aligned with Labels.
type Result struct {
	Granularity Granularity
	Axis        Axis
	Metric      Metric
	Labels      []string
	Categories  []string
	Data        map[string][]float64
}

// Series folds all categories into one label -> value mapping. With AxisNone
// this is exactly the requested time series.
func (r Result) Series() map[string]float64 {
	out := make(map[string]float64, len(r.Labels))
	for i, label := range r.Labels {
		var sum float64
		for _, name := range r.Categories {
			sum += r.Data[name][i]
		}
		out[label] = sum
	}
	return out
}
