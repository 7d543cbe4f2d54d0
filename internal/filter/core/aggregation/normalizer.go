// Package aggregation turns an in-memory set of routes into a chart matrix:
// metric sums per calendar bucket per category, zero-filled and ordered by
// bucket rather than by label.
//
// Every call builds its own normalizer and working maps, so concurrent
// aggregations share no state.
package aggregation

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"route-analytics-service/internal/filter/core/domain"
)

// ErrFormat is matched by every *FormatError.
var ErrFormat = errors.New("invalid bucket label")

// FormatError reports a label that is not a valid serialization for a
// granularity. It only arises from explicit label parsing.
type FormatError struct {
	Label       string
	Granularity domain.Granularity
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("invalid %s bucket label %q", e.Granularity, e.Label)
}

func (e *FormatError) Unwrap() error { return ErrFormat }

// BucketKey is the canonical instant of a bucket in Unix seconds (UTC).
// Equal keys mean the same bucket; numeric order is display order.
type BucketKey int64

func (k BucketKey) Time() time.Time {
	return time.Unix(int64(k), 0).UTC()
}

func keyOf(t time.Time) BucketKey {
	return BucketKey(t.Unix())
}

// weekAnchor is the Monday of the canonical week. DAY_OF_WEEK buckets map onto
// weekAnchor..weekAnchor+6 days so that key order is Monday..Sunday.
var weekAnchor = time.Date(2001, time.January, 1, 0, 0, 0, 0, time.UTC)

// monthReferenceYear hosts the twelve MONTH_OF_YEAR buckets.
const monthReferenceYear = 2001

// Normalizer reduces timestamps to bucket keys for a single granularity.
type Normalizer struct {
	granularity domain.Granularity
}

func NewNormalizer(g domain.Granularity) (*Normalizer, error) {
	if !g.Valid() {
		return nil, fmt.Errorf("%w: unknown granularity %q", domain.ErrInvalidRequest, g)
	}
	return &Normalizer{granularity: g}, nil
}

func (n *Normalizer) Granularity() domain.Granularity {
	return n.granularity
}

// Normalize maps t to the canonical key of its bucket. Normalizing a key's own
// instant returns the same key.
func (n *Normalizer) Normalize(t time.Time) BucketKey {
	t = t.UTC()
	switch n.granularity {
	case domain.Year:
		return keyOf(time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC))
	case domain.Month:
		return keyOf(time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC))
	case domain.MonthOfYear:
		return keyOf(time.Date(monthReferenceYear, t.Month(), 1, 0, 0, 0, 0, time.UTC))
	case domain.WeekOfYear:
		return keyOf(startOfISOWeek(t))
	case domain.DayOfWeek:
		return keyOf(weekAnchor.AddDate(0, 0, isoWeekdayIndex(t)))
	default:
		panic(fmt.Sprintf("aggregation: unhandled granularity %q", n.granularity))
	}
}

// Format renders a key as its bucket label.
func (n *Normalizer) Format(k BucketKey) string {
	t := k.Time()
	switch n.granularity {
	case domain.Year:
		return strconv.Itoa(t.Year())
	case domain.Month:
		return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
	case domain.MonthOfYear:
		return t.Month().String()
	case domain.WeekOfYear:
		year, week := t.ISOWeek()
		return fmt.Sprintf("%04d-W%02d", year, week)
	case domain.DayOfWeek:
		return t.Weekday().String()
	default:
		panic(fmt.Sprintf("aggregation: unhandled granularity %q", n.granularity))
	}
}

// Parse is the inverse of Format. Only labels that Format could have produced
// are accepted.
func (n *Normalizer) Parse(label string) (BucketKey, error) {
	t, ok := n.parseTime(label)
	if !ok {
		return 0, &FormatError{Label: label, Granularity: n.granularity}
	}
	k := n.Normalize(t)
	if n.Format(k) != label {
		return 0, &FormatError{Label: label, Granularity: n.granularity}
	}
	return k, nil
}

func (n *Normalizer) parseTime(label string) (time.Time, bool) {
	switch n.granularity {
	case domain.Year:
		y, err := strconv.Atoi(label)
		if err != nil {
			return time.Time{}, false
		}
		return time.Date(y, time.January, 1, 0, 0, 0, 0, time.UTC), true
	case domain.Month:
		return parseYearMonth(label)
	case domain.MonthOfYear:
		for m := time.January; m <= time.December; m++ {
			if m.String() == label {
				return time.Date(monthReferenceYear, m, 1, 0, 0, 0, 0, time.UTC), true
			}
		}
		return time.Time{}, false
	case domain.WeekOfYear:
		return parseISOWeek(label)
	case domain.DayOfWeek:
		for i := range 7 {
			d := weekAnchor.AddDate(0, 0, i)
			if d.Weekday().String() == label {
				return d, true
			}
		}
		return time.Time{}, false
	default:
		return time.Time{}, false
	}
}

func parseISOWeek(label string) (time.Time, bool) {
	yearPart, weekPart, found := strings.Cut(label, "-W")
	if !found {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(yearPart)
	if err != nil {
		return time.Time{}, false
	}
	week, err := strconv.Atoi(weekPart)
	if err != nil || week < 1 || week > 53 {
		return time.Time{}, false
	}
	// January 4th always falls in ISO week 1.
	first := startOfISOWeek(time.Date(year, time.January, 4, 0, 0, 0, 0, time.UTC))
	return first.AddDate(0, 0, 7*(week-1)), true
}

// parseYearMonth reads "YYYY-MM". The year may be negative or have more than
// four digits, matching what Format writes for such keys.
func parseYearMonth(label string) (time.Time, bool) {
	i := strings.LastIndex(label, "-")
	if i <= 0 {
		return time.Time{}, false
	}
	year, err := strconv.Atoi(label[:i])
	if err != nil {
		return time.Time{}, false
	}
	month, err := strconv.Atoi(label[i+1:])
	if err != nil || month < 1 || month > 12 {
		return time.Time{}, false
	}
	return time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC), true
}

// isoWeekdayIndex is 0 for Monday through 6 for Sunday.
func isoWeekdayIndex(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}

func startOfDay(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func startOfISOWeek(t time.Time) time.Time {
	d := startOfDay(t)
	return d.AddDate(0, 0, -isoWeekdayIndex(d))
}
