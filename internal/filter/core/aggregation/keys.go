package aggregation

import (
	"slices"
	"time"

	"route-analytics-service/internal/filter/core/domain"
)

// KeyGenerator enumerates every bucket of a date range, including buckets
// that no record falls into.
type KeyGenerator struct {
	normalizer *Normalizer
}

func NewKeyGenerator(n *Normalizer) *KeyGenerator {
	return &KeyGenerator{normalizer: n}
}

// RangeKeys returns the distinct keys covering [from, to) in key order.
// It is empty when from is not before to and has at least one key otherwise.
func (g *KeyGenerator) RangeKeys(from, to time.Time) []BucketKey {
	if !from.Before(to) {
		return nil
	}

	limit := g.distinctLimit()
	seen := make(map[BucketKey]struct{})
	var keys []BucketKey

	for cursor := g.periodStart(from); cursor.Before(to); cursor = g.step(cursor) {
		k := g.normalizer.Normalize(cursor)
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
		if limit > 0 && len(keys) == limit {
			break
		}
	}

	slices.Sort(keys)
	return keys
}

// periodStart truncates t to the start of its own bucket period.
func (g *KeyGenerator) periodStart(t time.Time) time.Time {
	t = t.UTC()
	switch g.normalizer.granularity {
	case domain.Year:
		return time.Date(t.Year(), time.January, 1, 0, 0, 0, 0, time.UTC)
	case domain.Month, domain.MonthOfYear:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	case domain.WeekOfYear:
		return startOfISOWeek(t)
	default:
		return startOfDay(t)
	}
}

func (g *KeyGenerator) step(t time.Time) time.Time {
	switch g.normalizer.granularity {
	case domain.Year:
		return t.AddDate(1, 0, 0)
	case domain.Month, domain.MonthOfYear:
		return t.AddDate(0, 1, 0)
	case domain.WeekOfYear:
		return t.AddDate(0, 0, 7)
	default:
		return t.AddDate(0, 0, 1)
	}
}

// distinctLimit is the number of buckets after which a cyclic granularity
// cannot produce anything new. Zero means unbounded.
func (g *KeyGenerator) distinctLimit() int {
	switch g.normalizer.granularity {
	case domain.DayOfWeek:
		return 7
	case domain.MonthOfYear:
		return 12
	default:
		return 0
	}
}
