package aggregation

import (
	"fmt"
	"slices"

	"route-analytics-service/internal/filter/core/domain"
	routedomain "route-analytics-service/internal/routes/core/domain"
)

// MetricValue returns the value of metric m carried by r.
// AverageDelay is not computed and is always zero.
func MetricValue(m domain.Metric, r routedomain.Route) (float64, error) {
	switch m {
	case domain.Flights:
		return r.FlightCount, nil
	case domain.Passengers:
		return r.PassengerCount, nil
	case domain.DelayFrequency:
		return r.Delays, nil
	case domain.Cancellations:
		return r.Cancelled, nil
	case domain.AverageDelay:
		return 0, nil
	default:
		return 0, fmt.Errorf("%w: unknown metric %q", domain.ErrInvalidRequest, m)
	}
}

// keyedValue pairs a record with its bucket without touching the record.
type keyedValue struct {
	Key   BucketKey
	Value float64
}

// Aggregator sums one metric per bucket for a single category.
type Aggregator struct {
	normalizer *Normalizer
	metric     domain.Metric
}

func NewAggregator(n *Normalizer, m domain.Metric) (*Aggregator, error) {
	if !m.Valid() {
		return nil, fmt.Errorf("%w: unknown metric %q", domain.ErrInvalidRequest, m)
	}
	return &Aggregator{normalizer: n, metric: m}, nil
}

// Aggregate returns one sum per key, aligned with keys in key order. Keys with
// no records are 0. Records whose bucket is not in keys are not counted.
func (a *Aggregator) Aggregate(records []routedomain.Route, keys []BucketKey) ([]float64, error) {
	pairs, err := a.bucket(records)
	if err != nil {
		return nil, err
	}

	sums := make(map[BucketKey]float64, len(keys))
	for _, k := range keys {
		sums[k] = 0
	}
	for _, p := range pairs {
		if _, ok := sums[p.Key]; ok {
			sums[p.Key] += p.Value
		}
	}

	ordered := sortedKeys(keys)
	out := make([]float64, len(ordered))
	for i, k := range ordered {
		out[i] = sums[k]
	}
	return out, nil
}

func (a *Aggregator) bucket(records []routedomain.Route) ([]keyedValue, error) {
	pairs := make([]keyedValue, 0, len(records))
	for _, r := range records {
		v, err := MetricValue(a.metric, r)
		if err != nil {
			return nil, err
		}
		pairs = append(pairs, keyedValue{
			Key:   a.normalizer.Normalize(r.Date),
			Value: v,
		})
	}
	return pairs, nil
}

// sortedKeys returns keys in key order, cloning only when they are not sorted.
func sortedKeys(keys []BucketKey) []BucketKey {
	if slices.IsSorted(keys) {
		return keys
	}
	ordered := slices.Clone(keys)
	slices.Sort(ordered)
	return ordered
}
