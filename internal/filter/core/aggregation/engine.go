package aggregation

import (
	"route-analytics-service/internal/filter/core/domain"
	routedomain "route-analytics-service/internal/routes/core/domain"
)

// Aggregate runs the full pipeline for one request over already fetched
// records: group, bucket and sum, zero-fill, assemble.
func Aggregate(req domain.Request, records []routedomain.Route) (domain.Result, error) {
	if err := req.Validate(); err != nil {
		return domain.Result{}, err
	}

	normalizer, err := NewNormalizer(req.Granularity)
	if err != nil {
		return domain.Result{}, err
	}
	keys := NewKeyGenerator(normalizer).RangeKeys(req.RangeFrom, req.RangeTo)

	groups, err := GroupByCategory(records, req.Axis)
	if err != nil {
		return domain.Result{}, err
	}

	aggregator, err := NewAggregator(normalizer, req.Metric)
	if err != nil {
		return domain.Result{}, err
	}

	rows := make(map[string][]float64, len(groups.Names))
	for _, name := range groups.Names {
		row, err := aggregator.Aggregate(groups.Records[name], keys)
		if err != nil {
			return domain.Result{}, err
		}
		rows[name] = row
	}

	res, err := NewAssembler(normalizer).Assemble(keys, groups.Names, rows)
	if err != nil {
		return domain.Result{}, err
	}
	res.Axis = req.Axis
	res.Metric = req.Metric
	return res, nil
}
