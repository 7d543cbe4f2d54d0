package aggregation

import (
	"fmt"
	"slices"

	"route-analytics-service/internal/filter/core/domain"
	routedomain "route-analytics-service/internal/routes/core/domain"
)

// TotalCategory names the single implicit category of AxisNone.
const TotalCategory = "total"

// Groups holds records per category and the category names in sorted order.
type Groups struct {
	Names   []string
	Records map[string][]routedomain.Route
}

// GroupByCategory partitions records along axis. Every record lands in
// exactly one group. AxisNone always yields the TotalCategory group, even for
// an empty record set, so a time series is still zero-filled.
func GroupByCategory(records []routedomain.Route, axis domain.Axis) (Groups, error) {
	var categoryOf func(routedomain.Route) string
	switch axis {
	case domain.AxisNone:
		return Groups{
			Names:   []string{TotalCategory},
			Records: map[string][]routedomain.Route{TotalCategory: records},
		}, nil
	case domain.AxisAirline:
		categoryOf = func(r routedomain.Route) string { return r.Airline }
	case domain.AxisDestination:
		categoryOf = func(r routedomain.Route) string { return r.Destination }
	default:
		return Groups{}, fmt.Errorf("%w: unknown axis %q", domain.ErrInvalidRequest, axis)
	}

	g := Groups{Records: make(map[string][]routedomain.Route)}
	for _, r := range records {
		name := categoryOf(r)
		if _, ok := g.Records[name]; !ok {
			g.Names = append(g.Names, name)
		}
		g.Records[name] = append(g.Records[name], r)
	}
	slices.Sort(g.Names)
	return g, nil
}
