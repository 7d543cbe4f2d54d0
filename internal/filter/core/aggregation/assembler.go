package aggregation

import (
	"errors"
	"fmt"

	"route-analytics-service/internal/filter/core/domain"
)

// ErrNotRectangular means a category row does not line up with the labels.
// It indicates a bug, not bad input.
var ErrNotRectangular = errors.New("aggregation result is not rectangular")

// Assembler builds the final matrix from ordered keys and category rows.
type Assembler struct {
	normalizer *Normalizer
}

func NewAssembler(n *Normalizer) *Assembler {
	return &Assembler{normalizer: n}
}

// Assemble labels the keys in key order, the same order Aggregator uses for
// row values.
func (a *Assembler) Assemble(keys []BucketKey, names []string, rows map[string][]float64) (domain.Result, error) {
	ordered := sortedKeys(keys)
	labels := make([]string, len(ordered))
	for i, k := range ordered {
		labels[i] = a.normalizer.Format(k)
	}

	data := make(map[string][]float64, len(names))
	for _, name := range names {
		row, ok := rows[name]
		if !ok || len(row) != len(labels) {
			return domain.Result{}, fmt.Errorf("%w: category %q has %d values for %d labels",
				ErrNotRectangular, name, len(row), len(labels))
		}
		data[name] = row
	}

	return domain.Result{
		Granularity: a.normalizer.granularity,
		Labels:      labels,
		Categories:  names,
		Data:        data,
	}, nil
}
