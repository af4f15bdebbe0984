// Package timeseries enumerates the closed set of time-series outlier
// strategies so they can be constructed by name, both in tests and from the
// CLI.
package timeseries

import (
	"fmt"
	"sort"

	"github.com/hed1ad/badgers/pkg/generators"
	"github.com/hed1ad/badgers/pkg/generators/timeseries/localzscore"
	"github.com/hed1ad/badgers/pkg/generators/timeseries/zeros"
)

// Factory builds a time-series strategy with the given seed and outlier
// count; every other knob keeps its strategy default.
type Factory func(seed int64, nOutliers int) (generators.TimeSeriesGenerator, error)

// Strategies returns the time-series strategies keyed by canonical name.
func Strategies() map[string]Factory {
	return map[string]Factory{
		"zeros": func(seed int64, nOutliers int) (generators.TimeSeriesGenerator, error) {
			return zeros.New(zeros.WithSeed(seed), zeros.WithOutliers(nOutliers))
		},
		"local-zscore": func(seed int64, nOutliers int) (generators.TimeSeriesGenerator, error) {
			return localzscore.New(localzscore.WithSeed(seed), localzscore.WithOutliers(nOutliers))
		},
	}
}

// New builds the named strategy, failing with the list of known names when
// it does not exist.
func New(name string, seed int64, nOutliers int) (generators.TimeSeriesGenerator, error) {
	factory, ok := Strategies()[name]
	if !ok {
		return nil, fmt.Errorf("unknown time-series strategy %q, want one of %v", name, Names())
	}
	return factory(seed, nOutliers)
}

// Names returns the canonical strategy names in sorted order.
func Names() []string {
	strategies := Strategies()
	names := make([]string, 0, len(strategies))
	for name := range strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
