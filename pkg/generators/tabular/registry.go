// Package tabular enumerates the closed set of tabular outlier strategies
// so they can be constructed by name, both in tests and from the CLI.
package tabular

import (
	"fmt"
	"sort"

	"github.com/hed1ad/badgers/pkg/decomposition"
	"github.com/hed1ad/badgers/pkg/generators"
	"github.com/hed1ad/badgers/pkg/generators/tabular/decompose"
	"github.com/hed1ad/badgers/pkg/generators/tabular/histogram"
	"github.com/hed1ad/badgers/pkg/generators/tabular/hypersphere"
	"github.com/hed1ad/badgers/pkg/generators/tabular/lowdensity"
	"github.com/hed1ad/badgers/pkg/generators/tabular/zscore"
)

// Factory builds a tabular strategy with the given seed and outlier
// percentage; every other knob keeps its strategy default.
type Factory func(seed int64, percentage int) (generators.TabularGenerator, error)

// Strategies returns the tabular strategies keyed by canonical name. The
// "pca-zscore" entry composes a 2-component PCA with z-score sampling in the
// latent space.
func Strategies() map[string]Factory {
	return map[string]Factory{
		"zscore": func(seed int64, percentage int) (generators.TabularGenerator, error) {
			return zscore.New(zscore.WithSeed(seed), zscore.WithPercentage(percentage))
		},
		"hypersphere": func(seed int64, percentage int) (generators.TabularGenerator, error) {
			return hypersphere.New(hypersphere.WithSeed(seed), hypersphere.WithPercentage(percentage))
		},
		"histogram": func(seed int64, percentage int) (generators.TabularGenerator, error) {
			return histogram.New(histogram.WithSeed(seed), histogram.WithPercentage(percentage))
		},
		"lowdensity": func(seed int64, percentage int) (generators.TabularGenerator, error) {
			return lowdensity.New(lowdensity.WithSeed(seed), lowdensity.WithPercentage(percentage))
		},
		"pca-zscore": func(seed int64, percentage int) (generators.TabularGenerator, error) {
			delegate, err := zscore.New(zscore.WithSeed(seed), zscore.WithPercentage(percentage))
			if err != nil {
				return nil, err
			}
			return decompose.New(decomposition.NewPCA(2), delegate)
		},
	}
}

// New builds the named strategy, failing with the list of known names when
// it does not exist.
func New(name string, seed int64, percentage int) (generators.TabularGenerator, error) {
	strategies := Strategies()
	factory, ok := strategies[name]
	if !ok {
		return nil, fmt.Errorf("unknown tabular strategy %q, want one of %v", name, Names())
	}
	return factory(seed, percentage)
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
