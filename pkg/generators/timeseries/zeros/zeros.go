// Package zeros implements the simplest time-series outlier: randomly
// chosen observations zeroed out in place.
package zeros

import (
	"fmt"
	"math/rand"

	"github.com/hed1ad/badgers/pkg/generators"
	"github.com/hed1ad/badgers/pkg/randutil"
)

// Generator zeroes out rows of a time series at distinct random indices.
// The input matrix is mutated directly; copy it first if the clean data is
// still needed.
type Generator struct {
	rng       *rand.Rand
	nOutliers int
	indices   []int
}

// Option configures a Generator.
type Option func(*Generator)

// WithRNG shares a caller-owned random source.
func WithRNG(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// WithSeed replaces the random source with one seeded at the given value.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.rng = randutil.NewRand(seed) }
}

// WithOutliers sets the number of rows to zero out.
func WithOutliers(n int) Option {
	return func(g *Generator) { g.nOutliers = n }
}

// New creates a Generator. Defaults: seed 0, 10 outliers.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		rng:       randutil.NewRand(generators.DefaultSeed),
		nOutliers: 10,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.nOutliers < 0 {
		return nil, fmt.Errorf("number of outliers must be >= 0, got %d", g.nOutliers)
	}
	return g, nil
}

// Generate picks nOutliers distinct row indices uniformly at random, sets
// those rows to all zeros in place, and records the indices for
// OutlierIndices. X and y are returned as passed in.
func (g *Generator) Generate(X [][]float64, y []string) ([][]float64, []string, error) {
	if err := generators.CheckTimeSeries(X); err != nil {
		return nil, nil, err
	}
	if g.nOutliers > len(X) {
		return nil, nil, fmt.Errorf("cannot pick %d distinct rows from %d samples", g.nOutliers, len(X))
	}

	g.indices = g.rng.Perm(len(X))[:g.nOutliers]
	for _, idx := range g.indices {
		for j := range X[idx] {
			X[idx][j] = 0
		}
	}
	return X, y, nil
}

// OutlierIndices reports the rows zeroed by the most recent Generate call.
func (g *Generator) OutlierIndices() []int { return g.indices }
