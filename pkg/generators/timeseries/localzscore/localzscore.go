// Package localzscore implements time-series outliers that are extreme
// relative to a sliding window around each mutated index, modeling local
// anomalies in non-stationary series.
package localzscore

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/stat"

	"github.com/hed1ad/badgers/pkg/generators"
	"github.com/hed1ad/badgers/pkg/randutil"
)

// Generator overwrites rows at distinct random indices with values that sit
// at least three local standard deviations away from the local window mean.
// The input matrix is mutated directly.
type Generator struct {
	rng        *rand.Rand
	nOutliers  int
	windowSize int
	indices    []int
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

// WithOutliers sets the number of rows to mutate.
func WithOutliers(n int) Option {
	return func(g *Generator) { g.nOutliers = n }
}

// WithWindowSize sets the width of the local window, in rows.
func WithWindowSize(w int) Option {
	return func(g *Generator) { g.windowSize = w }
}

// New creates a Generator. Defaults: seed 0, 10 outliers, window of 10
// rows.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		rng:        randutil.NewRand(generators.DefaultSeed),
		nOutliers:  10,
		windowSize: 10,
	}
	for _, opt := range opts {
		opt(g)
	}
	if g.nOutliers < 0 {
		return nil, fmt.Errorf("number of outliers must be >= 0, got %d", g.nOutliers)
	}
	if g.windowSize < 1 {
		return nil, fmt.Errorf("local window size must be >= 1, got %d", g.windowSize)
	}
	return g, nil
}

// Generate picks nOutliers distinct row indices uniformly at random and
// overwrites each row i, per feature, with
//
//	mean(window) + sign * (3*std(window) + Exponential(1))
//
// where the window is X[i-w/2 : i+w/2] clamped to the array bounds (w/2 is
// the integer-truncated half width). Near the boundaries the clamped window
// is simply shorter; for w < 2 it degenerates to the row itself. The chosen
// indices are recorded for OutlierIndices. X and y are returned as passed
// in.
func (g *Generator) Generate(X [][]float64, y []string) ([][]float64, []string, error) {
	if err := generators.CheckTimeSeries(X); err != nil {
		return nil, nil, err
	}
	if g.nOutliers > len(X) {
		return nil, nil, fmt.Errorf("cannot pick %d distinct rows from %d samples", g.nOutliers, len(X))
	}

	d := len(X[0])
	half := g.windowSize / 2
	g.indices = g.rng.Perm(len(X))[:g.nOutliers]
	for _, idx := range g.indices {
		lo, hi := idx-half, idx+half
		if lo < 0 {
			lo = 0
		}
		if hi > len(X) {
			hi = len(X)
		}
		if lo >= hi {
			lo, hi = idx, idx+1
		}

		means, stds := windowStats(X[lo:hi], d)
		signs := randutil.SignVector(g.rng, d)
		for j := 0; j < d; j++ {
			X[idx][j] = means[j] + signs[j]*(3*stds[j]+g.rng.ExpFloat64())
		}
	}
	return X, y, nil
}

// OutlierIndices reports the rows mutated by the most recent Generate call.
func (g *Generator) OutlierIndices() []int { return g.indices }

// windowStats returns the per-feature mean and population standard
// deviation of the window rows.
func windowStats(window [][]float64, d int) (means, stds []float64) {
	means = make([]float64, d)
	stds = make([]float64, d)
	col := make([]float64, len(window))
	for j := 0; j < d; j++ {
		for i, row := range window {
			col[i] = row[j]
		}
		means[j] = stat.Mean(col, nil)
		stds[j] = stat.PopStdDev(col, nil)
	}
	return means, stds
}
