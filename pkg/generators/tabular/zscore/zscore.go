// Package zscore generates tabular outliers whose standardized magnitude
// exceeds three standard deviations along every dimension.
package zscore

import (
	"math/rand"

	"github.com/hed1ad/badgers/pkg/generators"
	"github.com/hed1ad/badgers/pkg/preprocessing"
	"github.com/hed1ad/badgers/pkg/randutil"
)

// Generator samples outliers axis by axis: in standardized space every
// coordinate of a generated point is sign * (3 + Exponential(1)), so the
// point is at least 3 sigma out along each dimension.
type Generator struct {
	rng        *rand.Rand
	percentage int
}

// Option configures a Generator.
type Option func(*Generator)

// WithRNG shares a caller-owned random source. Sharing one source across
// strategies correlates their streams; do it only on purpose.
func WithRNG(rng *rand.Rand) Option {
	return func(g *Generator) { g.rng = rng }
}

// WithSeed replaces the random source with one seeded at the given value.
func WithSeed(seed int64) Option {
	return func(g *Generator) { g.rng = randutil.NewRand(seed) }
}

// WithPercentage sets the percentage of outliers to generate, in [0, 100].
func WithPercentage(p int) Option {
	return func(g *Generator) { g.percentage = p }
}

// New creates a Generator. Defaults: seed 0, 10 percent outliers.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		rng:        randutil.NewRand(generators.DefaultSeed),
		percentage: 10,
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := generators.ValidatePercentage(g.percentage); err != nil {
		return nil, err
	}
	return g, nil
}

// Generate synthesizes floor(len(X) * percentage / 100) outliers:
//
//  1. standardize X to zero mean and unit variance
//  2. per point and per dimension, draw a random sign and a magnitude of
//     3 + Exponential(1)
//  3. invert the standardization
//
// The returned labels are all "outliers".
func (g *Generator) Generate(X [][]float64, y []string) ([][]float64, []string, error) {
	if err := generators.CheckMatrix(X); err != nil {
		return nil, nil, err
	}
	scaler := preprocessing.NewStandardScaler()
	Xt, err := scaler.FitTransform(X)
	if err != nil {
		return nil, nil, err
	}

	n := generators.NumOutliers(len(Xt), g.percentage)
	d := len(Xt[0])
	points := make([][]float64, n)
	for i := range points {
		row := randutil.SignVector(g.rng, d)
		for j := range row {
			row[j] *= 3 + g.rng.ExpFloat64()
		}
		points[i] = row
	}

	out, err := scaler.InverseTransform(points)
	if err != nil {
		return nil, nil, err
	}
	return out, generators.Labels(n), nil
}
