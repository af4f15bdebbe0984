// Package lowdensity generates tabular outliers by rejection sampling
// against a kernel density estimate: candidates drawn uniformly inside the
// bounding box of the standardized data are kept only when their estimated
// density falls at or below a low percentile of the real observations'.
package lowdensity

import (
	"math/rand"

	"github.com/montanaflynn/stats"

	"github.com/hed1ad/badgers/pkg/density"
	"github.com/hed1ad/badgers/pkg/generators"
	"github.com/hed1ad/badgers/pkg/preprocessing"
	"github.com/hed1ad/badgers/pkg/randutil"
)

// thresholdPercentile is the percentile of the training log-densities used
// as the acceptance threshold.
const thresholdPercentile = 0.1

// Generator samples outliers from the low-density support of the data. It
// is the one strategy that may return fewer points than requested: when the
// sampling budget runs out first, the partial result is returned together
// with a *generators.ShortfallError.
type Generator struct {
	rng        *rand.Rand
	percentage int
	maxSamples int
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

// WithPercentage sets the percentage of outliers to generate, in [0, 100].
func WithPercentage(p int) Option {
	return func(g *Generator) { g.percentage = p }
}

// WithMaxSamples caps the number of candidate draws. Zero, the default,
// means 100 times the requested outlier count.
func WithMaxSamples(n int) Option {
	return func(g *Generator) { g.maxSamples = n }
}

// New creates a Generator. Defaults: seed 0, 10 percent outliers, budget of
// 100 candidates per requested outlier.
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

// Generate synthesizes up to floor(len(X) * percentage / 100) outliers:
//
//  1. standardize X and fit a kernel density estimator on it
//  2. set the acceptance threshold to the 0.1th percentile of the training
//     rows' log densities
//  3. draw candidates uniformly inside the per-dimension [min, max] box of
//     the standardized data, keeping those scoring at or below the
//     threshold, until the target count or the budget is reached
//  4. invert the standardization
//
// When the budget runs out first, the accepted points are returned together
// with a *generators.ShortfallError; with zero accepted points the result is
// empty and no inverse transformation is attempted.
func (g *Generator) Generate(X [][]float64, y []string) ([][]float64, []string, error) {
	if err := generators.CheckMatrix(X); err != nil {
		return nil, nil, err
	}
	scaler := preprocessing.NewStandardScaler()
	Xt, err := scaler.FitTransform(X)
	if err != nil {
		return nil, nil, err
	}

	kde := density.NewKDE()
	if err := kde.Fit(Xt); err != nil {
		return nil, nil, err
	}
	scores, err := kde.ScoreSamples(Xt)
	if err != nil {
		return nil, nil, err
	}
	// nearest-rank keeps the 0.1th percentile defined for small datasets,
	// where it degrades to the minimum training score
	threshold, err := stats.PercentileNearestRank(stats.Float64Data(scores), thresholdPercentile)
	if err != nil {
		return nil, nil, err
	}

	d := len(Xt[0])
	mins := make([]float64, d)
	maxs := make([]float64, d)
	col := make([]float64, len(Xt))
	for j := 0; j < d; j++ {
		for i, row := range Xt {
			col[i] = row[j]
		}
		if mins[j], err = stats.Min(col); err != nil {
			return nil, nil, err
		}
		if maxs[j], err = stats.Max(col); err != nil {
			return nil, nil, err
		}
	}

	n := generators.NumOutliers(len(Xt), g.percentage)
	budget := g.maxSamples
	if budget == 0 {
		budget = n * 100
	}

	var accepted [][]float64
	for draw := 0; draw < budget && len(accepted) < n; draw++ {
		candidate := make([]float64, d)
		for j := range candidate {
			candidate[j] = mins[j] + g.rng.Float64()*(maxs[j]-mins[j])
		}
		score, err := kde.Score(candidate)
		if err != nil {
			return nil, nil, err
		}
		if score <= threshold {
			accepted = append(accepted, candidate)
		}
	}

	if len(accepted) == 0 {
		if n == 0 {
			return [][]float64{}, []string{}, nil
		}
		return [][]float64{}, []string{}, &generators.ShortfallError{Requested: n, Generated: 0}
	}

	out, err := scaler.InverseTransform(accepted)
	if err != nil {
		return nil, nil, err
	}
	labels := generators.Labels(len(out))
	if len(out) < n {
		return out, labels, &generators.ShortfallError{Requested: n, Generated: len(out)}
	}
	return out, labels, nil
}
