// Package histogram generates tabular outliers from the low-density regions
// of a multi-dimensional histogram. Only datasets with at most 5 features
// are supported; the bin grid grows exponentially with dimensionality.
package histogram

import (
	"fmt"
	"math/rand"

	"github.com/hed1ad/badgers/pkg/generators"
	"github.com/hed1ad/badgers/pkg/preprocessing"
	"github.com/hed1ad/badgers/pkg/randutil"
)

// MaxFeatures is the largest feature count the histogram grid supports.
const MaxFeatures = 5

// Generator estimates density with an n-dimensional histogram over the
// standardized data, then samples points uniformly inside bins whose
// normalized count falls at or below a threshold.
type Generator struct {
	rng        *rand.Rand
	percentage int
	bins       int
	threshold  float64
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

// WithBins sets the number of histogram bins per dimension.
func WithBins(bins int) Option {
	return func(g *Generator) { g.bins = bins }
}

// WithThreshold sets the normalized-count threshold below which a bin counts
// as low density, in (0, 1).
func WithThreshold(t float64) Option {
	return func(g *Generator) { g.threshold = t }
}

// New creates a Generator. Defaults: seed 0, 10 percent outliers, 10 bins
// per dimension, threshold 0.1.
func New(opts ...Option) (*Generator, error) {
	g := &Generator{
		rng:        randutil.NewRand(generators.DefaultSeed),
		percentage: 10,
		bins:       10,
		threshold:  0.1,
	}
	for _, opt := range opts {
		opt(g)
	}
	if err := generators.ValidatePercentage(g.percentage); err != nil {
		return nil, err
	}
	if err := generators.ValidateUnitInterval("low-density threshold", g.threshold); err != nil {
		return nil, err
	}
	if g.bins < 1 {
		return nil, fmt.Errorf("number of bins must be >= 1, got %d", g.bins)
	}
	return g, nil
}

// Generate synthesizes floor(len(X) * percentage / 100) outliers:
//
//  1. standardize X and histogram it with bins^d cells
//  2. scale counts by 1 / (max - min) and keep the cells at or below the
//     threshold
//  3. pick cells with replacement, draw one uniform point inside each
//  4. invert the standardization
//
// It fails with an unsupported-input error for more than MaxFeatures
// columns, and with ErrNoLowDensityBins when every cell is above the
// threshold.
func (g *Generator) Generate(X [][]float64, y []string) ([][]float64, []string, error) {
	if err := generators.CheckMatrix(X); err != nil {
		return nil, nil, err
	}
	d := len(X[0])
	if d > MaxFeatures {
		return nil, nil, fmt.Errorf("histogram sampling supports at most %d features, got %d", MaxFeatures, d)
	}

	scaler := preprocessing.NewStandardScaler()
	Xt, err := scaler.FitTransform(X)
	if err != nil {
		return nil, nil, err
	}
	n := generators.NumOutliers(len(Xt), g.percentage)

	grid := buildGrid(Xt, g.bins)
	candidates := grid.lowDensityCells(g.threshold)
	if len(candidates) == 0 {
		return nil, nil, generators.ErrNoLowDensityBins
	}

	points := make([][]float64, n)
	for i := range points {
		cell := candidates[g.rng.Intn(len(candidates))]
		points[i] = grid.uniformInCell(g.rng, cell)
	}

	out, err := scaler.InverseTransform(points)
	if err != nil {
		return nil, nil, err
	}
	return out, generators.Labels(n), nil
}

// grid is an n-dimensional histogram over standardized data. Cells are
// addressed by a flat index in row-major order over the per-dimension bin
// coordinates.
type grid struct {
	bins   int
	mins   []float64
	widths []float64
	counts []int
}

func buildGrid(Xt [][]float64, bins int) *grid {
	d := len(Xt[0])
	g := &grid{
		bins:   bins,
		mins:   make([]float64, d),
		widths: make([]float64, d),
	}
	maxs := make([]float64, d)
	for j := 0; j < d; j++ {
		g.mins[j], maxs[j] = Xt[0][j], Xt[0][j]
		for _, row := range Xt[1:] {
			if row[j] < g.mins[j] {
				g.mins[j] = row[j]
			}
			if row[j] > maxs[j] {
				maxs[j] = row[j]
			}
		}
		span := maxs[j] - g.mins[j]
		if span == 0 {
			span = 1
		}
		g.widths[j] = span / float64(bins)
	}

	total := 1
	for i := 0; i < d; i++ {
		total *= bins
	}
	g.counts = make([]int, total)
	for _, row := range Xt {
		g.counts[g.flatIndex(row)]++
	}
	return g
}

func (g *grid) flatIndex(row []float64) int {
	idx := 0
	for j, v := range row {
		c := int((v - g.mins[j]) / g.widths[j])
		// the maximum value lands exactly on the upper edge of the
		// last bin
		if c >= g.bins {
			c = g.bins - 1
		}
		if c < 0 {
			c = 0
		}
		idx = idx*g.bins + c
	}
	return idx
}

// lowDensityCells returns the flat indices of every cell whose count,
// scaled by 1/(max-min) over all cells, is at or below the threshold.
func (g *grid) lowDensityCells(threshold float64) []int {
	minCount, maxCount := g.counts[0], g.counts[0]
	for _, c := range g.counts[1:] {
		if c < minCount {
			minCount = c
		}
		if c > maxCount {
			maxCount = c
		}
	}
	denom := float64(maxCount - minCount)
	if denom == 0 {
		denom = 1
	}

	var cells []int
	for i, c := range g.counts {
		if float64(c)/denom <= threshold {
			cells = append(cells, i)
		}
	}
	return cells
}

// uniformInCell draws a point uniformly inside the per-dimension edges of
// the cell with the given flat index.
func (g *grid) uniformInCell(rng *rand.Rand, cell int) []float64 {
	d := len(g.mins)
	coords := make([]int, d)
	for j := d - 1; j >= 0; j-- {
		coords[j] = cell % g.bins
		cell /= g.bins
	}
	point := make([]float64, d)
	for j, c := range coords {
		low := g.mins[j] + float64(c)*g.widths[j]
		point[j] = low + rng.Float64()*g.widths[j]
	}
	return point
}
