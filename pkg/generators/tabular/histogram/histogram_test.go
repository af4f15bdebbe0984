package histogram

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hed1ad/badgers/pkg/generators"
)

// gappedData puts most points in one tight cluster and a few far away, so
// the histogram has plenty of empty low-density bins between them.
func gappedData(n, d int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	data := make([][]float64, n)
	for i := range data {
		row := make([]float64, d)
		for j := range row {
			row[j] = 0.1 * rng.NormFloat64()
		}
		if i < 2 {
			for j := range row {
				row[j] += 20
			}
		}
		data[i] = row
	}
	return data
}

func TestNew(t *testing.T) {
	tests := []struct {
		name    string
		opts    []Option
		wantErr bool
	}{
		{name: "defaults", opts: nil},
		{name: "custom bins and threshold", opts: []Option{WithBins(20), WithThreshold(0.05)}},
		{name: "threshold at zero", opts: []Option{WithThreshold(0)}, wantErr: true},
		{name: "threshold at one", opts: []Option{WithThreshold(1)}, wantErr: true},
		{name: "zero bins", opts: []Option{WithBins(0)}, wantErr: true},
		{name: "bad percentage", opts: []Option{WithPercentage(150)}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts...)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestGenerate(t *testing.T) {
	X := gappedData(30, 2, 1)
	g, err := New(WithSeed(42), WithPercentage(10))
	require.NoError(t, err)

	points, labels, err := g.Generate(X, nil)
	require.NoError(t, err)

	require.Len(t, points, 3)
	require.Len(t, labels, 3)
	for _, row := range points {
		assert.Len(t, row, 2)
	}
	for _, label := range labels {
		assert.Equal(t, generators.OutlierLabel, label)
	}
}

func TestGenerateTooManyFeatures(t *testing.T) {
	X := gappedData(20, 6, 2)
	g, err := New()
	require.NoError(t, err)

	_, _, err = g.Generate(X, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "at most 5 features")
}

func TestGenerateFiveFeaturesSupported(t *testing.T) {
	X := gappedData(40, 5, 3)
	g, err := New(WithSeed(1), WithBins(4))
	require.NoError(t, err)

	points, _, err := g.Generate(X, nil)
	require.NoError(t, err)
	assert.Len(t, points, 4)
}

func TestGenerateNoLowDensityBins(t *testing.T) {
	// two equally filled bins, no empty cells: every normalized count is
	// far above the threshold
	X := [][]float64{
		{0}, {0}, {0}, {0}, {0},
		{1}, {1}, {1}, {1}, {1},
	}
	g, err := New(WithSeed(0), WithBins(2))
	require.NoError(t, err)

	_, _, err = g.Generate(X, nil)
	assert.ErrorIs(t, err, generators.ErrNoLowDensityBins)
}

func TestGenerateShapeError(t *testing.T) {
	g, err := New()
	require.NoError(t, err)

	_, _, err = g.Generate(nil, nil)
	assert.Error(t, err)
}

func TestDeterminism(t *testing.T) {
	X := gappedData(50, 3, 4)

	a, err := New(WithSeed(9), WithPercentage(20))
	require.NoError(t, err)
	b, err := New(WithSeed(9), WithPercentage(20))
	require.NoError(t, err)

	pa, _, err := a.Generate(X, nil)
	require.NoError(t, err)
	pb, _, err := b.Generate(X, nil)
	require.NoError(t, err)
	assert.Equal(t, pa, pb)
}
