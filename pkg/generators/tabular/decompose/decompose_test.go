package decompose

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hed1ad/badgers/pkg/decomposition"
	"github.com/hed1ad/badgers/pkg/generators"
	"github.com/hed1ad/badgers/pkg/generators/tabular/zscore"
)

// forwardOnly projects but cannot invert; construction must reject it.
type forwardOnly struct{}

func (forwardOnly) FitTransform(X [][]float64) ([][]float64, error) { return X, nil }

func highDimData(n, d int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	data := make([][]float64, n)
	for i := range data {
		// two latent factors spread across all features
		a, b := rng.NormFloat64(), rng.NormFloat64()
		row := make([]float64, d)
		for j := range row {
			row[j] = float64(j+1)*a - float64(d-j)*b + 0.01*rng.NormFloat64()
		}
		data[i] = row
	}
	return data
}

func newDelegate(t *testing.T, seed int64, percentage int) generators.TabularGenerator {
	t.Helper()
	delegate, err := zscore.New(zscore.WithSeed(seed), zscore.WithPercentage(percentage))
	require.NoError(t, err)
	return delegate
}

func TestNew(t *testing.T) {
	delegate := newDelegate(t, 0, 10)

	_, err := New(decomposition.NewPCA(2), delegate)
	assert.NoError(t, err)

	_, err = New(forwardOnly{}, delegate)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "InverseTransform")

	_, err = New(nil, delegate)
	assert.Error(t, err)
	_, err = New(decomposition.NewPCA(2), nil)
	assert.Error(t, err)
}

func TestGenerate(t *testing.T) {
	X := highDimData(100, 8, 1)
	g, err := New(decomposition.NewPCA(2), newDelegate(t, 42, 10))
	require.NoError(t, err)

	points, labels, err := g.Generate(X, nil)
	require.NoError(t, err)

	// outliers come back in the original 8-dimensional feature space
	require.Len(t, points, 10)
	require.Len(t, labels, 10)
	for _, row := range points {
		assert.Len(t, row, 8)
	}
	for _, label := range labels {
		assert.Equal(t, generators.OutlierLabel, label)
	}
}

func TestGenerateShapeError(t *testing.T) {
	g, err := New(decomposition.NewPCA(2), newDelegate(t, 0, 10))
	require.NoError(t, err)

	_, _, err = g.Generate(nil, nil)
	assert.Error(t, err)
}

func TestDeterminism(t *testing.T) {
	X := highDimData(60, 6, 2)

	a, err := New(decomposition.NewPCA(2), newDelegate(t, 7, 10))
	require.NoError(t, err)
	b, err := New(decomposition.NewPCA(2), newDelegate(t, 7, 10))
	require.NoError(t, err)

	pa, _, err := a.Generate(X, nil)
	require.NoError(t, err)
	pb, _, err := b.Generate(X, nil)
	require.NoError(t, err)
	assert.Equal(t, pa, pb)
}
