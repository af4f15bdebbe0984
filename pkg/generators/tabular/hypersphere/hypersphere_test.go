package hypersphere

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hed1ad/badgers/pkg/generators"
	"github.com/hed1ad/badgers/pkg/preprocessing"
)

func testData(n, d int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	data := make([][]float64, n)
	for i := range data {
		row := make([]float64, d)
		for j := range row {
			row[j] = -3 + 0.5*rng.NormFloat64()
		}
		data[i] = row
	}
	return data
}

func TestNew(t *testing.T) {
	_, err := New()
	assert.NoError(t, err)
	_, err = New(WithPercentage(100))
	assert.NoError(t, err)
	_, err = New(WithPercentage(-5))
	assert.Error(t, err)
	_, err = New(WithPercentage(200))
	assert.Error(t, err)
}

// Generated points sit on a shell of radius >= 3 in standardized space.
func TestGenerateRadius(t *testing.T) {
	X := testData(100, 3, 1)
	g, err := New(WithSeed(42), WithPercentage(10))
	require.NoError(t, err)

	points, labels, err := g.Generate(X, nil)
	require.NoError(t, err)
	require.Len(t, points, 10)
	require.Len(t, labels, 10)
	for _, label := range labels {
		assert.Equal(t, generators.OutlierLabel, label)
	}

	scaler := preprocessing.NewStandardScaler()
	require.NoError(t, scaler.Fit(X))
	standardized, err := scaler.Transform(points)
	require.NoError(t, err)
	for _, row := range standardized {
		require.Len(t, row, 3)
		var norm float64
		for _, v := range row {
			norm += v * v
		}
		assert.GreaterOrEqual(t, math.Sqrt(norm), 3.0-1e-9)
	}
}

func TestGenerateSingleOutlier(t *testing.T) {
	X := testData(10, 2, 2)
	g, err := New(WithSeed(0), WithPercentage(10))
	require.NoError(t, err)

	points, labels, err := g.Generate(X, nil)
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.Len(t, points[0], 2)
	assert.Len(t, labels, 1)
}

func TestGenerateShapeError(t *testing.T) {
	g, err := New()
	require.NoError(t, err)

	_, _, err = g.Generate([][]float64{}, nil)
	assert.Error(t, err)
}

func TestDeterminism(t *testing.T) {
	X := testData(60, 4, 3)

	a, err := New(WithSeed(7), WithPercentage(15))
	require.NoError(t, err)
	b, err := New(WithSeed(7), WithPercentage(15))
	require.NoError(t, err)

	pa, _, err := a.Generate(X, nil)
	require.NoError(t, err)
	pb, _, err := b.Generate(X, nil)
	require.NoError(t, err)
	assert.Equal(t, pa, pb)
}
