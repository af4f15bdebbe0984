package decomposition

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// planarData returns 3-D points lying exactly on the plane z = x + y, so a
// 2-component PCA loses nothing.
func planarData(n int, seed int64) [][]float64 {
	rng := rand.New(rand.NewSource(seed))
	data := make([][]float64, n)
	for i := range data {
		x := rng.NormFloat64()
		y := 2 * rng.NormFloat64()
		data[i] = []float64{x, y, x + y}
	}
	return data
}

func TestFitTransformShape(t *testing.T) {
	p := NewPCA(2)
	latent, err := p.FitTransform(planarData(40, 1))
	require.NoError(t, err)

	require.Len(t, latent, 40)
	for _, row := range latent {
		assert.Len(t, row, 2)
	}
}

func TestRoundTripOnLowRankData(t *testing.T) {
	X := planarData(60, 2)

	p := NewPCA(2)
	latent, err := p.FitTransform(X)
	require.NoError(t, err)

	back, err := p.InverseTransform(latent)
	require.NoError(t, err)
	require.Len(t, back, len(X))
	for i := range X {
		for j := range X[i] {
			assert.InDelta(t, X[i][j], back[i][j], 1e-8)
		}
	}
}

func TestFitTransformErrors(t *testing.T) {
	tests := []struct {
		name       string
		components int
		data       [][]float64
	}{
		{name: "empty matrix", components: 2, data: [][]float64{}},
		{name: "zero components", components: 0, data: planarData(10, 3)},
		{name: "more components than features", components: 4, data: planarData(10, 3)},
		{name: "more components than samples", components: 2, data: [][]float64{{1, 2, 3}}},
		{name: "ragged matrix", components: 1, data: [][]float64{{1, 2}, {3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPCA(tt.components).FitTransform(tt.data)
			assert.Error(t, err)
		})
	}
}

func TestInverseTransformErrors(t *testing.T) {
	p := NewPCA(2)

	_, err := p.InverseTransform([][]float64{{1, 2}})
	assert.Error(t, err, "inverse before fit")

	_, err = p.FitTransform(planarData(20, 4))
	require.NoError(t, err)
	_, err = p.InverseTransform([][]float64{{1, 2, 3}})
	assert.Error(t, err, "latent width mismatch")
}

func TestInverseTransformEmpty(t *testing.T) {
	p := NewPCA(2)
	_, err := p.FitTransform(planarData(20, 5))
	require.NoError(t, err)

	out, err := p.InverseTransform([][]float64{})
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestPCAImplementsInverseTransformer(t *testing.T) {
	var _ InverseTransformer = NewPCA(2)
}
