// Package randutil provides the deterministic sampling primitives shared by
// the outlier generators: random sign vectors and uniform points on the
// surface of an n-sphere.
//
// All primitives draw from a caller-supplied *rand.Rand so that a fixed seed
// reproduces the exact same outliers across runs.
package randutil

import (
	"math"
	"math/rand"
)

// NewRand returns a random source seeded at the given value.
// Generators default to seed 0; callers wanting independent streams should
// construct their own source and share it explicitly.
func NewRand(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Sign returns -1.0 or +1.0 with equal probability.
func Sign(rng *rand.Rand) float64 {
	if rng.Intn(2) == 0 {
		return -1.0
	}
	return 1.0
}

// SignVector returns n independent random signs.
func SignVector(rng *rand.Rand, n int) []float64 {
	signs := make([]float64, n)
	for i := range signs {
		signs[i] = Sign(rng)
	}
	return signs
}

// SpherePoint returns a point drawn uniformly at random from the surface of
// the (n-1)-sphere with the given radius, centered at the origin. The
// direction is obtained by normalizing a vector of independent standard
// Gaussians, which is uniform over directions.
func SpherePoint(rng *rand.Rand, n int, radius float64) []float64 {
	point := make([]float64, n)
	var norm float64
	for i := range point {
		point[i] = rng.NormFloat64()
		norm += point[i] * point[i]
	}
	if norm == 0 {
		// All coordinates drew exactly zero. Pick an axis instead of
		// dividing by zero.
		point[0] = radius
		return point
	}
	scale := radius / math.Sqrt(norm)
	for i := range point {
		point[i] *= scale
	}
	return point
}
