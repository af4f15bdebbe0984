// Package density provides the kernel density estimator backing low-density
// outlier sampling. No suitable estimator exists in the usual Go numeric
// libraries, so this is a direct Gaussian-product-kernel implementation with
// Scott's bandwidth rule.
package density

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/stat"
)

const logSqrt2Pi = 0.9189385332046727 // log(sqrt(2*pi))

// KDE is a Gaussian kernel density estimator with per-feature bandwidths
// chosen by Scott's rule: h_j = sigma_j * n^(-1/(d+4)).
type KDE struct {
	data      [][]float64
	bandwidth []float64
}

// NewKDE returns an unfitted estimator.
func NewKDE() *KDE {
	return &KDE{}
}

// Fit stores the reference data and computes the per-feature bandwidths.
// Features with zero spread get a bandwidth of 1 so scoring stays defined.
func (k *KDE) Fit(X [][]float64) error {
	if len(X) == 0 || len(X[0]) == 0 {
		return errors.New("cannot fit density estimator on an empty matrix")
	}
	n := len(X)
	d := len(X[0])
	factor := math.Pow(float64(n), -1.0/float64(d+4))

	k.bandwidth = make([]float64, d)
	col := make([]float64, n)
	for j := 0; j < d; j++ {
		for i, row := range X {
			if len(row) != d {
				return fmt.Errorf("row %d has %d values, want %d", i, len(row), d)
			}
			col[i] = row[j]
		}
		sigma := stat.PopStdDev(col, nil)
		if sigma == 0 {
			sigma = 1
		}
		k.bandwidth[j] = sigma * factor
	}
	k.data = X
	return nil
}

// Score returns the log density of a single point under the fitted model.
func (k *KDE) Score(x []float64) (float64, error) {
	if k.data == nil {
		return 0, errors.New("density estimator is not fitted")
	}
	if len(x) != len(k.bandwidth) {
		return 0, fmt.Errorf("point has %d values, estimator was fit on %d features", len(x), len(k.bandwidth))
	}

	// log( (1/n) * sum_i prod_j N(x_j; X_ij, h_j) ) via log-sum-exp.
	logTerms := make([]float64, len(k.data))
	for i, row := range k.data {
		var lp float64
		for j, v := range x {
			z := (v - row[j]) / k.bandwidth[j]
			lp += -0.5*z*z - math.Log(k.bandwidth[j]) - logSqrt2Pi
		}
		logTerms[i] = lp
	}
	return logSumExp(logTerms) - math.Log(float64(len(k.data))), nil
}

// ScoreSamples returns the log density of each row of X.
func (k *KDE) ScoreSamples(X [][]float64) ([]float64, error) {
	scores := make([]float64, len(X))
	for i, row := range X {
		s, err := k.Score(row)
		if err != nil {
			return nil, err
		}
		scores[i] = s
	}
	return scores, nil
}

func logSumExp(terms []float64) float64 {
	maxTerm := math.Inf(-1)
	for _, t := range terms {
		if t > maxTerm {
			maxTerm = t
		}
	}
	if math.IsInf(maxTerm, -1) {
		return maxTerm
	}
	var sum float64
	for _, t := range terms {
		sum += math.Exp(t - maxTerm)
	}
	return maxTerm + math.Log(sum)
}
