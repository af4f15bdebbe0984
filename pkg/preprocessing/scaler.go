// Package preprocessing provides the standardization step every tabular
// outlier strategy runs before and after sampling.
package preprocessing

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/stat"
)

// StandardScaler transforms each feature to zero mean and unit variance and
// supports the inverse transformation. State is fit fresh from the data on
// every call to Fit; nothing is persisted across datasets.
type StandardScaler struct {
	// Mean and Std hold the per-feature statistics from the last Fit.
	Mean []float64
	Std  []float64

	fitted bool
}

// NewStandardScaler returns an unfitted scaler.
func NewStandardScaler() *StandardScaler {
	return &StandardScaler{}
}

// Fit computes the per-feature mean and population standard deviation.
// Zero-variance features get a standard deviation of 1 so that Transform and
// InverseTransform stay total.
func (s *StandardScaler) Fit(X [][]float64) error {
	if len(X) == 0 || len(X[0]) == 0 {
		return errors.New("cannot fit scaler on an empty matrix")
	}
	cols := len(X[0])
	s.Mean = make([]float64, cols)
	s.Std = make([]float64, cols)

	col := make([]float64, len(X))
	for j := 0; j < cols; j++ {
		for i, row := range X {
			if len(row) != cols {
				return fmt.Errorf("row %d has %d values, want %d", i, len(row), cols)
			}
			col[i] = row[j]
		}
		s.Mean[j] = stat.Mean(col, nil)
		s.Std[j] = stat.PopStdDev(col, nil)
		if s.Std[j] == 0 {
			s.Std[j] = 1
		}
	}
	s.fitted = true
	return nil
}

// Transform maps X into standardized space.
func (s *StandardScaler) Transform(X [][]float64) ([][]float64, error) {
	if !s.fitted {
		return nil, errors.New("scaler is not fitted")
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(s.Mean) {
			return nil, fmt.Errorf("row %d has %d values, scaler was fit on %d features", i, len(row), len(s.Mean))
		}
		t := make([]float64, len(row))
		for j, v := range row {
			t[j] = (v - s.Mean[j]) / s.Std[j]
		}
		out[i] = t
	}
	return out, nil
}

// FitTransform fits the scaler on X and returns the standardized matrix.
func (s *StandardScaler) FitTransform(X [][]float64) ([][]float64, error) {
	if err := s.Fit(X); err != nil {
		return nil, err
	}
	return s.Transform(X)
}

// InverseTransform maps standardized points back to the original feature
// space. An empty input yields an empty output.
func (s *StandardScaler) InverseTransform(X [][]float64) ([][]float64, error) {
	if !s.fitted {
		return nil, errors.New("scaler is not fitted")
	}
	out := make([][]float64, len(X))
	for i, row := range X {
		if len(row) != len(s.Mean) {
			return nil, fmt.Errorf("row %d has %d values, scaler was fit on %d features", i, len(row), len(s.Mean))
		}
		t := make([]float64, len(row))
		for j, v := range row {
			t[j] = v*s.Std[j] + s.Mean[j]
		}
		out[i] = t
	}
	return out, nil
}
