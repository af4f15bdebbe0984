// Package generators defines the contracts shared by every outlier
// generation strategy: the tabular and time-series interfaces, the outlier
// label, parameter validation, and the error taxonomy.
package generators

import (
	"errors"
	"fmt"
)

// OutlierLabel is the label attached to every synthesized tabular outlier.
const OutlierLabel = "outliers"

// DefaultSeed seeds strategies that were not given an explicit random
// source. Each strategy builds its own source from this seed; a default
// source is never shared between instances.
const DefaultSeed int64 = 0

// TabularGenerator synthesizes new anomalous rows for a tabular dataset.
type TabularGenerator interface {
	// Generate standardizes X, samples anomalous points under the
	// strategy's statistical model, and returns them in the original
	// feature space. The returned points have as many columns as X; the
	// returned labels all equal OutlierLabel and match the points row for
	// row. The input is never modified.
	Generate(X [][]float64, y []string) ([][]float64, []string, error)
}

// TimeSeriesGenerator mutates rows of an existing time-ordered matrix in
// place. Callers that need the clean data afterwards must copy it first.
type TimeSeriesGenerator interface {
	// Generate picks rows of X at random, overwrites them with anomalous
	// values, and returns X and y as passed in.
	Generate(X [][]float64, y []string) ([][]float64, []string, error)

	// OutlierIndices reports the row indices mutated by the most recent
	// Generate call. The slice is overwritten on each call.
	OutlierIndices() []int
}

// ErrNoLowDensityBins reports that histogram sampling found no bin at or
// below the configured density threshold, leaving nothing to sample from.
var ErrNoLowDensityBins = errors.New("no histogram bin is at or below the low-density threshold")

// ShortfallError reports that a sampling budget ran out before the requested
// number of outliers was reached. It is advisory: the accompanying result
// holds the Generated points and is valid to use.
type ShortfallError struct {
	Requested int
	Generated int
}

func (e *ShortfallError) Error() string {
	return fmt.Sprintf("generated %d of %d requested outliers before exhausting the sampling budget",
		e.Generated, e.Requested)
}

// ValidatePercentage checks an outlier percentage at construction time.
func ValidatePercentage(p int) error {
	if p < 0 || p > 100 {
		return fmt.Errorf("percentage of outliers must be in [0, 100], got %d", p)
	}
	return nil
}

// ValidateUnitInterval checks that a threshold parameter lies strictly
// between 0 and 1.
func ValidateUnitInterval(name string, v float64) error {
	if v <= 0 || v >= 1 {
		return fmt.Errorf("%s must be in (0, 1), got %g", name, v)
	}
	return nil
}

// CheckMatrix verifies that X is a non-empty rectangular matrix with rows as
// samples and columns as features.
func CheckMatrix(X [][]float64) error {
	if len(X) == 0 || len(X[0]) == 0 {
		return errors.New("expected a non-empty 2-D array with rows as samples and columns as features")
	}
	cols := len(X[0])
	for i, row := range X {
		if len(row) != cols {
			return fmt.Errorf("expected a rectangular 2-D array: row %d has %d values, want %d", i, len(row), cols)
		}
	}
	return nil
}

// CheckTimeSeries verifies the shape of a time-series matrix, with a
// corrective message for the common single-feature and single-sample cases.
func CheckTimeSeries(X [][]float64) error {
	if len(X) == 0 || len(X[0]) == 0 {
		return errors.New("expected a 2-D array: reshape single-feature series to (n, 1) and single-sample data to (1, n)")
	}
	return CheckMatrix(X)
}

// NumOutliers returns the number of outliers for a dataset of n samples at
// the given percentage, rounded down.
func NumOutliers(n, percentage int) int {
	return n * percentage / 100
}

// Labels returns n copies of OutlierLabel.
func Labels(n int) []string {
	labels := make([]string, n)
	for i := range labels {
		labels[i] = OutlierLabel
	}
	return labels
}
