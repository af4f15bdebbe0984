// Package io provides dataset input/output contracts for feeding the
// outlier generators and writing augmented datasets back out.
package io

import "context"

// Reader is the interface for loading a dataset from a source.
type Reader interface {
	// Read returns the feature matrix and, when the source carries one,
	// the label vector (nil otherwise).
	Read() ([][]float64, []string, error)

	// Stream returns a channel of feature rows for incremental
	// processing. Labels are not streamed.
	Stream(ctx context.Context) (<-chan []float64, error)

	// Close releases resources.
	Close() error
}

// Writer is the interface for writing a dataset, typically the original
// rows plus the synthesized outliers.
type Writer interface {
	// Write outputs the feature matrix. When y is non-nil it must match X
	// row for row and is written as a trailing label column.
	Write(X [][]float64, y []string) error

	// Close flushes and releases resources.
	Close() error
}
