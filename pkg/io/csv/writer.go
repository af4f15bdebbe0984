package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// Writer writes a numeric dataset to a CSV file, optionally with a header
// row and a trailing label column.
type Writer struct {
	file    *os.File
	writer  *csv.Writer
	headers []string
}

// WriterOption configures a CSV writer.
type WriterOption func(*Writer)

// WithHeaders writes the given header row before any data.
func WithHeaders(headers []string) WriterOption {
	return func(w *Writer) { w.headers = headers }
}

// NewWriter creates a CSV dataset file, truncating any existing one.
func NewWriter(filename string, opts ...WriterOption) (*Writer, error) {
	file, err := os.Create(filename)
	if err != nil {
		return nil, err
	}
	w := &Writer{
		file:   file,
		writer: csv.NewWriter(file),
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.headers != nil {
		if err := w.writer.Write(w.headers); err != nil {
			file.Close()
			return nil, err
		}
	}
	return w, nil
}

// Write appends the feature rows. When y is non-nil it must match X row for
// row and is written as the last column.
func (w *Writer) Write(X [][]float64, y []string) error {
	if y != nil && len(y) != len(X) {
		return fmt.Errorf("have %d labels for %d rows", len(y), len(X))
	}
	for i, row := range X {
		record := make([]string, 0, len(row)+1)
		for _, v := range row {
			record = append(record, strconv.FormatFloat(v, 'g', -1, 64))
		}
		if y != nil {
			record = append(record, y[i])
		}
		if err := w.writer.Write(record); err != nil {
			return err
		}
	}
	return nil
}

// Close flushes buffered rows and closes the file.
func (w *Writer) Close() error {
	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.file.Close()
		return err
	}
	return w.file.Close()
}
