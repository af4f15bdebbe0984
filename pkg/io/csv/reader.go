// Package csv reads and writes tabular datasets as CSV files.
package csv

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// Reader reads a numeric dataset from a CSV file. With a label column
// configured, the last field of each row is kept as the label instead of
// being parsed as a feature.
type Reader struct {
	file        *os.File
	reader      *csv.Reader
	hasHeader   bool
	labelColumn bool
	headers     []string
}

// Option configures a CSV reader.
type Option func(*Reader)

// WithHeader indicates whether the CSV has a header row. Default: true.
func WithHeader(has bool) Option {
	return func(r *Reader) { r.hasHeader = has }
}

// WithLabelColumn treats the last column as a label rather than a feature.
func WithLabelColumn(has bool) Option {
	return func(r *Reader) { r.labelColumn = has }
}

// NewReader opens a CSV dataset.
func NewReader(filename string, opts ...Option) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}

	r := &Reader{
		file:      file,
		reader:    csv.NewReader(file),
		hasHeader: true,
	}
	for _, opt := range opts {
		opt(r)
	}

	if r.hasHeader {
		headers, err := r.reader.Read()
		if err != nil {
			file.Close()
			return nil, err
		}
		r.headers = headers
	}
	return r, nil
}

// Headers returns the column headers, including any label column.
func (r *Reader) Headers() []string {
	return r.headers
}

// Read returns the feature matrix and, when a label column is configured,
// the labels. Rows that fail to parse are an error: a corruption tool must
// not silently drop parts of the dataset it is corrupting.
func (r *Reader) Read() ([][]float64, []string, error) {
	var (
		data   [][]float64
		labels []string
	)
	line := 0
	for {
		record, err := r.reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, nil, err
		}
		line++

		features := record
		if r.labelColumn {
			if len(record) < 2 {
				return nil, nil, fmt.Errorf("row %d: need at least one feature besides the label column", line)
			}
			features = record[:len(record)-1]
			labels = append(labels, record[len(record)-1])
		}
		row, err := parseRow(features)
		if err != nil {
			return nil, nil, fmt.Errorf("row %d: %w", line, err)
		}
		data = append(data, row)
	}
	if !r.labelColumn {
		return data, nil, nil
	}
	return data, labels, nil
}

// Stream returns a channel of feature rows. A row that fails to parse ends
// the stream.
func (r *Reader) Stream(ctx context.Context) (<-chan []float64, error) {
	out := make(chan []float64, 100)

	go func() {
		defer close(out)
		for {
			record, err := r.reader.Read()
			if err != nil {
				return
			}
			if r.labelColumn && len(record) > 1 {
				record = record[:len(record)-1]
			}
			row, err := parseRow(record)
			if err != nil {
				return
			}
			select {
			case out <- row:
			case <-ctx.Done():
				return
			}
		}
	}()

	return out, nil
}

// Close releases resources.
func (r *Reader) Close() error {
	if r.file != nil {
		return r.file.Close()
	}
	return nil
}

// parseRow converts a CSV record to a feature vector.
func parseRow(record []string) ([]float64, error) {
	if len(record) == 0 {
		return nil, errors.New("empty row")
	}
	row := make([]float64, len(record))
	for i, val := range record {
		f, err := strconv.ParseFloat(val, 64)
		if err != nil {
			return nil, fmt.Errorf("column %d: %w", i+1, err)
		}
		row[i] = f
	}
	return row, nil
}
