// Package csvlog implements the append-only telemetry CSV log: the header is
// written exactly once at creation, every row must match the header's arity,
// and each append opens and closes the file so a power cut loses at most the
// row being written.
package csvlog

import (
	"encoding/csv"
	"fmt"
	"os"
)

// Writer appends fixed-width rows to a CSV file.
type Writer struct {
	path    string
	columns int
}

// Create truncates or creates the file at path and writes the header row.
func Create(path string, header []string) (*Writer, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("create csv log %s: %w", path, err)
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		f.Close()
		return nil, fmt.Errorf("write csv header: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		f.Close()
		return nil, fmt.Errorf("flush csv header: %w", err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("close csv log: %w", err)
	}
	return &Writer{path: path, columns: len(header)}, nil
}

// Path returns the log's file path.
func (w *Writer) Path() string { return w.path }

// Append writes one data row. The row must have the same arity as the
// header.
func (w *Writer) Append(row []string) error {
	if len(row) != w.columns {
		return fmt.Errorf("csv row has %d fields, want %d", len(row), w.columns)
	}

	f, err := os.OpenFile(w.path, os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open csv log for append: %w", err)
	}
	cw := csv.NewWriter(f)
	if err := cw.Write(row); err != nil {
		f.Close()
		return fmt.Errorf("write csv row: %w", err)
	}
	cw.Flush()
	if err := cw.Error(); err != nil {
		f.Close()
		return fmt.Errorf("flush csv row: %w", err)
	}
	return f.Close()
}
