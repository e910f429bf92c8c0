package etl

import (
	"errors"
	"fmt"
)

// ── Table ──────────────────────────────────────────────────
// Common in-memory data format.
// The extractor produces a Table, the transformer rebuilds it,
// and the writer consumes it.

// ErrColumnNotFound is returned when a named column is absent from the header.
var ErrColumnNotFound = errors.New("column not found")

// Table is a header plus positionally aligned data rows.
type Table struct {
	Header []string `json:"header"`
	Rows   [][]any  `json:"rows"`
}

// ColumnIndex returns the position of name in the header.
func (t *Table) ColumnIndex(name string) (int, error) {
	for i, h := range t.Header {
		if h == name {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %q", ErrColumnNotFound, name)
}

// Records returns the header followed by every data row, the header
// being row 0.
func (t *Table) Records() [][]any {
	out := make([][]any, 0, len(t.Rows)+1)
	header := make([]any, len(t.Header))
	for i, h := range t.Header {
		header[i] = h
	}
	out = append(out, header)
	return append(out, t.Rows...)
}

// Validate checks that every row is as wide as the header.
func (t *Table) Validate() error {
	for i, row := range t.Rows {
		if len(row) != len(t.Header) {
			return fmt.Errorf("row %d has %d cells, header has %d", i+1, len(row), len(t.Header))
		}
	}
	return nil
}
