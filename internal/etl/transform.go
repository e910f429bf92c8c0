package etl

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"go.uber.org/zap"
)

// ── Transformer ────────────────────────────────────────────
// Transformers rebuild rows between extraction and writing.
// Each takes a row and returns a new row of the same width.

// Column names rewritten by ProcessTable.
const (
	JobTitleColumn     = "job_title"
	BaseJobTitleColumn = "base_job_title"
)

// Transformer processes a single row.
type Transformer interface {
	Transform(row []any) []any
}

// TitleCaseTransform applies CorrectCase to the string cells at Columns.
// Non-string cells, including nil, pass through unchanged.
type TitleCaseTransform struct {
	Columns []int
}

func (t *TitleCaseTransform) Transform(row []any) []any {
	out := make([]any, len(row))
	copy(out, row)
	for _, idx := range t.Columns {
		if idx < 0 || idx >= len(out) {
			continue
		}
		if s, ok := out[idx].(string); ok {
			out[idx] = CorrectCase(s)
		}
	}
	return out
}

// CorrectCase capitalizes the first letter of each whitespace-separated word
// and lowercases the rest. One-letter words are left alone. Words are joined
// by a single space.
func CorrectCase(title string) string {
	words := strings.Fields(title)
	for i, w := range words {
		if utf8.RuneCountInString(w) > 1 {
			r, size := utf8.DecodeRuneInString(w)
			words[i] = string(unicode.ToUpper(r)) + strings.ToLower(w[size:])
		}
	}
	return strings.Join(words, " ")
}

// ApplyTransformers runs a chain of transformers on a row.
func ApplyTransformers(row []any, ts []Transformer) []any {
	for _, t := range ts {
		row = t.Transform(row)
	}
	return row
}

// ProcessTable title-cases the job_title and base_job_title columns of every
// row and returns a new table. The header is logged to diag first. The header goes through the same transform as
// the data rows, so those two header names come out as "Job_title" and
// "Base_job_title".
func ProcessTable(t *Table, diag *zap.Logger) (*Table, error) {
	if diag == nil {
		diag = zap.NewNop()
	}
	diag.Info("Processing table", zap.Strings("header", t.Header))

	titleIdx, err := t.ColumnIndex(JobTitleColumn)
	if err != nil {
		return nil, err
	}
	baseIdx, err := t.ColumnIndex(BaseJobTitleColumn)
	if err != nil {
		return nil, err
	}
	ts := []Transformer{&TitleCaseTransform{Columns: []int{titleIdx, baseIdx}}}

	records := t.Records()
	header := ApplyTransformers(records[0], ts)
	out := &Table{
		Header: make([]string, len(header)),
		Rows:   make([][]any, 0, len(t.Rows)),
	}
	for i, h := range header {
		out.Header[i], _ = h.(string)
	}
	for _, row := range records[1:] {
		out.Rows = append(out.Rows, ApplyTransformers(row, ts))
	}
	return out, nil
}
