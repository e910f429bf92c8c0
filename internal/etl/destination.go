package etl

import (
	"encoding/csv"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"
)

// ── Destination ────────────────────────────────────────────
// A Destination writes a finished table into a target.
// The only destination is a CSV file.

// Destination writes a table and reports how many data rows it wrote.
type Destination interface {
	Write(t *Table) (int, error)
}

// CSVWriter implements Destination for a CSV file at Path.
// An existing file is truncated in place.
type CSVWriter struct {
	Path string
}

func (w *CSVWriter) Write(t *Table) (n int, err error) {
	f, err := os.Create(w.Path)
	if err != nil {
		return 0, fmt.Errorf("create output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close output: %w", cerr)
		}
	}()

	cw := csv.NewWriter(f)
	cw.UseCRLF = runtime.GOOS == "windows"

	if err := cw.Write(t.Header); err != nil {
		return 0, fmt.Errorf("write header: %w", err)
	}
	record := make([]string, len(t.Header))
	for i, row := range t.Rows {
		if len(row) != len(t.Header) {
			return n, fmt.Errorf("row %d has %d cells, header has %d", i+1, len(row), len(t.Header))
		}
		for j, v := range row {
			record[j] = FormatCell(v)
		}
		if err := cw.Write(record); err != nil {
			return n, fmt.Errorf("write row %d: %w", i+1, err)
		}
		n++
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return n, fmt.Errorf("flush: %w", err)
	}
	return n, nil
}

// FormatCell renders a cell value as CSV text.
func FormatCell(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case bool:
		if val {
			return "True"
		}
		return "False"
	case time.Time:
		return formatTime(val)
	case int64:
		return strconv.FormatInt(val, 10)
	case int:
		return strconv.Itoa(val)
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(val), 'f', -1, 32)
	case []byte:
		return string(val)
	default:
		return fmt.Sprint(val)
	}
}

// formatTime writes a date with no time part as 2006-01-02. Any other value
// is written as 2006-01-02 15:04:05, with microseconds when non-zero and a
// UTC offset when the value is not in UTC.
func formatTime(t time.Time) string {
	if t.Location() == time.UTC && t.Hour() == 0 && t.Minute() == 0 && t.Second() == 0 && t.Nanosecond() == 0 {
		return t.Format(time.DateOnly)
	}
	s := t.Format(time.DateTime)
	if us := t.Nanosecond() / 1000; us != 0 {
		s += fmt.Sprintf(".%06d", us)
	}
	if t.Location() != time.UTC {
		s += t.Format("-07:00")
	}
	return s
}
