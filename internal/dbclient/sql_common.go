package dbclient

import (
	"context"
	"database/sql"
	"fmt"
)

// sqlConnector is the shared implementation for MySQL, Postgres, and SQLite.
type sqlConnector struct {
	driverName string
	db         *sql.DB
}

// newSQLConnector creates a generic SQL connector.
func newSQLConnector(driverName, dsn string) (*sqlConnector, error) {
	db, err := sql.Open(driverName, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driverName, err)
	}
	// A single run uses a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	return &sqlConnector{driverName: driverName, db: db}, nil
}

func (c *sqlConnector) TestConnection(ctx context.Context) error {
	return c.db.PingContext(ctx)
}

func (c *sqlConnector) Query(ctx context.Context, query string) (*QueryResult, error) {
	rows, err := c.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query: %w", err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("columns: %w", err)
	}

	result := &QueryResult{Columns: cols}
	numCols := len(cols)
	for rows.Next() {
		values := make([]any, numCols)
		ptrs := make([]any, numCols)
		for j := range values {
			ptrs[j] = &values[j]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}

		row := make([]any, numCols)
		for j, v := range values {
			row[j] = formatValue(v)
		}
		result.Rows = append(result.Rows, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate: %w", err)
	}
	return result, nil
}

// formatValue normalizes driver values into plain scalars. time.Time is kept
// as-is so the writer can render dates and timestamps without losing precision.
func formatValue(v any) any {
	if v == nil {
		return nil
	}
	switch val := v.(type) {
	case []byte:
		return string(val)
	default:
		return val
	}
}

func (c *sqlConnector) Close() error {
	return c.db.Close()
}
