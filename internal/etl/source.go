package etl

import (
	"context"
	"fmt"
	"regexp"

	"go.uber.org/zap"

	"salaryclean/internal/dbclient"
	"salaryclean/internal/domain"
)

// ── Source ──────────────────────────────────────────────────
// The Extractor pulls the salary table, plus three derived columns,
// from the configured database in a single query.

// DefaultTable is the schema-qualified salaries table.
const DefaultTable = "h1b_salary.salaries"

var tableNameRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*(\.[A-Za-z_][A-Za-z0-9_]*)?$`)

// ValidTableName reports whether name is a plain or schema-qualified identifier.
func ValidTableName(name string) bool {
	return tableNameRe.MatchString(name)
}

// SalaryQuery returns the extraction query for the given driver.
// Every dialect yields the native columns followed by state, is_sr and
// base_job_title. The SR prefix test is case-sensitive everywhere.
func SalaryQuery(driver domain.DatabaseDriver, table string) (string, error) {
	if !ValidTableName(table) {
		return "", fmt.Errorf("invalid table name: %q", table)
	}
	switch driver {
	case domain.DatabaseDriverPostgres:
		return "SELECT *, RIGHT(TRIM(TRAILING FROM location), 2) AS state, " +
			"job_title LIKE 'SR %' AS is_sr, " +
			"CASE WHEN job_title LIKE 'SR %' THEN SUBSTRING(job_title, 4, LENGTH(job_title)) ELSE job_title END AS base_job_title " +
			"FROM " + table, nil
	case domain.DatabaseDriverMySQL:
		return "SELECT *, RIGHT(TRIM(TRAILING FROM location), 2) AS state, " +
			"job_title LIKE BINARY 'SR %' AS is_sr, " +
			"CASE WHEN job_title LIKE BINARY 'SR %' THEN SUBSTRING(job_title, 4, CHAR_LENGTH(job_title)) ELSE job_title END AS base_job_title " +
			"FROM " + table, nil
	case domain.DatabaseDriverSQLite:
		return "SELECT *, substr(rtrim(location), -2) AS state, " +
			"job_title GLOB 'SR *' AS is_sr, " +
			"CASE WHEN job_title GLOB 'SR *' THEN substr(job_title, 4) ELSE job_title END AS base_job_title " +
			"FROM " + table, nil
	default:
		return "", fmt.Errorf("unsupported driver: %s", driver)
	}
}

// Extractor reads the salary table from one database connection.
type Extractor struct {
	Conn     *domain.DatabaseConnection
	Password string
	Table    string
	Logger   *zap.Logger

	// Open creates the connector; defaults to dbclient.NewConnector.
	Open func(conn *domain.DatabaseConnection, password string) (dbclient.Connector, error)
}

// NewExtractor returns an Extractor for conn using the default connector.
func NewExtractor(conn *domain.DatabaseConnection, password, table string, logger *zap.Logger) *Extractor {
	if table == "" {
		table = DefaultTable
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Extractor{Conn: conn, Password: password, Table: table, Logger: logger}
}

// Extract opens a connection, runs the salary query and returns the whole
// result. The connection is closed before Extract returns.
func (e *Extractor) Extract(ctx context.Context) (_ *Table, err error) {
	query, err := SalaryQuery(e.Conn.Driver, e.Table)
	if err != nil {
		return nil, err
	}

	open := e.Open
	if open == nil {
		open = dbclient.NewConnector
	}
	conn, err := open(e.Conn, e.Password)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer func() {
		if cerr := conn.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close connection: %w", cerr)
		}
	}()

	if err := conn.TestConnection(ctx); err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}

	e.Logger.Debug("Running salary query", zap.String("driver", string(e.Conn.Driver)), zap.String("table", e.Table))
	res, err := conn.Query(ctx, query)
	if err != nil {
		return nil, err
	}

	t := &Table{Header: res.Columns, Rows: res.Rows}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	e.Logger.Info("Extracted salary rows", zap.Int("rows", len(t.Rows)), zap.Int("columns", len(t.Header)))
	return t, nil
}
