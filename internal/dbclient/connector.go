package dbclient

import (
	"context"
	"fmt"

	"salaryclean/internal/domain"
)

// QueryResult is the fully materialized output of a read query.
type QueryResult struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

// Connector abstracts interaction with an external database.
type Connector interface {
	// TestConnection verifies connectivity and credentials.
	TestConnection(ctx context.Context) error

	// Query runs a read query and returns every row.
	// The cursor is closed before Query returns, whether or not it succeeded.
	Query(ctx context.Context, query string) (*QueryResult, error)

	// Close closes the connection.
	Close() error
}

// NewConnector creates a Connector for the given database connection.
// The password must be provided separately (from config or SecretStore).
func NewConnector(conn *domain.DatabaseConnection, password string) (Connector, error) {
	switch conn.Driver {
	case domain.DatabaseDriverSQLite:
		return newSQLiteConnector(conn)
	case domain.DatabaseDriverMySQL:
		return newSQLConnector("mysql", buildMySQLDSN(conn, password))
	case domain.DatabaseDriverPostgres:
		return newSQLConnector("postgres", buildPostgresDSN(conn, password))
	default:
		return nil, fmt.Errorf("unsupported driver: %s", conn.Driver)
	}
}
