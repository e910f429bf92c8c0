package dbclient

import (
	"salaryclean/internal/domain"

	_ "modernc.org/sqlite"
)

// newSQLiteConnector creates a connector for a local SQLite file.
func newSQLiteConnector(conn *domain.DatabaseConnection) (*sqlConnector, error) {
	dsn := conn.Host + "?_pragma=busy_timeout(5000)"
	return newSQLConnector("sqlite", dsn)
}
