package domain

// DatabaseDriver represents the type of database engine.
type DatabaseDriver string

const (
	DatabaseDriverMySQL    DatabaseDriver = "mysql"
	DatabaseDriverPostgres DatabaseDriver = "postgres"
	DatabaseDriverSQLite   DatabaseDriver = "sqlite"
)

// Valid reports whether d is a driver the extractor knows how to query.
func (d DatabaseDriver) Valid() bool {
	switch d {
	case DatabaseDriverMySQL, DatabaseDriverPostgres, DatabaseDriverSQLite:
		return true
	}
	return false
}

// DatabaseConnection holds the metadata for connecting to the salary database.
// The password is kept separately so it never ends up in logs.
type DatabaseConnection struct {
	Driver   DatabaseDriver `json:"driver" yaml:"driver"`
	Host     string         `json:"host" yaml:"host"`         // hostname or file path (sqlite)
	Port     int            `json:"port" yaml:"port"`         // 0 for driver default
	Database string         `json:"database" yaml:"database"` // db name or empty for sqlite
	Username string         `json:"username" yaml:"username"`
	SSLMode  string         `json:"sslMode" yaml:"sslmode"`
}
