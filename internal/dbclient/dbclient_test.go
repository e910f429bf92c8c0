package dbclient

import (
	"context"
	"database/sql"
	"net/url"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"salaryclean/internal/domain"
)

func TestNewConnector_UnsupportedDriver(t *testing.T) {
	_, err := NewConnector(&domain.DatabaseConnection{Driver: "oracle"}, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported driver")
}

func TestBuildPostgresDSN_Defaults(t *testing.T) {
	dsn := buildPostgresDSN(&domain.DatabaseConnection{
		Host:     "db.internal",
		Database: "h1b",
		Username: "analyst",
	}, "p@ss word")

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "postgres", u.Scheme)
	assert.Equal(t, "db.internal:5432", u.Host)
	assert.Equal(t, "/h1b", u.Path)
	assert.Equal(t, "analyst", u.User.Username())
	pw, ok := u.User.Password()
	assert.True(t, ok)
	assert.Equal(t, "p@ss word", pw)
	assert.Equal(t, "disable", u.Query().Get("sslmode"))
}

func TestBuildPostgresDSN_ExplicitPortAndSSL(t *testing.T) {
	dsn := buildPostgresDSN(&domain.DatabaseConnection{
		Host:    "localhost",
		Port:    6543,
		SSLMode: "require",
	}, "")

	u, err := url.Parse(dsn)
	require.NoError(t, err)
	assert.Equal(t, "localhost:6543", u.Host)
	assert.Equal(t, "require", u.Query().Get("sslmode"))
}

func TestBuildMySQLDSN(t *testing.T) {
	dsn := buildMySQLDSN(&domain.DatabaseConnection{
		Host:     "mysql.local",
		Database: "h1b_salary",
		Username: "root",
	}, "secret")

	cfg, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "root", cfg.User)
	assert.Equal(t, "secret", cfg.Passwd)
	assert.Equal(t, "mysql.local:3306", cfg.Addr)
	assert.Equal(t, "h1b_salary", cfg.DBName)
	assert.True(t, cfg.ParseTime)
}

func TestFormatValue(t *testing.T) {
	ts := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	assert.Nil(t, formatValue(nil))
	assert.Equal(t, "abc", formatValue([]byte("abc")))
	assert.Equal(t, ts, formatValue(ts))
	assert.Equal(t, int64(7), formatValue(int64(7)))
	assert.Equal(t, true, formatValue(true))
}

func TestSQLiteConnector_Query(t *testing.T) {
	path := filepath.Join(t.TempDir(), "salaries.db")

	seed, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	_, err = seed.Exec(`CREATE TABLE salaries (id INTEGER, job_title TEXT, base_salary REAL)`)
	require.NoError(t, err)
	_, err = seed.Exec(`INSERT INTO salaries VALUES (1, 'DATA ENGINEER', 120000.5), (2, NULL, 90000)`)
	require.NoError(t, err)
	require.NoError(t, seed.Close())

	conn, err := NewConnector(&domain.DatabaseConnection{
		Driver: domain.DatabaseDriverSQLite,
		Host:   path,
	}, "")
	require.NoError(t, err)
	defer conn.Close()

	ctx := context.Background()
	require.NoError(t, conn.TestConnection(ctx))

	res, err := conn.Query(ctx, "SELECT id, job_title, base_salary FROM salaries ORDER BY id")
	require.NoError(t, err)
	assert.Equal(t, []string{"id", "job_title", "base_salary"}, res.Columns)
	require.Len(t, res.Rows, 2)
	assert.Equal(t, []any{int64(1), "DATA ENGINEER", 120000.5}, res.Rows[0])
	assert.Nil(t, res.Rows[1][1])
}

func TestSQLiteConnector_QueryError(t *testing.T) {
	conn, err := NewConnector(&domain.DatabaseConnection{
		Driver: domain.DatabaseDriverSQLite,
		Host:   filepath.Join(t.TempDir(), "empty.db"),
	}, "")
	require.NoError(t, err)
	defer conn.Close()

	_, err = conn.Query(context.Background(), "SELECT * FROM missing_table")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "query:")
}
