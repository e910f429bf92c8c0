package etl_test

import (
	"database/sql"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite"

	"salaryclean/internal/domain"
)

// salaryRow is one seeded salaries record.
type salaryRow struct {
	employer string
	jobTitle string
	salary   int64
	location string
}

// seedSalaries creates a SQLite file holding a salaries table and returns a
// connection pointing at it.
func seedSalaries(t *testing.T, rows ...salaryRow) *domain.DatabaseConnection {
	t.Helper()
	path := filepath.Join(t.TempDir(), "h1b.db")

	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE salaries (
		employer TEXT,
		job_title TEXT,
		base_salary INTEGER,
		location TEXT
	)`)
	require.NoError(t, err)

	for _, r := range rows {
		_, err = db.Exec(`INSERT INTO salaries (employer, job_title, base_salary, location) VALUES (?, ?, ?, ?)`,
			r.employer, r.jobTitle, r.salary, r.location)
		require.NoError(t, err)
	}

	return &domain.DatabaseConnection{Driver: domain.DatabaseDriverSQLite, Host: path}
}
