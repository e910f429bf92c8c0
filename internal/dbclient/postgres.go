package dbclient

import (
	"net"
	"net/url"
	"strconv"

	"salaryclean/internal/domain"

	_ "github.com/lib/pq"
)

// buildPostgresDSN constructs a postgres:// URL so credentials with spaces
// or quotes survive intact.
func buildPostgresDSN(conn *domain.DatabaseConnection, password string) string {
	port := conn.Port
	if port == 0 {
		port = 5432
	}
	sslMode := conn.SSLMode
	if sslMode == "" {
		sslMode = "disable"
	}
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(conn.Username, password),
		Host:   net.JoinHostPort(conn.Host, strconv.Itoa(port)),
		Path:   "/" + conn.Database,
	}
	q := url.Values{}
	q.Set("sslmode", sslMode)
	q.Set("application_name", "salaryclean")
	u.RawQuery = q.Encode()
	return u.String()
}
