package dbclient

import (
	"net"
	"strconv"

	"salaryclean/internal/domain"

	"github.com/go-sql-driver/mysql"
)

// buildMySQLDSN constructs a MySQL DSN from a DatabaseConnection.
func buildMySQLDSN(conn *domain.DatabaseConnection, password string) string {
	port := conn.Port
	if port == 0 {
		port = 3306
	}
	cfg := mysql.NewConfig()
	cfg.User = conn.Username
	cfg.Passwd = password
	cfg.Net = "tcp"
	cfg.Addr = net.JoinHostPort(conn.Host, strconv.Itoa(port))
	cfg.DBName = conn.Database
	cfg.ParseTime = true
	cfg.Params = map[string]string{"charset": "utf8mb4"}
	if conn.SSLMode == "require" {
		cfg.TLSConfig = "true"
	}
	return cfg.FormatDSN()
}
