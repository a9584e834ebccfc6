package storage

import (
	"errors"
	"strings"

	"github.com/glebarez/sqlite"
	config "github.com/plugfox/foxy-fib/internal/config"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

var errorUnsupportedDriver = errors.New("unsupported database driver")

// createDialector creates the appropriate GORM dialector based on the config.
func createDialector(cfg *config.DatabaseConfig) (gorm.Dialector, error) {
	switch strings.ToLower(cfg.Driver) {
	case "sqlite3", "sqlite":
		return sqliteDialector(cfg.Connection), nil
	case "postgres", "postgresql":
		return postgresDialector(cfg.Connection), nil
	case "mysql", "mariadb", "tidb":
		return mysqlDialector(cfg.Connection), nil
	default:
		return nil, errorUnsupportedDriver
	}
}

func sqliteDialector(connection string) gorm.Dialector {
	if connection == ":memory:" || connection == "" {
		return sqlite.Open("file::memory:?cache=shared")
	}
	return sqlite.Open(connection)
}

func postgresDialector(connection string) gorm.Dialector {
	return postgres.New(
		postgres.Config{
			DSN:                  connection,
			PreferSimpleProtocol: true, // disables implicit prepared statement usage
		},
	)
}

func mysqlDialector(connection string) gorm.Dialector {
	const defaultStringSize = 256

	return mysql.New(
		mysql.Config{
			// e.g. fib:fib@tcp(127.0.0.1:3306)/fib?charset=utf8&parseTime=True&loc=UTC
			DSN:                       connection,
			DefaultStringSize:         defaultStringSize,
			DisableDatetimePrecision:  true, // datetime precision is not supported before MySQL 5.6
			DontSupportRenameIndex:    true, // rename index is not supported before MySQL 5.7 and MariaDB
			DontSupportRenameColumn:   true, // rename column is not supported before MySQL 8 and MariaDB
			SkipInitializeWithVersion: false,
		},
	)
}
