package database

import (
	"time"

	"github.com/Aleph-Alpha/unidb/v1/duckdb"
	"github.com/Aleph-Alpha/unidb/v1/mariadb"
	"github.com/Aleph-Alpha/unidb/v1/postgres"
	"github.com/Aleph-Alpha/unidb/v1/sqlite"
)

// Supported values of Config.Type.
const (
	TypeSQLite   = "sqlite"
	TypeDuckDB   = "duckdb"
	TypePostgres = "postgres"
	TypeMariaDB  = "mariadb"
)

// Config contains configuration for executor creation.
// Use one of the helper functions (SQLiteConfig, DuckDBConfig, PostgresConfig,
// MariaDBConfig) to create it.
type Config struct {
	// Type is the backend ("sqlite", "duckdb", "postgres" or "mariadb")
	Type string

	SQLite   *sqlite.Config
	DuckDB   *duckdb.Config
	Postgres *postgres.Config
	MariaDB  *mariadb.Config

	// MonitorInterval is the period of the health check started by FXModule.
	// Zero uses unidb.DefaultMonitorInterval.
	MonitorInterval time.Duration
}

// SQLiteConfig creates a database.Config for SQLite.
//
// Example:
//
//	fx.Provide(func() database.Config {
//	    return database.SQLiteConfig(sqlite.Config{Path: "/var/lib/app/app.db"})
//	})
func SQLiteConfig(cfg sqlite.Config) Config {
	return Config{
		Type:   TypeSQLite,
		SQLite: &cfg,
	}
}

// DuckDBConfig creates a database.Config for DuckDB.
func DuckDBConfig(cfg duckdb.Config) Config {
	return Config{
		Type:   TypeDuckDB,
		DuckDB: &cfg,
	}
}

// PostgresConfig creates a database.Config for PostgreSQL.
//
// Example:
//
//	fx.Provide(func() database.Config {
//	    return database.PostgresConfig(postgres.Config{
//	        Connection: postgres.Connection{
//	            Host: "localhost",
//	            Port: "5432",
//	            // ...
//	        },
//	    })
//	})
func PostgresConfig(cfg postgres.Config) Config {
	return Config{
		Type:     TypePostgres,
		Postgres: &cfg,
	}
}

// MariaDBConfig creates a database.Config for MariaDB/MySQL.
func MariaDBConfig(cfg mariadb.Config) Config {
	return Config{
		Type:    TypeMariaDB,
		MariaDB: &cfg,
	}
}
