package database

import (
	"context"
	"fmt"

	"github.com/Aleph-Alpha/unidb/v1/duckdb"
	"github.com/Aleph-Alpha/unidb/v1/mariadb"
	"github.com/Aleph-Alpha/unidb/v1/postgres"
	"github.com/Aleph-Alpha/unidb/v1/sqlite"
	"github.com/Aleph-Alpha/unidb/v1/unidb"
)

// NewAsync creates the pooled executor of the backend selected by cfg.Type.
func NewAsync(cfg Config) (*unidb.AsyncExecutor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case TypeSQLite:
		return sqlite.NewAsync(*cfg.SQLite)
	case TypeDuckDB:
		return duckdb.NewAsync(*cfg.DuckDB)
	case TypePostgres:
		return postgres.NewAsync(*cfg.Postgres)
	default:
		return mariadb.NewAsync(*cfg.MariaDB)
	}
}

// NewSync creates the single connection executor of the backend selected by cfg.Type.
func NewSync(ctx context.Context, cfg Config) (*unidb.SyncExecutor, error) {
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	switch cfg.Type {
	case TypeSQLite:
		return sqlite.NewSync(ctx, *cfg.SQLite)
	case TypeDuckDB:
		return duckdb.NewSync(ctx, *cfg.DuckDB)
	case TypePostgres:
		return postgres.NewSync(ctx, *cfg.Postgres)
	default:
		return mariadb.NewSync(ctx, *cfg.MariaDB)
	}
}

func (c Config) validate() error {
	var missing bool
	switch c.Type {
	case TypeSQLite:
		missing = c.SQLite == nil
	case TypeDuckDB:
		missing = c.DuckDB == nil
	case TypePostgres:
		missing = c.Postgres == nil
	case TypeMariaDB:
		missing = c.MariaDB == nil
	default:
		return fmt.Errorf("unsupported database type: %q (must be 'sqlite', 'duckdb', 'postgres' or 'mariadb')", c.Type)
	}
	if missing {
		return fmt.Errorf("%s config is required when type=%s", c.Type, c.Type)
	}
	return nil
}
