package duckdb

import (
	"context"
	"database/sql"
	"fmt"
	"net/url"
	"strconv"

	"github.com/Aleph-Alpha/unidb/v1/dialect"
	"github.com/Aleph-Alpha/unidb/v1/unidb"
	"github.com/duckdb/duckdb-go/v2"
	"github.com/jmoiron/sqlx"
)

// DriverName is the database/sql driver registered by duckdb-go.
const DriverName = "duckdb"

// Dialect is the SQL dialect spoken by DuckDB. Inserts report the new key via
// RETURNING id, so tables need an id column with a default, typically backed
// by a sequence:
//
//	CREATE SEQUENCE foobar_id START 1;
//	CREATE TABLE foobar (id BIGINT PRIMARY KEY DEFAULT nextval('foobar_id'), value VARCHAR);
var Dialect = dialect.DuckDB

// DSN builds the duckdb-go data source name for cfg.
func DSN(cfg Config) string {
	params := url.Values{}
	if cfg.Threads > 0 {
		params.Set("threads", strconv.Itoa(cfg.Threads))
	}
	if len(params) == 0 {
		return cfg.Path
	}
	return cfg.Path + "?" + params.Encode()
}

// Open opens a handle for cfg. Every connection of the returned pool shares
// one database instance, including in-memory ones.
func Open(cfg Config) (*sqlx.DB, error) {
	connector, err := duckdb.NewConnector(DSN(cfg), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open duckdb database: %w", err)
	}
	return sqlx.NewDb(sql.OpenDB(connector), DriverName), nil
}

// NewAsync creates a pooled executor for cfg.
func NewAsync(cfg Config) (*unidb.AsyncExecutor, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	exec := unidb.NewAsyncExecutor(db, Dialect, cfg.Pool, Translator)
	if err := exec.Ping(context.Background()); err != nil {
		_ = exec.Close()
		return nil, fmt.Errorf("failed to connect to duckdb database: %w", err)
	}
	return exec, nil
}

// NewSync creates a single connection executor for cfg.
func NewSync(ctx context.Context, cfg Config) (*unidb.SyncExecutor, error) {
	db, err := Open(cfg)
	if err != nil {
		return nil, err
	}
	return unidb.NewSyncExecutor(ctx, db, Dialect, Translator)
}
