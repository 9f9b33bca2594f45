package sqlite

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"sync/atomic"

	"github.com/Aleph-Alpha/unidb/v1/dialect"
	"github.com/Aleph-Alpha/unidb/v1/unidb"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// DriverName is the database/sql driver registered by go-sqlite3.
const DriverName = "sqlite3"

// Dialect is the SQL dialect spoken by SQLite.
var Dialect = dialect.SQLite

var memoryDatabases atomic.Int64

// DSN builds the go-sqlite3 data source name for cfg. With shared set, an
// in-memory database gets a private name on the memdb VFS so that every
// connection of one pool sees the same data. memdb reports lock conflicts as
// SQLITE_BUSY, so concurrent readers and writers wait out the busy timeout.
func DSN(cfg Config, shared bool) string {
	busy := cfg.BusyTimeout
	if busy <= 0 {
		busy = defaultBusyTimeout
	}

	params := url.Values{}
	params.Set("_busy_timeout", strconv.FormatInt(busy.Milliseconds(), 10))
	params.Set("_txlock", "immediate")
	if cfg.ForeignKeys {
		params.Set("_foreign_keys", "1")
	}

	switch {
	case cfg.inMemory() && shared:
		params.Set("vfs", "memdb")
		name := fmt.Sprintf("/unidb-%d", memoryDatabases.Add(1))
		return "file:" + name + "?" + params.Encode()
	case cfg.inMemory():
		return ":memory:?" + params.Encode()
	default:
		params.Set("_journal_mode", "WAL")
		return "file:" + cfg.Path + "?" + params.Encode()
	}
}

// Open opens a handle for cfg. With shared set, in-memory databases are
// reachable from every connection of the returned pool.
func Open(cfg Config, shared bool) (*sqlx.DB, error) {
	db, err := sqlx.Open(DriverName, DSN(cfg, shared))
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}
	return db, nil
}

// NewAsync creates a pooled executor for cfg.
//
// An in-memory database lives only while one of its connections is open, so
// for in-memory configurations the pool keeps its connections indefinitely
// unless cfg.Pool says otherwise.
func NewAsync(cfg Config) (*unidb.AsyncExecutor, error) {
	db, err := Open(cfg, true)
	if err != nil {
		return nil, err
	}

	pool := cfg.Pool
	if cfg.inMemory() {
		if pool.ConnMaxLifetime == 0 {
			pool.ConnMaxLifetime = -1
		}
		if pool.ConnMaxIdleTime == 0 {
			pool.ConnMaxIdleTime = -1
		}
	}

	exec := unidb.NewAsyncExecutor(db, Dialect, pool, Translator)
	if err := exec.Ping(context.Background()); err != nil {
		_ = exec.Close()
		return nil, fmt.Errorf("failed to connect to sqlite database: %w", err)
	}
	return exec, nil
}

// NewSync creates a single connection executor for cfg.
func NewSync(ctx context.Context, cfg Config) (*unidb.SyncExecutor, error) {
	db, err := Open(cfg, false)
	if err != nil {
		return nil, err
	}
	return unidb.NewSyncExecutor(ctx, db, Dialect, Translator)
}
