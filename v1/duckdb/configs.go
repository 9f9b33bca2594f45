package duckdb

import "github.com/Aleph-Alpha/unidb/v1/unidb"

// Config selects the DuckDB database.
type Config struct {
	// Path is the database file. Empty opens an in-memory database that lives
	// as long as the executor.
	Path string `yaml:"path" envconfig:"DUCKDB_PATH"`

	// Threads limits DuckDB's worker threads. Zero keeps the engine default.
	Threads int `yaml:"threads" envconfig:"DUCKDB_THREADS"`

	// Pool bounds the async executor. It is ignored by NewSync.
	Pool unidb.PoolConfig `yaml:"pool"`
}
