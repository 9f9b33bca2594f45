// Package duckdb builds unidb executors for embedded DuckDB databases using
// github.com/duckdb/duckdb-go/v2.
//
// DuckDB has no driver-reported last insert id; inserts append RETURNING id
// and resolve to the returned key.
package duckdb
