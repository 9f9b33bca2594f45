// Package unidb runs the five canonical database operations (raw query,
// select, insert, update and delete) against any supported SQL backend through
// two contracts.
//
// # Contracts
//
// AsyncDB methods carry a D prefix and return a *future.Future immediately:
//
//	f := db.DInsert(ctx, "foobar", unidb.Values{"value": "foo"})
//	id, err := f.Await(ctx)
//
// SyncDB methods block and return the value directly:
//
//	n, err := db.Update(ctx, "foobar", "value = $old", unidb.Vars{"old": "foo"}, unidb.Values{"value": "bar"})
//
// Inserts yield the identifier of the new row, updates and deletes the number
// of affected rows, and reads a []record.Record with every row materialized.
//
// # Executors
//
// AsyncExecutor implements AsyncDB over a bounded pool (3 to 5 connections by
// default). Each operation checks out one connection for the duration of its
// statement; writes run in a transaction on that connection so the key or row
// count is read before the connection goes back. When no connection frees up
// within PoolConfig.AcquireTimeout the future is rejected with ErrPoolExhausted.
//
// SyncExecutor implements SyncDB over a single connection, and AsyncDB by
// returning already completed futures. It is meant for one goroutine.
//
// Backend packages (sqlite, duckdb, postgres, mariadb) build both executors
// from their own configuration.
//
// # Errors
//
// Rendering problems are reported as *dialect.RenderError before any
// connection is used. Driver failures are reported as *ExecutionError, which
// matches ErrExecution and, where the backend could classify the failure, a
// specific sentinel:
//
//	_, err := db.Select(ctx, "missing", unidb.SelectOptions{})
//	errors.Is(err, unidb.ErrExecution)      // true
//	errors.Is(err, unidb.ErrUndefinedTable) // true
//
// Operations are never retried; see IsRetryable.
//
// # Observability
//
// WithLogger, WithObserver and WithTracer attach the optional hooks. Every
// executed statement is reported to the observer with component "unidb", the
// operation name, the target table as resource and the backend as sub-resource.
package unidb
