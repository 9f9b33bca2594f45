package database

import (
	"context"

	"github.com/Aleph-Alpha/unidb/v1/dialect"
	"github.com/Aleph-Alpha/unidb/v1/future"
	"github.com/Aleph-Alpha/unidb/v1/record"
	"github.com/Aleph-Alpha/unidb/v1/unidb"
)

// Client is what FXModule hands to the application: the asynchronous contract
// plus the generic descriptor entry points and lifecycle control.
//
// *unidb.AsyncExecutor implements this interface for every backend.
type Client interface {
	unidb.AsyncDB

	// Exec runs any operation descriptor. Writes resolve to a single record
	// holding the affected row count under "n".
	Exec(ctx context.Context, op dialect.Operation) *future.Future[[]record.Record]

	// Render returns the statement op would execute, without executing it.
	Render(op dialect.Operation) (dialect.Statement, error)

	Dialect() dialect.Dialect
	Ping(ctx context.Context) error
	Close() error
}

var _ Client = (*unidb.AsyncExecutor)(nil)
