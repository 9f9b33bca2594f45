package unidb

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/Aleph-Alpha/unidb/v1/dialect"
	"github.com/Aleph-Alpha/unidb/v1/future"
	"github.com/Aleph-Alpha/unidb/v1/observability"
	"github.com/Aleph-Alpha/unidb/v1/record"
	"github.com/jmoiron/sqlx"
)

// SyncExecutor implements SyncDB over a single dedicated connection.
//
// It also implements AsyncDB: the D* methods run synchronously and return an
// already completed future, so code written against AsyncDB works unchanged.
//
// A SyncExecutor is not safe for concurrent use; callers sharing one must
// serialize access themselves.
type SyncExecutor struct {
	core
	db   *sqlx.DB
	conn *sqlx.Conn

	closed    atomic.Bool
	closeOnce sync.Once
}

// NewSyncExecutor takes ownership of db, restricts it to one connection and
// opens that connection; translator may be nil.
func NewSyncExecutor(ctx context.Context, db *sqlx.DB, d dialect.Dialect, translator ErrorTranslator) (*SyncExecutor, error) {
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	conn, err := db.Connx(ctx)
	if err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to open %s connection: %w", d.Name, err)
	}

	return &SyncExecutor{
		core: core{
			mode:       "sync",
			dialect:    d,
			translator: translator,
		},
		db:   db,
		conn: conn,
	}, nil
}

func (e *SyncExecutor) WithLogger(logger Logger) *SyncExecutor {
	e.logger = logger
	return e
}

func (e *SyncExecutor) WithObserver(observer observability.Observer) *SyncExecutor {
	e.observer = observer
	return e
}

func (e *SyncExecutor) WithTracer(tracer Tracer) *SyncExecutor {
	e.tracer = tracer
	return e
}

func (e *SyncExecutor) Query(ctx context.Context, query string, vars Vars) ([]record.Record, error) {
	return e.read(ctx, dialect.Query{SQL: query, Vars: vars})
}

func (e *SyncExecutor) Select(ctx context.Context, tables string, opts SelectOptions) ([]record.Record, error) {
	return e.read(ctx, opts.operation(tables))
}

func (e *SyncExecutor) Insert(ctx context.Context, table string, values Values) (int64, error) {
	return e.write(ctx, dialect.Insert{Table: table, Values: values})
}

func (e *SyncExecutor) Update(ctx context.Context, tables, where string, vars Vars, values Values) (int64, error) {
	return e.write(ctx, dialect.Update{Tables: []string{tables}, Where: where, Vars: vars, Values: values})
}

func (e *SyncExecutor) Delete(ctx context.Context, table, where string, vars Vars) (int64, error) {
	return e.write(ctx, dialect.Delete{Table: table, Where: where, Vars: vars})
}

func (e *SyncExecutor) DQuery(ctx context.Context, query string, vars Vars) *future.Future[[]record.Record] {
	return future.Wrap(func() ([]record.Record, error) {
		return e.Query(ctx, query, vars)
	})
}

func (e *SyncExecutor) DSelect(ctx context.Context, tables string, opts SelectOptions) *future.Future[[]record.Record] {
	return future.Wrap(func() ([]record.Record, error) {
		return e.Select(ctx, tables, opts)
	})
}

func (e *SyncExecutor) DInsert(ctx context.Context, table string, values Values) *future.Future[int64] {
	return future.Wrap(func() (int64, error) {
		return e.Insert(ctx, table, values)
	})
}

func (e *SyncExecutor) DUpdate(ctx context.Context, tables, where string, vars Vars, values Values) *future.Future[int64] {
	return future.Wrap(func() (int64, error) {
		return e.Update(ctx, tables, where, vars, values)
	})
}

func (e *SyncExecutor) DDelete(ctx context.Context, table, where string, vars Vars) *future.Future[int64] {
	return future.Wrap(func() (int64, error) {
		return e.Delete(ctx, table, where, vars)
	})
}

// Exec runs any operation, with the same results as AsyncExecutor.Exec.
func (e *SyncExecutor) Exec(ctx context.Context, op dialect.Operation) ([]record.Record, error) {
	if op != nil && op.Kind().IsWrite() {
		n, err := e.write(ctx, op)
		if err != nil {
			return nil, err
		}
		return countRecords(n)
	}
	return e.read(ctx, op)
}

func (e *SyncExecutor) read(ctx context.Context, op dialect.Operation) ([]record.Record, error) {
	stmt, err := e.render(op)
	if err != nil {
		return nil, err
	}
	if e.closed.Load() {
		return nil, ErrClosed
	}
	return instrument(ctx, &e.core, stmt, rowCount, func(ctx context.Context) ([]record.Record, error) {
		return e.query(ctx, e.conn, stmt)
	})
}

func (e *SyncExecutor) write(ctx context.Context, op dialect.Operation) (int64, error) {
	stmt, err := e.render(op)
	if err != nil {
		return 0, err
	}
	if e.closed.Load() {
		return 0, ErrClosed
	}
	return instrument(ctx, &e.core, stmt, scalar, func(ctx context.Context) (int64, error) {
		return e.core.write(ctx, e.conn.BeginTxx, stmt)
	})
}

// Render returns the statement op would execute, without executing it.
func (e *SyncExecutor) Render(op dialect.Operation) (dialect.Statement, error) {
	return e.dialect.Render(op)
}

func (e *SyncExecutor) Dialect() dialect.Dialect {
	return e.dialect
}

func (e *SyncExecutor) Ping(ctx context.Context) error {
	if e.closed.Load() {
		return ErrClosed
	}
	return e.conn.PingContext(ctx)
}

// Close releases the connection and closes the handle. Calling Close more
// than once is a no-op.
func (e *SyncExecutor) Close() error {
	var err error
	e.closeOnce.Do(func() {
		e.closed.Store(true)
		if cerr := e.conn.Close(); cerr != nil {
			err = cerr
		}
		if cerr := e.db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	})
	return err
}
