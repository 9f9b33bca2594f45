package unidb

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/Aleph-Alpha/unidb/v1/dialect"
	"github.com/Aleph-Alpha/unidb/v1/future"
	"github.com/Aleph-Alpha/unidb/v1/observability"
	"github.com/Aleph-Alpha/unidb/v1/record"
	"github.com/jmoiron/sqlx"
	"golang.org/x/sync/semaphore"
)

// AsyncExecutor implements AsyncDB on top of a bounded connection pool.
//
// Every operation renders its statement on the calling goroutine and then
// returns a pending future; the statement runs on its own goroutine using a
// connection checked out for that single statement or transaction. Render
// failures, and calls made after Close, yield an already rejected future.
type AsyncExecutor struct {
	core
	db   *sqlx.DB
	pool PoolConfig
	sem  *semaphore.Weighted

	warmOnce sync.Once
	inflight sync.WaitGroup

	mu             sync.RWMutex
	closed         bool
	shutdownSignal chan struct{}
	closeOnce      sync.Once
}

// NewAsyncExecutor wraps db in an AsyncExecutor. The executor takes ownership
// of db and applies pool to it; translator may be nil.
func NewAsyncExecutor(db *sqlx.DB, d dialect.Dialect, pool PoolConfig, translator ErrorTranslator) *AsyncExecutor {
	pool = pool.withDefaults()

	db.SetMaxOpenConns(pool.MaxConns)
	db.SetMaxIdleConns(pool.MaxConns)
	db.SetConnMaxLifetime(pool.ConnMaxLifetime)
	db.SetConnMaxIdleTime(pool.ConnMaxIdleTime)

	return &AsyncExecutor{
		core: core{
			mode:       "async",
			dialect:    d,
			translator: translator,
		},
		db:             db,
		pool:           pool,
		sem:            semaphore.NewWeighted(int64(pool.MaxConns)),
		shutdownSignal: make(chan struct{}),
	}
}

// WithLogger attaches a logger for failed operations and pool health.
func (e *AsyncExecutor) WithLogger(logger Logger) *AsyncExecutor {
	e.logger = logger
	return e
}

// WithObserver attaches an observer that is notified about every executed statement.
//
// Example:
//
//	exec = exec.WithObserver(metricsClient)
func (e *AsyncExecutor) WithObserver(observer observability.Observer) *AsyncExecutor {
	e.observer = observer
	return e
}

// WithTracer wraps every executed statement in a span.
func (e *AsyncExecutor) WithTracer(tracer Tracer) *AsyncExecutor {
	e.tracer = tracer
	return e
}

func (e *AsyncExecutor) DQuery(ctx context.Context, query string, vars Vars) *future.Future[[]record.Record] {
	return e.read(ctx, dialect.Query{SQL: query, Vars: vars})
}

func (e *AsyncExecutor) DSelect(ctx context.Context, tables string, opts SelectOptions) *future.Future[[]record.Record] {
	return e.read(ctx, opts.operation(tables))
}

func (e *AsyncExecutor) DInsert(ctx context.Context, table string, values Values) *future.Future[int64] {
	return e.write(ctx, dialect.Insert{Table: table, Values: values})
}

func (e *AsyncExecutor) DUpdate(ctx context.Context, tables, where string, vars Vars, values Values) *future.Future[int64] {
	return e.write(ctx, dialect.Update{Tables: []string{tables}, Where: where, Vars: vars, Values: values})
}

func (e *AsyncExecutor) DDelete(ctx context.Context, table, where string, vars Vars) *future.Future[int64] {
	return e.write(ctx, dialect.Delete{Table: table, Where: where, Vars: vars})
}

// Exec runs any operation. Reads resolve to their rows, writes to a single
// record holding the resulting count under "n".
func (e *AsyncExecutor) Exec(ctx context.Context, op dialect.Operation) *future.Future[[]record.Record] {
	if op != nil && op.Kind().IsWrite() {
		return future.Then(e.write(ctx, op), countRecords)
	}
	return e.read(ctx, op)
}

func (e *AsyncExecutor) read(ctx context.Context, op dialect.Operation) *future.Future[[]record.Record] {
	stmt, err := e.render(op)
	if err != nil {
		return future.Rejected[[]record.Record](err)
	}
	if err := e.enter(); err != nil {
		return future.Rejected[[]record.Record](err)
	}

	return future.Go(func() ([]record.Record, error) {
		defer e.inflight.Done()
		return instrument(ctx, &e.core, stmt, rowCount, func(ctx context.Context) ([]record.Record, error) {
			conn, release, err := e.checkout(ctx, stmt)
			if err != nil {
				return nil, err
			}
			defer release()
			return e.query(ctx, conn, stmt)
		})
	})
}

func (e *AsyncExecutor) write(ctx context.Context, op dialect.Operation) *future.Future[int64] {
	stmt, err := e.render(op)
	if err != nil {
		return future.Rejected[int64](err)
	}
	if err := e.enter(); err != nil {
		return future.Rejected[int64](err)
	}

	return future.Go(func() (int64, error) {
		defer e.inflight.Done()
		return instrument(ctx, &e.core, stmt, scalar, func(ctx context.Context) (int64, error) {
			conn, release, err := e.checkout(ctx, stmt)
			if err != nil {
				return 0, err
			}
			defer release()
			return e.core.write(ctx, conn.BeginTxx, stmt)
		})
	})
}

// enter registers an in-flight operation unless the executor is closed.
func (e *AsyncExecutor) enter() error {
	e.mu.RLock()
	defer e.mu.RUnlock()
	if e.closed {
		return ErrClosed
	}
	e.inflight.Add(1)
	return nil
}

// checkout waits for a pool slot and takes one connection. The returned
// release function gives both back and must be called exactly once.
func (e *AsyncExecutor) checkout(ctx context.Context, stmt dialect.Statement) (*sqlx.Conn, func(), error) {
	e.warm(ctx)

	acquireCtx, cancel := context.WithTimeout(ctx, e.pool.AcquireTimeout)
	defer cancel()
	if err := e.sem.Acquire(acquireCtx, 1); err != nil {
		if ctx.Err() != nil {
			return nil, nil, ctx.Err()
		}
		return nil, nil, fmt.Errorf("%w: no connection became available within %s", ErrPoolExhausted, e.pool.AcquireTimeout)
	}

	conn, err := e.db.Connx(ctx)
	if err != nil {
		e.sem.Release(1)
		return nil, nil, e.wrap(stmt, err)
	}

	return conn, func() {
		_ = conn.Close()
		e.sem.Release(1)
	}, nil
}

// warm opens MinConns connections once and hands them to the idle pool.
func (e *AsyncExecutor) warm(ctx context.Context) {
	e.warmOnce.Do(func() {
		conns := make([]*sqlx.Conn, 0, e.pool.MinConns)
		for i := 0; i < e.pool.MinConns; i++ {
			conn, err := e.db.Connx(ctx)
			if err != nil {
				e.logWarn("failed to warm up connection pool", err, map[string]interface{}{
					"backend": e.dialect.Name,
					"opened":  len(conns),
				})
				break
			}
			conns = append(conns, conn)
		}
		for _, conn := range conns {
			_ = conn.Close()
		}
		e.logDebug("connection pool warmed up", map[string]interface{}{
			"backend":     e.dialect.Name,
			"connections": len(conns),
		})
	})
}

// Render returns the statement op would execute, without executing it.
func (e *AsyncExecutor) Render(op dialect.Operation) (dialect.Statement, error) {
	return e.dialect.Render(op)
}

func (e *AsyncExecutor) Dialect() dialect.Dialect {
	return e.dialect
}

// DB returns the underlying pool for schema setup and other direct access.
func (e *AsyncExecutor) DB() *sqlx.DB {
	return e.db
}

// Stats reports the state of the underlying connection pool.
func (e *AsyncExecutor) Stats() sql.DBStats {
	return e.db.Stats()
}

// Ping verifies that the backend is reachable.
func (e *AsyncExecutor) Ping(ctx context.Context) error {
	if e.isClosed() {
		return ErrClosed
	}
	return e.db.PingContext(ctx)
}

func (e *AsyncExecutor) isClosed() bool {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.closed
}

// Close rejects new operations, waits for in-flight ones to settle and closes
// the pool. Calling Close more than once is a no-op.
func (e *AsyncExecutor) Close() error {
	var err error
	e.closeOnce.Do(func() {
		e.mu.Lock()
		e.closed = true
		e.mu.Unlock()

		close(e.shutdownSignal)
		e.inflight.Wait()
		err = e.db.Close()
	})
	return err
}
