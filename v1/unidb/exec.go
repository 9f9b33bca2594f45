package unidb

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"errors"
	"time"

	"github.com/Aleph-Alpha/unidb/v1/dialect"
	"github.com/Aleph-Alpha/unidb/v1/observability"
	"github.com/Aleph-Alpha/unidb/v1/record"
	"github.com/jmoiron/sqlx"
	"go.opentelemetry.io/otel/trace"
)

// core holds what both executors share: how to render, how to classify
// failures and where to report them.
type core struct {
	mode       string
	dialect    dialect.Dialect
	translator ErrorTranslator
	logger     Logger
	observer   observability.Observer
	tracer     Tracer
}

func (c *core) render(op dialect.Operation) (dialect.Statement, error) {
	stmt, err := c.dialect.Render(op)
	if err != nil {
		c.logError("failed to render statement", err, map[string]interface{}{
			"backend": c.dialect.Name,
			"mode":    c.mode,
		})
		return dialect.Statement{}, err
	}
	return stmt, nil
}

// query runs a read statement and materializes every row before returning.
func (c *core) query(ctx context.Context, q sqlx.QueryerContext, stmt dialect.Statement) ([]record.Record, error) {
	rows, err := q.QueryxContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return nil, c.wrap(stmt, err)
	}
	recs, err := record.Collect(rows)
	if err != nil {
		return nil, c.wrap(stmt, err)
	}
	return recs, nil
}

type txBeginner func(ctx context.Context, opts *sql.TxOptions) (*sqlx.Tx, error)

// write runs a write statement in its own transaction and extracts the
// inserted key or the affected row count before committing.
func (c *core) write(ctx context.Context, begin txBeginner, stmt dialect.Statement) (n int64, err error) {
	tx, err := begin(ctx, nil)
	if err != nil {
		return 0, c.wrap(stmt, err)
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()

	n, err = c.exec(ctx, tx, stmt)
	if err != nil {
		return 0, err
	}
	if err = tx.Commit(); err != nil {
		return 0, c.wrap(stmt, err)
	}
	return n, nil
}

func (c *core) exec(ctx context.Context, tx *sqlx.Tx, stmt dialect.Statement) (int64, error) {
	if stmt.Returning {
		var id int64
		if err := tx.QueryRowxContext(ctx, stmt.SQL, stmt.Args...).Scan(&id); err != nil {
			return 0, c.wrap(stmt, err)
		}
		return id, nil
	}

	res, err := tx.ExecContext(ctx, stmt.SQL, stmt.Args...)
	if err != nil {
		return 0, c.wrap(stmt, err)
	}

	var n int64
	if stmt.Kind == dialect.KindInsert {
		n, err = res.LastInsertId()
	} else {
		n, err = res.RowsAffected()
	}
	if err != nil {
		return 0, c.wrap(stmt, err)
	}
	return n, nil
}

func (c *core) wrap(stmt dialect.Statement, err error) error {
	return &ExecutionError{
		Op:      stmt.Kind.String(),
		Backend: c.dialect.Name,
		SQL:     stmt.SQL,
		Kind:    c.classify(err),
		Err:     err,
	}
}

func (c *core) classify(err error) error {
	if c.translator != nil {
		if kind := c.translator.Translate(err); kind != nil {
			return kind
		}
	}
	switch {
	case errors.Is(err, driver.ErrBadConn), errors.Is(err, sql.ErrConnDone):
		return ErrConnection
	}
	return gormKind(err)
}

// instrument runs fn inside a span and reports its outcome to the observer and the logger.
func instrument[T any](ctx context.Context, c *core, stmt dialect.Statement, size func(T) int64, fn func(context.Context) (T, error)) (T, error) {
	start := time.Now()

	var span trace.Span
	if c.tracer != nil {
		ctx, span = c.tracer.StartSpan(ctx, "unidb."+stmt.Kind.String())
		defer span.End()
	}

	v, err := fn(ctx)
	if err != nil && span != nil {
		c.tracer.RecordErrorOnSpan(span, err)
	}
	c.report(stmt, start, err, size(v))
	return v, err
}

func (c *core) report(stmt dialect.Statement, start time.Time, err error, size int64) {
	c.observeOperation(stmt.Kind.String(), stmt.Table, time.Since(start), err, size)
	if err != nil {
		c.logError("database operation failed", err, map[string]interface{}{
			"operation": stmt.Kind.String(),
			"backend":   c.dialect.Name,
			"table":     stmt.Table,
			"mode":      c.mode,
		})
	}
}

func rowCount(recs []record.Record) int64 { return int64(len(recs)) }

func scalar(n int64) int64 { return n }

func (c *core) logError(msg string, err error, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Error(msg, err, fields)
	}
}

func (c *core) logWarn(msg string, err error, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Warn(msg, err, fields)
	}
}

func (c *core) logDebug(msg string, fields map[string]interface{}) {
	if c.logger != nil {
		c.logger.Debug(msg, nil, fields)
	}
}

// countRecords is the result of a write run through Exec.
func countRecords(n int64) ([]record.Record, error) {
	return []record.Record{record.New([]string{"n"}, []interface{}{n})}, nil
}
