package unidb

import (
	"context"

	"github.com/Aleph-Alpha/unidb/v1/dialect"
	"github.com/Aleph-Alpha/unidb/v1/future"
	"github.com/Aleph-Alpha/unidb/v1/record"
	"go.opentelemetry.io/otel/trace"
)

// Vars maps $name placeholders in filters and raw queries to values.
type Vars = dialect.Vars

// Values maps column names to the values written by inserts and updates.
type Values = dialect.Values

// SelectOptions holds the optional clauses of a select. Zero values are omitted.
type SelectOptions struct {
	Vars   Vars
	What   string
	Where  string
	Order  string
	Group  string
	Limit  int
	Offset int
}

func (o SelectOptions) operation(tables string) dialect.Select {
	return dialect.Select{
		Tables: []string{tables},
		Vars:   o.Vars,
		What:   o.What,
		Where:  o.Where,
		Order:  o.Order,
		Group:  o.Group,
		Limit:  o.Limit,
		Offset: o.Offset,
	}
}

// AsyncDB is the contract whose operations return immediately with a handle
// that is resolved once the statement has run.
//
// Insert resolves to the identifier of the new row; Update and Delete resolve
// to the number of affected rows.
type AsyncDB interface {
	DQuery(ctx context.Context, sql string, vars Vars) *future.Future[[]record.Record]
	DSelect(ctx context.Context, tables string, opts SelectOptions) *future.Future[[]record.Record]
	DInsert(ctx context.Context, table string, values Values) *future.Future[int64]
	DUpdate(ctx context.Context, tables, where string, vars Vars, values Values) *future.Future[int64]
	DDelete(ctx context.Context, table, where string, vars Vars) *future.Future[int64]
}

// SyncDB is the contract whose operations block until the statement has run.
type SyncDB interface {
	Query(ctx context.Context, sql string, vars Vars) ([]record.Record, error)
	Select(ctx context.Context, tables string, opts SelectOptions) ([]record.Record, error)
	Insert(ctx context.Context, table string, values Values) (int64, error)
	Update(ctx context.Context, tables, where string, vars Vars, values Values) (int64, error)
	Delete(ctx context.Context, table, where string, vars Vars) (int64, error)
}

// ErrorTranslator classifies backend driver errors. Translate returns one of
// the package sentinels, or nil when the error is not recognised.
type ErrorTranslator interface {
	Translate(err error) error
}

// TranslatorFunc adapts a function to ErrorTranslator.
type TranslatorFunc func(err error) error

func (f TranslatorFunc) Translate(err error) error {
	return f(err)
}

// Logger is the logging surface used by the executors.
// *logger.LoggerClient from v1/logger satisfies it.
//
//go:generate mockgen -destination=mock_logger.go -package=unidb github.com/Aleph-Alpha/unidb/v1/unidb Logger
type Logger interface {
	Debug(msg string, err error, fields ...map[string]interface{})
	Info(msg string, err error, fields ...map[string]interface{})
	Warn(msg string, err error, fields ...map[string]interface{})
	Error(msg string, err error, fields ...map[string]interface{})
	Fatal(msg string, err error, fields ...map[string]interface{})
}

// Tracer starts spans around executed statements.
// *tracer.Tracer from v1/tracer satisfies it.
type Tracer interface {
	StartSpan(ctx context.Context, name string) (context.Context, trace.Span)
	RecordErrorOnSpan(span trace.Span, err error)
}
