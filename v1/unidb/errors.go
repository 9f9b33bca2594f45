package unidb

import (
	"errors"
	"fmt"

	"github.com/Aleph-Alpha/unidb/v1/dialect"
	"gorm.io/gorm"
)

// Common error types returned by the executors. Execution failures are
// delivered as *ExecutionError, which matches ErrExecution and, when the
// backend translator recognised the driver error, one of the more specific
// sentinels below.
var (
	// ErrExecution matches every failure reported by the driver while running a statement
	ErrExecution = errors.New("statement execution failed")

	// ErrUndefinedTable is returned when a statement references a table that does not exist
	ErrUndefinedTable = errors.New("undefined table")

	// ErrDuplicateKey is returned when an insert or update violates a unique constraint
	ErrDuplicateKey = errors.New("duplicate key violation")

	// ErrForeignKey is returned when an operation violates a foreign key constraint
	ErrForeignKey = errors.New("foreign key violation")

	// ErrNotNull is returned when a required column receives NULL
	ErrNotNull = errors.New("not null violation")

	// ErrCheckViolation is returned when a check constraint rejects a row
	ErrCheckViolation = errors.New("check constraint violation")

	// ErrInvalidField is returned when a statement references an unknown column
	ErrInvalidField = errors.New("invalid field")

	// ErrSerialization is returned for serialization failures and deadlocks
	ErrSerialization = errors.New("serialization failure")

	// ErrConnection is returned when the backend cannot be reached or the connection broke
	ErrConnection = errors.New("connection failure")

	// ErrPoolExhausted is returned when no pooled connection became available in time
	ErrPoolExhausted = errors.New("connection pool exhausted")

	// ErrClosed is returned by every operation issued after Close
	ErrClosed = errors.New("executor is closed")
)

// ExecutionError wraps a driver error raised while running a rendered statement.
type ExecutionError struct {
	Op      string
	Backend string
	SQL     string
	// Kind is the classified sentinel, nil when the driver error was not recognised.
	Kind error
	Err  error
}

func (e *ExecutionError) Error() string {
	if e.Kind != nil {
		return fmt.Sprintf("%s: %s failed (%v): %v", e.Backend, e.Op, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %s failed: %v", e.Backend, e.Op, e.Err)
}

// Unwrap exposes both the classified sentinel and the raw driver error.
func (e *ExecutionError) Unwrap() []error {
	if e.Kind != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Err}
}

func (e *ExecutionError) Is(target error) bool {
	return target == ErrExecution
}

// TranslateError converts GORM errors into the package sentinels.
// Errors it does not know are returned unchanged.
func TranslateError(err error) error {
	if kind := gormKind(err); kind != nil {
		return kind
	}
	return err
}

func gormKind(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKey
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return ErrCheckViolation
	case errors.Is(err, gorm.ErrInvalidField):
		return ErrInvalidField
	case errors.Is(err, gorm.ErrInvalidDB):
		return ErrConnection
	}
	return nil
}

// ErrorCategory groups errors by how a caller should react to them.
type ErrorCategory int

const (
	CategoryUnknown ErrorCategory = iota
	CategoryRender
	CategoryConstraint
	CategorySchema
	CategoryConcurrency
	CategoryConnection
	CategoryResource
	CategoryClosed
)

func (c ErrorCategory) String() string {
	switch c {
	case CategoryRender:
		return "render"
	case CategoryConstraint:
		return "constraint"
	case CategorySchema:
		return "schema"
	case CategoryConcurrency:
		return "concurrency"
	case CategoryConnection:
		return "connection"
	case CategoryResource:
		return "resource"
	case CategoryClosed:
		return "closed"
	}
	return "unknown"
}

// Category classifies err.
func Category(err error) ErrorCategory {
	switch {
	case err == nil:
		return CategoryUnknown
	case errors.Is(err, ErrClosed):
		return CategoryClosed
	case errors.Is(err, ErrPoolExhausted):
		return CategoryResource
	case errors.Is(err, ErrConnection):
		return CategoryConnection
	case errors.Is(err, ErrSerialization):
		return CategoryConcurrency
	case errors.Is(err, ErrDuplicateKey), errors.Is(err, ErrForeignKey),
		errors.Is(err, ErrNotNull), errors.Is(err, ErrCheckViolation):
		return CategoryConstraint
	case errors.Is(err, ErrUndefinedTable), errors.Is(err, ErrInvalidField):
		return CategorySchema
	case dialect.IsRenderError(err):
		return CategoryRender
	}
	return CategoryUnknown
}

// IsRetryable reports whether repeating the operation may succeed.
// Executors never retry on their own.
func IsRetryable(err error) bool {
	switch Category(err) {
	case CategoryResource, CategoryConcurrency, CategoryConnection:
		return true
	}
	return false
}

// IsTemporary reports whether err is caused by a transient condition of the backend.
func IsTemporary(err error) bool {
	switch Category(err) {
	case CategoryResource, CategoryConcurrency:
		return true
	}
	return false
}

// IsCritical reports whether err leaves the executor unusable.
func IsCritical(err error) bool {
	switch Category(err) {
	case CategoryConnection, CategoryClosed:
		return true
	}
	return false
}
