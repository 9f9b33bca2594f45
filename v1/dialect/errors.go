package dialect

import (
	"errors"
	"fmt"
)

// Reasons a logical operation cannot be turned into SQL.
// They are always delivered wrapped in a *RenderError.
var (
	// ErrMissingVar is returned when a $name placeholder has no entry in Vars.
	ErrMissingVar = errors.New("substitution variable not provided")

	// ErrEmptyList is returned when a list-valued variable has no elements.
	ErrEmptyList = errors.New("list variable is empty")

	// ErrInvalidIdentifier is returned for table or column names that are not plain identifiers.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrNoValues is returned by updates without column values.
	ErrNoValues = errors.New("no column values")

	// ErrMissingWhere is returned by updates and deletes without a filter.
	// Use "1=1" to target every row.
	ErrMissingWhere = errors.New("where clause is required")

	// ErrMissingTable is returned when no target table is given.
	ErrMissingTable = errors.New("table name is required")

	// ErrUnknownOperation is returned for operation types the renderer does not know.
	ErrUnknownOperation = errors.New("unknown operation")
)

// RenderError reports that an operation could not be rendered.
// It is produced before any connection is touched.
type RenderError struct {
	Op  Kind
	Err error
}

func (e *RenderError) Error() string {
	return fmt.Sprintf("dialect: cannot render %s: %v", e.Op, e.Err)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// IsRenderError reports whether err originates from rendering.
func IsRenderError(err error) bool {
	var re *RenderError
	return errors.As(err, &re)
}

func renderErr(op Kind, reason error, detail string) error {
	if detail == "" {
		return &RenderError{Op: op, Err: reason}
	}
	return &RenderError{Op: op, Err: fmt.Errorf("%w: %s", reason, detail)}
}
