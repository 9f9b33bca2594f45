package dialect

import (
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
)

// Dialect describes how a backend spells the parts of a statement that differ
// between SQL engines.
type Dialect struct {
	// Name is the short backend name used in logs and errors.
	Name string

	// BindType is one of sqlx.QUESTION, sqlx.DOLLAR or sqlx.NAMED.
	BindType int

	// Returning makes inserts report the new identifier via RETURNING KeyColumn
	// instead of the driver's LastInsertId.
	Returning bool
	KeyColumn string

	// DefaultValues is the clause used for an insert without columns.
	DefaultValues string

	// UnboundedLimit is emitted as LIMIT when only an offset is given, for
	// engines that reject OFFSET without LIMIT. Empty means not needed.
	UnboundedLimit string
}

var (
	SQLite = Dialect{
		Name:           "sqlite",
		BindType:       sqlx.QUESTION,
		DefaultValues:  "DEFAULT VALUES",
		UnboundedLimit: "-1",
	}

	Postgres = Dialect{
		Name:          "postgres",
		BindType:      sqlx.DOLLAR,
		Returning:     true,
		KeyColumn:     "id",
		DefaultValues: "DEFAULT VALUES",
	}

	MariaDB = Dialect{
		Name:           "mariadb",
		BindType:       sqlx.QUESTION,
		DefaultValues:  "() VALUES ()",
		UnboundedLimit: "18446744073709551615",
	}

	DuckDB = Dialect{
		Name:          "duckdb",
		BindType:      sqlx.QUESTION,
		Returning:     true,
		KeyColumn:     "id",
		DefaultValues: "DEFAULT VALUES",
	}
)

// WithBindType returns a copy of d using the given sqlx bind type.
func (d Dialect) WithBindType(bindType int) Dialect {
	d.BindType = bindType
	return d
}

// WithKeyColumn returns a copy of d reporting inserted identifiers from column.
func (d Dialect) WithKeyColumn(column string) Dialect {
	d.KeyColumn = column
	return d
}

// Placeholder returns the marker for the n-th (1-based) bound argument.
func (d Dialect) Placeholder(n int) string {
	switch d.BindType {
	case sqlx.DOLLAR:
		return "$" + strconv.Itoa(n)
	case sqlx.NAMED:
		return ":arg" + strconv.Itoa(n)
	case sqlx.AT:
		return "@p" + strconv.Itoa(n)
	default:
		return "?"
	}
}

// Statement is the backend specific rendering of an Operation.
type Statement struct {
	Kind Kind
	// Table is the first target table, empty for raw queries.
	Table string
	SQL   string
	Args  []interface{}
	// Returning is set when the statement yields the inserted key as a row.
	Returning bool
}

func (s Statement) String() string {
	return fmt.Sprintf("%s %v", s.SQL, s.Args)
}

// Render turns op into SQL text and positional arguments. It is pure: no
// connection is needed and no state is kept between calls.
func (d Dialect) Render(op Operation) (Statement, error) {
	if op == nil {
		return Statement{}, renderErr(KindQuery, ErrUnknownOperation, "nil operation")
	}
	b := &builder{d: d, stmt: Statement{Kind: op.Kind()}}
	if err := op.render(b); err != nil {
		return Statement{}, err
	}
	b.stmt.SQL = b.sb.String()
	b.stmt.Args = b.args
	return b.stmt, nil
}
