package dialect

import (
	"sort"
	"strings"
)

// Kind identifies one of the five logical operations.
type Kind int

const (
	KindQuery Kind = iota
	KindSelect
	KindInsert
	KindUpdate
	KindDelete
)

func (k Kind) String() string {
	switch k {
	case KindQuery:
		return "query"
	case KindSelect:
		return "select"
	case KindInsert:
		return "insert"
	case KindUpdate:
		return "update"
	case KindDelete:
		return "delete"
	}
	return "unknown"
}

// IsWrite reports whether the operation modifies rows.
func (k Kind) IsWrite() bool {
	return k == KindInsert || k == KindUpdate || k == KindDelete
}

// Vars maps $name placeholders in filter or query text to their values.
type Vars map[string]interface{}

// Values maps column names to the values written by an insert or update.
type Values map[string]interface{}

func (v Values) columns() []string {
	cols := make([]string, 0, len(v))
	for c := range v {
		cols = append(cols, c)
	}
	sort.Strings(cols)
	return cols
}

// Operation is a logical, backend independent description of one database action.
// Operations are plain values; rendering one never touches a connection.
type Operation interface {
	Kind() Kind
	render(b *builder) error
}

// Query is a raw SQL statement. Unless Processed is set, $name placeholders in
// SQL are substituted from Vars. A processed query is passed to the driver as is,
// together with Args, and must already use the backend's placeholder style.
type Query struct {
	SQL       string
	Vars      Vars
	Processed bool
	Args      []interface{}
}

// Select reads rows from one or more tables.
//
// Tables are emitted verbatim, so they may carry aliases or joins. Limit and
// Offset are ignored when not positive.
type Select struct {
	Tables []string
	Vars   Vars
	What   string
	Where  string
	Order  string
	Group  string
	Limit  int
	Offset int
}

// Insert writes one row. Key overrides the dialect's key column for backends
// that report the new identifier through RETURNING.
type Insert struct {
	Table  string
	Values Values
	Key    string
}

// Update changes the rows of Tables matching Where.
type Update struct {
	Tables []string
	Where  string
	Vars   Vars
	Values Values
}

// Delete removes the rows of Table matching Where.
type Delete struct {
	Table string
	Where string
	Using string
	Vars  Vars
}

func (Query) Kind() Kind  { return KindQuery }
func (Select) Kind() Kind { return KindSelect }
func (Insert) Kind() Kind { return KindInsert }
func (Update) Kind() Kind { return KindUpdate }
func (Delete) Kind() Kind { return KindDelete }

// WhereEq builds an AND-ed equality filter for every entry of values, together
// with the Vars it references. Columns are emitted in sorted order.
//
//	where, vars := dialect.WhereEq(dialect.Values{"value": "foo"})
//	// where == "value = $value"
func WhereEq(values Values) (string, Vars) {
	cols := values.columns()
	parts := make([]string, 0, len(cols))
	vars := make(Vars, len(cols))
	for _, c := range cols {
		name := strings.ReplaceAll(c, ".", "_")
		parts = append(parts, c+" = $"+name)
		vars[name] = values[c]
	}
	return strings.Join(parts, " AND "), vars
}
