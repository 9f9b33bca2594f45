package dialect

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderSelect(t *testing.T) {
	tests := []struct {
		name     string
		dialect  Dialect
		op       Select
		wantSQL  string
		wantArgs []interface{}
	}{
		{
			name:    "all rows",
			dialect: SQLite,
			op:      Select{Tables: []string{"foobar"}},
			wantSQL: "SELECT * FROM foobar",
		},
		{
			name:     "filter with vars",
			dialect:  SQLite,
			op:       Select{Tables: []string{"foobar"}, Where: "value = $value", Vars: Vars{"value": "foo"}},
			wantSQL:  "SELECT * FROM foobar WHERE value = ?",
			wantArgs: []interface{}{"foo"},
		},
		{
			name:    "dollar placeholders",
			dialect: Postgres,
			op: Select{
				Tables: []string{"foobar"},
				What:   "id, value",
				Where:  "id > ${min} AND value <> $v",
				Vars:   Vars{"min": 3, "v": "x"},
				Order:  "id DESC",
				Limit:  10,
				Offset: 5,
			},
			wantSQL:  "SELECT id, value FROM foobar WHERE id > $1 AND value <> $2 ORDER BY id DESC LIMIT 10 OFFSET 5",
			wantArgs: []interface{}{3, "x"},
		},
		{
			name:    "group by",
			dialect: MariaDB,
			op:      Select{Tables: []string{"foobar"}, What: "value, count(*)", Group: "value"},
			wantSQL: "SELECT value, count(*) FROM foobar GROUP BY value",
		},
		{
			name:    "offset without limit on sqlite",
			dialect: SQLite,
			op:      Select{Tables: []string{"foobar"}, Offset: 2},
			wantSQL: "SELECT * FROM foobar LIMIT -1 OFFSET 2",
		},
		{
			name:    "offset without limit on postgres",
			dialect: Postgres,
			op:      Select{Tables: []string{"foobar"}, Offset: 2},
			wantSQL: "SELECT * FROM foobar OFFSET 2",
		},
		{
			name:    "zero limit is omitted",
			dialect: DuckDB,
			op:      Select{Tables: []string{"foobar"}, Limit: 0},
			wantSQL: "SELECT * FROM foobar",
		},
		{
			name:     "list expansion",
			dialect:  Postgres,
			op:       Select{Tables: []string{"foobar"}, Where: "id IN $ids", Vars: Vars{"ids": []int64{1, 2, 3}}},
			wantSQL:  "SELECT * FROM foobar WHERE id IN ($1, $2, $3)",
			wantArgs: []interface{}{int64(1), int64(2), int64(3)},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stmt, err := tt.dialect.Render(tt.op)
			require.NoError(t, err)
			assert.Equal(t, tt.wantSQL, stmt.SQL)
			assert.Equal(t, tt.wantArgs, stmt.Args)
			assert.Equal(t, KindSelect, stmt.Kind)
			assert.Equal(t, "foobar", stmt.Table)
		})
	}
}

func TestRenderInsert(t *testing.T) {
	stmt, err := SQLite.Render(Insert{Table: "foobar", Values: Values{"value": "foo", "active": true}})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO foobar (active, value) VALUES (?, ?)", stmt.SQL)
	assert.Equal(t, []interface{}{true, "foo"}, stmt.Args)
	assert.False(t, stmt.Returning)

	stmt, err = Postgres.Render(Insert{Table: "foobar", Values: Values{"value": "foo"}})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO foobar (value) VALUES ($1) RETURNING id", stmt.SQL)
	assert.True(t, stmt.Returning)

	stmt, err = DuckDB.Render(Insert{Table: "foobar", Values: Values{"value": "foo"}, Key: "rowid_"})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO foobar (value) VALUES (?) RETURNING rowid_", stmt.SQL)
}

func TestRenderInsertWithoutValues(t *testing.T) {
	stmt, err := SQLite.Render(Insert{Table: "foobar"})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO foobar DEFAULT VALUES", stmt.SQL)
	assert.Empty(t, stmt.Args)

	stmt, err = MariaDB.Render(Insert{Table: "foobar"})
	require.NoError(t, err)
	assert.Equal(t, "INSERT INTO foobar () VALUES ()", stmt.SQL)
}

func TestRenderUpdate(t *testing.T) {
	stmt, err := Postgres.Render(Update{
		Tables: []string{"foobar"},
		Where:  "value = $old",
		Vars:   Vars{"old": "foo"},
		Values: Values{"value": "bar"},
	})
	require.NoError(t, err)
	assert.Equal(t, "UPDATE foobar SET value = $1 WHERE value = $2", stmt.SQL)
	assert.Equal(t, []interface{}{"bar", "foo"}, stmt.Args)
	assert.Equal(t, KindUpdate, stmt.Kind)
}

func TestRenderDelete(t *testing.T) {
	stmt, err := SQLite.Render(Delete{Table: "foobar", Where: "1=1"})
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM foobar WHERE 1=1", stmt.SQL)

	stmt, err = Postgres.Render(Delete{Table: "foobar", Using: "other", Where: "foobar.id = other.id AND other.tag = $tag", Vars: Vars{"tag": "x"}})
	require.NoError(t, err)
	assert.Equal(t, "DELETE FROM foobar USING other WHERE foobar.id = other.id AND other.tag = $1", stmt.SQL)
}

func TestRenderQuery(t *testing.T) {
	stmt, err := SQLite.Render(Query{SQL: "SELECT '$skip', $a, $$, $1 FROM t", Vars: Vars{"a": 1}})
	require.NoError(t, err)
	assert.Equal(t, "SELECT '$skip', ?, $, $1 FROM t", stmt.SQL)
	assert.Equal(t, []interface{}{1}, stmt.Args)

	stmt, err = Postgres.Render(Query{SQL: "SELECT * FROM t WHERE id = $1", Processed: true, Args: []interface{}{7}})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE id = $1", stmt.SQL)
	assert.Equal(t, []interface{}{7}, stmt.Args)
	assert.Equal(t, "", stmt.Table)
}

func TestRenderBytesAreNotExpanded(t *testing.T) {
	stmt, err := SQLite.Render(Query{SQL: "SELECT $b", Vars: Vars{"b": []byte("xy")}})
	require.NoError(t, err)
	assert.Equal(t, "SELECT ?", stmt.SQL)
	assert.Equal(t, []interface{}{[]byte("xy")}, stmt.Args)
}

func TestRenderValuerIsNotExpanded(t *testing.T) {
	ids := pq.Int64Array{1, 2, 3}
	stmt, err := Postgres.Render(Select{Tables: []string{"foobar"}, Where: "id = ANY($ids)", Vars: Vars{"ids": ids}})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM foobar WHERE id = ANY($1)", stmt.SQL)
	assert.Equal(t, []interface{}{ids}, stmt.Args)

	// plain slices still expand
	stmt, err = Postgres.Render(Select{Tables: []string{"foobar"}, Where: "id IN $ids", Vars: Vars{"ids": []int64{1, 2}}})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM foobar WHERE id IN ($1, $2)", stmt.SQL)
}

func TestRenderNamedBinding(t *testing.T) {
	d := SQLite.WithBindType(sqlx.NAMED)
	stmt, err := d.Render(Select{Tables: []string{"foobar"}, Where: "value = $v", Vars: Vars{"v": "foo"}})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM foobar WHERE value = :arg1", stmt.SQL)
	assert.Equal(t, []interface{}{sql.Named("arg1", "foo")}, stmt.Args)
}

func TestRenderErrors(t *testing.T) {
	tests := []struct {
		name string
		op   Operation
		want error
	}{
		{"missing var", Select{Tables: []string{"foobar"}, Where: "value = $value"}, ErrMissingVar},
		{"empty list", Select{Tables: []string{"foobar"}, Where: "id IN $ids", Vars: Vars{"ids": []int{}}}, ErrEmptyList},
		{"bad table", Insert{Table: "foo; DROP TABLE x", Values: Values{"a": 1}}, ErrInvalidIdentifier},
		{"bad column", Insert{Table: "foobar", Values: Values{"a b": 1}}, ErrInvalidIdentifier},
		{"update without values", Update{Tables: []string{"foobar"}, Where: "1=1"}, ErrNoValues},
		{"update without where", Update{Tables: []string{"foobar"}, Values: Values{"a": 1}}, ErrMissingWhere},
		{"delete without where", Delete{Table: "foobar", Where: "  "}, ErrMissingWhere},
		{"select without table", Select{}, ErrMissingTable},
		{"select blank table", Select{Tables: []string{" "}}, ErrMissingTable},
		{"select blank table in list", Select{Tables: []string{"foobar", ""}}, ErrMissingTable},
		{"nil operation", nil, ErrUnknownOperation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := SQLite.Render(tt.op)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.True(t, IsRenderError(err))
		})
	}
}

func TestRenderIsDeterministic(t *testing.T) {
	op := Insert{Table: "foobar", Values: Values{"c": 3, "a": 1, "b": 2}}
	first, err := Postgres.Render(op)
	require.NoError(t, err)
	for i := 0; i < 20; i++ {
		again, err := Postgres.Render(op)
		require.NoError(t, err)
		assert.Equal(t, first, again)
	}
}

func TestWhereEq(t *testing.T) {
	where, vars := WhereEq(Values{"value": "foo", "t.id": 1})
	assert.Equal(t, "t.id = $t_id AND value = $value", where)
	assert.Equal(t, Vars{"t_id": 1, "value": "foo"}, vars)

	stmt, err := SQLite.Render(Select{Tables: []string{"t"}, Where: where, Vars: vars})
	require.NoError(t, err)
	assert.Equal(t, "SELECT * FROM t WHERE t.id = ? AND value = ?", stmt.SQL)
}

func TestPlaceholder(t *testing.T) {
	assert.Equal(t, "?", SQLite.Placeholder(3))
	assert.Equal(t, "$3", Postgres.Placeholder(3))
	assert.Equal(t, ":arg3", SQLite.WithBindType(sqlx.NAMED).Placeholder(3))
	assert.Equal(t, "pk", Postgres.WithKeyColumn("pk").KeyColumn)
}
