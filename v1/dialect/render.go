package dialect

import (
	"database/sql"
	"database/sql/driver"
	"reflect"
	"regexp"
	"strconv"
	"strings"

	"github.com/jmoiron/sqlx"
)

var identifierPattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_$]*(\.[A-Za-z_][A-Za-z0-9_$]*)*$`)

// ValidIdentifier reports whether name can be used as a table or column name.
func ValidIdentifier(name string) bool {
	return identifierPattern.MatchString(name)
}

type builder struct {
	d    Dialect
	sb   strings.Builder
	args []interface{}
	stmt Statement
}

func (b *builder) write(parts ...string) {
	for _, p := range parts {
		b.sb.WriteString(p)
	}
}

// bind records v as the next argument and returns its placeholder.
func (b *builder) bind(v interface{}) string {
	n := len(b.args) + 1
	if b.d.BindType == sqlx.NAMED {
		b.args = append(b.args, sql.Named("arg"+strconv.Itoa(n), v))
	} else {
		b.args = append(b.args, v)
	}
	return b.d.Placeholder(n)
}

func (b *builder) identifier(name string) error {
	if !ValidIdentifier(name) {
		return renderErr(b.stmt.Kind, ErrInvalidIdentifier, strconv.Quote(name))
	}
	return nil
}

// reparam copies text into the statement, replacing $name and ${name} with
// bound placeholders. "$$" yields a literal dollar, a dollar followed by a digit
// is kept as is, and nothing inside quotes is touched.
func (b *builder) reparam(text string, vars Vars) error {
	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '\'' || c == '"':
			end := strings.IndexByte(text[i+1:], c)
			if end < 0 {
				b.write(text[i:])
				return nil
			}
			b.write(text[i : i+end+2])
			i += end + 2
		case c == '$' && i+1 < len(text) && text[i+1] == '$':
			b.write("$")
			i += 2
		case c == '$' && i+1 < len(text) && text[i+1] == '{':
			end := strings.IndexByte(text[i+2:], '}')
			if end < 0 {
				b.write(text[i:])
				return nil
			}
			if err := b.substitute(text[i+2:i+2+end], vars); err != nil {
				return err
			}
			i += end + 3
		case c == '$' && i+1 < len(text) && isNameStart(text[i+1]):
			j := i + 1
			for j < len(text) && isNamePart(text[j]) {
				j++
			}
			if err := b.substitute(text[i+1:j], vars); err != nil {
				return err
			}
			i = j
		default:
			b.sb.WriteByte(c)
			i++
		}
	}
	return nil
}

func (b *builder) substitute(name string, vars Vars) error {
	v, ok := vars[name]
	if !ok {
		return renderErr(b.stmt.Kind, ErrMissingVar, name)
	}

	// Valuers such as pq.Int64Array bind as one argument.
	if _, ok := v.(driver.Valuer); ok {
		b.write(b.bind(v))
		return nil
	}

	rv := reflect.ValueOf(v)
	if v == nil || (rv.Kind() != reflect.Slice && rv.Kind() != reflect.Array) || rv.Type().Elem().Kind() == reflect.Uint8 {
		b.write(b.bind(v))
		return nil
	}

	if rv.Len() == 0 {
		return renderErr(b.stmt.Kind, ErrEmptyList, name)
	}
	b.write("(")
	for i := 0; i < rv.Len(); i++ {
		if i > 0 {
			b.write(", ")
		}
		b.write(b.bind(rv.Index(i).Interface()))
	}
	b.write(")")
	return nil
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isNamePart(c byte) bool {
	return isNameStart(c) || (c >= '0' && c <= '9')
}

func (b *builder) where(where string, vars Vars) error {
	if strings.TrimSpace(where) == "" {
		return nil
	}
	b.write(" WHERE ")
	return b.reparam(where, vars)
}

func (q Query) render(b *builder) error {
	if q.Processed {
		b.write(q.SQL)
		b.args = append(b.args, q.Args...)
		return nil
	}
	return b.reparam(q.SQL, q.Vars)
}

func (s Select) render(b *builder) error {
	if len(s.Tables) == 0 {
		return renderErr(KindSelect, ErrMissingTable, "")
	}
	for _, t := range s.Tables {
		if strings.TrimSpace(t) == "" {
			return renderErr(KindSelect, ErrMissingTable, "")
		}
	}
	b.stmt.Table = s.Tables[0]

	what := s.What
	if strings.TrimSpace(what) == "" {
		what = "*"
	}
	b.write("SELECT ", what, " FROM ", strings.Join(s.Tables, ", "))

	if err := b.where(s.Where, s.Vars); err != nil {
		return err
	}
	if s.Group != "" {
		b.write(" GROUP BY ", s.Group)
	}
	if s.Order != "" {
		b.write(" ORDER BY ", s.Order)
	}
	switch {
	case s.Limit > 0:
		b.write(" LIMIT ", strconv.Itoa(s.Limit))
	case s.Offset > 0 && b.d.UnboundedLimit != "":
		b.write(" LIMIT ", b.d.UnboundedLimit)
	}
	if s.Offset > 0 {
		b.write(" OFFSET ", strconv.Itoa(s.Offset))
	}
	return nil
}

func (ins Insert) render(b *builder) error {
	if ins.Table == "" {
		return renderErr(KindInsert, ErrMissingTable, "")
	}
	if err := b.identifier(ins.Table); err != nil {
		return err
	}
	b.stmt.Table = ins.Table

	b.write("INSERT INTO ", ins.Table)
	if len(ins.Values) == 0 {
		b.write(" ", b.d.DefaultValues)
	} else {
		cols := ins.Values.columns()
		marks := make([]string, 0, len(cols))
		for _, c := range cols {
			if err := b.identifier(c); err != nil {
				return err
			}
			marks = append(marks, b.bind(ins.Values[c]))
		}
		b.write(" (", strings.Join(cols, ", "), ") VALUES (", strings.Join(marks, ", "), ")")
	}

	key := ins.Key
	if key == "" {
		key = b.d.KeyColumn
	}
	if b.d.Returning && key != "" {
		if err := b.identifier(key); err != nil {
			return err
		}
		b.write(" RETURNING ", key)
		b.stmt.Returning = true
	}
	return nil
}

func (u Update) render(b *builder) error {
	if len(u.Tables) == 0 {
		return renderErr(KindUpdate, ErrMissingTable, "")
	}
	for _, t := range u.Tables {
		if err := b.identifier(t); err != nil {
			return err
		}
	}
	if len(u.Values) == 0 {
		return renderErr(KindUpdate, ErrNoValues, "")
	}
	if strings.TrimSpace(u.Where) == "" {
		return renderErr(KindUpdate, ErrMissingWhere, "")
	}
	b.stmt.Table = u.Tables[0]

	b.write("UPDATE ", strings.Join(u.Tables, ", "), " SET ")
	for i, c := range u.Values.columns() {
		if err := b.identifier(c); err != nil {
			return err
		}
		if i > 0 {
			b.write(", ")
		}
		b.write(c, " = ", b.bind(u.Values[c]))
	}
	return b.where(u.Where, u.Vars)
}

func (d Delete) render(b *builder) error {
	if d.Table == "" {
		return renderErr(KindDelete, ErrMissingTable, "")
	}
	if err := b.identifier(d.Table); err != nil {
		return err
	}
	if strings.TrimSpace(d.Where) == "" {
		return renderErr(KindDelete, ErrMissingWhere, "")
	}
	b.stmt.Table = d.Table

	b.write("DELETE FROM ", d.Table)
	if d.Using != "" {
		b.write(" USING ", d.Using)
	}
	return b.where(d.Where, d.Vars)
}
