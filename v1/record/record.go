package record

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/go-viper/mapstructure/v2"
	json "github.com/goccy/go-json"
)

// Record is one result row: column names mapped to values, in the order the
// columns first appeared in the result set.
//
// The zero value is an empty record. Records are never bound to a connection;
// they are fully materialized before they are handed out.
type Record struct {
	columns []string
	values  []interface{}
	index   map[string]int
}

// New builds a record by pairing columns with values positionally.
// Extra values are ignored and missing values are nil. When a column name
// occurs more than once only its first occurrence is kept.
func New(columns []string, values []interface{}) Record {
	r := Record{
		columns: make([]string, 0, len(columns)),
		values:  make([]interface{}, 0, len(columns)),
		index:   make(map[string]int, len(columns)),
	}
	for i, name := range columns {
		if _, dup := r.index[name]; dup {
			continue
		}
		var v interface{}
		if i < len(values) {
			v = values[i]
		}
		r.index[name] = len(r.columns)
		r.columns = append(r.columns, name)
		r.values = append(r.values, v)
	}
	return r
}

// Columns returns the column names in result order.
func (r Record) Columns() []string {
	out := make([]string, len(r.columns))
	copy(out, r.columns)
	return out
}

// Len returns the number of columns.
func (r Record) Len() int {
	return len(r.columns)
}

// Get returns the value of the named column and whether the column exists.
func (r Record) Get(name string) (interface{}, bool) {
	i, ok := r.index[name]
	if !ok {
		return nil, false
	}
	return r.values[i], true
}

// Value returns the value of the named column, or nil if there is no such column.
func (r Record) Value(name string) interface{} {
	v, _ := r.Get(name)
	return v
}

// String returns the named column formatted as a string.
// NULL and missing columns yield the empty string.
func (r Record) String(name string) string {
	switch v := r.Value(name).(type) {
	case nil:
		return ""
	case string:
		return v
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

// Int64 returns the named column as an int64.
// Values that cannot be represented as an integer yield 0.
func (r Record) Int64(name string) int64 {
	switch v := r.Value(name).(type) {
	case int64:
		return v
	case int:
		return int64(v)
	case int32:
		return int64(v)
	case int16:
		return int64(v)
	case int8:
		return int64(v)
	case uint64:
		return int64(v)
	case uint32:
		return int64(v)
	case float64:
		return int64(v)
	case float32:
		return int64(v)
	case string:
		n, _ := strconv.ParseInt(v, 10, 64)
		return n
	case []byte:
		n, _ := strconv.ParseInt(string(v), 10, 64)
		return n
	}
	return 0
}

// Map returns a copy of the record as a plain map. Column order is lost.
func (r Record) Map() map[string]interface{} {
	m := make(map[string]interface{}, len(r.columns))
	for i, name := range r.columns {
		m[name] = r.values[i]
	}
	return m
}

// Decode copies the record into dest, which must be a pointer to a struct or map.
// Struct fields are matched by their `db` tag, falling back to the field name.
func (r Record) Decode(dest interface{}) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		TagName:          "db",
		WeaklyTypedInput: true,
		Result:           dest,
	})
	if err != nil {
		return fmt.Errorf("failed to create record decoder: %w", err)
	}
	if err := decoder.Decode(r.Map()); err != nil {
		return fmt.Errorf("failed to decode record: %w", err)
	}
	return nil
}

// MarshalJSON encodes the record as a JSON object with keys in column order.
func (r Record) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, name := range r.columns {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(name)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(r.values[i])
		if err != nil {
			return nil, fmt.Errorf("failed to encode column %q: %w", name, err)
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
