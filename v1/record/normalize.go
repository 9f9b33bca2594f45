package record

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
)

// Normalize pairs every raw row with the column names and returns the records
// in row order. The result is never nil.
func Normalize(columns []string, rows [][]interface{}) []Record {
	out := make([]Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, New(columns, row))
	}
	return out
}

// Collect drains rows into a slice of records and closes them.
// The caller must not use rows afterwards; the records stay valid after the
// originating connection has gone back to the pool.
//
// Drivers that deliver text as []byte (MySQL does) get it converted to string
// for columns whose database type is textual. Binary columns stay []byte.
func Collect(rows *sqlx.Rows) ([]Record, error) {
	defer rows.Close()

	columns, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("failed to read result columns: %w", err)
	}

	textual := make([]bool, len(columns))
	if types, err := rows.ColumnTypes(); err == nil {
		for i, ct := range types {
			if i < len(textual) {
				textual[i] = isTextType(ct.DatabaseTypeName())
			}
		}
	}

	var raw [][]interface{}
	for rows.Next() {
		values, err := rows.SliceScan()
		if err != nil {
			return nil, fmt.Errorf("failed to scan row: %w", err)
		}
		for i, v := range values {
			if b, ok := v.([]byte); ok && textual[i] {
				values[i] = string(b)
			}
		}
		raw = append(raw, values)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return Normalize(columns, raw), nil
}

func isTextType(name string) bool {
	name = strings.ToUpper(name)
	if strings.Contains(name, "CHAR") || strings.Contains(name, "TEXT") {
		return true
	}
	switch name {
	case "JSON", "ENUM", "SET", "DECIMAL", "NUMERIC", "UUID":
		return true
	}
	return false
}
