// Package record turns driver result sets into fully materialized rows.
//
// A Record keeps column names in the order they first appear in the result
// and offers field access by name. Collect drains a live *sqlx.Rows cursor into
// a []Record before the connection that produced it is released, so callers
// never hold a lazily evaluated cursor.
//
//	recs, err := record.Collect(rows)
//	for _, r := range recs {
//		fmt.Println(r.Int64("id"), r.String("value"))
//	}
//
// Records encode to JSON objects with keys in column order and can be decoded
// into structs tagged with `db`:
//
//	var row struct {
//		ID    int64  `db:"id"`
//		Value string `db:"value"`
//	}
//	err := recs[0].Decode(&row)
package record
