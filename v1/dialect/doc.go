// Package dialect renders logical database operations into backend specific SQL.
//
// The five operation types (Query, Select, Insert, Update and Delete) describe
// what should happen without committing to a SQL flavour. A Dialect turns one of
// them into a Statement: SQL text plus arguments in the backend's placeholder
// style. Rendering never talks to a database, which makes it usable for previews
// and tests.
//
// Filters and raw query text may reference variables as $name or ${name}. Each
// reference becomes a bound argument; slice values expand to a parenthesised
// list so they can be used with IN:
//
//	stmt, err := dialect.Postgres.Render(dialect.Select{
//		Tables: []string{"foobar"},
//		Where:  "id IN $ids AND value = $value",
//		Vars:   dialect.Vars{"ids": []int{1, 2}, "value": "foo"},
//	})
//	// stmt.SQL  == "SELECT * FROM foobar WHERE id IN ($1, $2) AND value = $3"
//	// stmt.Args == []interface{}{1, 2, "foo"}
//
// Use $$ for a literal dollar sign. Text inside quotes is copied unchanged.
//
// Table and column names given to Insert, Update and Delete must be plain
// identifiers. Update and Delete require a filter; pass "1=1" to affect every
// row. Failures are reported as *RenderError wrapping one of the Err* values.
package dialect
