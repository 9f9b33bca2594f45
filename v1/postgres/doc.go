// Package postgres builds unidb executors for PostgreSQL.
//
// Connections are opened through GORM's postgres dialector (pgx underneath)
// and the resulting pool is driven with sqlx. Statements use $1..$n
// placeholders and inserts report the new key with RETURNING, so the target
// table needs a key column (KeyColumn, "id" by default):
//
//	exec, err := postgres.NewAsync(postgres.Config{
//		Connection: postgres.Connection{
//			Host:     "localhost",
//			Port:     "5432",
//			User:     "postgres",
//			Password: "secret",
//			DbName:   "app",
//		},
//	})
//	if err != nil {
//		return err
//	}
//	defer exec.Close()
//
//	id, err := exec.DInsert(ctx, "foobar", unidb.Values{"value": "foo"}).Await(ctx)
//
// Driver errors are classified by SQLSTATE; a missing table matches
// unidb.ErrUndefinedTable and the raw *pgconn.PgError remains reachable
// through errors.As.
package postgres
