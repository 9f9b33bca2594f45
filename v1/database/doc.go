// Package database selects and wires the unidb executor of one backend from
// configuration.
//
// Config names the backend and carries its package configuration; the helper
// constructors fill in both:
//
//	cfg := database.SQLiteConfig(sqlite.Config{Path: ":memory:"})
//	exec, err := database.NewAsync(cfg)
//
// # Dependency injection
//
// FXModule builds the executor from a database.Config in the container and
// exposes it as *unidb.AsyncExecutor, unidb.AsyncDB and database.Client:
//
//	app := fx.New(
//	    logger.FXModule,
//	    database.FXModule,
//	    fx.Provide(func() database.Config {
//	        return database.PostgresConfig(postgres.Config{...})
//	    }),
//	    fx.Invoke(func(db unidb.AsyncDB) {
//	        id, err := db.DInsert(ctx, "foobar", unidb.Values{"value": "foo"}).Await(ctx)
//	    }),
//	)
//
// A unidb.Logger, observability.Observer or unidb.Tracer provided elsewhere in
// the container is attached to the executor. On start the module launches the
// connection monitor; on stop it closes the executor, which waits for in-flight
// operations.
//
// Application code that wants the blocking contract builds a SyncExecutor with
// NewSync instead; it holds a single connection and is not managed by the module.
package database
