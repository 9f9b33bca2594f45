// Command unidb runs one SQL statement against a configured backend and
// prints the resulting rows as JSON lines.
//
// Connection settings come from the environment (UNIDB_*, SQLITE_*, DUCKDB_*,
// POSTGRES_*, MARIADB_*, POOL_*, ZAP_LOGGER_LEVEL, TRACER_*):
//
//	SQLITE_PATH=app.db unidb -backend sqlite 'SELECT * FROM foobar WHERE value = $v' v=foo
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/Aleph-Alpha/unidb/v1/database"
	"github.com/Aleph-Alpha/unidb/v1/dialect"
	"github.com/Aleph-Alpha/unidb/v1/duckdb"
	"github.com/Aleph-Alpha/unidb/v1/logger"
	"github.com/Aleph-Alpha/unidb/v1/mariadb"
	"github.com/Aleph-Alpha/unidb/v1/postgres"
	"github.com/Aleph-Alpha/unidb/v1/record"
	"github.com/Aleph-Alpha/unidb/v1/sqlite"
	"github.com/Aleph-Alpha/unidb/v1/tracer"
	"github.com/Aleph-Alpha/unidb/v1/unidb"
	"github.com/goccy/go-json"
	"github.com/kelseyhightower/envconfig"
	"go.uber.org/fx"
)

// appConfig is read from UNIDB_* variables.
type appConfig struct {
	Backend string        `envconfig:"BACKEND" default:"sqlite"`
	Timeout time.Duration `envconfig:"TIMEOUT" default:"30s"`
}

func main() {
	var cfg appConfig
	if err := envconfig.Process("unidb", &cfg); err != nil {
		log.Fatal(err)
	}

	backend := flag.String("backend", cfg.Backend, "sqlite, duckdb, postgres or mariadb")
	syncMode := flag.Bool("sync", false, "use the single connection executor")
	renderOnly := flag.Bool("render", false, "print the rendered statement instead of executing it")
	flag.Parse()

	if flag.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "usage: unidb [-backend name] [-sync] [-render] QUERY [name=value ...]")
		os.Exit(2)
	}
	query := flag.Arg(0)
	vars := parseVars(flag.Args()[1:])

	dbCfg, err := loadDatabaseConfig(*backend)
	if err != nil {
		log.Fatal(err)
	}

	if *renderOnly {
		if err := render(os.Stdout, dbCfg, query, vars); err != nil {
			log.Fatal(err)
		}
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Timeout)
	defer cancel()

	if *syncMode {
		err = runSync(ctx, dbCfg, query, vars)
	} else {
		err = runAsync(ctx, dbCfg, query, vars)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// parseVars turns name=value arguments into substitution variables.
func parseVars(args []string) unidb.Vars {
	vars := unidb.Vars{}
	for _, arg := range args {
		name, value, ok := strings.Cut(arg, "=")
		if !ok {
			log.Fatalf("variable %q is not of the form name=value", arg)
		}
		vars[name] = value
	}
	return vars
}

func loadDatabaseConfig(backend string) (database.Config, error) {
	switch backend {
	case database.TypeSQLite:
		var c sqlite.Config
		if err := envconfig.Process("", &c); err != nil {
			return database.Config{}, err
		}
		return database.SQLiteConfig(c), nil
	case database.TypeDuckDB:
		var c duckdb.Config
		if err := envconfig.Process("", &c); err != nil {
			return database.Config{}, err
		}
		return database.DuckDBConfig(c), nil
	case database.TypePostgres:
		var c postgres.Config
		if err := envconfig.Process("", &c); err != nil {
			return database.Config{}, err
		}
		return database.PostgresConfig(c), nil
	case database.TypeMariaDB:
		var c mariadb.Config
		if err := envconfig.Process("", &c); err != nil {
			return database.Config{}, err
		}
		return database.MariaDBConfig(c), nil
	}
	return database.Config{}, fmt.Errorf("unsupported backend %q", backend)
}

func render(w io.Writer, cfg database.Config, query string, vars unidb.Vars) error {
	var d dialect.Dialect
	switch cfg.Type {
	case database.TypeSQLite:
		d = sqlite.Dialect
	case database.TypeDuckDB:
		d = duckdb.Dialect
	case database.TypePostgres:
		d = postgres.Dialect
	default:
		d = mariadb.Dialect
	}

	stmt, err := d.Render(dialect.Query{SQL: query, Vars: vars})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, stmt.String())
	return err
}

func runAsync(ctx context.Context, cfg database.Config, query string, vars unidb.Vars) error {
	var db unidb.AsyncDB
	app := fx.New(
		fx.NopLogger,
		logger.FXModule,
		tracer.FXModule,
		database.FXModule,
		fx.Provide(
			func() database.Config { return cfg },
			func() (logger.Config, error) {
				var c logger.Config
				err := envconfig.Process("", &c)
				return c, err
			},
			func() (tracer.Config, error) {
				var c tracer.Config
				err := envconfig.Process("", &c)
				return c, err
			},
		),
		fx.Populate(&db),
	)
	if err := app.Start(ctx); err != nil {
		return err
	}
	defer func() {
		stopCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = app.Stop(stopCtx)
	}()

	rows, err := db.DQuery(ctx, query, vars).Await(ctx)
	if err != nil {
		return err
	}
	return printRecords(os.Stdout, rows)
}

func runSync(ctx context.Context, cfg database.Config, query string, vars unidb.Vars) error {
	db, err := database.NewSync(ctx, cfg)
	if err != nil {
		return err
	}
	defer db.Close()

	rows, err := db.Query(ctx, query, vars)
	if err != nil {
		return err
	}
	return printRecords(os.Stdout, rows)
}

func printRecords(w io.Writer, rows []record.Record) error {
	enc := json.NewEncoder(w)
	for _, row := range rows {
		if err := enc.Encode(row); err != nil {
			return err
		}
	}
	return nil
}
