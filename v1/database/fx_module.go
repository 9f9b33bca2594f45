package database

import (
	"context"
	"sync"

	"github.com/Aleph-Alpha/unidb/v1/observability"
	"github.com/Aleph-Alpha/unidb/v1/unidb"
	"go.uber.org/fx"
)

// FXModule provides the executor of the configured backend via dependency
// injection, as *unidb.AsyncExecutor, unidb.AsyncDB and database.Client.
//
// Usage:
//
//	app := fx.New(
//	    database.FXModule,
//	    fx.Provide(func() database.Config {
//	        return database.PostgresConfig(postgres.Config{...})
//	    }),
//	    fx.Invoke(func(db unidb.AsyncDB) {
//	        // ...
//	    }),
//	)
//
// A unidb.Logger, observability.Observer or unidb.Tracer present in the
// container is attached to the executor.
var FXModule = fx.Module("database",
	fx.Provide(
		NewClientWithDI,
		func(e *unidb.AsyncExecutor) unidb.AsyncDB { return e },
		func(e *unidb.AsyncExecutor) Client { return e },
	),
	fx.Invoke(RegisterDatabaseLifecycle),
)

// DatabaseParams groups the dependencies needed to create an executor
type DatabaseParams struct {
	fx.In

	Config   Config
	Logger   unidb.Logger           `optional:"true"`
	Observer observability.Observer `optional:"true"`
	Tracer   unidb.Tracer           `optional:"true"`
}

// DatabaseLifecycleParams groups the dependencies needed for database lifecycle management
type DatabaseLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Config    Config
	Executor  *unidb.AsyncExecutor
	Logger    unidb.Logger `optional:"true"`
}

// NewClientWithDI creates the executor selected by Config.Type and attaches
// the optional hooks.
func NewClientWithDI(params DatabaseParams) (*unidb.AsyncExecutor, error) {
	exec, err := NewAsync(params.Config)
	if err != nil {
		return nil, err
	}
	if params.Logger != nil {
		exec.WithLogger(params.Logger)
	}
	if params.Observer != nil {
		exec.WithObserver(params.Observer)
	}
	if params.Tracer != nil {
		exec.WithTracer(params.Tracer)
	}
	return exec, nil
}

// RegisterDatabaseLifecycle starts the connection monitor and closes the
// executor on shutdown, after in-flight operations settled.
func RegisterDatabaseLifecycle(params DatabaseLifecycleParams) {
	wg := &sync.WaitGroup{}
	monitorCtx, cancel := context.WithCancel(context.Background())

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			wg.Add(1)
			go func() {
				defer wg.Done()
				params.Executor.MonitorConnection(monitorCtx, params.Config.MonitorInterval)
			}()
			if params.Logger != nil {
				params.Logger.Info("database executor started", nil, map[string]interface{}{
					"backend": params.Executor.Dialect().Name,
				})
			}
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if params.Logger != nil {
				params.Logger.Info("shutting down database executor", nil)
			}
			cancel()
			err := params.Executor.Close()
			wg.Wait()
			return err
		},
	})
}
