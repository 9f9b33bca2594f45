package tracer

import (
	"context"

	"github.com/Aleph-Alpha/unidb/v1/logger"
	"github.com/Aleph-Alpha/unidb/v1/unidb"
	"go.uber.org/fx"
)

// FXModule provides a Uber FX module that configures distributed tracing for your application.
//
// The module:
// 1. Provides *Tracer through NewClient, also as unidb.Tracer so database.FXModule
// attaches it to the executor
// 2. Registers shutdown hooks to cleanly close tracer resources on application termination
//
// Usage:
//
//	app := fx.New(
//	    tracer.FXModule,
//	    // other modules...
//	)
//	app.Run()
var FXModule = fx.Module("tracer",
	fx.Provide(
		NewClient,
		func(t *Tracer) unidb.Tracer { return t },
	),
	fx.Invoke(RegisterTracerLifecycle),
)

// TracerLifecycleParams groups the dependencies of RegisterTracerLifecycle
type TracerLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Tracer    *Tracer
	Logger    logger.Logger `optional:"true"`
}

// RegisterTracerLifecycle flushes pending spans and shuts the provider down
// when the application stops.
func RegisterTracerLifecycle(params TracerLifecycleParams) {
	params.Lifecycle.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			if params.Logger != nil {
				params.Logger.Info("shutting down tracer", nil)
			}
			return params.Tracer.Shutdown(ctx)
		},
	})
}
