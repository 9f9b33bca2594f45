package metrics

import (
	"context"
	"errors"
	"net/http"

	"github.com/Aleph-Alpha/unidb/v1/logger"
	"github.com/Aleph-Alpha/unidb/v1/observability"
	"github.com/Aleph-Alpha/unidb/v1/unidb"
	"go.uber.org/fx"
)

// FXModule defines the Fx module for the metrics package.
//
// The module:
//  1. Provides *Metrics, MetricsCollector and observability.Observer, so an
//     executor built by database.FXModule reports into the registry.
//  2. Invokes RegisterMetricsLifecycle to manage startup and graceful shutdown
//     of the Prometheus HTTP server, and exports the executor's pool
//     statistics when one is present.
//
// Usage:
//
//	app := fx.New(
//	    metrics.FXModule,
//	    fx.Provide(func() metrics.Config {
//	        return metrics.Config{Address: ":9090", ServiceName: "unidb"}
//	    }),
//	    // other modules...
//	)
var FXModule = fx.Module("metrics",
	fx.Provide(
		NewMetrics,
		func(m *Metrics) MetricsCollector { return m },
		func(m *Metrics) observability.Observer { return m },
	),
	fx.Invoke(RegisterMetricsLifecycle),
)

// MetricsLifecycleParams groups the dependencies of RegisterMetricsLifecycle
type MetricsLifecycleParams struct {
	fx.In

	Lifecycle fx.Lifecycle
	Metrics   *Metrics
	Logger    logger.Logger        `optional:"true"`
	Executor  *unidb.AsyncExecutor `optional:"true"`
}

// RegisterMetricsLifecycle starts the Prometheus HTTP server on start and
// shuts it down gracefully on stop.
func RegisterMetricsLifecycle(params MetricsLifecycleParams) error {
	m := params.Metrics
	log := params.Logger

	if params.Executor != nil {
		if err := m.RegisterDBStats(params.Executor.DB().DB, params.Executor.Dialect().Name); err != nil {
			return err
		}
	}

	params.Lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if log != nil {
					log.Info("Starting Prometheus metrics server", nil, map[string]interface{}{
						"address": m.Server.Addr,
					})
				}
				if err := m.Server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) && log != nil {
					log.Error("Error starting Prometheus metrics server", err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			if log != nil {
				log.Info("Shutting down Prometheus metrics server", nil)
			}
			return m.Server.Shutdown(ctx)
		},
	})
	return nil
}
