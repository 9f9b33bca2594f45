// Package metrics provides Prometheus-based monitoring of database operations.
//
// # Architecture
//
// This package follows the "accept interfaces, return structs" design pattern:
//   - MetricsCollector interface: observability.Observer plus metric factories
//   - Metrics struct: Concrete implementation of the MetricsCollector interface
//   - NewMetrics constructor: Returns *Metrics (concrete type)
//   - FX module: Provides *Metrics, MetricsCollector and observability.Observer
//
// # Exported metrics
//
// Every operation reported by an executor updates:
//
//	operations_total{component, operation, resource, backend, status}
//	operation_duration_seconds{component, operation, backend}
//	rows_total{component, operation, resource}
//
// status is "success" or "error". rows_total counts the rows returned by reads
// and the keys or affected rows reported by writes. RegisterDBStats adds the
// database/sql pool gauges (go_sql_*) of one connection pool.
//
// # Direct Usage (Without FX)
//
//	m := metrics.NewMetrics(metrics.Config{Address: ":9090", ServiceName: "unidb"})
//	exec.WithObserver(m)
//	_ = m.RegisterDBStats(exec.DB().DB, "sqlite")
//	go m.Server.ListenAndServe()
//
// # FX Module Integration
//
//	app := fx.New(
//		logger.FXModule,   // Optional: lifecycle logs
//		metrics.FXModule,  // Observer for database.FXModule
//		database.FXModule,
//		fx.Provide(func() metrics.Config {
//			return metrics.Config{Address: ":9090", ServiceName: "unidb"}
//		}),
//	)
//
// # Configuration
//
//	METRICS_ADDRESS=:9090                      # Port and address for /metrics endpoint
//	METRICS_ENABLE_DEFAULT_COLLECTORS=true     # Enable runtime and process metrics
//	METRICS_NAMESPACE=unidb                    # Optional prefix for all metric names
//	METRICS_SERVICE_NAME=orders                # Adds service label to all metrics
//
// # Thread Safety
//
// All methods on the Metrics struct and Prometheus collectors are safe for
// concurrent use by multiple goroutines.
package metrics
