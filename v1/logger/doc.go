// Package logger is the zap based logger shared by the unidb executors and the
// unidb command.
//
// NewLoggerClient builds a JSON logger from Config. NewWithZap wraps an
// existing *zap.Logger, which is what tests use with zaptest/observer:
//
//	core, logs := observer.New(zap.DebugLevel)
//	log := logger.NewWithZap(zap.New(core), true)
//
//	exec, _ := sqlite.NewAsync(sqlite.Config{})
//	exec.WithLogger(log)
//
// *LoggerClient satisfies unidb.Logger, so executors log failed statements
// and health check problems through it. FXModule provides the client as
// *LoggerClient, Logger and unidb.Logger, and syncs zap on stop.
//
// The *WithContext methods add trace_id and span_id from the span in ctx when
// EnableTracing is set.
//
// # Configuration
//
//	ZAP_LOGGER_LEVEL=debug          # debug, info, warning, error
//	LOGGER_ENABLE_TRACING=true      # add trace_id/span_id in *WithContext calls
//	LOGGER_SERVICE_NAME=unidb       # value of the "service" field
package logger
