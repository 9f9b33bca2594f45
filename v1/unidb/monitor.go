package unidb

import (
	"context"
	"fmt"
	"time"
)

// DefaultMonitorInterval is used by MonitorConnection when interval is not positive.
const DefaultMonitorInterval = 10 * time.Second

// MonitorConnection periodically checks the health of the pool until ctx is
// done or the executor is closed. Failed checks are logged and reported to the
// observer as "ping" operations; the executor does not try to reconnect since
// the pool replaces broken connections on its own.
func (e *AsyncExecutor) MonitorConnection(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = DefaultMonitorInterval
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-e.shutdownSignal:
			return
		case <-ctx.Done():
			return
		case <-ticker.C:
			start := time.Now()
			err := e.healthCheck(ctx)
			e.observeOperation("ping", "", time.Since(start), err, 0)
			if err != nil {
				e.logWarn("database health check failed", err, map[string]interface{}{
					"backend": e.dialect.Name,
					"in_use":  e.db.Stats().InUse,
				})
			}
		}
	}
}

// healthCheck pings the backend with a timeout of 5 seconds.
func (e *AsyncExecutor) healthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := e.Ping(ctx); err != nil {
		return fmt.Errorf("database ping failed during health check: %w", err)
	}
	return nil
}
