package unidb

import (
	"time"

	"github.com/Aleph-Alpha/unidb/v1/observability"
)

// observeOperation notifies the observer about an operation if one is configured.
//
// Notes:
//   - resource: the first table of the statement, empty for raw queries
//   - subResource: the backend name
func (c *core) observeOperation(operation, resource string, duration time.Duration, err error, size int64) {
	if c == nil || c.observer == nil {
		return
	}

	c.observer.ObserveOperation(observability.OperationContext{
		Component:   "unidb",
		Operation:   operation,
		Resource:    resource,
		SubResource: c.dialect.Name,
		Duration:    duration,
		Error:       err,
		Size:        size,
		Metadata:    map[string]interface{}{"mode": c.mode},
	})
}
