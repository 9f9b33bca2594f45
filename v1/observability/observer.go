package observability

import "time"

// OperationContext describes one finished operation of an instrumented component.
type OperationContext struct {
	// Component is the reporting package, e.g. "unidb".
	Component string

	// Operation is the action performed, e.g. "select" or "insert".
	Operation string

	// Resource is the primary object acted upon, such as a table name.
	Resource string

	// SubResource carries secondary context such as the backend name.
	SubResource string

	Duration time.Duration

	// Error is nil on success.
	Error error

	// Size is a component specific magnitude: rows returned or affected.
	Size int64

	Metadata map[string]interface{}
}

// Observer receives a notification for every instrumented operation.
// Implementations must be safe for concurrent use and should return quickly.
type Observer interface {
	ObserveOperation(ctx OperationContext)
}

// ObserverFunc adapts a plain function to the Observer interface.
type ObserverFunc func(ctx OperationContext)

func (f ObserverFunc) ObserveOperation(ctx OperationContext) {
	f(ctx)
}

// Multi fans out every notification to all non-nil observers.
func Multi(observers ...Observer) Observer {
	out := make(multi, 0, len(observers))
	for _, o := range observers {
		if o != nil {
			out = append(out, o)
		}
	}
	return out
}

type multi []Observer

func (m multi) ObserveOperation(ctx OperationContext) {
	for _, o := range m {
		o.ObserveOperation(ctx)
	}
}
