package future

import (
	"context"
	"errors"
	"fmt"
	"sync"
)

// ErrPending is returned by Result while the future has not been resolved yet.
var ErrPending = errors.New("future: result is still pending")

// PanicError is the rejection reason of a future whose producing function panicked.
type PanicError struct {
	Value interface{}
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("future: producer panicked: %v", e.Value)
}

// Future is a handle to a value of type T that becomes available later.
// It is resolved exactly once, either with a value or with an error, and can be
// awaited by any number of goroutines.
type Future[T any] struct {
	done  chan struct{}
	once  sync.Once
	value T
	err   error
}

// New returns a pending future along with the functions that settle it.
// Only the first call to either function has an effect.
func New[T any]() (f *Future[T], resolve func(T), reject func(error)) {
	f = &Future[T]{done: make(chan struct{})}
	resolve = func(v T) { f.settle(v, nil) }
	reject = func(err error) {
		var zero T
		f.settle(zero, err)
	}
	return f, resolve, reject
}

// Go runs fn on a new goroutine and returns a pending future settled with its outcome.
// A panic inside fn rejects the future with a *PanicError.
func Go[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	go f.run(fn)
	return f
}

// Wrap runs fn immediately on the calling goroutine and returns an already
// completed future. Errors and panics raised by fn become a rejection instead of
// escaping to the caller.
func Wrap[T any](fn func() (T, error)) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	f.run(fn)
	return f
}

// Resolved returns a future already completed with v.
func Resolved[T any](v T) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	f.settle(v, nil)
	return f
}

// Rejected returns a future already completed with err.
func Rejected[T any](err error) *Future[T] {
	f := &Future[T]{done: make(chan struct{})}
	var zero T
	f.settle(zero, err)
	return f
}

// Then returns a future settled with fn applied to the value of f.
// If f is rejected, fn is not called and the rejection is propagated.
func Then[T, U any](f *Future[T], fn func(T) (U, error)) *Future[U] {
	return Go(func() (U, error) {
		v, err := f.Await(context.Background())
		if err != nil {
			var zero U
			return zero, err
		}
		return fn(v)
	})
}

func (f *Future[T]) run(fn func() (T, error)) {
	defer func() {
		if r := recover(); r != nil {
			var zero T
			f.settle(zero, &PanicError{Value: r})
		}
	}()
	v, err := fn()
	f.settle(v, err)
}

func (f *Future[T]) settle(v T, err error) {
	f.once.Do(func() {
		f.value = v
		f.err = err
		close(f.done)
	})
}

// Await blocks until the future is settled or ctx is done.
// Giving up on the wait does not cancel the work producing the value.
func (f *Future[T]) Await(ctx context.Context) (T, error) {
	select {
	case <-f.done:
		return f.value, f.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel that is closed once the future is settled.
func (f *Future[T]) Done() <-chan struct{} {
	return f.done
}

// Ready reports whether the future has been settled.
func (f *Future[T]) Ready() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// Result returns the outcome without blocking, or ErrPending if the future is not settled.
func (f *Future[T]) Result() (T, error) {
	if !f.Ready() {
		var zero T
		return zero, ErrPending
	}
	return f.value, f.err
}
