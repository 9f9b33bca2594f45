// Package future provides a minimal, typed async handle.
//
// A Future is settled exactly once, with a value or an error. It is the return
// type of every operation on the asynchronous database contract, and it is also
// used by synchronous executors that want to look asynchronous: Wrap runs the
// call in place and hands back a future that is already completed.
//
// Basic Usage:
//
//	f := future.Go(func() (int64, error) {
//		return insertRow(ctx)
//	})
//
//	id, err := f.Await(ctx)
//
// Wrapping a synchronous call:
//
//	f := future.Wrap(func() ([]record.Record, error) {
//		return db.Select(ctx, "users", opts)
//	})
//	// f.Ready() == true
//
// Thread Safety:
//
// A Future may be awaited from any number of goroutines.
package future
