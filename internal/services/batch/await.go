package batch

import (
	"context"
	"fmt"
)

// Await runs fn in its own goroutine and returns when it finishes or ctx is
// done, whichever comes first. It adapts SDK calls that take no context; on
// cancellation fn keeps running in the background and its result is dropped.
func Await[T any](ctx context.Context, fn func() (T, error)) (T, error) {
	type result struct {
		v   T
		err error
	}
	ch := make(chan result, 1)
	go func() {
		var r result
		defer func() {
			if p := recover(); p != nil {
				r.err = fmt.Errorf("panic: %v", p)
			}
			ch <- r
		}()
		r.v, r.err = fn()
	}()

	select {
	case r := <-ch:
		return r.v, r.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
