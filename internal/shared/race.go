package shared

import (
	"context"
	"time"
)

type raceResult[T any] struct {
	value T
	err   error
}

// RunWithTimeout races fn against a deadline timer.
//
// fn receives a child context that is cancelled when the timer wins, so any
// in-flight request backing fn is torn down rather than left dangling. When
// the deadline fires first the fallback value is returned with timedOut set;
// a timeout is not an error. When fn resolves first its result is returned
// unchanged. Cancellation of the parent context surfaces as ctx.Err().
func RunWithTimeout[T any](ctx context.Context, budget time.Duration, fallback T, fn func(context.Context) (T, error)) (value T, timedOut bool, err error) {
	opCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	results := make(chan raceResult[T], 1)
	go func() {
		v, err := fn(opCtx)
		results <- raceResult[T]{value: v, err: err}
	}()

	timer := time.NewTimer(budget)
	defer timer.Stop()

	select {
	case res := <-results:
		return res.value, false, res.err
	case <-timer.C:
		cancel()
		return fallback, true, nil
	case <-ctx.Done():
		var zero T
		return zero, false, ctx.Err()
	}
}
