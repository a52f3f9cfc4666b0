package retry

import (
	"context"
	"time"
)

// Backoff returns delay before retry attempt (0 based)
func Backoff(base time.Duration, attempt int) time.Duration {
	return base * time.Duration(1<<uint(attempt))
}

// Execute runs op until success, permanent failure or exhaustion.
// Permanent failures are returned as is; exhaustion yields *ExhaustedError.
func Execute[T any](ctx context.Context, op func(ctx context.Context) (T, error), options ...Option) (T, error) {
	opts := NewOptions(options)
	var zero T
	for attempt := 0; ; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		if !opts.Classifier(err) {
			return zero, err
		}
		if attempt >= opts.MaxAttempts-1 {
			return zero, &ExhaustedError{Attempts: attempt + 1, Last: err}
		}
		delay := Backoff(opts.BaseDelay, attempt)
		if opts.OnRetry != nil {
			opts.OnRetry(attempt, delay, err)
		}
		if err := opts.Sleeper.Sleep(ctx, delay); err != nil {
			return zero, err
		}
	}
}

// Do is Execute for operations without result
func Do(ctx context.Context, op func(ctx context.Context) error, options ...Option) error {
	_, err := Execute(ctx, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, op(ctx)
	}, options...)
	return err
}
