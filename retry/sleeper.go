package retry

import (
	"context"
	"time"
)

// Sleeper suspends the caller between attempts
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// SleeperFunc adapts a func to Sleeper
type SleeperFunc func(ctx context.Context, d time.Duration) error

// Sleep calls f
func (f SleeperFunc) Sleep(ctx context.Context, d time.Duration) error {
	return f(ctx, d)
}

// TimerSleeper waits on a timer, returning early with ctx error when ctx is done
type TimerSleeper struct{}

// Sleep waits for d
func (TimerSleeper) Sleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
