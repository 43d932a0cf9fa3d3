package world

import (
	"context"
	"time"
)

// SpinWork returns a runnable that busy-waits for the given duration,
// simulating CPU-bound per-frame work. It checks for cancellation so an
// aborted run does not pin a core.
func SpinWork(d time.Duration) func(context.Context) error {
	return func(ctx context.Context) error {
		deadline := time.Now().Add(d)
		for time.Now().Before(deadline) {
			if ctx.Err() != nil {
				return ctx.Err()
			}
		}
		return nil
	}
}

// SleepWork returns a runnable that just sleeps for the given duration.
// Useful when the simulation should not burn CPU.
func SleepWork(d time.Duration) func(context.Context) error {
	return func(ctx context.Context) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(d):
			return nil
		}
	}
}
