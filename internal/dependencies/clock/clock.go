package clock

import (
	"context"
	"time"
)

// Clock provides the current time; it is swapped out in tests.
type Clock interface {
	Now() time.Time
}

// Sleeper performs the blocking pauses of the lock. The whole device stalls
// while a pause runs; only ctx cancellation cuts it short.
type Sleeper interface {
	Sleep(ctx context.Context, d time.Duration) error
}

// RealClock implements Clock and Sleeper with the system clock.
type RealClock struct{}

func New() *RealClock {
	return &RealClock{}
}

func (c *RealClock) Now() time.Time {
	return time.Now()
}

// Sleep blocks for d or until ctx is done, returning ctx.Err() in the latter
// case.
func (c *RealClock) Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
