package mocks

import (
	"context"
	"time"

	"github.com/BrandonDHaskell/Portunus/lock/internal/dependencies/clock"
)

// MockClock is a settable Clock that also records every pause instead of
// blocking. Each Sleep advances the clock by the slept duration.
type MockClock struct {
	CurrentTime time.Time
	Sleeps      []time.Duration
}

var (
	_ clock.Clock   = (*MockClock)(nil)
	_ clock.Sleeper = (*MockClock)(nil)
)

func NewMockClock(t time.Time) *MockClock {
	return &MockClock{CurrentTime: t}
}

func (c *MockClock) Now() time.Time {
	return c.CurrentTime
}

func (c *MockClock) Sleep(ctx context.Context, d time.Duration) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	c.Sleeps = append(c.Sleeps, d)
	c.CurrentTime = c.CurrentTime.Add(d)
	return nil
}

func (c *MockClock) Advance(d time.Duration) {
	c.CurrentTime = c.CurrentTime.Add(d)
}

func (c *MockClock) Set(t time.Time) {
	c.CurrentTime = t
}

// Slept reports how many pauses of exactly d were taken.
func (c *MockClock) Slept(d time.Duration) int {
	n := 0
	for _, s := range c.Sleeps {
		if s == d {
			n++
		}
	}
	return n
}
