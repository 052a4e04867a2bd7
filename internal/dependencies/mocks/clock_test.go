package mocks_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BrandonDHaskell/Portunus/lock/internal/dependencies/mocks"
)

func TestMockClock_SleepRecordsAndAdvances(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	c := mocks.NewMockClock(start)

	assert.NoError(t, c.Sleep(context.Background(), time.Second))
	assert.NoError(t, c.Sleep(context.Background(), 2*time.Second))
	assert.NoError(t, c.Sleep(context.Background(), time.Second))

	assert.Equal(t, start.Add(4*time.Second), c.Now())
	assert.Equal(t, 2, c.Slept(time.Second))
	assert.Equal(t, 1, c.Slept(2*time.Second))
}

func TestMockClock_SleepAfterCancel(t *testing.T) {
	c := mocks.NewMockClock(time.Time{})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, c.Sleep(ctx, time.Second), context.Canceled)
	assert.Empty(t, c.Sleeps)
}
