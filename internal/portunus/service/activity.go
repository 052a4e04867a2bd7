package service

import (
	"context"
	"fmt"

	"github.com/BrandonDHaskell/Portunus/lock/internal/dependencies/clock"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/store"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/types"
)

// ActivityLogger stamps lock events with the local date and time and
// appends them to the activity log.
type ActivityLogger struct {
	log   store.ActivityLog
	clock clock.Clock
}

func NewActivityLogger(log store.ActivityLog, c clock.Clock) *ActivityLogger {
	return &ActivityLogger{log: log, clock: c}
}

func (a *ActivityLogger) Append(ctx context.Context, status string) error {
	e := types.NewActivityEntry(status, a.clock.Now())
	if err := a.log.Append(ctx, e); err != nil {
		return fmt.Errorf("append activity %q: %w", status, err)
	}
	return nil
}
