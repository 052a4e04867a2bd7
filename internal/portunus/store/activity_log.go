package store

import (
	"context"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/types"
)

// ActivityLog persists lock events as an append-only log. Entries are never
// modified or removed.
type ActivityLog interface {
	Append(ctx context.Context, e types.ActivityEntry) error
}

// ActivityReader lists the log oldest first. The lock itself never reads
// its log; operator tooling does.
type ActivityReader interface {
	Entries(ctx context.Context) ([]types.ActivityEntry, error)
}
