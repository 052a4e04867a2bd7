package memory

import (
	"context"
	"sync"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/types"
)

// ActivityLog is an in-memory append-only log of lock events.
// It is intended for use in tests and dev environments.
type ActivityLog struct {
	mu      sync.RWMutex
	entries []types.ActivityEntry
	Err     error
}

func NewActivityLog() *ActivityLog {
	return &ActivityLog{}
}

func (s *ActivityLog) Append(_ context.Context, e types.ActivityEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.entries = append(s.entries, e)
	return nil
}

func (s *ActivityLog) Entries(_ context.Context) ([]types.ActivityEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.ActivityEntry, len(s.entries))
	copy(out, s.entries)
	return out, nil
}

// Statuses returns the status of every entry in order.  Test-only helper.
func (s *ActivityLog) Statuses() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e.Status)
	}
	return out
}

// Count reports how many entries carry status.  Test-only helper.
func (s *ActivityLog) Count(status string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	n := 0
	for _, e := range s.entries {
		if e.Status == status {
			n++
		}
	}
	return n
}
