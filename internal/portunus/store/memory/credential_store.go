package memory

import (
	"context"
	"sync"
)

// CredentialStore keeps the digest in memory. Err, when set, is returned by
// every call so tests can simulate an unavailable medium.
type CredentialStore struct {
	mu     sync.RWMutex
	digest string
	writes int
	Err    error
}

func NewCredentialStore() *CredentialStore {
	return &CredentialStore{}
}

func (s *CredentialStore) LoadDigest(_ context.Context) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.Err != nil {
		return "", s.Err
	}
	return s.digest, nil
}

func (s *CredentialStore) StoreDigest(_ context.Context, digest string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.digest = digest
	s.writes++
	return nil
}

// Writes counts successful StoreDigest calls. Test-only helper.
func (s *CredentialStore) Writes() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.writes
}
