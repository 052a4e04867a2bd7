package file

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// CredentialStore keeps the digest as the only content of a text file. A
// missing or empty file means no credential is set.
type CredentialStore struct {
	path string
}

func NewCredentialStore(path string) *CredentialStore {
	return &CredentialStore{path: path}
}

func (s *CredentialStore) Path() string { return s.path }

func (s *CredentialStore) LoadDigest(_ context.Context) (string, error) {
	b, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("LoadDigest read: %w", err)
	}

	// Only the first line is the record.
	digest := string(b)
	if i := strings.IndexAny(digest, "\r\n"); i >= 0 {
		digest = digest[:i]
	}
	return digest, nil
}

func (s *CredentialStore) StoreDigest(_ context.Context, digest string) error {
	if err := ensureDir(s.path); err != nil {
		return fmt.Errorf("StoreDigest: %w", err)
	}
	if err := os.WriteFile(s.path, []byte(digest), 0o600); err != nil {
		return fmt.Errorf("StoreDigest write: %w", err)
	}
	return nil
}
