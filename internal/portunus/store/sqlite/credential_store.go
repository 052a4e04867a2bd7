package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	dbpkg "github.com/BrandonDHaskell/Portunus/lock/internal/db"
)

// CredentialStore keeps the digest in the single-row credential table.
// Clearing writes an empty digest rather than deleting the row.
type CredentialStore struct {
	db *sql.DB
}

func NewCredentialStore(db *sql.DB) *CredentialStore {
	return &CredentialStore{db: db}
}

func (s *CredentialStore) LoadDigest(ctx context.Context) (string, error) {
	var digest string
	err := s.db.QueryRowContext(ctx, `
SELECT digest FROM credential WHERE slot = 1;
`).Scan(&digest)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("LoadDigest query: %w", err)
	}
	return digest, nil
}

func (s *CredentialStore) StoreDigest(ctx context.Context, digest string) error {
	nowMs := time.Now().UTC().UnixMilli()

	return dbpkg.WithTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO credential(slot, digest, updated_at_ms)
VALUES (1, ?, ?)
ON CONFLICT(slot) DO UPDATE SET
  digest        = excluded.digest,
  updated_at_ms = excluded.updated_at_ms;
`, digest, nowMs); err != nil {
			return fmt.Errorf("StoreDigest upsert: %w", err)
		}
		return nil
	})
}
