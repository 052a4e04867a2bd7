package store

import "context"

// CredentialStore persists the lock's single credential: the hex SHA-256
// digest of the password, or "" when none is set. StoreDigest replaces
// whatever was stored before; storing "" clears it.
type CredentialStore interface {
	LoadDigest(ctx context.Context) (string, error)
	StoreDigest(ctx context.Context, digest string) error
}
