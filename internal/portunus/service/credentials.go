package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/store"
)

// HashPassword returns the lowercase hex SHA-256 digest of the UTF-8
// password. This is the only form in which a password is stored.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// Credentials guards the lock's single password.
type Credentials struct {
	store store.CredentialStore
}

func NewCredentials(st store.CredentialStore) *Credentials {
	return &Credentials{store: st}
}

// Exists reports whether a non-empty digest is stored.
func (c *Credentials) Exists(ctx context.Context) (bool, error) {
	digest, err := c.Digest(ctx)
	if err != nil {
		return false, err
	}
	return digest != "", nil
}

// Digest returns the stored digest, "" when none is set.
func (c *Credentials) Digest(ctx context.Context) (string, error) {
	digest, err := c.store.LoadDigest(ctx)
	if err != nil {
		return "", fmt.Errorf("load credential: %w", err)
	}
	return digest, nil
}

// Verify hashes candidate and compares it byte for byte with the stored
// digest. With no credential set nothing verifies.
func (c *Credentials) Verify(ctx context.Context, candidate string) (bool, error) {
	digest, err := c.Digest(ctx)
	if err != nil {
		return false, err
	}
	if digest == "" {
		return false, nil
	}
	return HashPassword(candidate) == digest, nil
}

// Save hashes candidate and replaces the stored digest.
func (c *Credentials) Save(ctx context.Context, candidate string) error {
	if err := c.store.StoreDigest(ctx, HashPassword(candidate)); err != nil {
		return fmt.Errorf("save credential: %w", err)
	}
	return nil
}

// Clear erases the stored digest.
func (c *Credentials) Clear(ctx context.Context) error {
	if err := c.store.StoreDigest(ctx, ""); err != nil {
		return fmt.Errorf("clear credential: %w", err)
	}
	return nil
}
