// Package file stores the credential and the activity log as plain files on
// the device's filesystem, in the formats the lock has always used: a
// credential file holding only the digest, and an activity CSV.
package file

import (
	"fmt"
	"os"
	"path/filepath"
)

func ensureDir(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir %s: %w", filepath.Dir(path), err)
	}
	return nil
}
