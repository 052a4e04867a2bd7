package db

import (
	"context"
	"database/sql"
	"fmt"
)

type TxFn func(ctx context.Context, tx *sql.Tx) error

// WithTx runs fn inside a transaction on the caller's goroutine, committing
// on success and rolling back on any error from fn.
func WithTx(ctx context.Context, db *sql.DB, fn TxFn) error {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx: %w", err)
	}

	if err := fn(ctx, tx); err != nil {
		_ = tx.Rollback()
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit tx: %w", err)
	}
	return nil
}
