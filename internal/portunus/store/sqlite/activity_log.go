package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	dbpkg "github.com/BrandonDHaskell/Portunus/lock/internal/db"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/types"
)

// ActivityLog appends lock events to the activity_log table. Triggers in
// the schema reject updates and deletes.
type ActivityLog struct {
	db *sql.DB
}

func NewActivityLog(db *sql.DB) *ActivityLog {
	return &ActivityLog{db: db}
}

func (s *ActivityLog) Append(ctx context.Context, e types.ActivityEntry) error {
	at := e.At
	if at.IsZero() {
		at = time.Now()
	}

	return dbpkg.WithTx(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx, `
INSERT INTO activity_log(status, entry_date, entry_time, recorded_at_ms)
VALUES (?, ?, ?, ?);
`, e.Status, e.Date, e.Time, at.UTC().UnixMilli()); err != nil {
			return fmt.Errorf("Append insert: %w", err)
		}
		return nil
	})
}

func (s *ActivityLog) Entries(ctx context.Context) ([]types.ActivityEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
SELECT status, entry_date, entry_time, recorded_at_ms
FROM activity_log
ORDER BY entry_id;
`)
	if err != nil {
		return nil, fmt.Errorf("Entries query: %w", err)
	}
	defer rows.Close()

	var out []types.ActivityEntry
	for rows.Next() {
		var (
			e  types.ActivityEntry
			ms int64
		)
		if err := rows.Scan(&e.Status, &e.Date, &e.Time, &ms); err != nil {
			return nil, fmt.Errorf("Entries scan: %w", err)
		}
		e.At = time.UnixMilli(ms).UTC()
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("Entries rows: %w", err)
	}
	return out, nil
}
