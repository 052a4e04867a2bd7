package sqlite_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sqlitestore "github.com/BrandonDHaskell/Portunus/lock/internal/portunus/store/sqlite"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/types"
)

// ═══════════════════════════════════════════════════════════════════════════
// Append: column values
// ═══════════════════════════════════════════════════════════════════════════

func TestActivityLog_Append_ColumnsCorrect(t *testing.T) {
	conn := openTestDB(t)
	al := sqlitestore.NewActivityLog(conn)
	ctx := context.Background()

	at := time.Date(2026, 2, 15, 9, 5, 7, 0, time.UTC)
	require.NoError(t, al.Append(ctx, types.NewActivityEntry(types.StatusUnlocked, at)))

	var (
		status, date, clock string
		recordedMs          int64
	)
	err := conn.QueryRowContext(ctx, `
SELECT status, entry_date, entry_time, recorded_at_ms FROM activity_log`,
	).Scan(&status, &date, &clock, &recordedMs)
	require.NoError(t, err)

	assert.Equal(t, "Unlocked", status)
	assert.Equal(t, "02-15-26", date)
	assert.Equal(t, "09:05:07", clock)
	assert.Equal(t, at.UnixMilli(), recordedMs)
}

// ═══════════════════════════════════════════════════════════════════════════
// Append: append-only
// ═══════════════════════════════════════════════════════════════════════════

func TestActivityLog_Append_AppendOnly(t *testing.T) {
	al := sqlitestore.NewActivityLog(openTestDB(t))
	ctx := context.Background()

	base := time.Date(2026, 2, 15, 12, 0, 0, 0, time.UTC)
	statuses := []string{types.StatusPasswordCreated, types.StatusUnlocked, types.StatusLocked}
	for i, s := range statuses {
		require.NoError(t, al.Append(ctx, types.NewActivityEntry(s, base.Add(time.Duration(i)*time.Second))))
	}

	entries, err := al.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	for i, e := range entries {
		assert.Equal(t, statuses[i], e.Status, "entries come back in append order")
	}
	assert.Equal(t, "12:00:02", entries[2].Time)
}

func TestActivityLog_UpdateAndDelete_Rejected(t *testing.T) {
	conn := openTestDB(t)
	al := sqlitestore.NewActivityLog(conn)
	ctx := context.Background()

	require.NoError(t, al.Append(ctx, types.NewActivityEntry(types.StatusLocked, time.Now())))

	_, err := conn.ExecContext(ctx, `UPDATE activity_log SET status = 'Unlocked'`)
	assert.Error(t, err, "update must be rejected")

	_, err = conn.ExecContext(ctx, `DELETE FROM activity_log`)
	assert.Error(t, err, "delete must be rejected")

	entries, err := al.Entries(ctx)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, types.StatusLocked, entries[0].Status)
}

func TestActivityLog_Entries_EmptyTable(t *testing.T) {
	al := sqlitestore.NewActivityLog(openTestDB(t))

	entries, err := al.Entries(context.Background())
	require.NoError(t, err)
	assert.Empty(t, entries)
}
