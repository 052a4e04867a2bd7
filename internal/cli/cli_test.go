package cli

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BrandonDHaskell/Portunus/lock/internal/db"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/device/sim"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/service"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/store/file"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/store/sqlite"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/types"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func seedFileBackend(t *testing.T, dir string) {
	t.Helper()
	ctx := context.Background()
	creds := file.NewCredentialStore(filepath.Join(dir, "password.txt"))
	require.NoError(t, creds.StoreDigest(ctx, service.HashPassword("1234")))

	al := file.NewActivityLog(filepath.Join(dir, "lock_system_activity_log.csv"))
	at := time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)
	require.NoError(t, al.Append(ctx, types.NewActivityEntry(types.StatusPasswordCreated, at)))
	require.NoError(t, al.Append(ctx, types.NewActivityEntry(types.StatusUnlocked, at.Add(time.Minute))))
	require.NoError(t, al.Append(ctx, types.NewActivityEntry(types.StatusLocked, at.Add(2*time.Minute))))
}

// quickConfig writes a config that shortens every pause so interactive
// commands finish fast.
func quickConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "lock.toml")
	require.NoError(t, os.WriteFile(path, []byte(`
[timing]
poll_interval = "1ms"
scroll_step = "1ms"
key_echo_pause = "1ms"
entry_echo_pause = "1ms"
goodbye_pause = "1ms"
message_pause = "1ms"
card_pause = "1ms"
`), 0o600))
	return path
}

func executeWithInput(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(bytes.NewBufferString(input))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// ── status ───────────────────────────────────────────────────────────────────

func TestStatus_FileBackendEmpty(t *testing.T) {
	dir := t.TempDir()

	out, err := execute(t, "--data-dir", dir, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "backend:     file")
	assert.Contains(t, out, "credential:  not set")
	assert.Contains(t, out, "activity:    0 entries")
}

func TestStatus_FileBackendSeeded(t *testing.T) {
	dir := t.TempDir()
	seedFileBackend(t, dir)

	out, err := execute(t, "--data-dir", dir, "status")
	require.NoError(t, err)
	assert.Contains(t, out, "credential:  set")
	assert.Contains(t, out, "activity:    3 entries")
	assert.Contains(t, out, "last event:  Locked 03-05-24 14:09:09")
}

func TestStatus_SQLiteBackend(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	conn, err := db.Open(ctx, db.Config{Path: filepath.Join(dir, "lock.db")})
	require.NoError(t, err)
	require.NoError(t, sqlite.NewCredentialStore(conn).StoreDigest(ctx, service.HashPassword("1234")))
	require.NoError(t, conn.Close())

	out, err := execute(t, "--data-dir", dir, "--backend", "sqlite", "status")
	require.NoError(t, err)
	assert.Contains(t, out, "backend:     sqlite")
	assert.Contains(t, out, "credential:  set")
}

func TestStatus_UnknownBackend(t *testing.T) {
	_, err := execute(t, "--data-dir", t.TempDir(), "--backend", "eeprom", "status")
	assert.ErrorContains(t, err, "unknown storage backend")
}

// ── log ──────────────────────────────────────────────────────────────────────

func TestLog_PrintsEntries(t *testing.T) {
	dir := t.TempDir()
	seedFileBackend(t, dir)

	out, err := execute(t, "--data-dir", dir, "log")
	require.NoError(t, err)
	assert.Equal(t,
		"03-05-24 14:07:09  Password Created\n"+
			"03-05-24 14:08:09  Unlocked\n"+
			"03-05-24 14:09:09  Locked\n",
		out)
}

func TestLog_Tail(t *testing.T) {
	dir := t.TempDir()
	seedFileBackend(t, dir)

	out, err := execute(t, "--data-dir", dir, "log", "-n", "1")
	require.NoError(t, err)
	assert.Equal(t, "03-05-24 14:09:09  Locked\n", out)
}

// ── run / enroll-card ────────────────────────────────────────────────────────

func TestRun_StopsAtEndOfInput(t *testing.T) {
	dir := t.TempDir()
	cmd := NewRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetIn(bytes.NewBufferString("B"))
	cmd.SetArgs([]string{"--data-dir", dir, "run"})

	require.NoError(t, cmd.Execute())
	assert.Contains(t, out.String(), "LOCKED")
	assert.FileExists(t, filepath.Join(dir, "portunus-lock.log"))
}

func TestEnrollCard_WritesCredentialToCard(t *testing.T) {
	dir := t.TempDir()
	seedFileBackend(t, dir)

	out, err := executeWithInput(t, "1234#",
		"--config", quickConfig(t), "--data-dir", dir, "enroll-card", "--card", "CAFEBABE")
	require.NoError(t, err)
	assert.Contains(t, out, "Card Added")

	cards, err := sim.LoadDeck(filepath.Join(dir, "cards.toml"))
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "CAFEBABE", cards[0].UID.String())
	assert.True(t, service.CardMatches(service.HashPassword("1234"), cards[0].Data))

	entries, err := file.NewActivityLog(filepath.Join(dir, "lock_system_activity_log.csv")).
		Entries(context.Background())
	require.NoError(t, err)
	require.NotEmpty(t, entries)
	assert.Equal(t, types.StatusCardEnrolled, entries[len(entries)-1].Status)
}

func TestEnrollCard_WrongPasswordLeavesCardBlank(t *testing.T) {
	dir := t.TempDir()
	seedFileBackend(t, dir)

	_, err := executeWithInput(t, "9999#",
		"--config", quickConfig(t), "--data-dir", dir, "enroll-card", "--card", "CAFEBABE")
	assert.ErrorContains(t, err, "cancelled")

	cards, err := sim.LoadDeck(filepath.Join(dir, "cards.toml"))
	require.NoError(t, err)
	assert.Empty(t, cards)
}

func TestEnrollCard_CancelledWhenInputEnds(t *testing.T) {
	dir := t.TempDir()
	seedFileBackend(t, dir)
	cfg := quickConfig(t)

	done := make(chan error, 1)
	go func() {
		_, err := executeWithInput(t, "12",
			"--config", cfg, "--data-dir", dir, "enroll-card", "--card", "CAFEBABE")
		done <- err
	}()

	select {
	case err := <-done:
		assert.ErrorContains(t, err, "enrollment of card CAFEBABE cancelled")
	case <-time.After(5 * time.Second):
		t.Fatal("enroll-card kept polling after input ended")
	}
}

func TestEnrollCard_RejectsBadUID(t *testing.T) {
	_, err := execute(t, "--data-dir", t.TempDir(), "enroll-card", "--card", "zz")
	assert.ErrorContains(t, err, "bad card uid")
}
