package cli

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/BrandonDHaskell/Portunus/lock/internal/config"
	"github.com/BrandonDHaskell/Portunus/lock/internal/db"
	"github.com/BrandonDHaskell/Portunus/lock/internal/dependencies/clock"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/device"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/service"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/store"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/store/file"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/store/sqlite"
)

// app carries what every subcommand shares: flags, configuration, the
// diagnostic logger and the opened stores.
type app struct {
	configPath string
	backend    string
	dataDir    string

	cfg    config.Config
	logger *log.Logger

	creds    store.CredentialStore
	activity store.ActivityLog
	entries  store.ActivityReader
	db       *sql.DB
}

func (a *app) load(cmd *cobra.Command) error {
	cfg, err := config.Load(a.configPath, a.overrides()...)
	if err != nil {
		return err
	}
	a.cfg = cfg
	a.logger = log.New(cmd.ErrOrStderr(), "portunus-lock ", log.LstdFlags|log.LUTC)
	return a.openStores(cmd.Context())
}

func (a *app) openStores(ctx context.Context) error {
	switch a.cfg.Backend {
	case config.BackendSQLite:
		conn, err := db.Open(ctx, db.Config{Path: a.cfg.DBPath})
		if err != nil {
			return err
		}
		al := sqlite.NewActivityLog(conn)
		a.db = conn
		a.creds = sqlite.NewCredentialStore(conn)
		a.activity, a.entries = al, al
	case config.BackendFile:
		al := file.NewActivityLog(a.cfg.ActivityLogPath)
		a.creds = file.NewCredentialStore(a.cfg.CredentialPath)
		a.activity, a.entries = al, al
	default:
		return fmt.Errorf("%q: %w", a.cfg.Backend, config.ErrUnknownBackend)
	}
	return nil
}

func (a *app) close() {
	if a.db != nil {
		_ = a.db.Close()
		a.db = nil
	}
}

// storeLocation names where the credential lives, for status output.
func (a *app) storeLocation() string {
	if a.cfg.Backend == config.BackendSQLite {
		return a.cfg.DBPath
	}
	return a.cfg.CredentialPath
}

// newMachine builds the state machine over p with the configured policy.
func (a *app) newMachine(p device.Peripherals) (*service.Machine, error) {
	key, err := a.cfg.CardKeyBytes()
	if err != nil {
		return nil, err
	}
	clk := clock.New()

	return service.NewMachine(service.Dependencies{
		Logger:      a.logger,
		Peripherals: p,
		Credentials: service.NewCredentials(a.creds),
		Activity:    service.NewActivityLogger(a.activity, clk),
		Sleeper:     clk,
		Timing:      a.cfg.Timing.Service(),
		Policy: service.Policy{
			MaxAttempts:       a.cfg.MaxAttempts,
			UnlockOnCardMatch: a.cfg.UnlockOnCardMatch,
		},
		CardKey:     device.CardKey(key),
		WelcomeText: a.cfg.WelcomeText,
		OptionsText: a.cfg.OptionsText,
	}), nil
}

// logFile redirects the logger to a file in the data directory while the
// terminal is drawing the panel. The returned func restores stderr.
func (a *app) logFile(cmd *cobra.Command) (func(), error) {
	if err := os.MkdirAll(a.cfg.DataDir, 0o755); err != nil {
		return nil, fmt.Errorf("mkdir data dir: %w", err)
	}
	path := filepath.Join(a.cfg.DataDir, "portunus-lock.log")
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	a.logger.SetOutput(f)
	return func() {
		a.logger.SetOutput(cmd.ErrOrStderr())
		_ = f.Close()
	}, nil
}
