package config

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/service"
)

const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
)

var (
	ErrUnknownBackend = errors.New("unknown storage backend")
	ErrUnknownFormat  = errors.New("unknown config file format")
)

// Config is the lock's runtime configuration. Keys missing from the file and
// unset variables keep their defaults.
type Config struct {
	Env     string `toml:"env" yaml:"env"`         // "dev" | "prod"
	Backend string `toml:"backend" yaml:"backend"` // "file" | "sqlite"
	DataDir string `toml:"data_dir" yaml:"data_dir"`

	// Storage paths; relative names are resolved against DataDir.
	CredentialPath  string `toml:"credential_path" yaml:"credential_path"`
	ActivityLogPath string `toml:"activity_log_path" yaml:"activity_log_path"`
	DBPath          string `toml:"db_path" yaml:"db_path"`
	CardDeckPath    string `toml:"card_deck_path" yaml:"card_deck_path"`

	MaxAttempts       int    `toml:"max_attempts" yaml:"max_attempts"` // 0 = unbounded
	UnlockOnCardMatch bool   `toml:"unlock_on_card_match" yaml:"unlock_on_card_match"`
	CardKey           string `toml:"card_key" yaml:"card_key"` // 12 hex digits

	WelcomeText string `toml:"welcome_text" yaml:"welcome_text"`
	OptionsText string `toml:"options_text" yaml:"options_text"`

	Timing Timing `toml:"timing" yaml:"timing"`
}

// Timing overrides the lock's pauses. Durations use time.ParseDuration
// syntax ("500ms", "2s").
type Timing struct {
	PollInterval   time.Duration `toml:"poll_interval" yaml:"poll_interval"`
	ScrollStep     time.Duration `toml:"scroll_step" yaml:"scroll_step"`
	KeyEchoPause   time.Duration `toml:"key_echo_pause" yaml:"key_echo_pause"`
	EntryEchoPause time.Duration `toml:"entry_echo_pause" yaml:"entry_echo_pause"`
	GoodbyePause   time.Duration `toml:"goodbye_pause" yaml:"goodbye_pause"`
	MessagePause   time.Duration `toml:"message_pause" yaml:"message_pause"`
	CardPause      time.Duration `toml:"card_pause" yaml:"card_pause"`
}

func timingFrom(t service.Timing) Timing {
	return Timing{
		PollInterval:   t.PollInterval,
		ScrollStep:     t.ScrollStep,
		KeyEchoPause:   t.KeyEchoPause,
		EntryEchoPause: t.EntryEchoPause,
		GoodbyePause:   t.GoodbyePause,
		MessagePause:   t.MessagePause,
		CardPause:      t.CardPause,
	}
}

// Service converts the configured pauses for the state machine.
func (t Timing) Service() service.Timing {
	return service.Timing{
		PollInterval:   t.PollInterval,
		ScrollStep:     t.ScrollStep,
		KeyEchoPause:   t.KeyEchoPause,
		EntryEchoPause: t.EntryEchoPause,
		GoodbyePause:   t.GoodbyePause,
		MessagePause:   t.MessagePause,
		CardPause:      t.CardPause,
	}
}

func Default() Config {
	return Config{
		Env:               "dev",
		Backend:           BackendFile,
		DataDir:           "./data",
		CredentialPath:    "password.txt",
		ActivityLogPath:   "lock_system_activity_log.csv",
		DBPath:            "lock.db",
		CardDeckPath:      "cards.toml",
		UnlockOnCardMatch: true,
		CardKey:           "ffffffffffff",
		Timing:            timingFrom(service.DefaultTiming()),
	}
}

// Override adjusts a loaded configuration, e.g. from command-line flags.
type Override func(*Config)

// Load builds the configuration: defaults, then the file at path (TOML or
// YAML by extension, skipped when path is empty), then PORTUNUS_LOCK_*
// environment variables, then overrides. Relative storage paths are resolved
// last.
func Load(path string, overrides ...Override) (Config, error) {
	cfg := Default()

	if path != "" {
		if err := loadFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	applyEnv(&cfg)
	for _, o := range overrides {
		o(&cfg)
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	cfg.resolvePaths()
	return cfg, nil
}

// FromEnv is Load without a config file.
func FromEnv() (Config, error) {
	return Load("")
}

func loadFile(cfg *Config, path string) error {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(filepath.Clean(path))
		if err != nil {
			return fmt.Errorf("read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return fmt.Errorf("decode %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%s: %w", path, ErrUnknownFormat)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Env = strings.ToLower(getenvDefault("PORTUNUS_LOCK_ENV", cfg.Env))
	if cfg.Env != "dev" && cfg.Env != "prod" {
		// fail-soft: treat unknown as dev
		cfg.Env = "dev"
	}

	cfg.Backend = strings.ToLower(getenvDefault("PORTUNUS_LOCK_BACKEND", cfg.Backend))
	cfg.DataDir = getenvDefault("PORTUNUS_LOCK_DATA_DIR", cfg.DataDir)
	cfg.CredentialPath = getenvDefault("PORTUNUS_LOCK_CREDENTIAL_PATH", cfg.CredentialPath)
	cfg.ActivityLogPath = getenvDefault("PORTUNUS_LOCK_ACTIVITY_LOG_PATH", cfg.ActivityLogPath)
	cfg.DBPath = getenvDefault("PORTUNUS_LOCK_DB_PATH", cfg.DBPath)
	cfg.CardDeckPath = getenvDefault("PORTUNUS_LOCK_CARD_DECK_PATH", cfg.CardDeckPath)
	cfg.CardKey = getenvDefault("PORTUNUS_LOCK_CARD_KEY", cfg.CardKey)

	cfg.MaxAttempts = getenvInt("PORTUNUS_LOCK_MAX_ATTEMPTS", cfg.MaxAttempts)
	cfg.UnlockOnCardMatch = getenvBool("PORTUNUS_LOCK_UNLOCK_ON_CARD_MATCH", cfg.UnlockOnCardMatch)
}

func (c Config) validate() error {
	if c.Backend != BackendFile && c.Backend != BackendSQLite {
		return fmt.Errorf("%q: %w", c.Backend, ErrUnknownBackend)
	}
	if c.MaxAttempts < 0 {
		return fmt.Errorf("max_attempts must not be negative, got %d", c.MaxAttempts)
	}
	if _, err := c.CardKeyBytes(); err != nil {
		return err
	}
	return nil
}

func (c *Config) resolvePaths() {
	for _, p := range []*string{&c.CredentialPath, &c.ActivityLogPath, &c.DBPath, &c.CardDeckPath} {
		if *p != "" && !filepath.IsAbs(*p) {
			*p = filepath.Join(c.DataDir, *p)
		}
	}
}

// CardKeyBytes decodes CardKey.
func (c Config) CardKeyBytes() ([6]byte, error) {
	var key [6]byte
	b, err := hex.DecodeString(c.CardKey)
	if err != nil || len(b) != len(key) {
		return key, fmt.Errorf("card_key must be %d hex bytes, got %q", len(key), c.CardKey)
	}
	copy(key[:], b)
	return key, nil
}

func getenvDefault(key, def string) string {
	v := os.Getenv(key)
	if strings.TrimSpace(v) == "" {
		return def
	}
	return v
}

func getenvInt(key string, def int) int {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func getenvBool(key string, def bool) bool {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
