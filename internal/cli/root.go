package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/BrandonDHaskell/Portunus/lock/internal/config"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:   "portunus-lock",
		Short: "Keypad and RFID door lock",
		Long: `portunus-lock runs the lock's keypad menu on a terminal and gives the
operator access to the credential and activity log it keeps.

Configuration comes from an optional TOML or YAML file, then PORTUNUS_LOCK_*
environment variables, then the flags below.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.load(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			a.close()
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "Config file (.toml, .yaml)")
	rootCmd.PersistentFlags().StringVar(&a.backend, "backend", "", "Storage backend: file, sqlite (env: PORTUNUS_LOCK_BACKEND)")
	rootCmd.PersistentFlags().StringVar(&a.dataDir, "data-dir", "", "Data directory (env: PORTUNUS_LOCK_DATA_DIR)")

	// Add subcommands
	rootCmd.AddCommand(newRunCmd(a))
	rootCmd.AddCommand(newEnrollCardCmd(a))
	rootCmd.AddCommand(newLogCmd(a))
	rootCmd.AddCommand(newStatusCmd(a))

	return rootCmd
}

// Execute runs the root command
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func (a *app) overrides() []config.Override {
	var out []config.Override
	if a.backend != "" {
		out = append(out, func(c *config.Config) { c.Backend = a.backend })
	}
	if a.dataDir != "" {
		out = append(out, func(c *config.Config) { c.DataDir = a.dataDir })
	}
	return out
}
