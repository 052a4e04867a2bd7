package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/service"
)

func newStatusCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the storage backend and whether a password is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			exists, err := service.NewCredentials(a.creds).Exists(ctx)
			if err != nil {
				return err
			}
			entries, err := a.entries.Entries(ctx)
			if err != nil {
				return err
			}

			credential := "not set"
			if exists {
				credential = "set"
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "env:         %s\n", a.cfg.Env)
			fmt.Fprintf(out, "backend:     %s (%s)\n", a.cfg.Backend, a.storeLocation())
			fmt.Fprintf(out, "credential:  %s\n", credential)
			fmt.Fprintf(out, "activity:    %d entries\n", len(entries))
			if n := len(entries); n > 0 {
				last := entries[n-1]
				fmt.Fprintf(out, "last event:  %s %s %s\n", last.Status, last.Date, last.Time)
			}
			return nil
		},
	}
}
