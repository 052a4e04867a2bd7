package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newLogCmd(a *app) *cobra.Command {
	var tail int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Print the activity log",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			entries, err := a.entries.Entries(cmd.Context())
			if err != nil {
				return err
			}
			if tail > 0 && len(entries) > tail {
				entries = entries[len(entries)-tail:]
			}

			out := cmd.OutOrStdout()
			for _, e := range entries {
				fmt.Fprintf(out, "%s %s  %s\n", e.Date, e.Time, e.Status)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&tail, "tail", "n", 0, "Only print the last n entries")
	return cmd
}
