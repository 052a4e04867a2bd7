package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/device/sim"
)

func newRunCmd(a *app) *cobra.Command {
	var cardUID string

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Run the lock on this terminal",
		Long: `Run the keypad menu with the terminal as keypad and display.

Keys 0-9, A-D, * and # are the keypad; Enter also sends #. Typing ! presents
the card given by --card to the reader; Esc gives up waiting for a card and
returns to the menu. Ctrl-C or the end of input stops the lock. Diagnostics
go to portunus-lock.log in the data directory.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			uid, err := sim.ParseUID(cardUID)
			if err != nil {
				return err
			}

			ctx, cancel := context.WithCancel(cmd.Context())
			defer cancel()

			restoreLog, err := a.logFile(cmd)
			if err != nil {
				return err
			}
			defer restoreLog()

			s, err := a.openTerminal(cmd)
			if err != nil {
				return err
			}
			defer s.close()

			m, err := a.newMachine(s.peripherals())
			if err != nil {
				return err
			}

			s.keypad.OnInterrupt(cancel)
			s.keypad.OnEscape(m.Abort)
			s.keypad.OnEnd(cancel)
			s.keypad.Bind('!', func() { s.reader.Tap(uid) })
			s.keypad.Start()

			a.logger.Printf("lock running env=%s backend=%s", a.cfg.Env, a.cfg.Backend)
			err = m.Run(ctx)
			a.logger.Printf("lock stopped: %v", err)
			if errors.Is(err, context.Canceled) {
				return nil
			}
			return err
		},
	}

	cmd.Flags().StringVar(&cardUID, "card", "DEADBEEF", "UID of the card presented when ! is typed")
	return cmd
}
