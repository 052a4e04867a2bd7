package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/device/sim"
)

func newEnrollCardCmd(a *app) *cobra.Command {
	var cardUID string

	cmd := &cobra.Command{
		Use:   "enroll-card",
		Short: "Write the credential onto a card",
		Long: `Present the card given by --card to the reader and enter the lock password
on the keypad. On success the card carries the credential digest and
unlocks the door from the D menu.`,
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
			s.keypad.Start()
			s.reader.Tap(uid)

			if err := m.EnrollCard(ctx); err != nil {
				if errors.Is(err, context.Canceled) {
					return fmt.Errorf("enrollment of card %s cancelled", uid)
				}
				return err
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&cardUID, "card", "DEADBEEF", "UID of the card to enroll")
	return cmd
}
