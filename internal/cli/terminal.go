package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/device"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/device/term"
)

const keyHint = "0-9 A-D * #   enter: #   !: tap card   esc: stop card read   ctrl-c: quit"

// session is the set of terminal peripherals one command drives.
type session struct {
	keypad  *term.Keypad
	panel   *term.Panel
	reader  *term.CardReader
	restore func()
}

func (a *app) openTerminal(cmd *cobra.Command) (*session, error) {
	reader, err := term.OpenCardReader(a.cfg.CardDeckPath, a.logger)
	if err != nil {
		return nil, err
	}

	restore := func() {}
	if f, ok := cmd.InOrStdin().(*os.File); ok {
		if restore, err = term.MakeRaw(f); err != nil {
			return nil, err
		}
	}

	return &session{
		keypad:  term.NewKeypad(cmd.InOrStdin()),
		panel:   term.NewPanel(cmd.OutOrStdout(), a.logger, keyHint),
		reader:  reader,
		restore: restore,
	}, nil
}

func (s *session) peripherals() device.Peripherals {
	return device.Peripherals{
		Keypad:  s.keypad,
		Display: s.panel.LCD,
		Lock:    s.panel.Latch,
		Reader:  s.reader,
	}
}

func (s *session) close() { s.restore() }
