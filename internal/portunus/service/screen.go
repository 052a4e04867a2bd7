package service

import (
	"context"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/device"
)

// showText replaces the display with two lines. A blinking cursor marks a
// screen waiting for input.
func (m *Machine) showText(line1, line2 string, blink bool) {
	m.display.Clear()
	m.display.MoveTo(0, 0)
	m.display.PutStr(line1)
	m.display.MoveTo(0, 1)
	m.display.PutStr(line2)

	if blink {
		m.display.BlinkCursorOn()
		return
	}
	m.display.BlinkCursorOff()
	m.display.HideCursor()
}

// Welcome engages the lock and scrolls the welcome text until a key is
// pressed. The key that ends the scroll is consumed.
func (m *Machine) Welcome(ctx context.Context) error {
	m.setState(StateMenu)
	m.lock.SetLocked(true)
	return m.scroll(ctx, m.welcome)
}

// ShowOptions scrolls the options text until a key is pressed.
func (m *Machine) ShowOptions(ctx context.Context) error {
	return m.scroll(ctx, m.options)
}

// Goodbye clears the screen and returns to the welcome scroll.
func (m *Machine) Goodbye(ctx context.Context) error {
	m.display.Clear()
	m.display.PutStr("Goodbye")
	if err := m.pause(ctx, m.timing.GoodbyePause); err != nil {
		return err
	}
	m.display.Clear()
	return m.Welcome(ctx)
}

// scroll shows text as a two-row window sliding one character per frame,
// the second row continuing where the first ends. The keypad is scanned
// once per frame.
func (m *Machine) scroll(ctx context.Context, text string) error {
	runes := []rune(text)
	frames := max(len(runes), 1)

	for {
		for start := 0; start < frames; start++ {
			m.display.Clear()
			m.display.MoveTo(0, 0)
			m.display.PutStr(window(runes, start))
			m.display.MoveTo(0, 1)
			m.display.PutStr(window(runes, start+device.DisplayCols))

			if err := m.pause(ctx, m.timing.ScrollStep); err != nil {
				return err
			}
			if _, ok := m.keypad.Scan(); ok {
				m.display.Clear()
				return nil
			}
		}
	}
}

func window(runes []rune, start int) string {
	if start >= len(runes) {
		return ""
	}
	end := min(start+device.DisplayCols, len(runes))
	return string(runes[start:end])
}
