package sim

import (
	"fmt"
	"strings"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/device"
)

// LCD is a 2x16 character buffer with HD44780 cursor semantics: text wraps
// to the next row at the right edge and back to the top after the last row.
type LCD struct {
	cells  [device.DisplayRows][device.DisplayCols]rune
	col    int
	row    int
	blink  bool
	hidden bool

	// Written records every PutStr argument in order.
	Written []string

	// OnChange runs after every mutation; the terminal renderer hooks it.
	OnChange func()
}

func NewLCD() *LCD {
	l := &LCD{}
	l.blank()
	return l
}

func (l *LCD) blank() {
	for r := range l.cells {
		for c := range l.cells[r] {
			l.cells[r][c] = ' '
		}
	}
}

func (l *LCD) Clear() {
	l.blank()
	l.col, l.row = 0, 0
	l.changed()
}

// MoveTo panics on a position outside the surface: that is a caller bug.
func (l *LCD) MoveTo(col, row int) {
	if col < 0 || col >= device.DisplayCols || row < 0 || row >= device.DisplayRows {
		panic(fmt.Sprintf("lcd: cursor (%d,%d) outside %dx%d surface", col, row, device.DisplayCols, device.DisplayRows))
	}
	l.col, l.row = col, row
}

func (l *LCD) PutStr(text string) {
	l.Written = append(l.Written, text)
	for _, ch := range text {
		if ch == '\n' {
			l.newline()
			continue
		}
		l.cells[l.row][l.col] = ch
		l.col++
		if l.col >= device.DisplayCols {
			l.newline()
		}
	}
	l.changed()
}

func (l *LCD) newline() {
	l.col = 0
	l.row = (l.row + 1) % device.DisplayRows
}

func (l *LCD) BlinkCursorOn() {
	l.blink, l.hidden = true, false
	l.changed()
}

func (l *LCD) BlinkCursorOff() {
	l.blink = false
	l.changed()
}

func (l *LCD) HideCursor() {
	l.hidden = true
	l.changed()
}

func (l *LCD) changed() {
	if l.OnChange != nil {
		l.OnChange()
	}
}

// Row returns the text of one row with trailing blanks removed.
func (l *LCD) Row(row int) string {
	return strings.TrimRight(string(l.cells[row][:]), " ")
}

// Rows returns both rows padded to the full width.
func (l *LCD) Rows() [device.DisplayRows]string {
	var out [device.DisplayRows]string
	for r := range l.cells {
		out[r] = string(l.cells[r][:])
	}
	return out
}

func (l *LCD) Cursor() (col, row int) { return l.col, l.row }
func (l *LCD) Blinking() bool         { return l.blink }
func (l *LCD) CursorHidden() bool     { return l.hidden }

// Showed reports whether text was ever written with PutStr.
func (l *LCD) Showed(text string) bool {
	return l.Count(text) > 0
}

// Count reports how many times text was written with PutStr.
func (l *LCD) Count(text string) int {
	n := 0
	for _, w := range l.Written {
		if w == text {
			n++
		}
	}
	return n
}
