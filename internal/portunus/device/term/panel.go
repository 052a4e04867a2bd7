package term

import (
	"fmt"
	"io"
	"log"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/device/sim"
)

var (
	lcdStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("63")).
			Padding(0, 1)

	lockedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	unlockedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	hintStyle     = lipgloss.NewStyle().Faint(true)
)

// Panel draws the LCD and the lock state to a terminal. The LCD and Latch are
// the simulated devices; Panel redraws whenever either changes.
type Panel struct {
	LCD   *sim.LCD
	Latch *sim.Latch

	out    io.Writer
	logger *log.Logger
	hint   string
	mu     sync.Mutex
}

func NewPanel(out io.Writer, logger *log.Logger, hint string) *Panel {
	p := &Panel{
		LCD:    sim.NewLCD(),
		Latch:  sim.NewLatch(true),
		out:    out,
		logger: logger,
		hint:   hint,
	}
	p.LCD.OnChange = p.redraw
	p.Latch.OnChange = func(locked bool) {
		if locked {
			p.logger.Printf("lock engaged")
		} else {
			p.logger.Printf("lock released")
		}
		p.redraw()
	}
	return p
}

// Render returns the panel as text with "\n" line breaks.
func (p *Panel) Render() string {
	rows := p.LCD.Rows()
	lcd := lcdStyle.Render(strings.Join(rows[:], "\n"))

	state := lockedStyle.Render("LOCKED")
	if !p.Latch.Locked() {
		state = unlockedStyle.Render("UNLOCKED")
	}

	parts := []string{lcd, state}
	if p.hint != "" {
		parts = append(parts, hintStyle.Render(p.hint))
	}
	return lipgloss.JoinVertical(lipgloss.Left, parts...)
}

func (p *Panel) redraw() {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Raw mode turns off output post-processing, so line feeds need a CR.
	frame := strings.ReplaceAll(p.Render(), "\n", "\r\n")
	fmt.Fprint(p.out, "\x1b[H\x1b[2J", frame, "\r\n")
}
