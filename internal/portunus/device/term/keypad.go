// Package term runs the lock's peripherals on a terminal: keystrokes are the
// keypad, a bordered box is the LCD and a deck file backs the card reader.
package term

import (
	"bufio"
	"io"
	"os"

	xterm "golang.org/x/term"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/types"
)

// Control bytes as they arrive once the terminal is raw.
const (
	keyInterrupt = 0x03
	keyEscape    = 0x1b
)

// Keypad turns keystrokes into keypad scans. One goroutine reads the input;
// Scan only drains what it has buffered and never blocks.
type Keypad struct {
	in       io.Reader
	keys     chan types.Key
	bindings map[byte]func()
	done     chan struct{}
	onEnd    func()
}

func NewKeypad(in io.Reader) *Keypad {
	return &Keypad{
		in:       in,
		keys:     make(chan types.Key, 64),
		bindings: make(map[byte]func()),
		done:     make(chan struct{}),
	}
}

// Bind runs fn on the reader goroutine whenever c is typed. c is then not a
// key. Bind must be called before Start.
func (k *Keypad) Bind(c byte, fn func()) {
	k.bindings[c] = fn
}

// OnInterrupt binds Ctrl-C.
func (k *Keypad) OnInterrupt(fn func()) {
	k.Bind(keyInterrupt, fn)
}

// OnEscape binds Esc.
func (k *Keypad) OnEscape(fn func()) {
	k.Bind(keyEscape, fn)
}

// OnEnd runs fn from Scan once the input has ended and every key read
// before the end has been scanned. OnEnd must be called before Start.
func (k *Keypad) OnEnd(fn func()) {
	k.onEnd = fn
}

// Start launches the reader goroutine. It exits when the input ends; Done is
// closed at that point.
func (k *Keypad) Start() {
	go k.read()
}

func (k *Keypad) Done() <-chan struct{} { return k.done }

func (k *Keypad) read() {
	defer close(k.done)

	br := bufio.NewReader(k.in)
	for {
		c, err := br.ReadByte()
		if err != nil {
			return
		}
		if fn, ok := k.bindings[c]; ok {
			fn()
			continue
		}
		if c == '\r' || c == '\n' {
			c = '#'
		}
		key, ok := types.ParseKey(c)
		if !ok {
			continue
		}
		select {
		case k.keys <- key:
		default:
			// buffer full: drop the press
		}
	}
}

func (k *Keypad) Scan() (types.Key, bool) {
	// Once done is closed no more keys arrive, so an empty buffer is final.
	select {
	case <-k.done:
		select {
		case key := <-k.keys:
			return key, true
		default:
			if k.onEnd != nil {
				k.onEnd()
			}
			return 0, false
		}
	default:
	}

	select {
	case key := <-k.keys:
		return key, true
	default:
		return 0, false
	}
}

// MakeRaw puts f into raw mode when it is a terminal and returns the function
// that restores it. For anything else it is a no-op.
func MakeRaw(f *os.File) (restore func(), err error) {
	fd := int(f.Fd())
	if !xterm.IsTerminal(fd) {
		return func() {}, nil
	}
	state, err := xterm.MakeRaw(fd)
	if err != nil {
		return nil, err
	}
	return func() { _ = xterm.Restore(fd, state) }, nil
}
