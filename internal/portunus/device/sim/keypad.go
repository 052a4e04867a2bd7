// Package sim holds in-memory peripherals: a scripted keypad, an LCD
// character buffer, a latch and a card reader with a deck of cards.
package sim

import (
	"fmt"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/types"
)

// Idle marks a scan that finds no key down in a Type script.
const Idle = '.'

type scan struct {
	key types.Key
	ok  bool
}

// Keypad replays a script of scans. Once the script is used up every Scan
// reports no key and calls OnEmpty, which tests use to cancel the run.
type Keypad struct {
	script  []scan
	OnEmpty func()
	scans   int
}

func NewKeypad() *Keypad {
	return &Keypad{}
}

// Type appends one scan per character of s. Idle ('.') is a scan with no key.
func (k *Keypad) Type(s string) *Keypad {
	for i := 0; i < len(s); i++ {
		if s[i] == Idle {
			k.script = append(k.script, scan{})
			continue
		}
		key, ok := types.ParseKey(s[i])
		if !ok {
			panic(fmt.Sprintf("sim: %q is not a keypad symbol", s[i]))
		}
		k.script = append(k.script, scan{key: key, ok: true})
	}
	return k
}

func (k *Keypad) Press(keys ...types.Key) *Keypad {
	for _, key := range keys {
		k.script = append(k.script, scan{key: key, ok: true})
	}
	return k
}

func (k *Keypad) Scan() (types.Key, bool) {
	k.scans++
	if len(k.script) == 0 {
		if k.OnEmpty != nil {
			k.OnEmpty()
		}
		return 0, false
	}
	s := k.script[0]
	k.script = k.script[1:]
	return s.key, s.ok
}

// Remaining is the number of scripted scans not yet consumed.
func (k *Keypad) Remaining() int { return len(k.script) }

// Scans counts every call to Scan.
func (k *Keypad) Scans() int { return k.scans }
