// Package device declares the peripherals the lock drives. Real drivers
// (keypad matrix, I2C character LCD, MFRC522 reader, relay pin) live outside
// this module; sim and term provide implementations for tests and for
// running the lock on a workstation.
package device

import (
	"encoding/hex"
	"strings"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/types"
)

// Character surface of the display.
const (
	DisplayCols = 16
	DisplayRows = 2
)

// Keypad is scanned repeatedly by the state machine. Scan never blocks; ok is
// false when no key is down.
type Keypad interface {
	Scan() (key types.Key, ok bool)
}

type Display interface {
	Clear()
	MoveTo(col, row int)
	PutStr(text string)
	BlinkCursorOn()
	BlinkCursorOff()
	HideCursor()
}

// Lock is the door actuator. true means engaged.
type Lock interface {
	SetLocked(locked bool)
	Locked() bool
}

// Status is the result code of a card reader command.
type Status int

const (
	StatusOK Status = iota
	StatusNoTag
	StatusErr
)

func (s Status) String() string {
	switch s {
	case StatusOK:
		return "ok"
	case StatusNoTag:
		return "no_tag"
	default:
		return "error"
	}
}

// CardType is the ATQA answer returned by a request command.
type CardType uint16

// UID is the serial number returned by anti-collision.
type UID []byte

func (u UID) String() string { return strings.ToUpper(hex.EncodeToString(u)) }

// CardKey is the sector authentication key.
type CardKey [6]byte

// DefaultCardKey is the factory transport key of MIFARE Classic cards.
var DefaultCardKey = CardKey{0xFF, 0xFF, 0xFF, 0xFF, 0xFF, 0xFF}

// CardReader is the request / anti-collision / select handshake of an
// MFRC522-style reader plus block access on the selected card.
type CardReader interface {
	Request() (Status, CardType)
	Anticoll() (Status, UID)
	SelectTag(uid UID) Status
	ReadData(key CardKey, uid UID) ([]byte, error)
	WriteData(key CardKey, uid UID, data []byte) error
}

// Peripherals bundles the handles the state machine owns.
type Peripherals struct {
	Keypad  Keypad
	Display Display
	Lock    Lock
	Reader  CardReader
}
