package types

// Key is one symbol of the 4x4 keypad layout: 0-9, A-D, * and #.
type Key byte

const (
	KeyA    Key = 'A'
	KeyB    Key = 'B'
	KeyC    Key = 'C'
	KeyD    Key = 'D'
	KeyStar Key = '*'
	KeyHash Key = '#'
)

// Layout is the keypad matrix as printed on the device, row by row.
var Layout = [4][4]Key{
	{'1', '2', '3', KeyA},
	{'4', '5', '6', KeyB},
	{'7', '8', '9', KeyC},
	{KeyStar, '0', KeyHash, KeyD},
}

func (k Key) String() string { return string(rune(k)) }

// IsControl reports whether k is reserved for menu control. Control keys are
// never part of a password.
func (k Key) IsControl() bool {
	switch k {
	case KeyA, KeyB, KeyC, KeyD, KeyStar:
		return true
	}
	return false
}

// ParseKey maps a typed character onto the keypad layout. Letters are
// accepted in either case.
func ParseKey(c byte) (Key, bool) {
	switch {
	case c >= '0' && c <= '9':
		return Key(c), true
	case c >= 'a' && c <= 'd':
		return Key(c - 'a' + 'A'), true
	case c >= 'A' && c <= 'D':
		return Key(c), true
	case c == '*' || c == '#':
		return Key(c), true
	}
	return 0, false
}
