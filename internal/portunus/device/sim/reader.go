package sim

import (
	"bytes"
	"errors"
	"fmt"
	"sort"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/device"
)

const (
	// BlockSize is the size of one card data block.
	BlockSize = 16
	// DataBlocks is how many blocks the lock reads and writes.
	DataBlocks = 4
	// DataCapacity is the payload capacity across DataBlocks.
	DataCapacity = BlockSize * DataBlocks

	// MifareClassic1K is the ATQA of a MIFARE Classic 1K card.
	MifareClassic1K device.CardType = 0x0004
)

var (
	ErrNoCard      = errors.New("no card selected")
	ErrAuth        = errors.New("card authentication failed")
	ErrDataTooLong = errors.New("data exceeds card capacity")
)

// Card is a card known to the simulated reader.
type Card struct {
	UID  device.UID
	Key  device.CardKey
	Data []byte // always a multiple of BlockSize, NUL padded
}

// NewCard returns a blank card protected by the default key.
func NewCard(uid device.UID) *Card {
	return &Card{UID: uid, Key: device.DefaultCardKey, Data: make([]byte, DataCapacity)}
}

// CardReader simulates the reader antenna. A card is in the field either
// held (stays until Remove) or tapped (leaves after one read or write
// attempt, successful or not).
type CardReader struct {
	cards    map[string]*Card
	inField  *Card
	tapped   bool
	selected *Card

	// OnEmpty runs whenever Request finds no card in the field.
	OnEmpty func()
}

func NewCardReader(cards ...*Card) *CardReader {
	r := &CardReader{cards: make(map[string]*Card, len(cards))}
	for _, c := range cards {
		r.cards[c.UID.String()] = c
	}
	return r
}

// Add registers a card with the reader's deck.
func (r *CardReader) Add(c *Card) {
	r.cards[c.UID.String()] = c
}

func (r *CardReader) Card(uid device.UID) (*Card, bool) {
	c, ok := r.cards[uid.String()]
	return c, ok
}

func (r *CardReader) Cards() []*Card {
	out := make([]*Card, 0, len(r.cards))
	for _, c := range r.cards {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UID.String() < out[j].UID.String() })
	return out
}

// Hold places a card in the field until Remove is called. Unknown UIDs get a
// blank card.
func (r *CardReader) Hold(uid device.UID) *Card {
	c := r.lookup(uid)
	r.inField, r.tapped = c, false
	return c
}

// Tap places a card in the field for a single read or write.
func (r *CardReader) Tap(uid device.UID) *Card {
	c := r.lookup(uid)
	r.inField, r.tapped = c, true
	return c
}

func (r *CardReader) Remove() {
	r.inField, r.tapped, r.selected = nil, false, nil
}

func (r *CardReader) lookup(uid device.UID) *Card {
	c, ok := r.cards[uid.String()]
	if !ok {
		c = NewCard(uid)
		r.cards[uid.String()] = c
	}
	return c
}

func (r *CardReader) Request() (device.Status, device.CardType) {
	if r.inField == nil {
		if r.OnEmpty != nil {
			r.OnEmpty()
		}
		return device.StatusNoTag, 0
	}
	return device.StatusOK, MifareClassic1K
}

func (r *CardReader) Anticoll() (device.Status, device.UID) {
	if r.inField == nil {
		return device.StatusErr, nil
	}
	uid := make(device.UID, len(r.inField.UID))
	copy(uid, r.inField.UID)
	return device.StatusOK, uid
}

func (r *CardReader) SelectTag(uid device.UID) device.Status {
	if r.inField == nil || !bytes.Equal(r.inField.UID, uid) {
		return device.StatusErr
	}
	r.selected = r.inField
	return device.StatusOK
}

func (r *CardReader) ReadData(key device.CardKey, uid device.UID) ([]byte, error) {
	defer r.afterAccess()
	c, err := r.authenticated(key, uid)
	if err != nil {
		return nil, err
	}
	out := make([]byte, len(c.Data))
	copy(out, c.Data)
	return out, nil
}

func (r *CardReader) WriteData(key device.CardKey, uid device.UID, data []byte) error {
	defer r.afterAccess()
	c, err := r.authenticated(key, uid)
	if err != nil {
		return err
	}
	if len(data) > DataCapacity {
		return fmt.Errorf("WriteData %s: %w (%d > %d)", uid, ErrDataTooLong, len(data), DataCapacity)
	}
	padded := make([]byte, DataCapacity)
	copy(padded, data)
	c.Data = padded
	return nil
}

func (r *CardReader) authenticated(key device.CardKey, uid device.UID) (*Card, error) {
	if r.selected == nil || !bytes.Equal(r.selected.UID, uid) {
		return nil, fmt.Errorf("card %s: %w", uid, ErrNoCard)
	}
	if r.selected.Key != key {
		return nil, fmt.Errorf("card %s: %w", uid, ErrAuth)
	}
	return r.selected, nil
}

func (r *CardReader) afterAccess() {
	if r.tapped {
		r.Remove()
	}
}
