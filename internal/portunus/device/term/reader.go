package term

import (
	"log"
	"sync"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/device"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/device/sim"
)

// CardReader is a simulated reader shared between the keypad goroutine, which
// taps cards, and the state machine. Writes are saved back to the deck file.
type CardReader struct {
	mu       sync.Mutex
	r        *sim.CardReader
	deckPath string
	logger   *log.Logger
}

// OpenCardReader loads the deck at deckPath. A missing deck starts empty.
func OpenCardReader(deckPath string, logger *log.Logger) (*CardReader, error) {
	cards, err := sim.LoadDeck(deckPath)
	if err != nil {
		return nil, err
	}
	return &CardReader{r: sim.NewCardReader(cards...), deckPath: deckPath, logger: logger}, nil
}

// Tap presents uid to the reader for one access.
func (c *CardReader) Tap(uid device.UID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.r.Tap(uid)
	c.logger.Printf("card %s tapped", uid)
}

func (c *CardReader) Request() (device.Status, device.CardType) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.r.Request()
}

func (c *CardReader) Anticoll() (device.Status, device.UID) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.r.Anticoll()
}

func (c *CardReader) SelectTag(uid device.UID) device.Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.r.SelectTag(uid)
}

func (c *CardReader) ReadData(key device.CardKey, uid device.UID) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.r.ReadData(key, uid)
}

func (c *CardReader) WriteData(key device.CardKey, uid device.UID, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := c.r.WriteData(key, uid, data); err != nil {
		return err
	}
	return sim.SaveDeck(c.deckPath, c.r.Cards())
}
