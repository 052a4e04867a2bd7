package sim

import (
	"encoding/hex"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/device"
)

// deckFile is the on-disk form of a card deck. UIDs, keys and data are hex.
type deckFile struct {
	Cards []deckCard `toml:"card"`
}

type deckCard struct {
	UID  string `toml:"uid"`
	Key  string `toml:"key"`
	Data string `toml:"data"`
}

// LoadDeck reads cards from a TOML deck file. A missing file is an empty
// deck.
func LoadDeck(path string) ([]*Card, error) {
	var df deckFile
	if _, err := toml.DecodeFile(path, &df); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("load deck %s: %w", path, err)
	}

	cards := make([]*Card, 0, len(df.Cards))
	for i, dc := range df.Cards {
		uid, err := hex.DecodeString(strings.TrimSpace(dc.UID))
		if err != nil || len(uid) == 0 {
			return nil, fmt.Errorf("load deck %s: card %d: bad uid %q", path, i, dc.UID)
		}
		c := NewCard(uid)
		if dc.Key != "" {
			k, err := hex.DecodeString(dc.Key)
			if err != nil || len(k) != len(c.Key) {
				return nil, fmt.Errorf("load deck %s: card %s: bad key", path, c.UID)
			}
			copy(c.Key[:], k)
		}
		if dc.Data != "" {
			data, err := hex.DecodeString(dc.Data)
			if err != nil || len(data) > DataCapacity {
				return nil, fmt.Errorf("load deck %s: card %s: bad data", path, c.UID)
			}
			copy(c.Data, data)
		}
		cards = append(cards, c)
	}
	return cards, nil
}

// SaveDeck writes cards to path, replacing any previous deck.
func SaveDeck(path string, cards []*Card) error {
	df := deckFile{Cards: make([]deckCard, 0, len(cards))}
	for _, c := range cards {
		df.Cards = append(df.Cards, deckCard{
			UID:  c.UID.String(),
			Key:  hex.EncodeToString(c.Key[:]),
			Data: hex.EncodeToString(c.Data),
		})
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir deck dir: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("save deck %s: %w", path, err)
	}
	if err := toml.NewEncoder(f).Encode(df); err != nil {
		_ = f.Close()
		return fmt.Errorf("save deck %s: %w", path, err)
	}
	return f.Close()
}

// ParseUID decodes a hex card UID such as "DEADBEEF".
func ParseUID(s string) (device.UID, error) {
	b, err := hex.DecodeString(strings.TrimSpace(s))
	if err != nil || len(b) == 0 {
		return nil, fmt.Errorf("bad card uid %q", s)
	}
	return b, nil
}
