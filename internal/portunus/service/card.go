package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/device"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/types"
)

// errAborted ends a card wait after Abort.
var errAborted = errors.New("card wait aborted")

// CardMatches reports whether a card data block, NUL padding removed, holds
// exactly the stored digest. Nothing matches an empty digest.
func CardMatches(digest string, data []byte) bool {
	if digest == "" {
		return false
	}
	return string(bytes.ReplaceAll(data, []byte{0}, nil)) == digest
}

// ReadCard polls the reader and checks every presented card against the
// credential. It returns after a card grants access or after Abort, which
// clears the display and leaves the machine at the menu; otherwise it runs
// until ctx is cancelled.
func (m *Machine) ReadCard(ctx context.Context) error {
	m.setState(StateReadingCard)
	m.clearAbort()
	m.showText("Present Card", "", false)

	for {
		uid, err := m.awaitCard(ctx)
		if errors.Is(err, errAborted) {
			m.logger.Printf("card read aborted")
			m.display.Clear()
			m.setState(StateMenu)
			return nil
		}
		if err != nil {
			return err
		}

		data, err := m.reader.ReadData(m.cardKey, uid)
		if err != nil {
			// The card left the field or refused the key; wait for the next one.
			m.logger.Printf("card %s: read: %v", uid, err)
			if err := m.pause(ctx, m.timing.PollInterval); err != nil {
				return err
			}
			continue
		}
		digest, err := m.creds.Digest(ctx)
		if err != nil {
			return err
		}

		match := CardMatches(digest, data)
		m.logger.Printf("card %s presented, match=%t", uid, match)
		if err := m.pause(ctx, m.timing.CardPause); err != nil {
			return err
		}

		if !m.policy.UnlockOnCardMatch {
			continue
		}
		if match {
			return m.grantAccess(ctx)
		}

		m.showText("Card Rejected", "", false)
		if err := m.pause(ctx, m.timing.MessagePause); err != nil {
			return err
		}
		m.showText("Present Card", "", false)
	}
}

// EnrollCard waits for a card, asks for the password and writes the stored
// digest onto the card.
func (m *Machine) EnrollCard(ctx context.Context) error {
	m.setState(StateEnrollingCard)
	defer m.setState(StateMenu)
	m.clearAbort()
	m.showText("Present Card", "", false)

	uid, err := m.awaitCard(ctx)
	if errors.Is(err, errAborted) {
		m.showText("Card Not Added", "", false)
		return m.pause(ctx, m.timing.MessagePause)
	}
	if err != nil {
		return err
	}

	res, err := m.InputPassword(ctx, ModeCredentialOnly)
	if err != nil {
		return err
	}
	m.setState(StateEnrollingCard)
	if res.Kind != types.AuthCredentialHash {
		m.showText("Card Not Added", "", false)
		return m.pause(ctx, m.timing.MessagePause)
	}

	if err := m.reader.WriteData(m.cardKey, uid, []byte(res.Hash)); err != nil {
		return fmt.Errorf("write card %s: %w", uid, err)
	}
	m.logger.Printf("card %s enrolled", uid)

	m.showText("Card Added", uid.String(), false)
	if err := m.activity.Append(ctx, types.StatusCardEnrolled); err != nil {
		return err
	}
	return m.pause(ctx, m.timing.MessagePause)
}

// awaitCard polls until one card completes request, anti-collision and
// selection, or until Abort.
func (m *Machine) awaitCard(ctx context.Context) (device.UID, error) {
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if m.aborted() {
			return nil, errAborted
		}

		if status, _ := m.reader.Request(); status == device.StatusOK {
			if status, uid := m.reader.Anticoll(); status == device.StatusOK {
				if m.reader.SelectTag(uid) == device.StatusOK {
					return uid, nil
				}
			}
		}

		if err := m.pause(ctx, m.timing.PollInterval); err != nil {
			return nil, err
		}
	}
}
