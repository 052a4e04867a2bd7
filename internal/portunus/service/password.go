package service

import (
	"context"

	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/types"
)

// PasswordMaxLen caps a password entry; entry ends by itself at this length.
const PasswordMaxLen = 5

// AuthMode selects what a successful verification does.
type AuthMode int

const (
	// ModeGrant releases the lock.
	ModeGrant AuthMode = iota
	// ModeCredentialOnly hands the stored digest back and leaves the lock
	// alone. Card enrollment uses it.
	ModeCredentialOnly
)

// InputPassword prompts until the stored password is entered. With no
// password on file the user is sent to CreatePassword instead.
func (m *Machine) InputPassword(ctx context.Context, mode AuthMode) (types.AuthResult, error) {
	m.setState(StateAwaitingPassword)
	exists, err := m.creds.Exists(ctx)
	if err != nil {
		return types.Denied(), err
	}
	if !exists {
		if err := m.CreatePassword(ctx); err != nil {
			return types.Denied(), err
		}
		return types.Created(), nil
	}

	for attempt := 1; ; attempt++ {
		m.showText("Password:", "", true)
		entry, err := m.ReadPasswordEntry(ctx)
		if err != nil {
			return types.Denied(), err
		}

		ok, err := m.creds.Verify(ctx, entry)
		if err != nil {
			return types.Denied(), err
		}
		if ok {
			if mode == ModeCredentialOnly {
				return types.CredentialHash(HashPassword(entry)), nil
			}
			if err := m.grantAccess(ctx); err != nil {
				return types.Denied(), err
			}
			return types.Granted(), nil
		}

		if err := m.incorrect(ctx); err != nil {
			return types.Denied(), err
		}
		if m.attemptsExhausted(attempt) {
			return types.Denied(), m.deny(ctx)
		}
	}
}

// ReadPasswordEntry collects up to PasswordMaxLen symbols. '#' ends the entry
// early; A-D and '*' are ignored. Each accepted symbol is echoed as '*'.
func (m *Machine) ReadPasswordEntry(ctx context.Context) (string, error) {
	buf := make([]byte, 0, PasswordMaxLen)

	for len(buf) < PasswordMaxLen {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		key, ok := m.keypad.Scan()
		if !ok {
			if err := m.pause(ctx, m.timing.PollInterval); err != nil {
				return "", err
			}
			continue
		}
		if key == types.KeyHash {
			break
		}
		if key.IsControl() {
			continue
		}

		buf = append(buf, byte(key))
		m.display.PutStr("*")
		if err := m.pause(ctx, m.timing.EntryEchoPause); err != nil {
			return "", err
		}
	}

	return string(buf), nil
}

// CreatePassword sets the first password. An existing password is never
// overwritten here: the user is sent through ResetPassword.
func (m *Machine) CreatePassword(ctx context.Context) error {
	m.setState(StateCreatingPassword)
	exists, err := m.creds.Exists(ctx)
	if err != nil {
		return err
	}
	if exists {
		m.showText("Password on file. Please reset.", "", false)
		if err := m.pause(ctx, m.timing.MessagePause); err != nil {
			return err
		}
		return m.ResetPassword(ctx)
	}
	return m.createNew(ctx)
}

func (m *Machine) createNew(ctx context.Context) error {
	m.setState(StateCreatingPassword)
	m.showText("Create Password:", "", true)

	entry, err := m.ReadPasswordEntry(ctx)
	if err != nil {
		return err
	}
	if err := m.creds.Save(ctx, entry); err != nil {
		return err
	}

	m.showText("Password Created", "", false)
	if err := m.activity.Append(ctx, types.StatusPasswordCreated); err != nil {
		return err
	}
	if err := m.pause(ctx, m.timing.MessagePause); err != nil {
		return err
	}
	return m.Welcome(ctx)
}

// ResetPassword asks for the current password, erases it once it matches
// and continues into password creation.
func (m *Machine) ResetPassword(ctx context.Context) error {
	m.setState(StateResettingPassword)
	exists, err := m.creds.Exists(ctx)
	if err != nil {
		return err
	}
	if !exists {
		return m.createNew(ctx)
	}

	for attempt := 1; ; attempt++ {
		m.showText("Old Password:", "", true)
		entry, err := m.ReadPasswordEntry(ctx)
		if err != nil {
			return err
		}

		ok, err := m.creds.Verify(ctx, entry)
		if err != nil {
			return err
		}
		if ok {
			break
		}

		if err := m.incorrect(ctx); err != nil {
			return err
		}
		if m.attemptsExhausted(attempt) {
			return m.deny(ctx)
		}
	}

	if err := m.creds.Clear(ctx); err != nil {
		return err
	}
	if err := m.activity.Append(ctx, types.StatusPasswordReset); err != nil {
		return err
	}
	return m.createNew(ctx)
}

func (m *Machine) incorrect(ctx context.Context) error {
	m.showText("Incorrect", "", false)
	return m.pause(ctx, m.timing.MessagePause)
}

func (m *Machine) attemptsExhausted(attempt int) bool {
	return m.policy.MaxAttempts > 0 && attempt >= m.policy.MaxAttempts
}

func (m *Machine) deny(ctx context.Context) error {
	m.showText("Access Denied", "", false)
	if err := m.activity.Append(ctx, types.StatusAccessDenied); err != nil {
		return err
	}
	return m.pause(ctx, m.timing.MessagePause)
}
