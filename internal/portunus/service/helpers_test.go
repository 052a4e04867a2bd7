package service_test

import (
	"context"
	"io"
	"log"
	"testing"
	"time"

	"github.com/BrandonDHaskell/Portunus/lock/internal/dependencies/mocks"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/device"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/device/sim"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/service"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/store/memory"
)

func silentLogger() *log.Logger {
	return log.New(io.Discard, "", 0)
}

// rig is a Machine wired to simulated peripherals and in-memory stores.
// The context is cancelled as soon as the keypad script or the card field
// runs dry, so every flow terminates.
type rig struct {
	ctx    context.Context
	cancel context.CancelFunc

	m        *service.Machine
	keypad   *sim.Keypad
	lcd      *sim.LCD
	latch    *sim.Latch
	reader   *sim.CardReader
	store    *memory.CredentialStore
	activity *memory.ActivityLog
	clock    *mocks.MockClock
	creds    *service.Credentials
}

func newRig(t *testing.T, opts ...func(*service.Dependencies)) *rig {
	t.Helper()

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)

	r := &rig{
		ctx:      ctx,
		cancel:   cancel,
		keypad:   sim.NewKeypad(),
		lcd:      sim.NewLCD(),
		latch:    sim.NewLatch(true),
		reader:   sim.NewCardReader(),
		store:    memory.NewCredentialStore(),
		activity: memory.NewActivityLog(),
		clock:    mocks.NewMockClock(time.Date(2024, 3, 5, 14, 7, 9, 0, time.UTC)),
	}
	r.keypad.OnEmpty = cancel
	r.reader.OnEmpty = cancel
	r.creds = service.NewCredentials(r.store)

	deps := service.Dependencies{
		Logger: silentLogger(),
		Peripherals: device.Peripherals{
			Keypad:  r.keypad,
			Display: r.lcd,
			Lock:    r.latch,
			Reader:  r.reader,
		},
		Credentials: r.creds,
		Activity:    service.NewActivityLogger(r.activity, r.clock),
		Sleeper:     r.clock,
		Policy:      service.Policy{UnlockOnCardMatch: true},
	}
	for _, opt := range opts {
		opt(&deps)
	}
	r.m = service.NewMachine(deps)
	return r
}

// withPassword stores password as the current credential.
func (r *rig) withPassword(t *testing.T, password string) *rig {
	t.Helper()
	if err := r.creds.Save(context.Background(), password); err != nil {
		t.Fatalf("Save: %v", err)
	}
	return r
}

func (r *rig) typeKeys(s string) *rig {
	r.keypad.Type(s)
	return r
}
