package service

import (
	"context"
	"log"
	"time"

	"github.com/BrandonDHaskell/Portunus/lock/internal/dependencies/clock"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/device"
	"github.com/BrandonDHaskell/Portunus/lock/internal/portunus/types"
)

// State is the step of the lock's input flow currently running.
type State int

const (
	StateMenu State = iota
	StateAwaitingPassword
	StateCreatingPassword
	StateResettingPassword
	StateCheckingLock
	StateReadingCard
	StateEnrollingCard
)

func (s State) String() string {
	switch s {
	case StateMenu:
		return "menu"
	case StateAwaitingPassword:
		return "awaiting_password"
	case StateCreatingPassword:
		return "creating_password"
	case StateResettingPassword:
		return "resetting_password"
	case StateCheckingLock:
		return "checking_lock"
	case StateReadingCard:
		return "reading_card"
	case StateEnrollingCard:
		return "enrolling_card"
	default:
		return "unknown"
	}
}

const (
	DefaultWelcomeText = "Press any key to unlock"
	DefaultOptionsText = "Please press on the letters to see the individual options"
)

// Timing holds every pause the lock takes. Pauses block the whole device.
type Timing struct {
	PollInterval   time.Duration // between scans that found nothing
	ScrollStep     time.Duration // per frame of a scrolling text
	KeyEchoPause   time.Duration // after echoing a menu keypress
	EntryEchoPause time.Duration // after echoing a password digit
	GoodbyePause   time.Duration
	MessagePause   time.Duration // after status messages
	CardPause      time.Duration // after reading a card
}

func DefaultTiming() Timing {
	return Timing{
		PollInterval:   10 * time.Millisecond,
		ScrollStep:     500 * time.Millisecond,
		KeyEchoPause:   300 * time.Millisecond,
		EntryEchoPause: 200 * time.Millisecond,
		GoodbyePause:   time.Second,
		MessagePause:   2 * time.Second,
		CardPause:      time.Second,
	}
}

type Policy struct {
	// MaxAttempts bounds consecutive wrong passwords in one flow.
	// 0 retries forever.
	MaxAttempts int

	// UnlockOnCardMatch grants access when a presented card carries the
	// current credential digest.
	UnlockOnCardMatch bool
}

type Dependencies struct {
	Logger      *log.Logger
	Peripherals device.Peripherals
	Credentials *Credentials
	Activity    *ActivityLogger
	Sleeper     clock.Sleeper
	Timing      Timing
	Policy      Policy
	CardKey     device.CardKey
	WelcomeText string
	OptionsText string
}

// Machine is the lock's input and authentication state machine. It owns the
// peripherals and runs on a single goroutine: every call blocks until its
// flow finishes.
type Machine struct {
	logger   *log.Logger
	keypad   device.Keypad
	display  device.Display
	lock     device.Lock
	reader   device.CardReader
	creds    *Credentials
	activity *ActivityLogger
	sleeper  clock.Sleeper
	timing   Timing
	policy   Policy
	cardKey  device.CardKey
	welcome  string
	options  string

	state State
	abort chan struct{}
}

func NewMachine(d Dependencies) *Machine {
	if d.Timing == (Timing{}) {
		d.Timing = DefaultTiming()
	}
	if d.CardKey == (device.CardKey{}) {
		d.CardKey = device.DefaultCardKey
	}
	if d.WelcomeText == "" {
		d.WelcomeText = DefaultWelcomeText
	}
	if d.OptionsText == "" {
		d.OptionsText = DefaultOptionsText
	}

	return &Machine{
		logger:   d.Logger,
		keypad:   d.Peripherals.Keypad,
		display:  d.Peripherals.Display,
		lock:     d.Peripherals.Lock,
		reader:   d.Peripherals.Reader,
		creds:    d.Credentials,
		activity: d.Activity,
		sleeper:  d.Sleeper,
		timing:   d.Timing,
		policy:   d.Policy,
		cardKey:  d.CardKey,
		welcome:  d.WelcomeText,
		options:  d.OptionsText,
		state:    StateMenu,
		abort:    make(chan struct{}, 1),
	}
}

func (m *Machine) State() State { return m.state }

func (m *Machine) setState(s State) { m.state = s }

// Abort ends a card read or card enrollment that is waiting for a card; the
// machine goes back to the menu. It may be called from any goroutine and is
// ignored when no card flow is waiting.
func (m *Machine) Abort() {
	select {
	case m.abort <- struct{}{}:
	default:
	}
}

func (m *Machine) aborted() bool {
	select {
	case <-m.abort:
		return true
	default:
		return false
	}
}

// clearAbort drops an abort requested before the current flow started.
func (m *Machine) clearAbort() { m.aborted() }

// Run shows the welcome scroll and then serves the keypad menu until ctx is
// cancelled. A failing flow is reported and abandoned; the menu carries on.
func (m *Machine) Run(ctx context.Context) error {
	if err := m.Welcome(ctx); err != nil {
		return err
	}

	for {
		if err := m.Step(ctx); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			m.logger.Printf("%s failed: %v", m.state, err)
			if err := m.abandon(ctx); err != nil {
				return err
			}
		}
	}
}

func (m *Machine) abandon(ctx context.Context) error {
	m.setState(StateMenu)
	m.showText("System Error", "", false)
	return m.pause(ctx, m.timing.MessagePause)
}

// Step scans the keypad once and runs the flow the key selects. The state
// returns to menu when the flow succeeds; a failed flow keeps its state for
// the caller to report.
func (m *Machine) Step(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	key, ok := m.keypad.Scan()
	if !ok {
		return m.pause(ctx, m.timing.PollInterval)
	}
	if err := m.dispatch(ctx, key); err != nil {
		return err
	}
	m.setState(StateMenu)
	return nil
}

func (m *Machine) dispatch(ctx context.Context, key types.Key) error {
	switch key {
	case types.KeyStar:
		return m.Goodbye(ctx)
	case types.KeyHash:
		return m.ShowOptions(ctx)
	case types.KeyA:
		m.display.Clear()
		_, err := m.InputPassword(ctx, ModeGrant)
		return err
	case types.KeyB:
		m.display.Clear()
		return m.CheckLock(ctx)
	case types.KeyC:
		m.display.Clear()
		return m.CreatePassword(ctx)
	case types.KeyD:
		m.display.Clear()
		return m.ReadCard(ctx)
	default:
		m.display.PutStr(key.String())
		return m.pause(ctx, m.timing.KeyEchoPause)
	}
}

// CheckLock engages the lock if it is open. Only the transition is logged;
// a lock that is already engaged is left alone.
func (m *Machine) CheckLock(ctx context.Context) error {
	m.setState(StateCheckingLock)

	if m.lock.Locked() {
		m.showText("Already Locked", "", false)
		return nil
	}

	m.lock.SetLocked(true)
	m.showText("Locked", "", false)
	return m.activity.Append(ctx, types.StatusLocked)
}

func (m *Machine) grantAccess(ctx context.Context) error {
	m.showText("Access Granted", "Unlocked", false)
	m.lock.SetLocked(false)
	if err := m.activity.Append(ctx, types.StatusUnlocked); err != nil {
		return err
	}
	return m.pause(ctx, m.timing.MessagePause)
}

func (m *Machine) pause(ctx context.Context, d time.Duration) error {
	return m.sleeper.Sleep(ctx, d)
}
