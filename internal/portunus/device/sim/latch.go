package sim

// Latch is a lock actuator that remembers how often it was driven.
type Latch struct {
	locked bool
	Sets   int

	OnChange func(locked bool)
}

func NewLatch(locked bool) *Latch {
	return &Latch{locked: locked}
}

func (l *Latch) SetLocked(locked bool) {
	l.Sets++
	l.locked = locked
	if l.OnChange != nil {
		l.OnChange(locked)
	}
}

func (l *Latch) Locked() bool { return l.locked }
