// Package mode holds the viewer's interaction mode shared by the camera
// controller and the world.
package mode

// Mode is the viewer's interaction mode.
type Mode int

const (
	// Help shows the help overlay with a fixed camera.
	Help Mode = iota
	// Navigating hands the camera to the user.
	Navigating
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case Help:
		return "help"
	case Navigating:
		return "navigating"
	default:
		return "unknown"
	}
}

// Tracker is the single source of truth for the current mode.
// It counts Help -> Navigating transitions so that each consumer can react
// to a transition exactly once through its own ExitLatch.
type Tracker struct {
	current Mode
	exits   uint64
}

// NewTracker creates a tracker starting in the given mode.
func NewTracker(initial Mode) *Tracker {
	return &Tracker{current: initial}
}

// Current returns the current mode.
func (t *Tracker) Current() Mode {
	return t.current
}

// Navigating reports whether the user controls the camera.
func (t *Tracker) Navigating() bool {
	return t.current == Navigating
}

// Toggle flips between Help and Navigating and returns the new mode.
func (t *Tracker) Toggle() Mode {
	if t.current == Help {
		t.Set(Navigating)
	} else {
		t.Set(Help)
	}
	return t.current
}

// Set switches to m. Setting the current mode is a no-op.
func (t *Tracker) Set(m Mode) {
	if m == t.current {
		return
	}
	if t.current == Help && m == Navigating {
		t.exits++
	}
	t.current = m
}

// ExitLatch fires once per Help -> Navigating transition for one consumer.
// The zero value is ready to use.
type ExitLatch struct {
	seen uint64
}

// Consume reports whether the tracker left Help since the last call that
// returned true. It only fires while the tracker is Navigating, so a
// transition followed by a return to Help before anyone looked is deferred
// to the next Navigating frame.
func (l *ExitLatch) Consume(t *Tracker) bool {
	if !t.Navigating() || l.seen == t.exits {
		return false
	}
	l.seen = t.exits
	return true
}
