package input

// State is the latched pressed/released state of every action.
type State struct {
	held [actionCount]bool
}

// Held reports whether the key bound to a is currently down.
func (s *State) Held(a Action) bool {
	if a < 0 || a >= actionCount {
		return false
	}
	return s.held[a]
}

// Reset releases every action. Keys let go while another window has focus
// never report a release.
func (s *State) Reset() {
	s.held = [actionCount]bool{}
}

// Edge is a single press or release of an action.
type Edge struct {
	Action  Action
	Pressed bool
}

// Dispatcher is the only writer of State. It maps key events through a
// Keymap and reports real transitions as edges.
type Dispatcher struct {
	keymap Keymap
	state  State
}

// NewDispatcher creates a dispatcher over the given bindings.
func NewDispatcher(keymap Keymap) *Dispatcher {
	return &Dispatcher{keymap: keymap}
}

// State returns the shared input state record.
func (d *Dispatcher) State() *State {
	return &d.state
}

// Key latches a key event. It returns false for anything that is not a
// transition: non-key events, auto-repeats, unmapped keys, and a press of an
// already held action (or release of a released one).
func (d *Dispatcher) Key(e Event) (Edge, bool) {
	if e.Type != EventKey || e.Repeat {
		return Edge{}, false
	}
	a, ok := d.keymap[e.Key]
	if !ok {
		return Edge{}, false
	}
	if d.state.held[a] == e.Pressed {
		return Edge{}, false
	}
	d.state.held[a] = e.Pressed
	return Edge{Action: a, Pressed: e.Pressed}, true
}
