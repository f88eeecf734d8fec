// Package input turns platform events into logical viewer actions.
package input

// Event types for viewer use
type EventType int

const (
	EventNone EventType = iota
	EventQuit
	EventWindowResize
	EventKey
	EventMouseMotion
	EventMouseButton
	EventScroll
	EventFocusLost
)

// MouseButton identifies a mouse button.
type MouseButton uint8

const (
	ButtonNone MouseButton = iota
	ButtonLeft
	ButtonMiddle
	ButtonRight
)

// ScrollUnit tells how a scroll delta is measured.
type ScrollUnit uint8

const (
	// ScrollLines is a wheel delta in notches.
	ScrollLines ScrollUnit = iota
	// ScrollPixels is a touchpad delta in pixels.
	ScrollPixels
)

// Event represents a processed input event.
type Event struct {
	Type EventType

	// Key events
	Key     Key
	Pressed bool
	Repeat  bool

	// Relative mouse motion
	DX, DY float64

	// Mouse button (Pressed is shared with key events)
	Button MouseButton

	// Vertical scroll
	Scroll     float32
	ScrollUnit ScrollUnit

	// Window resize
	Width  int
	Height int
}

// KeyEvent is a convenience constructor used by platform bridges and tests.
func KeyEvent(k Key, pressed bool) Event {
	return Event{Type: EventKey, Key: k, Pressed: pressed}
}
