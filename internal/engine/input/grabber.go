package input

import (
	"go.uber.org/zap"

	"github.com/Faultbox/gridview/internal/logger"
)

// Cursor is the platform cursor the grabber drives.
type Cursor interface {
	SetVisible(visible bool)
	// Center warps the cursor to the middle of the window.
	Center()
}

// MouseGrabber locks the cursor to the window while the user is looking
// around. The cursor is hidden exactly when the grabber is locked.
type MouseGrabber struct {
	cursor Cursor
	locked bool
	log    *zap.Logger
}

// NewMouseGrabber creates an unlocked grabber and makes the cursor visible.
func NewMouseGrabber(cursor Cursor) *MouseGrabber {
	cursor.SetVisible(true)
	return &MouseGrabber{
		cursor: cursor,
		log:    logger.Named("input"),
	}
}

// Locked reports whether the cursor is captured.
func (g *MouseGrabber) Locked() bool {
	return g.locked
}

// HandleEvent locks on a left-button press. It returns true when the lock
// state changed.
func (g *MouseGrabber) HandleEvent(e Event) bool {
	if e.Type != EventMouseButton || e.Button != ButtonLeft || !e.Pressed || g.locked {
		return false
	}
	g.setLocked(true)
	return true
}

// HandleEdge unlocks on a press of ReleaseCursor. It returns true when the
// lock state changed.
func (g *MouseGrabber) HandleEdge(edge Edge) bool {
	if edge.Action != ReleaseCursor || !edge.Pressed || !g.locked {
		return false
	}
	g.setLocked(false)
	return true
}

// Motion is called for every mouse move. While locked it re-centers the
// cursor and reports that the delta should drive the camera.
func (g *MouseGrabber) Motion() bool {
	if !g.locked {
		return false
	}
	g.cursor.Center()
	return true
}

func (g *MouseGrabber) setLocked(locked bool) {
	g.locked = locked
	g.cursor.SetVisible(!locked)
	g.log.Debug("cursor lock changed", zap.Bool("locked", locked))
}
