package input

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/Faultbox/gridview/internal/logger"
)

type fakeCursor struct {
	visible bool
	centers int
}

func (c *fakeCursor) SetVisible(v bool) { c.visible = v }
func (c *fakeCursor) Center()           { c.centers++ }

func TestDispatcherLatchesTransitions(t *testing.T) {
	d := NewDispatcher(DefaultKeymap())

	edge, ok := d.Key(KeyEvent(KeyW, true))
	require.True(t, ok)
	assert.Equal(t, Edge{Action: MoveForward, Pressed: true}, edge)
	assert.True(t, d.State().Held(MoveForward))

	edge, ok = d.Key(KeyEvent(KeyW, false))
	require.True(t, ok)
	assert.False(t, edge.Pressed)
	assert.False(t, d.State().Held(MoveForward))
}

func TestDispatcherDropsNonTransitions(t *testing.T) {
	tests := []struct {
		name  string
		event Event
	}{
		{"repeat", Event{Type: EventKey, Key: KeyW, Pressed: true, Repeat: true}},
		{"unmapped key", KeyEvent(KeyQ, true)},
		{"release of released action", KeyEvent(KeyA, false)},
		{"mouse motion", Event{Type: EventMouseMotion, DX: 3}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDispatcher(DefaultKeymap())
			_, ok := d.Key(tt.event)
			assert.False(t, ok)
		})
	}

	d := NewDispatcher(DefaultKeymap())
	_, ok := d.Key(KeyEvent(Key1, true))
	require.True(t, ok)
	_, ok = d.Key(KeyEvent(Key1, true))
	assert.False(t, ok, "second press without release is not an edge")
}

func TestStateReset(t *testing.T) {
	d := NewDispatcher(DefaultKeymap())
	d.Key(KeyEvent(KeyLeft, true))
	d.State().Reset()
	assert.False(t, d.State().Held(LookLeft))
	assert.False(t, d.State().Held(Action(-1)))
}

func TestKeymapApply(t *testing.T) {
	km := DefaultKeymap()
	require.NoError(t, km.Apply(map[string]string{"help": "F1", "spin": "h"}))

	k, ok := km.KeyFor(ToggleHelp)
	require.True(t, ok)
	assert.Equal(t, KeyF1, k)

	k, ok = km.KeyFor(ToggleSpin)
	require.True(t, ok)
	assert.Equal(t, KeyH, k)

	_, bound := km[Key1]
	assert.False(t, bound, "old spin key is released")
}

func TestKeymapApplyErrors(t *testing.T) {
	assert.Error(t, DefaultKeymap().Apply(map[string]string{"jump": "space"}))
	assert.Error(t, DefaultKeymap().Apply(map[string]string{"help": "hyper"}))
}

func TestKeyNames(t *testing.T) {
	for k := KeyUnknown + 1; k < keyCount; k++ {
		parsed, ok := ParseKey(k.String())
		assert.True(t, ok, "key %d", k)
		assert.Equal(t, k, parsed)
	}
	assert.Equal(t, "f10", KeyF10.String())
	assert.Equal(t, "7", Key7.String())
	assert.Equal(t, "unknown", Key(999).String())
}

func TestActionNames(t *testing.T) {
	for a := Action(0); a < actionCount; a++ {
		assert.NotEmpty(t, a.String())
		parsed, ok := ParseAction(a.String())
		assert.True(t, ok)
		assert.Equal(t, a, parsed)
	}
}

func TestMouseGrabberLockCycle(t *testing.T) {
	cursor := &fakeCursor{}
	g := NewMouseGrabber(cursor)
	assert.True(t, cursor.visible)
	assert.False(t, g.Locked())

	assert.False(t, g.Motion(), "no forwarding while unlocked")
	assert.Zero(t, cursor.centers)

	click := Event{Type: EventMouseButton, Button: ButtonLeft, Pressed: true}
	assert.True(t, g.HandleEvent(click))
	assert.True(t, g.Locked())
	assert.False(t, cursor.visible)

	assert.False(t, g.HandleEvent(click), "already locked")

	assert.True(t, g.Motion())
	assert.Equal(t, 1, cursor.centers)

	assert.True(t, g.HandleEdge(Edge{Action: ReleaseCursor, Pressed: true}))
	assert.False(t, g.Locked())
	assert.True(t, cursor.visible)

	assert.False(t, g.HandleEdge(Edge{Action: ReleaseCursor, Pressed: true}), "already unlocked")
}

func TestMouseGrabberIgnoresOtherInput(t *testing.T) {
	cursor := &fakeCursor{}
	g := NewMouseGrabber(cursor)

	assert.False(t, g.HandleEvent(Event{Type: EventMouseButton, Button: ButtonRight, Pressed: true}))
	assert.False(t, g.HandleEvent(Event{Type: EventMouseButton, Button: ButtonLeft, Pressed: false}))
	assert.False(t, g.Locked())

	g.HandleEvent(Event{Type: EventMouseButton, Button: ButtonLeft, Pressed: true})
	assert.False(t, g.HandleEdge(Edge{Action: ReleaseCursor, Pressed: false}))
	assert.False(t, g.HandleEdge(Edge{Action: ToggleHelp, Pressed: true}))
	assert.True(t, g.Locked())
	assert.Equal(t, !g.Locked(), cursor.visible)
}

func TestKeymapBindReportsDisplacedAction(t *testing.T) {
	km := DefaultKeymap()

	lost, ok := km.Bind(MoveForward, KeyUp)
	require.True(t, ok)
	assert.Equal(t, LookUp, lost)
	_, bound := km.KeyFor(LookUp)
	assert.False(t, bound)

	_, ok = km.Bind(MoveForward, KeyUp)
	assert.False(t, ok, "rebinding to its own key displaces nothing")

	_, ok = km.Bind(ToggleHelp, KeyF1)
	assert.False(t, ok, "free key")
}

func TestKeymapApplyWarnsOnConflict(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	prev := logger.Log
	logger.Log = zap.New(core)
	t.Cleanup(func() { logger.Log = prev })

	km := DefaultKeymap()
	require.NoError(t, km.Apply(map[string]string{"forward": "up", "help": "f1"}))

	entries := logs.FilterMessage("key rebinding leaves action unbound").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "look_up", fields["unbound"])
	assert.Equal(t, "forward", fields["bound_to"])
}
