package camera

import (
	"math/rand"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/gridview/internal/engine/input"
	"github.com/Faultbox/gridview/internal/engine/mode"
)

type rig struct {
	cam   *Camera
	ctrl  *Controller
	disp  *input.Dispatcher
	modes *mode.Tracker
}

func newRig(start mode.Mode) *rig {
	return &rig{
		cam:   New(1, 1),
		ctrl:  NewController(DefaultSettings()),
		disp:  input.NewDispatcher(input.DefaultKeymap()),
		modes: mode.NewTracker(start),
	}
}

func (r *rig) key(k input.Key, pressed bool) {
	if edge, ok := r.disp.Key(input.KeyEvent(k, pressed)); ok {
		r.ctrl.HandleEdge(edge, r.modes)
	}
}

func (r *rig) tap(k input.Key) {
	r.key(k, true)
	r.key(k, false)
}

func (r *rig) frame() {
	r.ctrl.Update(r.cam, r.disp.State(), r.modes)
}

// assertVec3 compares component-wise with an absolute tolerance. mgl32's
// ApproxEqual is relative and rejects float noise next to an exact zero.
func assertVec3(t *testing.T, want, got mgl32.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	for i := 0; i < 3; i++ {
		assert.InDelta(t, want[i], got[i], delta, msgAndArgs...)
	}
}

func TestWrapYaw(t *testing.T) {
	tests := []struct {
		in, want float32
	}{
		{0, 0},
		{359.5, 359.5},
		{360, 360},
		{360.5, 0.5},
		{-360, -360},
		{-360.5, -0.5},
		{-90, -90},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, WrapYaw(tt.in), "WrapYaw(%v)", tt.in)
	}
}

func TestPitchStaysClamped(t *testing.T) {
	r := newRig(mode.Navigating)
	rng := rand.New(rand.NewSource(7))
	look := []input.Key{input.KeyUp, input.KeyDown}

	for i := 0; i < 2000; i++ {
		switch rng.Intn(3) {
		case 0:
			r.ctrl.MouseDelta(rng.Float64()*400-200, rng.Float64()*4000-2000, r.modes)
		case 1:
			r.key(look[rng.Intn(2)], rng.Intn(2) == 0)
		}
		r.frame()

		p := r.ctrl.Pitch()
		require.GreaterOrEqual(t, p, float32(-89))
		require.LessOrEqual(t, p, float32(89))
		y := r.ctrl.Yaw()
		require.Greater(t, y, float32(-720))
		require.Less(t, y, float32(720))
	}
}

func TestMouseDelta(t *testing.T) {
	r := newRig(mode.Navigating)

	r.ctrl.MouseDelta(10, 20, r.modes)
	assert.InDelta(t, -89, r.ctrl.Yaw(), 1e-5)
	assert.InDelta(t, -2, r.ctrl.Pitch(), 1e-5)

	r.ctrl.MouseDelta(0, -10000, r.modes)
	assert.Equal(t, float32(89), r.ctrl.Pitch())

	r.ctrl.MouseDelta(4600, 0, r.modes)
	assert.InDelta(t, 11, r.ctrl.Yaw(), 1e-3, "371 wraps to 11")
}

func TestMouseDeltaIgnoredInHelp(t *testing.T) {
	r := newRig(mode.Help)
	r.ctrl.MouseDelta(100, 100, r.modes)
	assert.Equal(t, float32(-90), r.ctrl.Yaw())
	assert.Equal(t, float32(0), r.ctrl.Pitch())
}

func TestHelpPosePinnedEveryFrame(t *testing.T) {
	r := newRig(mode.Help)
	r.cam.Eye = mgl32.Vec3{9, 9, 9}
	r.key(input.KeyW, true)
	r.key(input.KeyLeft, true)

	for i := 0; i < 5; i++ {
		r.frame()
		assert.Equal(t, HelpEye, r.cam.Eye)
		assert.Equal(t, HelpTarget, r.cam.Target)
		r.cam.Eye = mgl32.Vec3{1, 2, 3}
	}
	assert.Equal(t, float32(-90), r.ctrl.Yaw(), "arrows do nothing in help")
}

func TestFirstExitRestoresInitialPose(t *testing.T) {
	r := newRig(mode.Help)
	r.frame()

	r.tap(input.KeyH)
	require.True(t, r.modes.Navigating())
	r.frame()

	assert.Equal(t, mgl32.Vec3{0, 1, 2}, r.cam.Eye)
	assertVec3(t, mgl32.Vec3{0, 1, 1}, r.cam.Target, 1e-5, "target follows yaw -90")
}

func TestHelpRoundTripRestoresPose(t *testing.T) {
	r := newRig(mode.Navigating)

	r.key(input.KeyW, true)
	r.ctrl.MouseDelta(50, -30, r.modes)
	for i := 0; i < 10; i++ {
		r.frame()
	}
	r.key(input.KeyW, false)
	r.frame()
	eye, target := r.cam.Eye, r.cam.Target

	r.tap(input.KeyH)
	require.False(t, r.modes.Navigating())
	for i := 0; i < 3; i++ {
		r.frame()
	}
	assert.Equal(t, HelpEye, r.cam.Eye)

	r.tap(input.KeyH)
	r.frame()
	assert.Equal(t, eye, r.cam.Eye)
	assert.Equal(t, target, r.cam.Target)
}

func TestMovement(t *testing.T) {
	tests := []struct {
		name string
		key  input.Key
		want mgl32.Vec3
	}{
		{"forward", input.KeyW, mgl32.Vec3{0, 1, 1.95}},
		{"backward", input.KeyS, mgl32.Vec3{0, 1, 2.05}},
		{"right", input.KeyD, mgl32.Vec3{0.05, 1, 2}},
		{"left", input.KeyA, mgl32.Vec3{-0.05, 1, 2}},
		{"up", input.KeySpace, mgl32.Vec3{0, 1.05, 2}},
		{"down", input.KeyShiftLeft, mgl32.Vec3{0, 0.95, 2}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newRig(mode.Navigating)
			r.key(tt.key, true)
			r.frame()

			assertVec3(t, tt.want, r.cam.Eye, 1e-5, "eye %v", r.cam.Eye)
			assertVec3(t, r.cam.Eye.Add(r.ctrl.Forward()), r.cam.Target, 1e-6)
		})
	}
}

func TestArrowLookRate(t *testing.T) {
	r := newRig(mode.Navigating)
	r.key(input.KeyRight, true)
	r.key(input.KeyUp, true)
	for i := 0; i < 4; i++ {
		r.frame()
	}
	assert.InDelta(t, -88, r.ctrl.Yaw(), 1e-5)
	assert.InDelta(t, 2, r.ctrl.Pitch(), 1e-5)
}

func TestScroll(t *testing.T) {
	r := newRig(mode.Navigating)
	r.frame()

	r.ctrl.Scroll(r.cam, 1, input.ScrollLines, r.modes)
	assertVec3(t, mgl32.Vec3{0, 1, -0.5}, r.cam.Eye, 1e-5, "eye %v", r.cam.Eye)

	eye, _ := r.ctrl.Snapshot()
	assert.Equal(t, r.cam.Eye, eye, "scroll refreshes the snapshot")

	before := r.cam.Eye
	r.ctrl.Scroll(r.cam, 3, input.ScrollPixels, r.modes)
	assert.Equal(t, before, r.cam.Eye, "pixel deltas are ignored")

	r.tap(input.KeyH)
	r.ctrl.Scroll(r.cam, 1, input.ScrollLines, r.modes)
	assert.Equal(t, before, r.cam.Eye, "no scrolling in help")
}

func TestHandleEdgeClaims(t *testing.T) {
	c := NewController(DefaultSettings())
	modes := mode.NewTracker(mode.Help)

	assert.True(t, c.HandleEdge(input.Edge{Action: input.MoveForward, Pressed: true}, modes))
	assert.False(t, c.HandleEdge(input.Edge{Action: input.ToggleSpin, Pressed: true}, modes))

	assert.True(t, c.HandleEdge(input.Edge{Action: input.ToggleHelp, Pressed: false}, modes))
	assert.False(t, modes.Navigating(), "release does not toggle")

	assert.True(t, c.HandleEdge(input.Edge{Action: input.ToggleHelp, Pressed: true}, modes))
	assert.True(t, modes.Navigating())
}
