package camera

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"go.uber.org/zap"

	"github.com/Faultbox/gridview/internal/engine/input"
	"github.com/Faultbox/gridview/internal/engine/mode"
	"github.com/Faultbox/gridview/internal/logger"
)

const (
	// MaxPitch keeps the view direction away from the up vector.
	MaxPitch = 89.0
	// YawLimit is the magnitude past which yaw wraps by a full turn.
	YawLimit = 360.0

	scrollScale = 50.0
)

// Help pose: the overlay panel sits in front of this eye.
var (
	HelpEye    = mgl32.Vec3{0, 0, 2}
	HelpTarget = mgl32.Vec3{0, 0, 0}
)

// Settings tunes a Controller.
type Settings struct {
	Speed       float32 // units per frame
	Sensitivity float32 // degrees per pixel
	LookRate    float32 // degrees per frame for arrow keys
	Yaw         float32 // degrees
	Pitch       float32 // degrees

	// Pose restored the first time the user leaves help.
	Eye    mgl32.Vec3
	Target mgl32.Vec3
}

// DefaultSettings returns the stock controller tuning.
func DefaultSettings() Settings {
	return Settings{
		Speed:       0.05,
		Sensitivity: 0.1,
		LookRate:    0.5,
		Yaw:         -90, // looking down -Z
		Pitch:       0,
		Eye:         mgl32.Vec3{0, 1, 2},
		Target:      mgl32.Vec3{0, 0, 0},
	}
}

// Controller flies a Camera from the shared input state. While the viewer
// is in help mode it pins the camera on the help panel instead.
type Controller struct {
	speed       float32
	sensitivity float32
	lookRate    float32

	yaw   float32
	pitch float32

	savedEye    mgl32.Vec3
	savedTarget mgl32.Vec3
	exit        mode.ExitLatch

	log *zap.Logger
}

// NewController creates a controller from settings.
func NewController(s Settings) *Controller {
	return &Controller{
		speed:       s.Speed,
		sensitivity: s.Sensitivity,
		lookRate:    s.LookRate,
		yaw:         WrapYaw(s.Yaw),
		pitch:       ClampPitch(s.Pitch),
		savedEye:    s.Eye,
		savedTarget: s.Target,
		log:         logger.Named("camera"),
	}
}

// Yaw returns the horizontal angle in degrees.
func (c *Controller) Yaw() float32 { return c.yaw }

// Pitch returns the vertical angle in degrees.
func (c *Controller) Pitch() float32 { return c.pitch }

// Snapshot returns the saved navigating pose.
func (c *Controller) Snapshot() (eye, target mgl32.Vec3) {
	return c.savedEye, c.savedTarget
}

// HandleEdge reacts to an action transition. Movement and look actions are
// read from the input state during Update, so they only need to be claimed
// here. A press of ToggleHelp flips the shared mode.
func (c *Controller) HandleEdge(edge input.Edge, modes *mode.Tracker) bool {
	switch edge.Action {
	case input.MoveForward, input.MoveBackward, input.MoveLeft, input.MoveRight,
		input.MoveUp, input.MoveDown,
		input.LookLeft, input.LookRight, input.LookUp, input.LookDown:
		return true
	case input.ToggleHelp:
		if edge.Pressed {
			m := modes.Toggle()
			c.log.Info("mode changed", zap.Stringer("mode", m))
		}
		return true
	default:
		return false
	}
}

// MouseDelta turns relative mouse motion into yaw and pitch.
func (c *Controller) MouseDelta(dx, dy float64, modes *mode.Tracker) {
	if !modes.Navigating() {
		return
	}
	c.yaw = WrapYaw(c.yaw + float32(dx)*c.sensitivity)
	c.pitch = ClampPitch(c.pitch - float32(dy)*c.sensitivity)
}

// Scroll dollies the eye along the view direction. Only line deltas move
// the camera; pixel deltas are accepted and ignored.
func (c *Controller) Scroll(cam *Camera, delta float32, unit input.ScrollUnit, modes *mode.Tracker) {
	if !modes.Navigating() || unit != input.ScrollLines {
		return
	}
	cam.Eye = cam.Eye.Add(c.Forward().Mul(delta * c.speed * scrollScale))
	c.save(cam)
}

// Update advances the camera by one frame.
func (c *Controller) Update(cam *Camera, state *input.State, modes *mode.Tracker) {
	if !modes.Navigating() {
		cam.Eye = HelpEye
		cam.Target = HelpTarget
		return
	}

	if c.exit.Consume(modes) {
		cam.Eye = c.savedEye
		cam.Target = c.savedTarget
		c.log.Debug("restored navigating pose", zap.Any("eye", cam.Eye))
	}

	if state.Held(input.LookLeft) {
		c.yaw -= c.lookRate
	}
	if state.Held(input.LookRight) {
		c.yaw += c.lookRate
	}
	if state.Held(input.LookUp) {
		c.pitch += c.lookRate
	}
	if state.Held(input.LookDown) {
		c.pitch -= c.lookRate
	}
	c.pitch = ClampPitch(c.pitch)
	c.yaw = WrapYaw(c.yaw)

	forward := c.Forward()
	right := forward.Cross(cam.Up).Normalize()

	if state.Held(input.MoveForward) {
		cam.Eye = cam.Eye.Add(forward.Mul(c.speed))
	}
	if state.Held(input.MoveBackward) {
		cam.Eye = cam.Eye.Sub(forward.Mul(c.speed))
	}
	if state.Held(input.MoveRight) {
		cam.Eye = cam.Eye.Add(right.Mul(c.speed))
	}
	if state.Held(input.MoveLeft) {
		cam.Eye = cam.Eye.Sub(right.Mul(c.speed))
	}
	if state.Held(input.MoveUp) {
		cam.Eye[1] += c.speed
	}
	if state.Held(input.MoveDown) {
		cam.Eye[1] -= c.speed
	}

	cam.Target = cam.Eye.Add(forward)
	c.save(cam)
}

// Forward returns the unit view direction for the current yaw and pitch.
func (c *Controller) Forward() mgl32.Vec3 {
	yaw := float64(mgl32.DegToRad(c.yaw))
	pitch := float64(mgl32.DegToRad(c.pitch))
	return mgl32.Vec3{
		float32(math.Cos(yaw) * math.Cos(pitch)),
		float32(math.Sin(pitch)),
		float32(math.Sin(yaw) * math.Cos(pitch)),
	}.Normalize()
}

func (c *Controller) save(cam *Camera) {
	c.savedEye = cam.Eye
	c.savedTarget = cam.Target
}

// ClampPitch limits pitch to [-89, 89] degrees.
func ClampPitch(p float32) float32 {
	return mgl32.Clamp(p, -MaxPitch, MaxPitch)
}

// WrapYaw brings yaw back by one turn once it passes ±360 degrees.
func WrapYaw(y float32) float32 {
	if y > YawLimit {
		return y - YawLimit
	}
	if y < -YawLimit {
		return y + YawLimit
	}
	return y
}
