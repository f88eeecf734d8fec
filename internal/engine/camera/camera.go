// Package camera provides the free-flying viewer camera and its controller.
package camera

import (
	"github.com/go-gl/mathgl/mgl32"
)

// OpenGLToWGPU is the clip-space correction applied after the perspective
// matrix: z' = z/2 and w' = w + z/2. Column-major. It is not an exact
// [-1,1] to [0,1] depth remap; the reference view-projection depends on
// this layout.
var OpenGLToWGPU = mgl32.Mat4{
	1, 0, 0, 0,
	0, 1, 0, 0,
	0, 0, 0.5, 0.5,
	0, 0, 0, 1,
}

// Camera is a perspective camera looking from Eye at Target.
// Up must not be parallel to Target-Eye.
type Camera struct {
	Eye    mgl32.Vec3
	Target mgl32.Vec3
	Up     mgl32.Vec3

	Aspect float32
	FovY   float32 // degrees
	ZNear  float32
	ZFar   float32
}

// New creates a camera at (0,1,2) looking at the origin.
func New(width, height int) *Camera {
	c := &Camera{
		Eye:    mgl32.Vec3{0, 1, 2},
		Target: mgl32.Vec3{0, 0, 0},
		Up:     mgl32.Vec3{0, 1, 0},
		Aspect: 1,
		FovY:   45,
		ZNear:  0.1,
		ZFar:   100,
	}
	c.SetViewport(width, height)
	return c
}

// SetViewport updates the aspect ratio. Degenerate sizes are ignored.
func (c *Camera) SetViewport(width, height int) {
	if width <= 0 || height <= 0 {
		return
	}
	c.Aspect = float32(width) / float32(height)
}

// ViewProjection returns the combined view-projection matrix for the
// current pose.
func (c *Camera) ViewProjection() mgl32.Mat4 {
	return BuildViewProjection(c.Eye, c.Target, c.Up, c.FovY, c.Aspect, c.ZNear, c.ZFar)
}

// BuildViewProjection composes the clip-space conversion, a perspective
// projection (fovy in degrees) and a look-at view.
func BuildViewProjection(eye, target, up mgl32.Vec3, fovy, aspect, near, far float32) mgl32.Mat4 {
	view := mgl32.LookAtV(eye, target, up)
	proj := mgl32.Perspective(mgl32.DegToRad(fovy), aspect, near, far)
	return OpenGLToWGPU.Mul4(proj).Mul4(view)
}
