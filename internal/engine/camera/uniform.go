package camera

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gridview/internal/engine/gpu"
)

// Uniform mirrors a camera's view-projection for the shaders.
type Uniform struct {
	ViewProj mgl32.Mat4
}

// NewUniform returns a uniform holding the identity matrix.
func NewUniform() *Uniform {
	return &Uniform{ViewProj: mgl32.Ident4()}
}

// Update copies the camera's current view-projection.
func (u *Uniform) Update(c *Camera) {
	u.ViewProj = c.ViewProjection()
}

// Bytes serializes the uniform block.
func (u *Uniform) Bytes() []byte {
	return gpu.AppendMat4(make([]byte, 0, gpu.Mat4Size), u.ViewProj)
}
