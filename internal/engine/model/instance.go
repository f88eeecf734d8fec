package model

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gridview/internal/engine/gpu"
)

// Instance places one copy of a model in the world.
type Instance struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
	Scale    float32
}

// InstanceSize is the byte stride of a serialized instance.
const InstanceSize = gpu.Mat4Size

// Matrix returns the model matrix T * R * S.
func (i Instance) Matrix() mgl32.Mat4 {
	t := mgl32.Translate3D(i.Position.X(), i.Position.Y(), i.Position.Z())
	s := mgl32.Scale3D(i.Scale, i.Scale, i.Scale)
	return t.Mul4(i.Rotation.Mat4()).Mul4(s)
}

// ZRotation returns a rotation of deg degrees about +Z.
func ZRotation(deg float32) mgl32.Quat {
	return mgl32.QuatRotate(mgl32.DegToRad(deg), mgl32.Vec3{0, 0, 1})
}

// InstanceBytes serializes instances as consecutive model matrices.
func InstanceBytes(instances []Instance) []byte {
	buf := make([]byte, 0, len(instances)*InstanceSize)
	for _, inst := range instances {
		buf = gpu.AppendMat4(buf, inst.Matrix())
	}
	return buf
}
