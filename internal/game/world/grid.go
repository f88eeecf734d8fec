package world

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/Faultbox/gridview/internal/engine/model"
)

// originBonus is the extra rotation, in degrees, of the instance that lands
// exactly on the world origin.
const originBonus = 45

// GenerateGrid lays out n*n instances on the XZ plane, spacing units apart
// and centered on the origin. Every instance is rotated angle degrees about
// Z and uniformly scaled; the one at the origin gets an extra 45 degrees.
// n <= 0 yields no instances.
func GenerateGrid(n int, spacing, angle, scale float32) []model.Instance {
	if n <= 0 {
		return nil
	}

	half := n / 2
	rotation := model.ZRotation(angle)
	instances := make([]model.Instance, 0, n*n)

	for z := 0; z < n; z++ {
		for x := 0; x < n; x++ {
			pos := mgl32.Vec3{
				spacing * float32(x-half),
				0,
				spacing * float32(z-half),
			}

			rot := rotation
			if pos == (mgl32.Vec3{}) {
				rot = model.ZRotation(angle + originBonus)
			}

			instances = append(instances, model.Instance{
				Position: pos,
				Rotation: rot,
				Scale:    scale,
			})
		}
	}
	return instances
}

// SpinStep is the per-frame angle increment for an n*n grid. It grows with
// n so large grids still appear to turn at a similar rate.
func SpinStep(n int) float32 {
	return 0.5 + float32(n/200) + float32(n/1000)
}
