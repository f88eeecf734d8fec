package model

import (
	"fmt"

	"github.com/Faultbox/gridview/internal/engine/gpu"
)

// Upload creates GPU resources for decoded model data.
func Upload(device gpu.Device, data *Data) (*Model, error) {
	if len(data.Materials) == 0 {
		return nil, fmt.Errorf("model %s: no materials", data.Name)
	}

	for _, md := range data.Materials {
		if md.Diffuse == nil {
			return nil, fmt.Errorf("model %s: material %s has no diffuse texture", data.Name, md.Name)
		}
	}
	for _, md := range data.Meshes {
		if md.Material < 0 || md.Material >= len(data.Materials) {
			return nil, fmt.Errorf("model %s: mesh %s uses material %d of %d",
				data.Name, md.Name, md.Material, len(data.Materials))
		}
	}

	materials := make([]Material, len(data.Materials))
	for i, md := range data.Materials {
		materials[i] = Material{
			Name:      md.Name,
			BindGroup: device.CreateTextureBindGroup(md.Name, md.Diffuse),
		}
	}

	meshes := make([]Mesh, 0, len(data.Meshes))
	for _, md := range data.Meshes {
		meshes = append(meshes, Mesh{
			Name:         md.Name,
			VertexBuffer: device.CreateBuffer(md.Name+" vertices", gpu.UsageVertex, vertexBytes(md.Vertices)),
			IndexBuffer:  device.CreateBuffer(md.Name+" indices", gpu.UsageIndex, indexBytes(md.Indices)),
			IndexCount:   len(md.Indices),
			Material:     md.Material,
		})
	}

	return New(device, data.Name, meshes, materials), nil
}
