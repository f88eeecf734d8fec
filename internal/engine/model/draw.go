package model

import (
	"github.com/Faultbox/gridview/internal/engine/gpu"
)

// Draw records one instanced draw per mesh of every visible model.
// Invisible models record nothing.
func Draw(pass gpu.RenderPass, camera gpu.BindGroup, models ...*Model) {
	for _, m := range models {
		if !m.Visible {
			continue
		}
		for i := range m.Meshes {
			mesh := &m.Meshes[i]
			pass.SetVertexBuffer(gpu.SlotVertices, mesh.VertexBuffer)
			pass.SetVertexBuffer(gpu.SlotInstances, m.buffer)
			pass.SetIndexBuffer(mesh.IndexBuffer)
			pass.SetBindGroup(gpu.GroupTexture, m.Materials[mesh.Material].BindGroup)
			pass.SetBindGroup(gpu.GroupCamera, camera)
			pass.DrawIndexed(mesh.IndexCount, len(m.instances))
		}
	}
}
