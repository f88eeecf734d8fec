package model

import (
	"github.com/Faultbox/gridview/internal/engine/gpu"
)

// Model is a drawable set of meshes plus the instances that place it.
//
// The instance buffer always holds exactly the serialized instance list.
// Any change to the list releases the buffer and uploads a new one; there
// is no partial update. Large grids pay a full upload per change.
type Model struct {
	Name      string
	Meshes    []Mesh
	Materials []Material
	Visible   bool

	device    gpu.Device
	instances []Instance
	buffer    gpu.Buffer
}

// New creates a visible model with no instances.
func New(device gpu.Device, name string, meshes []Mesh, materials []Material) *Model {
	m := &Model{
		Name:      name,
		Meshes:    meshes,
		Materials: materials,
		Visible:   true,
		device:    device,
	}
	m.rebuild()
	return m
}

// Instances returns the current instance list. Callers must not modify it.
func (m *Model) Instances() []Instance {
	return m.instances
}

// InstanceBuffer returns the GPU mirror of the instance list.
func (m *Model) InstanceBuffer() gpu.Buffer {
	return m.buffer
}

// SetInstances replaces the instance list.
func (m *Model) SetInstances(instances []Instance) {
	m.instances = instances
	m.rebuild()
}

// AddInstance appends one instance.
func (m *Model) AddInstance(inst Instance) {
	m.instances = append(m.instances, inst)
	m.rebuild()
}

// ChangeMaterial advances the first mesh to the next material, wrapping to 0.
func (m *Model) ChangeMaterial() {
	if len(m.Meshes) == 0 {
		return
	}
	next := m.Meshes[0].Material + 1
	if next >= len(m.Materials) {
		next = 0
	}
	m.Meshes[0].Material = next
}

// Release frees all GPU resources owned by the model.
func (m *Model) Release() {
	if m.buffer != nil {
		m.buffer.Release()
		m.buffer = nil
	}
	for _, mesh := range m.Meshes {
		mesh.VertexBuffer.Release()
		mesh.IndexBuffer.Release()
	}
	for _, mat := range m.Materials {
		mat.BindGroup.Release()
	}
}

func (m *Model) rebuild() {
	if m.buffer != nil {
		m.buffer.Release()
	}
	m.buffer = m.device.CreateBuffer(m.Name+" instances", gpu.UsageInstance, InstanceBytes(m.instances))
}
