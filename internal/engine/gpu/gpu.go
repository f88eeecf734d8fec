// Package gpu defines the rendering backend capabilities the scene core
// depends on. The OpenGL renderer implements them; tests use fakes.
package gpu

import (
	"errors"
	"image"
)

// Frame acquisition and submission errors.
var (
	// ErrSurfaceLost means the surface must be reconfigured before the next frame.
	ErrSurfaceLost = errors.New("gpu: surface lost")
	// ErrSurfaceOutdated means the surface no longer matches the window.
	ErrSurfaceOutdated = errors.New("gpu: surface outdated")
	// ErrTimeout means no frame became available in time. Skip the frame.
	ErrTimeout = errors.New("gpu: timeout")
	// ErrOutOfMemory is fatal.
	ErrOutOfMemory = errors.New("gpu: out of memory")
)

// BufferUsage tells the backend how a buffer will be bound.
type BufferUsage int

const (
	UsageVertex BufferUsage = iota
	UsageIndex
	UsageInstance
	UsageUniform
)

func (u BufferUsage) String() string {
	switch u {
	case UsageVertex:
		return "vertex"
	case UsageIndex:
		return "index"
	case UsageInstance:
		return "instance"
	case UsageUniform:
		return "uniform"
	default:
		return "unknown"
	}
}

// Buffer is GPU memory initialized from bytes.
type Buffer interface {
	Size() int
	// Release frees the buffer. Work already submitted keeps it alive.
	Release()
}

// BindGroup is a set of resources bound together (a texture, a uniform block).
type BindGroup interface {
	Release()
}

// Device creates GPU resources.
type Device interface {
	// CreateBuffer allocates a buffer holding contents. Allocation failures
	// are reported by the next Surface.Acquire or Frame.Submit.
	CreateBuffer(label string, usage BufferUsage, contents []byte) Buffer
	// WriteBuffer overwrites buf starting at offset.
	WriteBuffer(buf Buffer, offset int, data []byte)
	CreateTextureBindGroup(label string, img *image.RGBA) BindGroup
	CreateUniformBindGroup(label string, buf Buffer) BindGroup
}

// Vertex buffer slots used by the instanced pipeline.
const (
	SlotVertices  = 0
	SlotInstances = 1
)

// Bind group indices used by the instanced pipeline.
const (
	GroupTexture = 0
	GroupCamera  = 1
)

// RenderPass records draw commands for one frame.
type RenderPass interface {
	SetVertexBuffer(slot int, buf Buffer)
	SetIndexBuffer(buf Buffer)
	SetBindGroup(index int, group BindGroup)
	// DrawIndexed draws indexCount indices for instances [0, instanceCount).
	DrawIndexed(indexCount, instanceCount int)
}

// Color is a linear RGBA clear color.
type Color struct {
	R, G, B, A float64
}

// Frame is one acquired surface image.
type Frame interface {
	BeginPass(clear Color) RenderPass
	Submit() error
	Present()
}

// Surface is the presentable target bound to the window.
type Surface interface {
	Acquire() (Frame, error)
	Configure(width, height int)
}
