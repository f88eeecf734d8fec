// Package model holds drawable models and the instance buffers that place
// them in the scene.
package model

import (
	"image"

	"github.com/Faultbox/gridview/internal/engine/gpu"
)

// Vertex represents a mesh vertex with position, texture coordinates, and normal.
type Vertex struct {
	Position [3]float32
	TexCoord [2]float32
	Normal   [3]float32
}

// VertexSize is the byte stride of a serialized Vertex.
const VertexSize = 32

// MeshData is decoded mesh geometry ready for GPU upload.
type MeshData struct {
	Name     string
	Vertices []Vertex
	Indices  []uint32
	Material int // index into Data.Materials
}

// MaterialData is a decoded material.
type MaterialData struct {
	Name    string
	Diffuse *image.RGBA
}

// Data is a fully decoded model, independent of any GPU.
type Data struct {
	Name      string
	Meshes    []MeshData
	Materials []MaterialData
}

// Mesh is GPU-resident geometry.
type Mesh struct {
	Name         string
	VertexBuffer gpu.Buffer
	IndexBuffer  gpu.Buffer
	IndexCount   int
	Material     int
}

// Material is a GPU-resident material.
type Material struct {
	Name      string
	BindGroup gpu.BindGroup
}

func vertexBytes(vs []Vertex) []byte {
	buf := make([]byte, 0, len(vs)*VertexSize)
	for _, v := range vs {
		buf = gpu.AppendFloats(buf,
			v.Position[0], v.Position[1], v.Position[2],
			v.TexCoord[0], v.TexCoord[1],
			v.Normal[0], v.Normal[1], v.Normal[2],
		)
	}
	return buf
}

func indexBytes(is []uint32) []byte {
	return gpu.AppendUint32s(make([]byte, 0, len(is)*4), is...)
}
