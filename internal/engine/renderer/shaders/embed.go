// Package shaders provides embedded GLSL shader sources.
package shaders

import _ "embed"

// InstancedVertexShader transforms per-vertex data by a per-instance model
// matrix and the camera block.
//
//go:embed instanced.vert
var InstancedVertexShader string

// InstancedFragmentShader samples the diffuse texture.
//
//go:embed instanced.frag
var InstancedFragmentShader string
