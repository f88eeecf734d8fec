package gpu

import (
	"encoding/binary"
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// Mat4Size is the byte size of a serialized 4x4 float32 matrix.
const Mat4Size = 64

// AppendMat4 appends m to dst as 16 little-endian float32s, column-major.
func AppendMat4(dst []byte, m mgl32.Mat4) []byte {
	for _, f := range m {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}

// AppendFloats appends fs to dst as little-endian float32s.
func AppendFloats(dst []byte, fs ...float32) []byte {
	for _, f := range fs {
		dst = binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}

// AppendUint32s appends vs to dst as little-endian uint32s.
func AppendUint32s(dst []byte, vs ...uint32) []byte {
	for _, v := range vs {
		dst = binary.LittleEndian.AppendUint32(dst, v)
	}
	return dst
}
