package renderer

import (
	"unsafe"

	"github.com/go-gl/gl/v4.1-core/gl"
)

// buffer is a GL buffer object.
type buffer struct {
	id   uint32
	size int
}

func (b *buffer) Size() int { return b.size }

// Release deletes the buffer. The driver keeps the storage alive until
// queued draws no longer reference it.
func (b *buffer) Release() {
	if b.id != 0 {
		gl.DeleteBuffers(1, &b.id)
		b.id = 0
	}
}

type textureGroup struct {
	id uint32
}

func (t *textureGroup) Release() {
	if t.id != 0 {
		gl.DeleteTextures(1, &t.id)
		t.id = 0
	}
}

// uniformGroup borrows its buffer; releasing the group leaves it alone.
type uniformGroup struct {
	buf *buffer
}

func (u *uniformGroup) Release() {}

func glPtr(data []byte) unsafe.Pointer {
	if len(data) == 0 {
		return nil
	}
	return unsafe.Pointer(&data[0])
}
