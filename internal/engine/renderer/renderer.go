// Package renderer implements the gpu capabilities on OpenGL 4.1 core.
package renderer

import (
	"fmt"
	"image"

	"github.com/go-gl/gl/v4.1-core/gl"
	"go.uber.org/zap"

	"github.com/Faultbox/gridview/internal/engine/gpu"
	"github.com/Faultbox/gridview/internal/engine/model"
	"github.com/Faultbox/gridview/internal/engine/renderer/shaders"
	"github.com/Faultbox/gridview/internal/engine/shader"
	"github.com/Faultbox/gridview/internal/engine/texture"
	"github.com/Faultbox/gridview/internal/logger"
)

// Binding points used by the instanced program.
const (
	cameraBinding = 1
	diffuseUnit   = 0
)

// Presenter shows a finished frame. The window implements it.
type Presenter interface {
	SwapBuffers()
}

// Renderer is an OpenGL gpu.Device and gpu.Surface.
// IMPORTANT: must be created and used on the thread owning the GL context.
type Renderer struct {
	present Presenter
	log     *zap.Logger

	program uint32
	vao     uint32

	width, height int
	maxTexture    int

	// First GL_OUT_OF_MEMORY seen while creating resources.
	err error
}

var (
	_ gpu.Device  = (*Renderer)(nil)
	_ gpu.Surface = (*Renderer)(nil)
)

// New initializes OpenGL and builds the instanced pipeline.
func New(present Presenter, width, height int) (*Renderer, error) {
	if err := gl.Init(); err != nil {
		return nil, fmt.Errorf("failed to initialize OpenGL: %w", err)
	}

	r := &Renderer{
		present: present,
		log:     logger.Named("renderer"),
	}

	r.log.Info("OpenGL initialized",
		zap.String("version", gl.GoStr(gl.GetString(gl.VERSION))),
		zap.String("renderer", gl.GoStr(gl.GetString(gl.RENDERER))),
	)

	var maxTex int32
	gl.GetIntegerv(gl.MAX_TEXTURE_SIZE, &maxTex)
	r.maxTexture = int(maxTex)

	gl.Enable(gl.DEPTH_TEST)
	gl.DepthFunc(gl.LESS)
	gl.Enable(gl.CULL_FACE)
	gl.CullFace(gl.BACK)
	gl.FrontFace(gl.CCW)

	program, err := shader.CompileProgram(shaders.InstancedVertexShader, shaders.InstancedFragmentShader)
	if err != nil {
		return nil, fmt.Errorf("instanced shader: %w", err)
	}
	r.program = program

	if err := shader.BindUniformBlock(program, "Camera", cameraBinding); err != nil {
		gl.DeleteProgram(program)
		return nil, err
	}
	gl.UseProgram(program)
	gl.Uniform1i(shader.GetUniform(program, "uDiffuse"), diffuseUnit)

	gl.GenVertexArrays(1, &r.vao)

	r.Configure(width, height)
	return r, nil
}

// Close deletes the pipeline objects.
func (r *Renderer) Close() {
	r.log.Info("closing renderer")
	if r.vao != 0 {
		gl.DeleteVertexArrays(1, &r.vao)
	}
	if r.program != 0 {
		gl.DeleteProgram(r.program)
	}
}

// Configure resizes the drawable. Zero sizes are kept so Acquire can
// report the surface as outdated until a real size arrives.
func (r *Renderer) Configure(width, height int) {
	r.width, r.height = width, height
	if width > 0 && height > 0 {
		gl.Viewport(0, 0, int32(width), int32(height))
	}
	r.log.Debug("surface configured", zap.Int("width", width), zap.Int("height", height))
}

// Acquire starts a frame.
func (r *Renderer) Acquire() (gpu.Frame, error) {
	if r.err != nil {
		return nil, r.err
	}
	if r.width <= 0 || r.height <= 0 {
		return nil, gpu.ErrSurfaceOutdated
	}
	if err := r.check(); err != nil {
		return nil, err
	}
	return &frame{r: r}, nil
}

// check drains the GL error queue. Out of memory is reported; anything
// else is a programming error and only logged.
func (r *Renderer) check() error {
	var oom bool
	for code := gl.GetError(); code != gl.NO_ERROR; code = gl.GetError() {
		if code == gl.OUT_OF_MEMORY {
			oom = true
			continue
		}
		r.log.Warn("GL error", zap.String("code", errorName(code)))
	}
	if oom {
		r.err = gpu.ErrOutOfMemory
		return r.err
	}
	return nil
}

// CreateBuffer uploads contents into a new buffer object.
func (r *Renderer) CreateBuffer(label string, usage gpu.BufferUsage, contents []byte) gpu.Buffer {
	b := &buffer{size: len(contents)}
	gl.GenBuffers(1, &b.id)
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, b.id)
	gl.BufferData(gl.COPY_WRITE_BUFFER, len(contents), glPtr(contents), bufferHint(usage))
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, 0)

	if gl.GetError() == gl.OUT_OF_MEMORY && r.err == nil {
		r.log.Error("buffer allocation failed", zap.String("label", label), zap.Int("bytes", len(contents)))
		r.err = gpu.ErrOutOfMemory
	}
	return b
}

// WriteBuffer overwrites part of a buffer.
func (r *Renderer) WriteBuffer(buf gpu.Buffer, offset int, data []byte) {
	if len(data) == 0 {
		return
	}
	b := buf.(*buffer)
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, b.id)
	gl.BufferSubData(gl.COPY_WRITE_BUFFER, offset, len(data), glPtr(data))
	gl.BindBuffer(gl.COPY_WRITE_BUFFER, 0)
}

// CreateTextureBindGroup uploads img as a mipmapped 2D texture.
// Images larger than the driver limit are scaled down first.
func (r *Renderer) CreateTextureBindGroup(label string, img *image.RGBA) gpu.BindGroup {
	b := img.Bounds()
	if w, h := fitSize(b.Dx(), b.Dy(), r.maxTexture); w != b.Dx() || h != b.Dy() {
		r.log.Warn("texture scaled down",
			zap.String("label", label),
			zap.Int("width", b.Dx()), zap.Int("height", b.Dy()),
			zap.Int("max", r.maxTexture),
		)
		img = texture.Resize(img, w, h)
	} else {
		img = texture.ToRGBA(img)
	}

	t := &textureGroup{}
	gl.GenTextures(1, &t.id)
	gl.BindTexture(gl.TEXTURE_2D, t.id)
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, int32(img.Stride/4))
	gl.TexImage2D(gl.TEXTURE_2D, 0, gl.RGBA, int32(img.Bounds().Dx()), int32(img.Bounds().Dy()), 0,
		gl.RGBA, gl.UNSIGNED_BYTE, glPtr(img.Pix))
	gl.PixelStorei(gl.UNPACK_ROW_LENGTH, 0)
	gl.GenerateMipmap(gl.TEXTURE_2D)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MIN_FILTER, gl.LINEAR_MIPMAP_LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_MAG_FILTER, gl.LINEAR)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_S, gl.REPEAT)
	gl.TexParameteri(gl.TEXTURE_2D, gl.TEXTURE_WRAP_T, gl.REPEAT)
	gl.BindTexture(gl.TEXTURE_2D, 0)

	if gl.GetError() == gl.OUT_OF_MEMORY && r.err == nil {
		r.log.Error("texture allocation failed", zap.String("label", label))
		r.err = gpu.ErrOutOfMemory
	}
	return t
}

// CreateUniformBindGroup binds buf as the camera uniform block.
func (r *Renderer) CreateUniformBindGroup(label string, buf gpu.Buffer) gpu.BindGroup {
	return &uniformGroup{buf: buf.(*buffer)}
}

type frame struct {
	r *Renderer
}

func (f *frame) BeginPass(clear gpu.Color) gpu.RenderPass {
	gl.ClearColor(float32(clear.R), float32(clear.G), float32(clear.B), float32(clear.A))
	gl.Clear(gl.COLOR_BUFFER_BIT | gl.DEPTH_BUFFER_BIT)
	gl.UseProgram(f.r.program)
	gl.BindVertexArray(f.r.vao)
	return &pass{}
}

func (f *frame) Submit() error {
	gl.BindVertexArray(0)
	gl.Flush()
	return f.r.check()
}

func (f *frame) Present() {
	f.r.present.SwapBuffers()
}

type pass struct{}

func (p *pass) SetVertexBuffer(slot int, buf gpu.Buffer) {
	b := buf.(*buffer)
	gl.BindBuffer(gl.ARRAY_BUFFER, b.id)
	for _, a := range slotLayout(slot) {
		gl.EnableVertexAttribArray(a.location)
		gl.VertexAttribPointerWithOffset(a.location, a.size, gl.FLOAT, false, a.stride, a.offset)
		gl.VertexAttribDivisor(a.location, a.divisor)
	}
	gl.BindBuffer(gl.ARRAY_BUFFER, 0)
}

func (p *pass) SetIndexBuffer(buf gpu.Buffer) {
	gl.BindBuffer(gl.ELEMENT_ARRAY_BUFFER, buf.(*buffer).id)
}

func (p *pass) SetBindGroup(index int, group gpu.BindGroup) {
	switch g := group.(type) {
	case *textureGroup:
		gl.ActiveTexture(gl.TEXTURE0 + diffuseUnit)
		gl.BindTexture(gl.TEXTURE_2D, g.id)
	case *uniformGroup:
		gl.BindBufferBase(gl.UNIFORM_BUFFER, cameraBinding, g.buf.id)
	}
}

func (p *pass) DrawIndexed(indexCount, instanceCount int) {
	if indexCount == 0 || instanceCount == 0 {
		return
	}
	gl.DrawElementsInstanced(gl.TRIANGLES, int32(indexCount), gl.UNSIGNED_INT, nil, int32(instanceCount))
}

// attrib describes one float vertex attribute.
type attrib struct {
	location uint32
	size     int32
	stride   int32
	offset   uintptr
	divisor  uint32
}

// slotLayout returns the attributes fed by a vertex buffer slot.
func slotLayout(slot int) []attrib {
	switch slot {
	case gpu.SlotVertices:
		return []attrib{
			{location: 0, size: 3, stride: model.VertexSize, offset: 0},
			{location: 1, size: 2, stride: model.VertexSize, offset: 3 * 4},
			{location: 2, size: 3, stride: model.VertexSize, offset: 5 * 4},
		}
	case gpu.SlotInstances:
		cols := make([]attrib, 4)
		for i := range cols {
			cols[i] = attrib{
				location: uint32(3 + i),
				size:     4,
				stride:   model.InstanceSize,
				offset:   uintptr(i * 16),
				divisor:  1,
			}
		}
		return cols
	default:
		return nil
	}
}

// fitSize scales w x h down to fit limit on both axes, keeping the aspect.
func fitSize(w, h, limit int) (int, int) {
	if limit <= 0 || (w <= limit && h <= limit) {
		return w, h
	}
	if w >= h {
		return limit, max(1, h*limit/w)
	}
	return max(1, w*limit/h), limit
}

func bufferHint(usage gpu.BufferUsage) uint32 {
	switch usage {
	case gpu.UsageInstance, gpu.UsageUniform:
		return gl.DYNAMIC_DRAW
	default:
		return gl.STATIC_DRAW
	}
}

func errorName(code uint32) string {
	switch code {
	case gl.INVALID_ENUM:
		return "GL_INVALID_ENUM"
	case gl.INVALID_VALUE:
		return "GL_INVALID_VALUE"
	case gl.INVALID_OPERATION:
		return "GL_INVALID_OPERATION"
	case gl.INVALID_FRAMEBUFFER_OPERATION:
		return "GL_INVALID_FRAMEBUFFER_OPERATION"
	case gl.OUT_OF_MEMORY:
		return "GL_OUT_OF_MEMORY"
	default:
		return fmt.Sprintf("0x%04x", code)
	}
}
