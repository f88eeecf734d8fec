// Package gputest provides recording fakes of the gpu capabilities.
package gputest

import (
	"image"

	"github.com/Faultbox/gridview/internal/engine/gpu"
)

// Buffer is a fake buffer that keeps a copy of its contents.
type Buffer struct {
	Label    string
	Usage    gpu.BufferUsage
	Data     []byte
	Released bool
}

func (b *Buffer) Size() int { return len(b.Data) }
func (b *Buffer) Release()  { b.Released = true }

// BindGroup is a fake bind group.
type BindGroup struct {
	Label    string
	Image    *image.RGBA
	Uniform  *Buffer
	Released bool
}

func (g *BindGroup) Release() { g.Released = true }

// Device records every resource it creates.
type Device struct {
	Buffers []*Buffer
	Groups  []*BindGroup
	Writes  int
}

func (d *Device) CreateBuffer(label string, usage gpu.BufferUsage, contents []byte) gpu.Buffer {
	b := &Buffer{Label: label, Usage: usage, Data: append([]byte(nil), contents...)}
	d.Buffers = append(d.Buffers, b)
	return b
}

func (d *Device) WriteBuffer(buf gpu.Buffer, offset int, data []byte) {
	b := buf.(*Buffer)
	if end := offset + len(data); end > len(b.Data) {
		b.Data = append(b.Data, make([]byte, end-len(b.Data))...)
	}
	copy(b.Data[offset:], data)
	d.Writes++
}

func (d *Device) CreateTextureBindGroup(label string, img *image.RGBA) gpu.BindGroup {
	g := &BindGroup{Label: label, Image: img}
	d.Groups = append(d.Groups, g)
	return g
}

func (d *Device) CreateUniformBindGroup(label string, buf gpu.Buffer) gpu.BindGroup {
	g := &BindGroup{Label: label, Uniform: buf.(*Buffer)}
	d.Groups = append(d.Groups, g)
	return g
}

// Live returns the unreleased buffers with the given usage.
func (d *Device) Live(usage gpu.BufferUsage) []*Buffer {
	var live []*Buffer
	for _, b := range d.Buffers {
		if b.Usage == usage && !b.Released {
			live = append(live, b)
		}
	}
	return live
}

// Op names a recorded render pass command.
type Op string

const (
	OpVertexBuffer Op = "vertex"
	OpIndexBuffer  Op = "index"
	OpBindGroup    Op = "bind"
	OpDraw         Op = "draw"
)

// Call is one recorded render pass command.
type Call struct {
	Op            Op
	Slot          int
	Buffer        gpu.Buffer
	Group         gpu.BindGroup
	IndexCount    int
	InstanceCount int
}

// Pass records commands in order.
type Pass struct {
	Clear gpu.Color
	Calls []Call
}

func (p *Pass) SetVertexBuffer(slot int, buf gpu.Buffer) {
	p.Calls = append(p.Calls, Call{Op: OpVertexBuffer, Slot: slot, Buffer: buf})
}

func (p *Pass) SetIndexBuffer(buf gpu.Buffer) {
	p.Calls = append(p.Calls, Call{Op: OpIndexBuffer, Buffer: buf})
}

func (p *Pass) SetBindGroup(index int, group gpu.BindGroup) {
	p.Calls = append(p.Calls, Call{Op: OpBindGroup, Slot: index, Group: group})
}

func (p *Pass) DrawIndexed(indexCount, instanceCount int) {
	p.Calls = append(p.Calls, Call{Op: OpDraw, IndexCount: indexCount, InstanceCount: instanceCount})
}

// Draws returns only the draw calls.
func (p *Pass) Draws() []Call {
	var draws []Call
	for _, c := range p.Calls {
		if c.Op == OpDraw {
			draws = append(draws, c)
		}
	}
	return draws
}

// Surface hands out recording frames. AcquireErrs are returned by successive
// Acquire calls before frames are produced; SubmitErr is returned by every Submit.
type Surface struct {
	AcquireErrs []error
	SubmitErr   error

	Configured [][2]int
	Acquired   int
	Submitted  int
	Presented  int
	LastPass   *Pass
}

func (s *Surface) Acquire() (gpu.Frame, error) {
	if len(s.AcquireErrs) > 0 {
		err := s.AcquireErrs[0]
		s.AcquireErrs = s.AcquireErrs[1:]
		if err != nil {
			return nil, err
		}
	}
	s.Acquired++
	return &frame{surface: s}, nil
}

func (s *Surface) Configure(width, height int) {
	s.Configured = append(s.Configured, [2]int{width, height})
}

type frame struct {
	surface *Surface
}

func (f *frame) BeginPass(clear gpu.Color) gpu.RenderPass {
	p := &Pass{Clear: clear}
	f.surface.LastPass = p
	return p
}

func (f *frame) Submit() error {
	if f.surface.SubmitErr != nil {
		return f.surface.SubmitErr
	}
	f.surface.Submitted++
	return nil
}

func (f *frame) Present() { f.surface.Presented++ }
