package text

import (
	"github.com/gogpu/gputypes"
	"github.com/gogpu/ungrund/render"
	"github.com/gogpu/wgpu/hal"
)

// VertexBuffer is a reusable GPU vertex buffer for text quads. It grows to
// fit the largest batch written to it and keeps a CPU staging slice so a
// steady-state frame allocates nothing.
type VertexBuffer struct {
	device hal.Device
	queue  hal.Queue
	label  string

	buf      hal.Buffer
	capacity int // in vertices
	count    int
	staging  []byte
}

// NewVertexBuffer creates a buffer with room for capacity vertices.
func NewVertexBuffer(ctx *render.Context, capacity int) (*VertexBuffer, error) {
	if ctx == nil || ctx.Device == nil || ctx.Queue == nil {
		return nil, render.ErrNilContext
	}
	b := &VertexBuffer{
		device: ctx.Device,
		queue:  ctx.Queue,
		label:  "ungrund_text_vertices",
	}
	if capacity < VerticesPerGlyph {
		capacity = VerticesPerGlyph
	}
	if err := b.grow(capacity); err != nil {
		return nil, err
	}
	return b, nil
}

// Capacity returns how many vertices fit without reallocating.
func (b *VertexBuffer) Capacity() int { return b.capacity }

// Len returns the number of vertices written by the last Write.
func (b *VertexBuffer) Len() int { return b.count }

// Write uploads vs, replacing the previous contents. The buffer is
// reallocated (doubling) when vs does not fit.
func (b *VertexBuffer) Write(vs []Vertex) error {
	if b.device == nil {
		return ErrAtlasDestroyed
	}
	if len(vs) > b.capacity {
		n := b.capacity * 2
		for n < len(vs) {
			n *= 2
		}
		if err := b.grow(n); err != nil {
			return err
		}
	}
	b.count = len(vs)
	if b.count == 0 {
		return nil
	}
	b.staging = AppendVertexBytes(b.staging[:0], vs)
	b.queue.WriteBuffer(b.buf, 0, b.staging)
	return nil
}

// Draw records a draw of the written vertices with atlas's pipeline.
func (b *VertexBuffer) Draw(pass hal.RenderPassEncoder, atlas *FontAtlas) error {
	if b.count == 0 {
		return nil
	}
	if b.buf == nil {
		return ErrAtlasDestroyed
	}
	if err := atlas.Bind(pass); err != nil {
		return err
	}
	pass.SetVertexBuffer(0, b.buf, 0)
	pass.Draw(uint32(b.count), 1, 0, 0) //nolint:gosec // vertex count fits uint32
	return nil
}

// Destroy releases the GPU buffer. Safe to call multiple times.
func (b *VertexBuffer) Destroy() {
	if b.buf != nil {
		b.device.DestroyBuffer(b.buf)
		b.buf = nil
	}
	b.device = nil
	b.capacity = 0
	b.count = 0
}

func (b *VertexBuffer) grow(capacity int) error {
	buf, err := b.device.CreateBuffer(&hal.BufferDescriptor{
		Label: b.label,
		Size:  uint64(capacity * VertexSize), //nolint:gosec // capacity is positive
		Usage: gputypes.BufferUsageVertex | gputypes.BufferUsageCopyDst,
	})
	if err != nil {
		return &render.GPUResourceError{Op: "create vertex buffer", Err: err}
	}
	if b.buf != nil {
		b.device.DestroyBuffer(b.buf)
	}
	b.buf = buf
	b.capacity = capacity
	return nil
}
