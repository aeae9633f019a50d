package text

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
)

// VertexSize is the byte stride of one Vertex in a vertex buffer.
// Layout per vertex:
//
//	position (vec2<f32>) = 8 bytes  (location 0)
//	uv       (vec2<f32>) = 8 bytes  (location 1)
//	color    (vec4<f32>) = 16 bytes (location 2)
//
// Total = 32 bytes per vertex.
const VertexSize = 32

// VerticesPerGlyph is the number of vertices emitted for one visible glyph.
const VerticesPerGlyph = 6

// Vertex is one corner of a glyph quad, in normalized device coordinates.
type Vertex struct {
	Position [2]float32
	UV       [2]float32
	Color    [4]float32
}

// Color is a straight (non-premultiplied) RGBA color with components in [0, 1].
type Color struct {
	R, G, B, A float32
}

// White is opaque white.
var White = Color{R: 1, G: 1, B: 1, A: 1}

func (c Color) array() [4]float32 {
	return [4]float32{c.R, c.G, c.B, c.A}
}

// VertexLayout returns the vertex buffer layout matching Vertex.
func VertexLayout() gputypes.VertexBufferLayout {
	return gputypes.VertexBufferLayout{
		ArrayStride: VertexSize,
		StepMode:    gputypes.VertexStepModeVertex,
		Attributes: []gputypes.VertexAttribute{
			{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: 0},  // position
			{Format: gputypes.VertexFormatFloat32x2, Offset: 8, ShaderLocation: 1},  // uv
			{Format: gputypes.VertexFormatFloat32x4, Offset: 16, ShaderLocation: 2}, // color
		},
	}
}

// VertexBytes encodes vertices for upload.
func VertexBytes(vs []Vertex) []byte {
	return AppendVertexBytes(nil, vs)
}

// AppendVertexBytes appends the little-endian encoding of vs to dst.
func AppendVertexBytes(dst []byte, vs []Vertex) []byte {
	for i := range vs {
		v := &vs[i]
		dst = appendFloat32(dst, v.Position[0])
		dst = appendFloat32(dst, v.Position[1])
		dst = appendFloat32(dst, v.UV[0])
		dst = appendFloat32(dst, v.UV[1])
		for _, c := range v.Color {
			dst = appendFloat32(dst, c)
		}
	}
	return dst
}

func appendFloat32(dst []byte, f float32) []byte {
	return binary.LittleEndian.AppendUint32(dst, math.Float32bits(f))
}
