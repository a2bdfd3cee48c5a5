package tess

import (
	"encoding/binary"
	"math"

	"github.com/gogpu/gputypes"
	"github.com/lain-dono/reui"
)

// Vertex is the GPU vertex: a position and a normalized uv pair.
type Vertex struct {
	Pos [2]float32
	UV  [2]uint16
}

// VertexStride is the encoded size of a Vertex in bytes.
const VertexStride = 2*4 + 2*2

// Vertex attribute locations.
const (
	PositionLocation = 0
	UVLocation       = 1
)

// VertexLayout returns the vertex buffer layout matching AppendBytes.
func VertexLayout() []gputypes.VertexBufferLayout {
	return []gputypes.VertexBufferLayout{
		{
			ArrayStride: VertexStride,
			StepMode:    gputypes.VertexStepModeVertex,
			Attributes: []gputypes.VertexAttribute{
				{Format: gputypes.VertexFormatFloat32x2, Offset: 0, ShaderLocation: PositionLocation},
				{Format: gputypes.VertexFormatUnorm16x2, Offset: 8, ShaderLocation: UVLocation},
			},
		},
	}
}

// IndexFormat is the format of Mesh indices.
const IndexFormat = gputypes.IndexFormatUint32

func vertex(p reui.Offset, u, v float32) Vertex {
	return Vertex{
		Pos: [2]float32{p.X, p.Y},
		UV:  [2]uint16{unorm16(u), unorm16(v)},
	}
}

func unorm16(x float32) uint16 {
	switch {
	case x <= 0:
		return 0
	case x >= 1:
		return math.MaxUint16
	}
	return uint16(x*math.MaxUint16 + 0.5)
}

// Position returns the vertex position as an Offset.
func (v Vertex) Position() reui.Offset {
	return reui.Offset{X: v.Pos[0], Y: v.Pos[1]}
}

// AppendBytes appends the little-endian encoding of v, VertexStride bytes.
func (v Vertex) AppendBytes(dst []byte) []byte {
	le := binary.LittleEndian
	dst = le.AppendUint32(dst, math.Float32bits(v.Pos[0]))
	dst = le.AppendUint32(dst, math.Float32bits(v.Pos[1]))
	dst = le.AppendUint16(dst, v.UV[0])
	return le.AppendUint16(dst, v.UV[1])
}

func (t *Tessellator) add(p reui.Offset, u, v float32) {
	t.verts = append(t.verts, vertex(p, u, v))
}
