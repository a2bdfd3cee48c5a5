package tess

import (
	"encoding/binary"

	"github.com/lain-dono/reui"
)

// Fill expansion parameters. Fills always use miter joins so that the
// fringe follows the outline exactly.
const (
	fillJoin       = reui.LineJoinMiter
	fillMiterLimit = 2.4
	maxStrokeWidth = 200
)

// CallKind selects how the backend draws a DrawCall.
type CallKind uint8

const (
	// CallConvexFill draws the Fill and Fringe triangles directly.
	CallConvexFill CallKind = iota
	// CallFill stencils the Fill triangles, covers them with the Cover
	// quad and draws the Fringe on top.
	CallFill
	// CallStroke draws the Fringe triangles, which hold the stroke body.
	CallStroke
)

// String returns the kind name.
func (k CallKind) String() string {
	switch k {
	case CallConvexFill:
		return "ConvexFill"
	case CallFill:
		return "Fill"
	case CallStroke:
		return "Stroke"
	default:
		return "Unknown"
	}
}

// DrawCall is one fill or stroke of a Mesh. All spans index Mesh.Indices.
type DrawCall struct {
	Kind     CallKind
	Instance reui.Instance
	Fill     Span
	Fringe   Span
	Cover    Span
}

// Mesh accumulates the geometry of many draws in shared buffers.
type Mesh struct {
	Vertices []Vertex
	Indices  []uint32
	Calls    []DrawCall
}

// Reset empties the mesh but keeps its buffers.
func (m *Mesh) Reset() {
	m.Vertices = m.Vertices[:0]
	m.Indices = m.Indices[:0]
	m.Calls = m.Calls[:0]
}

// AppendStrip appends the triangles of a strip of count vertices starting
// at offset. Every other triangle is flipped to keep the winding.
func AppendStrip(dst []uint32, offset, count int) []uint32 {
	for i := 0; i+2 < count; i++ {
		o := uint32(offset + i)
		if i%2 == 0 {
			dst = append(dst, o, o+1, o+2)
		} else {
			dst = append(dst, o, o+2, o+1)
		}
	}
	return dst
}

// AppendFan appends the triangles of a fan of count vertices around the
// vertex at offset.
func AppendFan(dst []uint32, offset, count int) []uint32 {
	o := uint32(offset)
	for i := 0; i+2 < count; i++ {
		dst = append(dst, o, o+uint32(i)+1, o+uint32(i)+2)
	}
	return dst
}

// StrokeAlpha adjusts a stroke narrower than the fringe: the stroke is
// drawn fringe wide and its alpha is multiplied by the returned factor,
// the squared coverage ratio.
func StrokeAlpha(width, fringe float32) (float32, float32) {
	if width >= fringe {
		return width, 1
	}
	a := min(max(width/fringe, 0), 1)
	return fringe, a * a
}

// Fill flattens path through xf, expands it for filling and records one
// draw call. Empty paths record nothing.
func (m *Mesh) Fill(t *Tessellator, path *reui.Path, xf reui.Transform, paint reui.Paint, alpha float32) {
	t.Flatten(path.Transformed(xf))
	if len(t.contours) == 0 {
		return
	}
	fringe := t.opts.FringeWidth
	convex := t.ExpandFill(fringe, fillJoin, fillMiterLimit)

	call := DrawCall{
		Kind:     CallFill,
		Instance: paint.Raw(xf, alpha).ToInstance(fringe, fringe, reui.StrokeThrNone),
	}
	if convex {
		call.Kind = CallConvexFill
	}

	base := m.appendVertices(t.verts)

	start := len(m.Indices)
	for _, c := range t.contours {
		m.Indices = AppendFan(m.Indices, base+c.Fill.Offset, c.Fill.Count)
	}
	call.Fill = Span{Offset: start, Count: len(m.Indices) - start}

	start = len(m.Indices)
	for _, c := range t.contours {
		m.Indices = AppendStrip(m.Indices, base+c.Stroke.Offset, c.Stroke.Count)
	}
	call.Fringe = Span{Offset: start, Count: len(m.Indices) - start}

	if !convex {
		b := t.bounds
		quad := len(m.Vertices)
		m.Vertices = append(m.Vertices,
			vertex(reui.Offset{X: b.Max.X, Y: b.Max.Y}, 0.5, 1),
			vertex(reui.Offset{X: b.Max.X, Y: b.Min.Y}, 0.5, 1),
			vertex(reui.Offset{X: b.Min.X, Y: b.Max.Y}, 0.5, 1),
			vertex(reui.Offset{X: b.Min.X, Y: b.Min.Y}, 0.5, 1),
		)
		start = len(m.Indices)
		m.Indices = AppendStrip(m.Indices, quad, 4)
		call.Cover = Span{Offset: start, Count: len(m.Indices) - start}
	}

	m.Calls = append(m.Calls, call)
}

// Stroke flattens path through xf, expands it with style and records one
// draw call. The stroke width is scaled by the transform; strokes thinner
// than the fringe are faded instead.
func (m *Mesh) Stroke(t *Tessellator, path *reui.Path, xf reui.Transform, paint reui.Paint, alpha float32, style StrokeStyle) {
	t.Flatten(path.Transformed(xf))
	if len(t.contours) == 0 {
		return
	}
	fringe := t.opts.FringeWidth
	width := min(max(style.Width*xf.AverageScale(), 0), maxStrokeWidth)
	width, fade := StrokeAlpha(width, fringe)

	t.ExpandStroke(width*0.5, fringe, style.Cap, style.Join, style.MiterLimit)

	base := m.appendVertices(t.verts)
	start := len(m.Indices)
	for _, c := range t.contours {
		m.Indices = AppendStrip(m.Indices, base+c.Stroke.Offset, c.Stroke.Count)
	}

	m.Calls = append(m.Calls, DrawCall{
		Kind:     CallStroke,
		Instance: paint.Raw(xf, alpha*fade).ToInstance(width, fringe, reui.StrokeThrNone),
		Fringe:   Span{Offset: start, Count: len(m.Indices) - start},
	})
}

func (m *Mesh) appendVertices(vs []Vertex) int {
	base := len(m.Vertices)
	m.Vertices = append(m.Vertices, vs...)
	return base
}

// VertexBytes appends the encoded vertex buffer to dst.
func (m *Mesh) VertexBytes(dst []byte) []byte {
	for _, v := range m.Vertices {
		dst = v.AppendBytes(dst)
	}
	return dst
}

// IndexBytes appends the little-endian index buffer to dst.
func (m *Mesh) IndexBytes(dst []byte) []byte {
	for _, i := range m.Indices {
		dst = binary.LittleEndian.AppendUint32(dst, i)
	}
	return dst
}

// InstanceBytes appends the uniform blocks of all calls to dst, each
// padded to a multiple of align bytes, typically the device's minimum
// uniform buffer offset alignment.
func (m *Mesh) InstanceBytes(dst []byte, align int) []byte {
	align = max(align, 1)
	for _, c := range m.Calls {
		start := len(dst)
		dst = c.Instance.AppendBytes(dst)
		for (len(dst)-start)%align != 0 {
			dst = append(dst, 0)
		}
	}
	return dst
}
