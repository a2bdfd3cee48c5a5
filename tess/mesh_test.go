package tess

import (
	"slices"
	"testing"

	"github.com/gogpu/gputypes"
	"github.com/lain-dono/reui"
)

func TestAppendStrip(t *testing.T) {
	got := AppendStrip(nil, 10, 5)
	want := []uint32{10, 11, 12, 11, 13, 12, 12, 13, 14}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
	if got := AppendStrip(nil, 0, 2); len(got) != 0 {
		t.Errorf("expected no triangles for 2 vertices, got %v", got)
	}
}

func TestAppendFan(t *testing.T) {
	got := AppendFan([]uint32{99}, 3, 5)
	want := []uint32{99, 3, 4, 5, 3, 5, 6, 3, 6, 7}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestStrokeAlpha(t *testing.T) {
	tests := []struct {
		width, fringe float32
		wantW, wantA  float32
	}{
		{2, 1, 2, 1},
		{1, 1, 1, 1},
		{0.5, 1, 1, 0.25},
		{0, 1, 1, 0},
		{0.5, 0, 0.5, 1},
	}
	for _, tt := range tests {
		w, a := StrokeAlpha(tt.width, tt.fringe)
		if w != tt.wantW || a != tt.wantA {
			t.Errorf("StrokeAlpha(%v, %v): expected (%v, %v), got (%v, %v)", tt.width, tt.fringe, tt.wantW, tt.wantA, w, a)
		}
	}
}

func TestVertexLayout(t *testing.T) {
	layout := VertexLayout()
	if len(layout) != 1 {
		t.Fatalf("expected 1 buffer layout, got %d", len(layout))
	}
	l := layout[0]
	if l.ArrayStride != VertexStride || l.StepMode != gputypes.VertexStepModeVertex {
		t.Errorf("unexpected layout %+v", l)
	}
	if len(l.Attributes) != 2 ||
		l.Attributes[0].Format != gputypes.VertexFormatFloat32x2 ||
		l.Attributes[1].Format != gputypes.VertexFormatUnorm16x2 ||
		l.Attributes[1].Offset != 8 {
		t.Errorf("unexpected attributes %+v", l.Attributes)
	}
	if n := len(Vertex{}.AppendBytes(nil)); n != VertexStride {
		t.Errorf("expected %d encoded bytes, got %d", VertexStride, n)
	}
}

func checkIndices(t *testing.T, m *Mesh) {
	t.Helper()
	for i, idx := range m.Indices {
		if int(idx) >= len(m.Vertices) {
			t.Fatalf("index %d: %d out of range of %d vertices", i, idx, len(m.Vertices))
		}
	}
	if len(m.Indices)%3 != 0 {
		t.Errorf("expected a triangle list, got %d indices", len(m.Indices))
	}
}

func TestMeshFillConvex(t *testing.T) {
	tess := newTess(t)
	var m Mesh
	m.Fill(tess, square(0, 0, 10), reui.Identity(), reui.SolidPaint(reui.RGB(1, 0, 0)), 1)

	if len(m.Calls) != 1 {
		t.Fatalf("expected 1 call, got %d", len(m.Calls))
	}
	c := m.Calls[0]
	if c.Kind != CallConvexFill {
		t.Errorf("expected %v, got %v", CallConvexFill, c.Kind)
	}
	// A fan of 4 and a strip of 10 vertices.
	if c.Fill.Count != 6 || c.Fringe.Count != 24 || c.Cover.Count != 0 {
		t.Errorf("unexpected spans fill=%v fringe=%v cover=%v", c.Fill, c.Fringe, c.Cover)
	}
	if len(m.Vertices) != 14 {
		t.Errorf("expected 14 vertices, got %d", len(m.Vertices))
	}
	if c.Instance.InnerColor != [4]uint8{255, 0, 0, 255} {
		t.Errorf("unexpected color %v", c.Instance.InnerColor)
	}
	checkIndices(t, &m)
}

func TestMeshFillConcave(t *testing.T) {
	tess := newTess(t)
	var m Mesh
	m.Fill(tess, polygon(50, 50, 40, 5, 2), reui.Identity(), reui.SolidPaint(reui.RGB(0, 0, 1)), 1)
	c := m.Calls[0]
	if c.Kind != CallFill {
		t.Fatalf("expected %v, got %v", CallFill, c.Kind)
	}
	if c.Fill.Count == 0 || c.Fringe.Count == 0 || c.Cover.Count != 6 {
		t.Errorf("unexpected spans fill=%v fringe=%v cover=%v", c.Fill, c.Fringe, c.Cover)
	}
	b := tess.Bounds()
	for _, i := range m.Indices[c.Cover.Offset:c.Cover.End()] {
		p := m.Vertices[i].Position()
		if (p.X != b.Min.X && p.X != b.Max.X) || (p.Y != b.Min.Y && p.Y != b.Max.Y) {
			t.Errorf("cover vertex %v is not a corner of %v", p, b)
		}
	}
	checkIndices(t, &m)
}

func TestMeshStroke(t *testing.T) {
	tess := newTess(t)
	var m Mesh
	line := reui.NewPath().MoveTo(reui.Pt(0, 0)).LineTo(reui.Pt(10, 0))
	white := reui.SolidPaint(reui.RGB(1, 1, 1))

	style := DefaultStrokeStyle()
	style.Width = 0.5
	m.Stroke(tess, line, reui.Identity(), white, 1, style)

	style.Width = 3
	m.Stroke(tess, line, reui.UniformScale(2), white, 1, style)

	if len(m.Calls) != 2 {
		t.Fatalf("expected 2 calls, got %d", len(m.Calls))
	}
	thin, wide := m.Calls[0], m.Calls[1]
	if thin.Kind != CallStroke || thin.Fill.Count != 0 {
		t.Errorf("unexpected stroke call %+v", thin)
	}
	// Coverage of a half pixel line is faded by the squared ratio.
	if a := thin.Instance.InnerColor[3]; a != 64 {
		t.Errorf("expected faded alpha 64, got %d", a)
	}
	if thin.Instance.StrokeMul != 1 {
		t.Errorf("expected stroke multiplier 1, got %v", thin.Instance.StrokeMul)
	}
	if wide.Instance.StrokeMul != 3.5 {
		t.Errorf("expected stroke multiplier 3.5 for a scaled 6px line, got %v", wide.Instance.StrokeMul)
	}
	if wide.Fringe.Offset != thin.Fringe.End() {
		t.Errorf("expected calls to share the index buffer, got offset %d", wide.Fringe.Offset)
	}
	checkIndices(t, &m)

	m.Reset()
	m.Stroke(tess, reui.NewPath(), reui.Identity(), white, 1, style)
	if len(m.Calls) != 0 || len(m.Vertices) != 0 {
		t.Error("expected an empty path to record nothing")
	}
}

func TestMeshBytes(t *testing.T) {
	tess := newTess(t)
	var m Mesh
	m.Fill(tess, square(0, 0, 10), reui.Identity(), reui.SolidPaint(reui.RGB(1, 0, 0)), 1)
	m.Fill(tess, square(20, 0, 10), reui.Identity(), reui.SolidPaint(reui.RGB(0, 1, 0)), 1)

	if n := len(m.VertexBytes(nil)); n != len(m.Vertices)*VertexStride {
		t.Errorf("expected %d vertex bytes, got %d", len(m.Vertices)*VertexStride, n)
	}
	if n := len(m.IndexBytes(nil)); n != len(m.Indices)*4 {
		t.Errorf("expected %d index bytes, got %d", len(m.Indices)*4, n)
	}
	if n := len(m.InstanceBytes(nil, 256)); n != 2*256 {
		t.Errorf("expected %d instance bytes, got %d", 2*256, n)
	}
	if n := len(m.InstanceBytes(nil, 0)); n != 2*reui.InstanceSize {
		t.Errorf("expected %d packed instance bytes, got %d", 2*reui.InstanceSize, n)
	}
}
