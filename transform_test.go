package reui

import (
	"math"
	"testing"
)

func approx(a, b float32) bool {
	return math.Abs(float64(a-b)) < 1e-4
}

func TestTransformApply(t *testing.T) {
	tests := []struct {
		name string
		xf   Transform
		in   Offset
		want Offset
	}{
		{"identity", Identity(), Pt(3, 4), Pt(3, 4)},
		{"translation", Translation(10, -2), Pt(3, 4), Pt(13, 2)},
		{"scale", UniformScale(2), Pt(3, 4), Pt(6, 8)},
		{"rotation 90deg", Rotation(math.Pi / 2), Pt(1, 0), Pt(0, 1)},
		{"scale rotate translate", NewTransform(2, math.Pi/2, 1, 1), Pt(1, 0), Pt(1, 3)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tt.xf.Apply(tt.in)
			if !got.ApproxEqual(tt.want, 1e-4) {
				t.Errorf("%+v.Apply(%v) = %v, want %v", tt.xf, tt.in, got, tt.want)
			}
		})
	}
}

func TestTransformThen(t *testing.T) {
	a := Rotation(0.7)
	b := Translation(5, 6)
	p := Pt(2, -1)

	got := a.Then(b).Apply(p)
	want := b.Apply(a.Apply(p))
	if !got.ApproxEqual(want, 1e-4) {
		t.Errorf("expected %v, got %v", want, got)
	}

	got = b.Pre(a).Apply(p)
	if !got.ApproxEqual(want, 1e-4) {
		t.Errorf("Pre: expected %v, got %v", want, got)
	}
}

func TestTransformInverse(t *testing.T) {
	xf := NewTransform(3, 1.1, -4, 9)
	inv := xf.Inverse()
	for _, p := range []Offset{Pt(0, 0), Pt(1, 2), Pt(-7, 3.5)} {
		got := inv.Apply(xf.Apply(p))
		if !got.ApproxEqual(p, 1e-3) {
			t.Errorf("inverse round trip of %v: got %v", p, got)
		}
	}

	if got := (Transform{}).Inverse(); !got.IsIdentity() {
		t.Errorf("degenerate inverse: expected identity, got %+v", got)
	}
}

func TestTransformAverageScale(t *testing.T) {
	xf := NewTransform(2.5, 0.3, 100, 100)
	if got := xf.AverageScale(); !approx(got, 2.5) {
		t.Errorf("expected 2.5, got %v", got)
	}
}

func TestTransformMapRect(t *testing.T) {
	r := RectLTWH(0, 0, 2, 1)
	got := Rotation(math.Pi / 2).MapRect(r)
	want := Rect{Min: Pt(-1, 0), Max: Pt(0, 2)}
	if !got.Min.ApproxEqual(want.Min, 1e-4) || !got.Max.ApproxEqual(want.Max, 1e-4) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRectOps(t *testing.T) {
	r := RectLTWH(1, 2, 10, 20)
	if r.Width() != 10 || r.Height() != 20 {
		t.Errorf("expected 10x20, got %vx%v", r.Width(), r.Height())
	}
	if c := r.Center(); c != Pt(6, 12) {
		t.Errorf("expected center (6,12), got %v", c)
	}
	if !r.Contains(Pt(5, 5)) || r.Contains(Pt(0, 0)) {
		t.Error("Contains mismatch")
	}
	if !EmptyRect().IsEmpty() {
		t.Error("EmptyRect should be empty")
	}
	e := EmptyRect().Extend(Pt(3, 4)).Extend(Pt(-1, 8))
	if e.Min != Pt(-1, 4) || e.Max != Pt(3, 8) {
		t.Errorf("Extend: got %v", e)
	}
	i := r.Intersect(RectLTWH(5, 5, 100, 100))
	if i.Min != Pt(5, 5) || i.Max != Pt(11, 22) {
		t.Errorf("Intersect: got %v", i)
	}
}

func TestOffsetNormalize(t *testing.T) {
	n, l := Pt(3, 4).Normalize()
	if !approx(l, 5) || !n.ApproxEqual(Pt(0.6, 0.8), 1e-6) {
		t.Errorf("expected (0.6,0.8) len 5, got %v len %v", n, l)
	}
	z, l := Pt(0, 0).Normalize()
	if z != (Offset{}) || l != 0 {
		t.Errorf("zero vector should stay zero, got %v len %v", z, l)
	}
}
