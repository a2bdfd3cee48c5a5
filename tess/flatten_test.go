package tess

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/lain-dono/reui"
)

func newTess(t *testing.T) *Tessellator {
	t.Helper()
	tt, err := New(DefaultOptions())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return tt
}

func square(x, y, s float32) *reui.Path {
	return reui.NewPath().
		MoveTo(reui.Pt(x, y)).
		LineTo(reui.Pt(x+s, y)).
		LineTo(reui.Pt(x+s, y+s)).
		LineTo(reui.Pt(x, y+s)).
		Close()
}

func polygon(cx, cy, r float32, n, stride int) *reui.Path {
	p := reui.NewPath()
	for i := range n {
		a := 2 * math.Pi * float64(i*stride%n) / float64(n)
		pt := reui.Pt(cx+r*float32(math.Cos(a)), cy+r*float32(math.Sin(a)))
		if i == 0 {
			p.MoveTo(pt)
		} else {
			p.LineTo(pt)
		}
	}
	return p.Close()
}

func TestOptions(t *testing.T) {
	o := DefaultOptions().ForPixelRatio(2)
	if o.TessTol != 0.125 || o.DistTol != 0.005 || o.FringeWidth != 0.5 {
		t.Errorf("unexpected scaled options %+v", o)
	}
	if got := DefaultOptions().ForPixelRatio(0); got != DefaultOptions() {
		t.Errorf("expected ratio 0 to keep defaults, got %+v", got)
	}

	tests := []struct {
		name string
		opts Options
		ok   bool
	}{
		{"default", DefaultOptions(), true},
		{"no aa", Options{TessTol: 0.25}, true},
		{"zero tess tol", Options{DistTol: 0.01, FringeWidth: 1}, false},
		{"negative dist tol", Options{TessTol: 0.25, DistTol: -1}, false},
		{"negative fringe", Options{TessTol: 0.25, FringeWidth: -1}, false},
		{"nan", Options{TessTol: float32(math.NaN())}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.opts)
			if tt.ok && err != nil {
				t.Errorf("expected no error, got %v", err)
			}
			if !tt.ok && !errors.Is(err, ErrInvalidOptions) {
				t.Errorf("expected ErrInvalidOptions, got %v", err)
			}
		})
	}
}

func TestFlattenSquare(t *testing.T) {
	tt := newTess(t)
	tt.Flatten(square(0, 0, 10).Solid().Commands())

	cs := tt.Contours()
	if len(cs) != 1 {
		t.Fatalf("expected 1 contour, got %d", len(cs))
	}
	c := cs[0]
	if c.Count != 4 {
		t.Errorf("expected 4 points, got %d", c.Count)
	}
	if !c.Closed {
		t.Error("expected closed contour")
	}
	if !c.Convex {
		t.Error("expected convex contour")
	}
	if c.Area != 100 {
		t.Errorf("expected area 100, got %v", c.Area)
	}
	b := tt.Bounds()
	if b.Min != reui.Pt(0, 0) || b.Max != reui.Pt(10, 10) {
		t.Errorf("unexpected bounds %v", b)
	}
	for i, p := range tt.Points(0) {
		if p.Len != 10 {
			t.Errorf("point %d: expected segment length 10, got %v", i, p.Len)
		}
		if p.Flags != PtCorner {
			t.Errorf("point %d: expected corner flag, got %b", i, p.Flags)
		}
	}
}

func TestFlattenWinding(t *testing.T) {
	cw := reui.NewPath().MoveTo(reui.Pt(0, 0)).LineTo(reui.Pt(10, 0)).LineTo(reui.Pt(0, 10)).Close()
	ccw := reui.NewPath().MoveTo(reui.Pt(0, 0)).LineTo(reui.Pt(0, 10)).LineTo(reui.Pt(10, 0)).Close()

	tests := []struct {
		name string
		path *reui.Path
		want float32
	}{
		{"solid a", cw.Solid(), 50},
		{"solid b", ccw.Solid(), 50},
		{"hole a", reui.NewPath().MoveTo(reui.Pt(0, 0)).LineTo(reui.Pt(10, 0)).LineTo(reui.Pt(0, 10)).Close().Hole(), -50},
		{"hole b", reui.NewPath().MoveTo(reui.Pt(0, 0)).LineTo(reui.Pt(0, 10)).LineTo(reui.Pt(10, 0)).Close().Hole(), -50},
		{"default is solid", reui.NewPath().MoveTo(reui.Pt(0, 0)).LineTo(reui.Pt(10, 0)).LineTo(reui.Pt(0, 10)), 50},
	}
	tess := newTess(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tess.Flatten(tt.path.Commands())
			if len(tess.Contours()) != 1 {
				t.Fatalf("expected 1 contour, got %d", len(tess.Contours()))
			}
			c := tess.Contours()[0]
			if c.Area != tt.want {
				t.Errorf("expected area %v, got %v", tt.want, c.Area)
			}
			if got := polyArea(tess.Points(0)); got != tt.want {
				t.Errorf("expected point order with area %v, got %v", tt.want, got)
			}
		})
	}
}

func TestConvexity(t *testing.T) {
	tess := newTess(t)
	for n := 3; n <= 12; n++ {
		for _, stride := range []int{1, n - 1} {
			tess.Flatten(polygon(100, 100, 50, n, stride).Solid().Commands())
			c := tess.Contours()[0]
			if !c.Convex {
				t.Errorf("%d-gon (stride %d): expected convex", n, stride)
			}
			if c.Area <= 0 {
				t.Errorf("%d-gon (stride %d): expected positive area, got %v", n, stride, c.Area)
			}
		}
	}

	concave := map[string]*reui.Path{
		"pentagram":  polygon(100, 100, 50, 5, 2),
		"heptagram":  polygon(100, 100, 50, 7, 3),
		"hole":       square(0, 0, 10).Hole(),
		"arrow head": reui.NewPath().MoveTo(reui.Pt(0, 0)).LineTo(reui.Pt(10, 5)).LineTo(reui.Pt(0, 10)).LineTo(reui.Pt(3, 5)).Close(),
	}
	for name, p := range concave {
		tess.Flatten(p.Commands())
		if tess.Contours()[0].Convex {
			t.Errorf("%s: expected concave", name)
		}
	}
}

func TestFlattenDegenerate(t *testing.T) {
	tests := []struct {
		name     string
		path     *reui.Path
		contours int
		points   int
	}{
		{"lone move", reui.NewPath().MoveTo(reui.Pt(5, 5)), 0, 0},
		{"zero length line", reui.NewPath().MoveTo(reui.Pt(5, 5)).LineTo(reui.Pt(5, 5)), 0, 0},
		{"line without move", reui.NewPath().LineTo(reui.Pt(5, 5)).LineTo(reui.Pt(6, 6)), 0, 0},
		{"merged points", reui.NewPath().MoveTo(reui.Pt(0, 0)).LineTo(reui.Pt(0.001, 0)).LineTo(reui.Pt(10, 0)).LineTo(reui.Pt(10, 10)), 1, 3},
		{"two moves", reui.NewPath().MoveTo(reui.Pt(0, 0)).MoveTo(reui.Pt(1, 1)).LineTo(reui.Pt(2, 2)), 1, 2},
	}
	tess := newTess(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tess.Flatten(tt.path.Commands())
			if got := len(tess.Contours()); got != tt.contours {
				t.Fatalf("expected %d contours, got %d", tt.contours, got)
			}
			if tt.contours > 0 && tess.Contours()[0].Count != tt.points {
				t.Errorf("expected %d points, got %d", tt.points, tess.Contours()[0].Count)
			}
		})
	}
}

func TestFlattenImplicitClose(t *testing.T) {
	tess := newTess(t)
	p := reui.NewPath().
		MoveTo(reui.Pt(0, 0)).
		LineTo(reui.Pt(10, 0)).
		LineTo(reui.Pt(0, 10)).
		LineTo(reui.Pt(0, 0))
	tess.Flatten(p.Commands())
	c := tess.Contours()[0]
	if c.Count != 3 || !c.Closed {
		t.Errorf("expected 3 points closed, got %d closed=%v", c.Count, c.Closed)
	}

	tess.Flatten(reui.NewPath().Commands())
	if len(tess.Contours()) != 0 || !tess.Bounds().IsEmpty() {
		t.Error("expected Flatten to drop previous contours")
	}
}

func cubicAt(p [4]reui.Offset, s float64) (float64, float64) {
	u := 1 - s
	b0, b1, b2, b3 := u*u*u, 3*u*u*s, 3*u*s*s, s*s*s
	x := b0*float64(p[0].X) + b1*float64(p[1].X) + b2*float64(p[2].X) + b3*float64(p[3].X)
	y := b0*float64(p[0].Y) + b1*float64(p[1].Y) + b2*float64(p[2].Y) + b3*float64(p[3].Y)
	return x, y
}

func segmentDistance(px, py float64, a, b reui.Offset) float64 {
	ax, ay := float64(a.X), float64(a.Y)
	dx, dy := float64(b.X)-ax, float64(b.Y)-ay
	l2 := dx*dx + dy*dy
	s := 0.0
	if l2 > 0 {
		s = min(max(((px-ax)*dx+(py-ay)*dy)/l2, 0), 1)
	}
	return math.Hypot(px-(ax+s*dx), py-(ay+s*dy))
}

// maxDeviation samples curve densely and returns the largest distance
// from a sample to the flattened polyline of contour 0.
func maxDeviation(tess *Tessellator, curve func(s float64) (float64, float64)) float64 {
	pts := tess.Points(0)
	n := len(pts) - 1
	if tess.Contours()[0].Closed {
		n++
	}
	worst := 0.0
	for k := 0; k <= 2000; k++ {
		x, y := curve(float64(k) / 2000)
		best := math.Inf(1)
		for i := range n {
			best = min(best, segmentDistance(x, y, pts[i].Pos, pts[(i+1)%len(pts)].Pos))
		}
		worst = max(worst, best)
	}
	return worst
}

func TestCubicFlatteningErrorBound(t *testing.T) {
	rng := rand.New(rand.NewPCG(7, 11))
	tess := newTess(t)
	tol := float64(tess.Options().TessTol)

	for i := range 200 {
		var p [4]reui.Offset
		for j := range p {
			p[j] = reui.Pt(rng.Float32()*200, rng.Float32()*200)
		}
		tess.Flatten(reui.NewPath().MoveTo(p[0]).CubicTo(p[1], p[2], p[3]).Commands())
		if len(tess.Contours()) != 1 {
			t.Fatalf("curve %d: expected 1 contour, got %d", i, len(tess.Contours()))
		}
		dev := maxDeviation(tess, func(s float64) (float64, float64) { return cubicAt(p, s) })
		// DistTol merging may drop a point.
		if dev > tol+0.02 {
			t.Errorf("curve %d %v: deviation %v exceeds tolerance %v", i, p, dev, tol)
		}
		if n := tess.Contours()[0].Count; n > afdOne+1 {
			t.Errorf("curve %d: expected at most %d points, got %d", i, afdOne+1, n)
		}
	}
}

func TestQuadFlattening(t *testing.T) {
	tess := newTess(t)
	p0, c, p1 := reui.Pt(0, 0), reui.Pt(50, 100), reui.Pt(100, 0)
	tess.Flatten(reui.NewPath().MoveTo(p0).QuadTo(c, p1).Commands())

	pts := tess.Points(0)
	if len(pts) < 4 {
		t.Fatalf("expected a subdivided curve, got %d points", len(pts))
	}
	dev := maxDeviation(tess, func(s float64) (float64, float64) {
		u := 1 - s
		x := 2*u*s*50 + s*s*100
		y := 2 * u * s * 100
		return x, y
	})
	if dev > float64(tess.Options().TessTol)+0.02 {
		t.Errorf("deviation %v exceeds tolerance", dev)
	}

	ends := map[reui.Offset]bool{p0: true, p1: true}
	for i, p := range pts {
		endpoint := i == 0 || i == len(pts)-1
		if endpoint && (!ends[p.Pos] || p.Flags != PtCorner) {
			t.Errorf("point %d: expected corner at a curve end, got %v flags %b", i, p.Pos, p.Flags)
		}
		if !endpoint && p.Flags != 0 {
			t.Errorf("point %d: expected no flags on an inner curve point, got %b", i, p.Flags)
		}
	}
}

func TestStraightCubicIsOneSegment(t *testing.T) {
	tess := newTess(t)
	p := reui.NewPath().MoveTo(reui.Pt(0, 0)).CubicTo(reui.Pt(10, 0), reui.Pt(20, 0), reui.Pt(30, 0))
	tess.Flatten(p.Commands())
	if n := tess.Contours()[0].Count; n != 2 {
		t.Errorf("expected 2 points, got %d", n)
	}
}
