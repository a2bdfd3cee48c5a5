package tess

import (
	"iter"
	"slices"

	"github.com/lain-dono/reui"
)

// Tessellator flattens and expands paths. The zero value is not usable;
// create one with New.
type Tessellator struct {
	opts     Options
	points   []Point
	contours []Contour
	verts    []Vertex
	bounds   reui.Rect
}

// New creates a tessellator with the given tolerances.
func New(opts Options) (*Tessellator, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}
	return &Tessellator{opts: opts, bounds: reui.EmptyRect()}, nil
}

// Options returns the active tolerances.
func (t *Tessellator) Options() Options { return t.opts }

// SetOptions replaces the tolerances, for example when the device pixel
// ratio changes between frames.
func (t *Tessellator) SetOptions(opts Options) error {
	if err := opts.Validate(); err != nil {
		return err
	}
	t.opts = opts
	return nil
}

// Reset drops all points, contours and vertices but keeps the buffers.
func (t *Tessellator) Reset() {
	t.points = t.points[:0]
	t.contours = t.contours[:0]
	t.verts = t.verts[:0]
	t.bounds = reui.EmptyRect()
}

// Contours returns the contours of the last Flatten. The slice is owned
// by the tessellator.
func (t *Tessellator) Contours() []Contour { return t.contours }

// Points returns the points of contour i.
func (t *Tessellator) Points(i int) []Point {
	c := t.contours[i]
	return t.points[c.First : c.First+c.Count]
}

// Vertices returns the vertices of the last expansion.
func (t *Tessellator) Vertices() []Vertex { return t.verts }

// Bounds returns the bounding box of the flattened points, or an empty
// rectangle when there are none.
func (t *Tessellator) Bounds() reui.Rect { return t.bounds }

// Flatten consumes a command stream and replaces the point and contour
// buffers with its flattened form. Contours that end up with fewer than
// two points are dropped.
func (t *Tessellator) Flatten(cmds iter.Seq[reui.Command]) {
	t.Reset()
	for cmd := range cmds {
		switch cmd.Verb {
		case reui.MoveTo:
			t.addContour()
			t.addPoint(cmd.Points[0], PtCorner)
		case reui.LineTo:
			t.addPoint(cmd.Points[0], PtCorner)
		case reui.QuadTo:
			if p0, ok := t.lastPoint(); ok {
				c, p := cmd.Points[0], cmd.Points[1]
				c1 := p0.Add(c.Sub(p0).Mul(2.0 / 3))
				c2 := p.Add(c.Sub(p).Mul(2.0 / 3))
				t.cubic(p0, c1, c2, p, PtCorner)
			}
		case reui.CubicTo:
			if p0, ok := t.lastPoint(); ok {
				t.cubic(p0, cmd.Points[0], cmd.Points[1], cmd.Points[2], PtCorner)
			}
		case reui.Close:
			if c := t.lastContour(); c != nil {
				c.Closed = true
			}
		case reui.Solid:
			t.setSolidity(Solid)
		case reui.Hole:
			t.setSolidity(Hole)
		}
	}
	t.finish()
}

func (t *Tessellator) addContour() {
	t.contours = append(t.contours, Contour{First: len(t.points)})
}

func (t *Tessellator) lastContour() *Contour {
	if len(t.contours) == 0 {
		return nil
	}
	return &t.contours[len(t.contours)-1]
}

func (t *Tessellator) setSolidity(s Solidity) {
	if c := t.lastContour(); c != nil {
		c.Solidity = s
	}
}

func (t *Tessellator) lastPoint() (reui.Offset, bool) {
	c := t.lastContour()
	if c == nil || c.Count == 0 {
		return reui.Offset{}, false
	}
	return t.points[len(t.points)-1].Pos, true
}

// addPoint appends a point to the current contour, merging it into the
// previous one when they are closer than DistTol.
func (t *Tessellator) addPoint(p reui.Offset, flags PointFlags) {
	c := t.lastContour()
	if c == nil {
		return
	}
	if c.Count > 0 {
		last := &t.points[len(t.points)-1]
		if last.Pos.ApproxEqual(p, t.opts.DistTol) {
			last.Flags |= flags
			return
		}
	}
	t.points = append(t.points, Point{Pos: p, Flags: flags})
	c.Count++
}

// finish closes the flattening pass: removes duplicated end points,
// enforces winding and computes directions, convexity and bounds.
func (t *Tessellator) finish() {
	kept := t.contours[:0]
	for _, c := range t.contours {
		pts := t.points[c.First : c.First+c.Count]
		if len(pts) > 1 && pts[len(pts)-1].Pos.ApproxEqual(pts[0].Pos, t.opts.DistTol) {
			c.Count--
			c.Closed = true
			pts = pts[:c.Count]
		}
		if c.Count < 2 {
			continue
		}

		if c.Count > 2 {
			area := polyArea(pts)
			if (c.Solidity == Solid && area < 0) || (c.Solidity == Hole && area > 0) {
				slices.Reverse(pts)
				area = -area
			}
			c.Area = area
		}

		for i := range pts {
			p0 := &pts[i]
			p1 := &pts[(i+1)%len(pts)]
			p0.Dir, p0.Len = p1.Pos.Sub(p0.Pos).Normalize()
			t.bounds = t.bounds.Extend(p0.Pos)
		}
		c.Convex = isConvex(pts)
		kept = append(kept, c)
	}
	t.contours = kept
}

// triarea2 returns twice the signed area of the triangle abc.
func triarea2(a, b, c reui.Offset) float32 {
	ab := b.Sub(a)
	ac := c.Sub(a)
	return ac.X*ab.Y - ab.X*ac.Y
}

func polyArea(pts []Point) float32 {
	var area float32
	for i := 2; i < len(pts); i++ {
		area += triarea2(pts[0].Pos, pts[i-1].Pos, pts[i].Pos)
	}
	return area * 0.5
}

// isConvex requires directions to be computed.
func isConvex(pts []Point) bool {
	if len(pts) < 3 {
		return false
	}
	p0 := &pts[len(pts)-1]
	for i := range pts {
		p1 := &pts[i]
		if p1.Dir.X*p0.Dir.Y-p0.Dir.X*p1.Dir.Y <= 0 {
			return false
		}
		p0 = p1
	}
	return signFlips(pts, func(p *Point) float32 { return p.Dir.X }) == 2 &&
		signFlips(pts, func(p *Point) float32 { return p.Dir.Y }) == 2
}

// flipEps treats direction components this small as axis aligned.
const flipEps = 1e-5

// signFlips counts the sign changes of a direction component around a
// closed contour, ignoring zero components.
func signFlips(pts []Point, comp func(*Point) float32) int {
	var first, prev, flips int
	for i := range pts {
		v := comp(&pts[i])
		s := 0
		switch {
		case v > flipEps:
			s = 1
		case v < -flipEps:
			s = -1
		default:
			continue
		}
		if first == 0 {
			first = s
		} else if s != prev {
			flips++
		}
		prev = s
	}
	if prev != 0 && prev != first {
		flips++
	}
	return flips
}
