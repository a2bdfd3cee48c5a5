package reui

import (
	"iter"
	"math"
)

// Verb identifies a path command.
type Verb uint8

// Path verbs.
const (
	// MoveTo starts a new contour.
	MoveTo Verb = iota
	// LineTo adds a straight segment.
	LineTo
	// QuadTo adds a quadratic Bezier segment (control, end).
	QuadTo
	// CubicTo adds a cubic Bezier segment (control 1, control 2, end).
	CubicTo
	// Close closes the current contour.
	Close
	// Solid marks the current contour as a filled region.
	Solid
	// Hole marks the current contour as a hole.
	Hole
)

// String returns the verb name.
func (v Verb) String() string {
	switch v {
	case MoveTo:
		return "MoveTo"
	case LineTo:
		return "LineTo"
	case QuadTo:
		return "QuadTo"
	case CubicTo:
		return "CubicTo"
	case Close:
		return "Close"
	case Solid:
		return "Solid"
	case Hole:
		return "Hole"
	default:
		return unknownStr
	}
}

// PointCount returns the number of points this verb consumes.
func (v Verb) PointCount() int {
	switch v {
	case MoveTo, LineTo:
		return 1
	case QuadTo:
		return 2
	case CubicTo:
		return 3
	default:
		return 0
	}
}

// Command is a single decoded path command. Only the first
// Verb.PointCount() entries of Points are meaningful.
type Command struct {
	Verb   Verb
	Points [3]Offset
}

// End returns the point the command leaves the pen at. It is the zero
// Offset for verbs without points.
func (c Command) End() Offset {
	n := c.Verb.PointCount()
	if n == 0 {
		return Offset{}
	}
	return c.Points[n-1]
}

// Path is a retained command stream. Verbs and points are stored
// separately so a path can be replayed many times without allocation.
type Path struct {
	verbs  []Verb
	points []Offset
	bounds Rect
	// open is true while a contour has a current point.
	open bool
}

// NewPath creates an empty path.
func NewPath() *Path {
	return &Path{
		verbs:  make([]Verb, 0, 16),
		points: make([]Offset, 0, 32),
		bounds: EmptyRect(),
	}
}

// Reset clears the path for reuse without releasing memory.
func (p *Path) Reset() {
	p.verbs = p.verbs[:0]
	p.points = p.points[:0]
	p.bounds = EmptyRect()
	p.open = false
}

func (p *Path) push(v Verb, pts ...Offset) *Path {
	p.verbs = append(p.verbs, v)
	p.points = append(p.points, pts...)
	for _, pt := range pts {
		p.bounds = p.bounds.Extend(pt)
	}
	return p
}

// MoveTo starts a new contour at pt.
func (p *Path) MoveTo(pt Offset) *Path {
	p.open = true
	return p.push(MoveTo, pt)
}

// LineTo adds a line to pt.
func (p *Path) LineTo(pt Offset) *Path {
	p.open = true
	return p.push(LineTo, pt)
}

// QuadTo adds a quadratic Bezier through control point c to pt.
func (p *Path) QuadTo(c, pt Offset) *Path {
	p.open = true
	return p.push(QuadTo, c, pt)
}

// CubicTo adds a cubic Bezier with control points c1, c2 ending at pt.
func (p *Path) CubicTo(c1, c2, pt Offset) *Path {
	p.open = true
	return p.push(CubicTo, c1, c2, pt)
}

// Close closes the current contour.
func (p *Path) Close() *Path {
	p.open = false
	return p.push(Close)
}

// Solid marks the current contour as filled.
func (p *Path) Solid() *Path { return p.push(Solid) }

// Hole marks the current contour as a hole.
func (p *Path) Hole() *Path { return p.push(Hole) }

// Rect adds a closed rectangle.
func (p *Path) Rect(r Rect) *Path {
	return p.MoveTo(r.Min).
		LineTo(Offset{X: r.Min.X, Y: r.Max.Y}).
		LineTo(r.Max).
		LineTo(Offset{X: r.Max.X, Y: r.Min.Y}).
		Close()
}

// kappa90 is the cubic control distance for a quarter circle of radius 1.
const kappa90 = 0.5522847493

// RoundRect adds a rectangle with all corners rounded by radius.
func (p *Path) RoundRect(r Rect, radius float32) *Path {
	return p.RoundRectVarying(r, radius, radius, radius, radius)
}

// RoundRectVarying adds a rectangle with a separate radius per corner.
func (p *Path) RoundRectVarying(r Rect, tl, tr, br, bl float32) *Path {
	if tl < 0.1 && tr < 0.1 && br < 0.1 && bl < 0.1 {
		return p.Rect(r)
	}
	x, y, w, h := r.Min.X, r.Min.Y, r.Width(), r.Height()
	halfw := abs32(w) * 0.5
	halfh := abs32(h) * 0.5
	sw, sh := sign32(w), sign32(h)
	rxBL, ryBL := min(bl, halfw)*sw, min(bl, halfh)*sh
	rxBR, ryBR := min(br, halfw)*sw, min(br, halfh)*sh
	rxTR, ryTR := min(tr, halfw)*sw, min(tr, halfh)*sh
	rxTL, ryTL := min(tl, halfw)*sw, min(tl, halfh)*sh
	const k = 1 - kappa90
	p.MoveTo(Pt(x, y+ryTL))
	p.LineTo(Pt(x, y+h-ryBL))
	p.CubicTo(Pt(x, y+h-ryBL*k), Pt(x+rxBL*k, y+h), Pt(x+rxBL, y+h))
	p.LineTo(Pt(x+w-rxBR, y+h))
	p.CubicTo(Pt(x+w-rxBR*k, y+h), Pt(x+w, y+h-ryBR*k), Pt(x+w, y+h-ryBR))
	p.LineTo(Pt(x+w, y+ryTR))
	p.CubicTo(Pt(x+w, y+ryTR*k), Pt(x+w-rxTR*k, y), Pt(x+w-rxTR, y))
	p.LineTo(Pt(x+rxTL, y))
	p.CubicTo(Pt(x+rxTL*k, y), Pt(x, y+ryTL*k), Pt(x, y+ryTL))
	return p.Close()
}

// Ellipse adds a closed ellipse centered at c.
func (p *Path) Ellipse(c Offset, rx, ry float32) *Path {
	kx, ky := rx*kappa90, ry*kappa90
	cx, cy := c.X, c.Y
	p.MoveTo(Pt(cx-rx, cy))
	p.CubicTo(Pt(cx-rx, cy+ky), Pt(cx-kx, cy+ry), Pt(cx, cy+ry))
	p.CubicTo(Pt(cx+kx, cy+ry), Pt(cx+rx, cy+ky), Pt(cx+rx, cy))
	p.CubicTo(Pt(cx+rx, cy-ky), Pt(cx+kx, cy-ry), Pt(cx, cy-ry))
	p.CubicTo(Pt(cx-kx, cy-ry), Pt(cx-rx, cy-ky), Pt(cx-rx, cy))
	return p.Close()
}

// Circle adds a closed circle.
func (p *Path) Circle(c Offset, r float32) *Path {
	return p.Ellipse(c, r, r)
}

// Arc adds a circular arc from angle a0 to a1 (radians). If a contour is
// already open the arc is connected to it with a line, otherwise a new
// contour starts at the arc's first point. Sweeps of a full turn or more
// are clamped to one full circle.
func (p *Path) Arc(c Offset, r, a0, a1 float32, clockwise bool) *Path {
	const twoPi = 2 * math.Pi
	da := a1 - a0
	if clockwise {
		if abs32(da) >= twoPi {
			da = twoPi
		} else {
			for da < 0 {
				da += twoPi
			}
		}
	} else {
		if abs32(da) >= twoPi {
			da = -twoPi
		} else {
			for da > 0 {
				da -= twoPi
			}
		}
	}

	// At most five cubic segments, each under a quarter turn.
	ndivs := max(1, min(int(abs32(da)/(math.Pi*0.5)+0.5), 5))
	hda := float64(da) / float64(ndivs) / 2
	kappa := float32(math.Abs(4.0 / 3.0 * (1 - math.Cos(hda)) / math.Sin(hda)))
	if !clockwise {
		kappa = -kappa
	}

	var prev, prevTan Offset
	for i := 0; i <= ndivs; i++ {
		a := float64(a0) + float64(da)*float64(i)/float64(ndivs)
		sin, cos := math.Sincos(a)
		dx, dy := float32(cos), float32(sin)
		pt := Pt(c.X+dx*r, c.Y+dy*r)
		tan := Pt(-dy*r*kappa, dx*r*kappa)
		switch {
		case i > 0:
			p.CubicTo(prev.Add(prevTan), pt.Sub(tan), pt)
		case p.open:
			p.LineTo(pt)
		default:
			p.MoveTo(pt)
		}
		prev, prevTan = pt, tan
	}
	return p
}

// Bounds returns a conservative bounding box that includes control points.
func (p *Path) Bounds() Rect { return p.bounds }

// IsEmpty reports whether the path has no commands.
func (p *Path) IsEmpty() bool { return len(p.verbs) == 0 }

// Len returns the number of commands.
func (p *Path) Len() int { return len(p.verbs) }

// Commands iterates the path in order.
func (p *Path) Commands() iter.Seq[Command] {
	return func(yield func(Command) bool) {
		idx := 0
		for _, v := range p.verbs {
			cmd := Command{Verb: v}
			n := v.PointCount()
			copy(cmd.Points[:n], p.points[idx:idx+n])
			idx += n
			if !yield(cmd) {
				return
			}
		}
	}
}

// Transformed iterates the path with every point mapped through xf.
func (p *Path) Transformed(xf Transform) iter.Seq[Command] {
	return TransformCommands(p.Commands(), xf)
}

// TransformCommands maps every point of a command stream through xf.
func TransformCommands(cmds iter.Seq[Command], xf Transform) iter.Seq[Command] {
	if xf.IsIdentity() {
		return cmds
	}
	return func(yield func(Command) bool) {
		for cmd := range cmds {
			for i := range cmd.Verb.PointCount() {
				cmd.Points[i] = xf.Apply(cmd.Points[i])
			}
			if !yield(cmd) {
				return
			}
		}
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

func sign32(x float32) float32 {
	if x < 0 {
		return -1
	}
	return 1
}
