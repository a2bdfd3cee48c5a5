package truetype

import (
	"fmt"
	"math"

	"github.com/lain-dono/reui"
)

// VertexKind is the type of an outline vertex.
type VertexKind uint8

// Outline vertex kinds.
const (
	VMove VertexKind = iota + 1
	VLine
	VCurve
)

// Vertex is one outline command in font units. For VCurve, (CX, CY) is
// the quadratic control point and (X, Y) the end point.
type Vertex struct {
	X, Y   int32
	CX, CY int32
	Kind   VertexKind
}

// Simple glyph point flags.
const (
	flagOnCurve = 1 << 0
	flagXShort  = 1 << 1
	flagYShort  = 1 << 2
	flagRepeat  = 1 << 3
	flagXSame   = 1 << 4
	flagYSame   = 1 << 5
)

// Composite glyph component flags.
const (
	argsAreWords   = 1 << 0
	argsAreXY      = 1 << 1
	weHaveAScale   = 1 << 3
	moreComponents = 1 << 5
	weHaveXYScale  = 1 << 6
	weHaveTwoByTwo = 1 << 7
)

// maxCompositeDepth bounds component nesting so cyclic fonts terminate.
const maxCompositeDepth = 8

// GlyphShape returns the outline of glyph. Empty glyphs return nil.
func (f *Font) GlyphShape(glyph int) ([]Vertex, error) {
	return f.AppendGlyphShape(nil, glyph)
}

// AppendGlyphShape appends the outline of glyph to dst.
func (f *Font) AppendGlyphShape(dst []Vertex, glyph int) ([]Vertex, error) {
	return f.appendGlyphShape(dst, glyph, 0)
}

func (f *Font) appendGlyphShape(dst []Vertex, glyph, depth int) ([]Vertex, error) {
	data, err := f.glyphData(glyph)
	if err != nil || data == nil {
		return dst, err
	}
	if len(data) < 10 {
		return dst, fmt.Errorf("%w: glyph %d header", ErrMalformed, glyph)
	}

	switch numContours := int(i16(data, 0)); {
	case numContours > 0:
		return appendSimpleGlyph(dst, data, numContours)
	case numContours == -1:
		return f.appendCompositeGlyph(dst, data, depth)
	case numContours < 0:
		return dst, fmt.Errorf("%w: glyph %d has %d contours", ErrMalformed, glyph, numContours)
	}
	return dst, nil
}

type glyfPoint struct {
	x, y  int32
	flags uint8
}

func appendSimpleGlyph(dst []Vertex, data []byte, numContours int) ([]Vertex, error) {
	endPts := 10
	n := int(u16(data, endPts+numContours*2-2)) + 1

	r := reader{b: data, off: endPts + numContours*2}
	r.skip(int(r.u16())) // instructions

	pts := make([]glyfPoint, n)
	var flags uint8
	repeat := 0
	for i := range pts {
		if repeat == 0 {
			flags = r.u8()
			if flags&flagRepeat != 0 {
				repeat = int(r.u8())
			}
		} else {
			repeat--
		}
		pts[i].flags = flags
	}

	var x int32
	for i := range pts {
		fl := pts[i].flags
		if fl&flagXShort != 0 {
			dx := int32(r.u8())
			if fl&flagXSame == 0 {
				dx = -dx
			}
			x += dx
		} else if fl&flagXSame == 0 {
			x += int32(r.i16())
		}
		pts[i].x = x
	}

	var y int32
	for i := range pts {
		fl := pts[i].flags
		if fl&flagYShort != 0 {
			dy := int32(r.u8())
			if fl&flagYSame == 0 {
				dy = -dy
			}
			y += dy
		} else if fl&flagYSame == 0 {
			y += int32(r.i16())
		}
		pts[i].y = y
	}
	if r.bad {
		return dst, fmt.Errorf("%w: truncated glyph points", ErrMalformed)
	}

	start := 0
	for c := range numContours {
		end := int(u16(data, endPts+2*c))
		if end < start || end >= n {
			return dst, fmt.Errorf("%w: contour end %d out of order", ErrMalformed, end)
		}
		dst = appendContour(dst, pts[start:end+1])
		start = end + 1
	}
	return dst, nil
}

// appendContour converts one closed TrueType contour into vertices,
// inserting the implied on-curve midpoint between consecutive off-curve
// points.
func appendContour(dst []Vertex, pts []glyfPoint) []Vertex {
	first := pts[0]
	startOff := first.flags&flagOnCurve == 0
	sx, sy := first.x, first.y
	var scx, scy int32
	rest := pts[1:]
	if startOff {
		// Start on the curve: either the next point or the midpoint.
		scx, scy = first.x, first.y
		if len(pts) > 1 {
			next := pts[1]
			if next.flags&flagOnCurve != 0 {
				sx, sy = next.x, next.y
				rest = pts[2:]
			} else {
				sx, sy = (first.x+next.x)>>1, (first.y+next.y)>>1
			}
		}
	}
	dst = append(dst, Vertex{Kind: VMove, X: sx, Y: sy})

	var cx, cy int32
	wasOff := false
	for _, p := range rest {
		if p.flags&flagOnCurve == 0 {
			if wasOff {
				dst = append(dst, Vertex{Kind: VCurve, X: (cx + p.x) >> 1, Y: (cy + p.y) >> 1, CX: cx, CY: cy})
			}
			cx, cy = p.x, p.y
			wasOff = true
			continue
		}
		if wasOff {
			dst = append(dst, Vertex{Kind: VCurve, X: p.x, Y: p.y, CX: cx, CY: cy})
		} else {
			dst = append(dst, Vertex{Kind: VLine, X: p.x, Y: p.y})
		}
		wasOff = false
	}

	if startOff {
		if wasOff {
			dst = append(dst, Vertex{Kind: VCurve, X: (cx + scx) >> 1, Y: (cy + scy) >> 1, CX: cx, CY: cy})
		}
		return append(dst, Vertex{Kind: VCurve, X: sx, Y: sy, CX: scx, CY: scy})
	}
	if wasOff {
		return append(dst, Vertex{Kind: VCurve, X: sx, Y: sy, CX: cx, CY: cy})
	}
	return append(dst, Vertex{Kind: VLine, X: sx, Y: sy})
}

func f2dot14(v int16) float64 { return float64(v) / 16384 }

func (f *Font) appendCompositeGlyph(dst []Vertex, data []byte, depth int) ([]Vertex, error) {
	if depth >= maxCompositeDepth {
		return dst, fmt.Errorf("%w: composite glyphs nested too deep", ErrMalformed)
	}

	r := reader{b: data, off: 10}
	for {
		flags := r.u16()
		component := int(r.u16())

		var arg1, arg2 int
		if flags&argsAreWords != 0 {
			arg1, arg2 = int(r.i16()), int(r.i16())
		} else {
			arg1, arg2 = int(int8(r.u8())), int(int8(r.u8()))
		}

		// Row-major [a b; c d] so that x' = a*x + c*y and y' = b*x + d*y.
		a, b, c, d := 1.0, 0.0, 0.0, 1.0
		switch {
		case flags&weHaveAScale != 0:
			a = f2dot14(r.i16())
			d = a
		case flags&weHaveXYScale != 0:
			a = f2dot14(r.i16())
			d = f2dot14(r.i16())
		case flags&weHaveTwoByTwo != 0:
			a = f2dot14(r.i16())
			b = f2dot14(r.i16())
			c = f2dot14(r.i16())
			d = f2dot14(r.i16())
		}
		if r.bad {
			return dst, fmt.Errorf("%w: truncated composite glyph", ErrMalformed)
		}

		var dx, dy float64
		if flags&argsAreXY != 0 {
			dx, dy = float64(arg1), float64(arg2)
		} else {
			reui.Logger().Warn("truetype: composite point matching is not supported; component left unaligned",
				"component", component)
		}

		n0 := len(dst)
		var err error
		dst, err = f.appendGlyphShape(dst, component, depth+1)
		if err != nil {
			return dst, err
		}
		for i := n0; i < len(dst); i++ {
			v := &dst[i]
			v.X, v.Y = xformPoint(v.X, v.Y, a, b, c, d, dx, dy)
			v.CX, v.CY = xformPoint(v.CX, v.CY, a, b, c, d, dx, dy)
		}

		if flags&moreComponents == 0 {
			return dst, nil
		}
	}
}

func xformPoint(x, y int32, a, b, c, d, dx, dy float64) (int32, int32) {
	fx, fy := float64(x), float64(y)
	return int32(math.Round(a*fx + c*fy + dx)), int32(math.Round(b*fx + d*fy + dy))
}
