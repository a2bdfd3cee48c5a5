package tess

import (
	"math"
	"slices"

	"github.com/lain-dono/reui"
)

// ExpandFill builds fill geometry for the flattened contours. fringe is the
// width of the anti-aliasing ring; zero emits the bare polygons. It
// reports whether the shape is a single convex contour, in which case the
// fill ranges can be drawn directly without stenciling.
//
// Every contour gets a fill range, a polygon inset by half the fringe and
// meant to be drawn as a fan, and with a fringe a stroke range, the
// anti-aliasing ring as a strip.
func (t *Tessellator) ExpandFill(fringe float32, join reui.LineJoin, miterLimit float32) bool {
	aa := fringe
	withFringe := fringe > 0

	t.calculateJoins(fringe, join, miterLimit)

	n := 0
	for _, c := range t.contours {
		n += c.Count + c.NBevel + 1
		if withFringe {
			n += (c.Count + c.NBevel*5 + 1) * 2
		}
	}
	t.verts = slices.Grow(t.verts[:0], n)

	convex := len(t.contours) == 1 && t.contours[0].Convex

	for i := range t.contours {
		c := &t.contours[i]
		pts := t.points[c.First : c.First+c.Count]
		woff := 0.5 * aa

		start := len(t.verts)
		if withFringe {
			p0 := &pts[len(pts)-1]
			for j := range pts {
				p1 := &pts[j]
				switch {
				case p1.Flags&PtBevel == 0:
					t.add(p1.Pos.Add(p1.Ext.Mul(woff)), 0.5, 1)
				case p1.Flags&PtLeft != 0:
					t.add(p1.Pos.Add(p1.Ext.Mul(woff)), 0.5, 1)
				default:
					t.add(p1.Pos.Add(normal(p0.Dir).Mul(woff)), 0.5, 1)
					t.add(p1.Pos.Add(normal(p1.Dir).Mul(woff)), 0.5, 1)
				}
				p0 = p1
			}
		} else {
			for j := range pts {
				t.add(pts[j].Pos, 0.5, 1)
			}
		}
		c.Fill = Span{Offset: start, Count: len(t.verts) - start}

		if !withFringe {
			c.Stroke = Span{}
			continue
		}

		lw, rw := fringe+woff, fringe-woff
		var lu, ru float32 = 0, 1
		// A convex shape only needs the outer half of the fringe; the
		// inner edge coincides with the fill polygon.
		if convex {
			lw = woff
			lu = 0.5
		}

		start = len(t.verts)
		p0 := &pts[len(pts)-1]
		for j := range pts {
			p1 := &pts[j]
			if p1.Flags&(PtBevel|PtInnerBevel) != 0 {
				t.bevelJoin(p0, p1, lw, rw, lu, ru)
			} else {
				t.add(p1.Pos.Add(p1.Ext.Mul(lw)), lu, 1)
				t.add(p1.Pos.Sub(p1.Ext.Mul(rw)), ru, 1)
			}
			p0 = p1
		}
		t.closeLoop(start, lu, ru)
		c.Stroke = Span{Offset: start, Count: len(t.verts) - start}
	}
	return convex
}

// ExpandStroke builds stroke geometry for the flattened contours. w is
// half the stroke width and fringe the anti-aliasing width. Every contour
// gets a stroke range drawn as a strip.
func (t *Tessellator) ExpandStroke(w, fringe float32, lineCap reui.LineCap, join reui.LineJoin, miterLimit float32) {
	aa := fringe
	var u0, u1 float32 = 0, 1
	ncap := CurveDivs(w, math.Pi, t.opts.TessTol)

	w += aa * 0.5

	// Without anti-aliasing the whole stroke is opaque.
	if aa == 0 {
		u0, u1 = 0.5, 0.5
	}

	t.calculateJoins(w, join, miterLimit)

	n := 0
	for _, c := range t.contours {
		if join == reui.LineJoinRound {
			n += (c.Count + c.NBevel*(ncap+2) + 1) * 2
		} else {
			n += (c.Count + c.NBevel*5 + 1) * 2
		}
		if !c.Closed {
			if lineCap == reui.LineCapRound {
				n += (ncap*2 + 2) * 2
			} else {
				n += (3 + 3) * 2
			}
		}
	}
	t.verts = slices.Grow(t.verts[:0], n)

	for i := range t.contours {
		c := &t.contours[i]
		pts := t.points[c.First : c.First+c.Count]
		c.Fill = Span{}
		start := len(t.verts)

		var i0, i1, s, e int
		if c.Closed {
			i0, i1 = len(pts)-1, 0
			s, e = 0, len(pts)
		} else {
			i0, i1 = 0, 1
			s, e = 1, len(pts)-1
			d, _ := pts[i1].Pos.Sub(pts[i0].Pos).Normalize()
			switch lineCap {
			case reui.LineCapButt:
				t.buttCapStart(&pts[i0], d, w, -aa*0.5, aa, u0, u1)
			case reui.LineCapSquare:
				t.buttCapStart(&pts[i0], d, w, w-aa, aa, u0, u1)
			case reui.LineCapRound:
				t.roundCapStart(&pts[i0], d, w, ncap, u0, u1)
			}
		}

		for range e - s {
			p0, p1 := &pts[i0], &pts[i1]
			if p1.Flags&(PtBevel|PtInnerBevel) != 0 {
				if join == reui.LineJoinRound {
					t.roundJoin(p0, p1, w, w, u0, u1, ncap)
				} else {
					t.bevelJoin(p0, p1, w, w, u0, u1)
				}
			} else {
				t.add(p1.Pos.Add(p1.Ext.Mul(w)), u0, 1)
				t.add(p1.Pos.Sub(p1.Ext.Mul(w)), u1, 1)
			}
			i0, i1 = i1, i1+1
		}

		if c.Closed {
			t.closeLoop(start, u0, u1)
		} else {
			d, _ := pts[i1].Pos.Sub(pts[i0].Pos).Normalize()
			switch lineCap {
			case reui.LineCapButt:
				t.buttCapEnd(&pts[i1], d, w, -aa*0.5, aa, u0, u1)
			case reui.LineCapSquare:
				t.buttCapEnd(&pts[i1], d, w, w-aa, aa, u0, u1)
			case reui.LineCapRound:
				t.roundCapEnd(&pts[i1], d, w, ncap, u0, u1)
			}
		}
		c.Stroke = Span{Offset: start, Count: len(t.verts) - start}
	}
}

// closeLoop repeats the first two vertices of a ring so the strip closes.
func (t *Tessellator) closeLoop(start int, lu, ru float32) {
	t.add(t.verts[start].Position(), lu, 1)
	t.add(t.verts[start+1].Position(), ru, 1)
}

// buttCapStart emits a butt or square cap moved back by d along the
// direction, with an outer fringe row of width aa.
func (t *Tessellator) buttCapStart(p *Point, dir reui.Offset, w, d, aa, u0, u1 float32) {
	c := p.Pos.Sub(dir.Mul(d))
	dl := normal(dir).Mul(w)
	back := dir.Mul(aa)
	t.add(c.Add(dl).Sub(back), u0, 0)
	t.add(c.Sub(dl).Sub(back), u1, 0)
	t.add(c.Add(dl), u0, 1)
	t.add(c.Sub(dl), u1, 1)
}

func (t *Tessellator) buttCapEnd(p *Point, dir reui.Offset, w, d, aa, u0, u1 float32) {
	c := p.Pos.Add(dir.Mul(d))
	dl := normal(dir).Mul(w)
	fwd := dir.Mul(aa)
	t.add(c.Add(dl), u0, 1)
	t.add(c.Sub(dl), u1, 1)
	t.add(c.Add(dl).Add(fwd), u0, 0)
	t.add(c.Sub(dl).Add(fwd), u1, 0)
}

func (t *Tessellator) roundCapStart(p *Point, dir reui.Offset, w float32, ncap int, u0, u1 float32) {
	dl := normal(dir)
	for i := range ncap {
		a := float64(i) / float64(ncap-1) * math.Pi
		ax, ay := float32(math.Cos(a))*w, float32(math.Sin(a))*w
		t.add(p.Pos.Sub(dl.Mul(ax)).Sub(dir.Mul(ay)), u0, 1)
		t.add(p.Pos, 0.5, 1)
	}
	t.add(p.Pos.Add(dl.Mul(w)), u0, 1)
	t.add(p.Pos.Sub(dl.Mul(w)), u1, 1)
}

func (t *Tessellator) roundCapEnd(p *Point, dir reui.Offset, w float32, ncap int, u0, u1 float32) {
	dl := normal(dir)
	t.add(p.Pos.Add(dl.Mul(w)), u0, 1)
	t.add(p.Pos.Sub(dl.Mul(w)), u1, 1)
	for i := range ncap {
		a := float64(i) / float64(ncap-1) * math.Pi
		ax, ay := float32(math.Cos(a))*w, float32(math.Sin(a))*w
		t.add(p.Pos, 0.5, 1)
		t.add(p.Pos.Sub(dl.Mul(ax)).Add(dir.Mul(ay)), u0, 1)
	}
}

// chooseBevel returns the two outer points of a join at p1 offset by w:
// the ends of both segment normals for a bevel, or the miter point twice.
func chooseBevel(bevel bool, p0, p1 *Point, w float32) (reui.Offset, reui.Offset) {
	if bevel {
		return p1.Pos.Add(normal(p0.Dir).Mul(w)), p1.Pos.Add(normal(p1.Dir).Mul(w))
	}
	m := p1.Pos.Add(p1.Ext.Mul(w))
	return m, m
}

func (t *Tessellator) bevelJoin(p0, p1 *Point, lw, rw, lu, ru float32) {
	dl0, dl1 := normal(p0.Dir), normal(p1.Dir)
	inner := p1.Flags&PtInnerBevel != 0

	if p1.Flags&PtLeft != 0 {
		l0, l1 := chooseBevel(inner, p0, p1, lw)
		r0, r1 := p1.Pos.Sub(dl0.Mul(rw)), p1.Pos.Sub(dl1.Mul(rw))

		t.add(l0, lu, 1)
		t.add(r0, ru, 1)
		if p1.Flags&PtBevel != 0 {
			t.add(l0, lu, 1)
			t.add(r0, ru, 1)
			t.add(l1, lu, 1)
			t.add(r1, ru, 1)
		} else {
			m := p1.Pos.Sub(p1.Ext.Mul(rw))
			t.add(p1.Pos, 0.5, 1)
			t.add(r0, ru, 1)
			t.add(m, ru, 1)
			t.add(m, ru, 1)
			t.add(p1.Pos, 0.5, 1)
			t.add(r1, ru, 1)
		}
		t.add(l1, lu, 1)
		t.add(r1, ru, 1)
		return
	}

	r0, r1 := chooseBevel(inner, p0, p1, -rw)
	l0, l1 := p1.Pos.Add(dl0.Mul(lw)), p1.Pos.Add(dl1.Mul(lw))

	t.add(l0, lu, 1)
	t.add(r0, ru, 1)
	if p1.Flags&PtBevel != 0 {
		t.add(l0, lu, 1)
		t.add(r0, ru, 1)
		t.add(l1, lu, 1)
		t.add(r1, ru, 1)
	} else {
		m := p1.Pos.Add(p1.Ext.Mul(lw))
		t.add(l0, lu, 1)
		t.add(p1.Pos, 0.5, 1)
		t.add(m, lu, 1)
		t.add(m, lu, 1)
		t.add(l1, lu, 1)
		t.add(p1.Pos, 0.5, 1)
	}
	t.add(l1, lu, 1)
	t.add(r1, ru, 1)
}

func (t *Tessellator) roundJoin(p0, p1 *Point, lw, rw, lu, ru float32, ncap int) {
	dl0, dl1 := normal(p0.Dir), normal(p1.Dir)
	inner := p1.Flags&PtInnerBevel != 0

	if p1.Flags&PtLeft != 0 {
		l0, l1 := chooseBevel(inner, p0, p1, lw)
		a0 := math.Atan2(float64(-dl0.Y), float64(-dl0.X))
		a1 := math.Atan2(float64(-dl1.Y), float64(-dl1.X))
		if a1 > a0 {
			a1 -= 2 * math.Pi
		}

		t.add(l0, lu, 1)
		t.add(p1.Pos.Sub(dl0.Mul(rw)), ru, 1)
		n := arcSteps(a0-a1, ncap)
		for i := range n {
			a := a0 + float64(i)/float64(n-1)*(a1-a0)
			t.add(p1.Pos, 0.5, 1)
			t.add(p1.Pos.Add(polar(a, rw)), ru, 1)
		}
		t.add(l1, lu, 1)
		t.add(p1.Pos.Sub(dl1.Mul(rw)), ru, 1)
		return
	}

	r0, r1 := chooseBevel(inner, p0, p1, -rw)
	a0 := math.Atan2(float64(dl0.Y), float64(dl0.X))
	a1 := math.Atan2(float64(dl1.Y), float64(dl1.X))
	if a1 < a0 {
		a1 += 2 * math.Pi
	}

	t.add(p1.Pos.Add(dl0.Mul(rw)), lu, 1)
	t.add(r0, ru, 1)
	n := arcSteps(a1-a0, ncap)
	for i := range n {
		a := a0 + float64(i)/float64(n-1)*(a1-a0)
		t.add(p1.Pos.Add(polar(a, lw)), lu, 1)
		t.add(p1.Pos, 0.5, 1)
	}
	t.add(p1.Pos.Add(dl1.Mul(rw)), lu, 1)
	t.add(r1, ru, 1)
}

// arcSteps returns the number of points of a round join spanning da
// radians when a half circle uses ncap points.
func arcSteps(da float64, ncap int) int {
	n := int(math.Ceil(da / math.Pi * float64(ncap)))
	return min(max(n, 2), ncap)
}

func polar(a float64, r float32) reui.Offset {
	return reui.Offset{X: float32(math.Cos(a)) * r, Y: float32(math.Sin(a)) * r}
}
