package tess

import (
	"math"

	"github.com/lain-dono/reui"
)

// maxExtScale caps the extrusion scale at turns close to 180 degrees.
const maxExtScale = 600

// CurveDivs returns the number of segments needed to approximate an arc of
// the given radius and angle within tol. It is at least 2.
func CurveDivs(r, arc, tol float32) int {
	da := math.Acos(float64(r/(r+tol))) * 2
	if !(da > 0) {
		return 2
	}
	return max(2, int(math.Ceil(float64(arc)/da)))
}

// calculateJoins computes the extrusion of every point and decides which
// corners need bevel geometry for a stroke of half width w.
func (t *Tessellator) calculateJoins(w float32, join reui.LineJoin, miterLimit float32) {
	var iw float32
	if w > 0 {
		iw = 1 / w
	}

	for i := range t.contours {
		c := &t.contours[i]
		pts := t.points[c.First : c.First+c.Count]
		c.NBevel = 0

		p0 := &pts[len(pts)-1]
		for j := range pts {
			p1 := &pts[j]

			p1.Ext = normal(p0.Dir).Add(normal(p1.Dir)).Mul(0.5)
			dmr2 := p1.Ext.LengthSquared()
			if dmr2 > 1e-6 {
				p1.Ext = p1.Ext.Mul(min(1/dmr2, maxExtScale))
			}

			p1.Flags &= PtCorner

			if p1.Dir.X*p0.Dir.Y-p0.Dir.X*p1.Dir.Y > 0 {
				p1.Flags |= PtLeft
			}

			limit := max(1.01, min(p0.Len, p1.Len)*iw)
			if dmr2*limit*limit < 1 {
				p1.Flags |= PtInnerBevel
			}

			if p1.Flags&PtCorner != 0 {
				if dmr2*miterLimit*miterLimit < 1 || join == reui.LineJoinBevel || join == reui.LineJoinRound {
					p1.Flags |= PtBevel
				}
			}

			if p1.Flags&(PtBevel|PtInnerBevel) != 0 {
				c.NBevel++
			}
			p0 = p1
		}
	}
}
