package tess

import (
	"math"

	"github.com/lain-dono/reui"
)

// afdOne is the fixed-point parameter range of adaptive forward
// differencing. The step never drops below one unit, so a curve produces
// at most afdOne points.
const afdOne = 1 << 10

// cubic flattens a cubic Bezier from p1 to p4 with adaptive forward
// differencing. p1 is not emitted; p4 is emitted exactly and carries
// flags.
//
// For a step h the second differences at both ends of the step are
// D2-D3 and D2, the extreme values of f''·h² on the step. The chord
// deviation is bounded by max|f''|·h²/8, so a step is accepted when
// max(|D2-D3|, |D2|)/8 <= TessTol.
func (t *Tessellator) cubic(p1, p2, p3, p4 reui.Offset, flags PointFlags) {
	tol := float64(t.opts.TessTol)

	x1, y1 := float64(p1.X), float64(p1.Y)
	x2, y2 := float64(p2.X), float64(p2.Y)
	x3, y3 := float64(p3.X), float64(p3.Y)
	x4, y4 := float64(p4.X), float64(p4.Y)

	// Power basis.
	ax := -x1 + 3*x2 - 3*x3 + x4
	ay := -y1 + 3*y2 - 3*y3 + y4
	bx := 3*x1 - 6*x2 + 3*x3
	by := 3*y1 - 6*y2 + 3*y3
	cx := -3*x1 + 3*x2
	cy := -3*y1 + 3*y2

	// Forward differences for a single step over the whole curve.
	px, py := x1, y1
	dx, dy := ax+bx+cx, ay+by+cy
	ddx, ddy := 6*ax+2*bx, 6*ay+2*by
	dddx, dddy := 6*ax, 6*ay

	pos, step := 0, afdOne
	for pos < afdOne {
		for (step > 1 && afdFlatness(ddx, ddy, dddx, dddy) > tol) || pos+step > afdOne {
			dx = 0.5*dx - ddx/8 + dddx/16
			dy = 0.5*dy - ddy/8 + dddy/16
			ddx = ddx/4 - dddx/8
			ddy = ddy/4 - dddy/8
			dddx /= 8
			dddy /= 8
			step >>= 1
		}

		for step < afdOne && pos+2*step <= afdOne {
			ndddx, ndddy := 8*dddx, 8*dddy
			nddx, nddy := 4*ddx+4*dddx, 4*ddy+4*dddy
			if afdFlatness(nddx, nddy, ndddx, ndddy) > tol {
				break
			}
			dx, dy = 2*dx+ddx, 2*dy+ddy
			ddx, ddy = nddx, nddy
			dddx, dddy = ndddx, ndddy
			step <<= 1
		}

		px += dx
		py += dy
		dx += ddx
		dy += ddy
		ddx += dddx
		ddy += dddy
		pos += step

		if pos == afdOne {
			t.addPoint(p4, flags)
		} else {
			t.addPoint(reui.Offset{X: float32(px), Y: float32(py)}, 0)
		}
	}
}

// afdFlatness bounds the chord deviation of the next step.
func afdFlatness(ddx, ddy, dddx, dddy float64) float64 {
	start := math.Hypot(ddx-dddx, ddy-dddy)
	end := math.Hypot(ddx, ddy)
	return max(start, end) / 8
}
