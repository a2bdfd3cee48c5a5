package truetype

import (
	"fmt"
	"unsafe"
)

// Bitmap is an 8-bit coverage image. Pix[y*Stride+x] holds pixel (x, y).
type Bitmap struct {
	W, H   int
	Stride int
	Pix    []byte
}

type point struct{ x, y float32 }

// edge is a non-horizontal outline segment in bitmap space with y0 < y1.
// invert records that the segment was flipped to point downwards.
type edge struct {
	x0, y0 float32
	x1, y1 float32
	invert bool
}

// activeEdge is an edge crossing the current scanline. Active edges live
// in Scratch.active and are linked through next; -1 ends the list.
type activeEdge struct {
	next      int32
	fx, fdx   float32
	fdy       float32
	direction float32
	sy, ey    float32
}

const maxCurveDepth = 16

// Rasterize renders an outline into dst. The outline is scaled by
// (scaleX, scaleY), shifted by (shiftX, shiftY) and then positioned so
// that pixel (offX, offY) lands at dst's origin. invert flips y so that
// font space (y up) maps to bitmap space (y down). flatness is the
// maximum curve deviation in pixels.
func Rasterize(dst Bitmap, flatness float64, verts []Vertex, scaleX, scaleY, shiftX, shiftY float64, offX, offY int, invert bool, s *Scratch) error {
	if s == nil {
		s = &Scratch{}
	}
	scale := min(scaleX, scaleY)
	if scale <= 0 {
		return nil
	}
	pts, lens, err := flattenCurves(s, verts, float32(flatness/scale))
	if err != nil || len(lens) == 0 {
		return err
	}
	return rasterizeContours(dst, pts, lens, float32(scaleX), float32(scaleY), float32(shiftX), float32(shiftY), offX, offY, invert, s)
}

// flattenCurves converts the outline into closed polylines, returning the
// points and the number of points per contour.
func flattenCurves(s *Scratch, verts []Vertex, flatness float32) ([]point, []int, error) {
	flat2 := flatness * flatness
	pts := s.points[:0]
	lens := s.contours[:0]

	start := 0
	var x, y float32
	for _, v := range verts {
		switch v.Kind {
		case VMove:
			if len(lens) > 0 {
				lens[len(lens)-1] = len(pts) - start
			}
			lens = append(lens, 0)
			start = len(pts)
			x, y = float32(v.X), float32(v.Y)
			pts = append(pts, point{x, y})
		case VLine:
			x, y = float32(v.X), float32(v.Y)
			pts = append(pts, point{x, y})
		case VCurve:
			pts = tesselateCurve(pts, x, y, float32(v.CX), float32(v.CY), float32(v.X), float32(v.Y), flat2, 0)
			x, y = float32(v.X), float32(v.Y)
		}
	}
	if len(lens) > 0 {
		lens[len(lens)-1] = len(pts) - start
	}
	s.points, s.contours = pts, lens

	if err := s.charge(len(pts), unsafe.Sizeof(point{})); err != nil {
		return nil, nil, err
	}
	if err := s.charge(len(lens), unsafe.Sizeof(int(0))); err != nil {
		return nil, nil, err
	}
	return pts, lens, nil
}

// tesselateCurve subdivides a quadratic until the midpoint lies within
// flatness of the chord, appending the end points of each piece.
func tesselateCurve(pts []point, x0, y0, x1, y1, x2, y2, flat2 float32, depth int) []point {
	mx := (x0 + 2*x1 + x2) / 4
	my := (y0 + 2*y1 + y2) / 4
	dx := (x0+x2)/2 - mx
	dy := (y0+y2)/2 - my
	if depth < maxCurveDepth && dx*dx+dy*dy > flat2 {
		pts = tesselateCurve(pts, x0, y0, (x0+x1)/2, (y0+y1)/2, mx, my, flat2, depth+1)
		return tesselateCurve(pts, mx, my, (x1+x2)/2, (y1+y2)/2, x2, y2, flat2, depth+1)
	}
	return append(pts, point{x2, y2})
}

func rasterizeContours(dst Bitmap, pts []point, lens []int, scaleX, scaleY, shiftX, shiftY float32, offX, offY int, invert bool, s *Scratch) error {
	yScale := scaleY
	if invert {
		yScale = -scaleY
	}

	// One extra slot holds the sentinel that stops the scan.
	edges, err := s.allocEdges(len(pts) + 1)
	if err != nil {
		return err
	}

	n := 0
	m := 0
	for _, count := range lens {
		p := pts[m : m+count]
		m += count
		j := count - 1
		for k := 0; k < count; k++ {
			a, b := k, j
			if p[j].y == p[k].y {
				j = k
				continue
			}
			e := &edges[n]
			e.invert = false
			if invert && p[j].y > p[k].y || !invert && p[j].y < p[k].y {
				e.invert = true
				a, b = j, k
			}
			e.x0 = p[a].x*scaleX + shiftX
			e.y0 = p[a].y*yScale + shiftY
			e.x1 = p[b].x*scaleX + shiftX
			e.y1 = p[b].y*yScale + shiftY
			n++
			j = k
		}
	}

	sortEdges(edges[:n])
	return rasterizeSortedEdges(dst, edges, n, offX, offY, s)
}

// activate takes an active edge slot from the free list, or grows the
// pool, and initializes it for e starting at scanline startY.
func (s *Scratch) activate(e *edge, offX int, startY float32, free *int32) (int32, error) {
	var z int32
	if *free != -1 {
		z = *free
		*free = s.active[z].next
	} else {
		if err := s.charge(1, unsafe.Sizeof(activeEdge{})); err != nil {
			return -1, err
		}
		s.active = append(s.active, activeEdge{})
		z = int32(len(s.active) - 1)
	}

	dxdy := (e.x1 - e.x0) / (e.y1 - e.y0)
	a := &s.active[z]
	*a = activeEdge{
		next:      -1,
		fdx:       dxdy,
		fx:        e.x0 + dxdy*(startY-e.y0) - float32(offX),
		direction: -1,
		sy:        e.y0,
		ey:        e.y1,
	}
	if dxdy != 0 {
		a.fdy = 1 / dxdy
	}
	if e.invert {
		a.direction = 1
	}
	return z, nil
}

func rasterizeSortedEdges(dst Bitmap, edges []edge, n, offX, offY int, s *Scratch) error {
	w := dst.W
	scan, err := s.allocScanline(2*w + 1)
	if err != nil {
		return err
	}
	scanline := scan[:w]
	scanline2 := scan[w:]

	edges[n].y0 = float32(offY+dst.H) + 1

	active := int32(-1)
	free := int32(-1)
	ei := 0
	y := offY
	for j := 0; j < dst.H; j++ {
		top := float32(y)
		bottom := top + 1
		clear(scan)

		// Drop edges that end above this scanline.
		prev := int32(-1)
		for z := active; z != -1; {
			next := s.active[z].next
			if s.active[z].ey <= top {
				if s.active[z].direction == 0 {
					panic("truetype: active edge without direction")
				}
				if prev == -1 {
					active = next
				} else {
					s.active[prev].next = next
				}
				s.active[z].direction = 0
				s.active[z].next = free
				free = z
			} else {
				prev = z
			}
			z = next
		}

		// Insert edges that start before the bottom of this scanline.
		for edges[ei].y0 <= bottom {
			e := &edges[ei]
			ei++
			if e.y0 == e.y1 || e.y1 <= top {
				continue
			}
			z, err := s.activate(e, offX, top, &free)
			if err != nil {
				return err
			}
			s.active[z].next = active
			active = z
		}

		if active != -1 {
			s.fillActiveEdges(scanline, scanline2, w, active, top)
		}

		var sum float32
		row := dst.Pix[j*dst.Stride:]
		for i := range w {
			sum += scanline2[i]
			k := scanline[i] + sum
			if k < 0 {
				k = -k
			}
			m := int(k*255 + 0.5)
			if m > 255 {
				m = 255
			}
			row[i] = uint8(m)
		}

		for z := active; z != -1; z = s.active[z].next {
			s.active[z].fx += s.active[z].fdx
		}
		y++
	}
	return nil
}

// handleClippedEdge accumulates the coverage of the part of e between
// (x0, y0) and (x1, y1) that falls in pixel column x.
func handleClippedEdge(scanline []float32, x int, e *activeEdge, x0, y0, x1, y1 float32) {
	if y0 == y1 {
		return
	}
	if y0 > y1 || e.sy > e.ey {
		panic(fmt.Sprintf("truetype: edge segment not monotonic (%v > %v)", y0, y1))
	}
	if y0 > e.ey || y1 < e.sy {
		return
	}
	if y0 < e.sy {
		x0 += (x1 - x0) * (e.sy - y0) / (y1 - y0)
		y0 = e.sy
	}
	if y1 > e.ey {
		x1 += (x1 - x0) * (e.ey - y1) / (y1 - y0)
		y1 = e.ey
	}

	fx := float32(x)
	switch {
	case x0 <= fx && x1 <= fx:
		scanline[x] += e.direction * (y1 - y0)
	case x0 >= fx+1 && x1 >= fx+1:
	default:
		// Coverage is one minus the average x position inside the pixel.
		scanline[x] += e.direction * (y1 - y0) * (1 - ((x0-fx)+(x1-fx))/2)
	}
}

func trapezoidArea(height, tx0, tx1, bx0, bx1 float32) float32 {
	return ((tx1 - tx0) + (bx1 - bx0)) / 2 * height
}

// fillActiveEdges accumulates the exact area covered by every active edge
// on the scanline [yTop, yTop+1). scanline receives per-pixel coverage and
// fill (offset by one) the coverage carried to every pixel to the right.
func (s *Scratch) fillActiveEdges(scanline, fill []float32, length int, head int32, yTop float32) {
	yBottom := yTop + 1
	fl := float32(length)

	for z := head; z != -1; z = s.active[z].next {
		e := &s.active[z]

		if e.fdx == 0 {
			x0 := e.fx
			if x0 < fl {
				if x0 >= 0 {
					handleClippedEdge(scanline, int(x0), e, x0, yTop, x0, yBottom)
					handleClippedEdge(fill, int(x0)+1, e, x0, yTop, x0, yBottom)
				} else {
					handleClippedEdge(fill, 0, e, x0, yTop, x0, yBottom)
				}
			}
			continue
		}

		x0 := e.fx
		dx := e.fdx
		xb := x0 + dx
		dy := e.fdy

		// Clip the segment to this scanline.
		var xTop, xBottom, sy0, sy1 float32
		if e.sy > yTop {
			xTop = x0 + dx*(e.sy-yTop)
			sy0 = e.sy
		} else {
			xTop = x0
			sy0 = yTop
		}
		if e.ey < yBottom {
			xBottom = x0 + dx*(e.ey-yTop)
			sy1 = e.ey
		} else {
			xBottom = xb
			sy1 = yBottom
		}

		if xTop >= 0 && xBottom >= 0 && xTop < fl && xBottom < fl {
			if int(xTop) == int(xBottom) {
				// The segment stays inside one pixel.
				x := int(xTop)
				height := (sy1 - sy0) * e.direction
				fx := float32(x)
				scanline[x] += trapezoidArea(height, xTop, fx+1, xBottom, fx+1)
				fill[x+1] += height
				continue
			}

			if xTop > xBottom {
				// Flip vertically; the signed area is unchanged.
				sy0 = yBottom - (sy0 - yTop)
				sy1 = yBottom - (sy1 - yTop)
				sy0, sy1 = sy1, sy0
				xTop, xBottom = xBottom, xTop
				dx = -dx
				dy = -dy
				x0, xb = xb, x0
			}
			if dx < 0 || dy < 0 {
				panic("truetype: edge direction not normalized")
			}

			x1 := int(xTop)
			x2 := int(xBottom)
			yCrossing := yTop + dy*(float32(x1+1)-x0)
			yFinal := yTop + dy*(float32(x2)-x0)
			if yCrossing > yBottom {
				yCrossing = yBottom
			}

			sign := e.direction
			area := sign * (yCrossing - sy0)
			// Triangle in the first pixel.
			scanline[x1] += area * (float32(x1+1) - xTop) / 2

			if yFinal > yBottom {
				yFinal = yBottom
				if denom := x2 - (x1 + 1); denom != 0 {
					dy = (yFinal - yCrossing) / float32(denom)
				}
			}

			step := sign * dy
			for x := x1 + 1; x < x2; x++ {
				scanline[x] += area + step/2
				area += step
			}

			fx2 := float32(x2)
			scanline[x2] += area + sign*trapezoidArea(sy1-yFinal, fx2, fx2+1, xBottom, fx2+1)
			fill[x2+1] += sign * (sy1 - sy0)
			continue
		}

		// The segment leaves the bitmap: clip it against every column.
		for x := range length {
			fx := float32(x)
			y0 := yTop
			x1 := fx
			x2 := fx + 1
			x3 := xb
			y3 := yBottom
			y1 := (fx-x0)/dx + yTop
			y2 := (fx+1-x0)/dx + yTop

			switch {
			case x0 < x1 && x3 > x2:
				handleClippedEdge(scanline, x, e, x0, y0, x1, y1)
				handleClippedEdge(scanline, x, e, x1, y1, x2, y2)
				handleClippedEdge(scanline, x, e, x2, y2, x3, y3)
			case x3 < x1 && x0 > x2:
				handleClippedEdge(scanline, x, e, x0, y0, x2, y2)
				handleClippedEdge(scanline, x, e, x2, y2, x1, y1)
				handleClippedEdge(scanline, x, e, x1, y1, x3, y3)
			case x0 < x1 && x3 > x1:
				handleClippedEdge(scanline, x, e, x0, y0, x1, y1)
				handleClippedEdge(scanline, x, e, x1, y1, x3, y3)
			case x3 < x1 && x0 > x1:
				handleClippedEdge(scanline, x, e, x0, y0, x1, y1)
				handleClippedEdge(scanline, x, e, x1, y1, x3, y3)
			case x0 < x2 && x3 > x2:
				handleClippedEdge(scanline, x, e, x0, y0, x2, y2)
				handleClippedEdge(scanline, x, e, x2, y2, x3, y3)
			case x3 < x2 && x0 > x2:
				handleClippedEdge(scanline, x, e, x0, y0, x2, y2)
				handleClippedEdge(scanline, x, e, x2, y2, x3, y3)
			default:
				handleClippedEdge(scanline, x, e, x0, y0, x3, y3)
			}
		}
	}
}
