package reui

// Rect is an axis-aligned rectangle described by its minimum and
// maximum corners.
type Rect struct {
	Min, Max Offset
}

// RectLTWH creates a rectangle from its left, top, width and height.
func RectLTWH(left, top, width, height float32) Rect {
	return Rect{
		Min: Offset{X: left, Y: top},
		Max: Offset{X: left + width, Y: top + height},
	}
}

// RectCenter creates a rectangle of the given size centered on c.
func RectCenter(c Offset, width, height float32) Rect {
	hw, hh := width*0.5, height*0.5
	return Rect{
		Min: Offset{X: c.X - hw, Y: c.Y - hh},
		Max: Offset{X: c.X + hw, Y: c.Y + hh},
	}
}

// EmptyRect returns an inverted rectangle that acts as the identity
// for Union and Extend.
func EmptyRect() Rect {
	return Rect{
		Min: Offset{X: 1e6, Y: 1e6},
		Max: Offset{X: -1e6, Y: -1e6},
	}
}

// Width returns the horizontal extent.
func (r Rect) Width() float32 { return r.Max.X - r.Min.X }

// Height returns the vertical extent.
func (r Rect) Height() float32 { return r.Max.Y - r.Min.Y }

// Size returns width and height as an Offset.
func (r Rect) Size() Offset { return r.Max.Sub(r.Min) }

// Center returns the center point.
func (r Rect) Center() Offset {
	return Offset{X: (r.Min.X + r.Max.X) * 0.5, Y: (r.Min.Y + r.Max.Y) * 0.5}
}

// IsEmpty reports whether the rectangle has no area.
func (r Rect) IsEmpty() bool {
	return r.Min.X >= r.Max.X || r.Min.Y >= r.Max.Y
}

// Contains reports whether p lies inside r (max edges exclusive).
func (r Rect) Contains(p Offset) bool {
	return p.X >= r.Min.X && p.X < r.Max.X && p.Y >= r.Min.Y && p.Y < r.Max.Y
}

// Extend grows r to include p.
func (r Rect) Extend(p Offset) Rect {
	return Rect{
		Min: Offset{X: min(r.Min.X, p.X), Y: min(r.Min.Y, p.Y)},
		Max: Offset{X: max(r.Max.X, p.X), Y: max(r.Max.Y, p.Y)},
	}
}

// Union returns the smallest rectangle containing both r and s.
func (r Rect) Union(s Rect) Rect {
	return r.Extend(s.Min).Extend(s.Max)
}

// Intersect returns the overlap of r and s. The result is empty
// (possibly inverted) when they do not overlap.
func (r Rect) Intersect(s Rect) Rect {
	return Rect{
		Min: Offset{X: max(r.Min.X, s.Min.X), Y: max(r.Min.Y, s.Min.Y)},
		Max: Offset{X: min(r.Max.X, s.Max.X), Y: min(r.Max.Y, s.Max.Y)},
	}
}

// Inflate returns r grown by d on every side. Negative d deflates.
func (r Rect) Inflate(d float32) Rect {
	return Rect{
		Min: Offset{X: r.Min.X - d, Y: r.Min.Y - d},
		Max: Offset{X: r.Max.X + d, Y: r.Max.Y + d},
	}
}

// Translate returns r moved by d.
func (r Rect) Translate(d Offset) Rect {
	return Rect{Min: r.Min.Add(d), Max: r.Max.Add(d)}
}
