package reui

import "math"

// Offset represents a 2D point or vector in float32 precision,
// the precision vertex buffers are uploaded in.
type Offset struct {
	X, Y float32
}

// Pt is a convenience function to create an Offset.
func Pt(x, y float32) Offset {
	return Offset{X: x, Y: y}
}

// Add returns the sum of two offsets.
func (p Offset) Add(q Offset) Offset {
	return Offset{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns the difference of two offsets.
func (p Offset) Sub(q Offset) Offset {
	return Offset{X: p.X - q.X, Y: p.Y - q.Y}
}

// Mul returns the offset scaled by s.
func (p Offset) Mul(s float32) Offset {
	return Offset{X: p.X * s, Y: p.Y * s}
}

// Neg returns the negated offset.
func (p Offset) Neg() Offset {
	return Offset{X: -p.X, Y: -p.Y}
}

// Dot returns the dot product of two vectors.
func (p Offset) Dot(q Offset) float32 {
	return p.X*q.X + p.Y*q.Y
}

// Cross returns the 2D cross product (z-component of the 3D cross).
func (p Offset) Cross(q Offset) float32 {
	return p.X*q.Y - p.Y*q.X
}

// Length returns the length of the vector.
func (p Offset) Length() float32 {
	return float32(math.Hypot(float64(p.X), float64(p.Y)))
}

// LengthSquared returns the squared length of the vector.
func (p Offset) LengthSquared() float32 {
	return p.X*p.X + p.Y*p.Y
}

// Distance returns the distance between two points.
func (p Offset) Distance(q Offset) float32 {
	return p.Sub(q).Length()
}

// Normalize returns a unit vector in the same direction together with
// the original length. Vectors shorter than 1e-6 are returned unchanged.
func (p Offset) Normalize() (Offset, float32) {
	d := p.Length()
	if d > 1e-6 {
		id := 1 / d
		return Offset{X: p.X * id, Y: p.Y * id}, d
	}
	return p, d
}

// Perp returns the vector rotated 90 degrees counter-clockwise.
func (p Offset) Perp() Offset {
	return Offset{X: -p.Y, Y: p.X}
}

// Lerp performs linear interpolation between two points.
func (p Offset) Lerp(q Offset, t float32) Offset {
	return Offset{
		X: p.X + (q.X-p.X)*t,
		Y: p.Y + (q.Y-p.Y)*t,
	}
}

// ApproxEqual reports whether p and q are closer than tol.
func (p Offset) ApproxEqual(q Offset, tol float32) bool {
	d := q.Sub(p)
	return d.X*d.X+d.Y*d.Y < tol*tol
}
