package reui

import "math"

// Transform is a similarity transform: rotation, uniform scale and
// translation. It is stored as a complex multiplier (Re + i·Im) plus a
// translation, so applying it to p computes
//
//	x' = Re*x - Im*y + Tx
//	y' = Im*x + Re*y + Ty
//
// This is the four-float form the GPU uniform block carries.
//
// # Expressiveness limit
//
// Transform cannot represent shear or non-uniform scale. There is no
// SkewX/SkewY and Scale takes a single factor. Callers that need a general
// affine map must apply it to path coordinates before the commands reach
// the tessellator (transform the points, then use Identity here); paints
// whose frame needs shear cannot be expressed and are approximated by the
// closest similarity. This is a deliberate boundary of the rendering core,
// not a bug.
type Transform struct {
	Re, Im float32
	Tx, Ty float32
}

// Identity returns the identity transform.
func Identity() Transform {
	return Transform{Re: 1}
}

// Translation returns a pure translation by (x, y).
func Translation(x, y float32) Transform {
	return Transform{Re: 1, Tx: x, Ty: y}
}

// Rotation returns a rotation by theta radians around the origin.
func Rotation(theta float32) Transform {
	sin, cos := math.Sincos(float64(theta))
	return Transform{Re: float32(cos), Im: float32(sin)}
}

// UniformScale returns a scale by s around the origin.
func UniformScale(s float32) Transform {
	return Transform{Re: s}
}

// NewTransform builds a transform that scales by s, rotates by theta and
// then translates by (x, y).
func NewTransform(s, theta, x, y float32) Transform {
	sin, cos := math.Sincos(float64(theta))
	return Transform{Re: s * float32(cos), Im: s * float32(sin), Tx: x, Ty: y}
}

// Then returns the transform that applies t first and next second.
func (t Transform) Then(next Transform) Transform {
	return Transform{
		Re: next.Re*t.Re - next.Im*t.Im,
		Im: next.Im*t.Re + next.Re*t.Im,
		Tx: next.Re*t.Tx - next.Im*t.Ty + next.Tx,
		Ty: next.Im*t.Tx + next.Re*t.Ty + next.Ty,
	}
}

// Pre returns the transform that applies prev first and t second.
// Translate/Rotate/Scale on a transform stack use Pre so that the new
// operation acts in the current local coordinate system.
func (t Transform) Pre(prev Transform) Transform {
	return prev.Then(t)
}

// Inverse returns the inverse transform. A degenerate (zero scale)
// transform inverts to the identity.
func (t Transform) Inverse() Transform {
	d := t.Re*t.Re + t.Im*t.Im
	if d < 1e-12 {
		return Identity()
	}
	re, im := t.Re/d, -t.Im/d
	return Transform{
		Re: re,
		Im: im,
		Tx: -(re*t.Tx - im*t.Ty),
		Ty: -(im*t.Tx + re*t.Ty),
	}
}

// Apply maps a point.
func (t Transform) Apply(p Offset) Offset {
	return Offset{
		X: t.Re*p.X - t.Im*p.Y + t.Tx,
		Y: t.Im*p.X + t.Re*p.Y + t.Ty,
	}
}

// ApplyVector maps a vector, ignoring translation.
func (t Transform) ApplyVector(v Offset) Offset {
	return Offset{
		X: t.Re*v.X - t.Im*v.Y,
		Y: t.Im*v.X + t.Re*v.Y,
	}
}

// AverageScale returns the scale factor of the transform.
func (t Transform) AverageScale() float32 {
	return float32(math.Hypot(float64(t.Re), float64(t.Im)))
}

// MapRect returns the axis-aligned bounds of r after transformation.
func (t Transform) MapRect(r Rect) Rect {
	out := EmptyRect()
	for _, p := range [4]Offset{
		r.Min,
		{X: r.Max.X, Y: r.Min.Y},
		r.Max,
		{X: r.Min.X, Y: r.Max.Y},
	} {
		out = out.Extend(t.Apply(p))
	}
	return out
}

// IsIdentity reports whether t is exactly the identity.
func (t Transform) IsIdentity() bool {
	return t == Identity()
}

// Array returns the transform as [re, im, tx, ty] for uniform upload.
func (t Transform) Array() [4]float32 {
	return [4]float32{t.Re, t.Im, t.Tx, t.Ty}
}
