package reui

import (
	"encoding/binary"
	"math"
)

// LineCap specifies the shape of open stroke endpoints.
type LineCap int

const (
	// LineCapButt ends the stroke exactly at the endpoint.
	LineCapButt LineCap = iota
	// LineCapRound ends the stroke with a half circle.
	LineCapRound
	// LineCapSquare extends the stroke by half its width.
	LineCapSquare
)

// String returns the cap name.
func (c LineCap) String() string {
	switch c {
	case LineCapButt:
		return "Butt"
	case LineCapRound:
		return "Round"
	case LineCapSquare:
		return "Square"
	default:
		return unknownStr
	}
}

// LineJoin specifies how stroke segments are connected.
type LineJoin int

const (
	// LineJoinMiter extends the outer edges to a point, falling back to a
	// bevel when the miter limit is exceeded.
	LineJoinMiter LineJoin = iota
	// LineJoinRound connects segments with a circular arc.
	LineJoinRound
	// LineJoinBevel cuts the corner with a straight edge.
	LineJoinBevel
)

// String returns the join name.
func (j LineJoin) String() string {
	switch j {
	case LineJoinMiter:
		return "Miter"
	case LineJoinRound:
		return "Round"
	case LineJoinBevel:
		return "Bevel"
	default:
		return unknownStr
	}
}

// unknownStr is returned by String methods for out-of-range values.
const unknownStr = "Unknown"

// Paint describes how the inside of a fill or stroke is colored.
// Every paint is a rounded-box gradient evaluated in the paint's own frame:
// solid colors, linear, box and radial gradients and image patterns are
// all special cases of the same parameters, so one shader covers them.
type Paint struct {
	// Xform maps paint space to path space.
	Xform Transform
	// Extent is the half size (gradients) or full size (images) of the box.
	Extent Offset
	// Radius is the box corner radius.
	Radius float32
	// Feather is the width of the gradient transition.
	Feather float32
	// InnerColor is used inside the box, OuterColor outside the feather.
	InnerColor Color
	OuterColor Color
	// Image is a backend image handle; zero means no image.
	Image int
}

// gradientLarge is the pseudo-infinite extent used by linear gradients.
const gradientLarge = 1e5

// SolidPaint returns a paint with a single color.
func SolidPaint(c Color) Paint {
	return Paint{
		Xform:      Identity(),
		Feather:    1,
		InnerColor: c,
		OuterColor: c,
	}
}

// LinearGradient returns a gradient from inner at start to outer at end.
func LinearGradient(start, end Offset, inner, outer Color) Paint {
	dir, d := end.Sub(start).Normalize()
	if d <= 0.0001 {
		dir = Offset{X: 0, Y: 1}
	}
	// Rotate so that the gradient runs along the box's y axis.
	xf := Transform{
		Re: dir.Y,
		Im: -dir.X,
		Tx: start.X - dir.X*gradientLarge,
		Ty: start.Y - dir.Y*gradientLarge,
	}
	return Paint{
		Xform:      xf,
		Extent:     Offset{X: gradientLarge, Y: gradientLarge + d*0.5},
		Feather:    max(1, d),
		InnerColor: inner,
		OuterColor: outer,
	}
}

// BoxGradient returns a gradient shaped like a rounded rectangle, useful
// for drop shadows. Radius rounds the corners and feather sets how blurry
// the border is.
func BoxGradient(r Rect, radius, feather float32, inner, outer Color) Paint {
	c := r.Center()
	return Paint{
		Xform:      Translation(c.X, c.Y),
		Extent:     Offset{X: r.Width() * 0.5, Y: r.Height() * 0.5},
		Radius:     radius,
		Feather:    max(1, feather),
		InnerColor: inner,
		OuterColor: outer,
	}
}

// RadialGradient returns a circular gradient between innerRadius and
// outerRadius around center.
func RadialGradient(center Offset, innerRadius, outerRadius float32, inner, outer Color) Paint {
	r := (innerRadius + outerRadius) * 0.5
	f := outerRadius - innerRadius
	return Paint{
		Xform:      Translation(center.X, center.Y),
		Extent:     Offset{X: r, Y: r},
		Radius:     r,
		Feather:    max(1, f),
		InnerColor: inner,
		OuterColor: outer,
	}
}

// ImagePattern returns a paint that repeats image over a w×h tile whose
// top-left corner is at origin, rotated by angle radians.
func ImagePattern(origin Offset, w, h, angle float32, image int, alpha float32) Paint {
	c := White.WithAlpha(alpha)
	return Paint{
		Xform:      Rotation(angle).Then(Translation(origin.X, origin.Y)),
		Extent:     Offset{X: w, Y: h},
		Feather:    1,
		InnerColor: c,
		OuterColor: c,
		Image:      image,
	}
}

// RawPaint is a paint resolved against the active transform with its
// colors premultiplied. It is computed once per draw call.
type RawPaint struct {
	Xform      Transform
	Extent     Offset
	Radius     float32
	Feather    float32
	InnerColor [4]uint8
	OuterColor [4]uint8
	Image      int
}

// Raw resolves the paint against the current transform and global alpha.
func (p Paint) Raw(xform Transform, alpha float32) RawPaint {
	return RawPaint{
		Xform:      p.Xform.Then(xform),
		Extent:     p.Extent,
		Radius:     p.Radius,
		Feather:    p.Feather,
		InnerColor: p.InnerColor.ScaleAlpha(alpha).Premultiplied(),
		OuterColor: p.OuterColor.ScaleAlpha(alpha).Premultiplied(),
		Image:      p.Image,
	}
}

// StrokeThrNone disables the stroke alpha threshold in the shader.
const StrokeThrNone float32 = -1

// Instance is the per-draw-call uniform block consumed by the backend shader.
type Instance struct {
	// PaintMat is the inverse paint transform as [re, im, tx, ty].
	PaintMat   [4]float32
	InnerColor [4]uint8
	OuterColor [4]uint8
	Extent     [2]float32
	Radius     float32
	// InvFeather is 1/Feather.
	InvFeather float32
	// StrokeMul scales the stroke fringe coordinate to coverage.
	StrokeMul float32
	// StrokeThr discards fragments below this alpha; StrokeThrNone disables it.
	StrokeThr float32
}

// InstanceSize is the encoded size of an Instance in bytes.
const InstanceSize = 4*4 + 4 + 4 + 2*4 + 4*4

// ToInstance converts the paint to its uniform block. strokeWidth and
// fringe are in device pixels; fills pass fringe for strokeWidth.
func (r RawPaint) ToInstance(strokeWidth, fringe, strokeThr float32) Instance {
	var mul float32 = 1
	if fringe > 0 {
		mul = (strokeWidth*0.5 + fringe*0.5) / fringe
	}
	feather := r.Feather
	if feather < 1e-6 {
		feather = 1e-6
	}
	return Instance{
		PaintMat:   r.Xform.Inverse().Array(),
		InnerColor: r.InnerColor,
		OuterColor: r.OuterColor,
		Extent:     [2]float32{r.Extent.X, r.Extent.Y},
		Radius:     r.Radius,
		InvFeather: 1 / feather,
		StrokeMul:  mul,
		StrokeThr:  strokeThr,
	}
}

// AppendBytes appends the little-endian encoding of the instance to dst,
// InstanceSize bytes in field order.
func (in Instance) AppendBytes(dst []byte) []byte {
	le := binary.LittleEndian
	for _, f := range in.PaintMat {
		dst = le.AppendUint32(dst, math.Float32bits(f))
	}
	dst = append(dst, in.InnerColor[:]...)
	dst = append(dst, in.OuterColor[:]...)
	for _, f := range [...]float32{in.Extent[0], in.Extent[1], in.Radius, in.InvFeather, in.StrokeMul, in.StrokeThr} {
		dst = le.AppendUint32(dst, math.Float32bits(f))
	}
	return dst
}
