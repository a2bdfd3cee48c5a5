package tess

import "github.com/lain-dono/reui"

// PointFlags classify a flattened point for join generation.
type PointFlags uint8

const (
	// PtCorner marks a point where the input path has a vertex, as opposed
	// to a point produced by curve flattening.
	PtCorner PointFlags = 1 << iota
	// PtLeft marks a left turn.
	PtLeft
	// PtBevel marks a corner that is drawn beveled.
	PtBevel
	// PtInnerBevel marks a turn whose inner side needs a bevel because the
	// adjacent segments are too short for the miter.
	PtInnerBevel
)

// Point is a flattened path point.
type Point struct {
	Pos reui.Offset
	// Dir is the unit direction to the next point of the contour.
	Dir reui.Offset
	// Len is the distance to the next point.
	Len float32
	// Ext is the join extrusion: the averaged segment normal scaled so that
	// offsetting along it keeps both segments at unit distance.
	Ext   reui.Offset
	Flags PointFlags
}

// normal returns the right-hand normal of a direction.
func normal(d reui.Offset) reui.Offset {
	return reui.Offset{X: d.Y, Y: -d.X}
}

// Solidity tells whether a contour adds area or cuts it away.
type Solidity uint8

const (
	// Solid contours are wound so that their signed area is positive.
	Solid Solidity = iota
	// Hole contours are wound so that their signed area is negative.
	Hole
)

// String returns the solidity name.
func (s Solidity) String() string {
	switch s {
	case Solid:
		return "Solid"
	case Hole:
		return "Hole"
	default:
		return "Unknown"
	}
}

// Span is a range of vertices or indices.
type Span struct {
	Offset, Count int
}

// End returns the index one past the last element.
func (s Span) End() int { return s.Offset + s.Count }

// Contour is one flattened sub-path.
type Contour struct {
	// First and Count locate the contour in the point buffer.
	First, Count int

	Closed   bool
	Solidity Solidity

	// Convex is set when every turn is a left turn and the edge
	// directions change sign exactly twice on each axis.
	Convex bool

	// Area is the signed area after winding correction. It is zero for
	// contours with fewer than three points.
	Area float32

	// NBevel counts the points that need bevel geometry for the last
	// expansion.
	NBevel int

	// Fill and Stroke are the vertex ranges produced by the last
	// ExpandFill or ExpandStroke.
	Fill, Stroke Span
}
