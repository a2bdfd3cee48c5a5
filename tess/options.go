package tess

import (
	"fmt"

	"github.com/lain-dono/reui"
)

// Options holds the tolerances of a Tessellator. All values are in
// device pixels of the coordinate space the commands are given in.
type Options struct {
	// TessTol is the maximum distance between a curve and its flattened
	// polyline.
	// Default: 0.25
	TessTol float32

	// DistTol is the distance below which consecutive points are merged.
	// Default: 0.01
	DistTol float32

	// FringeWidth is the width of the anti-aliasing fringe. Zero disables
	// anti-aliasing.
	// Default: 1
	FringeWidth float32
}

// DefaultOptions returns the tolerances for a pixel ratio of one.
func DefaultOptions() Options {
	return Options{
		TessTol:     0.25,
		DistTol:     0.01,
		FringeWidth: 1,
	}
}

// ForPixelRatio returns o scaled for a display with the given device pixel
// ratio. Non-positive ratios leave o unchanged.
func (o Options) ForPixelRatio(ratio float32) Options {
	if ratio <= 0 {
		return o
	}
	return Options{
		TessTol:     o.TessTol / ratio,
		DistTol:     o.DistTol / ratio,
		FringeWidth: o.FringeWidth / ratio,
	}
}

// Validate checks if the options are usable.
func (o Options) Validate() error {
	if !(o.TessTol > 0) {
		return fmt.Errorf("%w: TessTol must be positive, got %v", ErrInvalidOptions, o.TessTol)
	}
	if !(o.DistTol >= 0) {
		return fmt.Errorf("%w: DistTol must not be negative, got %v", ErrInvalidOptions, o.DistTol)
	}
	if !(o.FringeWidth >= 0) {
		return fmt.Errorf("%w: FringeWidth must not be negative, got %v", ErrInvalidOptions, o.FringeWidth)
	}
	return nil
}

// StrokeStyle describes how a path is stroked.
type StrokeStyle struct {
	// Width is the line width before the draw transform is applied.
	// Default: 1
	Width float32

	// Cap is the shape of open contour ends.
	// Default: reui.LineCapButt
	Cap reui.LineCap

	// Join is the shape of corners.
	// Default: reui.LineJoinMiter
	Join reui.LineJoin

	// MiterLimit is the miter length, relative to the stroke width, above
	// which miter joins become bevels.
	// Default: 10
	MiterLimit float32
}

// DefaultStrokeStyle returns a 1 pixel wide stroke with butt caps and
// miter joins.
func DefaultStrokeStyle() StrokeStyle {
	return StrokeStyle{
		Width:      1,
		Cap:        reui.LineCapButt,
		Join:       reui.LineJoinMiter,
		MiterLimit: 10,
	}
}
