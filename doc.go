// Package reui is the CPU core of a small GPU vector renderer: geometry,
// paints and path command streams, plus the sub-packages that turn them
// into GPU-ready data.
//
// # Overview
//
// reui does not talk to the GPU itself. It produces vertex and index
// buffers, uniform blocks and an 8-bit glyph atlas; a backend uploads
// them and issues the draw calls.
//
// # Quick Start
//
//	import (
//	    "github.com/lain-dono/reui"
//	    "github.com/lain-dono/reui/tess"
//	)
//
//	path := reui.NewPath().RoundRect(reui.RectLTWH(10, 10, 200, 100), 8)
//
//	t, _ := tess.New(tess.DefaultOptions())
//	var mesh tess.Mesh
//	mesh.Fill(t, path, reui.Identity(), reui.SolidPaint(reui.RGB(0.2, 0.4, 0.8)), 1)
//
// # Architecture
//
// The module is organized into:
//   - reui: Offset, Rect, Transform, Color, Paint, Path, logging
//   - atlas: skyline rectangle packer
//   - truetype: TrueType decoding and glyph rasterization
//   - stash: glyph atlas, text layout and line breaking
//   - tess: curve flattening, fill and stroke expansion, meshes
//
// # Coordinate System
//
// Paths use screen coordinates:
//   - Origin (0,0) at top-left
//   - X increases right
//   - Y increases down
//
// # Transforms
//
// Transform is a similarity: rotation, uniform scale and translation,
// stored as a complex number and an offset. Shear and non-uniform scale
// cannot be expressed.
package reui
