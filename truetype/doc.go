// Package truetype decodes TrueType fonts and rasterizes their glyphs into
// 8-bit coverage bitmaps.
//
// The decoder reads the cmap, loca, glyf, head, hhea, hmtx and (optional)
// kern tables directly from the font bytes. It extracts glyph outlines as
// move/line/quadratic vertex lists, resolving composite glyphs into a
// single outline, and exposes the horizontal metrics needed for layout.
//
// The rasterizer flattens outlines into polylines, builds a directed edge
// list, and sweeps it scanline by scanline accumulating exact signed-area
// coverage per pixel, producing anti-aliased output without supersampling.
//
// Font bytes are only ever read. A Font may be shared between goroutines;
// a Scratch arena may not.
package truetype
