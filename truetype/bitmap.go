package truetype

import "math"

// DefaultFlatness is the curve flattening tolerance in pixels.
const DefaultFlatness = 0.35

// GlyphBitmapBoxSubpixel returns the pixel box that covers glyph when it
// is scaled by (scaleX, scaleY) and shifted by a subpixel offset. The box
// is in bitmap space: y grows downwards and y0 is above the baseline for
// most glyphs. Empty glyphs return an empty box at the origin.
func (f *Font) GlyphBitmapBoxSubpixel(glyph int, scaleX, scaleY, shiftX, shiftY float64) (x0, y0, x1, y1 int) {
	bx0, by0, bx1, by1, ok := f.GlyphBox(glyph)
	if !ok {
		return 0, 0, 0, 0
	}
	x0 = int(math.Floor(float64(bx0)*scaleX + shiftX))
	y0 = int(math.Floor(float64(-by1)*scaleY + shiftY))
	x1 = int(math.Ceil(float64(bx1)*scaleX + shiftX))
	y1 = int(math.Ceil(float64(-by0)*scaleY + shiftY))
	return x0, y0, x1, y1
}

// GlyphBitmapBox is GlyphBitmapBoxSubpixel without a shift.
func (f *Font) GlyphBitmapBox(glyph int, scaleX, scaleY float64) (x0, y0, x1, y1 int) {
	return f.GlyphBitmapBoxSubpixel(glyph, scaleX, scaleY, 0, 0)
}

// MakeGlyphBitmapSubpixel rasterizes glyph into out, a w×h region with the
// given row stride, positioned at the glyph's bitmap box origin. The
// scratch arena is reset first; a nil arena allocates freely.
func (f *Font) MakeGlyphBitmapSubpixel(out []byte, w, h, stride int, scaleX, scaleY, shiftX, shiftY float64, glyph int, s *Scratch) error {
	if s == nil {
		s = &Scratch{}
	}
	s.Reset()

	verts, err := f.AppendGlyphShape(s.verts[:0], glyph)
	s.verts = verts
	if err != nil {
		return err
	}
	if err := s.chargeVerts(len(verts)); err != nil {
		return err
	}

	x0, y0, _, _ := f.GlyphBitmapBoxSubpixel(glyph, scaleX, scaleY, shiftX, shiftY)
	if w <= 0 || h <= 0 {
		return nil
	}
	dst := Bitmap{W: w, H: h, Stride: stride, Pix: out}
	return Rasterize(dst, DefaultFlatness, verts, scaleX, scaleY, shiftX, shiftY, x0, y0, true, s)
}

// MakeGlyphBitmap is MakeGlyphBitmapSubpixel without a shift.
func (f *Font) MakeGlyphBitmap(out []byte, w, h, stride int, scaleX, scaleY float64, glyph int, s *Scratch) error {
	return f.MakeGlyphBitmapSubpixel(out, w, h, stride, scaleX, scaleY, 0, 0, glyph, s)
}

// GlyphBitmap allocates and renders a bitmap for glyph. xoff and yoff give
// the position of the bitmap's top-left corner relative to the glyph
// origin. A zero scale on one axis takes the other axis' scale.
func (f *Font) GlyphBitmap(scaleX, scaleY float64, glyph int) (bm Bitmap, xoff, yoff int, err error) {
	if scaleX == 0 {
		scaleX = scaleY
	}
	if scaleY == 0 {
		scaleY = scaleX
	}
	if scaleX == 0 {
		return Bitmap{}, 0, 0, nil
	}

	x0, y0, x1, y1 := f.GlyphBitmapBox(glyph, scaleX, scaleY)
	bm = Bitmap{W: x1 - x0, H: y1 - y0, Stride: x1 - x0}
	if bm.W <= 0 || bm.H <= 0 {
		return Bitmap{}, x0, y0, nil
	}
	bm.Pix = make([]byte, bm.W*bm.H)
	err = f.MakeGlyphBitmap(bm.Pix, bm.W, bm.H, bm.Stride, scaleX, scaleY, glyph, nil)
	return bm, x0, y0, err
}
