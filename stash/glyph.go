package stash

import (
	"errors"
	"math"

	"github.com/lain-dono/reui"
	"github.com/lain-dono/reui/truetype"
)

// BitmapOption tells GetGlyph whether the glyph must be present in the
// texture or only its metrics are needed.
type BitmapOption uint8

const (
	// BitmapOptional computes metrics without reserving atlas space.
	BitmapOptional BitmapOption = iota
	// BitmapRequired rasterizes the glyph into the atlas.
	BitmapRequired
)

// MaxBlur is the largest supported blur radius.
const MaxBlur = 20

// Glyph is a cached glyph. X0, Y0, X1, Y1 is its padded rectangle in the
// atlas; X0 and Y0 are -1 while the glyph has no bitmap yet.
type Glyph struct {
	Codepoint rune
	// Index is the glyph index in the font that renders it, which is a
	// fallback font when the primary font lacks the codepoint.
	Index int
	// Size is the pixel size times ten; Blur the blur radius.
	Size, Blur int

	X0, Y0, X1, Y1 int
	// XAdv is the horizontal advance in tenths of a pixel.
	XAdv int
	// XOff and YOff place the padded rectangle relative to the pen.
	XOff, YOff int

	next int
}

// HasBitmap reports whether the glyph occupies atlas space.
func (g *Glyph) HasBitmap() bool { return g.X0 >= 0 && g.Y0 >= 0 }

func hashInt(a uint32) uint32 {
	a += ^(a << 15)
	a ^= a >> 10
	a += a << 3
	a ^= a >> 6
	a += ^(a << 11)
	a ^= a >> 16
	return a
}

// GetGlyph returns the glyph for r at size pixels with the given blur,
// rasterizing it into the atlas when opt is BitmapRequired. Repeated calls
// with the same arguments return the same atlas rectangle.
func (s *Stash) GetGlyph(handle int, r rune, size, blur float32, opt BitmapOption) (Glyph, error) {
	f := s.font(handle)
	if f == nil {
		return Glyph{}, ErrInvalidFont
	}
	return s.getGlyph(f, r, int(size*10), int(blur), opt)
}

func (s *Stash) getGlyph(f *font, r rune, isize, iblur int, opt BitmapOption) (Glyph, error) {
	if isize < 2 {
		return Glyph{}, ErrSizeTooSmall
	}
	iblur = min(iblur, MaxBlur)
	iblur = max(iblur, 0)
	pad := iblur + 2

	h := hashInt(uint32(r)) & (hashLUTSize - 1)
	cached := -1
	for i := f.lut[h]; i != -1; i = f.glyphs[i].next {
		g := &f.glyphs[i]
		if g.Codepoint == r && g.Size == isize && g.Blur == iblur {
			if opt == BitmapOptional || g.HasBitmap() {
				return *g, nil
			}
			cached = i
			break
		}
	}

	// Resolve through the fallback chain.
	render := f
	g := f.ttf.GlyphIndex(r)
	if g == 0 {
		for _, fb := range f.fallbacks {
			ff := s.font(fb)
			if ff == nil {
				continue
			}
			if g2 := ff.ttf.GlyphIndex(r); g2 != 0 {
				g, render = g2, ff
				break
			}
		}
	}

	scale := render.ttf.ScaleForPixelHeight(float64(isize) / 10)
	advance, _ := render.ttf.GlyphHMetrics(g)
	x0, y0, x1, y1 := render.ttf.GlyphBitmapBox(g, scale, scale)
	gw := x1 - x0 + pad*2
	gh := y1 - y0 + pad*2

	gx, gy := -1, -1
	if opt == BitmapRequired {
		var ok bool
		if gx, gy, ok = s.atlas.AddRect(gw, gh); !ok {
			return Glyph{}, ErrAtlasFull
		}
	}

	if cached == -1 {
		cached = len(f.glyphs)
		f.glyphs = append(f.glyphs, Glyph{
			Codepoint: r,
			Size:      isize,
			Blur:      iblur,
			next:      f.lut[h],
		})
		f.lut[h] = cached
	}
	glyph := &f.glyphs[cached]
	glyph.Index = g
	glyph.X0, glyph.Y0 = gx, gy
	glyph.X1, glyph.Y1 = gx+gw, gy+gh
	glyph.XAdv = int(float32(scale) * float32(advance) * 10)
	glyph.XOff = x0 - pad
	glyph.YOff = y0 - pad

	if opt == BitmapOptional {
		return *glyph, nil
	}

	s.renderGlyph(render.ttf, glyph, g, scale, gw, gh, pad)
	if iblur > 0 {
		s.blur(glyph.X0+glyph.Y0*s.width, gw, gh, iblur)
	}
	s.markDirty(glyph.X0, glyph.Y0, glyph.X1, glyph.Y1)
	return *glyph, nil
}

// renderGlyph rasterizes g inside the padded rectangle and clears a one
// texel frame around it so bilinear sampling never picks up a neighbour.
func (s *Stash) renderGlyph(ttf *truetype.Font, glyph *Glyph, g int, scale float64, gw, gh, pad int) {
	w := s.width
	off := (glyph.X0 + pad) + (glyph.Y0+pad)*w
	err := ttf.MakeGlyphBitmap(s.tex[off:], gw-pad*2, gh-pad*2, w, scale, scale, g, s.scratch)
	if err != nil {
		// The glyph is left empty; text keeps flowing around it.
		reui.Logger().Warn("stash: glyph not rendered",
			"codepoint", glyph.Codepoint, "glyph", g,
			"scratch_full", errors.Is(err, truetype.ErrScratchFull), "err", err)
		for y := range gh - pad*2 {
			clear(s.tex[off+y*w : off+y*w+gw-pad*2])
		}
	} else {
		reui.Logger().Debug("stash: glyph rendered", "codepoint", glyph.Codepoint,
			"x", glyph.X0, "y", glyph.Y0, "w", gw, "h", gh)
	}

	base := glyph.X0 + glyph.Y0*w
	for y := range gh {
		s.tex[base+y*w] = 0
		s.tex[base+gw-1+y*w] = 0
	}
	for x := range gw {
		s.tex[base+x] = 0
		s.tex[base+x+(gh-1)*w] = 0
	}
}

const (
	blurAPrec = 16
	blurZPrec = 7
)

func (s *Stash) blurCols(off, w, h int, alpha int32) {
	for y := range h {
		row := s.tex[off+y*s.width : off+y*s.width+w]
		var z int32
		for x := 1; x < w; x++ {
			z += (alpha * ((int32(row[x]) << blurZPrec) - z)) >> blurAPrec
			row[x] = uint8(z >> blurZPrec)
		}
		row[w-1] = 0
		z = 0
		for x := w - 2; x >= 0; x-- {
			z += (alpha * ((int32(row[x]) << blurZPrec) - z)) >> blurAPrec
			row[x] = uint8(z >> blurZPrec)
		}
		row[0] = 0
	}
}

func (s *Stash) blurRows(off, w, h int, alpha int32) {
	stride := s.width
	for x := range w {
		col := off + x
		var z int32
		for y := stride; y < h*stride; y += stride {
			z += (alpha * ((int32(s.tex[col+y]) << blurZPrec) - z)) >> blurAPrec
			s.tex[col+y] = uint8(z >> blurZPrec)
		}
		s.tex[col+(h-1)*stride] = 0
		z = 0
		for y := (h - 2) * stride; y >= 0; y -= stride {
			z += (alpha * ((int32(s.tex[col+y]) << blurZPrec) - z)) >> blurAPrec
			s.tex[col+y] = uint8(z >> blurZPrec)
		}
		s.tex[col] = 0
	}
}

// blur applies an approximate gaussian as two forward and backward
// exponential passes in each direction.
func (s *Stash) blur(off, w, h, radius int) {
	if radius < 1 {
		return
	}
	sigma := float64(radius) * 0.57735
	alpha := int32(float64(1<<blurAPrec) * (1 - math.Exp(-2.3/(sigma+1))))
	s.blurRows(off, w, h, alpha)
	s.blurCols(off, w, h, alpha)
	s.blurRows(off, w, h, alpha)
	s.blurCols(off, w, h, alpha)
}
