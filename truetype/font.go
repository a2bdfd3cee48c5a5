package truetype

import (
	"fmt"
)

// Font is a parsed TrueType font. It keeps sub-slices of the original data
// and never copies or modifies it; the caller must not mutate the bytes
// passed to Parse while the Font is in use.
type Font struct {
	data []byte

	cmap []byte
	loca []byte
	head []byte
	glyf []byte
	hhea []byte
	hmtx []byte
	kern []byte

	// indexMap is the selected cmap subtable.
	indexMap []byte
	macRoman bool

	numGlyphs        int
	indexToLocFormat int
	unitsPerEm       int
}

// Parse parses a single TrueType font, or the first font of a collection.
//
// Of the cmap encoding records, Parse keeps the best-ranked one rather
// than the first usable one: a full Unicode subtable (platform 3 encoding
// 10, or platform 0 encoding 4/6), then a BMP one (platform 3 encoding 1,
// or other platform 0 encodings), then Macintosh Roman (platform 1
// encoding 0). Fonts with none of these fail with ErrNoCmap.
func Parse(data []byte) (*Font, error) {
	return ParseCollection(data, 0)
}

// ParseCollection parses font number index from a TrueType collection.
// For a plain font file only index 0 is valid.
func ParseCollection(data []byte, index int) (*Font, error) {
	start, err := fontOffset(data, index)
	if err != nil {
		return nil, err
	}

	f := &Font{data: data}
	required := []struct {
		tag string
		dst *[]byte
	}{
		{"cmap", &f.cmap},
		{"loca", &f.loca},
		{"head", &f.head},
		{"glyf", &f.glyf},
		{"hhea", &f.hhea},
		{"hmtx", &f.hmtx},
	}
	for _, t := range required {
		tbl, ok, err := findTable(data, start, t.tag)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, &TableError{Tag: t.tag}
		}
		*t.dst = tbl
	}
	if f.kern, _, err = findTable(data, start, "kern"); err != nil {
		return nil, err
	}
	maxp, ok, err := findTable(data, start, "maxp")
	if err != nil {
		return nil, err
	}
	if ok {
		f.numGlyphs = int(u16(maxp, 4))
	} else {
		f.numGlyphs = 0xffff
	}

	if len(f.head) < 54 || len(f.hhea) < 36 {
		return nil, fmt.Errorf("%w: short head or hhea table", ErrMalformed)
	}
	f.indexToLocFormat = int(i16(f.head, 50))
	f.unitsPerEm = int(u16(f.head, 18))

	if err := f.selectCmap(); err != nil {
		return nil, err
	}
	return f, nil
}

// NumFonts returns the number of fonts in data: 1 for a plain font, the
// collection size for a TrueType collection and 0 otherwise.
func NumFonts(data []byte) int {
	if isFont(data) {
		return 1
	}
	if isCollection(data) {
		return int(u32(data, 8))
	}
	return 0
}

func isFont(data []byte) bool {
	if len(data) < 4 {
		return false
	}
	switch string(data[:4]) {
	case "1\x00\x00\x00", "typ1", "OTTO", "\x00\x01\x00\x00", "true":
		return true
	}
	return false
}

func isCollection(data []byte) bool {
	if len(data) < 12 || string(data[:4]) != "ttcf" {
		return false
	}
	v := u32(data, 4)
	return v == 0x00010000 || v == 0x00020000
}

func fontOffset(data []byte, index int) (int, error) {
	if isFont(data) {
		if index != 0 {
			return 0, fmt.Errorf("%w: index %d in a single font", ErrNotFont, index)
		}
		return 0, nil
	}
	if isCollection(data) {
		n := int(u32(data, 8))
		if index < 0 || index >= n {
			return 0, fmt.Errorf("%w: index %d in a collection of %d", ErrNotFont, index, n)
		}
		off := int(u32(data, 12+index*4))
		if !isFont(data[min(off, len(data)):]) {
			return 0, ErrNotFont
		}
		return off, nil
	}
	return 0, ErrNotFont
}

// findTable returns the table with the given tag from the directory at
// start. ok is false when the table is absent.
func findTable(data []byte, start int, tag string) (tbl []byte, ok bool, err error) {
	numTables := int(u16(data, start+4))
	dir := start + 12
	for i := range numTables {
		loc := dir + 16*i
		if loc+16 > len(data) {
			return nil, false, fmt.Errorf("%w: truncated table directory", ErrMalformed)
		}
		if string(data[loc:loc+4]) != tag {
			continue
		}
		off := int(u32(data, loc+8))
		length := int(u32(data, loc+12))
		if off+length > len(data) || off+length < off {
			return nil, false, fmt.Errorf("%w: table %q out of bounds", ErrMalformed, tag)
		}
		return data[off : off+length], true, nil
	}
	return nil, false, nil
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int { return f.numGlyphs }

// UnitsPerEm returns the design units per em.
func (f *Font) UnitsPerEm() int { return f.unitsPerEm }

// VMetrics returns the ascent, descent and line gap in font units. Ascent
// is above the baseline and positive, descent is usually negative; the
// distance between baselines is ascent - descent + lineGap.
func (f *Font) VMetrics() (ascent, descent, lineGap int) {
	return int(i16(f.hhea, 4)), int(i16(f.hhea, 6)), int(i16(f.hhea, 8))
}

// FontBoundingBox returns the union of all glyph boxes in font units.
func (f *Font) FontBoundingBox() (x0, y0, x1, y1 int) {
	return int(i16(f.head, 36)), int(i16(f.head, 38)), int(i16(f.head, 40)), int(i16(f.head, 42))
}

// ScaleForPixelHeight returns the scale that maps ascent-descent to height
// pixels.
func (f *Font) ScaleForPixelHeight(height float64) float64 {
	ascent, descent, _ := f.VMetrics()
	fheight := float64(ascent - descent)
	if fheight == 0 {
		return 0
	}
	return height / fheight
}

// ScaleForMappingEmToPixels returns the scale that maps one em to pixels.
func (f *Font) ScaleForMappingEmToPixels(pixels float64) float64 {
	if f.unitsPerEm == 0 {
		return 0
	}
	return pixels / float64(f.unitsPerEm)
}

// GlyphHMetrics returns the advance width and left side bearing of glyph
// in font units.
func (f *Font) GlyphHMetrics(glyph int) (advance, lsb int) {
	n := int(u16(f.hhea, 34))
	if n == 0 {
		return 0, 0
	}
	if glyph < n {
		return int(i16(f.hmtx, 4*glyph)), int(i16(f.hmtx, 4*glyph+2))
	}
	return int(i16(f.hmtx, 4*(n-1))), int(i16(f.hmtx, 4*n+2*(glyph-n)))
}

// CodepointHMetrics is GlyphHMetrics for the glyph mapped to r.
func (f *Font) CodepointHMetrics(r rune) (advance, lsb int) {
	return f.GlyphHMetrics(f.GlyphIndex(r))
}

// GlyphKernAdvance returns the kerning adjustment between two glyphs in
// font units, or 0 when the font has no applicable kern table. Only the
// first subtable is consulted and it must be horizontal format 0.
func (f *Font) GlyphKernAdvance(glyph1, glyph2 int) int {
	k := f.kern
	if len(k) == 0 {
		return 0
	}
	if u16(k, 2) < 1 {
		return 0
	}
	if u16(k, 8) != 1 {
		return 0
	}

	lo, hi := 0, int(u16(k, 10))-1
	needle := uint32(glyph1)<<16 | uint32(glyph2)
	for lo <= hi {
		m := (lo + hi) >> 1
		straw := u32(k, 18+m*6)
		switch {
		case needle < straw:
			hi = m - 1
		case needle > straw:
			lo = m + 1
		default:
			return int(i16(k, 22+m*6))
		}
	}
	return 0
}

// CodepointKernAdvance is GlyphKernAdvance for two codepoints.
func (f *Font) CodepointKernAdvance(r1, r2 rune) int {
	if len(f.kern) == 0 {
		return 0
	}
	return f.GlyphKernAdvance(f.GlyphIndex(r1), f.GlyphIndex(r2))
}

// glyphData returns the glyf bytes for glyph. Empty glyphs (such as space)
// return nil without error.
func (f *Font) glyphData(glyph int) ([]byte, error) {
	if glyph < 0 || glyph >= f.numGlyphs {
		return nil, nil
	}
	var g0, g1 int
	switch f.indexToLocFormat {
	case 0:
		g0 = int(u16(f.loca, glyph*2)) * 2
		g1 = int(u16(f.loca, glyph*2+2)) * 2
	case 1:
		g0 = int(u32(f.loca, glyph*4))
		g1 = int(u32(f.loca, glyph*4+4))
	default:
		return nil, fmt.Errorf("%w: unknown loca format %d", ErrMalformed, f.indexToLocFormat)
	}
	if g0 == g1 {
		return nil, nil
	}
	if g0 > g1 || g1 > len(f.glyf) {
		return nil, fmt.Errorf("%w: glyph %d out of bounds", ErrMalformed, glyph)
	}
	return f.glyf[g0:g1], nil
}

// GlyphBox returns the glyph's bounding box in font units. ok is false
// for empty or invalid glyphs.
func (f *Font) GlyphBox(glyph int) (x0, y0, x1, y1 int, ok bool) {
	g, err := f.glyphData(glyph)
	if err != nil || len(g) < 10 {
		return 0, 0, 0, 0, false
	}
	return int(i16(g, 2)), int(i16(g, 4)), int(i16(g, 6)), int(i16(g, 8)), true
}
