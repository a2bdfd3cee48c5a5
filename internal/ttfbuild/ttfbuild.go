// Package ttfbuild assembles small TrueType fonts in memory. It exists so
// tests can exercise decoder paths (cmap formats, composite transforms,
// kerning) that stock fonts do not cover.
package ttfbuild

import (
	"encoding/binary"
	"math"
	"slices"
	"sort"
)

// Point is an outline point in font units.
type Point struct {
	X, Y    int16
	OnCurve bool
}

// Component references another glyph from a composite glyph.
type Component struct {
	Glyph  uint16
	DX, DY int16
	// Scale, when non-zero, applies a uniform F2Dot14 scale.
	Scale float64
}

// Glyph is either a simple glyph (Contours) or a composite (Components).
type Glyph struct {
	Contours   [][]Point
	Components []Component
	Advance    uint16
	LSB        int16
}

// CmapFormat selects the cmap subtable encoding.
type CmapFormat int

// Supported subtable layouts.
const (
	Format4 CmapFormat = iota
	Format12
	Format6
	// Format0Mac writes a Macintosh Roman byte table (platform 1, encoding 0).
	Format0Mac
	// Format2 writes a bare format 2 header that decoders must reject.
	Format2
)

// Kern is one horizontal kerning pair.
type Kern struct {
	Left, Right uint16
	Value       int16
}

// Font describes the font to build. Glyph 0 should be .notdef.
type Font struct {
	UnitsPerEm uint16
	Ascent     int16
	Descent    int16
	LineGap    int16
	Glyphs     []Glyph
	// Cmap maps codepoints (or Mac Roman bytes for Format0Mac) to glyphs.
	Cmap   map[rune]uint16
	Format CmapFormat
	Kerns  []Kern
	// OmitTables drops the named tables from the output.
	OmitTables []string
}

// Build serializes the font.
func (f *Font) Build() []byte {
	glyf, loca, bbox := f.buildGlyf()
	tables := map[string][]byte{
		"cmap": f.buildCmap(),
		"glyf": glyf,
		"loca": loca,
		"head": f.buildHead(bbox),
		"hhea": f.buildHhea(),
		"hmtx": f.buildHmtx(),
		"maxp": f.buildMaxp(),
	}
	if len(f.Kerns) > 0 {
		tables["kern"] = f.buildKern()
	}
	for _, tag := range f.OmitTables {
		delete(tables, tag)
	}

	tags := make([]string, 0, len(tables))
	for tag := range tables {
		tags = append(tags, tag)
	}
	slices.Sort(tags)

	out := make([]byte, 12+16*len(tags))
	binary.BigEndian.PutUint32(out[0:], 0x00010000)
	binary.BigEndian.PutUint16(out[4:], uint16(len(tags)))
	for i, tag := range tags {
		for len(out)%4 != 0 {
			out = append(out, 0)
		}
		rec := out[12+16*i:]
		copy(rec[0:4], tag)
		binary.BigEndian.PutUint32(rec[8:], uint32(len(out)))
		binary.BigEndian.PutUint32(rec[12:], uint32(len(tables[tag])))
		out = append(out, tables[tag]...)
	}
	return out
}

type buf []byte

func (b *buf) u8(v uint8)   { *b = append(*b, v) }
func (b *buf) u16(v uint16) { *b = binary.BigEndian.AppendUint16(*b, v) }
func (b *buf) i16(v int16)  { b.u16(uint16(v)) }
func (b *buf) u32(v uint32) { *b = binary.BigEndian.AppendUint32(*b, v) }

func (f *Font) buildGlyf() (glyf, loca []byte, bbox [4]int16) {
	var g, l buf
	bbox = [4]int16{math.MaxInt16, math.MaxInt16, math.MinInt16, math.MinInt16}
	for i := range f.Glyphs {
		l.u32(uint32(len(g)))
		gl := &f.Glyphs[i]
		switch {
		case len(gl.Contours) > 0:
			box := encodeSimple(&g, gl.Contours)
			bbox[0], bbox[1] = min(bbox[0], box[0]), min(bbox[1], box[1])
			bbox[2], bbox[3] = max(bbox[2], box[2]), max(bbox[3], box[3])
		case len(gl.Components) > 0:
			encodeComposite(&g, gl.Components, f.componentBox(gl.Components))
		}
		for len(g)%4 != 0 {
			g.u8(0)
		}
	}
	l.u32(uint32(len(g)))
	if bbox[0] > bbox[2] {
		bbox = [4]int16{}
	}
	return g, l, bbox
}

func contourBox(contours [][]Point) [4]int16 {
	box := [4]int16{math.MaxInt16, math.MaxInt16, math.MinInt16, math.MinInt16}
	for _, c := range contours {
		for _, p := range c {
			box[0], box[1] = min(box[0], p.X), min(box[1], p.Y)
			box[2], box[3] = max(box[2], p.X), max(box[3], p.Y)
		}
	}
	return box
}

func (f *Font) componentBox(comps []Component) [4]int16 {
	box := [4]int16{math.MaxInt16, math.MaxInt16, math.MinInt16, math.MinInt16}
	for _, c := range comps {
		if int(c.Glyph) >= len(f.Glyphs) || len(f.Glyphs[c.Glyph].Contours) == 0 {
			continue
		}
		b := contourBox(f.Glyphs[c.Glyph].Contours)
		s := c.Scale
		if s == 0 {
			s = 1
		}
		box[0] = min(box[0], int16(float64(b[0])*s)+c.DX)
		box[1] = min(box[1], int16(float64(b[1])*s)+c.DY)
		box[2] = max(box[2], int16(float64(b[2])*s)+c.DX)
		box[3] = max(box[3], int16(float64(b[3])*s)+c.DY)
	}
	return box
}

// encodeSimple writes a simple glyph using every coordinate encoding:
// omitted repeats, short vectors with either sign and 16-bit deltas, and
// run-length repeated flags.
func encodeSimple(g *buf, contours [][]Point) [4]int16 {
	box := contourBox(contours)
	g.i16(int16(len(contours)))
	for _, v := range box {
		g.i16(v)
	}
	end := -1
	var pts []Point
	for _, c := range contours {
		end += len(c)
		g.u16(uint16(end))
		pts = append(pts, c...)
	}
	g.u16(0) // instructions

	var flags []uint8
	var xs, ys buf
	var px, py int16
	for _, p := range pts {
		var fl uint8
		if p.OnCurve {
			fl |= 1
		}
		fl |= coord(&xs, p.X-px, 1<<1, 1<<4)
		fl |= coord(&ys, p.Y-py, 1<<2, 1<<5)
		px, py = p.X, p.Y
		flags = append(flags, fl)
	}
	for i := 0; i < len(flags); {
		j := i + 1
		for j < len(flags) && flags[j] == flags[i] && j-i < 255 {
			j++
		}
		if j-i > 1 {
			g.u8(flags[i] | 1<<3)
			g.u8(uint8(j - i - 1))
		} else {
			g.u8(flags[i])
		}
		i = j
	}
	*g = append(*g, xs...)
	*g = append(*g, ys...)
	return box
}

func coord(b *buf, d int16, short, same uint8) uint8 {
	switch {
	case d == 0:
		return same
	case d > -256 && d < 256:
		if d > 0 {
			b.u8(uint8(d))
			return short | same
		}
		b.u8(uint8(-d))
		return short
	default:
		b.i16(d)
		return 0
	}
}

func encodeComposite(g *buf, comps []Component, box [4]int16) {
	g.i16(-1)
	for _, v := range box {
		g.i16(v)
	}
	for i, c := range comps {
		flags := uint16(1<<0 | 1<<1)
		if c.Scale != 0 {
			flags |= 1 << 3
		}
		if i < len(comps)-1 {
			flags |= 1 << 5
		}
		g.u16(flags)
		g.u16(c.Glyph)
		g.i16(c.DX)
		g.i16(c.DY)
		if c.Scale != 0 {
			g.i16(int16(math.Round(c.Scale * 16384)))
		}
	}
}

func (f *Font) buildHead(bbox [4]int16) []byte {
	var b buf
	b.u32(0x00010000) // version
	b.u32(0)          // revision
	b.u32(0)          // checksum adjustment
	b.u32(0x5F0F3CF5) // magic
	b.u16(0)          // flags
	b.u16(f.UnitsPerEm)
	b.u32(0) // created
	b.u32(0)
	b.u32(0) // modified
	b.u32(0)
	for _, v := range bbox {
		b.i16(v)
	}
	b.u16(0) // macStyle
	b.u16(8) // lowestRecPPEM
	b.i16(2) // fontDirectionHint
	b.i16(1) // indexToLocFormat: long
	b.i16(0) // glyphDataFormat
	return b
}

func (f *Font) buildHhea() []byte {
	var b buf
	b.u32(0x00010000)
	b.i16(f.Ascent)
	b.i16(f.Descent)
	b.i16(f.LineGap)
	var maxAdv uint16
	for _, g := range f.Glyphs {
		maxAdv = max(maxAdv, g.Advance)
	}
	b.u16(maxAdv)
	for range 11 { // minLSB .. metricDataFormat
		b.i16(0)
	}
	b.u16(uint16(len(f.Glyphs)))
	return b
}

func (f *Font) buildHmtx() []byte {
	var b buf
	for _, g := range f.Glyphs {
		b.u16(g.Advance)
		b.i16(g.LSB)
	}
	return b
}

func (f *Font) buildMaxp() []byte {
	var b buf
	b.u32(0x00005000)
	b.u16(uint16(len(f.Glyphs)))
	return b
}

func (f *Font) buildKern() []byte {
	kerns := slices.Clone(f.Kerns)
	sort.Slice(kerns, func(i, j int) bool {
		return uint32(kerns[i].Left)<<16|uint32(kerns[i].Right) < uint32(kerns[j].Left)<<16|uint32(kerns[j].Right)
	})
	var b buf
	b.u16(0) // version
	b.u16(1) // nTables
	b.u16(0) // subtable version
	b.u16(uint16(14 + 6*len(kerns)))
	b.u16(1) // coverage: horizontal, format 0
	b.u16(uint16(len(kerns)))
	b.u16(0) // searchRange
	b.u16(0) // entrySelector
	b.u16(0) // rangeShift
	for _, k := range kerns {
		b.u16(k.Left)
		b.u16(k.Right)
		b.i16(k.Value)
	}
	return b
}

func (f *Font) sortedRunes() []rune {
	runes := make([]rune, 0, len(f.Cmap))
	for r := range f.Cmap {
		runes = append(runes, r)
	}
	slices.Sort(runes)
	return runes
}

func (f *Font) buildCmap() []byte {
	var sub buf
	platform, encoding := uint16(3), uint16(1)
	switch f.Format {
	case Format4:
		sub = f.cmap4()
	case Format12:
		encoding = 10
		sub = f.cmap12()
	case Format6:
		sub = f.cmap6()
	case Format0Mac:
		platform, encoding = 1, 0
		sub = f.cmap0()
	case Format2:
		sub.u16(2)
		sub.u16(6)
		sub.u16(0)
	}
	var b buf
	b.u16(0)
	b.u16(1)
	b.u16(platform)
	b.u16(encoding)
	b.u32(12)
	return append(b, sub...)
}

type segment struct {
	start, end rune
	glyphs     []uint16
}

// cmap4 groups consecutive codepoints into segments. Segments whose
// glyphs are also consecutive use idDelta, the rest use idRangeOffset.
func (f *Font) cmap4() buf {
	var segs []segment
	for _, r := range f.sortedRunes() {
		if r > 0xfffe {
			continue
		}
		if n := len(segs); n > 0 && segs[n-1].end+1 == r {
			segs[n-1].end = r
			segs[n-1].glyphs = append(segs[n-1].glyphs, f.Cmap[r])
			continue
		}
		segs = append(segs, segment{start: r, end: r, glyphs: []uint16{f.Cmap[r]}})
	}
	segs = append(segs, segment{start: 0xffff, end: 0xffff, glyphs: []uint16{0}})

	segCount := len(segs)
	deltas := make([]uint16, segCount)
	rangeOffsets := make([]uint16, segCount)
	var glyphArray []uint16
	for i, s := range segs {
		consecutive := true
		for k := 1; k < len(s.glyphs); k++ {
			if s.glyphs[k] != s.glyphs[0]+uint16(k) {
				consecutive = false
			}
		}
		if consecutive || i == segCount-1 {
			deltas[i] = s.glyphs[0] - uint16(s.start)
			if i == segCount-1 {
				deltas[i] = 1
			}
			continue
		}
		// Offset from this idRangeOffset entry to the glyph array slot.
		rangeOffsets[i] = uint16(2 * (segCount - i + len(glyphArray)))
		glyphArray = append(glyphArray, s.glyphs...)
	}

	var b buf
	b.u16(4)
	b.u16(uint16(16 + 8*segCount + 2*len(glyphArray)))
	b.u16(0)
	b.u16(uint16(2 * segCount))
	b.u16(0) // searchRange
	b.u16(0) // entrySelector
	b.u16(0) // rangeShift
	for _, s := range segs {
		b.u16(uint16(s.end))
	}
	b.u16(0)
	for _, s := range segs {
		b.u16(uint16(s.start))
	}
	for _, d := range deltas {
		b.u16(d)
	}
	for _, r := range rangeOffsets {
		b.u16(r)
	}
	for _, g := range glyphArray {
		b.u16(g)
	}
	return b
}

func (f *Font) cmap12() buf {
	type group struct {
		start, end rune
		glyph      uint16
	}
	var groups []group
	for _, r := range f.sortedRunes() {
		g := f.Cmap[r]
		if n := len(groups); n > 0 {
			last := &groups[n-1]
			if last.end+1 == r && uint32(last.glyph)+uint32(r-last.start) == uint32(g) {
				last.end = r
				continue
			}
		}
		groups = append(groups, group{r, r, g})
	}
	var b buf
	b.u16(12)
	b.u16(0)
	b.u32(uint32(16 + 12*len(groups)))
	b.u32(0)
	b.u32(uint32(len(groups)))
	for _, g := range groups {
		b.u32(uint32(g.start))
		b.u32(uint32(g.end))
		b.u32(uint32(g.glyph))
	}
	return b
}

func (f *Font) cmap6() buf {
	runes := f.sortedRunes()
	var b buf
	b.u16(6)
	if len(runes) == 0 {
		b.u16(10)
		b.u16(0)
		b.u16(0)
		b.u16(0)
		return b
	}
	first, last := runes[0], runes[len(runes)-1]
	count := int(last-first) + 1
	b.u16(uint16(10 + 2*count))
	b.u16(0)
	b.u16(uint16(first))
	b.u16(uint16(count))
	for r := first; r <= last; r++ {
		b.u16(f.Cmap[r])
	}
	return b
}

func (f *Font) cmap0() buf {
	var b buf
	b.u16(0)
	b.u16(262)
	b.u16(0)
	for i := range 256 {
		b.u8(uint8(f.Cmap[rune(i)]))
	}
	return b
}

// Square returns a closed square contour wound clockwise in font space
// (y up), the orientation TrueType uses for outer contours.
func Square(x, y, size int16) []Point {
	return []Point{
		{x, y, true},
		{x, y + size, true},
		{x + size, y + size, true},
		{x + size, y, true},
	}
}
