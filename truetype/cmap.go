package truetype

import (
	"fmt"

	"golang.org/x/text/encoding/charmap"
)

// Platform and encoding IDs used for cmap selection.
const (
	platformUnicode   = 0
	platformMac       = 1
	platformMicrosoft = 3

	macEncodingRoman  = 0
	msEncodingBMP     = 1
	msEncodingFull    = 10
	unicodeEncFull    = 4
	unicodeEncVarSeq  = 5
	unicodeEncFullB13 = 6
)

// cmapRank orders encoding records; higher is preferred and 0 means the
// record cannot map Unicode text.
func cmapRank(platform, encoding uint16) int {
	switch platform {
	case platformMicrosoft:
		switch encoding {
		case msEncodingFull:
			return 4
		case msEncodingBMP:
			return 3
		}
	case platformUnicode:
		switch encoding {
		case unicodeEncFull, unicodeEncFullB13:
			return 4
		case unicodeEncVarSeq:
			return 0
		default:
			return 3
		}
	case platformMac:
		if encoding == macEncodingRoman {
			return 1
		}
	}
	return 0
}

// selectCmap picks the best-ranked encoding record rather than the first
// usable one: full Unicode, then BMP Unicode, then Mac Roman. Among records
// of equal rank the first wins.
func (f *Font) selectCmap() error {
	n := int(u16(f.cmap, 2))
	best, bestRank := -1, 0
	var bestPlatform uint16
	for i := range n {
		rec := 4 + 8*i
		if rec+8 > len(f.cmap) {
			return fmt.Errorf("%w: truncated cmap", ErrMalformed)
		}
		platform, encoding := u16(f.cmap, rec), u16(f.cmap, rec+2)
		if r := cmapRank(platform, encoding); r > bestRank {
			best, bestRank, bestPlatform = rec, r, platform
		}
	}
	if best < 0 {
		return ErrNoCmap
	}

	off := int(u32(f.cmap, best+4))
	if off+2 > len(f.cmap) {
		return fmt.Errorf("%w: cmap subtable out of bounds", ErrMalformed)
	}
	f.indexMap = f.cmap[off:]
	f.macRoman = bestPlatform == platformMac

	switch format := u16(f.indexMap, 0); format {
	case 0, 4, 6, 12, 13:
		return nil
	default:
		return fmt.Errorf("%w: format %d", ErrUnsupportedCmap, format)
	}
}

// CmapFormat returns the format number of the selected cmap subtable.
func (f *Font) CmapFormat() int {
	return int(u16(f.indexMap, 0))
}

// GlyphIndex returns the glyph for r, or 0 (.notdef) if the font has none.
// The lookup uses the subtable chosen at parse time (see Parse). When that
// is the Mac Roman subtable, r is first encoded with charmap.Macintosh and
// runes outside Mac Roman map to 0.
func (f *Font) GlyphIndex(r rune) int {
	cp := int(r)
	if f.macRoman {
		b, ok := charmap.Macintosh.EncodeRune(r)
		if !ok {
			return 0
		}
		cp = int(b)
	}
	if cp < 0 {
		return 0
	}

	m := f.indexMap
	switch u16(m, 0) {
	case 0:
		n := int(u16(m, 2)) - 6
		if cp < n {
			return int(u8(m, 6+cp))
		}
		return 0
	case 4:
		return cmapFormat4(m, cp)
	case 6:
		first := int(u16(m, 6))
		count := int(u16(m, 8))
		if cp >= first && cp < first+count {
			return int(u16(m, 10+(cp-first)*2))
		}
		return 0
	case 12, 13:
		return cmapFormat12(m, cp, u16(m, 0) == 13)
	}
	return 0
}

func cmapFormat4(m []byte, cp int) int {
	if cp > 0xffff {
		return 0
	}
	segCount := int(u16(m, 6)) / 2
	endCodes := 14
	startCodes := endCodes + segCount*2 + 2
	idDeltas := startCodes + segCount*2
	idRangeOffsets := idDeltas + segCount*2

	// First segment whose end code is >= cp.
	lo, hi := 0, segCount
	for lo < hi {
		mid := (lo + hi) / 2
		if int(u16(m, endCodes+mid*2)) < cp {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo == segCount {
		return 0
	}
	start := int(u16(m, startCodes+lo*2))
	if cp < start {
		return 0
	}
	delta := int(u16(m, idDeltas+lo*2))
	rangeOff := int(u16(m, idRangeOffsets+lo*2))
	if rangeOff == 0 {
		return (cp + delta) & 0xffff
	}
	g := int(u16(m, idRangeOffsets+lo*2+rangeOff+(cp-start)*2))
	if g == 0 {
		return 0
	}
	return (g + delta) & 0xffff
}

func cmapFormat12(m []byte, cp int, constant bool) int {
	lo, hi := 0, int(u32(m, 12))
	for lo < hi {
		mid := lo + (hi-lo)>>1
		group := 16 + mid*12
		startChar := int(u32(m, group))
		endChar := int(u32(m, group+4))
		switch {
		case cp < startChar:
			hi = mid
		case cp > endChar:
			lo = mid + 1
		default:
			startGlyph := int(u32(m, group+8))
			if constant {
				return startGlyph
			}
			return startGlyph + cp - startChar
		}
	}
	return 0
}
