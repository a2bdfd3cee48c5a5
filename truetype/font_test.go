package truetype

import (
	"bytes"
	"encoding/binary"
	"errors"
	"testing"

	gotext "github.com/go-text/typesetting/font"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"

	"github.com/lain-dono/reui/internal/ttfbuild"
)

const sampleText = "Hello, World! 0123456789 àéîõü ΩЖ"

func parseGoRegular(t *testing.T) *Font {
	t.Helper()
	f, err := Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("Parse(goregular) failed: %v", err)
	}
	return f
}

func TestParseGoRegularAgainstSfnt(t *testing.T) {
	f := parseGoRegular(t)
	ref, err := sfnt.Parse(goregular.TTF)
	if err != nil {
		t.Fatalf("sfnt.Parse failed: %v", err)
	}

	if got, want := f.UnitsPerEm(), int(ref.UnitsPerEm()); got != want {
		t.Errorf("expected unitsPerEm %d, got %d", want, got)
	}
	if got, want := f.NumGlyphs(), ref.NumGlyphs(); got != want {
		t.Errorf("expected %d glyphs, got %d", want, got)
	}

	var buf sfnt.Buffer
	ppem := fixed.Int26_6(f.UnitsPerEm() << 6)
	for _, r := range sampleText {
		want, err := ref.GlyphIndex(&buf, r)
		if err != nil {
			t.Fatalf("sfnt GlyphIndex(%q): %v", r, err)
		}
		got := f.GlyphIndex(r)
		if got != int(want) {
			t.Errorf("GlyphIndex(%q): expected %d, got %d", r, want, got)
			continue
		}
		adv, err := ref.GlyphAdvance(&buf, want, ppem, font.HintingNone)
		if err != nil {
			t.Fatalf("sfnt GlyphAdvance(%q): %v", r, err)
		}
		if gotAdv, _ := f.GlyphHMetrics(got); gotAdv != int(adv>>6) {
			t.Errorf("advance of %q: expected %d, got %d", r, adv>>6, gotAdv)
		}
	}
}

func TestParseGoRegularAgainstGoText(t *testing.T) {
	f := parseGoRegular(t)
	face, err := gotext.ParseTTF(bytes.NewReader(goregular.TTF))
	if err != nil {
		t.Fatalf("go-text ParseTTF failed: %v", err)
	}
	if got, want := f.UnitsPerEm(), int(face.Upem()); got != want {
		t.Errorf("expected unitsPerEm %d, got %d", want, got)
	}
	for _, r := range sampleText {
		gid, ok := face.NominalGlyph(r)
		if !ok {
			t.Fatalf("go-text has no glyph for %q", r)
		}
		if got := f.GlyphIndex(r); got != int(gid) {
			t.Errorf("GlyphIndex(%q): expected %d, got %d", r, gid, got)
		}
		adv, _ := f.CodepointHMetrics(r)
		if want := face.HorizontalAdvance(gid); float32(adv) != want {
			t.Errorf("advance of %q: expected %v, got %d", r, want, adv)
		}
	}
}

func TestGlyphIndexMissing(t *testing.T) {
	f := parseGoRegular(t)
	if g := f.GlyphIndex(0x10FFFD); g != 0 {
		t.Errorf("expected .notdef for a private-use codepoint, got %d", g)
	}
	if g := f.GlyphIndex(-1); g != 0 {
		t.Errorf("expected .notdef for a negative rune, got %d", g)
	}
}

func TestScaleForPixelHeight(t *testing.T) {
	f := parseGoRegular(t)
	ascent, descent, _ := f.VMetrics()
	if ascent <= 0 || descent >= 0 {
		t.Fatalf("expected positive ascent and negative descent, got %d %d", ascent, descent)
	}
	s := f.ScaleForPixelHeight(32)
	if got := float64(ascent-descent) * s; got < 31.999 || got > 32.001 {
		t.Errorf("expected scaled height 32, got %v", got)
	}
	if got := f.ScaleForMappingEmToPixels(float64(f.UnitsPerEm())); got != 1 {
		t.Errorf("expected em scale 1, got %v", got)
	}
}

func TestParseErrors(t *testing.T) {
	if _, err := Parse([]byte("definitely not a font")); !errors.Is(err, ErrNotFont) {
		t.Errorf("expected ErrNotFont, got %v", err)
	}
	if _, err := ParseCollection(goregular.TTF, 1); !errors.Is(err, ErrNotFont) {
		t.Errorf("expected ErrNotFont for index 1 of a single font, got %v", err)
	}

	fb := squareFont()
	fb.OmitTables = []string{"hmtx"}
	_, err := Parse(fb.Build())
	var te *TableError
	if !errors.As(err, &te) {
		t.Fatalf("expected *TableError, got %v", err)
	}
	if te.Tag != "hmtx" {
		t.Errorf("expected missing hmtx, got %q", te.Tag)
	}
	if !errors.Is(err, ErrMissingTable) {
		t.Errorf("expected errors.Is(err, ErrMissingTable)")
	}

	short := goregular.TTF[:20]
	if _, err := Parse(short); !errors.Is(err, ErrMalformed) {
		t.Errorf("expected ErrMalformed for a truncated directory, got %v", err)
	}
}

func TestParseWithoutMaxp(t *testing.T) {
	fb := squareFont()
	fb.OmitTables = []string{"maxp"}
	f, err := Parse(fb.Build())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if f.NumGlyphs() != 0xffff {
		t.Errorf("expected 0xffff glyphs without maxp, got %d", f.NumGlyphs())
	}
}

// wrapCollection turns a single font into a one-font collection by
// prepending a ttcf header and rebasing the table offsets.
func wrapCollection(font []byte) []byte {
	const hdr = 16
	out := make([]byte, hdr, hdr+len(font))
	copy(out, "ttcf")
	binary.BigEndian.PutUint32(out[4:], 0x00010000)
	binary.BigEndian.PutUint32(out[8:], 1)
	binary.BigEndian.PutUint32(out[12:], hdr)
	out = append(out, font...)
	n := int(binary.BigEndian.Uint16(font[4:]))
	for i := range n {
		rec := hdr + 12 + 16*i + 8
		binary.BigEndian.PutUint32(out[rec:], binary.BigEndian.Uint32(out[rec:])+hdr)
	}
	return out
}

func TestParseCollection(t *testing.T) {
	ttc := wrapCollection(squareFont().Build())
	if n := NumFonts(ttc); n != 1 {
		t.Fatalf("expected 1 font in collection, got %d", n)
	}
	f, err := ParseCollection(ttc, 0)
	if err != nil {
		t.Fatalf("ParseCollection failed: %v", err)
	}
	if g := f.GlyphIndex('A'); g != 1 {
		t.Errorf("expected glyph 1 for 'A', got %d", g)
	}
	if _, err := ParseCollection(ttc, 1); !errors.Is(err, ErrNotFont) {
		t.Errorf("expected ErrNotFont for out-of-range index, got %v", err)
	}
	if n := NumFonts([]byte("nope")); n != 0 {
		t.Errorf("expected 0 fonts for garbage, got %d", n)
	}
}

func TestKernAdvance(t *testing.T) {
	fb := squareFont()
	fb.Kerns = []ttfbuild.Kern{
		{Left: 2, Right: 1, Value: 15},
		{Left: 1, Right: 2, Value: -40},
	}
	f, err := Parse(fb.Build())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	tests := []struct {
		a, b rune
		want int
	}{
		{'A', 'B', -40},
		{'B', 'A', 15},
		{'A', 'A', 0},
		{'A', 'z', 0},
	}
	for _, tt := range tests {
		if got := f.CodepointKernAdvance(tt.a, tt.b); got != tt.want {
			t.Errorf("kern(%q, %q): expected %d, got %d", tt.a, tt.b, tt.want, got)
		}
	}

	fb.Kerns = nil
	plain, err := Parse(fb.Build())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if got := plain.CodepointKernAdvance('A', 'B'); got != 0 {
		t.Errorf("expected 0 without a kern table, got %d", got)
	}
}

func TestHMetricsAndGlyphBox(t *testing.T) {
	f, err := Parse(squareFont().Build())
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	adv, lsb := f.GlyphHMetrics(1)
	if adv != 120 || lsb != 10 {
		t.Errorf("expected (120, 10), got (%d, %d)", adv, lsb)
	}
	x0, y0, x1, y1, ok := f.GlyphBox(1)
	if !ok || x0 != 10 || y0 != 0 || x1 != 110 || y1 != 100 {
		t.Errorf("unexpected glyph box (%d %d %d %d %v)", x0, y0, x1, y1, ok)
	}
	if _, _, _, _, ok := f.GlyphBox(0); ok {
		t.Errorf("expected empty .notdef box")
	}
}
