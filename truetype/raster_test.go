package truetype

import (
	"errors"
	"image"
	"math/rand/v2"
	"testing"

	"golang.org/x/image/vector"

	"github.com/lain-dono/reui/internal/ttfbuild"
)

func tenSquareFont(t *testing.T) *Font {
	t.Helper()
	return mustParse(t, &ttfbuild.Font{
		UnitsPerEm: 10,
		Ascent:     10,
		Glyphs: []ttfbuild.Glyph{
			{Advance: 10},
			{Advance: 12, Contours: [][]ttfbuild.Point{ttfbuild.Square(0, 0, 10)}},
		},
		Cmap: map[rune]uint16{'#': 1},
	})
}

func TestGlyphBitmapSquare(t *testing.T) {
	f := tenSquareFont(t)
	bm, xoff, yoff, err := f.GlyphBitmap(1, 1, 1)
	if err != nil {
		t.Fatalf("GlyphBitmap failed: %v", err)
	}
	if bm.W != 10 || bm.H != 10 {
		t.Fatalf("expected 10x10 bitmap, got %dx%d", bm.W, bm.H)
	}
	if xoff != 0 || yoff != -10 {
		t.Errorf("expected offset (0, -10), got (%d, %d)", xoff, yoff)
	}
	for y := range bm.H {
		for x := range bm.W {
			if v := bm.Pix[y*bm.Stride+x]; v < 254 {
				t.Fatalf("pixel (%d, %d): expected full coverage, got %d", x, y, v)
			}
		}
	}
}

func TestGlyphBitmapHalfPixelShift(t *testing.T) {
	f := tenSquareFont(t)
	x0, y0, x1, y1 := f.GlyphBitmapBoxSubpixel(1, 1, 1, 0.5, 0)
	if x0 != 0 || x1 != 11 || y0 != -10 || y1 != 0 {
		t.Fatalf("unexpected box (%d %d %d %d)", x0, y0, x1, y1)
	}
	w, h := x1-x0, y1-y0
	pix := make([]byte, w*h)
	if err := f.MakeGlyphBitmapSubpixel(pix, w, h, w, 1, 1, 0.5, 0, 1, nil); err != nil {
		t.Fatalf("MakeGlyphBitmapSubpixel failed: %v", err)
	}
	for y := range h {
		row := pix[y*w : (y+1)*w]
		for _, x := range []int{0, w - 1} {
			if v := row[x]; v < 126 || v > 129 {
				t.Errorf("row %d column %d: expected half coverage, got %d", y, x, v)
			}
		}
		for x := 1; x < w-1; x++ {
			if row[x] < 254 {
				t.Errorf("row %d column %d: expected full coverage, got %d", y, x, row[x])
			}
		}
	}
}

// referenceCoverage renders the same outline with x/image/vector.
func referenceCoverage(verts []Vertex, scale float32, x0, y0, w, h int) *image.Alpha {
	z := vector.NewRasterizer(w, h)
	tr := func(x, y int32) (float32, float32) {
		return float32(x)*scale - float32(x0), -float32(y)*scale - float32(y0)
	}
	open := false
	for _, v := range verts {
		px, py := tr(v.X, v.Y)
		switch v.Kind {
		case VMove:
			if open {
				z.ClosePath()
			}
			z.MoveTo(px, py)
			open = true
		case VLine:
			z.LineTo(px, py)
		case VCurve:
			cx, cy := tr(v.CX, v.CY)
			z.QuadTo(cx, cy, px, py)
		}
	}
	if open {
		z.ClosePath()
	}
	dst := image.NewAlpha(image.Rect(0, 0, w, h))
	z.Draw(dst, dst.Bounds(), image.Opaque, image.Point{})
	return dst
}

func TestRasterizeMatchesVector(t *testing.T) {
	f := parseGoRegular(t)
	scale := f.ScaleForPixelHeight(48)
	for _, r := range "ag@%&Ωé" {
		g := f.GlyphIndex(r)
		verts, err := f.GlyphShape(g)
		if err != nil {
			t.Fatalf("GlyphShape(%q): %v", r, err)
		}
		x0, y0, x1, y1 := f.GlyphBitmapBox(g, scale, scale)
		w, h := x1-x0, y1-y0
		pix := make([]byte, w*h)
		if err := f.MakeGlyphBitmap(pix, w, h, w, scale, scale, g, NewScratch(DefaultScratchSize)); err != nil {
			t.Fatalf("MakeGlyphBitmap(%q): %v", r, err)
		}
		ref := referenceCoverage(verts, float32(scale), x0, y0, w, h)

		var sum, worst int
		for i := range pix {
			d := int(pix[i]) - int(ref.Pix[i])
			if d < 0 {
				d = -d
			}
			sum += d
			worst = max(worst, d)
		}
		if mean := float64(sum) / float64(len(pix)); mean > 3 {
			t.Errorf("%q: mean coverage difference %.2f too large", r, mean)
		}
		if worst > 80 {
			t.Errorf("%q: worst coverage difference %d too large", r, worst)
		}
	}
}

func TestScratchExhausted(t *testing.T) {
	f := parseGoRegular(t)
	g := f.GlyphIndex('@')
	scale := f.ScaleForPixelHeight(64)
	x0, y0, x1, y1 := f.GlyphBitmapBox(g, scale, scale)
	w, h := x1-x0, y1-y0
	pix := make([]byte, w*h)

	s := NewScratch(256)
	if err := f.MakeGlyphBitmap(pix, w, h, w, scale, scale, g, s); !errors.Is(err, ErrScratchFull) {
		t.Fatalf("expected ErrScratchFull, got %v", err)
	}

	s = NewScratch(DefaultScratchSize)
	if err := f.MakeGlyphBitmap(pix, w, h, w, scale, scale, g, s); err != nil {
		t.Fatalf("expected success with the default budget, got %v", err)
	}
	if s.Used() == 0 || s.Used() > s.Limit() {
		t.Errorf("expected usage within (0, %d], got %d", s.Limit(), s.Used())
	}
}

func TestGlyphBitmapEmpty(t *testing.T) {
	f := parseGoRegular(t)
	bm, _, _, err := f.GlyphBitmap(0.05, 0, f.GlyphIndex(' '))
	if err != nil {
		t.Fatalf("GlyphBitmap(space) failed: %v", err)
	}
	if bm.W != 0 || bm.H != 0 || bm.Pix != nil {
		t.Errorf("expected empty bitmap for space, got %dx%d", bm.W, bm.H)
	}
}

func TestSortEdges(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for _, n := range []int{0, 1, 2, 11, 12, 13, 200, 1000} {
		edges := make([]edge, n)
		counts := map[float32]int{}
		for i := range edges {
			// Few distinct values so duplicates are common.
			y := float32(rng.IntN(16))
			edges[i] = edge{y0: y, x0: float32(i)}
			counts[y]++
		}
		sortEdges(edges)
		for i := 1; i < n; i++ {
			if edges[i-1].y0 > edges[i].y0 {
				t.Fatalf("n=%d: edges %d and %d out of order (%v > %v)", n, i-1, i, edges[i-1].y0, edges[i].y0)
			}
		}
		for _, e := range edges {
			counts[e.y0]--
		}
		for y, c := range counts {
			if c != 0 {
				t.Errorf("n=%d: y0 %v count changed by %d", n, y, -c)
			}
		}
	}
}
