package stash

import (
	"strings"
	"testing"
)

const benchText = "The quick brown fox jumps over the lazy dog. 0123456789"

func BenchmarkDrawText(b *testing.B) {
	s := sansStash(b, 512, 512, 18)
	// Warm the glyph cache so the loop measures layout only.
	if _, _, err := s.DrawText(nil, 0, 20, benchText); err != nil {
		b.Fatal(err)
	}
	var quads []Quad
	b.ReportAllocs()
	for b.Loop() {
		quads, _, _ = s.DrawText(quads[:0], 0, 20, benchText)
	}
}

func BenchmarkGlyphRasterize(b *testing.B) {
	sizes := []struct {
		name string
		size float32
	}{
		{"12px", 12},
		{"32px", 32},
		{"96px", 96},
	}
	for _, sz := range sizes {
		b.Run(sz.name, func(b *testing.B) {
			s := sansStash(b, 2048, 2048, sz.size)
			b.ReportAllocs()
			for b.Loop() {
				if err := s.ResetAtlas(2048, 2048); err != nil {
					b.Fatal(err)
				}
				if _, err := s.GetGlyph(s.State().Font, 'g', sz.size, 0, BitmapRequired); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}

func BenchmarkBreakLines(b *testing.B) {
	s := sansStash(b, 512, 512, 14)
	text := strings.Repeat(benchText+" ", 20)
	b.ReportAllocs()
	for b.Loop() {
		if _, err := s.BreakLines(text, 300); err != nil {
			b.Fatal(err)
		}
	}
}
