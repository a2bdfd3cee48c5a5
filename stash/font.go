package stash

import (
	"fmt"

	"github.com/lain-dono/reui"
	"github.com/lain-dono/reui/truetype"
)

// Invalid is the font handle returned when a font cannot be added.
const Invalid = -1

const (
	hashLUTSize  = 256
	maxFallbacks = 20
)

type font struct {
	name string
	ttf  *truetype.Font

	// Vertical metrics normalized by ascent-descent.
	ascender  float32
	descender float32
	lineh     float32

	glyphs    []Glyph
	lut       [hashLUTSize]int
	fallbacks []int
}

func (f *font) resetGlyphs() {
	f.glyphs = f.glyphs[:0]
	for i := range f.lut {
		f.lut[i] = -1
	}
}

// AddFont parses a TrueType font and registers it under name. The data is
// retained and must not be modified afterwards. On failure the handle is
// Invalid and no font is registered.
func (s *Stash) AddFont(name string, data []byte) (int, error) {
	ttf, err := truetype.Parse(data)
	if err != nil {
		return Invalid, fmt.Errorf("%w %q: %w", ErrInvalidFont, name, err)
	}
	ascent, descent, lineGap := ttf.VMetrics()
	fh := float32(ascent - descent)
	if fh <= 0 {
		return Invalid, fmt.Errorf("%w %q: zero line height", ErrInvalidFont, name)
	}

	f := &font{
		name:      name,
		ttf:       ttf,
		ascender:  float32(ascent) / fh,
		descender: float32(descent) / fh,
		lineh:     (fh + float32(lineGap)) / fh,
	}
	f.resetGlyphs()
	s.fonts = append(s.fonts, f)
	reui.Logger().Debug("stash: font added", "name", name, "handle", len(s.fonts)-1, "glyphs", ttf.NumGlyphs())
	return len(s.fonts) - 1, nil
}

// FontByName returns the handle of the first font registered under name,
// or Invalid.
func (s *Stash) FontByName(name string) int {
	for i, f := range s.fonts {
		if f.name == name {
			return i
		}
	}
	return Invalid
}

// NumFonts returns the number of registered fonts.
func (s *Stash) NumFonts() int { return len(s.fonts) }

// Font returns the parsed font behind a handle, or nil.
func (s *Stash) Font(handle int) *truetype.Font {
	if f := s.font(handle); f != nil {
		return f.ttf
	}
	return nil
}

func (s *Stash) font(handle int) *font {
	if handle < 0 || handle >= len(s.fonts) {
		return nil
	}
	return s.fonts[handle]
}

// AddFallback makes fallback the next font consulted when base has no
// glyph for a codepoint. Fallbacks are tried in the order they were added.
func (s *Stash) AddFallback(base, fallback int) error {
	b := s.font(base)
	if b == nil || s.font(fallback) == nil {
		return fmt.Errorf("%w: fallback %d for %d", ErrInvalidFont, fallback, base)
	}
	if len(b.fallbacks) >= maxFallbacks {
		return ErrTooManyFallbacks
	}
	b.fallbacks = append(b.fallbacks, fallback)
	return nil
}

// ResetFallback removes all fallbacks of base and drops its cached glyphs,
// since they may have been rendered by a fallback font.
func (s *Stash) ResetFallback(base int) error {
	b := s.font(base)
	if b == nil {
		return fmt.Errorf("%w: %d", ErrInvalidFont, base)
	}
	b.fallbacks = b.fallbacks[:0]
	b.resetGlyphs()
	return nil
}
