package stash

// DrawText appends the quads of text drawn at (x, y) with the current
// state and returns the pen position after the last glyph. When the atlas
// fills up it returns the quads produced so far together with
// ErrAtlasFull; the caller can grow the atlas and draw the rest.
func (s *Stash) DrawText(dst []Quad, x, y float32, text string) ([]Quad, float32, error) {
	it, err := s.TextIterInit(x, y, text, BitmapRequired)
	if err != nil {
		return dst, x, err
	}
	var q Quad
	for it.Next(&q) {
		if err := it.Err(); err != nil {
			return dst, it.X, err
		}
		dst = append(dst, q)
	}
	return dst, it.NextX, nil
}

// Bounds is an axis-aligned box in pixels.
type Bounds struct {
	MinX, MinY, MaxX, MaxY float32
}

// TextBounds measures text drawn at (x, y) with the current state. It
// returns the horizontal advance and the box covering every glyph quad.
// No bitmaps are rendered.
func (s *Stash) TextBounds(x, y float32, text string) (float32, Bounds) {
	st := s.state()
	f := s.font(st.Font)
	if f == nil {
		return 0, Bounds{}
	}
	isize := int(st.Size * 10)
	iblur := int(st.Blur)
	scale := float32(f.ttf.ScaleForPixelHeight(float64(isize) / 10))

	y += s.vertAlign(f, st.Align, isize)
	b := Bounds{MinX: x, MinY: y, MaxX: x, MaxY: y}
	startX := x
	prev := -1
	var q Quad
	for i := 0; i < len(text); {
		var r rune
		r, i = nextRune(text, i)
		g, err := s.getGlyph(f, r, isize, iblur, BitmapOptional)
		if err != nil {
			prev = -1
			continue
		}
		s.quad(prev, &g, f, scale, st.Spacing, &x, &y, &q)
		b.MinX = min(b.MinX, q.X0)
		b.MaxX = max(b.MaxX, q.X1)
		if s.cfg.Origin == ZeroTopLeft {
			b.MinY = min(b.MinY, q.Y0)
			b.MaxY = max(b.MaxY, q.Y1)
		} else {
			b.MinY = min(b.MinY, q.Y1)
			b.MaxY = max(b.MaxY, q.Y0)
		}
		prev = g.Index
	}

	advance := x - startX
	switch {
	case st.Align&AlignLeft != 0:
	case st.Align&AlignRight != 0:
		b.MinX -= advance
		b.MaxX -= advance
	case st.Align&AlignCenter != 0:
		b.MinX -= advance * 0.5
		b.MaxX -= advance * 0.5
	}
	return advance, b
}

// LineBounds returns the vertical extent of a line whose baseline, before
// alignment, is at y.
func (s *Stash) LineBounds(y float32) (minY, maxY float32) {
	st := s.state()
	f := s.font(st.Font)
	if f == nil {
		return 0, 0
	}
	isize := int(st.Size * 10)
	size := float32(isize) / 10
	y += s.vertAlign(f, st.Align, isize)
	if s.cfg.Origin == ZeroTopLeft {
		minY = y - f.ascender*size
		return minY, minY + f.lineh*size
	}
	maxY = y + f.descender*size
	return maxY - f.lineh*size, maxY
}

// VertMetrics returns the ascender, descender and line height of the
// current font at the current size, in pixels.
func (s *Stash) VertMetrics() (ascender, descender, lineh float32) {
	st := s.state()
	f := s.font(st.Font)
	if f == nil {
		return 0, 0, 0
	}
	size := float32(int(st.Size*10)) / 10
	return f.ascender * size, f.descender * size, f.lineh * size
}

// GlyphPosition is the horizontal extent of one codepoint.
type GlyphPosition struct {
	// Start is the byte offset of the codepoint in the text.
	Start int
	// X is the pen position; MinX and MaxX bound the glyph, including
	// its advance.
	X, MinX, MaxX float32
}

// GlyphPositions appends the position of every codepoint of text drawn
// at (x, y) to dst. It is meant for caret placement and hit testing.
func (s *Stash) GlyphPositions(dst []GlyphPosition, x, y float32, text string) ([]GlyphPosition, error) {
	it, err := s.TextIterInit(x, y, text, BitmapOptional)
	if err != nil {
		return dst, err
	}
	prev := it
	var q Quad
	for it.Next(&q) {
		if it.Err() != nil {
			// Metrics never need atlas space; keep the pen where it was.
			it.NextX, it.NextY = prev.NextX, prev.NextY
			q = Quad{X0: it.X, X1: it.X}
		}
		dst = append(dst, GlyphPosition{
			Start: it.Start,
			X:     it.X,
			MinX:  min(it.X, q.X0),
			MaxX:  max(it.NextX, q.X1),
		})
		prev = it
	}
	return dst, nil
}
