package stash

import "math"

// Quad is one glyph rectangle: (X0, Y0)-(X1, Y1) in pixels and
// (S0, T0)-(S1, T1) in normalized texture coordinates.
type Quad struct {
	X0, Y0, S0, T0 float32
	X1, Y1, S1, T1 float32
}

// TextIter walks a string glyph by glyph. It is a plain value: copying it
// saves the position, which is how callers retry a glyph after growing
// the atlas.
type TextIter struct {
	// X, Y is the pen position of the current glyph, NextX, NextY the
	// position after it.
	X, Y         float32
	NextX, NextY float32
	Scale        float32
	Spacing      float32
	// Codepoint is the codepoint of the current glyph.
	Codepoint rune
	// Start and End are the byte offsets of the current codepoint.
	Start, End int
	// PrevGlyphIndex is the glyph index of the last produced glyph, -1
	// if the last step failed or no glyph was produced yet.
	PrevGlyphIndex int

	stash *Stash
	font  *font
	isize int
	iblur int
	text  string
	opt   BitmapOption
	err   error
}

// TextIterInit starts iterating text at (x, y) with the current state.
// Alignment is applied up front.
func (s *Stash) TextIterInit(x, y float32, text string, opt BitmapOption) (TextIter, error) {
	st := s.state()
	f := s.font(st.Font)
	if f == nil {
		return TextIter{}, ErrInvalidFont
	}
	isize := int(st.Size * 10)
	it := TextIter{
		stash:          s,
		font:           f,
		isize:          isize,
		iblur:          int(st.Blur),
		Scale:          float32(f.ttf.ScaleForPixelHeight(float64(isize) / 10)),
		Spacing:        st.Spacing,
		text:           text,
		opt:            opt,
		PrevGlyphIndex: -1,
	}

	switch {
	case st.Align&AlignLeft != 0:
	case st.Align&AlignRight != 0:
		width, _ := s.TextBounds(x, y, text)
		x -= width
	case st.Align&AlignCenter != 0:
		width, _ := s.TextBounds(x, y, text)
		x -= width * 0.5
	}
	y += s.vertAlign(f, st.Align, isize)

	it.X, it.NextX = x, x
	it.Y, it.NextY = y, y
	return it, nil
}

// Next advances to the next codepoint and fills q with its quad. It
// returns false at the end of the text. When Err is non-nil after Next
// returns true, the codepoint was consumed but q is not valid; restore a
// copy of the iterator taken before the call to retry it.
func (it *TextIter) Next(q *Quad) bool {
	it.err = nil
	if it.End >= len(it.text) {
		return false
	}
	it.Start = it.End
	it.Codepoint, it.End = nextRune(it.text, it.Start)

	it.X, it.Y = it.NextX, it.NextY
	g, err := it.stash.getGlyph(it.font, it.Codepoint, it.isize, it.iblur, it.opt)
	if err != nil {
		it.err = err
		it.PrevGlyphIndex = -1
		return true
	}
	it.stash.quad(it.PrevGlyphIndex, &g, it.font, it.Scale, it.Spacing, &it.NextX, &it.NextY, q)
	it.PrevGlyphIndex = g.Index
	return true
}

// Err returns the error of the last Next call.
func (it *TextIter) Err() error { return it.err }

// Text returns the iterated string.
func (it *TextIter) Text() string { return it.text }

// quad positions glyph at the pen, applying kerning against the previous
// glyph, and advances the pen. The texture rectangle is inset by one texel
// so bilinear filtering stays inside the glyph's cleared border.
func (s *Stash) quad(prev int, g *Glyph, f *font, scale, spacing float32, x, y *float32, q *Quad) {
	if prev != -1 {
		adv := float32(f.ttf.GlyphKernAdvance(prev, g.Index)) * scale
		*x += float32(int(adv + spacing + 0.5))
	}

	xoff := float32(g.XOff + 1)
	yoff := float32(g.YOff + 1)
	x0 := float32(g.X0 + 1)
	y0 := float32(g.Y0 + 1)
	x1 := float32(g.X1 - 1)
	y1 := float32(g.Y1 - 1)

	rx := float32(math.Floor(float64(*x + xoff)))
	if s.cfg.Origin == ZeroTopLeft {
		ry := float32(math.Floor(float64(*y + yoff)))
		q.X0, q.Y0 = rx, ry
		q.X1, q.Y1 = rx+x1-x0, ry+y1-y0
	} else {
		ry := float32(math.Floor(float64(*y - yoff)))
		q.X0, q.Y0 = rx, ry
		q.X1, q.Y1 = rx+x1-x0, ry-y1+y0
	}
	q.S0, q.T0 = x0*s.itw, y0*s.ith
	q.S1, q.T1 = x1*s.itw, y1*s.ith

	*x += float32(int(float32(g.XAdv)/10 + 0.5))
}

func (s *Stash) vertAlign(f *font, align Align, isize int) float32 {
	size := float32(isize) / 10
	var v float32
	switch {
	case align&AlignTop != 0:
		v = f.ascender * size
	case align&AlignMiddle != 0:
		v = (f.ascender + f.descender) / 2 * size
	case align&AlignBottom != 0:
		v = f.descender * size
	}
	if s.cfg.Origin == ZeroBottomLeft {
		v = -v
	}
	return v
}
