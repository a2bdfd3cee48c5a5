package stash

// TextRow is one line produced by BreakLines. Start and End are byte
// offsets of the visible text; Next is where the following row starts,
// after any skipped white space or newline.
type TextRow struct {
	Start, End, Next int
	// Width is the logical width of the row; MinX and MaxX bound the
	// glyphs relative to the row start.
	Width      float32
	MinX, MaxX float32
}

type codepointType uint8

const (
	cpSpace codepointType = iota
	cpNewline
	cpChar
	cpCJK
)

func isCJK(r rune) bool {
	return (r >= 0x4E00 && r <= 0x9FFF) ||
		(r >= 0x3000 && r <= 0x30FF) ||
		(r >= 0xFF00 && r <= 0xFFEF) ||
		(r >= 0x1100 && r <= 0x11FF) ||
		(r >= 0x3130 && r <= 0x318F) ||
		(r >= 0xAC00 && r <= 0xD7AF)
}

func classify(r, prev rune) codepointType {
	switch r {
	case '\t', '\v', '\f', ' ', 0x00a0:
		return cpSpace
	case '\n':
		if prev == '\r' {
			return cpSpace
		}
		return cpNewline
	case '\r':
		if prev == '\n' {
			return cpSpace
		}
		return cpNewline
	case 0x0085:
		return cpNewline
	}
	if isCJK(r) {
		return cpCJK
	}
	return cpChar
}

// BreakLines splits text into rows no wider than breakRowWidth pixels with
// the current state. Rows break after the last complete word that fits;
// a word wider than a whole row is split between characters. Every CJK
// character is its own word. Newlines always end a row.
func (s *Stash) BreakLines(text string, breakRowWidth float32) ([]TextRow, error) {
	if text == "" {
		return nil, nil
	}
	it, err := s.TextIterInit(0, 0, text, BitmapOptional)
	if err != nil {
		return nil, err
	}

	var (
		rows       []TextRow
		rowStartX  float32
		rowWidth   float32
		rowMinX    float32
		rowMaxX    float32
		wordStart  int
		wordStartX float32
		wordMinX   float32
		breakEnd   int
		breakWidth float32
		breakMaxX  float32
		typ        codepointType
		ptyp       codepointType
		pcp        rune
		q          Quad
	)
	rowStart, rowEnd := -1, -1
	isChar := func(t codepointType) bool { return t == cpChar || t == cpCJK }

	for it.Next(&q) {
		if it.Err() != nil {
			// Without metrics the codepoint takes no space.
			q = Quad{X0: it.X, X1: it.X}
			it.NextX = it.X
		}
		typ = classify(it.Codepoint, pcp)

		switch {
		case typ == cpNewline:
			row := TextRow{Start: it.Start, End: it.Start, Next: it.End}
			if rowStart >= 0 {
				row.Start, row.End = rowStart, rowEnd
				row.Width, row.MinX, row.MaxX = rowWidth, rowMinX, rowMaxX
			}
			rows = append(rows, row)
			breakEnd = rowStart
			breakWidth, breakMaxX = 0, 0
			rowStart, rowEnd = -1, -1
			rowWidth, rowMinX, rowMaxX = 0, 0, 0

		case rowStart < 0:
			// Leading white space is skipped.
			if isChar(typ) {
				rowStartX = it.X
				rowStart, rowEnd = it.Start, it.End
				rowWidth = it.NextX - rowStartX
				rowMinX = q.X0 - rowStartX
				rowMaxX = q.X1 - rowStartX
				wordStart, wordStartX, wordMinX = it.Start, it.X, q.X0
				breakEnd = rowStart
				breakWidth, breakMaxX = 0, 0
			}

		default:
			nextWidth := it.NextX - rowStartX
			// End of a word. The break goes before this codepoint, so
			// its extent is the row so far.
			if (isChar(ptyp) && typ == cpSpace) || typ == cpCJK {
				breakEnd = it.Start
				breakWidth = rowWidth
				breakMaxX = rowMaxX
			}
			// Start of a word.
			if (ptyp == cpSpace && isChar(typ)) || typ == cpCJK {
				wordStart, wordStartX, wordMinX = it.Start, it.X, q.X0
			}

			// The row extent only grows once this codepoint is known to
			// stay on the row.
			if isChar(typ) && nextWidth > breakRowWidth {
				if breakEnd == rowStart {
					// The word alone is wider than the row: split it here.
					rows = append(rows, TextRow{
						Start: rowStart, End: it.Start, Next: it.Start,
						Width: rowWidth, MinX: rowMinX, MaxX: rowMaxX,
					})
					rowStartX = it.X
					rowStart, rowEnd = it.Start, it.End
					rowWidth = it.NextX - rowStartX
					rowMinX = q.X0 - rowStartX
					rowMaxX = q.X1 - rowStartX
					wordStart, wordStartX, wordMinX = it.Start, it.X, q.X0
				} else {
					rows = append(rows, TextRow{
						Start: rowStart, End: breakEnd, Next: wordStart,
						Width: breakWidth, MinX: rowMinX, MaxX: breakMaxX,
					})
					rowStartX = wordStartX
					rowStart, rowEnd = wordStart, it.End
					rowWidth = it.NextX - rowStartX
					rowMinX = wordMinX - rowStartX
					rowMaxX = q.X1 - rowStartX
				}
				breakEnd = rowStart
				breakWidth, breakMaxX = 0, 0
			} else if isChar(typ) {
				rowEnd = it.End
				rowWidth = nextWidth
				rowMaxX = q.X1 - rowStartX
			}
		}

		pcp = it.Codepoint
		ptyp = typ
	}

	if rowStart >= 0 {
		rows = append(rows, TextRow{
			Start: rowStart, End: rowEnd, Next: len(text),
			Width: rowWidth, MinX: rowMinX, MaxX: rowMaxX,
		})
	}
	return rows, nil
}
