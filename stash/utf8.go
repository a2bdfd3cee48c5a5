package stash

import "unicode/utf8"

const (
	utf8Accept = 0
	utf8Reject = 12
)

// utf8d is Bjoern Hoehrmann's decoder table. The first 256 entries map
// bytes to character classes, the rest is the state transition table.
var utf8d = [...]uint8{
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0, 0,
	1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 1, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9,
	7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7,
	8, 8, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2, 2,
	10, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 3, 4, 3, 3, 11, 6, 6, 6, 5, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8, 8,

	0, 12, 24, 36, 60, 96, 84, 12, 12, 12, 48, 72, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12,
	12, 0, 12, 12, 12, 12, 12, 0, 12, 0, 12, 12, 12, 24, 12, 12, 12, 12, 12, 24, 12, 24, 12, 12,
	12, 12, 12, 12, 12, 12, 12, 24, 12, 12, 12, 12, 12, 24, 12, 12, 12, 12, 12, 12, 12, 24, 12, 12,
	12, 12, 12, 12, 12, 12, 12, 36, 12, 36, 12, 12, 12, 36, 12, 12, 12, 12, 12, 36, 12, 36, 12, 12,
	12, 36, 12, 12, 12, 12, 12, 12, 12, 12, 12, 12,
}

// decodeUTF8 feeds one byte to the decoder. It returns the new state;
// utf8Accept means *cp holds a complete codepoint.
func decodeUTF8(state *uint32, cp *rune, b byte) uint32 {
	class := uint32(utf8d[b])
	if *state != utf8Accept {
		*cp = rune(b&0x3f) | *cp<<6
	} else {
		*cp = rune(0xff>>class) & rune(b)
	}
	*state = uint32(utf8d[256+*state+class])
	return *state
}

// nextRune decodes the codepoint starting at text[i] and returns it with
// the offset just past it. A byte that cannot continue the sequence
// yields utf8.RuneError; the decoder restarts at the following byte, so
// no amount of garbage stops the text.
func nextRune(text string, i int) (rune, int) {
	var state uint32
	var cp rune
	start := i
	for i < len(text) {
		switch decodeUTF8(&state, &cp, text[i]) {
		case utf8Accept:
			return cp, i + 1
		case utf8Reject:
			if i == start {
				return utf8.RuneError, i + 1
			}
			return utf8.RuneError, i
		}
		i++
	}
	return utf8.RuneError, len(text)
}
