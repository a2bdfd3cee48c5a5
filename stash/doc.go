// Package stash maintains a glyph atlas: it rasterizes TrueType glyphs on
// demand into a single 8-bit coverage texture, caches them by codepoint,
// size and blur, and lays out text as textured quads.
//
// A Stash owns its texture and skyline allocator and is not safe for
// concurrent use. Separate Stash values share nothing and may be used from
// different goroutines.
//
// Atlas exhaustion is reported, never handled internally. When GetGlyph,
// DrawText or a TextIter reports ErrAtlasFull, the caller flushes whatever
// it has drawn, calls ExpandAtlas or ResetAtlas, and retries:
//
//	it, _ := s.TextIterInit(x, y, text, stash.BitmapRequired)
//	prev := it
//	var q stash.Quad
//	for it.Next(&q) {
//		if errors.Is(it.Err(), stash.ErrAtlasFull) {
//			flush()
//			s.ExpandAtlas(w*2, h*2)
//			it = prev
//			if !it.Next(&q) || it.Err() != nil {
//				break
//			}
//		}
//		emit(q)
//		prev = it
//	}
package stash
