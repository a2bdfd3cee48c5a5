package stash

import (
	"github.com/lain-dono/reui"
	"github.com/lain-dono/reui/atlas"
	"github.com/lain-dono/reui/truetype"
)

// Stash is a glyph atlas together with the fonts rendered into it.
type Stash struct {
	cfg Config

	width, height int
	itw, ith      float32
	tex           []byte
	// dirty is the texel rectangle changed since the last flush, as
	// x0, y0, x1, y1. It is empty when x0 >= x1.
	dirty [4]int

	atlas   *atlas.Atlas
	fonts   []*font
	scratch *truetype.Scratch

	states  [maxStates]State
	nstates int
}

// New creates a Stash with an empty atlas of cfg.Width x cfg.Height.
func New(cfg Config) (*Stash, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	a, err := atlas.New(cfg.Width, cfg.Height)
	if err != nil {
		return nil, err
	}
	s := &Stash{
		cfg:     cfg,
		atlas:   a,
		scratch: truetype.NewScratch(cfg.ScratchSize),
	}
	s.resize(cfg.Width, cfg.Height)
	s.addWhiteRect(2, 2)

	s.nstates = 1
	s.ClearState()
	return s, nil
}

// Config returns the configuration the Stash was created with. Width and
// Height reflect the creation size, not later growth.
func (s *Stash) Config() Config { return s.cfg }

func (s *Stash) resize(width, height int) {
	s.width, s.height = width, height
	s.itw = 1 / float32(width)
	s.ith = 1 / float32(height)
	s.tex = make([]byte, width*height)
	s.dirty = [4]int{width, height, 0, 0}
}

// addWhiteRect reserves a solid block for untextured drawing.
func (s *Stash) addWhiteRect(w, h int) {
	gx, gy, ok := s.atlas.AddRect(w, h)
	if !ok {
		return
	}
	for y := gy; y < gy+h; y++ {
		row := s.tex[y*s.width+gx : y*s.width+gx+w]
		for i := range row {
			row[i] = 0xff
		}
	}
	s.markDirty(gx, gy, gx+w, gy+h)
}

func (s *Stash) markDirty(x0, y0, x1, y1 int) {
	s.dirty[0] = min(s.dirty[0], x0)
	s.dirty[1] = min(s.dirty[1], y0)
	s.dirty[2] = max(s.dirty[2], x1)
	s.dirty[3] = max(s.dirty[3], y1)
}

// AtlasSize returns the current atlas texture size.
func (s *Stash) AtlasSize() (width, height int) {
	return s.width, s.height
}

// ResetAtlas drops every cached glyph and starts over with an empty
// texture of the given size. Glyph bitmaps are re-rasterized on demand.
func (s *Stash) ResetAtlas(width, height int) error {
	if err := validateSize(width, height); err != nil {
		return err
	}
	s.atlas.Reset(width, height)
	s.resize(width, height)
	for _, f := range s.fonts {
		f.resetGlyphs()
	}
	s.addWhiteRect(2, 2)
	reui.Logger().Debug("stash: atlas reset", "width", width, "height", height)
	return nil
}

// ExpandAtlas grows the texture to at least width x height, keeping every
// cached glyph where it is. The whole used area is marked dirty. It never
// shrinks the atlas.
//
// Texture coordinates are normalized to the atlas size, so quads produced
// before the expansion are stale: re-run the layout that produced them.
func (s *Stash) ExpandAtlas(width, height int) error {
	width = max(width, s.width)
	height = max(height, s.height)
	if width == s.width && height == s.height {
		return nil
	}
	if err := validateSize(width, height); err != nil {
		return err
	}

	data := make([]byte, width*height)
	for y := range s.height {
		copy(data[y*width:y*width+s.width], s.tex[y*s.width:(y+1)*s.width])
	}
	oldW := s.width
	s.atlas.Expand(width, height)

	maxY := 0
	for _, n := range s.atlas.Nodes() {
		maxY = max(maxY, n.Y)
	}

	s.width, s.height = width, height
	s.itw = 1 / float32(width)
	s.ith = 1 / float32(height)
	s.tex = data
	s.dirty = [4]int{0, 0, oldW, maxY}
	reui.Logger().Debug("stash: atlas expanded", "width", width, "height", height)
	return nil
}
