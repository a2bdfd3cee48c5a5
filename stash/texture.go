package stash

import (
	"fmt"

	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// TextureFormat is the format of the atlas texture: one 8-bit coverage
// channel per texel.
const TextureFormat = gputypes.TextureFormatR8Unorm

// RegionUpdater is implemented by textures that accept partial uploads.
// data holds size.Height rows of bytesPerRow bytes each.
type RegionUpdater interface {
	UpdateRegion(origin gputypes.Origin3D, size gputypes.Extent3D, data []byte, bytesPerRow uint32) error
}

// TextureData returns the atlas texels, row-major with a stride equal to
// the width. The slice is owned by the Stash and is replaced when the
// atlas is reset or expanded.
func (s *Stash) TextureData() (data []byte, width, height int) {
	return s.tex, s.width, s.height
}

// DirtyRegion returns the texel rectangle changed since the last
// successful Upload or MarkClean. ok is false when nothing changed.
func (s *Stash) DirtyRegion() (origin gputypes.Origin3D, size gputypes.Extent3D, ok bool) {
	d := s.dirty
	if d[0] >= d[2] || d[1] >= d[3] {
		return origin, size, false
	}
	origin = gputypes.Origin3D{X: uint32(d[0]), Y: uint32(d[1]), Z: 0}
	size = gputypes.Extent3D{
		Width:              uint32(d[2] - d[0]),
		Height:             uint32(d[3] - d[1]),
		DepthOrArrayLayers: 1,
	}
	return origin, size, true
}

// MarkClean forgets the dirty region, for callers that upload
// TextureData themselves.
func (s *Stash) MarkClean() {
	s.dirty = [4]int{s.width, s.height, 0, 0}
}

// Upload copies the dirty part of the atlas to texture. Textures that
// implement RegionUpdater receive only the dirty rectangle; textures that
// implement gpucontext.TextureUpdater receive the whole atlas. The dirty
// region is cleared on success.
func (s *Stash) Upload(texture any) error {
	origin, size, ok := s.DirtyRegion()
	if !ok {
		return nil
	}

	switch t := texture.(type) {
	case RegionUpdater:
		w, h := int(size.Width), int(size.Height)
		x0, y0 := int(origin.X), int(origin.Y)
		buf := make([]byte, w*h)
		for y := range h {
			src := (y0+y)*s.width + x0
			copy(buf[y*w:(y+1)*w], s.tex[src:src+w])
		}
		if err := t.UpdateRegion(origin, size, buf, uint32(w)); err != nil {
			return fmt.Errorf("stash: region upload failed: %w", err)
		}
	case gpucontext.TextureUpdater:
		if err := t.UpdateData(s.tex); err != nil {
			return fmt.Errorf("stash: texture upload failed: %w", err)
		}
	default:
		return ErrUnsupportedTexture
	}
	s.MarkClean()
	return nil
}
