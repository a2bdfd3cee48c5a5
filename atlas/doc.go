// Package atlas implements a skyline rectangle packer for glyph atlases.
//
// The packer tracks the upper silhouette of everything placed so far as a
// list of horizontal spans ordered by x. A new rectangle is placed on the
// span that keeps the silhouette lowest, breaking ties by the narrowest
// span, which packs glyphs of mixed heights tightly without fragmenting
// free space into holes.
//
// The packer never evicts: when AddRect reports no space, the owner decides
// whether to grow the atlas with Expand or start over with Reset.
package atlas
