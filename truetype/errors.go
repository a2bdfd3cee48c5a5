package truetype

import (
	"errors"
	"fmt"
)

// Sentinel errors for the truetype package.
var (
	// ErrNotFont is returned when the data does not start with a known
	// sfnt version tag.
	ErrNotFont = errors.New("truetype: data is not a TrueType font")

	// ErrMissingTable is returned when a required table is absent.
	ErrMissingTable = errors.New("truetype: missing required table")

	// ErrUnsupportedCmap is returned when the selected cmap subtable uses
	// a format this package does not decode (format 2 and unknown formats).
	ErrUnsupportedCmap = errors.New("truetype: unsupported cmap format")

	// ErrNoCmap is returned when no cmap subtable maps Unicode or Mac Roman.
	ErrNoCmap = errors.New("truetype: no usable cmap subtable")

	// ErrMalformed is returned when a table or glyph runs past its bounds.
	ErrMalformed = errors.New("truetype: malformed font data")

	// ErrScratchFull is returned when a glyph needs more working memory
	// than its Scratch arena allows.
	ErrScratchFull = errors.New("truetype: scratch arena exhausted")
)

// TableError reports a required table that is missing from the font.
type TableError struct {
	Tag string
}

func (e *TableError) Error() string {
	return fmt.Sprintf("truetype: missing required table %q", e.Tag)
}

// Unwrap makes errors.Is(err, ErrMissingTable) hold.
func (e *TableError) Unwrap() error {
	return ErrMissingTable
}
