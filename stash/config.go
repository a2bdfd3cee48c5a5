package stash

import "github.com/lain-dono/reui/truetype"

// Origin selects the direction of the y axis for generated quads.
type Origin uint8

const (
	// ZeroTopLeft puts y=0 at the top; y grows downwards.
	ZeroTopLeft Origin = iota
	// ZeroBottomLeft puts y=0 at the bottom; y grows upwards.
	ZeroBottomLeft
)

// String returns the name of the origin.
func (o Origin) String() string {
	switch o {
	case ZeroTopLeft:
		return "ZeroTopLeft"
	case ZeroBottomLeft:
		return "ZeroBottomLeft"
	default:
		return "Unknown"
	}
}

// Atlas dimension limits.
const (
	MinAtlasSize = 2
	MaxAtlasSize = 16384
)

// Config holds Stash configuration.
type Config struct {
	// Width and Height are the initial atlas texture size in texels.
	// Default: 512x512
	Width, Height int

	// Origin is the y axis convention of generated quads.
	// Default: ZeroTopLeft
	Origin Origin

	// ScratchSize is the working-memory budget of one glyph build in
	// bytes; 0 means unlimited.
	// Default: truetype.DefaultScratchSize
	ScratchSize int
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Width:       512,
		Height:      512,
		Origin:      ZeroTopLeft,
		ScratchSize: truetype.DefaultScratchSize,
	}
}

// Validate checks if the configuration is valid.
func (c *Config) Validate() error {
	if err := validateSize(c.Width, c.Height); err != nil {
		return err
	}
	if c.Origin > ZeroBottomLeft {
		return &ConfigError{Field: "Origin", Reason: "unknown origin"}
	}
	if c.ScratchSize < 0 {
		return &ConfigError{Field: "ScratchSize", Reason: "must be non-negative"}
	}
	return nil
}

// validateSize checks atlas dimensions for New, ResetAtlas and ExpandAtlas.
func validateSize(width, height int) error {
	if width < MinAtlasSize || height < MinAtlasSize {
		return &ConfigError{Field: "Width/Height", Reason: "must be at least 2"}
	}
	if width > MaxAtlasSize || height > MaxAtlasSize {
		return &ConfigError{Field: "Width/Height", Reason: "must be at most 16384"}
	}
	return nil
}
