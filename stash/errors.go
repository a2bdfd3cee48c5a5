package stash

import "errors"

// Sentinel errors for the stash package.
var (
	// ErrAtlasFull is returned when a glyph bitmap does not fit in the
	// atlas. The caller should grow or reset the atlas and retry.
	ErrAtlasFull = errors.New("stash: atlas is full")

	// ErrInvalidFont is returned for an unknown font handle or font data
	// that could not be parsed.
	ErrInvalidFont = errors.New("stash: invalid font")

	// ErrTooManyFallbacks is returned when a font already has the maximum
	// number of fallback fonts.
	ErrTooManyFallbacks = errors.New("stash: too many fallback fonts")

	// ErrStateOverflow is returned by PushState when the state stack is full.
	ErrStateOverflow = errors.New("stash: state stack overflow")

	// ErrStateUnderflow is returned by PopState on the last state.
	ErrStateUnderflow = errors.New("stash: state stack underflow")

	// ErrSizeTooSmall is returned for glyph requests below 0.2 pixels.
	ErrSizeTooSmall = errors.New("stash: font size too small")

	// ErrUnsupportedTexture is returned by Upload when the texture accepts
	// neither partial nor full updates.
	ErrUnsupportedTexture = errors.New("stash: texture does not accept updates")
)

// ConfigError reports an invalid Config field.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return "stash: invalid config." + e.Field + ": " + e.Reason
}
