package tess

import "errors"

// ErrInvalidOptions is returned by Options.Validate and New.
var ErrInvalidOptions = errors.New("tess: invalid options")
