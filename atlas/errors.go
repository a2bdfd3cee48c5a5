package atlas

import "errors"

// ErrInvalidSize is returned when an atlas dimension is not positive.
var ErrInvalidSize = errors.New("atlas: width and height must be positive")
