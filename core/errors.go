package core

import "errors"

// ErrInvalidDims is returned when a volume has a non-positive dimension.
var ErrInvalidDims = errors.New("volume dimensions must be positive")
