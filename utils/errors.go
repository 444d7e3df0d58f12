package utils

import "errors"

var (
	// ErrShapeMismatch is returned when field extents disagree with the grid
	ErrShapeMismatch = errors.New("field shape mismatch")
	// ErrBadDimensions is returned for nx, ny or layers below one
	ErrBadDimensions = errors.New("invalid grid dimensions")
)
