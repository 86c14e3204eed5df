package raster

import "errors"

// Sentinel kinds for raster rendering errors.
var (
	ErrNoPanel     = errors.New("document has no chart panel")
	ErrInvalidSize = errors.New("invalid panel size")
)
