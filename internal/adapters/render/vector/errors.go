package vector

import "errors"

// Sentinel kinds for vector rendering errors.
var (
	ErrNoPanel = errors.New("document has no chart panel")
	ErrMinify  = errors.New("minify failed")
)
