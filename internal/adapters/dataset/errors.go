package dataset

import "errors"

// Sentinel kinds for dataset errors.
var (
	ErrFetch         = errors.New("dataset fetch failed")
	ErrStatus        = errors.New("unexpected dataset status")
	ErrDecode        = errors.New("dataset decode failed")
	ErrInvalidRecord = errors.New("invalid dataset record")
	ErrEmpty         = errors.New("dataset is empty")
)
