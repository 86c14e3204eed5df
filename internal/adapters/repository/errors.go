package repository

import "errors"

// Sentinel kinds for snapshot errors.
var (
	ErrNotFound      = errors.New("snapshot not found")
	ErrEmptySnapshot = errors.New("snapshot has no records")
)
