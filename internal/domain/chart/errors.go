package chart

import "errors"

// Sentinel kinds for chart building errors.
var (
	ErrEmptyDataset = errors.New("dataset has no records")
	ErrInvalidMark  = errors.New("node is not a data mark")
)
