package service

import "errors"

// Sentinel error kinds for the chart service.
var (
	ErrNoSource = errors.New("no dataset source configured")
	ErrUpstream = errors.New("dataset unavailable")
)
