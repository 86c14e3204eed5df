package config

import "errors"

// Sentinel error kinds for this package. These allow errors.Is/As from callers.
var (
	ErrInvalidConfig = errors.New("invalid config")
	ErrLoadConfig    = errors.New("load config failed")
	// ErrConfigFile marks a TOURPLOT_CONFIG file that could not be read or
	// parsed. It is always wrapped together with ErrLoadConfig.
	ErrConfigFile = errors.New("config file unusable")
)
