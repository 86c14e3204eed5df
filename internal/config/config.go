// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Durations are configured in milliseconds and exposed as time.Duration helpers.
// - Provide New(ctx) to build a Config with defaults.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"
)

// DefaultDatasetURL is the public race-time dataset.
const DefaultDatasetURL = "https://raw.githubusercontent.com/freeCodeCamp/ProjectReferenceData/master/cyclist-data.json"

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat is text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// DatasetURL is fetched when DatasetFile is empty.
	DatasetURL string `koanf:"dataset_url"`

	// DatasetFile reads the dataset from a local JSON file instead of the network.
	DatasetFile string `koanf:"dataset_file"`

	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// CacheTTLMS bounds how long a snapshot is served. Zero keeps it forever.
	CacheTTLMS int `koanf:"cache_ttl_ms"`

	// RefreshIntervalMS enables a background refetch when positive.
	RefreshIntervalMS int `koanf:"refresh_interval_ms"`

	// Chart geometry and colors.
	ChartWidth      int    `koanf:"chart_width"`
	ChartHeight     int    `koanf:"chart_height"`
	ChartPadding    int    `koanf:"chart_padding"`
	MarkRadius      int    `koanf:"mark_radius"`
	AllegationColor string `koanf:"allegation_color"`
	NeutralColor    string `koanf:"neutral_color"`

	// Minify compacts SVG and HTML output.
	Minify bool `koanf:"minify"`
}

// New creates a Config with defaults.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:          "info",
		LogFormat:         "text",
		Addr:              ":9080",
		DatasetURL:        DefaultDatasetURL,
		FetchTimeoutMS:    10_000,
		CacheTTLMS:        0,
		RefreshIntervalMS: 0,
		ChartWidth:        1200,
		ChartHeight:       500,
		ChartPadding:      60,
		MarkRadius:        5,
		AllegationColor:   "orange",
		NeutralColor:      "blue",
	}
}

// FetchTimeout returns the dataset fetch timeout.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// CacheTTL returns the snapshot lifetime; zero or less means no expiry.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLMS) * time.Millisecond
}

// RefreshInterval returns the background refresh period; zero disables it.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalMS) * time.Millisecond
}

// Validate checks the values that cannot be defaulted away.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.Addr) == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	if c.DatasetFile == "" {
		u, err := url.Parse(c.DatasetURL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("%w: dataset_url %q", ErrInvalidConfig, c.DatasetURL)
		}
	}
	if c.FetchTimeoutMS <= 0 {
		return fmt.Errorf("%w: fetch_timeout_ms must be positive", ErrInvalidConfig)
	}
	if c.ChartWidth <= 0 || c.ChartHeight <= 0 {
		return fmt.Errorf("%w: chart size %dx%d", ErrInvalidConfig, c.ChartWidth, c.ChartHeight)
	}
	if c.ChartPadding < 0 || 2*c.ChartPadding >= c.ChartWidth || 2*c.ChartPadding >= c.ChartHeight {
		return fmt.Errorf("%w: chart_padding %d", ErrInvalidConfig, c.ChartPadding)
	}
	if c.MarkRadius <= 0 {
		return fmt.Errorf("%w: mark_radius must be positive", ErrInvalidConfig)
	}
	return nil
}
