// Package probe exercises a running chart server: it checks health,
// validates the served dataset and images, then replays concurrent reads
// against the chart endpoints and reports latency figures.
package probe

import "time"

// Config holds configuration for a probe run.
type Config struct {
	BaseURL  string        // Base URL of the service
	Requests int           // Requests per target during the load phase
	Workers  int           // Number of concurrent workers
	Timeout  time.Duration // HTTP request timeout
	Verbose  bool          // Log every failed request
}

// Target is an endpoint hit during the load phase.
type Target struct {
	Path        string
	ContentType string
}

// DefaultTargets are the read endpoints of the chart server.
var DefaultTargets = []Target{
	{Path: "/", ContentType: "text/html"},
	{Path: "/chart.svg", ContentType: "image/svg+xml"},
	{Path: "/chart.png", ContentType: "image/png"},
	{Path: "/data.json", ContentType: "application/json"},
}

// Stats holds probe results.
type Stats struct {
	Records     int
	Allegations int

	Submitted  int
	Successful int
	Failed     int
	Bytes      int64

	P50 time.Duration
	P95 time.Duration
	Max time.Duration

	StartTime time.Time
	EndTime   time.Time
	Duration  time.Duration
}
