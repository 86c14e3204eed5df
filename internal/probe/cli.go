package probe

import (
	"fmt"
	"io"
	"os"

	"github.com/okian/tourplot/pkg/logger"
)

// File permission constants.
const (
	logFilePermission = 0600
)

// SetupLogging configures logging to stdout and, when logFile is set, to
// that file as well.
func SetupLogging(logFile string, verbose bool) (io.Closer, error) {
	var w io.Writer = os.Stdout
	var closer io.Closer = nopCloser{}

	if logFile != "" {
		file, err := os.OpenFile(logFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, logFilePermission)
		if err != nil {
			return nil, fmt.Errorf("failed to create log file: %w", err)
		}
		w = io.MultiWriter(os.Stdout, file)
		closer = file
	}

	if err := logger.Init(logger.WithWriter(w)); err != nil {
		return nil, fmt.Errorf("failed to initialize logger: %w", err)
	}
	if verbose {
		_ = logger.SetLevelString("debug")
	}
	return closer, nil
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }

// ShowHelp prints usage information for the probe tool.
func ShowHelp(w io.Writer) {
	_, _ = io.WriteString(w, `tourplot probe
==============

Checks a running chart server and replays concurrent reads against it.

Usage:
  go run ./cmd/probe [options]

Options:
  -url string
        Base URL of the service (default "http://localhost:9080")
  -requests int
        Requests per endpoint during the load phase (default 50)
  -workers int
        Number of concurrent workers (default CPU cores * 2)
  -timeout duration
        HTTP request timeout (default 30s)
  -log string
        Also write logs to this file
  -verbose
        Log every failed request
  -help
        Show this help message

Examples:
  go run ./cmd/probe
  go run ./cmd/probe -requests 500 -workers 16 -url http://localhost:8080
`)
}
