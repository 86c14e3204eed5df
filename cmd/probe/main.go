package main

import (
	"context"
	"flag"
	"os"
	"runtime"
	"time"

	"github.com/okian/tourplot/internal/probe"
)

// Default configuration constants.
const (
	defaultRequests  = 50
	defaultWorkers   = 2 // multiplier for runtime.NumCPU()
	defaultTimeout   = 30 * time.Second
	defaultRunBudget = 10 * time.Minute
)

func main() {
	var (
		baseURL  = flag.String("url", "http://localhost:9080", "Base URL of the service")
		requests = flag.Int("requests", defaultRequests, "Requests per endpoint during the load phase")
		workers  = flag.Int("workers", runtime.NumCPU()*defaultWorkers, "Number of concurrent workers")
		timeout  = flag.Duration("timeout", defaultTimeout, "HTTP request timeout")
		logFile  = flag.String("log", "", "Also write logs to this file")
		verbose  = flag.Bool("verbose", false, "Log every failed request")
		help     = flag.Bool("help", false, "Show help")
	)
	flag.Parse()

	if *help {
		probe.ShowHelp(os.Stdout)
		return
	}

	closer, err := probe.SetupLogging(*logFile, *verbose)
	if err != nil {
		os.Stderr.WriteString("Failed to setup logging: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer closer.Close()

	ctx, cancel := context.WithTimeout(context.Background(), defaultRunBudget)
	defer cancel()

	cfg := &probe.Config{
		BaseURL:  *baseURL,
		Requests: *requests,
		Workers:  *workers,
		Timeout:  *timeout,
		Verbose:  *verbose,
	}

	if _, err := probe.Run(ctx, cfg); err != nil {
		os.Stderr.WriteString("Probe failed: " + err.Error() + "\n")
		cancel()
		os.Exit(1)
	}
}
