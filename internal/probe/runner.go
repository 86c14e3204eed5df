package probe

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/okian/tourplot/pkg/logger"
)

// Run executes the complete probe against cfg.BaseURL.
func Run(ctx context.Context, cfg *Config) (*Stats, error) {
	stats := &Stats{
		StartTime: time.Now(),
	}
	log := logger.Named("probe")

	log.Info(ctx, "starting tourplot probe",
		logger.String("baseURL", cfg.BaseURL),
		logger.Int("requests", cfg.Requests),
		logger.Int("workers", cfg.Workers),
		logger.Duration("timeout", cfg.Timeout),
	)

	client := newHTTPClient(cfg.Timeout)

	// Step 1: Check service health
	if err := checkServiceHealth(ctx, client, cfg.BaseURL); err != nil {
		return stats, err
	}

	// Step 2: Validate payloads
	if err := verifyDataset(ctx, client, cfg.BaseURL, stats); err != nil {
		return stats, err
	}
	if err := verifySVG(ctx, client, cfg.BaseURL); err != nil {
		return stats, err
	}
	if err := verifyPNG(ctx, client, cfg.BaseURL); err != nil {
		return stats, err
	}

	// Step 3: Concurrent reads
	if cfg.Requests > 0 && cfg.Workers > 0 {
		loadTargets(ctx, cfg, DefaultTargets, stats)
	}

	stats.EndTime = time.Now()
	stats.Duration = stats.EndTime.Sub(stats.StartTime)
	displayFinalStats(ctx, log, stats)

	if stats.Failed > 0 {
		return stats, fmt.Errorf("%w: %d of %d", ErrFailures, stats.Failed, stats.Submitted)
	}
	log.Info(ctx, "probe completed successfully")
	return stats, nil
}

// checkServiceHealth verifies the service is running.
func checkServiceHealth(ctx context.Context, client *HTTPClient, baseURL string) error {
	status, _, _, err := client.Get(ctx, baseURL+"/healthz")
	if err != nil {
		return fmt.Errorf("%w: %w", ErrUnhealthy, err)
	}
	// Any 200 is healthy; the body is the Prometheus exposition.
	if status != http.StatusOK {
		return fmt.Errorf("%w: status %d", ErrUnhealthy, status)
	}
	return nil
}

// displayFinalStats logs the final probe statistics.
func displayFinalStats(ctx context.Context, log logger.Logger, stats *Stats) {
	var successRate, perSecond float64
	if stats.Submitted > 0 {
		successRate = float64(stats.Successful) / float64(stats.Submitted) * PercentageMultiplier
	}
	if stats.Duration > 0 {
		perSecond = float64(stats.Submitted) / stats.Duration.Seconds()
	}

	log.Info(ctx, "final statistics",
		logger.Int("records", stats.Records),
		logger.Int("allegations", stats.Allegations),
		logger.Int("submitted", stats.Submitted),
		logger.Int("successful", stats.Successful),
		logger.Int("failed", stats.Failed),
		logger.String("transferred", humanize.Bytes(uint64(stats.Bytes))),
		logger.Duration("p50", stats.P50),
		logger.Duration("p95", stats.P95),
		logger.Duration("max", stats.Max),
		logger.Duration("duration", stats.Duration),
		logger.Float64("successRate", successRate),
		logger.Float64("requestsPerSecond", perSecond),
	)
}
