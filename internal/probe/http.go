package probe

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/okian/tourplot/pkg/logger"
)

// HTTPClient wraps http.Client with timeout
type HTTPClient struct {
	client  *http.Client
	timeout time.Duration
}

// newHTTPClient creates a new HTTP client with timeout
func newHTTPClient(timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		client: &http.Client{
			Timeout: timeout,
		},
		timeout: timeout,
	}
}

// Get performs a GET request and returns the status, headers and body.
func (c *HTTPClient) Get(ctx context.Context, url string) (int, http.Header, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return 0, nil, nil, fmt.Errorf("failed to create request: %w", err)
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return 0, nil, nil, err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return resp.StatusCode, resp.Header, nil, fmt.Errorf("failed to read body: %w", err)
	}
	return resp.StatusCode, resp.Header, body, nil
}

type job struct {
	target Target
}

type result struct {
	ok      bool
	bytes   int
	latency time.Duration
}

// loadTargets hits every target cfg.Requests times using a worker pool.
func loadTargets(ctx context.Context, cfg *Config, targets []Target, stats *Stats) {
	client := newHTTPClient(cfg.Timeout)
	log := logger.Named("probe")

	var (
		submitted  int64
		successful int64
		failed     int64
		bytes      int64
	)

	jobs := make(chan job, cfg.Workers*WorkerChannelMultiplier)
	results := make(chan result, cfg.Workers*WorkerChannelMultiplier)
	var wg sync.WaitGroup

	for i := 0; i < cfg.Workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := range jobs {
				r := hit(ctx, client, cfg.BaseURL, j.target)
				atomic.AddInt64(&submitted, 1)
				if r.ok {
					atomic.AddInt64(&successful, 1)
					atomic.AddInt64(&bytes, int64(r.bytes))
				} else {
					atomic.AddInt64(&failed, 1)
					if cfg.Verbose {
						log.Warn(ctx, "request failed", logger.String("path", j.target.Path))
					}
				}
				results <- r
			}
		}()
	}

	// Send jobs to workers
	go func() {
		defer close(jobs)
		for n := 0; n < cfg.Requests; n++ {
			for _, t := range targets {
				select {
				case <-ctx.Done():
					return
				case jobs <- job{target: t}:
				}
			}
		}
	}()

	go func() {
		wg.Wait()
		close(results)
	}()

	latencies := make([]time.Duration, 0, cfg.Requests*len(targets))
	for r := range results {
		if r.ok {
			latencies = append(latencies, r.latency)
		}
	}

	stats.Submitted = int(atomic.LoadInt64(&submitted))
	stats.Successful = int(atomic.LoadInt64(&successful))
	stats.Failed = int(atomic.LoadInt64(&failed))
	stats.Bytes = atomic.LoadInt64(&bytes)
	stats.P50, stats.P95, stats.Max = percentiles(latencies)
}

// hit requests one target and checks status and media type.
func hit(ctx context.Context, client *HTTPClient, baseURL string, t Target) result {
	start := time.Now()
	status, header, body, err := client.Get(ctx, baseURL+t.Path)
	took := time.Since(start)
	if err != nil || status != http.StatusOK {
		return result{latency: took}
	}
	if !strings.HasPrefix(header.Get("Content-Type"), t.ContentType) {
		return result{latency: took}
	}
	return result{ok: true, bytes: len(body), latency: took}
}

// percentiles returns p50, p95 and max of d. d is sorted in place.
func percentiles(d []time.Duration) (time.Duration, time.Duration, time.Duration) {
	if len(d) == 0 {
		return 0, 0, 0
	}
	sort.Slice(d, func(i, j int) bool { return d[i] < d[j] })
	at := func(p int) time.Duration {
		return d[(len(d)-1)*p/PercentageMultiplier]
	}
	return at(50), at(95), d[len(d)-1]
}
