package dataset

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/okian/tourplot/internal/domain/model"
	"github.com/okian/tourplot/pkg/logger"
	"github.com/okian/tourplot/pkg/metrics"
)

// HTTPSource fetches the dataset from a URL.
type HTTPSource struct {
	url       string
	client    *http.Client
	timeout   time.Duration
	userAgent string
	log       logger.Logger
}

// NewHTTPSource builds a source for url.
func NewHTTPSource(url string, opts ...Option) *HTTPSource {
	s := &HTTPSource{
		url:       url,
		client:    http.DefaultClient,
		timeout:   defaultTimeout,
		userAgent: defaultUserAgent,
		log:       logger.Nop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Name implements Source.
func (s *HTTPSource) Name() string { return "http" }

// URL returns the address being fetched.
func (s *HTTPSource) URL() string { return s.url }

// Fetch implements Source.
func (s *HTTPSource) Fetch(ctx context.Context) ([]model.RaceRecord, error) {
	start := time.Now()
	recs, size, err := s.fetch(ctx)
	ms := float64(time.Since(start).Milliseconds())
	if err != nil {
		metrics.RecordDatasetFetch(s.Name(), "error", ms)
		metrics.RecordErrorByComponent("dataset", errorType(err))
		metrics.RecordErrorLatency("dataset", errorType(err), ms)
		s.log.Warn(ctx, "dataset fetch failed",
			logger.String("url", s.url),
			logger.Duration("took", time.Since(start)),
			logger.Error(err),
		)
		return nil, err
	}
	metrics.RecordDatasetFetch(s.Name(), "ok", ms)
	s.log.Debug(ctx, "dataset fetched",
		logger.String("url", s.url),
		logger.Int("records", len(recs)),
		logger.String("size", humanize.Bytes(uint64(size))),
		logger.Duration("took", time.Since(start)),
	)
	return recs, nil
}

func (s *HTTPSource) fetch(ctx context.Context) ([]model.RaceRecord, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return nil, 0, fmt.Errorf("%w: %s", ErrStatus, resp.Status)
	}

	body := &countingReader{r: io.LimitReader(resp.Body, maxBodyBytes)}
	recs, err := Decode(body)
	if err != nil {
		return nil, body.n, err
	}
	return recs, body.n, nil
}

type countingReader struct {
	r io.Reader
	n int64
}

func (c *countingReader) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	c.n += int64(n)
	return n, err
}
