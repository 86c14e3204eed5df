// Package service wires the dataset, snapshot store, chart builder and
// renderers together behind the operations the HTTP API and CLI need.
package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"
	"sync/atomic"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/okian/tourplot/internal/adapters/dataset"
	"github.com/okian/tourplot/internal/adapters/render/raster"
	"github.com/okian/tourplot/internal/adapters/render/vector"
	"github.com/okian/tourplot/internal/adapters/repository"
	"github.com/okian/tourplot/internal/domain/chart"
	"github.com/okian/tourplot/internal/domain/model"
	"github.com/okian/tourplot/pkg/logger"
	"github.com/okian/tourplot/pkg/metrics"
	"golang.org/x/sync/singleflight"
)

// Output formats, also used as metrics labels.
const (
	FormatHTML = "html"
	FormatSVG  = "svg"
	FormatPNG  = "png"
)

const fetchKey = "dataset"

// Service implements the chart operations behind the API.
type Service struct {
	mu sync.RWMutex

	// Core components
	source  dataset.Source
	store   repository.Store
	builder *chart.Builder
	vector  *vector.Renderer
	raster  *raster.Renderer
	group   singleflight.Group

	// Configuration
	cacheTTL        time.Duration
	refreshInterval time.Duration
	containerID     string
	now             func() time.Time

	// State
	started bool
	stopCh  chan struct{}
	wg      sync.WaitGroup

	fetches       atomic.Int64
	fetchFailures atomic.Int64
	lastErr       atomic.Pointer[string]

	// Logging
	logger logger.Logger
}

// New constructs a new Service with default configuration.
func New(opts ...Option) *Service {
	s := &Service{
		store:       repository.NewMemoryStore(),
		builder:     chart.NewBuilder(),
		vector:      vector.New(),
		raster:      raster.New(),
		containerID: chart.DefaultContainerID,
		now:         time.Now,
		stopCh:      make(chan struct{}),
		logger:      logger.Nop(),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Start warms the snapshot and starts the background refresher when configured.
// A failed warm-up is logged, not returned: the first request retries it.
func (s *Service) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return nil
	}
	if s.source == nil {
		return ErrNoSource
	}

	s.logger.Info(ctx, "starting chart service...", logger.String("source", s.source.Name()))

	if _, err := s.Records(ctx); err != nil {
		s.logger.Warn(ctx, "initial dataset fetch failed", logger.Error(err))
	}

	if s.refreshInterval > 0 {
		s.stopCh = make(chan struct{})
		s.wg.Add(1)
		go s.refreshLoop(s.refreshInterval, s.stopCh)
	}

	s.started = true
	s.logger.Info(ctx, "chart service started",
		logger.Duration("cacheTTL", s.cacheTTL),
		logger.Duration("refreshInterval", s.refreshInterval),
		logger.Int("records", s.store.Count(ctx)),
	)
	return nil
}

// Stop gracefully shuts down the background refresher.
func (s *Service) Stop() {
	s.mu.Lock()
	if !s.started {
		s.mu.Unlock()
		return
	}
	s.logger.Info(context.Background(), "stopping chart service...")
	select {
	case <-s.stopCh:
	default:
		close(s.stopCh)
	}
	s.started = false
	s.mu.Unlock()

	s.wg.Wait()
	s.logger.Info(context.Background(), "chart service stopped")
}

func (s *Service) refreshLoop(interval time.Duration, stop <-chan struct{}) {
	defer s.wg.Done()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-stop:
			return
		case <-ticker.C:
			if _, err := s.Refresh(context.Background()); err != nil {
				// The previous snapshot stays in place.
				s.logger.Warn(context.Background(), "background refresh failed", logger.Error(err))
				metrics.RecordErrorByType("refresh", "warning")
			}
		}
	}
}

// Records returns the current dataset, fetching it when nothing fresh is
// stored. When a refetch fails but an older snapshot exists, the older one
// is served.
func (s *Service) Records(ctx context.Context) ([]model.RaceRecord, error) {
	if s.source == nil {
		return nil, ErrNoSource
	}

	snap, loadErr := s.store.Load(ctx)
	if loadErr == nil && snap.Fresh(s.now(), s.cacheTTL) {
		metrics.RecordCacheHit()
		return snap.Records, nil
	}
	metrics.RecordCacheMiss()

	fresh, err := s.fetch(ctx)
	if err != nil {
		if loadErr == nil {
			s.logger.Warn(ctx, "serving stale dataset",
				logger.String("snapshot", snap.ID),
				logger.String("age", humanize.Time(snap.FetchedAt)),
				logger.Error(err),
			)
			return snap.Records, nil
		}
		return nil, err
	}
	return fresh.Records, nil
}

// Refresh refetches the dataset regardless of snapshot age.
func (s *Service) Refresh(ctx context.Context) (repository.Snapshot, error) {
	if s.source == nil {
		return repository.Snapshot{}, ErrNoSource
	}
	return s.fetch(ctx)
}

// fetch loads the dataset once for all concurrent callers and stores it.
func (s *Service) fetch(ctx context.Context) (repository.Snapshot, error) {
	v, err, shared := s.group.Do(fetchKey, func() (interface{}, error) {
		// Detached so one caller going away doesn't fail the others; the
		// source applies its own timeout.
		fctx := context.WithoutCancel(ctx)
		s.fetches.Add(1)

		recs, err := s.source.Fetch(fctx)
		if err != nil {
			s.fetchFailures.Add(1)
			msg := err.Error()
			s.lastErr.Store(&msg)
			return repository.Snapshot{}, fmt.Errorf("%w: %w", ErrUpstream, err)
		}

		snap, err := s.store.Save(fctx, repository.Snapshot{
			Source:    s.source.Name(),
			Records:   recs,
			FetchedAt: s.now(),
		})
		if err != nil {
			s.fetchFailures.Add(1)
			msg := err.Error()
			s.lastErr.Store(&msg)
			return repository.Snapshot{}, fmt.Errorf("%w: %w", ErrUpstream, err)
		}
		s.lastErr.Store(nil)

		s.logger.Info(fctx, "dataset snapshot stored",
			logger.String("snapshot", snap.ID),
			logger.String("source", snap.Source),
			logger.Int("records", len(snap.Records)),
		)
		return snap, nil
	})
	if err != nil {
		return repository.Snapshot{}, err
	}
	if shared {
		s.logger.Debug(ctx, "dataset fetch shared with concurrent callers")
	}
	return v.(repository.Snapshot), nil
}

// Document builds a fresh chart document from the current dataset.
func (s *Service) Document(ctx context.Context) (*chart.Document, error) {
	recs, err := s.Records(ctx)
	if err != nil {
		return nil, err
	}
	doc := chart.NewDocument(s.containerID)
	if err := s.builder.Render(doc, recs); err != nil {
		return nil, err
	}
	metrics.RecordMarksRendered(len(doc.Marks()))
	return doc, nil
}

// RenderPage writes the interactive HTML page.
func (s *Service) RenderPage(ctx context.Context, w io.Writer) error {
	return s.render(ctx, w, FormatHTML, s.vector.WritePage)
}

// RenderSVG writes the standalone SVG chart.
func (s *Service) RenderSVG(ctx context.Context, w io.Writer) error {
	return s.render(ctx, w, FormatSVG, s.vector.WriteSVG)
}

// RenderPNG writes the chart as a PNG image.
func (s *Service) RenderPNG(ctx context.Context, w io.Writer) error {
	return s.render(ctx, w, FormatPNG, s.raster.WritePNG)
}

// Render writes the chart in the named format.
func (s *Service) Render(ctx context.Context, w io.Writer, format string) error {
	switch format {
	case FormatHTML:
		return s.RenderPage(ctx, w)
	case FormatSVG:
		return s.RenderSVG(ctx, w)
	case FormatPNG:
		return s.RenderPNG(ctx, w)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

func (s *Service) render(ctx context.Context, w io.Writer, format string, write func(io.Writer, *chart.Document) error) error {
	start := time.Now()
	doc, err := s.Document(ctx)
	if err != nil {
		return err
	}

	cw := &countingWriter{w: w}
	if err := write(cw, doc); err != nil {
		metrics.RecordErrorByComponent("render", format)
		return fmt.Errorf("render %s: %w", format, err)
	}

	took := time.Since(start)
	metrics.RecordRender(format, float64(took.Milliseconds()), int(cw.n))
	s.logger.Debug(ctx, "chart rendered",
		logger.String("format", format),
		logger.String("document", doc.ID),
		logger.Int("marks", len(doc.Marks())),
		logger.String("size", humanize.Bytes(uint64(cw.n))),
		logger.Duration("took", took),
	)
	return nil
}

// GetStats returns service statistics for monitoring.
func (s *Service) GetStats() map[string]interface{} {
	s.mu.RLock()
	started := s.started
	s.mu.RUnlock()

	ctx := context.Background()
	stats := map[string]interface{}{
		"started":         started,
		"cacheTTL":        s.cacheTTL.String(),
		"refreshInterval": s.refreshInterval.String(),
		"fetches":         s.fetches.Load(),
		"fetchFailures":   s.fetchFailures.Load(),
	}
	if s.source != nil {
		stats["source"] = s.source.Name()
	}
	if msg := s.lastErr.Load(); msg != nil {
		stats["lastError"] = *msg
	}

	records := s.store.Count(ctx)
	stats["records"] = records
	if snap, err := s.store.Load(ctx); err == nil {
		stats["snapshotID"] = snap.ID
		stats["fetchedAt"] = snap.FetchedAt.UTC().Format(time.RFC3339)
		stats["age"] = humanize.RelTime(snap.FetchedAt, s.now(), "ago", "from now")
		stats["fresh"] = snap.Fresh(s.now(), s.cacheTTL)
		alleged := 0
		for _, r := range snap.Records {
			if r.HasAllegation() {
				alleged++
			}
		}
		stats["allegations"] = alleged
	} else if !errors.Is(err, repository.ErrNotFound) {
		stats["storeError"] = err.Error()
	}

	history := s.store.History(ctx)
	ids := make([]string, 0, len(history))
	for _, h := range history {
		ids = append(ids, h.ID)
	}
	stats["history"] = ids

	metrics.UpdateDatasetRecords(records)
	return stats
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}
