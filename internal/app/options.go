package service

import (
	"time"

	"github.com/okian/tourplot/internal/adapters/dataset"
	"github.com/okian/tourplot/internal/adapters/render/raster"
	"github.com/okian/tourplot/internal/adapters/render/vector"
	"github.com/okian/tourplot/internal/adapters/repository"
	"github.com/okian/tourplot/internal/domain/chart"
	"github.com/okian/tourplot/pkg/logger"
)

// Option applies a configuration option to the Service.
type Option func(*Service)

// WithSource sets where records are fetched from.
func WithSource(src dataset.Source) Option {
	return func(s *Service) {
		if src != nil {
			s.source = src
		}
	}
}

// WithStore replaces the in-memory snapshot store.
func WithStore(store repository.Store) Option {
	return func(s *Service) {
		if store != nil {
			s.store = store
		}
	}
}

// WithBuilder sets the chart builder, e.g. one with custom size or colors.
func WithBuilder(b *chart.Builder) Option {
	return func(s *Service) {
		if b != nil {
			s.builder = b
		}
	}
}

// WithVectorRenderer sets the SVG/HTML renderer.
func WithVectorRenderer(r *vector.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.vector = r
		}
	}
}

// WithRasterRenderer sets the PNG renderer.
func WithRasterRenderer(r *raster.Renderer) Option {
	return func(s *Service) {
		if r != nil {
			s.raster = r
		}
	}
}

// WithCacheTTL bounds how long a snapshot is served before refetching.
// Zero or less keeps the first snapshot until Refresh.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Service) {
		s.cacheTTL = ttl
	}
}

// WithRefreshInterval enables a background refetch while the service runs.
func WithRefreshInterval(d time.Duration) Option {
	return func(s *Service) {
		if d > 0 {
			s.refreshInterval = d
		}
	}
}

// WithContainerID sets the id of the element the chart attaches to.
func WithContainerID(id string) Option {
	return func(s *Service) {
		if id != "" {
			s.containerID = id
		}
	}
}

// WithLogger sets a custom logger for the service.
func WithLogger(l logger.Logger) Option {
	return func(s *Service) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithClock replaces time.Now for snapshot freshness checks.
func WithClock(now func() time.Time) Option {
	return func(s *Service) {
		if now != nil {
			s.now = now
		}
	}
}
