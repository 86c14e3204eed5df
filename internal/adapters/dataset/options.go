package dataset

import (
	"net/http"
	"time"

	"github.com/okian/tourplot/pkg/logger"
)

const (
	defaultTimeout   = 10 * time.Second
	defaultUserAgent = "tourplot/1.0"
	// maxBodyBytes caps the response we are willing to decode.
	maxBodyBytes = 8 << 20
)

// Option configures an HTTPSource.
type Option func(*HTTPSource)

// WithHTTPClient replaces the default client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *HTTPSource) {
		if c != nil {
			s.client = c
		}
	}
}

// WithTimeout bounds a single fetch.
func WithTimeout(d time.Duration) Option {
	return func(s *HTTPSource) {
		if d > 0 {
			s.timeout = d
		}
	}
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *HTTPSource) {
		if ua != "" {
			s.userAgent = ua
		}
	}
}

// WithLogger sets the logger used for fetch diagnostics.
func WithLogger(l logger.Logger) Option {
	return func(s *HTTPSource) {
		if l != nil {
			s.log = l
		}
	}
}
