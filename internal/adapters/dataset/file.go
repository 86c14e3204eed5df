package dataset

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/okian/tourplot/internal/domain/model"
	"github.com/okian/tourplot/pkg/metrics"
)

// FileSource reads the dataset from a local JSON file.
type FileSource struct {
	path string
}

// NewFileSource builds a source for path.
func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

// Name implements Source.
func (s *FileSource) Name() string { return "file" }

// Fetch implements Source.
func (s *FileSource) Fetch(ctx context.Context) ([]model.RaceRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	start := time.Now()
	recs, err := s.read()
	ms := float64(time.Since(start).Milliseconds())
	if err != nil {
		metrics.RecordDatasetFetch(s.Name(), "error", ms)
		metrics.RecordErrorByComponent("dataset", errorType(err))
		return nil, err
	}
	metrics.RecordDatasetFetch(s.Name(), "ok", ms)
	return recs, nil
}

func (s *FileSource) read() ([]model.RaceRecord, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer func() { _ = f.Close() }()
	return Decode(f)
}

// errorType maps an error to a short metrics label.
func errorType(err error) string {
	switch {
	case errors.Is(err, ErrStatus):
		return "status"
	case errors.Is(err, ErrDecode):
		return "decode"
	case errors.Is(err, ErrInvalidRecord):
		return "invalid_record"
	case errors.Is(err, ErrEmpty):
		return "empty"
	default:
		return "fetch"
	}
}
