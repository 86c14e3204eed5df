// Package dataset fetches and validates race records from remote or local JSON.
package dataset

import (
	"context"

	"github.com/okian/tourplot/internal/domain/model"
)

// Source yields the full, validated record list.
type Source interface {
	Fetch(ctx context.Context) ([]model.RaceRecord, error)
	// Name labels the source in logs and metrics.
	Name() string
}
