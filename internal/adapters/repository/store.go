// Package repository holds validated dataset snapshots between fetches.
package repository

import (
	"context"
	"time"

	"github.com/okian/tourplot/internal/domain/model"
)

// Snapshot is one successful fetch of the dataset. It is never mutated after Save.
type Snapshot struct {
	ID        string
	Source    string
	Records   []model.RaceRecord
	FetchedAt time.Time
}

// Fresh reports whether the snapshot may still be served at now.
// A ttl of zero or less never expires.
func (s Snapshot) Fresh(now time.Time, ttl time.Duration) bool {
	if s.FetchedAt.IsZero() {
		return false
	}
	if ttl <= 0 {
		return true
	}
	return now.Sub(s.FetchedAt) < ttl
}

// Age returns how long ago the snapshot was fetched.
func (s Snapshot) Age(now time.Time) time.Duration {
	return now.Sub(s.FetchedAt)
}

// Info describes a stored snapshot without its records.
type Info struct {
	ID        string
	Source    string
	Records   int
	FetchedAt time.Time
}

// Store provides access to the current dataset snapshot.
type Store interface {
	// Load returns the current snapshot or ErrNotFound before the first Save.
	Load(ctx context.Context) (Snapshot, error)

	// Save replaces the current snapshot. Empty snapshots are rejected with ErrEmptySnapshot.
	Save(ctx context.Context, snap Snapshot) (Snapshot, error)

	// History lists the most recent snapshots, newest first.
	History(ctx context.Context) []Info

	// Count returns the number of records in the current snapshot.
	Count(ctx context.Context) int
}
