package repository

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/okian/tourplot/internal/domain/model"
	"github.com/okian/tourplot/pkg/metrics"
)

const defaultHistoryLimit = 16

// MemoryStore keeps the current snapshot in memory.
//
// Readers go through an atomic pointer and never block on Save; the mutex only
// guards the history ring.
type MemoryStore struct {
	current atomic.Pointer[Snapshot]

	mu           sync.RWMutex
	history      []Info
	historyLimit int
	now          func() time.Time
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore(opts ...Option) *MemoryStore {
	s := &MemoryStore{
		historyLimit: defaultHistoryLimit,
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load implements Store.Load.
func (s *MemoryStore) Load(_ context.Context) (Snapshot, error) {
	snap := s.current.Load()
	if snap == nil {
		return Snapshot{}, ErrNotFound
	}
	return *snap, nil
}

// Save implements Store.Save. Missing ID and FetchedAt are filled in; the
// records slice is copied so callers can't mutate a published snapshot.
func (s *MemoryStore) Save(_ context.Context, snap Snapshot) (Snapshot, error) {
	if len(snap.Records) == 0 {
		return Snapshot{}, ErrEmptySnapshot
	}
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	if snap.FetchedAt.IsZero() {
		snap.FetchedAt = s.now()
	}
	snap.Records = slices.Clone(snap.Records)

	s.mu.Lock()
	s.current.Store(&snap)
	s.history = append([]Info{{
		ID:        snap.ID,
		Source:    snap.Source,
		Records:   len(snap.Records),
		FetchedAt: snap.FetchedAt,
	}}, s.history...)
	if len(s.history) > s.historyLimit {
		s.history = s.history[:s.historyLimit]
	}
	s.mu.Unlock()

	metrics.UpdateDatasetRecords(len(snap.Records))
	return snap, nil
}

// History implements Store.History.
func (s *MemoryStore) History(_ context.Context) []Info {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.history)
}

// Count implements Store.Count.
func (s *MemoryStore) Count(_ context.Context) int {
	snap := s.current.Load()
	if snap == nil {
		return 0
	}
	return len(snap.Records)
}

// Records returns a copy of the current records, or nil when nothing is stored.
func (s *MemoryStore) Records() []model.RaceRecord {
	snap := s.current.Load()
	if snap == nil {
		return nil
	}
	return slices.Clone(snap.Records)
}
