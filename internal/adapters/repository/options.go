package repository

import "time"

// Option applies a configuration option to the MemoryStore.
type Option func(*MemoryStore)

// WithHistoryLimit sets how many snapshot descriptions are kept for History.
func WithHistoryLimit(n int) Option {
	return func(s *MemoryStore) {
		if n > 0 {
			s.historyLimit = n
		}
	}
}

// WithClock replaces time.Now, used to stamp snapshots saved without FetchedAt.
func WithClock(now func() time.Time) Option {
	return func(s *MemoryStore) {
		if now != nil {
			s.now = now
		}
	}
}
