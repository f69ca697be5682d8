// Package intercept holds the normalized comment observations ("signals")
// captured from scan cycles, in a bounded newest-first log.
package intercept

import (
	"fmt"
	"sync"
	"time"

	"github.com/ALOKESHWARGOUD/repscan/internal/sentiment"
)

// DefaultCapacity bounds the store; entries past it are evicted silently.
const DefaultCapacity = 40

// Signal is one normalized comment observation.
type Signal struct {
	// ID is the source comment id and the sole dedup key.
	ID string `json:"id"`
	// Author is the commenter's display name. Display names are not a
	// stable identity: two accounts sharing a name are counted as one
	// author. Known approximation, kept on purpose.
	Author       string          `json:"author"`
	Sentiment    sentiment.Label `json:"sentiment"`
	Text         string          `json:"text"`
	ObservedAt   string          `json:"observed_at"`
	VideoID      string          `json:"video_id"`
	ReferenceURL string          `json:"reference_url"`
}

// FormatObservedAt renders a publish time for display: "LIVE 15:04"
// while the comment is under two minutes old, otherwise "02 Jan 15:04".
func FormatObservedAt(published, now time.Time) string {
	if now.Sub(published) < 2*time.Minute {
		return fmt.Sprintf("LIVE %s", published.Format("15:04"))
	}
	return published.Format("02 Jan 15:04")
}

// Store is a bounded newest-first sequence of signals. Appends prepend
// and truncate; history beyond the capacity is lost, not archived.
type Store struct {
	mu       sync.Mutex
	capacity int
	signals  []Signal
}

// NewStore returns an empty store with the given capacity.
// A capacity of zero or less falls back to DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{capacity: capacity}
}

// Append prepends a batch to the front of the store, preserving the
// batch's own order, then truncates to capacity.
func (s *Store) Append(batch []Signal) {
	if len(batch) == 0 {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	merged := make([]Signal, 0, len(batch)+len(s.signals))
	merged = append(merged, batch...)
	merged = append(merged, s.signals...)
	if len(merged) > s.capacity {
		merged = merged[:s.capacity]
	}
	s.signals = merged
}

// All returns a copy of the stored signals, newest first.
func (s *Store) All() []Signal {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]Signal, len(s.signals))
	copy(out, s.signals)
	return out
}

// Len reports the number of stored signals.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.signals)
}

// Reset clears the store to empty.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.signals = nil
}
