// Package session holds the mutable per-keyword scan state: the set of
// comment ids already ingested, the set of videos being tracked, and the
// last poll time. It is an explicit object rather than package globals so
// tests and concurrent sessions can construct their own.
package session

import (
	"sync"
	"time"
)

type Session struct {
	mu       sync.Mutex
	seen     map[string]struct{}
	tracked  map[string]struct{}
	order    []string
	lastPoll time.Time
}

func New() *Session {
	return &Session{
		seen:     make(map[string]struct{}),
		tracked:  make(map[string]struct{}),
		lastPoll: time.Now(),
	}
}

// Seen reports whether a comment id has already produced a signal
// in this keyword session.
func (s *Session) Seen(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[id]
	return ok
}

// MarkSeen records a comment id. The set grows unbounded within a
// session; only Reset clears it.
func (s *Session) MarkSeen(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen[id] = struct{}{}
}

// TrackVideo adds a video id to the tracked set. Insertion order is
// kept so each cycle walks videos in a deterministic order.
func (s *Session) TrackVideo(id string) {
	if id == "" {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.tracked[id]; ok {
		return
	}
	s.tracked[id] = struct{}{}
	s.order = append(s.order, id)
}

// TrackedVideos returns the tracked video ids in insertion order.
func (s *Session) TrackedVideos() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.order))
	copy(out, s.order)
	return out
}

// LastPoll returns the time of the previous completed cycle.
func (s *Session) LastPoll() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastPoll
}

// SetLastPoll records the completion time of a cycle.
func (s *Session) SetLastPoll(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lastPoll = t
}

// Reset clears the seen set and the tracked set in one step, for a
// keyword change. The last-poll time is kept so the next cycle's rate
// still reflects real elapsed time.
func (s *Session) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seen = make(map[string]struct{})
	s.tracked = make(map[string]struct{})
	s.order = nil
}
