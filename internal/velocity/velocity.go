// Package velocity keeps a bounded rolling window of per-cycle
// ingest-rate samples for the frequency pulse chart.
package velocity

import "sync"

// DefaultWindow is the number of samples retained; the oldest sample
// is evicted first once the window is full.
const DefaultWindow = 15

// Sample is one per-cycle throughput reading.
type Sample struct {
	Time string  `json:"time"`
	Rate float64 `json:"rate"`
}

type Tracker struct {
	mu      sync.Mutex
	window  int
	samples []Sample
}

func NewTracker(window int) *Tracker {
	if window <= 0 {
		window = DefaultWindow
	}
	return &Tracker{window: window}
}

// Record appends one sample, evicting the oldest once the window
// exceeds its size.
func (t *Tracker) Record(rate float64, at string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.samples = append(t.samples, Sample{Time: at, Rate: rate})
	if len(t.samples) > t.window {
		t.samples = t.samples[len(t.samples)-t.window:]
	}
}

// Average returns the arithmetic mean of the retained samples,
// or 0 when empty.
func (t *Tracker) Average() float64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.samples) == 0 {
		return 0
	}
	var sum float64
	for _, s := range t.samples {
		sum += s.Rate
	}
	return sum / float64(len(t.samples))
}

// Samples returns a copy of the current window, oldest first.
func (t *Tracker) Samples() []Sample {
	t.mu.Lock()
	defer t.mu.Unlock()
	out := make([]Sample, len(t.samples))
	copy(out, t.samples)
	return out
}

// Latest returns the most recent sample and whether one exists.
func (t *Tracker) Latest() (Sample, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if len(t.samples) == 0 {
		return Sample{}, false
	}
	return t.samples[len(t.samples)-1], true
}

// Reset clears the window.
func (t *Tracker) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.samples = nil
}
