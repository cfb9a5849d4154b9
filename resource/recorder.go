package resource

import (
	"sync"
)

// Recorder is an Observer that keeps every event it sees.
type Recorder struct {
	events []Event
	counts [EventDestroyed + 1]int
	mu     sync.RWMutex
}

// NewRecorder creates an empty recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// OnResourceEvent implements Observer.
func (r *Recorder) OnResourceEvent(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
	if int(e.Type) < len(r.counts) {
		r.counts[e.Type]++
	}
}

// Events returns a copy of the recorded events in arrival order.
func (r *Recorder) Events() []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Event, len(r.events))
	copy(out, r.events)
	return out
}

// Count returns how many events of type t were recorded.
func (r *Recorder) Count(t EventType) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if int(t) >= len(r.counts) {
		return 0
	}
	return r.counts[t]
}

// ForBlock returns the recorded events of a single block.
func (r *Recorder) ForBlock(block uint64) []Event {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []Event
	for _, e := range r.events {
		if e.Block == block {
			out = append(out, e)
		}
	}
	return out
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = nil
	r.counts = [EventDestroyed + 1]int{}
}
