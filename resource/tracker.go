package resource

import (
	"sort"
	"sync"
)

// Tracker is an Observer that maintains the set of live blocks.
// A block is live from EventCreated until EventDestroyed.
// The zero value is ready to use.
type Tracker struct {
	live      map[uint64]Event
	destroyed map[uint64]int
	created   int
	mu        sync.RWMutex
}

// NewTracker creates an empty tracker.
func NewTracker() *Tracker {
	return &Tracker{
		live:      make(map[uint64]Event),
		destroyed: make(map[uint64]int),
	}
}

// OnResourceEvent implements Observer.
func (t *Tracker) OnResourceEvent(e Event) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.live == nil {
		t.live = make(map[uint64]Event)
		t.destroyed = make(map[uint64]int)
	}

	switch e.Type {
	case EventCreated:
		t.created++
		t.live[e.Block] = e
	case EventRetained, EventReleased:
		if _, ok := t.live[e.Block]; ok {
			t.live[e.Block] = e
		}
	case EventDestroyed:
		delete(t.live, e.Block)
		t.destroyed[e.Block]++
	}
}

// Len returns the number of live blocks.
func (t *Tracker) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.live)
}

// Created returns the number of blocks ever created.
func (t *Tracker) Created() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.created
}

// Destroyed returns the number of distinct blocks destroyed.
func (t *Tracker) Destroyed() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return len(t.destroyed)
}

// Finalizations returns how many times the given block was destroyed.
// Anything other than 0 or 1 is a double free.
func (t *Tracker) Finalizations(block uint64) int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.destroyed[block]
}

// Alive reports whether the block is live.
func (t *Tracker) Alive(block uint64) bool {
	t.mu.RLock()
	defer t.mu.RUnlock()
	_, ok := t.live[block]
	return ok
}

// Each calls fn with the latest event of every live block, in block order.
// Iteration stops when fn returns false.
func (t *Tracker) Each(fn func(Event) bool) {
	for _, e := range t.Leaked() {
		if !fn(e) {
			return
		}
	}
}

// Leaked returns the latest event of every live block, in block order.
func (t *Tracker) Leaked() []Event {
	t.mu.RLock()
	out := make([]Event, 0, len(t.live))
	for _, e := range t.live {
		out = append(out, e)
	}
	t.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool { return out[i].Block < out[j].Block })
	return out
}
