package engine

import "sync"

// Bus is the queue between background operations and the engine. Publish
// never blocks and Drain hands over the entire backlog without waiting, so
// producers and the UI tick cannot stall each other. Arrival order is
// preserved; outcomes from different goroutines interleave arbitrarily.
type Bus struct {
	mu      sync.Mutex
	pending []Outcome
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{}
}

// Publish appends an outcome. Safe to call from any goroutine.
func (b *Bus) Publish(o Outcome) {
	b.mu.Lock()
	b.pending = append(b.pending, o)
	b.mu.Unlock()
}

// Drain removes and returns every queued outcome in arrival order. Returns
// nil when nothing is waiting.
func (b *Bus) Drain() []Outcome {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := b.pending
	b.pending = nil
	return out
}

// Len reports how many outcomes are waiting.
func (b *Bus) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.pending)
}
