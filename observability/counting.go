package observability

import (
	"context"
	"sync"
)

// CountingObserver tallies events by EventType. Transaction's async callback
// path can deliver events from several worker goroutines concurrently, so
// OnEvent is safe to call from multiple goroutines at once.
type CountingObserver struct {
	mu     sync.Mutex
	counts map[EventType]int
}

// NewCountingObserver creates an empty CountingObserver.
func NewCountingObserver() *CountingObserver {
	return &CountingObserver{counts: make(map[EventType]int)}
}

func (c *CountingObserver) OnEvent(ctx context.Context, event Event) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.counts[event.Type]++
}

// Count returns how many events of the given type have been observed.
func (c *CountingObserver) Count(t EventType) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[t]
}

// Snapshot returns a copy of the full type-to-count tally.
func (c *CountingObserver) Snapshot() map[EventType]int {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[EventType]int, len(c.counts))
	for k, v := range c.counts {
		out[k] = v
	}
	return out
}
