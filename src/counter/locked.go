package counter

import (
	"sync"
	"time"
)

// Locked guards an EventCounter with a mutex so it can be shared.
type Locked struct {
	mu      sync.Mutex
	counter *EventCounter
}

func NewLocked(opts ...Option) *Locked {
	return &Locked{counter: New(opts...)}
}

func (l *Locked) OnEvent() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counter.OnEvent()
}

func (l *Locked) Count(window time.Duration) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counter.Count(window)
}

func (l *Locked) PruneOldTimestamps() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.counter.PruneOldTimestamps()
}

func (l *Locked) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.counter.Len()
}
