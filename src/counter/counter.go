// Package counter counts events over a sliding time window.
//
// Timestamps are kept in an append-only sorted log. Queries are a binary
// search over that log, and expired entries are dropped in bulk once enough
// insertions have accumulated since the last prune.
package counter

import (
	"log/slog"
	"slices"
	"time"

	"nextstop/src/config"
)

// EventCounter is not safe for concurrent use. Wrap it in a Locked when it is
// shared between goroutines.
type EventCounter struct {
	timestamps        []time.Time
	maxAge            time.Duration
	now               func() time.Time
	cleaningThreshold int
	lastCleanCount    int
}

type Option func(*EventCounter)

// WithMaxAge sets how long an event is remembered.
func WithMaxAge(maxAge time.Duration) Option {
	return func(c *EventCounter) { c.maxAge = maxAge }
}

// WithTimestampFunc replaces the wall clock. The function must never go backwards.
func WithTimestampFunc(now func() time.Time) Option {
	return func(c *EventCounter) { c.now = now }
}

// WithCleaningThreshold sets how many insertions are accepted before old events are pruned.
func WithCleaningThreshold(threshold int) Option {
	return func(c *EventCounter) { c.cleaningThreshold = threshold }
}

func New(opts ...Option) *EventCounter {
	c := &EventCounter{
		maxAge:            config.MaxEventAge,
		now:               time.Now,
		cleaningThreshold: config.CleaningThreshold,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// OnEvent records an event at the current time, and prunes expired events if
// more than cleaningThreshold events were added since the last prune.
func (c *EventCounter) OnEvent() {
	c.timestamps = append(c.timestamps, c.now())
	if len(c.timestamps)-c.lastCleanCount > c.cleaningThreshold {
		c.PruneOldTimestamps()
	}
}

// Count returns the number of events in the last window. Events that were
// already pruned are not included, even if window is longer than the max age.
func (c *EventCounter) Count(window time.Duration) int {
	since := c.now().Add(-window)
	return len(c.timestamps) - c.lowerBound(since)
}

// PruneOldTimestamps drops every event older than the max age.
func (c *EventCounter) PruneOldTimestamps() {
	tooOld := c.now().Add(-c.maxAge)
	if i := c.lowerBound(tooOld); i > 0 {
		c.timestamps = slices.Delete(c.timestamps, 0, i)
		slog.Debug("Pruned expired events", "removed", i, "retained", len(c.timestamps))
	}
	c.lastCleanCount = len(c.timestamps)
}

// Len is the number of retained events.
func (c *EventCounter) Len() int {
	return len(c.timestamps)
}

// Timestamps returns a copy of the retained event log, oldest first.
func (c *EventCounter) Timestamps() []time.Time {
	return slices.Clone(c.timestamps)
}

// lowerBound returns the index of the first timestamp not before t.
func (c *EventCounter) lowerBound(t time.Time) int {
	i, _ := slices.BinarySearchFunc(c.timestamps, t, time.Time.Compare)
	return i
}
