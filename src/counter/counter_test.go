package counter

import (
	"sync"
	"testing"
	"time"
)

const million = 1_000_000 * time.Second

// fakeClock lets tests move time forward by hand.
type fakeClock struct {
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Unix(1_700_000_000, 0)}
}

func (f *fakeClock) Now() time.Time { return f.now }

func (f *fakeClock) tick(d time.Duration) { f.now = f.now.Add(d) }

func newTestCounter(opts ...Option) (*EventCounter, *fakeClock) {
	clock := newFakeClock()
	return New(append([]Option{WithTimestampFunc(clock.Now)}, opts...)...), clock
}

func TestInitialZero(t *testing.T) {
	c, _ := newTestCounter()
	for _, window := range []time.Duration{0, time.Second, million} {
		if got := c.Count(window); got != 0 {
			t.Errorf("Count(%v) on empty counter: expected 0, got %d", window, got)
		}
	}
}

func TestZeroWindow(t *testing.T) {
	c, clock := newTestCounter()
	c.OnEvent()
	// Without time passing, the event sits exactly on the window boundary and is included
	if got := c.Count(0); got != 1 {
		t.Errorf("Expected 1 before time advances, got %d", got)
	}
	clock.tick(time.Second)
	if got := c.Count(0); got != 0 {
		t.Errorf("Expected 0 after time advances, got %d", got)
	}
}

func TestOne(t *testing.T) {
	c, _ := newTestCounter()
	c.OnEvent()
	if got := c.Count(time.Second); got != 1 {
		t.Errorf("Expected 1, got %d", got)
	}
}

func TestCountWindow(t *testing.T) {
	c, clock := newTestCounter()
	for i := 0; i < 100; i++ {
		c.OnEvent()
		clock.tick(time.Second)
	}
	clock.tick(100 * time.Millisecond)
	// 100 events one second apart, the latest 1.1 seconds ago
	if got := c.Count(10 * time.Second); got != 9 {
		t.Errorf("Expected 9 events in the last 10s, got %d", got)
	}
}

func TestCountMonotonicInWindow(t *testing.T) {
	c, clock := newTestCounter()
	for i := 0; i < 50; i++ {
		c.OnEvent()
		clock.tick(700 * time.Millisecond)
	}
	prev := 0
	for window := time.Duration(0); window <= 60*time.Second; window += 250 * time.Millisecond {
		got := c.Count(window)
		if got < prev {
			t.Fatalf("Count(%v) = %d is smaller than a narrower window's %d", window, got, prev)
		}
		prev = got
	}
	if prev != 50 {
		t.Errorf("Expected widest window to count all 50 events, got %d", prev)
	}
}

func TestExpireImmediately(t *testing.T) {
	c, clock := newTestCounter(WithCleaningThreshold(0))
	const step = 50 * time.Second

	// Events within the default 300s max age all count
	for i := 0; i < 3; i++ {
		c.OnEvent()
		clock.tick(step)
		if got := c.Count(million); got != i+1 {
			t.Fatalf("Event %d: expected %d, got %d", i, i+1, got)
		}
		clock.tick(step)
	}

	// Pruning runs after the insertion, so the count settles at 4
	for i := 0; i < 100; i++ {
		c.OnEvent()
		clock.tick(step)
		if got := c.Count(million); got != 4 {
			t.Fatalf("Event %d: expected 4, got %d", i, got)
		}
		clock.tick(step)
	}
}

func TestNonzeroThreshold(t *testing.T) {
	c, clock := newTestCounter(WithCleaningThreshold(100))
	// One step and every earlier event is past the max age
	const step = 400 * time.Second

	for i := 0; i < 100; i++ {
		c.OnEvent()
		clock.tick(step)
		if got := c.Count(million); got != i+1 {
			t.Fatalf("First batch, event %d: expected %d, got %d", i, i+1, got)
		}
		clock.tick(step)
	}

	// The first insertion here crosses the threshold and prunes, the next 99 do not
	for i := 0; i < 100; i++ {
		c.OnEvent()
		clock.tick(step)
		if got := c.Count(million); got != i+1 {
			t.Fatalf("Second batch, event %d: expected %d, got %d", i, i+1, got)
		}
		clock.tick(step)
	}
}

func TestIndistinguishableTimes(t *testing.T) {
	c, clock := newTestCounter()
	for i := 0; i < 100; i++ {
		c.OnEvent()
	}
	clock.tick(time.Second)
	for i := 0; i < 100; i++ {
		c.OnEvent()
	}
	if got := c.Count(million); got != 200 {
		t.Errorf("Expected 200, got %d", got)
	}
}

func TestPrunedEventsAreNotCounted(t *testing.T) {
	c, clock := newTestCounter(WithMaxAge(10 * time.Second))
	for i := 0; i < 5; i++ {
		c.OnEvent()
	}
	clock.tick(11 * time.Second)
	c.OnEvent()

	if got := c.Count(million); got != 6 {
		t.Fatalf("Expected 6 before pruning, got %d", got)
	}
	c.PruneOldTimestamps()
	if got := c.Count(million); got != 1 {
		t.Errorf("Expected 1 after pruning, got %d", got)
	}
	if c.Len() != 1 {
		t.Errorf("Expected 1 retained event, got %d", c.Len())
	}
}

func TestPruneKeepsBoundaryEvent(t *testing.T) {
	c, clock := newTestCounter(WithMaxAge(10 * time.Second))
	c.OnEvent()
	clock.tick(10 * time.Second)
	c.PruneOldTimestamps()
	if c.Len() != 1 {
		t.Errorf("Event exactly max age old should be kept, got %d retained", c.Len())
	}
}

func TestTimestampsIsCopy(t *testing.T) {
	c, clock := newTestCounter()
	c.OnEvent()
	clock.tick(time.Second)
	c.OnEvent()

	ts := c.Timestamps()
	if len(ts) != 2 || !ts[0].Before(ts[1]) {
		t.Fatalf("Expected two ascending timestamps, got %v", ts)
	}
	ts[0] = time.Time{}
	if c.Timestamps()[0].IsZero() {
		t.Error("Modifying the returned slice changed the counter")
	}
}

func TestStress(t *testing.T) {
	c := New()
	start := time.Now()
	for time.Since(start) < 100*time.Millisecond {
		for i := 0; i < 10_000; i++ {
			c.OnEvent()
		}
	}
	got := c.Count(million)
	t.Logf("Registered %d events in %v", got, time.Since(start))
	if got <= 100 {
		t.Errorf("Expected more than 100 events, got %d", got)
	}
}

func TestLockedConcurrentEvents(t *testing.T) {
	l := NewLocked(WithCleaningThreshold(10))
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := 0; i < 1000; i++ {
				l.OnEvent()
				l.Count(time.Minute)
			}
		}()
	}
	wg.Wait()
	l.PruneOldTimestamps()
	if got := l.Count(million); got != 8000 {
		t.Errorf("Expected 8000, got %d", got)
	}
	if l.Len() != 8000 {
		t.Errorf("Expected 8000 retained, got %d", l.Len())
	}
}
