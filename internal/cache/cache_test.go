package cache

import (
	"sync"
	"testing"
	"time"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func TestGetBeforeAndAfterTTL(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := New[string](3 * time.Second).WithClock(clock.Now)

	c.Set("k", "hello")

	if v, ok := c.Get("k"); !ok || v != "hello" {
		t.Fatalf("got %q, %v", v, ok)
	}

	clock.Advance(2 * time.Second)
	if _, ok := c.Get("k"); !ok {
		t.Fatalf("entry expired early")
	}

	clock.Advance(2 * time.Second)
	if v, ok := c.Get("k"); ok || v != "" {
		t.Fatalf("expected miss after ttl, got %q", v)
	}
	if c.Len() != 0 {
		t.Fatalf("expired entry not removed on read")
	}
}

func TestSetRestartsTTL(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := New[int](3 * time.Second).WithClock(clock.Now)

	c.Set("k", 1)
	clock.Advance(2 * time.Second)
	c.Set("k", 2)
	clock.Advance(2 * time.Second)

	if v, ok := c.Get("k"); !ok || v != 2 {
		t.Fatalf("got %d, %v; want latest value still live", v, ok)
	}
}

func TestNonPositiveTTLUsesDefault(t *testing.T) {
	if got := New[int](0).TTL(); got != 5*time.Second {
		t.Fatalf("got %s, want 5s", got)
	}
}

func TestSweepAndDelete(t *testing.T) {
	clock := &fakeClock{now: time.Unix(1_700_000_000, 0)}
	c := New[int](time.Second).WithClock(clock.Now)

	c.Set("a", 1)
	c.Set("b", 2)
	clock.Advance(2 * time.Second)
	c.Set("c", 3)

	if n := c.Sweep(); n != 2 {
		t.Fatalf("swept %d, want 2", n)
	}

	c.Delete("c")
	if c.Len() != 0 {
		t.Fatalf("got %d entries, want 0", c.Len())
	}

	c.Set("d", 4)
	c.Clear()
	if _, ok := c.Get("d"); ok {
		t.Fatalf("clear left entries behind")
	}
}
