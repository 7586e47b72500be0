package cache

import (
	"testing"
	"time"
)

func TestCache_SetGet(t *testing.T) {
	c := New()

	c.Set("descriptors", "snapshot", 0)
	v, ok := c.Get("descriptors")
	if !ok || v != "snapshot" {
		t.Fatalf("got (%v, %v), want (snapshot, true)", v, ok)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("missing key should not be found")
	}
}

func TestCache_Expiry(t *testing.T) {
	c := New()

	c.Set("k", 1, time.Millisecond)
	time.Sleep(5 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("expired entry should not be returned")
	}

	c.Prune()
	c.mu.RLock()
	_, present := c.items["k"]
	c.mu.RUnlock()
	if present {
		t.Error("Prune should drop expired entries")
	}
}

func TestCache_DeleteAndFlush(t *testing.T) {
	c := New()
	c.Set("a", 1, 0)
	c.Set("b", 2, 0)

	c.Delete("a")
	if _, ok := c.Get("a"); ok {
		t.Error("deleted entry should be gone")
	}

	c.Flush()
	if _, ok := c.Get("b"); ok {
		t.Error("flushed entry should be gone")
	}
}
