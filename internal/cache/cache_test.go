package cache

import (
	"testing"
	"time"
)

func TestCache_SetAndGet(t *testing.T) {
	c := New[string](1 * time.Second)
	defer c.Stop()

	c.Set("key1", "value1")

	val, found := c.Get("key1")
	if !found {
		t.Error("Expected to find key1")
	}
	if val != "value1" {
		t.Errorf("Expected value1, got %v", val)
	}
}

func TestCache_Expiration(t *testing.T) {
	c := New[string](100 * time.Millisecond)
	defer c.Stop()

	c.Set("key1", "value1")

	// Should exist immediately
	_, found := c.Get("key1")
	if !found {
		t.Error("Expected to find key1 immediately")
	}

	// Wait for expiration
	time.Sleep(150 * time.Millisecond)

	_, found = c.Get("key1")
	if found {
		t.Error("Expected key1 to be expired")
	}
}

func TestCache_Invalidate(t *testing.T) {
	c := New[int](1 * time.Second)
	defer c.Stop()

	c.Set("key1", 1)
	c.Invalidate("key1")

	_, found := c.Get("key1")
	if found {
		t.Error("Expected key1 to be cleared")
	}
}

func TestCache_Purge(t *testing.T) {
	c := New[int](time.Minute)
	defer c.Stop()

	c.Set("a", 1)
	c.Set("b", 2)
	c.Purge()

	if c.Len() != 0 {
		t.Errorf("Expected empty cache, got %d entries", c.Len())
	}
}

func TestCache_ZeroTTLDisables(t *testing.T) {
	c := New[string](0)
	defer c.Stop()

	c.Set("key1", "value1")
	if _, found := c.Get("key1"); found {
		t.Error("Expected zero TTL to disable caching")
	}
}

func TestCache_SweepRemovesExpired(t *testing.T) {
	c := New[string](time.Hour)
	defer c.Stop()
	base := time.Now()
	c.now = func() time.Time { return base }

	c.Set("old", "v")
	c.now = func() time.Time { return base.Add(2 * time.Hour) }
	c.removeExpired()

	if c.Len() != 0 {
		t.Errorf("Expected sweep to drop expired entry, got %d", c.Len())
	}
}

func TestCache_StopTwice(t *testing.T) {
	c := New[string](time.Second)
	c.Stop()
	c.Stop()
}
