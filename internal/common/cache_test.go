package common

import (
	"testing"
	"time"
)

func setupTestEnvironment(t *testing.T) (*Cache, func()) {
	t.Helper()

	// Set up the test environment
	cache := NewCache(0, 0)

	cleanup := func() {
		cache.Flush()
	}

	return cache, cleanup
}

func TestCache_Set(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set(CacheKeyClientLimiter("10.0.0.1"), "value")

	if _, ok := cache.Get(CacheKeyClientLimiter("10.0.0.1")); !ok {
		t.Error("expected key to be set")
	}
}

func TestCache_SetWithExpiration(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set("key", "value", time.Nanosecond)
	time.Sleep(time.Millisecond)

	if _, ok := cache.Get("key"); ok {
		t.Error("expected key to be expired")
	}
}

func TestCache_Touch(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	if cache.Touch("missing") {
		t.Error("expected touch on a missing key to report false")
	}

	cache.Set("key", "value")
	if !cache.Touch("key") {
		t.Error("expected touch on an existing key to report true")
	}
}

func TestCache_Flush(t *testing.T) {
	cache, cleanup := setupTestEnvironment(t)
	defer cleanup()

	cache.Set("key", "value")
	cache.Flush()

	if _, ok := cache.Get("key"); ok {
		t.Error("expected cache to be flushed")
	}
}
