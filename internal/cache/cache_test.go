// CineMood - Conversational Movie Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cinemood

package cache

import (
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestCacheBasicOperations(t *testing.T) {
	c := New[string]("", time.Minute)
	defer c.Close()

	c.Set("key1", "value1")
	value, exists := c.Get("key1")
	if !exists {
		t.Fatal("Expected key1 to exist")
	}
	if value != "value1" {
		t.Errorf("Expected value1, got %v", value)
	}

	if _, exists = c.Get("key2"); exists {
		t.Error("Expected key2 to not exist")
	}
}

func TestCacheExpiration(t *testing.T) {
	c := New[int]("", 50*time.Millisecond)
	defer c.Close()

	c.Set("k", 1)
	if _, ok := c.Get("k"); !ok {
		t.Fatal("Expected k to exist immediately after set")
	}

	time.Sleep(80 * time.Millisecond)

	if _, ok := c.Get("k"); ok {
		t.Error("Expected k to be expired")
	}
	if got := c.GetStats().Evictions; got != 1 {
		t.Errorf("Evictions = %d, want 1", got)
	}
}

func TestCacheSetWithTTLOverridesDefault(t *testing.T) {
	c := New[string]("", time.Hour)
	defer c.Close()

	c.SetWithTTL("short", "v", 20*time.Millisecond)
	c.Set("long", "v")

	time.Sleep(40 * time.Millisecond)

	if _, ok := c.Get("short"); ok {
		t.Error("short-lived entry should have expired")
	}
	if _, ok := c.Get("long"); !ok {
		t.Error("default-TTL entry should still be present")
	}
}

func TestCacheDeleteAndClear(t *testing.T) {
	c := New[string]("", time.Minute)
	defer c.Close()

	c.Set("a", "1")
	c.Set("b", "2")
	c.Set("c", "3")

	c.Delete("a")
	c.Delete("missing")
	if _, ok := c.Get("a"); ok {
		t.Error("Expected a to be deleted")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() = %d after Clear, want 0", c.Len())
	}

	s := c.GetStats()
	if s.Evictions != 3 {
		t.Errorf("Evictions = %d, want 3 (1 delete + 2 cleared)", s.Evictions)
	}
	if s.TotalKeys != 0 {
		t.Errorf("TotalKeys = %d, want 0", s.TotalKeys)
	}
}

func TestCacheHitRate(t *testing.T) {
	c := New[int]("", time.Minute)
	defer c.Close()

	if c.HitRate() != 0 {
		t.Errorf("HitRate() with no lookups = %v, want 0", c.HitRate())
	}

	c.Set("k", 1)
	c.Get("k")
	c.Get("k")
	c.Get("k")
	c.Get("nope")

	if got := c.HitRate(); got != 75 {
		t.Errorf("HitRate() = %v, want 75", got)
	}
}

func TestCacheCleanupRemovesOnlyExpired(t *testing.T) {
	c := New[int]("", time.Minute)
	defer c.Close()

	c.SetWithTTL("old", 1, time.Millisecond)
	c.Set("fresh", 2)
	time.Sleep(5 * time.Millisecond)

	c.cleanup()

	if c.Len() != 1 {
		t.Errorf("Len() = %d after cleanup, want 1", c.Len())
	}
	if _, ok := c.Get("fresh"); !ok {
		t.Error("fresh entry should survive cleanup")
	}
	if c.GetStats().LastCleanup.IsZero() {
		t.Error("LastCleanup should be set")
	}
}

func TestCacheCloseIdempotent(t *testing.T) {
	c := New[int]("", time.Minute)
	c.Close()
	c.Close()
}

func TestCacheConcurrency(t *testing.T) {
	c := New[int]("catalog_detail", time.Minute)
	defer c.Close()

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(g int) {
			defer wg.Done()
			for i := 0; i < 200; i++ {
				key := fmt.Sprintf("k%d", i%20)
				c.Set(key, g*i)
				c.Get(key)
				if i%50 == 0 {
					c.Delete(key)
				}
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 20 {
		t.Errorf("Len() = %d, want <= 20", c.Len())
	}
}

func TestGenerateKey(t *testing.T) {
	type params struct {
		Query string
		Year  int
	}

	k1 := GenerateKey("search", params{"Titanic", 1997})
	k2 := GenerateKey("search", params{"Titanic", 1997})
	k3 := GenerateKey("search", params{"Titanic", 1998})

	if k1 != k2 {
		t.Errorf("equal params produced different keys: %s vs %s", k1, k2)
	}
	if k1 == k3 {
		t.Error("different params produced the same key")
	}
	if !strings.HasPrefix(k1, "search:") {
		t.Errorf("key %q should be prefixed by the method", k1)
	}
	// 16 hash bytes hex-encoded
	if len(k1) != len("search:")+32 {
		t.Errorf("unexpected key length %d", len(k1))
	}
}

func TestGenerateKeyUnmarshalable(t *testing.T) {
	key := GenerateKey("bad", make(chan int))
	if !strings.HasPrefix(key, "bad:") {
		t.Errorf("fallback key %q should keep the method prefix", key)
	}
}
