package cache

import (
	"testing"
	"time"

	"verkskra/internal/mirror"
)

func TestLRUCacheGetSet(t *testing.T) {
	c := NewLRUCache[*mirror.AllData](2, time.Minute)

	snapshot := &mirror.AllData{Projects: []mirror.ProjectRecord{{ID: "p1"}}}
	c.Set("p1", snapshot)

	got, ok := c.Get("p1")
	if !ok {
		t.Fatal("expected cache hit")
	}
	if got.Projects[0].ID != "p1" {
		t.Errorf("unexpected cached value: %+v", got)
	}

	if _, ok := c.Get("missing"); ok {
		t.Error("expected cache miss")
	}
}

func TestLRUCacheEviction(t *testing.T) {
	c := NewLRUCache[int](2, time.Minute)

	c.Set("a", 1)
	c.Set("b", 2)
	c.Get("a") // refresh a
	c.Set("c", 3)

	if _, ok := c.Get("b"); ok {
		t.Error("expected least recently used key evicted")
	}
	if _, ok := c.Get("a"); !ok {
		t.Error("refreshed key must survive eviction")
	}
	if _, ok := c.Get("c"); !ok {
		t.Error("newest key must survive eviction")
	}
}

func TestLRUCacheExpiry(t *testing.T) {
	c := NewLRUCache[int](10, 10*time.Millisecond)

	c.Set("a", 1)
	time.Sleep(20 * time.Millisecond)

	if _, ok := c.Get("a"); ok {
		t.Error("expected expired entry to miss")
	}

	c.Set("b", 2)
	time.Sleep(20 * time.Millisecond)
	if removed := c.CleanExpired(); removed != 1 {
		t.Errorf("expected 1 expired entry removed, got %d", removed)
	}
}
