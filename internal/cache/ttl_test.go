package cache

import (
	"testing"
	"time"

	"github.com/laminkinte/business-development-dashboard-sub000/internal/clock"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/config"
	datasetdomain "github.com/laminkinte/business-development-dashboard-sub000/internal/dataset/domain"
)

func TestTTLCacheServesFreshEntry(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	c := NewTTLCache[string, int](clk)

	c.Set("k", 42, 300*time.Second)
	clk.Advance(299 * time.Second)

	value, ok := c.Get("k")
	if !ok || value != 42 {
		t.Fatalf("expected fresh hit with 42, got %v ok=%v", value, ok)
	}
}

func TestTTLCacheBypassesStaleEntryWithoutEvicting(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	c := NewTTLCache[string, int](clk)

	c.Set("k", 42, 300*time.Second)
	clk.Advance(300 * time.Second)

	if _, ok := c.Get("k"); ok {
		t.Fatal("expected stale entry to be bypassed at exactly the TTL")
	}
	if c.Len() != 1 {
		t.Fatalf("expected stale entry to remain stored, len=%d", c.Len())
	}
}

func TestTTLCacheOverwriteResetsAge(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	c := NewTTLCache[string, int](clk)

	c.Set("k", 1, 300*time.Second)
	clk.Advance(250 * time.Second)
	c.Set("k", 2, 300*time.Second)
	clk.Advance(250 * time.Second)

	value, ok := c.Get("k")
	if !ok || value != 2 {
		t.Fatalf("expected refreshed entry 2, got %v ok=%v", value, ok)
	}
	if c.Len() != 1 {
		t.Fatalf("expected overwrite in place, len=%d", c.Len())
	}
}

func TestTTLCacheMissingKey(t *testing.T) {
	c := NewTTLCache[string, int](nil)
	if _, ok := c.Get("absent"); ok {
		t.Fatal("expected miss for absent key")
	}
}

func TestSnapshotCacheUsesConfiguredTTL(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	c := NewSnapshotCache(config.Config{SnapshotTTL: 10 * time.Second}, clk)

	snapshot := &datasetdomain.Snapshot{LoadID: "load-1"}
	key := datasetdomain.CacheKey(
		time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
		time.Date(2024, 3, 31, 0, 0, 0, 0, time.UTC),
	)

	c.Set(key, snapshot)
	if got, ok := c.Get(key); !ok || got.LoadID != "load-1" {
		t.Fatalf("expected cached snapshot, got %+v ok=%v", got, ok)
	}

	clk.Advance(10 * time.Second)
	if _, ok := c.Get(key); ok {
		t.Fatal("expected snapshot to expire after configured TTL")
	}
}

func TestSnapshotCacheDefaultsTo300Seconds(t *testing.T) {
	clk := clock.NewFakeClock(time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC))
	c := NewSnapshotCache(config.Config{}, clk)

	c.Set("20240301:20240331", &datasetdomain.Snapshot{LoadID: "load-1"})

	clk.Advance(299 * time.Second)
	if _, ok := c.Get("20240301:20240331"); !ok {
		t.Fatal("expected hit just under the default TTL")
	}

	clk.Advance(1 * time.Second)
	if _, ok := c.Get("20240301:20240331"); ok {
		t.Fatal("expected expiry at the default TTL")
	}
}

func TestSnapshotCacheIgnoresNilSnapshot(t *testing.T) {
	c := NewSnapshotCache(config.Config{}, clock.NewFakeClock(time.Now()))

	c.Set("k", nil)
	if _, ok := c.Get("k"); ok {
		t.Fatal("expected nil snapshot not to be stored")
	}
}
