package cache

import (
	"time"

	"github.com/laminkinte/business-development-dashboard-sub000/internal/clock"
	"github.com/laminkinte/business-development-dashboard-sub000/internal/config"
	datasetdomain "github.com/laminkinte/business-development-dashboard-sub000/internal/dataset/domain"
	"go.uber.org/fx"
)

const defaultSnapshotTTL = 300 * time.Second

// SnapshotCache stores loaded date-range snapshots keyed by range.
type SnapshotCache interface {
	Get(key string) (*datasetdomain.Snapshot, bool)
	Set(key string, snapshot *datasetdomain.Snapshot)
}

type snapshotCache struct {
	store Cache[string, *datasetdomain.Snapshot]
	ttl   time.Duration
}

// NewSnapshotCache returns the snapshot cache with the configured TTL.
func NewSnapshotCache(cfg config.Config, clk clock.Clock) SnapshotCache {
	ttl := cfg.SnapshotTTL
	if ttl <= 0 {
		ttl = defaultSnapshotTTL
	}
	return &snapshotCache{
		store: NewTTLCache[string, *datasetdomain.Snapshot](clk),
		ttl:   ttl,
	}
}

func (c *snapshotCache) Get(key string) (*datasetdomain.Snapshot, bool) {
	return c.store.Get(key)
}

func (c *snapshotCache) Set(key string, snapshot *datasetdomain.Snapshot) {
	if snapshot == nil {
		return
	}
	c.store.Set(key, snapshot, c.ttl)
}

var Module = fx.Module("cache",
	fx.Provide(NewSnapshotCache),
)
