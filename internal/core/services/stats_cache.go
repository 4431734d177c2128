package services

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/SscSPs/budget_tracker_app/internal/core/domain"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

// StatsCache memoises per-owner statistics.
//
// Entries are keyed by owner and generation. Invalidate gives the owner a
// fresh generation, so a summary computed before a write can never be served
// after it, even when the computation finishes after the write.
//
// Generations come from one counter shared by all owners. Owners without an
// entry in generations are at floor. When the map reaches maxOwners it is
// reset and floor moves to the last issued generation, which only turns
// cached entries into misses.
type StatsCache struct {
	cache     *ristretto.Cache[string, domain.StatsSummary]
	ttl       time.Duration
	group     singleflight.Group
	maxOwners int

	mu          sync.Mutex
	counter     uint64
	floor       uint64
	generations map[string]uint64
}

// NewStatsCache creates a cache holding roughly maxEntries owners for ttl.
func NewStatsCache(maxEntries int64, ttl time.Duration) (*StatsCache, error) {
	if maxEntries <= 0 {
		maxEntries = 10000
	}
	cache, err := ristretto.NewCache(&ristretto.Config[string, domain.StatsSummary]{
		NumCounters: maxEntries * 10, // number of keys to track frequency of
		MaxCost:     maxEntries, // one unit per owner
		BufferItems: 64,         // number of keys per Get buffer
		// Costs count entries, not bytes.
		IgnoreInternalCost: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize stats cache: %w", err)
	}
	return &StatsCache{
		cache:       cache,
		ttl:         ttl,
		maxOwners:   int(maxEntries),
		generations: make(map[string]uint64),
	}, nil
}

func (c *StatsCache) generation(ownerID string) uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen, ok := c.generations[ownerID]; ok {
		return gen
	}
	return c.floor
}

func cacheKey(ownerID string, generation uint64) string {
	return fmt.Sprintf("%s#%d", ownerID, generation)
}

// GetOrCompute returns the cached summary of ownerID or computes it with
// compute. Concurrent computations for the same owner and generation are collapsed.
func (c *StatsCache) GetOrCompute(ctx context.Context, ownerID string, compute func(ctx context.Context) (domain.StatsSummary, error)) (domain.StatsSummary, bool, error) {
	gen := c.generation(ownerID)
	key := cacheKey(ownerID, gen)

	if stats, ok := c.cache.Get(key); ok {
		return cloneStats(stats), true, nil
	}

	// The computation outlives any single caller; each caller only waits as
	// long as its own context allows.
	ch := c.group.DoChan(key, func() (interface{}, error) {
		stats, err := compute(context.WithoutCancel(ctx))
		if err != nil {
			return domain.StatsSummary{}, err
		}
		// Only publish if no write happened while computing.
		if c.generation(ownerID) == gen {
			c.cache.SetWithTTL(key, stats, 1, c.ttl)
		}
		return stats, nil
	})
	select {
	case <-ctx.Done():
		return domain.StatsSummary{}, false, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return domain.StatsSummary{}, false, res.Err
		}
		return cloneStats(res.Val.(domain.StatsSummary)), false, nil
	}
}

// Invalidate drops the cached summary of ownerID.
func (c *StatsCache) Invalidate(ownerID string) {
	c.mu.Lock()
	prev, ok := c.generations[ownerID]
	if !ok {
		prev = c.floor
		if len(c.generations) >= c.maxOwners {
			c.floor = c.counter
			c.generations = make(map[string]uint64)
		}
	}
	c.counter++
	c.generations[ownerID] = c.counter
	c.mu.Unlock()

	c.cache.Del(cacheKey(ownerID, prev))
}

// Close stops the cache's background goroutines.
func (c *StatsCache) Close() {
	c.cache.Close()
}

// cloneStats copies the category map so callers cannot mutate a cached entry.
func cloneStats(s domain.StatsSummary) domain.StatsSummary {
	byCategory := make(map[domain.Category]decimal.Decimal, len(s.ExpensesByCategory))
	for k, v := range s.ExpensesByCategory {
		byCategory[k] = v
	}
	s.ExpensesByCategory = byCategory
	return s
}
