package catalog

import (
	"context"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"

	"github.com/osse101/CaseDrop_Go/internal/domain"
	"github.com/osse101/CaseDrop_Go/internal/repository"
)

// cachedEntry wraps a value with version metadata for cache invalidation
type cachedEntry struct {
	Version  string
	Value    any
	CachedAt time.Time
}

// Stats reports cache effectiveness
type Stats struct {
	Hits   uint64
	Misses uint64
	Size   int
}

// Cached is a read-through cache over the administrator-maintained catalog.
// Drop rules, level settings and achievement definitions change rarely, so
// entries live until their TTL expires or Invalidate is called.
type Cached struct {
	source repository.Catalog
	lru    *expirable.LRU[string, *cachedEntry]

	hits   atomic.Uint64
	misses atomic.Uint64
}

var _ repository.Catalog = (*Cached)(nil)

// NewCached wraps source with an expirable LRU of the given size and TTL.
func NewCached(source repository.Catalog, size int, ttl time.Duration) *Cached {
	if size <= 0 {
		size = DefaultCacheSize
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cached{
		source: source,
		lru:    expirable.NewLRU[string, *cachedEntry](size, nil, ttl),
	}
}

// GetDropRule returns the tier's rule. A missing rule is cached as well.
func (c *Cached) GetDropRule(ctx context.Context, tier int) (*domain.DropRule, error) {
	key := keyDropRulePrefix + strconv.Itoa(tier)
	if v, ok := c.get(key); ok {
		rule, _ := v.(*domain.DropRule)
		return rule, nil
	}

	rule, err := c.source.GetDropRule(ctx, tier)
	if err != nil {
		return nil, err
	}
	c.set(key, rule)
	return rule, nil
}

func (c *Cached) GetLevelSettings(ctx context.Context) ([]domain.LevelSettings, error) {
	if v, ok := c.get(keyLevelSettings); ok {
		return v.([]domain.LevelSettings), nil
	}

	settings, err := c.source.GetLevelSettings(ctx)
	if err != nil {
		return nil, err
	}
	c.set(keyLevelSettings, settings)
	return settings, nil
}

func (c *Cached) GetAchievements(ctx context.Context) ([]domain.Achievement, error) {
	if v, ok := c.get(keyAchievements); ok {
		return v.([]domain.Achievement), nil
	}

	defs, err := c.source.GetAchievements(ctx)
	if err != nil {
		return nil, err
	}
	c.set(keyAchievements, defs)
	return defs, nil
}

// Invalidate drops every cached entry
func (c *Cached) Invalidate() {
	c.lru.Purge()
}

// Stats returns hit and miss counters
func (c *Cached) Stats() Stats {
	return Stats{Hits: c.hits.Load(), Misses: c.misses.Load(), Size: c.lru.Len()}
}

func (c *Cached) get(key string) (any, bool) {
	entry, found := c.lru.Get(key)
	if !found {
		c.misses.Add(1)
		return nil, false
	}

	// Check version - auto-invalidate if mismatch
	if entry.Version != CacheSchemaVersion {
		c.lru.Remove(key)
		c.misses.Add(1)
		return nil, false
	}

	c.hits.Add(1)
	return entry.Value, true
}

func (c *Cached) set(key string, value any) {
	c.lru.Add(key, &cachedEntry{
		Version:  CacheSchemaVersion,
		Value:    value,
		CachedAt: time.Now(),
	})
}
