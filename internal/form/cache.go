package form

import (
	"slices"
	"sync"
	"time"

	"bettracker/internal/catalog"
)

// schemaCache provides a TTL-based in-memory cache of merged option schemas,
// keyed by bet type id.
type schemaCache struct {
	mu      sync.RWMutex
	schemas map[int64]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	schema    catalog.Schema
	fetchedAt time.Time
}

func newSchemaCache(ttl time.Duration) *schemaCache {
	return &schemaCache{
		schemas: make(map[int64]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

func (c *schemaCache) Get(betTypeID int64) (catalog.Schema, bool) {
	if c.ttl <= 0 {
		return catalog.Schema{}, false
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.schemas[betTypeID]
	if !ok || c.now().Sub(entry.fetchedAt) > c.ttl {
		return catalog.Schema{}, false
	}
	s := entry.schema
	s.Options = slices.Clone(s.Options)
	return s, true
}

func (c *schemaCache) Set(betTypeID int64, s catalog.Schema) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.schemas[betTypeID] = cacheEntry{
		schema:    s,
		fetchedAt: c.now(),
	}
}

// Invalidate drops every entry.
func (c *schemaCache) Invalidate() {
	c.mu.Lock()
	defer c.mu.Unlock()

	clear(c.schemas)
}
