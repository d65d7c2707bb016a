// Package cache provides the shared query cache for feed pages, single
// posts, and profile post lists. It is constructed once and passed
// explicitly to every component that needs it; there is no ambient
// singleton. Writes never patch cached values in place: affected keys are
// invalidated so the next read refetches.
package cache

import (
	"strings"
	"sync"
)

// Cache is a process-wide key/value store for query results. Bulk
// invalidations advance a generation counter so consumers holding derived
// state (the feed pagers) can detect that their world changed and restart.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]interface{}
	gen     uint64
}

// New creates an empty cache
func New() *Cache {
	return &Cache{entries: make(map[string]interface{})}
}

// Get returns the cached value for key, if present
func (c *Cache) Get(key string) (interface{}, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	value, ok := c.entries[key]
	return value, ok
}

// Set stores a value under key, replacing any previous entry
func (c *Cache) Set(key string, value interface{}) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = value
}

// Invalidate removes a single entry
func (c *Cache) Invalidate(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, key)
}

// InvalidatePrefix removes every entry whose key starts with prefix,
// used to drop a whole collection (all pages of a feed, all profile
// post lists) at once. Advances the generation.
func (c *Cache) InvalidatePrefix(prefix string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for key := range c.entries {
		if strings.HasPrefix(key, prefix) {
			delete(c.entries, key)
		}
	}
	c.gen++
}

// InvalidateAll empties the cache, forcing every feed to refetch from
// cursor zero on its next read. Advances the generation.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]interface{})
	c.gen++
}

// Generation reports the bulk-invalidation counter. It moves on every
// InvalidatePrefix and InvalidateAll, never on Set or single-key
// Invalidate.
func (c *Cache) Generation() uint64 {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.gen
}

// Len reports the number of live entries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Key builders shared by the query layer and the feed pager.

// PostKey caches a single assembled post
func PostKey(postID string) string {
	return "post:" + postID
}

// FeedPrefix covers every cached feed page of every kind
const FeedPrefix = "feed:"

// ProfilePostsPrefix covers every cached profile post list
const ProfilePostsPrefix = "profile-posts:"
