package cache

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCacheSetGet(t *testing.T) {
	c := New()

	_, ok := c.Get("missing")
	assert.False(t, ok)

	c.Set("post:1", "value")
	got, ok := c.Get("post:1")
	assert.True(t, ok)
	assert.Equal(t, "value", got)

	c.Set("post:1", "replaced")
	got, _ = c.Get("post:1")
	assert.Equal(t, "replaced", got)
	assert.Equal(t, 1, c.Len())
}

func TestCacheInvalidate(t *testing.T) {
	c := New()
	c.Set("post:1", 1)
	c.Set("post:2", 2)

	c.Invalidate("post:1")
	_, ok := c.Get("post:1")
	assert.False(t, ok)
	_, ok = c.Get("post:2")
	assert.True(t, ok)

	// Invalidating an absent key is a no-op
	c.Invalidate("post:missing")
	assert.Equal(t, 1, c.Len())
}

func TestCacheInvalidatePrefix(t *testing.T) {
	c := New()
	c.Set("feed:global:v1:0", 1)
	c.Set("feed:global:v1:25", 2)
	c.Set("feed:liked:v1:0", 3)
	c.Set("post:1", 4)

	c.InvalidatePrefix("feed:global:")
	assert.Equal(t, 2, c.Len())

	c.InvalidatePrefix(FeedPrefix)
	assert.Equal(t, 1, c.Len())
	_, ok := c.Get("post:1")
	assert.True(t, ok)
}

func TestCacheInvalidateAll(t *testing.T) {
	c := New()
	c.Set("feed:global:v1:0", 1)
	c.Set("post:1", 2)
	c.Set("profile-posts:p1:0", 3)

	c.InvalidateAll()
	assert.Equal(t, 0, c.Len())
}

func TestCacheGenerationAdvancesOnBulkInvalidation(t *testing.T) {
	c := New()
	start := c.Generation()

	c.Set("feed:global:v1:0", 1)
	c.Invalidate("feed:global:v1:0")
	assert.Equal(t, start, c.Generation(), "Set and single-key Invalidate leave the generation alone")

	c.InvalidatePrefix(FeedPrefix)
	assert.Equal(t, start+1, c.Generation())

	c.InvalidateAll()
	assert.Equal(t, start+2, c.Generation())
}

func TestKeyBuilders(t *testing.T) {
	assert.Equal(t, "post:abc", PostKey("abc"))
	assert.Equal(t, "feed:", FeedPrefix)
	assert.Equal(t, "profile-posts:", ProfilePostsPrefix)
}
