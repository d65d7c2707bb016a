// Package feed provides cursor-based, forward-only pagination over the
// post feeds. Each pager owns the paging state for one feed kind and one
// viewer; the shared query cache holds fetched pages so a refetch after
// invalidation is the only way cached data changes.
package feed

import (
	"context"
	"fmt"
	"sync"

	"github.com/aurafeed/backend/internal/cache"
	"github.com/aurafeed/backend/internal/models"
)

// Source produces one feed page at a given offset cursor. The cursor is
// the count of items already fetched for that feed kind; ordering is by
// posted_at descending. Offset paging is not stable under concurrent
// insertion, which can shift a page boundary by one item; that matches
// the accepted behavior of the feeds.
type Source interface {
	FetchPage(ctx context.Context, kind models.FeedKind, viewerID string, cursor int) ([]models.Post, error)
}

// Pager accumulates pages for a single feed kind. Switching kinds discards
// all paging state and restarts from cursor zero. The pager tracks the
// cache's bulk-invalidation generation: when any writer (or another
// pager's Refresh) drops cached pages, the next LoadMore restarts from
// cursor zero instead of serving the merged list it built over entries
// that no longer exist.
type Pager struct {
	mu       sync.Mutex
	source   Source
	cache    *cache.Cache
	viewerID string
	kind     models.FeedKind
	cursor   int
	done     bool
	posts    []models.Post
	gen      uint64
}

// NewPager creates a pager at cursor zero for the given feed kind
func NewPager(source Source, queryCache *cache.Cache, viewerID string, kind models.FeedKind) *Pager {
	return &Pager{
		source:   source,
		cache:    queryCache,
		viewerID: viewerID,
		kind:     kind,
		posts:    []models.Post{},
		gen:      queryCache.Generation(),
	}
}

// LoadMore fetches the next page, merges it, and returns the full merged
// list. A page shorter than the fixed page size ends the sequence; further
// calls return the merged list without fetching.
func (p *Pager) LoadMore(ctx context.Context) ([]models.Post, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if gen := p.cache.Generation(); gen != p.gen {
		p.reset()
	}
	if p.done {
		return p.posts, nil
	}

	key := pageKey(p.kind, p.viewerID, p.cursor)
	var page []models.Post
	if cached, ok := p.cache.Get(key); ok {
		page, ok = cached.([]models.Post)
		if !ok {
			page = nil
		}
	}
	if page == nil {
		fetched, err := p.source.FetchPage(ctx, p.kind, p.viewerID, p.cursor)
		if err != nil {
			return nil, err
		}
		page = fetched
		p.cache.Set(key, page)
	}

	p.posts = append(p.posts, page...)
	p.cursor += len(page)
	if len(page) < models.FeedPageSize {
		p.done = true
	}
	return p.posts, nil
}

// HasMore reports whether another page may exist
func (p *Pager) HasMore() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return !p.done
}

// Posts returns the merged list loaded so far
func (p *Pager) Posts() []models.Post {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.posts
}

// Kind returns the feed kind this pager is serving
func (p *Pager) Kind() models.FeedKind {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.kind
}

// SetKind switches the feed kind, discarding in-flight pagination state
// and restarting from cursor zero. Setting the current kind is a no-op.
func (p *Pager) SetKind(kind models.FeedKind) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if kind == p.kind {
		return
	}
	p.kind = kind
	p.reset()
}

// Refresh invalidates every cached feed page and restarts this pager from
// cursor zero. The invalidation advances the cache generation, so every
// other pager sharing the cache also restarts on its next read.
func (p *Pager) Refresh() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.cache.InvalidatePrefix(cache.FeedPrefix)
	p.reset()
}

func (p *Pager) reset() {
	p.cursor = 0
	p.done = false
	p.posts = []models.Post{}
	p.gen = p.cache.Generation()
}

func pageKey(kind models.FeedKind, viewerID string, cursor int) string {
	return fmt.Sprintf("%s%s:%s:%d", cache.FeedPrefix, kind, viewerID, cursor)
}
