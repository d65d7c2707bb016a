package feed

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/aurafeed/backend/internal/cache"
	"github.com/aurafeed/backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubSource serves a fixed per-kind post list through offset windows and
// counts fetches so tests can assert on cache hits
type stubSource struct {
	postsByKind map[models.FeedKind][]models.Post
	fetches     int
	err         error
}

func (s *stubSource) FetchPage(ctx context.Context, kind models.FeedKind, viewerID string, cursor int) ([]models.Post, error) {
	s.fetches++
	if s.err != nil {
		return nil, s.err
	}
	posts := s.postsByKind[kind]
	if cursor >= len(posts) {
		return []models.Post{}, nil
	}
	end := cursor + models.FeedPageSize
	if end > len(posts) {
		end = len(posts)
	}
	return posts[cursor:end], nil
}

func makePosts(prefix string, n int) []models.Post {
	posts := make([]models.Post, n)
	for i := range posts {
		posts[i] = models.Post{
			ID:       fmt.Sprintf("%s-%d", prefix, i),
			PostedAt: time.Now(),
		}
	}
	return posts
}

func TestPagerLoadMoreMergesPages(t *testing.T) {
	source := &stubSource{postsByKind: map[models.FeedKind][]models.Post{
		models.FeedGlobal: makePosts("g", models.FeedPageSize+10),
	}}
	p := NewPager(source, cache.New(), "viewer", models.FeedGlobal)

	posts, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, models.FeedPageSize)
	assert.True(t, p.HasMore(), "a full page means another page may exist")

	posts, err = p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, models.FeedPageSize+10)
	assert.False(t, p.HasMore(), "a short page ends the sequence")

	// No items are skipped or duplicated across the merge
	seen := make(map[string]bool)
	for _, post := range posts {
		assert.False(t, seen[post.ID], "duplicate post %s", post.ID)
		seen[post.ID] = true
	}
	assert.Equal(t, "g-0", posts[0].ID)
	assert.Equal(t, fmt.Sprintf("g-%d", models.FeedPageSize+9), posts[len(posts)-1].ID)
}

func TestPagerStopsAfterShortPage(t *testing.T) {
	source := &stubSource{postsByKind: map[models.FeedKind][]models.Post{
		models.FeedGlobal: makePosts("g", 3),
	}}
	p := NewPager(source, cache.New(), "viewer", models.FeedGlobal)

	posts, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 3)
	assert.False(t, p.HasMore())

	fetchesBefore := source.fetches
	posts, err = p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 3)
	assert.Equal(t, fetchesBefore, source.fetches, "an ended pager must not fetch again")
}

func TestPagerUsesCachedPages(t *testing.T) {
	source := &stubSource{postsByKind: map[models.FeedKind][]models.Post{
		models.FeedGlobal: makePosts("g", 3),
	}}
	queryCache := cache.New()

	first := NewPager(source, queryCache, "viewer", models.FeedGlobal)
	_, err := first.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, source.fetches)

	// A second pager over the same cache reads the page without fetching
	second := NewPager(source, queryCache, "viewer", models.FeedGlobal)
	posts, err := second.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 3)
	assert.Equal(t, 1, source.fetches)
}

func TestPagerSetKindResets(t *testing.T) {
	source := &stubSource{postsByKind: map[models.FeedKind][]models.Post{
		models.FeedGlobal: makePosts("g", 3),
		models.FeedLiked:  makePosts("l", 2),
	}}
	p := NewPager(source, cache.New(), "viewer", models.FeedGlobal)

	_, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.False(t, p.HasMore())

	p.SetKind(models.FeedLiked)
	assert.Equal(t, models.FeedLiked, p.Kind())
	assert.True(t, p.HasMore(), "switching kinds restarts from cursor zero")
	assert.Empty(t, p.Posts())

	posts, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.Equal(t, "l-0", posts[0].ID)
}

func TestPagerSetSameKindKeepsState(t *testing.T) {
	source := &stubSource{postsByKind: map[models.FeedKind][]models.Post{
		models.FeedGlobal: makePosts("g", 3),
	}}
	p := NewPager(source, cache.New(), "viewer", models.FeedGlobal)

	_, err := p.LoadMore(context.Background())
	require.NoError(t, err)

	p.SetKind(models.FeedGlobal)
	assert.Len(t, p.Posts(), 3)
	assert.False(t, p.HasMore())
}

func TestPagerRefresh(t *testing.T) {
	source := &stubSource{postsByKind: map[models.FeedKind][]models.Post{
		models.FeedGlobal: makePosts("g", 3),
	}}
	queryCache := cache.New()
	p := NewPager(source, queryCache, "viewer", models.FeedGlobal)

	_, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, queryCache.Len())

	p.Refresh()
	assert.Empty(t, p.Posts())
	assert.True(t, p.HasMore())
	assert.Equal(t, 0, queryCache.Len(), "refresh drops every cached feed page")

	_, err = p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, source.fetches, "after refresh the page is refetched")
}

func TestPagerRefreshRestartsOtherPagers(t *testing.T) {
	source := &stubSource{postsByKind: map[models.FeedKind][]models.Post{
		models.FeedGlobal: makePosts("g", 3),
		models.FeedLiked:  makePosts("l", 2),
	}}
	queryCache := cache.New()
	global := NewPager(source, queryCache, "viewer", models.FeedGlobal)
	liked := NewPager(source, queryCache, "viewer", models.FeedLiked)

	posts, err := liked.LoadMore(context.Background())
	require.NoError(t, err)
	require.Len(t, posts, 2)
	assert.False(t, liked.HasMore(), "the liked feed is exhausted")

	// A new post lands while the liked pager is sitting on its merged list
	source.postsByKind[models.FeedLiked] = makePosts("l", 3)

	global.Refresh()

	posts, err = liked.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 3, "after another pager's refresh the liked feed refetches from cursor zero")
}

func TestPagerRestartsAfterExternalInvalidation(t *testing.T) {
	source := &stubSource{postsByKind: map[models.FeedKind][]models.Post{
		models.FeedGlobal: makePosts("g", 3),
	}}
	queryCache := cache.New()
	p := NewPager(source, queryCache, "viewer", models.FeedGlobal)

	_, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.False(t, p.HasMore())

	// A write path (toggle like, new post) drops the feed prefix directly
	source.postsByKind[models.FeedGlobal] = makePosts("g", 4)
	queryCache.InvalidatePrefix(cache.FeedPrefix)

	posts, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 4)
}

func TestPagerFetchErrorLeavesStateUntouched(t *testing.T) {
	source := &stubSource{
		postsByKind: map[models.FeedKind][]models.Post{
			models.FeedGlobal: makePosts("g", 3),
		},
	}
	p := NewPager(source, cache.New(), "viewer", models.FeedGlobal)

	source.err = fmt.Errorf("backend down")
	_, err := p.LoadMore(context.Background())
	require.Error(t, err)
	assert.Empty(t, p.Posts())
	assert.True(t, p.HasMore())

	source.err = nil
	posts, err := p.LoadMore(context.Background())
	require.NoError(t, err)
	assert.Len(t, posts, 3)
}
