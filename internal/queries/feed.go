package queries

import (
	"context"
	"fmt"

	"github.com/aurafeed/backend/internal/cache"
	"github.com/aurafeed/backend/internal/models"
)

// GetFeed loads one global feed page: posts ordered by posted_at
// descending, starting at the given offset cursor
func (q *Queries) GetFeed(ctx context.Context, cursor int) ([]models.Post, error) {
	docs, err := q.posts.ListRecent(ctx, int64(cursor), models.FeedPageSize)
	if err != nil {
		return nil, fmt.Errorf("load feed: %w", err)
	}
	return q.assemblePosts(ctx, docs)
}

// GetFollowingFeed loads one page of posts authored by profiles the viewer
// follows. The followee ID set is fetched first; when it is empty the feed
// is empty without a second round-trip.
func (q *Queries) GetFollowingFeed(ctx context.Context, viewerID string, cursor int) ([]models.Post, error) {
	followingIDs, err := q.follows.GetFollowingIDs(viewerID)
	if err != nil {
		return nil, fmt.Errorf("load following ids: %w", err)
	}
	if len(followingIDs) == 0 {
		return []models.Post{}, nil
	}

	docs, err := q.posts.ListRecentByAuthors(ctx, followingIDs, int64(cursor), models.FeedPageSize)
	if err != nil {
		return nil, fmt.Errorf("load following feed: %w", err)
	}
	return q.assemblePosts(ctx, docs)
}

// GetLikesFeed loads one page of posts the viewer has liked, fetching the
// liked post ID set first and short-circuiting to empty when there is none
func (q *Queries) GetLikesFeed(ctx context.Context, viewerID string, cursor int) ([]models.Post, error) {
	likedIDs, err := q.likes.ListPostIDsByProfile(viewerID)
	if err != nil {
		return nil, fmt.Errorf("load liked ids: %w", err)
	}
	if len(likedIDs) == 0 {
		return []models.Post{}, nil
	}

	docs, err := q.posts.ListRecentByIDs(ctx, likedIDs, int64(cursor), models.FeedPageSize)
	if err != nil {
		return nil, fmt.Errorf("load likes feed: %w", err)
	}
	return q.assemblePosts(ctx, docs)
}

// GetProfilePosts loads one page of a single profile's posts. Pages are
// cached per profile and cursor; writes touching a post drop the whole
// prefix.
func (q *Queries) GetProfilePosts(ctx context.Context, profileID string, cursor int) ([]models.Post, error) {
	key := fmt.Sprintf("%s%s:%d", cache.ProfilePostsPrefix, profileID, cursor)
	if cached, ok := q.cache.Get(key); ok {
		if posts, ok := cached.([]models.Post); ok {
			return posts, nil
		}
	}

	docs, err := q.posts.ListRecentByAuthors(ctx, []string{profileID}, int64(cursor), models.FeedPageSize)
	if err != nil {
		return nil, fmt.Errorf("load profile posts: %w", err)
	}
	posts, err := q.assemblePosts(ctx, docs)
	if err != nil {
		return nil, err
	}
	q.cache.Set(key, posts)
	return posts, nil
}

// FetchPage dispatches to the feed query for the given kind. It satisfies
// the feed pager's source contract.
func (q *Queries) FetchPage(ctx context.Context, kind models.FeedKind, viewerID string, cursor int) ([]models.Post, error) {
	switch kind {
	case models.FeedGlobal:
		return q.GetFeed(ctx, cursor)
	case models.FeedFollowing:
		return q.GetFollowingFeed(ctx, viewerID, cursor)
	case models.FeedLiked:
		return q.GetLikesFeed(ctx, viewerID, cursor)
	case models.FeedMine:
		return q.GetProfilePosts(ctx, viewerID, cursor)
	default:
		return nil, fmt.Errorf("unknown feed kind %q", kind)
	}
}
