package queries

import (
	"context"
	"fmt"

	"github.com/aurafeed/backend/internal/models"
)

// GetBookmarkedPosts loads the viewer's bookmarked posts ordered by
// bookmark recency. Bookmarks whose post no longer resolves are dropped
// rather than failing the whole read.
func (q *Queries) GetBookmarkedPosts(ctx context.Context, viewerID string) ([]models.Post, error) {
	bookmarks, err := q.bookmarks.ListByProfile(viewerID)
	if err != nil {
		return nil, fmt.Errorf("load bookmarks: %w", err)
	}
	if len(bookmarks) == 0 {
		return []models.Post{}, nil
	}

	ids := make([]string, len(bookmarks))
	for i, b := range bookmarks {
		ids[i] = b.PostID
	}
	docs, err := q.posts.ListByIDs(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load bookmarked posts: %w", err)
	}
	docsByID := make(map[string]models.PostDocument, len(docs))
	for _, doc := range docs {
		docsByID[doc.ID.Hex()] = doc
	}

	ordered := make([]models.PostDocument, 0, len(bookmarks))
	for _, b := range bookmarks {
		if doc, ok := docsByID[b.PostID]; ok {
			ordered = append(ordered, doc)
		}
	}
	return q.assemblePosts(ctx, ordered)
}

// IsPostBookmarked checks whether the viewer has bookmarked the given post
func (q *Queries) IsPostBookmarked(ctx context.Context, viewerID, postID string) (bool, error) {
	bookmarked, err := q.bookmarks.IsBookmarked(viewerID, postID)
	if err != nil {
		return false, fmt.Errorf("check bookmark: %w", err)
	}
	return bookmarked, nil
}

// AddBookmark saves a bookmark for the viewer; saving an already
// bookmarked post is a no-op
func (q *Queries) AddBookmark(ctx context.Context, viewerID, postID string) error {
	bookmark := &models.Bookmark{ProfileID: viewerID, PostID: postID}
	if err := q.bookmarks.UpsertBookmark(bookmark); err != nil {
		return fmt.Errorf("add bookmark: %w", err)
	}
	return nil
}

// RemoveBookmark removes a single bookmark for the viewer
func (q *Queries) RemoveBookmark(ctx context.Context, viewerID, postID string) error {
	if err := q.bookmarks.DeleteBookmark(viewerID, postID); err != nil {
		return fmt.Errorf("remove bookmark: %w", err)
	}
	return nil
}

// ClearBookmarks removes every bookmark the viewer holds
func (q *Queries) ClearBookmarks(ctx context.Context, viewerID string) error {
	if err := q.bookmarks.ClearByProfile(viewerID); err != nil {
		return fmt.Errorf("clear bookmarks: %w", err)
	}
	return nil
}

// ImportBookmarks bulk-saves legacy client-side bookmark IDs, deduplicated
func (q *Queries) ImportBookmarks(ctx context.Context, viewerID string, postIDs []string) error {
	seen := make(map[string]bool)
	rows := make([]models.Bookmark, 0, len(postIDs))
	for _, id := range postIDs {
		if id == "" || seen[id] {
			continue
		}
		seen[id] = true
		rows = append(rows, models.Bookmark{ProfileID: viewerID, PostID: id})
	}
	if len(rows) == 0 {
		return nil
	}
	if err := q.bookmarks.UpsertBookmarks(rows); err != nil {
		return fmt.Errorf("import bookmarks: %w", err)
	}
	return nil
}
