package queries

import (
	"context"
	"fmt"
	"time"

	"github.com/aurafeed/backend/internal/cache"
	"github.com/aurafeed/backend/internal/models"
	"github.com/google/uuid"
)

// MediaFile is a single media upload accompanying a new post
type MediaFile struct {
	Name string
	Data []byte
}

// GetPost loads a single assembled post by ID. Returns (nil, nil) when the
// post does not exist so callers can render a "not found" state without
// treating it as a failure.
func (q *Queries) GetPost(ctx context.Context, postID string) (*models.Post, error) {
	if cached, ok := q.cache.Get(cache.PostKey(postID)); ok {
		if post, ok := cached.(models.Post); ok {
			return &post, nil
		}
	}

	doc, err := q.posts.GetPostByID(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("get post: %w", err)
	}
	if doc == nil {
		return nil, nil
	}

	posts, err := q.assemblePosts(ctx, []models.PostDocument{*doc})
	if err != nil {
		return nil, err
	}
	post := posts[0]
	q.cache.Set(cache.PostKey(postID), post)
	return &post, nil
}

// CreatePost persists a new post plus its optional media and poll in three
// ordered steps: the post document first, then one storage upload and
// attachment record per media file in selection order, then the poll row
// and its options. There is no compensating rollback: a later step's
// failure is returned immediately and earlier steps' effects persist, so a
// partially formed post can remain visible in feeds.
func (q *Queries) CreatePost(ctx context.Context, authorID, content string, media []MediaFile, draft *models.PollDraft) (*models.Post, error) {
	doc := &models.PostDocument{
		AuthorID: authorID,
		Content:  content,
		PostedAt: time.Now(),
	}
	if err := q.posts.CreatePost(ctx, doc); err != nil {
		return nil, fmt.Errorf("insert post: %w", err)
	}
	postID := doc.ID.Hex()

	for i, file := range media {
		position := i + 1
		path := fmt.Sprintf("%s/%d", postID, position)
		storedPath, err := q.storage.Upload(ctx, ImagesBucket, path, file.Data, false)
		if err != nil {
			return nil, fmt.Errorf("upload attachment %d: %w", position, err)
		}
		attachment := &models.Attachment{
			PostID:   postID,
			Path:     storedPath,
			Position: position,
		}
		if err := q.attachments.CreateAttachment(attachment); err != nil {
			return nil, fmt.Errorf("insert attachment %d: %w", position, err)
		}
		// Older clients read a single attachment path off the post itself
		if len(media) == 1 {
			if err := q.posts.SetAttachmentURL(ctx, postID, storedPath); err != nil {
				return nil, fmt.Errorf("set legacy attachment path: %w", err)
			}
		}
	}

	if draft != nil {
		labels := draft.CleanOptions()
		if len(labels) >= models.PollMinOptions {
			poll := &models.Poll{
				ID:       uuid.NewString(),
				PostID:   postID,
				Question: draft.Question,
			}
			options := make([]models.PollOption, len(labels))
			for i, label := range labels {
				options[i] = models.PollOption{
					ID:       uuid.NewString(),
					PollID:   poll.ID,
					Label:    label,
					Position: i + 1,
				}
			}
			if err := q.polls.CreatePoll(poll, options); err != nil {
				return nil, fmt.Errorf("insert poll: %w", err)
			}
		}
	}

	q.cache.InvalidatePrefix(cache.FeedPrefix)
	q.cache.InvalidatePrefix(cache.ProfilePostsPrefix)

	return q.GetPost(ctx, postID)
}
