// Package queries provides one function per read/write operation of the
// application. Every function wraps the underlying stores, validates and
// normalizes the data crossing the boundary, and keeps the shared query
// cache coherent by invalidating affected keys after writes.
package queries

import (
	"context"
	"fmt"

	"github.com/aurafeed/backend/internal/cache"
	"github.com/aurafeed/backend/internal/models"
	"github.com/aurafeed/backend/internal/repositories"
)

// Object storage bucket names
const (
	ImagesBucket  = "images"
	AvatarsBucket = "avatars"
)

// ObjectStorage is the contract for the media store. Upload returns the
// stored path; PublicURL is pure and performs no network call.
type ObjectStorage interface {
	Upload(ctx context.Context, bucket, path string, data []byte, overwrite bool) (string, error)
	PublicURL(bucket, path string) string
}

// Queries bundles every store behind the operation functions
type Queries struct {
	posts       repositories.PostRepository
	profiles    repositories.ProfileRepository
	likes       repositories.LikeRepository
	vibes       repositories.VibeRepository
	polls       repositories.PollRepository
	follows     repositories.FollowRepository
	bookmarks   repositories.BookmarkRepository
	attachments repositories.AttachmentRepository
	storage     ObjectStorage
	cache       *cache.Cache
}

// New creates a Queries instance over the given stores and cache
func New(
	posts repositories.PostRepository,
	profiles repositories.ProfileRepository,
	likes repositories.LikeRepository,
	vibes repositories.VibeRepository,
	polls repositories.PollRepository,
	follows repositories.FollowRepository,
	bookmarks repositories.BookmarkRepository,
	attachments repositories.AttachmentRepository,
	storage ObjectStorage,
	queryCache *cache.Cache,
) *Queries {
	return &Queries{
		posts:       posts,
		profiles:    profiles,
		likes:       likes,
		vibes:       vibes,
		polls:       polls,
		follows:     follows,
		bookmarks:   bookmarks,
		attachments: attachments,
		storage:     storage,
		cache:       queryCache,
	}
}

// assemblePosts merges post documents with their author and relational
// children into fully validated Post shapes, preserving document order.
// All children are fetched in batches keyed by the page's post IDs.
func (q *Queries) assemblePosts(ctx context.Context, docs []models.PostDocument) ([]models.Post, error) {
	posts := []models.Post{}
	if len(docs) == 0 {
		return posts, nil
	}

	postIDs := make([]string, len(docs))
	authorSet := make(map[string]bool)
	for i, doc := range docs {
		postIDs[i] = doc.ID.Hex()
		authorSet[doc.AuthorID] = true
	}
	authorIDs := make([]string, 0, len(authorSet))
	for id := range authorSet {
		authorIDs = append(authorIDs, id)
	}

	profiles, err := q.profiles.ListByIDs(authorIDs)
	if err != nil {
		return nil, fmt.Errorf("load authors: %w", err)
	}
	authorsByID := make(map[string]models.Author, len(profiles))
	for _, p := range profiles {
		authorsByID[p.ID] = p.ToAuthor()
	}

	likes, err := q.likes.ListByPostIDs(postIDs)
	if err != nil {
		return nil, fmt.Errorf("load likes: %w", err)
	}
	likesByPost := make(map[string][]models.PostLike)
	for _, l := range likes {
		likesByPost[l.PostID] = append(likesByPost[l.PostID], models.PostLike{ProfileID: l.ProfileID})
	}

	vibes, err := q.vibes.ListByPostIDs(postIDs)
	if err != nil {
		return nil, fmt.Errorf("load vibes: %w", err)
	}
	vibesByPost := make(map[string][]models.PostVibe)
	for _, v := range vibes {
		vibesByPost[v.PostID] = append(vibesByPost[v.PostID], models.PostVibe{ProfileID: v.ProfileID, Vibe: v.Vibe})
	}

	attachments, err := q.attachments.ListByPostIDs(postIDs)
	if err != nil {
		return nil, fmt.Errorf("load attachments: %w", err)
	}
	attachmentsByPost := make(map[string][]models.PostAttachment)
	for _, a := range attachments {
		attachmentsByPost[a.PostID] = append(attachmentsByPost[a.PostID], models.PostAttachment{Path: a.Path, Position: a.Position})
	}

	pollsByPost, err := q.loadPolls(postIDs)
	if err != nil {
		return nil, err
	}

	for _, doc := range docs {
		postID := doc.ID.Hex()
		post := models.Post{
			ID:            postID,
			Content:       doc.Content,
			PostedAt:      doc.PostedAt,
			Author:        authorsByID[doc.AuthorID],
			Likes:         orEmptyLikes(likesByPost[postID]),
			Vibes:         orEmptyVibes(vibesByPost[postID]),
			Attachments:   models.NormalizeAttachments(attachmentsByPost[postID]),
			Poll:          models.NormalizePoll(pollsByPost[postID]),
			AttachmentURL: doc.AttachmentURL,
		}
		if err := post.Validate(); err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}
	return posts, nil
}

// loadPolls fetches polls, options, and votes for a set of posts and
// groups the embedded poll shapes by post ID
func (q *Queries) loadPolls(postIDs []string) (map[string][]models.PostPoll, error) {
	polls, err := q.polls.ListPollsByPostIDs(postIDs)
	if err != nil {
		return nil, fmt.Errorf("load polls: %w", err)
	}
	pollsByPost := make(map[string][]models.PostPoll)
	if len(polls) == 0 {
		return pollsByPost, nil
	}

	pollIDs := make([]string, len(polls))
	for i, p := range polls {
		pollIDs[i] = p.ID
	}
	options, err := q.polls.ListOptionsByPollIDs(pollIDs)
	if err != nil {
		return nil, fmt.Errorf("load poll options: %w", err)
	}
	votes, err := q.polls.ListVotesByPollIDs(pollIDs)
	if err != nil {
		return nil, fmt.Errorf("load poll votes: %w", err)
	}

	votesByOption := make(map[string][]models.PostPollVote)
	for _, v := range votes {
		votesByOption[v.OptionID] = append(votesByOption[v.OptionID], models.PostPollVote{ProfileID: v.ProfileID})
	}
	optionsByPoll := make(map[string][]models.PostPollOption)
	for _, o := range options {
		optionVotes := votesByOption[o.ID]
		if optionVotes == nil {
			optionVotes = []models.PostPollVote{}
		}
		optionsByPoll[o.PollID] = append(optionsByPoll[o.PollID], models.PostPollOption{
			ID:       o.ID,
			Label:    o.Label,
			Position: o.Position,
			Votes:    optionVotes,
		})
	}

	for _, p := range polls {
		pollsByPost[p.PostID] = append(pollsByPost[p.PostID], models.PostPoll{
			Question: p.Question,
			Options:  optionsByPoll[p.ID],
		})
	}
	return pollsByPost, nil
}

func orEmptyLikes(likes []models.PostLike) []models.PostLike {
	if likes == nil {
		return []models.PostLike{}
	}
	return likes
}

func orEmptyVibes(vibes []models.PostVibe) []models.PostVibe {
	if vibes == nil {
		return []models.PostVibe{}
	}
	return vibes
}

// invalidatePostReads drops every cached read that embeds the given post
func (q *Queries) invalidatePostReads(postID string) {
	q.cache.Invalidate(cache.PostKey(postID))
	q.cache.InvalidatePrefix(cache.FeedPrefix)
	q.cache.InvalidatePrefix(cache.ProfilePostsPrefix)
}
