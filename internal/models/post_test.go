package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func validPost() Post {
	return Post{
		ID:       "post-1",
		Content:  "lowkey the best sandwich ever",
		PostedAt: time.Now(),
		Author: Author{
			ID:     "profile-1",
			Name:   "Sam",
			Handle: "sam",
		},
		Likes:       []PostLike{},
		Vibes:       []PostVibe{},
		Attachments: []PostAttachment{},
	}
}

func TestPostValidate(t *testing.T) {
	post := validPost()
	assert.NoError(t, post.Validate())
}

func TestPostValidateMissingID(t *testing.T) {
	post := validPost()
	post.ID = ""
	assert.Error(t, post.Validate())
}

func TestPostValidateVibeKinds(t *testing.T) {
	for _, kind := range []VibeKind{VibeAuraUp, VibeReal, VibeMood, VibeChaotic} {
		post := validPost()
		post.Vibes = []PostVibe{{ProfileID: "profile-2", Vibe: kind}}
		assert.NoError(t, post.Validate(), "vibe %s should validate", kind)
	}

	post := validPost()
	post.Vibes = []PostVibe{{ProfileID: "profile-2", Vibe: "fire"}}
	assert.Error(t, post.Validate(), "unknown vibe kind must fail validation")
}

func TestPostValidatePollOptionBounds(t *testing.T) {
	option := func(id string) PostPollOption {
		return PostPollOption{ID: id, Label: "option " + id, Votes: []PostPollVote{}}
	}

	post := validPost()
	post.Poll = &PostPoll{Options: []PostPollOption{option("a")}}
	assert.Error(t, post.Validate(), "a one-option poll must fail validation")

	post.Poll = &PostPoll{Options: []PostPollOption{option("a"), option("b")}}
	assert.NoError(t, post.Validate())

	post.Poll = &PostPoll{Options: []PostPollOption{
		option("a"), option("b"), option("c"), option("d"), option("e"),
	}}
	assert.Error(t, post.Validate(), "a five-option poll must fail validation")
}

func TestPostDocumentFromRaw(t *testing.T) {
	id := primitive.NewObjectID()
	postedAt := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("datetime posted_at", func(t *testing.T) {
		doc, err := PostDocumentFromRaw(bson.M{
			"_id":       id,
			"author_id": "profile-1",
			"content":   "hello",
			"posted_at": primitive.NewDateTimeFromTime(postedAt),
		})
		require.NoError(t, err)
		assert.Equal(t, id, doc.ID)
		assert.Equal(t, "profile-1", doc.AuthorID)
		assert.Equal(t, "hello", doc.Content)
		assert.True(t, doc.PostedAt.Equal(postedAt))
		assert.Nil(t, doc.AttachmentURL)
	})

	t.Run("string posted_at", func(t *testing.T) {
		doc, err := PostDocumentFromRaw(bson.M{
			"_id":       id,
			"author_id": "profile-1",
			"posted_at": postedAt.Format(time.RFC3339),
		})
		require.NoError(t, err)
		assert.True(t, doc.PostedAt.Equal(postedAt))
	})

	t.Run("time posted_at", func(t *testing.T) {
		doc, err := PostDocumentFromRaw(bson.M{
			"_id":       id,
			"author_id": "profile-1",
			"posted_at": postedAt,
		})
		require.NoError(t, err)
		assert.True(t, doc.PostedAt.Equal(postedAt))
	})

	t.Run("attachment_url kept when set", func(t *testing.T) {
		doc, err := PostDocumentFromRaw(bson.M{
			"_id":            id,
			"author_id":      "profile-1",
			"posted_at":      postedAt,
			"attachment_url": "images/abc/1",
		})
		require.NoError(t, err)
		require.NotNil(t, doc.AttachmentURL)
		assert.Equal(t, "images/abc/1", *doc.AttachmentURL)
	})

	t.Run("missing author_id fails", func(t *testing.T) {
		_, err := PostDocumentFromRaw(bson.M{
			"_id":       id,
			"posted_at": postedAt,
		})
		assert.Error(t, err)
	})

	t.Run("missing posted_at fails", func(t *testing.T) {
		_, err := PostDocumentFromRaw(bson.M{
			"_id":       id,
			"author_id": "profile-1",
		})
		assert.Error(t, err)
	})

	t.Run("unparseable posted_at string fails", func(t *testing.T) {
		_, err := PostDocumentFromRaw(bson.M{
			"_id":       id,
			"author_id": "profile-1",
			"posted_at": "yesterday",
		})
		assert.Error(t, err)
	})
}

func TestNormalizeAttachments(t *testing.T) {
	assert.Equal(t, []PostAttachment{}, NormalizeAttachments(nil))

	got := NormalizeAttachments([]PostAttachment{
		{Path: "p/3", Position: 3},
		{Path: "p/1", Position: 1},
		{Path: "p/2", Position: 2},
	})
	require.Len(t, got, 3)
	assert.Equal(t, "p/1", got[0].Path)
	assert.Equal(t, "p/2", got[1].Path)
	assert.Equal(t, "p/3", got[2].Path)
}

func TestNormalizePoll(t *testing.T) {
	assert.Nil(t, NormalizePoll(nil))
	assert.Nil(t, NormalizePoll([]PostPoll{}))

	question := "tea or coffee?"
	polls := []PostPoll{
		{Question: &question},
		{Question: nil},
	}
	got := NormalizePoll(polls)
	require.NotNil(t, got)
	assert.Equal(t, &question, got.Question)
}

func TestPollDraftCleanOptions(t *testing.T) {
	draft := &PollDraft{Options: []string{" tea ", "coffee", "", "tea", "matcha", "water", "juice"}}
	got := draft.CleanOptions()
	assert.Equal(t, []string{"tea", "coffee", "matcha", "water"}, got)

	draft = &PollDraft{Options: []string{"  ", ""}}
	assert.Empty(t, draft.CleanOptions())
}

func TestVibeKindValid(t *testing.T) {
	assert.True(t, VibeAuraUp.Valid())
	assert.True(t, VibeReal.Valid())
	assert.True(t, VibeMood.Valid())
	assert.True(t, VibeChaotic.Valid())
	assert.False(t, VibeNone.Valid())
	assert.False(t, VibeKind("fire").Valid())
}

func TestFeedKindValid(t *testing.T) {
	assert.True(t, FeedGlobal.Valid())
	assert.True(t, FeedFollowing.Valid())
	assert.True(t, FeedLiked.Valid())
	assert.True(t, FeedMine.Valid())
	assert.False(t, FeedKind("trending").Valid())
}
