package models

import (
	"fmt"
	"sort"
	"time"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

var validate = validator.New()

// PostDocument is the raw post row stored in MongoDB. Content is immutable
// after creation; only the legacy attachment_url field is ever updated.
type PostDocument struct {
	ID            primitive.ObjectID `bson:"_id,omitempty"`
	AuthorID      string             `bson:"author_id"`
	Content       string             `bson:"content"`
	PostedAt      time.Time          `bson:"posted_at"`
	AttachmentURL *string            `bson:"attachment_url,omitempty"`
}

// Post is the fully assembled post shape crossing the API boundary:
// the document merged with its author and all relational children.
type Post struct {
	ID            string           `json:"id" validate:"required"`
	Content       string           `json:"content"`
	PostedAt      time.Time        `json:"posted_at" validate:"required"`
	Author        Author           `json:"author"`
	Likes         []PostLike       `json:"likes" validate:"dive"`
	Vibes         []PostVibe       `json:"vibes" validate:"dive"`
	Attachments   []PostAttachment `json:"attachments" validate:"dive"`
	Poll          *PostPoll        `json:"poll" validate:"omitempty"`
	AttachmentURL *string          `json:"attachment_url"`
}

// PostLike is a single like entry embedded in a post
type PostLike struct {
	ProfileID string `json:"profile_id" validate:"required"`
}

// PostVibe is a single vibe reaction embedded in a post
type PostVibe struct {
	ProfileID string   `json:"profile_id" validate:"required"`
	Vibe      VibeKind `json:"vibe" validate:"required,oneof=aura_up real mood chaotic"`
}

// PostAttachment is a single ordered media entry embedded in a post
type PostAttachment struct {
	Path     string `json:"path" validate:"required"`
	Position int    `json:"position"`
}

// Validate checks an assembled post against the schema. A failure means the
// data crossing the boundary does not match the contract and is fatal.
func (p *Post) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("post %q failed schema validation: %w", p.ID, err)
	}
	return nil
}

// PostDocumentFromRaw builds a PostDocument from a loosely shaped BSON map.
// Legacy documents store posted_at as a datetime, a string, or a time value
// and may carry attachment_url as null; all of those are coerced here rather
// than at each call site.
func PostDocumentFromRaw(raw bson.M) (PostDocument, error) {
	var doc PostDocument

	id, ok := raw["_id"].(primitive.ObjectID)
	if !ok {
		return doc, fmt.Errorf("post document missing _id")
	}
	doc.ID = id

	authorID, ok := raw["author_id"].(string)
	if !ok || authorID == "" {
		return doc, fmt.Errorf("post document %s missing author_id", id.Hex())
	}
	doc.AuthorID = authorID

	if content, ok := raw["content"].(string); ok {
		doc.Content = content
	}

	postedAt, err := coerceTime(raw["posted_at"])
	if err != nil {
		return doc, fmt.Errorf("post document %s: %w", id.Hex(), err)
	}
	doc.PostedAt = postedAt

	if path, ok := raw["attachment_url"].(string); ok && path != "" {
		doc.AttachmentURL = &path
	}

	return doc, nil
}

// coerceTime normalizes the stored forms of posted_at to a time.Time
func coerceTime(value interface{}) (time.Time, error) {
	switch v := value.(type) {
	case time.Time:
		return v, nil
	case primitive.DateTime:
		return v.Time(), nil
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			return time.Time{}, fmt.Errorf("unparseable posted_at %q: %w", v, err)
		}
		return t, nil
	default:
		return time.Time{}, fmt.Errorf("missing or invalid posted_at")
	}
}

// NormalizeAttachments guarantees a non-nil slice ordered by position
func NormalizeAttachments(attachments []PostAttachment) []PostAttachment {
	if attachments == nil {
		return []PostAttachment{}
	}
	sort.SliceStable(attachments, func(i, j int) bool {
		return attachments[i].Position < attachments[j].Position
	})
	return attachments
}

// CreatePostRequest defines the non-file fields for creating a new post
type CreatePostRequest struct {
	Content      string   `json:"content" validate:"required,min=1,max=500"`
	PollQuestion string   `json:"poll_question,omitempty"`
	PollOptions  []string `json:"poll_options,omitempty" validate:"omitempty,max=8,dive,max=100"`
}
