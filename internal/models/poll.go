package models

import (
	"strings"
	"time"
)

// Poll option sets are fixed at creation: between 2 and 4 unique,
// non-empty labels.
const (
	PollMinOptions = 2
	PollMaxOptions = 4
)

// Poll represents the optional 1:1 poll child of a post (PostgreSQL)
type Poll struct {
	ID        string    `json:"id" gorm:"type:uuid;primaryKey"`
	PostID    string    `json:"post_id" gorm:"uniqueIndex"`
	Question  *string   `json:"question"`
	CreatedAt time.Time `json:"created_at"`
}

// PollOption represents a single choice belonging to a poll (PostgreSQL)
type PollOption struct {
	ID       string `json:"id" gorm:"type:uuid;primaryKey"`
	PollID   string `json:"poll_id" gorm:"index"`
	Label    string `json:"label"`
	Position int    `json:"position"`
}

// PollVote represents a vote on a poll option (PostgreSQL). The
// (poll, profile) pair is unique so a profile can never hold two votes in
// the same poll.
type PollVote struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PollID    string    `json:"poll_id" gorm:"index;uniqueIndex:idx_poll_profile_vote"`
	OptionID  string    `json:"option_id" gorm:"index"`
	ProfileID string    `json:"profile_id" gorm:"uniqueIndex:idx_poll_profile_vote"`
	CreatedAt time.Time `json:"created_at"`
}

// PostPoll is the poll shape embedded in an assembled post
type PostPoll struct {
	Question *string          `json:"question"`
	Options  []PostPollOption `json:"options" validate:"min=2,max=4,dive"`
}

// PostPollOption is a poll option with its votes, embedded in a post
type PostPollOption struct {
	ID       string         `json:"id" validate:"required"`
	Label    string         `json:"label" validate:"required"`
	Position int            `json:"position"`
	Votes    []PostPollVote `json:"votes" validate:"dive"`
}

// PostPollVote is a single vote entry embedded in a poll option
type PostPollVote struct {
	ProfileID string `json:"profile_id" validate:"required"`
}

// NormalizePoll collapses the rows of a has-many poll join to the single
// optional poll a post can carry. Relational reads always yield a slice;
// the API shape wants one poll or none, never an ambiguous array.
func NormalizePoll(polls []PostPoll) *PostPoll {
	if len(polls) == 0 {
		return nil
	}
	return &polls[0]
}

// PollDraft carries the poll fields of a create-post request before they
// are persisted
type PollDraft struct {
	Question *string
	Options  []string
}

// CleanOptions trims, drops empties, deduplicates preserving submission
// order, and caps the label set at PollMaxOptions. The result is only
// usable as a poll if it still has at least PollMinOptions entries.
func (d *PollDraft) CleanOptions() []string {
	seen := make(map[string]bool)
	cleaned := make([]string, 0, len(d.Options))
	for _, label := range d.Options {
		label = strings.TrimSpace(label)
		if label == "" || seen[label] {
			continue
		}
		seen[label] = true
		cleaned = append(cleaned, label)
		if len(cleaned) == PollMaxOptions {
			break
		}
	}
	return cleaned
}
