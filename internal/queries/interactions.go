package queries

import (
	"context"
	"fmt"

	"github.com/aurafeed/backend/internal/models"
)

// ToggleLike creates the viewer's like on a post if absent and removes it
// if present. Returns the resulting state (true when the post is now
// liked). Duplicate toggles are idempotent at the store: delete-if-exists,
// insert-if-absent.
func (q *Queries) ToggleLike(ctx context.Context, viewerID, postID string) (bool, error) {
	hasLiked, err := q.likes.HasLiked(postID, viewerID)
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}

	if hasLiked {
		if err := q.likes.DeleteLike(postID, viewerID); err != nil {
			return false, fmt.Errorf("remove like: %w", err)
		}
		q.invalidatePostReads(postID)
		return false, nil
	}

	like := &models.Like{PostID: postID, ProfileID: viewerID}
	if err := q.likes.CreateLike(like); err != nil {
		return false, fmt.Errorf("add like: %w", err)
	}
	q.invalidatePostReads(postID)
	return true, nil
}

// SetVibe applies toggle-to-none semantics to the viewer's vibe reaction
// on a post: no reaction inserts the kind, the same kind clears it, a
// different kind replaces it. Returns the resulting kind (VibeNone when
// cleared). A profile never holds more than one reaction per post.
func (q *Queries) SetVibe(ctx context.Context, viewerID, postID string, kind models.VibeKind) (models.VibeKind, error) {
	if !kind.Valid() {
		return models.VibeNone, fmt.Errorf("invalid vibe %q", kind)
	}

	existing, err := q.vibes.GetVibe(postID, viewerID)
	if err != nil {
		return models.VibeNone, fmt.Errorf("check vibe: %w", err)
	}

	switch {
	case existing == nil:
		vibe := &models.Vibe{PostID: postID, ProfileID: viewerID, Vibe: kind}
		if err := q.vibes.CreateVibe(vibe); err != nil {
			return models.VibeNone, fmt.Errorf("add vibe: %w", err)
		}
	case existing.Vibe == kind:
		if err := q.vibes.DeleteVibe(postID, viewerID); err != nil {
			return models.VibeNone, fmt.Errorf("clear vibe: %w", err)
		}
		kind = models.VibeNone
	default:
		if err := q.vibes.UpdateVibe(postID, viewerID, kind); err != nil {
			return models.VibeNone, fmt.Errorf("replace vibe: %w", err)
		}
	}

	q.invalidatePostReads(postID)
	return kind, nil
}

// VotePoll applies toggle-to-none semantics to the viewer's vote in the
// poll owning the given option: no vote records one, the same option
// retracts it, a different option retracts the prior vote and records the
// new one. Returns the option ID now voted for, or "" when the vote was
// cleared. A profile never holds more than one vote across a poll's
// options.
func (q *Queries) VotePoll(ctx context.Context, viewerID, optionID string) (string, error) {
	option, err := q.polls.GetOption(optionID)
	if err != nil {
		return "", fmt.Errorf("get poll option: %w", err)
	}
	if option == nil {
		return "", fmt.Errorf("poll option not found")
	}

	existing, err := q.polls.GetVote(option.PollID, viewerID)
	if err != nil {
		return "", fmt.Errorf("check poll vote: %w", err)
	}

	selected := optionID
	switch {
	case existing == nil:
		vote := &models.PollVote{PollID: option.PollID, OptionID: optionID, ProfileID: viewerID}
		if err := q.polls.CreateVote(vote); err != nil {
			return "", fmt.Errorf("add poll vote: %w", err)
		}
	case existing.OptionID == optionID:
		if err := q.polls.DeleteVote(option.PollID, viewerID); err != nil {
			return "", fmt.Errorf("retract poll vote: %w", err)
		}
		selected = ""
	default:
		if err := q.polls.DeleteVote(option.PollID, viewerID); err != nil {
			return "", fmt.Errorf("retract prior poll vote: %w", err)
		}
		vote := &models.PollVote{PollID: option.PollID, OptionID: optionID, ProfileID: viewerID}
		if err := q.polls.CreateVote(vote); err != nil {
			return "", fmt.Errorf("switch poll vote: %w", err)
		}
	}

	// The vote is recorded; cached reads must refetch even when the
	// owning post cannot be resolved from the poll row. Dropping the
	// whole cache in that case is crude but never leaves a stale post.
	poll, err := q.polls.GetPoll(option.PollID)
	if err != nil || poll == nil {
		q.cache.InvalidateAll()
		return selected, nil
	}
	q.invalidatePostReads(poll.PostID)
	return selected, nil
}

// HasLiked reports whether the viewer currently likes the post
func (q *Queries) HasLiked(ctx context.Context, viewerID, postID string) (bool, error) {
	liked, err := q.likes.HasLiked(postID, viewerID)
	if err != nil {
		return false, fmt.Errorf("check like: %w", err)
	}
	return liked, nil
}

// GetViewerVibe returns the viewer's current vibe reaction on a post,
// VibeNone when there is none
func (q *Queries) GetViewerVibe(ctx context.Context, viewerID, postID string) (models.VibeKind, error) {
	vibe, err := q.vibes.GetVibe(postID, viewerID)
	if err != nil {
		return models.VibeNone, fmt.Errorf("check vibe: %w", err)
	}
	if vibe == nil {
		return models.VibeNone, nil
	}
	return vibe.Vibe, nil
}

// GetPollSelection resolves a poll option to its poll and reports the
// viewer's current vote in that poll ("" when there is none)
func (q *Queries) GetPollSelection(ctx context.Context, viewerID, optionID string) (pollID, selectedOptionID string, err error) {
	option, err := q.polls.GetOption(optionID)
	if err != nil {
		return "", "", fmt.Errorf("get poll option: %w", err)
	}
	if option == nil {
		return "", "", fmt.Errorf("poll option not found")
	}

	vote, err := q.polls.GetVote(option.PollID, viewerID)
	if err != nil {
		return "", "", fmt.Errorf("check poll vote: %w", err)
	}
	if vote == nil {
		return option.PollID, "", nil
	}
	return option.PollID, vote.OptionID, nil
}
