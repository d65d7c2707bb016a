package queries

import (
	"context"
	"errors"
	"fmt"

	"github.com/aurafeed/backend/internal/models"
	"gorm.io/gorm"
)

// GetProfileData loads the author shape for a profile, or (nil, nil) when
// the profile does not exist
func (q *Queries) GetProfileData(ctx context.Context, profileID string) (*models.Author, error) {
	profile, err := q.profiles.GetProfileByID(profileID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	author := profile.ToAuthor()
	return &author, nil
}

// GetFollowCounts returns the follower and following totals for a profile
func (q *Queries) GetFollowCounts(ctx context.Context, profileID string) (followers, following int64, err error) {
	followers, err = q.follows.GetFollowersCount(profileID)
	if err != nil {
		return 0, 0, fmt.Errorf("count followers: %w", err)
	}
	following, err = q.follows.GetFollowingCount(profileID)
	if err != nil {
		return 0, 0, fmt.Errorf("count following: %w", err)
	}
	return followers, following, nil
}

// UpdateProfile patches the viewer's editable fields. Empty request fields
// are left untouched; a handle change is rejected when another profile
// already holds it.
func (q *Queries) UpdateProfile(ctx context.Context, viewerID string, req models.UpdateProfileRequest) (*models.Author, error) {
	profile, err := q.profiles.GetProfileByID(viewerID)
	if err != nil {
		return nil, fmt.Errorf("get profile: %w", err)
	}

	if req.Handle != "" && req.Handle != profile.Handle {
		existing, err := q.profiles.GetProfileByHandle(req.Handle)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("check handle: %w", err)
		}
		if existing != nil {
			return nil, fmt.Errorf("handle %q is already taken", req.Handle)
		}
		profile.Handle = req.Handle
	}
	if req.Name != "" {
		profile.Name = req.Name
	}

	if err := q.profiles.UpdateProfile(profile); err != nil {
		return nil, fmt.Errorf("update profile: %w", err)
	}

	// The author shape is embedded in every cached post and feed page
	q.cache.InvalidateAll()
	author := profile.ToAuthor()
	return &author, nil
}

// GetFollowing lists the profiles the given profile follows, flattened to
// author shapes
func (q *Queries) GetFollowing(ctx context.Context, profileID string) ([]models.Author, error) {
	profiles, err := q.follows.GetFollowing(profileID)
	if err != nil {
		return nil, fmt.Errorf("load following: %w", err)
	}
	return toAuthors(profiles), nil
}

// GetFollowers lists the profiles following the given profile
func (q *Queries) GetFollowers(ctx context.Context, profileID string) ([]models.Author, error) {
	profiles, err := q.follows.GetFollowers(profileID)
	if err != nil {
		return nil, fmt.Errorf("load followers: %w", err)
	}
	return toAuthors(profiles), nil
}

// ToggleFollowing creates the viewer's follow edge to a profile if absent
// and removes it if present. Returns the resulting state (true when now
// following).
func (q *Queries) ToggleFollowing(ctx context.Context, viewerID, profileID string) (bool, error) {
	if viewerID == profileID {
		return false, fmt.Errorf("cannot follow yourself")
	}

	isFollowing, err := q.follows.IsFollowing(viewerID, profileID)
	if err != nil {
		return false, fmt.Errorf("check follow: %w", err)
	}

	if isFollowing {
		if err := q.follows.DeleteFollow(viewerID, profileID); err != nil {
			return false, fmt.Errorf("remove follow: %w", err)
		}
	} else {
		follow := &models.Follow{FollowerID: viewerID, FollowingID: profileID}
		if err := q.follows.CreateFollow(follow); err != nil {
			return false, fmt.Errorf("add follow: %w", err)
		}
	}

	// The following feed is computed from the followee set
	q.cache.InvalidatePrefix("feed:" + string(models.FeedFollowing))
	return !isFollowing, nil
}

// UpdateAvatar replaces or clears the viewer's avatar. A nil file clears
// the avatar URL; otherwise the file is upsert-uploaded to the avatars
// bucket named by the profile ID (no extension) and the profile row is
// updated with the object's public URL.
func (q *Queries) UpdateAvatar(ctx context.Context, viewerID string, file []byte) error {
	if file == nil {
		if err := q.profiles.SetAvatar(viewerID, nil); err != nil {
			return fmt.Errorf("clear avatar: %w", err)
		}
		q.cache.InvalidateAll()
		return nil
	}

	path, err := q.storage.Upload(ctx, AvatarsBucket, viewerID, file, true)
	if err != nil {
		return fmt.Errorf("upload avatar: %w", err)
	}
	url := q.storage.PublicURL(AvatarsBucket, path)
	if err := q.profiles.SetAvatar(viewerID, &url); err != nil {
		return fmt.Errorf("set avatar: %w", err)
	}

	// The author shape is embedded in every cached post and feed page
	q.cache.InvalidateAll()
	return nil
}

func toAuthors(profiles []models.Profile) []models.Author {
	authors := make([]models.Author, len(profiles))
	for i, p := range profiles {
		authors[i] = p.ToAuthor()
	}
	return authors
}
