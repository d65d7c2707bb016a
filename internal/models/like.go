package models

import "time"

// Like represents a like on a post (PostgreSQL). Existence is the state:
// the (post, profile) pair is unique and presence means "liked".
type Like struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_post_profile_like"`
	ProfileID string    `json:"profile_id" gorm:"index;uniqueIndex:idx_post_profile_like"`
	CreatedAt time.Time `json:"created_at"`
}
