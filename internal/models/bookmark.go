package models

import "time"

// Bookmark represents a saved post for a profile (PostgreSQL), independent
// of likes
type Bookmark struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProfileID string    `json:"profile_id" gorm:"index;uniqueIndex:idx_profile_post_bookmark"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_profile_post_bookmark"`
	CreatedAt time.Time `json:"created_at"`
}

// ImportBookmarksRequest defines the request body for importing legacy
// client-side bookmarks in bulk
type ImportBookmarksRequest struct {
	PostIDs []string `json:"post_ids" validate:"required,min=1,dive,required"`
}
