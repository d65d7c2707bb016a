package models

// Attachment represents an ordered media item belonging to a post
// (PostgreSQL). Path points into the images bucket in object storage.
type Attachment struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	PostID   string `json:"post_id" gorm:"index;uniqueIndex:idx_post_position_attachment"`
	Path     string `json:"path"`
	Position int    `json:"position" gorm:"uniqueIndex:idx_post_position_attachment"`
}
