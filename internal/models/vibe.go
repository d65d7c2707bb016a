package models

import "time"

// VibeKind is the fixed set of single-choice mood reactions a profile can
// attach to a post
type VibeKind string

const (
	VibeAuraUp  VibeKind = "aura_up"
	VibeReal    VibeKind = "real"
	VibeMood    VibeKind = "mood"
	VibeChaotic VibeKind = "chaotic"
)

// VibeNone is the zero value, meaning no reaction is set
const VibeNone VibeKind = ""

// Valid reports whether v is one of the allowed vibe kinds
func (v VibeKind) Valid() bool {
	switch v {
	case VibeAuraUp, VibeReal, VibeMood, VibeChaotic:
		return true
	}
	return false
}

// Vibe represents a vibe reaction on a post (PostgreSQL). At most one per
// (post, profile); setting a different kind replaces the row in place.
type Vibe struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	PostID    string    `json:"post_id" gorm:"index;uniqueIndex:idx_post_profile_vibe"`
	ProfileID string    `json:"profile_id" gorm:"index;uniqueIndex:idx_post_profile_vibe"`
	Vibe      VibeKind  `json:"vibe" gorm:"size:20"`
	CreatedAt time.Time `json:"created_at"`
}

// SetVibeRequest defines the request body for reacting to a post
type SetVibeRequest struct {
	Vibe VibeKind `json:"vibe" validate:"required,oneof=aura_up real mood chaotic"`
}
