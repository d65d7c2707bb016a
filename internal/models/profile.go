package models

import (
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Profile represents a registered account stored in PostgreSQL
type Profile struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"not null" json:"name"`
	Handle    string    `gorm:"uniqueIndex;not null" json:"handle"`
	Email     string    `gorm:"uniqueIndex;not null" json:"-"`
	Password  string    `gorm:"not null" json:"-"`
	AvatarURL *string   `json:"avatar_url"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Author is the public profile shape embedded in posts and listings
type Author struct {
	ID        string  `json:"id" validate:"required"`
	Name      string  `json:"name" validate:"required"`
	Handle    string  `json:"handle" validate:"required"`
	AvatarURL *string `json:"avatar_url"`
}

// ToAuthor flattens a profile to its public author shape
func (p *Profile) ToAuthor() Author {
	return Author{
		ID:        p.ID,
		Name:      p.Name,
		Handle:    p.Handle,
		AvatarURL: p.AvatarURL,
	}
}

// SignupRequest defines the request body for registering a profile
type SignupRequest struct {
	Name     string `json:"name" validate:"required,min=1,max=100"`
	Handle   string `json:"handle" validate:"required,min=3,max=30,alphanum"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// SigninRequest defines the request body for signing in
type SigninRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// UpdateProfileRequest defines the editable profile fields
type UpdateProfileRequest struct {
	Name   string `json:"name,omitempty" validate:"omitempty,min=1,max=100"`
	Handle string `json:"handle,omitempty" validate:"omitempty,min=3,max=30,alphanum"`
}

// JwtCustomClaims are custom claims extending default ones
type JwtCustomClaims struct {
	ProfileID string `json:"profile_id"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}
