package domain

import (
	"time"
)

// Profile is the 1:1 extension of a user holding bio and avatar data.
type Profile struct {
	ID        string    `json:"-"`
	UserID    string    `json:"-"`
	Bio       string    `json:"bio"`
	AvatarKey string    `json:"-"`
	CreatedAt time.Time `json:"created_at"`
}

// ProfileResponse represents a profile in API responses, merging user
// identity, profile data, and derived counters.
type ProfileResponse struct {
	Username  string    `json:"username"`
	Email     string    `json:"email"`
	Bio       string    `json:"bio"`
	Avatar    string    `json:"avatar,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UserStats
	IsFollowing bool `json:"is_following"`
}

// UpdateProfileRequest represents a partial profile update. All fields are
// optional; username and email update the underlying user record.
type UpdateProfileRequest struct {
	Username *string `json:"username"`
	Email    *string `json:"email"`
	Bio      *string `json:"bio"`
	Avatar   *string `json:"avatar"`
}
