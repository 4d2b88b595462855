package domain

import (
	"time"
)

// Post represents an authored post. LikeCount is derived at read time.
type Post struct {
	ID             string    `json:"id"`
	AuthorID       string    `json:"-"`
	AuthorUsername string    `json:"author"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
	LikeCount      int64     `json:"like_count"`
}

// Comment represents a comment attached to a post.
type Comment struct {
	ID             string    `json:"id"`
	PostID         string    `json:"post"`
	AuthorID       string    `json:"-"`
	AuthorUsername string    `json:"author"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// CreatePostRequest represents a post creation or full-replace request.
// Author and timestamp are server-assigned.
type CreatePostRequest struct {
	Content string `json:"content" binding:"required"`
}

// UpdatePostRequest represents a partial post update.
type UpdatePostRequest struct {
	Content *string `json:"content"`
}

// CreateCommentRequest represents a comment creation or replace request.
type CreateCommentRequest struct {
	Content string `json:"content" binding:"required"`
}
