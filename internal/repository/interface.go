package repository

import (
	"context"
	"errors"

	"github.com/openwave-social/openwave/internal/domain"
)

var (
	ErrUserNotFound     = errors.New("user not found")
	ErrUsernameExists   = errors.New("username already exists")
	ErrEmailExists      = errors.New("email already exists")
	ErrPostNotFound     = errors.New("post not found")
	ErrCommentNotFound  = errors.New("comment not found")
	ErrAlreadyLiked     = errors.New("post already liked")
	ErrNotLiked         = errors.New("post not liked")
	ErrAlreadyFollowing = errors.New("already following")
	ErrFollowNotFound   = errors.New("follow relationship not found")
)

// UserRepository defines persistence operations for users.
type UserRepository interface {
	Create(ctx context.Context, user *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	Update(ctx context.Context, user *domain.User) error
	// Delete removes the user and everything they own (posts, comments,
	// likes, follow edges, notifications, profile) in one transaction.
	Delete(ctx context.Context, id string) error
	// Search matches users by username or email substring, case-insensitive.
	Search(ctx context.Context, query string, limit int) ([]domain.User, error)
	// GetStats returns follower/following/post counts for a user.
	GetStats(ctx context.Context, userID string) (*domain.UserStats, error)
	// BatchGetStats returns counts for several users at once.
	BatchGetStats(ctx context.Context, userIDs []string) (map[string]domain.UserStats, error)
}

// PostRepository defines persistence operations for posts and likes.
type PostRepository interface {
	Create(ctx context.Context, post *domain.Post) error
	GetByID(ctx context.Context, id string) (*domain.Post, error)
	ListAll(ctx context.Context) ([]domain.Post, error)
	ListByAuthor(ctx context.Context, authorID string) ([]domain.Post, error)
	// ListFeed returns posts authored by users the follower follows,
	// newest first.
	ListFeed(ctx context.Context, followerID string) ([]domain.Post, error)
	UpdateContent(ctx context.Context, id, content string) error
	// Delete removes the post with its comments, likes, and notifications
	// in one transaction.
	Delete(ctx context.Context, id string) error
	Like(ctx context.Context, postID, userID string) error
	Unlike(ctx context.Context, postID, userID string) error
	// Search matches posts by content substring, case-insensitive,
	// newest first.
	Search(ctx context.Context, query string, limit int) ([]domain.Post, error)
}

// CommentRepository defines persistence operations for comments.
type CommentRepository interface {
	Create(ctx context.Context, comment *domain.Comment) error
	// GetByID returns the comment only when it belongs to the given post.
	GetByID(ctx context.Context, postID, commentID string) (*domain.Comment, error)
	ListByPost(ctx context.Context, postID string) ([]domain.Comment, error)
	UpdateContent(ctx context.Context, id, content string) error
	Delete(ctx context.Context, id string) error
}

// FollowRepository defines persistence operations for follow edges.
type FollowRepository interface {
	Follow(ctx context.Context, followerID, followingID string) error
	Unfollow(ctx context.Context, followerID, followingID string) error
	IsFollowing(ctx context.Context, followerID, followingID string) (bool, error)
	BatchIsFollowing(ctx context.Context, followerID string, targetIDs []string) (map[string]bool, error)
	ListFollowers(ctx context.Context, userID string) ([]domain.User, error)
	ListFollowing(ctx context.Context, userID string) ([]domain.User, error)
}

// NotificationRepository defines persistence operations for notifications.
type NotificationRepository interface {
	Create(ctx context.Context, n *domain.Notification) error
	// ListByRecipient returns the recipient's notifications newest first,
	// with sender username and post preview resolved.
	ListByRecipient(ctx context.Context, recipientID string) ([]domain.Notification, error)
	// MarkAllRead flips every unread notification of the recipient and
	// returns how many were updated.
	MarkAllRead(ctx context.Context, recipientID string) (int64, error)
}

// ProfileRepository defines persistence operations for profiles.
type ProfileRepository interface {
	// GetOrCreate returns the user's profile, creating an empty one when
	// missing. Concurrent creation races resolve to the surviving row.
	GetOrCreate(ctx context.Context, userID string) (*domain.Profile, error)
	Update(ctx context.Context, profile *domain.Profile) error
}
