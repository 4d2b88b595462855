package service

import (
	"context"
	"errors"
	"io"

	"github.com/openwave-social/openwave/internal/domain"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUserNotFound       = errors.New("user not found")
	ErrPostNotFound       = errors.New("post not found")
	ErrCommentNotFound    = errors.New("comment not found")
	ErrNotAuthor          = errors.New("only the author may modify this resource")
	ErrAlreadyLiked       = errors.New("you already liked this post")
	ErrNotLiked           = errors.New("you have not liked this post")
	ErrSelfFollow         = errors.New("you cannot follow yourself")
	ErrAlreadyFollowing   = errors.New("you are already following this user")
	ErrNotFollowing       = errors.New("you are not following this user")
	ErrEmptyQuery         = errors.New("search query is required")
)

// AuthService defines authentication and account business logic.
type AuthService interface {
	Register(ctx context.Context, req *domain.RegisterRequest) (*domain.AuthResponse, error)
	Login(ctx context.Context, req *domain.LoginRequest) (*domain.AuthResponse, error)
	RefreshToken(ctx context.Context, req *domain.RefreshTokenRequest) (*domain.AuthResponse, error)
	// Logout blacklists the supplied refresh token until its natural expiry.
	Logout(ctx context.Context, userID string, req *domain.LogoutRequest) error
}

// PostService defines post, like, and comment business logic.
type PostService interface {
	CreatePost(ctx context.Context, userID string, req *domain.CreatePostRequest) (*domain.Post, error)
	GetPost(ctx context.Context, postID string) (*domain.Post, error)
	ListPosts(ctx context.Context) ([]domain.Post, error)
	// ReplacePost and PatchPost both enforce the author-only rule.
	ReplacePost(ctx context.Context, userID, postID string, req *domain.CreatePostRequest) (*domain.Post, error)
	PatchPost(ctx context.Context, userID, postID string, req *domain.UpdatePostRequest) (*domain.Post, error)
	DeletePost(ctx context.Context, userID, postID string) error
	Like(ctx context.Context, userID, postID string) error
	Unlike(ctx context.Context, userID, postID string) error

	CreateComment(ctx context.Context, userID, postID string, req *domain.CreateCommentRequest) (*domain.Comment, error)
	GetComment(ctx context.Context, postID, commentID string) (*domain.Comment, error)
	ListComments(ctx context.Context, postID string) ([]domain.Comment, error)
	ReplaceComment(ctx context.Context, userID, postID, commentID string, req *domain.CreateCommentRequest) (*domain.Comment, error)
	DeleteComment(ctx context.Context, userID, postID, commentID string) error
}

// SocialService defines follow-graph and feed business logic.
type SocialService interface {
	Follow(ctx context.Context, userID, targetUsername string) error
	Unfollow(ctx context.Context, userID, targetUsername string) error
	// Followers and Following return user summaries with counts and the
	// viewer-relative is_following flag. viewerID may be empty.
	Followers(ctx context.Context, viewerID, username string) ([]domain.UserResponse, error)
	Following(ctx context.Context, viewerID, username string) ([]domain.UserResponse, error)
	Feed(ctx context.Context, userID string) ([]domain.Post, error)
}

// ProfileService defines profile business logic.
type ProfileService interface {
	// GetOwnProfile returns the caller's profile, creating it when missing.
	GetOwnProfile(ctx context.Context, userID string) (*domain.ProfileResponse, error)
	UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.ProfileResponse, error)
	// UploadAvatar stores the avatar bytes and records the storage key.
	UploadAvatar(ctx context.Context, userID, filename, contentType string, r io.Reader, size int64) (*domain.ProfileResponse, error)
	// GetUserProfile returns a public profile view; viewerID may be empty.
	GetUserProfile(ctx context.Context, viewerID, username string) (*domain.ProfileResponse, error)
	GetUserPosts(ctx context.Context, username string) ([]domain.Post, error)
}

// NotificationService defines notification business logic.
type NotificationService interface {
	List(ctx context.Context, userID string) ([]domain.Notification, error)
	MarkAllRead(ctx context.Context, userID string) (int64, error)
}

// SearchResponse bundles user and post search hits.
type SearchResponse struct {
	Users []domain.UserResponse `json:"users"`
	Posts []domain.Post         `json:"posts"`
}

// SearchService defines search business logic.
type SearchService interface {
	// Search matches users (top 10) and posts (top 20) by substring.
	// viewerID may be empty.
	Search(ctx context.Context, viewerID, query string) (*SearchResponse, error)
}
