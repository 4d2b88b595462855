package service

import (
	"context"
	"errors"
	"strings"

	"github.com/openwave-social/openwave/internal/audit"
	"github.com/openwave-social/openwave/internal/domain"
	"github.com/openwave-social/openwave/internal/repository"
	"github.com/openwave-social/openwave/pkg/log"
)

// postServiceImpl implements PostService.
type postServiceImpl struct {
	posts         repository.PostRepository
	comments      repository.CommentRepository
	notifications repository.NotificationRepository
}

// NewPostService creates a new post service.
func NewPostService(
	posts repository.PostRepository,
	comments repository.CommentRepository,
	notifications repository.NotificationRepository,
) PostService {
	return &postServiceImpl{
		posts:         posts,
		comments:      comments,
		notifications: notifications,
	}
}

// CreatePost creates a post authored by userID.
func (s *postServiceImpl) CreatePost(ctx context.Context, userID string, req *domain.CreatePostRequest) (*domain.Post, error) {
	post := &domain.Post{
		AuthorID: userID,
		Content:  req.Content,
	}
	if err := s.posts.Create(ctx, post); err != nil {
		log.Ctx(ctx).Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to create post")
		return nil, err
	}

	audit.LogTarget(ctx, audit.ActionCreatePost, userID, post.ID, "post created")

	// Re-read for the author username and like count.
	return s.GetPost(ctx, post.ID)
}

// GetPost retrieves a single post.
func (s *postServiceImpl) GetPost(ctx context.Context, postID string) (*domain.Post, error) {
	post, err := s.posts.GetByID(ctx, postID)
	if err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return post, nil
}

// ListPosts returns every post, newest first.
func (s *postServiceImpl) ListPosts(ctx context.Context) ([]domain.Post, error) {
	return s.posts.ListAll(ctx)
}

// ReplacePost overwrites a post's content. Author-only.
func (s *postServiceImpl) ReplacePost(ctx context.Context, userID, postID string, req *domain.CreatePostRequest) (*domain.Post, error) {
	if err := s.authorizePost(ctx, userID, postID); err != nil {
		return nil, err
	}

	if err := s.posts.UpdateContent(ctx, postID, req.Content); err != nil {
		return nil, err
	}

	audit.LogTarget(ctx, audit.ActionUpdatePost, userID, postID, "post updated")
	return s.GetPost(ctx, postID)
}

// PatchPost applies a partial update. Author-only.
func (s *postServiceImpl) PatchPost(ctx context.Context, userID, postID string, req *domain.UpdatePostRequest) (*domain.Post, error) {
	if err := s.authorizePost(ctx, userID, postID); err != nil {
		return nil, err
	}

	if req.Content != nil {
		if strings.TrimSpace(*req.Content) == "" {
			return nil, &domain.ValidationError{Fields: map[string]string{
				"content": "Content must not be blank",
			}}
		}
		if err := s.posts.UpdateContent(ctx, postID, *req.Content); err != nil {
			return nil, err
		}
		audit.LogTarget(ctx, audit.ActionUpdatePost, userID, postID, "post updated")
	}

	return s.GetPost(ctx, postID)
}

// DeletePost removes a post and everything attached to it. Author-only.
func (s *postServiceImpl) DeletePost(ctx context.Context, userID, postID string) error {
	if err := s.authorizePost(ctx, userID, postID); err != nil {
		return err
	}

	if err := s.posts.Delete(ctx, postID); err != nil {
		if errors.Is(err, repository.ErrPostNotFound) {
			return ErrPostNotFound
		}
		return err
	}

	audit.LogTarget(ctx, audit.ActionDeletePost, userID, postID, "post deleted")
	return nil
}

// Like records a like; duplicate likes conflict. A "like" notification is
// created for the author unless the actor likes their own post.
func (s *postServiceImpl) Like(ctx context.Context, userID, postID string) error {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}

	if err := s.posts.Like(ctx, postID, userID); err != nil {
		if errors.Is(err, repository.ErrAlreadyLiked) {
			return ErrAlreadyLiked
		}
		return err
	}

	if post.AuthorID != userID {
		n := &domain.Notification{
			RecipientID: post.AuthorID,
			SenderID:    userID,
			Type:        domain.NotificationLike,
			PostID:      &post.ID,
		}
		if err := s.notifications.Create(ctx, n); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str(log.FieldPostID, postID).Msg("failed to create like notification")
		}
	}

	audit.LogTarget(ctx, audit.ActionLikePost, userID, postID, "post liked")
	return nil
}

// Unlike removes a like; unliking a not-liked post conflicts.
func (s *postServiceImpl) Unlike(ctx context.Context, userID, postID string) error {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return err
	}

	if err := s.posts.Unlike(ctx, postID, userID); err != nil {
		if errors.Is(err, repository.ErrNotLiked) {
			return ErrNotLiked
		}
		return err
	}

	audit.LogTarget(ctx, audit.ActionUnlikePost, userID, postID, "post unliked")
	return nil
}

// CreateComment attaches a comment to an existing post. A "comment"
// notification is created for the author unless they comment themselves.
func (s *postServiceImpl) CreateComment(ctx context.Context, userID, postID string, req *domain.CreateCommentRequest) (*domain.Comment, error) {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return nil, err
	}

	comment := &domain.Comment{
		PostID:   postID,
		AuthorID: userID,
		Content:  req.Content,
	}
	if err := s.comments.Create(ctx, comment); err != nil {
		log.Ctx(ctx).Error().Err(err).Str(log.FieldPostID, postID).Msg("failed to create comment")
		return nil, err
	}

	if post.AuthorID != userID {
		n := &domain.Notification{
			RecipientID: post.AuthorID,
			SenderID:    userID,
			Type:        domain.NotificationComment,
			PostID:      &post.ID,
		}
		if err := s.notifications.Create(ctx, n); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str(log.FieldPostID, postID).Msg("failed to create comment notification")
		}
	}

	audit.LogTarget(ctx, audit.ActionCreateComment, userID, comment.ID, "comment created")

	return s.GetComment(ctx, postID, comment.ID)
}

// GetComment retrieves a comment scoped to its post.
func (s *postServiceImpl) GetComment(ctx context.Context, postID, commentID string) (*domain.Comment, error) {
	comment, err := s.comments.GetByID(ctx, postID, commentID)
	if err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return nil, ErrCommentNotFound
		}
		return nil, err
	}
	return comment, nil
}

// ListComments returns a post's comments, newest first.
func (s *postServiceImpl) ListComments(ctx context.Context, postID string) ([]domain.Comment, error) {
	if _, err := s.GetPost(ctx, postID); err != nil {
		return nil, err
	}
	return s.comments.ListByPost(ctx, postID)
}

// ReplaceComment overwrites a comment's content. Author-only.
func (s *postServiceImpl) ReplaceComment(ctx context.Context, userID, postID, commentID string, req *domain.CreateCommentRequest) (*domain.Comment, error) {
	comment, err := s.GetComment(ctx, postID, commentID)
	if err != nil {
		return nil, err
	}
	if comment.AuthorID != userID {
		return nil, ErrNotAuthor
	}

	if err := s.comments.UpdateContent(ctx, commentID, req.Content); err != nil {
		return nil, err
	}

	audit.LogTarget(ctx, audit.ActionUpdateComment, userID, commentID, "comment updated")
	return s.GetComment(ctx, postID, commentID)
}

// DeleteComment removes a comment. Author-only.
func (s *postServiceImpl) DeleteComment(ctx context.Context, userID, postID, commentID string) error {
	comment, err := s.GetComment(ctx, postID, commentID)
	if err != nil {
		return err
	}
	if comment.AuthorID != userID {
		return ErrNotAuthor
	}

	if err := s.comments.Delete(ctx, commentID); err != nil {
		if errors.Is(err, repository.ErrCommentNotFound) {
			return ErrCommentNotFound
		}
		return err
	}

	audit.LogTarget(ctx, audit.ActionDeleteComment, userID, commentID, "comment deleted")
	return nil
}

// authorizePost loads the post and enforces the author-only rule.
func (s *postServiceImpl) authorizePost(ctx context.Context, userID, postID string) error {
	post, err := s.GetPost(ctx, postID)
	if err != nil {
		return err
	}
	if post.AuthorID != userID {
		return ErrNotAuthor
	}
	return nil
}
