package service

import (
	"context"
	"errors"

	"github.com/openwave-social/openwave/internal/audit"
	"github.com/openwave-social/openwave/internal/domain"
	"github.com/openwave-social/openwave/internal/repository"
	"github.com/openwave-social/openwave/pkg/log"
)

// socialServiceImpl implements SocialService.
type socialServiceImpl struct {
	users         repository.UserRepository
	follows       repository.FollowRepository
	posts         repository.PostRepository
	notifications repository.NotificationRepository
}

// NewSocialService creates a new social service.
func NewSocialService(
	users repository.UserRepository,
	follows repository.FollowRepository,
	posts repository.PostRepository,
	notifications repository.NotificationRepository,
) SocialService {
	return &socialServiceImpl{
		users:         users,
		follows:       follows,
		posts:         posts,
		notifications: notifications,
	}
}

// Follow creates a follow edge toward the named user and notifies them.
// Self-follows and duplicate follows are rejected.
func (s *socialServiceImpl) Follow(ctx context.Context, userID, targetUsername string) error {
	target, err := s.users.GetByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if target.ID == userID {
		return ErrSelfFollow
	}

	if err := s.follows.Follow(ctx, userID, target.ID); err != nil {
		if errors.Is(err, repository.ErrAlreadyFollowing) {
			return ErrAlreadyFollowing
		}
		return err
	}

	n := &domain.Notification{
		RecipientID: target.ID,
		SenderID:    userID,
		Type:        domain.NotificationFollow,
	}
	if err := s.notifications.Create(ctx, n); err != nil {
		log.Ctx(ctx).Warn().Err(err).Str(log.FieldUserID, userID).Msg("failed to create follow notification")
	}

	audit.LogTarget(ctx, audit.ActionFollow, userID, target.ID, "user followed")
	return nil
}

// Unfollow removes a follow edge toward the named user.
func (s *socialServiceImpl) Unfollow(ctx context.Context, userID, targetUsername string) error {
	target, err := s.users.GetByUsername(ctx, targetUsername)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.follows.Unfollow(ctx, userID, target.ID); err != nil {
		if errors.Is(err, repository.ErrFollowNotFound) {
			return ErrNotFollowing
		}
		return err
	}

	audit.LogTarget(ctx, audit.ActionUnfollow, userID, target.ID, "user unfollowed")
	return nil
}

// Followers returns the users following the named user.
func (s *socialServiceImpl) Followers(ctx context.Context, viewerID, username string) ([]domain.UserResponse, error) {
	return s.listEdge(ctx, viewerID, username, s.follows.ListFollowers)
}

// Following returns the users the named user follows.
func (s *socialServiceImpl) Following(ctx context.Context, viewerID, username string) ([]domain.UserResponse, error) {
	return s.listEdge(ctx, viewerID, username, s.follows.ListFollowing)
}

func (s *socialServiceImpl) listEdge(
	ctx context.Context,
	viewerID, username string,
	list func(ctx context.Context, userID string) ([]domain.User, error),
) ([]domain.UserResponse, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	edgeUsers, err := list(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	return s.toUserResponses(ctx, viewerID, edgeUsers)
}

// Feed returns posts authored by users the caller follows, newest first.
func (s *socialServiceImpl) Feed(ctx context.Context, userID string) ([]domain.Post, error) {
	return s.posts.ListFeed(ctx, userID)
}

// toUserResponses decorates users with counts and the viewer-relative
// is_following flag using batch lookups.
func (s *socialServiceImpl) toUserResponses(ctx context.Context, viewerID string, users []domain.User) ([]domain.UserResponse, error) {
	return decorateUsers(ctx, s.users, s.follows, viewerID, users)
}
