package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/openwave-social/openwave/internal/audit"
	"github.com/openwave-social/openwave/internal/cache"
	"github.com/openwave-social/openwave/internal/domain"
	"github.com/openwave-social/openwave/internal/repository"
	"github.com/openwave-social/openwave/pkg/log"
	"github.com/openwave-social/openwave/pkg/storage"
)

// avatarURLTTL bounds the validity of presigned avatar URLs.
const avatarURLTTL = time.Hour

// profileServiceImpl implements ProfileService.
type profileServiceImpl struct {
	users    repository.UserRepository
	profiles repository.ProfileRepository
	posts    repository.PostRepository
	follows  repository.FollowRepository
	store    storage.Storage
	cache    cache.ProfileCache
	cacheTTL time.Duration
}

// NewProfileService creates a new profile service. profileCache may be nil
// when caching is disabled.
func NewProfileService(
	users repository.UserRepository,
	profiles repository.ProfileRepository,
	posts repository.PostRepository,
	follows repository.FollowRepository,
	store storage.Storage,
	profileCache cache.ProfileCache,
	cacheTTL time.Duration,
) ProfileService {
	return &profileServiceImpl{
		users:    users,
		profiles: profiles,
		posts:    posts,
		follows:  follows,
		store:    store,
		cache:    profileCache,
		cacheTTL: cacheTTL,
	}
}

// GetOwnProfile returns the caller's profile, creating it when missing.
func (s *profileServiceImpl) GetOwnProfile(ctx context.Context, userID string) (*domain.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.buildResponse(ctx, user)
}

// UpdateProfile applies a partial update across the user and profile rows.
func (s *profileServiceImpl) UpdateProfile(ctx context.Context, userID string, req *domain.UpdateProfileRequest) (*domain.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	oldUsername := user.Username

	if req.Username != nil || req.Email != nil {
		if req.Username != nil {
			user.Username = *req.Username
		}
		if req.Email != nil {
			user.Email = *req.Email
		}
		if err := s.users.Update(ctx, user); err != nil {
			return nil, err
		}
	}

	if req.Bio != nil || req.Avatar != nil {
		profile, err := s.profiles.GetOrCreate(ctx, userID)
		if err != nil {
			return nil, err
		}
		if req.Bio != nil {
			profile.Bio = *req.Bio
		}
		if req.Avatar != nil {
			profile.AvatarKey = *req.Avatar
		}
		if err := s.profiles.Update(ctx, profile); err != nil {
			return nil, err
		}
	}

	s.invalidate(ctx, oldUsername, user.Username)
	audit.Log(ctx, audit.ActionUpdateProfile, userID, "profile updated")

	return s.buildResponse(ctx, user)
}

// UploadAvatar stores the avatar bytes and records the storage key.
func (s *profileServiceImpl) UploadAvatar(ctx context.Context, userID, filename, contentType string, r io.Reader, size int64) (*domain.ProfileResponse, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	profile, err := s.profiles.GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	key := fmt.Sprintf("avatars/%s/%s%s", userID, uuid.New().String(), filepath.Ext(filename))
	if err := s.store.Write(ctx, key, r, size, contentType); err != nil {
		log.Ctx(ctx).Error().Err(err).Str(log.FieldUserID, userID).Msg("failed to store avatar")
		return nil, err
	}

	oldKey := profile.AvatarKey
	profile.AvatarKey = key
	if err := s.profiles.Update(ctx, profile); err != nil {
		return nil, err
	}

	if oldKey != "" {
		if err := s.store.Delete(ctx, oldKey); err != nil {
			log.Ctx(ctx).Warn().Err(err).Str(log.FieldUserID, userID).Msg("failed to delete previous avatar")
		}
	}

	s.invalidate(ctx, user.Username)
	audit.Log(ctx, audit.ActionUploadAvatar, userID, "avatar uploaded")

	return s.buildResponse(ctx, user)
}

// GetUserProfile returns a public profile view, creating the profile row on
// demand. The viewer-independent part is served from cache when possible.
func (s *profileServiceImpl) GetUserProfile(ctx context.Context, viewerID, username string) (*domain.ProfileResponse, error) {
	resp, err := s.cachedResponse(ctx, username)
	if err != nil {
		return nil, err
	}

	if viewerID != "" {
		user, err := s.users.GetByUsername(ctx, username)
		if err == nil {
			following, err := s.follows.IsFollowing(ctx, viewerID, user.ID)
			if err != nil {
				return nil, err
			}
			resp.IsFollowing = following
		}
	}

	return resp, nil
}

// GetUserPosts returns the named user's posts, newest first.
func (s *profileServiceImpl) GetUserPosts(ctx context.Context, username string) ([]domain.Post, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return s.posts.ListByAuthor(ctx, user.ID)
}

func (s *profileServiceImpl) cachedResponse(ctx context.Context, username string) (*domain.ProfileResponse, error) {
	if s.cache != nil {
		cached, err := s.cache.Get(ctx, s.cache.BuildKey(username))
		if err == nil {
			resp := cached.Profile
			return &resp, nil
		}
		if !errors.Is(err, cache.ErrCacheMiss) {
			log.Ctx(ctx).Warn().Err(err).Msg("profile cache get error")
		}
	}

	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	resp, err := s.buildResponse(ctx, user)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, s.cache.BuildKey(username), &cache.ProfileCacheResult{Profile: *resp}, s.cacheTTL); err != nil {
			log.Ctx(ctx).Warn().Err(err).Msg("profile cache set error")
		}
	}

	return resp, nil
}

// buildResponse assembles the viewer-independent profile view.
func (s *profileServiceImpl) buildResponse(ctx context.Context, user *domain.User) (*domain.ProfileResponse, error) {
	profile, err := s.profiles.GetOrCreate(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	stats, err := s.users.GetStats(ctx, user.ID)
	if err != nil {
		return nil, err
	}

	resp := &domain.ProfileResponse{
		Username:  user.Username,
		Email:     user.Email,
		Bio:       profile.Bio,
		CreatedAt: user.CreatedAt,
		UserStats: *stats,
	}

	if profile.AvatarKey != "" {
		url, err := s.store.GetURL(ctx, profile.AvatarKey, avatarURLTTL)
		if err != nil {
			log.Ctx(ctx).Warn().Err(err).Str(log.FieldUserID, user.ID).Msg("failed to resolve avatar url")
		} else {
			resp.Avatar = url
		}
	}

	return resp, nil
}

func (s *profileServiceImpl) invalidate(ctx context.Context, usernames ...string) {
	if s.cache == nil {
		return
	}
	keys := make([]string, 0, len(usernames))
	for _, u := range usernames {
		keys = append(keys, s.cache.BuildKey(u))
	}
	if err := s.cache.Delete(ctx, keys...); err != nil {
		log.Ctx(ctx).Warn().Err(err).Msg("profile cache invalidation error")
	}
}
