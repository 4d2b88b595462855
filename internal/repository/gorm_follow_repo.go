package repository

import (
	"context"

	"gorm.io/gorm"

	"github.com/openwave-social/openwave/internal/domain"
)

// GormFollowRepository implements FollowRepository using GORM.
type GormFollowRepository struct {
	db *gorm.DB
}

// NewGormFollowRepository creates a new GORM-backed follow repository.
func NewGormFollowRepository(db *gorm.DB) *GormFollowRepository {
	return &GormFollowRepository{db: db}
}

// Follow creates a follow edge. The composite unique index turns a duplicate
// edge into ErrAlreadyFollowing, also under concurrent requests.
func (r *GormFollowRepository) Follow(ctx context.Context, followerID, followingID string) error {
	model := domain.FollowModel{
		FollowerID:  followerID,
		FollowingID: followingID,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrAlreadyFollowing
		}
		return err
	}
	return nil
}

// Unfollow removes a follow edge.
func (r *GormFollowRepository) Unfollow(ctx context.Context, followerID, followingID string) error {
	result := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Delete(&domain.FollowModel{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrFollowNotFound
	}
	return nil
}

// IsFollowing checks if followerID follows followingID.
func (r *GormFollowRepository) IsFollowing(ctx context.Context, followerID, followingID string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&domain.FollowModel{}).
		Where("follower_id = ? AND following_id = ?", followerID, followingID).
		Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// BatchIsFollowing checks if followerID follows each of the targetIDs.
func (r *GormFollowRepository) BatchIsFollowing(ctx context.Context, followerID string, targetIDs []string) (map[string]bool, error) {
	result := make(map[string]bool, len(targetIDs))
	for _, id := range targetIDs {
		result[id] = false
	}
	if followerID == "" || len(targetIDs) == 0 {
		return result, nil
	}

	var models []domain.FollowModel
	err := r.db.WithContext(ctx).
		Where("follower_id = ? AND following_id IN ?", followerID, targetIDs).
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	for _, m := range models {
		result[m.FollowingID] = true
	}
	return result, nil
}

// ListFollowers returns the users following userID.
func (r *GormFollowRepository) ListFollowers(ctx context.Context, userID string) ([]domain.User, error) {
	return r.listEdgeUsers(ctx, "users.id = follows.follower_id", "follows.following_id = ?", userID)
}

// ListFollowing returns the users userID follows.
func (r *GormFollowRepository) ListFollowing(ctx context.Context, userID string) ([]domain.User, error) {
	return r.listEdgeUsers(ctx, "users.id = follows.following_id", "follows.follower_id = ?", userID)
}

func (r *GormFollowRepository) listEdgeUsers(ctx context.Context, joinOn, where string, userID string) ([]domain.User, error) {
	var models []domain.UserModel
	err := r.db.WithContext(ctx).Model(&domain.UserModel{}).
		Joins("JOIN follows ON "+joinOn).
		Where(where, userID).
		Order("follows.created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	users := make([]domain.User, 0, len(models))
	for i := range models {
		users = append(users, *models[i].ToDomain())
	}
	return users, nil
}

var _ FollowRepository = (*GormFollowRepository)(nil)
