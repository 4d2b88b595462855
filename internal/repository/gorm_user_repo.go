package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openwave-social/openwave/internal/domain"
)

// GormUserRepository implements UserRepository using GORM.
type GormUserRepository struct {
	db *gorm.DB
}

// NewGormUserRepository creates a new GORM-based user repository.
func NewGormUserRepository(db *gorm.DB) *GormUserRepository {
	return &GormUserRepository{db: db}
}

// Create creates a new user.
func (r *GormUserRepository) Create(ctx context.Context, user *domain.User) error {
	user.ID = uuid.New().String()

	model := domain.UserToModel(user)
	if err := r.db.WithContext(ctx).Create(model).Error; err != nil {
		return r.handleError(err)
	}

	user.CreatedAt = model.CreatedAt
	return nil
}

// GetByID retrieves a user by ID.
func (r *GormUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	var model domain.UserModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// GetByUsername retrieves a user by username.
func (r *GormUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	var model domain.UserModel
	if err := r.db.WithContext(ctx).First(&model, "username = ?", username).Error; err != nil {
		if isNotFound(err) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Update persists username, email, and password hash changes.
func (r *GormUserRepository) Update(ctx context.Context, user *domain.User) error {
	result := r.db.WithContext(ctx).Model(&domain.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"username":      user.Username,
			"email":         user.Email,
			"password_hash": user.PasswordHash,
		})
	if result.Error != nil {
		return r.handleError(result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// Delete removes the user and everything they own in one transaction.
// FK constraints cover most of this on postgres/mysql, but sqlite does not
// always enforce them, so the cascade is spelled out explicitly.
func (r *GormUserRepository) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var model domain.UserModel
		if err := tx.First(&model, "id = ?", id).Error; err != nil {
			if isNotFound(err) {
				return ErrUserNotFound
			}
			return err
		}

		ownPosts := tx.Model(&domain.PostModel{}).Select("id").Where("author_id = ?", id)

		// Dependents of the user's posts.
		if err := tx.Where("post_id IN (?)", ownPosts).Delete(&domain.CommentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN (?)", ownPosts).Delete(&domain.LikeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id IN (?)", ownPosts).Delete(&domain.NotificationModel{}).Error; err != nil {
			return err
		}

		// Rows owned by or addressed to the user.
		if err := tx.Where("author_id = ?", id).Delete(&domain.CommentModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&domain.LikeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("follower_id = ? OR following_id = ?", id, id).Delete(&domain.FollowModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("recipient_id = ? OR sender_id = ?", id, id).Delete(&domain.NotificationModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&domain.ProfileModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("author_id = ?", id).Delete(&domain.PostModel{}).Error; err != nil {
			return err
		}

		return tx.Delete(&domain.UserModel{}, "id = ?", id).Error
	})
}

// Search matches users by username or email substring, case-insensitive.
func (r *GormUserRepository) Search(ctx context.Context, query string, limit int) ([]domain.User, error) {
	pattern := "%" + strings.ToLower(query) + "%"

	var models []domain.UserModel
	err := r.db.WithContext(ctx).
		Where("LOWER(username) LIKE ? OR LOWER(email) LIKE ?", pattern, pattern).
		Limit(limit).
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

// GetStats returns follower/following/post counts for a user.
func (r *GormUserRepository) GetStats(ctx context.Context, userID string) (*domain.UserStats, error) {
	var stats domain.UserStats
	db := r.db.WithContext(ctx)

	if err := db.Model(&domain.FollowModel{}).Where("following_id = ?", userID).Count(&stats.FollowersCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.FollowModel{}).Where("follower_id = ?", userID).Count(&stats.FollowingCount).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&domain.PostModel{}).Where("author_id = ?", userID).Count(&stats.PostsCount).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// BatchGetStats returns counts for several users with three grouped queries.
func (r *GormUserRepository) BatchGetStats(ctx context.Context, userIDs []string) (map[string]domain.UserStats, error) {
	result := make(map[string]domain.UserStats, len(userIDs))
	for _, id := range userIDs {
		result[id] = domain.UserStats{}
	}
	if len(userIDs) == 0 {
		return result, nil
	}

	type countRow struct {
		ID    string
		Count int64
	}
	db := r.db.WithContext(ctx)

	var rows []countRow
	if err := db.Model(&domain.FollowModel{}).
		Select("following_id AS id, COUNT(*) AS count").
		Where("following_id IN ?", userIDs).
		Group("following_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		s := result[row.ID]
		s.FollowersCount = row.Count
		result[row.ID] = s
	}

	rows = rows[:0]
	if err := db.Model(&domain.FollowModel{}).
		Select("follower_id AS id, COUNT(*) AS count").
		Where("follower_id IN ?", userIDs).
		Group("follower_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		s := result[row.ID]
		s.FollowingCount = row.Count
		result[row.ID] = s
	}

	rows = rows[:0]
	if err := db.Model(&domain.PostModel{}).
		Select("author_id AS id, COUNT(*) AS count").
		Where("author_id IN ?", userIDs).
		Group("author_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	for _, row := range rows {
		s := result[row.ID]
		s.PostsCount = row.Count
		result[row.ID] = s
	}

	return result, nil
}

// handleError converts database-specific errors to domain errors.
func (r *GormUserRepository) handleError(err error) error {
	if isUniqueViolation(err) {
		s := err.Error()
		if strings.Contains(s, "email") {
			return ErrEmailExists
		}
		if strings.Contains(s, "username") {
			return ErrUsernameExists
		}
	}
	return err
}

var _ UserRepository = (*GormUserRepository)(nil)
