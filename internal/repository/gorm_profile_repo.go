package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openwave-social/openwave/internal/domain"
)

// GormProfileRepository implements ProfileRepository using GORM.
type GormProfileRepository struct {
	db *gorm.DB
}

// NewGormProfileRepository creates a new GORM-based profile repository.
func NewGormProfileRepository(db *gorm.DB) *GormProfileRepository {
	return &GormProfileRepository{db: db}
}

// GetOrCreate returns the user's profile, creating an empty one when missing.
// The unique index on user_id decides concurrent creation races; the loser
// re-fetches the surviving row.
func (r *GormProfileRepository) GetOrCreate(ctx context.Context, userID string) (*domain.Profile, error) {
	var model domain.ProfileModel
	err := r.db.WithContext(ctx).First(&model, "user_id = ?", userID).Error
	if err == nil {
		return model.ToDomain(), nil
	}
	if !isNotFound(err) {
		return nil, err
	}

	model = domain.ProfileModel{
		ID:     uuid.New().String(),
		UserID: userID,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if isUniqueViolation(err) {
			// Lost the race; the other request's row wins.
			var existing domain.ProfileModel
			if err := r.db.WithContext(ctx).First(&existing, "user_id = ?", userID).Error; err != nil {
				return nil, err
			}
			return existing.ToDomain(), nil
		}
		return nil, err
	}

	return model.ToDomain(), nil
}

// Update persists bio and avatar changes.
func (r *GormProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	result := r.db.WithContext(ctx).Model(&domain.ProfileModel{}).
		Where("id = ?", profile.ID).
		Updates(map[string]interface{}{
			"bio":        profile.Bio,
			"avatar_key": profile.AvatarKey,
		})
	return result.Error
}

var _ ProfileRepository = (*GormProfileRepository)(nil)
