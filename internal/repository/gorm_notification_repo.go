package repository

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/openwave-social/openwave/internal/domain"
)

// GormNotificationRepository implements NotificationRepository using GORM.
type GormNotificationRepository struct {
	db *gorm.DB
}

// NewGormNotificationRepository creates a new GORM-based notification repository.
func NewGormNotificationRepository(db *gorm.DB) *GormNotificationRepository {
	return &GormNotificationRepository{db: db}
}

// Create creates a notification.
func (r *GormNotificationRepository) Create(ctx context.Context, n *domain.Notification) error {
	n.ID = uuid.New().String()

	model := domain.NotificationModel{
		ID:          n.ID,
		RecipientID: n.RecipientID,
		SenderID:    n.SenderID,
		Type:        n.Type,
		PostID:      n.PostID,
	}
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		return err
	}

	n.CreatedAt = model.CreatedAt
	return nil
}

// ListByRecipient returns the recipient's notifications newest first.
func (r *GormNotificationRepository) ListByRecipient(ctx context.Context, recipientID string) ([]domain.Notification, error) {
	var models []domain.NotificationModel
	err := r.db.WithContext(ctx).
		Preload("Sender").
		Preload("Post").
		Where("recipient_id = ?", recipientID).
		Order("created_at DESC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]domain.Notification, 0, len(models))
	for i := range models {
		notifications = append(notifications, *models[i].ToDomain())
	}
	return notifications, nil
}

// MarkAllRead flips every unread notification of the recipient.
func (r *GormNotificationRepository) MarkAllRead(ctx context.Context, recipientID string) (int64, error) {
	result := r.db.WithContext(ctx).Model(&domain.NotificationModel{}).
		Where("recipient_id = ? AND is_read = ?", recipientID, false).
		Update("is_read", true)
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}

var _ NotificationRepository = (*GormNotificationRepository)(nil)
