package service

import (
	"context"

	"github.com/openwave-social/openwave/internal/domain"
	"github.com/openwave-social/openwave/internal/repository"
	"github.com/openwave-social/openwave/pkg/log"
)

// notificationServiceImpl implements NotificationService.
type notificationServiceImpl struct {
	notifications repository.NotificationRepository
}

// NewNotificationService creates a new notification service.
func NewNotificationService(notifications repository.NotificationRepository) NotificationService {
	return &notificationServiceImpl{notifications: notifications}
}

// List returns the caller's notifications, newest first.
func (s *notificationServiceImpl) List(ctx context.Context, userID string) ([]domain.Notification, error) {
	return s.notifications.ListByRecipient(ctx, userID)
}

// MarkAllRead marks every unread notification of the caller as read and
// returns the number of rows updated.
func (s *notificationServiceImpl) MarkAllRead(ctx context.Context, userID string) (int64, error) {
	updated, err := s.notifications.MarkAllRead(ctx, userID)
	if err != nil {
		return 0, err
	}
	log.Ctx(ctx).Debug().Str(log.FieldUserID, userID).Int64("updated", updated).Msg("notifications marked read")
	return updated, nil
}
