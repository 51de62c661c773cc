package service

import (
	"context"

	"chirp/internal/models"
	"chirp/internal/repository"
)

// NotificationService implements the notification inbox.
type NotificationService struct {
	notificationRepo repository.NotificationRepository
}

// NewNotificationService creates a new NotificationService.
func NewNotificationService(notificationRepo repository.NotificationRepository) *NotificationService {
	return &NotificationService{notificationRepo: notificationRepo}
}

// List returns a user's notifications, newest first, and marks them all read.
func (s *NotificationService) List(ctx context.Context, userID uint, limit, offset int) ([]models.Notification, error) {
	notifications, err := s.notificationRepo.ListByUser(ctx, userID, clampLimit(limit), offset)
	if err != nil {
		return nil, err
	}

	if err := s.notificationRepo.MarkAllRead(ctx, userID); err != nil {
		return nil, err
	}
	return notifications, nil
}

// UnreadCount reports how many unread notifications a user has.
func (s *NotificationService) UnreadCount(ctx context.Context, userID uint) (int64, error) {
	return s.notificationRepo.UnreadCount(ctx, userID)
}

// Clear deletes all of a user's notifications.
func (s *NotificationService) Clear(ctx context.Context, userID uint) error {
	return s.notificationRepo.ClearForUser(ctx, userID)
}
