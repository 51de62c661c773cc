// Package service contains the application's business logic, sitting between
// the HTTP handlers and the repositories.
package service

import (
	"context"
	"log/slog"

	"chirp/internal/middleware"
	"chirp/internal/models"
	"chirp/internal/notifications"
	"chirp/internal/repository"
)

// FollowService implements follow graph mutations.
type FollowService struct {
	followRepo repository.FollowRepository
	userRepo   repository.UserRepository
	notifier   *notifications.Notifier
}

// NewFollowService creates a new FollowService.
func NewFollowService(
	followRepo repository.FollowRepository,
	userRepo repository.UserRepository,
	notifier *notifications.Notifier,
) *FollowService {
	return &FollowService{
		followRepo: followRepo,
		userRepo:   userRepo,
		notifier:   notifier,
	}
}

// Toggle flips the follow edge from followerID to targetID and reports the
// resulting state. Following yourself is rejected; a missing target is a
// not-found error.
func (s *FollowService) Toggle(ctx context.Context, followerID, targetID uint) (bool, error) {
	if followerID == targetID {
		return false, models.NewInvalidOperationError("You cannot follow yourself")
	}

	target, err := s.userRepo.GetByID(ctx, targetID)
	if err != nil {
		return false, err
	}

	following, err := s.followRepo.IsFollowing(ctx, followerID, targetID)
	if err != nil {
		return false, err
	}

	if following {
		if _, err := s.followRepo.Unfollow(ctx, followerID, targetID); err != nil {
			return false, err
		}
		return false, nil
	}

	created, err := s.followRepo.Follow(ctx, followerID, targetID)
	if err != nil {
		return false, err
	}

	if created {
		s.publishFollowEvent(ctx, followerID, target.ID)
	}
	return true, nil
}

// Followers lists the users following userID.
func (s *FollowService) Followers(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Followers(ctx, userID, limit, offset)
}

// Following lists the users userID follows.
func (s *FollowService) Following(ctx context.Context, userID uint, limit, offset int) ([]models.User, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		return nil, err
	}
	return s.followRepo.Following(ctx, userID, limit, offset)
}

// publishFollowEvent pushes a live follow notification. Delivery is
// best-effort: the durable notification row already exists.
func (s *FollowService) publishFollowEvent(ctx context.Context, followerID, targetID uint) {
	if s.notifier == nil {
		return
	}

	from, err := s.userRepo.GetByID(ctx, followerID)
	if err != nil {
		middleware.Logger.WarnContext(ctx, "failed to load follower for live event",
			slog.Any("follower_id", followerID), slog.String("error", err.Error()))
		return
	}
	from.Password = ""

	event := notifications.Event{
		Type: models.NotificationTypeFollow,
		Notification: &models.Notification{
			FromUserID: followerID,
			ToUserID:   targetID,
			Type:       models.NotificationTypeFollow,
			FromUser:   *from,
		},
	}
	if err := s.notifier.PublishEvent(ctx, targetID, event); err != nil {
		middleware.Logger.WarnContext(ctx, "failed to publish follow event",
			slog.Any("to_user_id", targetID), slog.String("error", err.Error()))
	}
}
