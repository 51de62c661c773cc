// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"github.com/gofiber/fiber/v2"
)

// GetNotifications handles GET /api/notifications. Fetching the inbox marks
// every listed notification as read.
// @Summary List the caller's notifications, newest first
// @Tags notifications
// @Produce json
// @Success 200 {array} models.Notification
// @Security BearerAuth
// @Router /notifications [get]
func (s *Server) GetNotifications(c *fiber.Ctx) error {
	userID := currentUserID(c)
	p := parsePagination(c, 20)
	ctx, cancel := listContext(c)
	defer cancel()

	notifs, err := s.notificationService.List(ctx, userID, p.Limit, p.Offset)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(notifs)
}

// GetUnreadNotificationCount handles GET /api/notifications/unread-count
// @Summary Count unread notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} object{count=int}
// @Security BearerAuth
// @Router /notifications/unread-count [get]
func (s *Server) GetUnreadNotificationCount(c *fiber.Ctx) error {
	userID := currentUserID(c)

	count, err := s.notificationService.UnreadCount(c.Context(), userID)
	if err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"count": count})
}

// ClearNotifications handles DELETE /api/notifications
// @Summary Delete all of the caller's notifications
// @Tags notifications
// @Produce json
// @Success 200 {object} object{message=string}
// @Security BearerAuth
// @Router /notifications [delete]
func (s *Server) ClearNotifications(c *fiber.Ctx) error {
	userID := currentUserID(c)

	if err := s.notificationService.Clear(c.Context(), userID); err != nil {
		return respondServiceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Notifications cleared"})
}
