package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/pronetwork/backend/internal/middleware"
	"github.com/pronetwork/backend/pkg/errors"
	"github.com/pronetwork/backend/pkg/logger"
)

// GetNotifications handles GET /notifications. Opening the list commits to
// "seen": after the enriched list is built, every unread notification is
// marked read.
func (h *Manager) GetNotifications(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return respondError(c, errors.New(errors.ErrCodeUnauthorized, "not authenticated"))
	}

	views, err := h.Notifications.List(identity.UserID, sinceParam(c), h.Config.NotificationPageSize)
	if err != nil {
		return respondError(c, err)
	}

	if _, err := h.Notifications.MarkAllRead(identity.UserID); err != nil {
		// The list was already fetched; losing the read-on-view update only
		// means the badge stays lit until the next visit.
		logger.Warn("Read-on-view update failed", "user_id", identity.UserID, "error", err)
	}

	return c.JSON(views)
}

// GetNotificationsData handles GET /notifications/data. Same list, but does
// NOT mark anything read.
func (h *Manager) GetNotificationsData(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return respondError(c, errors.New(errors.ErrCodeUnauthorized, "not authenticated"))
	}

	views, err := h.Notifications.List(identity.UserID, sinceParam(c), h.Config.NotificationPageSize)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(views)
}

// MarkAllRead handles POST /notifications/mark-all-read.
func (h *Manager) MarkAllRead(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return respondError(c, errors.New(errors.ErrCodeUnauthorized, "not authenticated"))
	}

	count, err := h.Notifications.MarkAllRead(identity.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "count": count})
}

// MarkRead handles POST /notifications/:id/read.
func (h *Manager) MarkRead(c *fiber.Ctx) error {
	if _, ok := middleware.IdentityFrom(c); !ok {
		return respondError(c, errors.New(errors.ErrCodeUnauthorized, "not authenticated"))
	}

	notificationID, err := parseIDParam(c, "id")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.Notifications.MarkRead(notificationID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// UnreadCount handles GET /notifications/unread-count, the badge endpoint.
func (h *Manager) UnreadCount(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return respondError(c, errors.New(errors.ErrCodeUnauthorized, "not authenticated"))
	}

	count, err := h.Notifications.UnreadCount(identity.UserID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"count": count})
}

// sinceParam parses the optional ?since=RFC3339 filter.
func sinceParam(c *fiber.Ctx) *time.Time {
	raw := c.Query("since")
	if raw == "" {
		return nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil
	}
	return &t
}
