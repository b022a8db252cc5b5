package repositories

import (
	"time"

	"github.com/pronetwork/backend/internal/models"
	"github.com/pronetwork/backend/pkg/errors"
	"gorm.io/gorm"
)

// NotificationRepository owns the per-recipient outbox. Rows are append-only
// except for the read flag; connection_request rows are additionally deleted
// when their request is resolved.
type NotificationRepository struct {
	db *gorm.DB
}

func NewNotificationRepository(db *gorm.DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

func (r *NotificationRepository) Create(notification *models.Notification) error {
	if err := r.db.Create(notification).Error; err != nil {
		return errors.Wrap(err, errors.ErrCodePersistence, "failed to create notification")
	}
	return nil
}

// MarkRead sets the read flag. Idempotent: marking an already-read or missing
// notification affects zero rows and succeeds.
func (r *NotificationRepository) MarkRead(notificationID uint) error {
	err := r.db.Model(&models.Notification{}).
		Where("id = ?", notificationID).
		Update("read", true).Error

	if err != nil {
		return errors.Wrap(err, errors.ErrCodePersistence, "failed to mark notification read")
	}

	return nil
}

// MarkAllRead marks every unread notification for the recipient and returns
// the number affected.
func (r *NotificationRepository) MarkAllRead(recipientID uint) (int64, error) {
	result := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Update("read", true)

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to mark notifications read")
	}

	return result.RowsAffected, nil
}

// DeleteConnectionRequest removes the connection_request notification for the
// (recipient, sender) pair, if present. No-op otherwise.
func (r *NotificationRepository) DeleteConnectionRequest(recipientID, senderID uint) error {
	err := r.db.Where(
		"recipient_id = ? AND sender_id = ? AND type = ?",
		recipientID, senderID, models.NotificationConnectionRequest,
	).Delete(&models.Notification{}).Error

	if err != nil {
		return errors.Wrap(err, errors.ErrCodePersistence, "failed to delete request notification")
	}

	return nil
}

// ListFor retrieves the recipient's notifications newest first. A non-nil
// since restricts to rows created strictly after it; limit caps the page.
// Restartable: callers re-issue the query with the same arguments to resume.
func (r *NotificationRepository) ListFor(recipientID uint, since *time.Time, limit int) ([]models.Notification, error) {
	query := r.db.Where("recipient_id = ?", recipientID)
	if since != nil {
		query = query.Where("created_at > ?", *since)
	}

	var notifications []models.Notification
	err := query.Order("created_at DESC").Limit(limit).Find(&notifications).Error
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodePersistence, "failed to list notifications")
	}

	return notifications, nil
}

// UnreadCount serves the badge; covered by the (recipient_id, read) index.
func (r *NotificationRepository) UnreadCount(recipientID uint) (int64, error) {
	var count int64
	result := r.db.Model(&models.Notification{}).
		Where("recipient_id = ? AND read = ?", recipientID, false).
		Count(&count)

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to count unread notifications")
	}

	return count, nil
}
