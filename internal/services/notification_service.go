package services

import (
	"time"

	"github.com/pronetwork/backend/internal/events"
	"github.com/pronetwork/backend/internal/models"
	"github.com/pronetwork/backend/internal/repositories"
	"github.com/pronetwork/backend/internal/security"
	"github.com/pronetwork/backend/pkg/logger"
)

// NotificationService owns the outbox. Emit persists first and only then
// publishes to the event bus, so the real-time push can never report an
// event that was not stored; a failed push costs nothing but a late badge.
type NotificationService struct {
	notificationRepo *repositories.NotificationRepository
	userRepo         *repositories.UserRepository
	postRepo         *repositories.PostRepository
	bus              *events.Bus
}

func NewNotificationService(
	notificationRepo *repositories.NotificationRepository,
	userRepo *repositories.UserRepository,
	postRepo *repositories.PostRepository,
	bus *events.Bus,
) *NotificationService {
	return &NotificationService{
		notificationRepo: notificationRepo,
		userRepo:         userRepo,
		postRepo:         postRepo,
		bus:              bus,
	}
}

// Emit appends an unread notification and announces it on the bus.
// Persistence failures propagate to the caller; they are never swallowed.
func (s *NotificationService) Emit(recipientID, senderID uint, notifType string, postID, relatedID *uint) (*models.Notification, error) {
	notification := &models.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Type:        notifType,
		PostID:      postID,
		RelatedID:   relatedID,
	}

	if err := s.notificationRepo.Create(notification); err != nil {
		return nil, err
	}

	s.bus.Publish(events.NotificationCreated{
		NotificationID: notification.ID,
		RecipientID:    recipientID,
		Type:           notifType,
	})

	return notification, nil
}

func (s *NotificationService) MarkRead(notificationID uint) error {
	return s.notificationRepo.MarkRead(notificationID)
}

func (s *NotificationService) MarkAllRead(recipientID uint) (int64, error) {
	return s.notificationRepo.MarkAllRead(recipientID)
}

func (s *NotificationService) UnreadCount(recipientID uint) (int64, error) {
	return s.notificationRepo.UnreadCount(recipientID)
}

func (s *NotificationService) DeleteConnectionRequest(recipientID, senderID uint) error {
	return s.notificationRepo.DeleteConnectionRequest(recipientID, senderID)
}

// List returns the recipient's notifications newest first, each joined with
// the sender's display identity and the related post when one is referenced.
// Display fields are sanitized before leaving the API.
func (s *NotificationService) List(recipientID uint, since *time.Time, limit int) ([]models.NotificationView, error) {
	notifications, err := s.notificationRepo.ListFor(recipientID, since, limit)
	if err != nil {
		return nil, err
	}

	senderIDs := make([]uint, 0, len(notifications))
	postIDs := make([]uint, 0)
	for _, n := range notifications {
		senderIDs = append(senderIDs, n.SenderID)
		if n.PostID != nil {
			postIDs = append(postIDs, *n.PostID)
		}
	}

	senders, err := s.userRepo.GetByIDs(senderIDs)
	if err != nil {
		return nil, err
	}
	posts, err := s.postRepo.GetByIDs(postIDs)
	if err != nil {
		return nil, err
	}

	views := make([]models.NotificationView, 0, len(notifications))
	for _, n := range notifications {
		view := models.NotificationView{
			ID:        n.ID,
			Type:      n.Type,
			Read:      n.Read,
			CreatedAt: n.CreatedAt,
			RelatedID: n.RelatedID,
		}

		if sender, ok := senders[n.SenderID]; ok {
			view.Sender = SummarizeUser(&sender)
		} else {
			// Sender account deleted since the event; keep the row with a bare id.
			view.Sender = models.UserSummary{ID: n.SenderID}
			logger.Debug("Notification sender no longer exists", "sender_id", n.SenderID)
		}

		if n.PostID != nil {
			if post, ok := posts[*n.PostID]; ok {
				view.Post = &models.PostView{
					ID:    post.ID,
					Text:  post.Text,
					Image: post.Image,
				}
			}
		}

		views = append(views, view)
	}

	return views, nil
}

// SummarizeUser builds the sanitized display identity for list payloads.
func SummarizeUser(u *models.User) models.UserSummary {
	return models.UserSummary{
		ID:             u.ID,
		Name:           security.SanitizeDisplay(u.DisplayName()),
		Headline:       security.SanitizeDisplay(u.Headline),
		ProfilePicture: u.ProfilePicture,
	}
}
