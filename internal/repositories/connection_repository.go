package repositories

import (
	stderrors "errors"

	"github.com/pronetwork/backend/internal/models"
	"github.com/pronetwork/backend/pkg/errors"
	"gorm.io/gorm"
)

// ConnectionRepository is the authoritative ledger of connection requests.
type ConnectionRepository struct {
	db *gorm.DB
}

func NewConnectionRepository(db *gorm.DB) *ConnectionRepository {
	return &ConnectionRepository{db: db}
}

// Create records a new pending request for the ordered (sender, receiver)
// pair. Returns CONFLICT when a row for that ordered pair already exists,
// whatever its status. The unique index on the pair is the backstop against
// two concurrent creates both passing the existence check.
func (r *ConnectionRepository) Create(senderID, receiverID uint) (*models.Connection, error) {
	var existing models.Connection
	result := r.db.Where("sender_id = ? AND receiver_id = ?", senderID, receiverID).First(&existing)

	if result.Error == nil {
		if existing.Status == models.ConnectionStatusAccepted {
			return nil, errors.New(errors.ErrCodeConflict, "already connected with this user")
		}
		return nil, errors.New(errors.ErrCodeConflict, "connection request already exists")
	}
	if !stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to check existing connection")
	}

	connection := &models.Connection{
		SenderID:   senderID,
		ReceiverID: receiverID,
		Status:     models.ConnectionStatusPending,
	}

	if err := r.db.Create(connection).Error; err != nil {
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.New(errors.ErrCodeConflict, "connection request already exists")
		}
		return nil, errors.Wrap(err, errors.ErrCodePersistence, "failed to create connection request")
	}

	return connection, nil
}

// AcceptPending flips the (sender, receiver) request to accepted. The status
// guard in the WHERE clause makes concurrent responders race safely: the
// loser matches zero rows and gets NOT_FOUND, indistinguishable from a
// request that never existed.
func (r *ConnectionRepository) AcceptPending(senderID, receiverID uint) error {
	result := r.db.Model(&models.Connection{}).
		Where("sender_id = ? AND receiver_id = ? AND status = ?",
			senderID, receiverID, models.ConnectionStatusPending).
		Update("status", models.ConnectionStatusAccepted)

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to accept connection request")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "connection request not found or already processed")
	}

	return nil
}

// DeletePending removes the pending (sender, receiver) request, used when the
// receiver declines. Same status-guarded race behavior as AcceptPending.
func (r *ConnectionRepository) DeletePending(senderID, receiverID uint) error {
	result := r.db.
		Where("sender_id = ? AND receiver_id = ? AND status = ?",
			senderID, receiverID, models.ConnectionStatusPending).
		Delete(&models.Connection{})

	if result.Error != nil {
		return errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to reject connection request")
	}
	if result.RowsAffected == 0 {
		return errors.New(errors.ErrCodeNotFound, "connection request not found or already processed")
	}

	return nil
}

// DeleteBetween removes any connection row between the pair in either
// direction, regardless of status. Idempotent: deleting nothing is not an
// error. Returns the number of rows removed.
func (r *ConnectionRepository) DeleteBetween(userA, userB uint) (int64, error) {
	result := r.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		userA, userB, userB, userA,
	).Delete(&models.Connection{})

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to remove connection")
	}

	return result.RowsAffected, nil
}

// CountAccepted returns the number of accepted connections the user has.
func (r *ConnectionRepository) CountAccepted(userID uint) (int64, error) {
	var count int64
	result := r.db.Model(&models.Connection{}).
		Where("(sender_id = ? OR receiver_id = ?) AND status = ?",
			userID, userID, models.ConnectionStatusAccepted).
		Count(&count)

	if result.Error != nil {
		return 0, errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to count connections")
	}

	return count, nil
}

// ListPendingFor retrieves incoming pending requests with sender preloaded,
// newest first.
func (r *ConnectionRepository) ListPendingFor(receiverID uint) ([]models.Connection, error) {
	var requests []models.Connection

	err := r.db.Where("receiver_id = ? AND status = ?", receiverID, models.ConnectionStatusPending).
		Preload("Sender").
		Order("created_at DESC").
		Find(&requests).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodePersistence, "failed to list pending requests")
	}

	return requests, nil
}

// ListAcceptedFor retrieves accepted connections with both parties preloaded.
func (r *ConnectionRepository) ListAcceptedFor(userID uint) ([]models.Connection, error) {
	var connections []models.Connection

	err := r.db.Where("(sender_id = ? OR receiver_id = ?) AND status = ?",
		userID, userID, models.ConnectionStatusAccepted).
		Preload("Sender").
		Preload("Receiver").
		Find(&connections).Error

	if err != nil {
		return nil, errors.Wrap(err, errors.ErrCodePersistence, "failed to list connections")
	}

	return connections, nil
}

// StatusBetween reports the pairwise state as seen from viewerID.
func (r *ConnectionRepository) StatusBetween(viewerID, otherID uint) (string, uint, error) {
	var connection models.Connection
	result := r.db.Where(
		"(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
		viewerID, otherID, otherID, viewerID,
	).First(&connection)

	if result.Error != nil {
		if stderrors.Is(result.Error, gorm.ErrRecordNotFound) {
			return models.PairStateNone, 0, nil
		}
		return "", 0, errors.Wrap(result.Error, errors.ErrCodePersistence, "failed to check connection status")
	}

	if connection.Status == models.ConnectionStatusAccepted {
		return models.PairStateConnected, connection.ID, nil
	}
	if connection.SenderID == viewerID {
		return models.PairStateRequestSent, connection.ID, nil
	}
	return models.PairStateRequestReceived, connection.ID, nil
}
