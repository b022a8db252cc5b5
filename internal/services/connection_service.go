package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/pronetwork/backend/internal/models"
	"github.com/pronetwork/backend/internal/repositories"
	"github.com/pronetwork/backend/pkg/errors"
	"github.com/pronetwork/backend/pkg/logger"
)

// Decision values for Respond.
const (
	DecisionAccept = "accept"
	DecisionReject = "reject"
)

// ConnectionService coordinates the connection lifecycle:
//
//	NONE -> PENDING            request
//	PENDING -> ACCEPTED        accept
//	PENDING -> NONE            reject
//	ACCEPTED -> NONE           remove / block
//
// Each transition is a sequence of non-transactional writes against the
// ledger, the projection and the outbox. A failure partway through leaves
// partially-applied state; the error surfaces to the caller, nothing is
// retried or compensated here. Every transition logs a uuid operation id so
// partial sequences can be traced.
type ConnectionService struct {
	connectionRepo *repositories.ConnectionRepository
	userRepo       *repositories.UserRepository
	blockRepo      *repositories.BlockRepository
	notifications  *NotificationService
}

func NewConnectionService(
	connectionRepo *repositories.ConnectionRepository,
	userRepo *repositories.UserRepository,
	blockRepo *repositories.BlockRepository,
	notifications *NotificationService,
) *ConnectionService {
	return &ConnectionService{
		connectionRepo: connectionRepo,
		userRepo:       userRepo,
		blockRepo:      blockRepo,
		notifications:  notifications,
	}
}

// Request creates a pending connection from the actor to receiverID and
// notifies the receiver.
func (s *ConnectionService) Request(actor models.Identity, receiverID uint) error {
	if actor.UserID == receiverID {
		return errors.New(errors.ErrCodeInvalidOperation, "you can't send a connection request to yourself")
	}

	if _, err := s.userRepo.GetByID(receiverID); err != nil {
		return err
	}

	blocked, err := s.blockRepo.IsBlockedEither(actor.UserID, receiverID)
	if err != nil {
		return err
	}
	if blocked {
		return errors.New(errors.ErrCodeInvalidOperation, "cannot connect with this user")
	}

	opID := uuid.NewString()

	if _, err := s.connectionRepo.Create(actor.UserID, receiverID); err != nil {
		return err
	}

	if _, err := s.notifications.Emit(receiverID, actor.UserID, models.NotificationConnectionRequest, nil, nil); err != nil {
		// Pending row exists without its notification; surfaced, not rolled back.
		logger.Error("Request transition partially applied",
			"op_id", opID, "sender_id", actor.UserID, "receiver_id", receiverID, "error", err)
		return err
	}

	logger.Info("Connection requested",
		"op_id", opID, "sender_id", actor.UserID, "receiver_id", receiverID)
	return nil
}

// Respond resolves the pending request that senderID sent to the actor.
// Accepting and rejecting a request that does not exist in pending state are
// both NOT_FOUND; an already-resolved request is indistinguishable from one
// that never existed.
func (s *ConnectionService) Respond(actor models.Identity, senderID uint, decision string) error {
	switch decision {
	case DecisionAccept:
		return s.accept(actor, senderID)
	case DecisionReject:
		return s.reject(actor, senderID)
	default:
		return errors.New(errors.ErrCodeValidation, "decision must be accept or reject")
	}
}

func (s *ConnectionService) accept(actor models.Identity, senderID uint) error {
	opID := uuid.NewString()

	// Status-guarded update: of two concurrent responders only one row
	// transition succeeds, the other caller gets NOT_FOUND.
	if err := s.connectionRepo.AcceptPending(senderID, actor.UserID); err != nil {
		return err
	}

	if err := s.userRepo.AddMutual(actor.UserID, senderID); err != nil {
		logger.Error("Accept transition partially applied",
			"op_id", opID, "sender_id", senderID, "receiver_id", actor.UserID, "error", err)
		return err
	}

	if err := s.notifications.DeleteConnectionRequest(actor.UserID, senderID); err != nil {
		logger.Error("Accept transition partially applied",
			"op_id", opID, "sender_id", senderID, "receiver_id", actor.UserID, "error", err)
		return err
	}

	if _, err := s.notifications.Emit(senderID, actor.UserID, models.NotificationConnectionAccepted, nil, nil); err != nil {
		logger.Error("Accept transition partially applied",
			"op_id", opID, "sender_id", senderID, "receiver_id", actor.UserID, "error", err)
		return err
	}

	logger.Info("Connection accepted",
		"op_id", opID, "sender_id", senderID, "receiver_id", actor.UserID)
	return nil
}

func (s *ConnectionService) reject(actor models.Identity, senderID uint) error {
	opID := uuid.NewString()

	if err := s.connectionRepo.DeletePending(senderID, actor.UserID); err != nil {
		return err
	}

	if err := s.notifications.DeleteConnectionRequest(actor.UserID, senderID); err != nil {
		logger.Error("Reject transition partially applied",
			"op_id", opID, "sender_id", senderID, "receiver_id", actor.UserID, "error", err)
		return err
	}

	logger.Info("Connection rejected",
		"op_id", opID, "sender_id", senderID, "receiver_id", actor.UserID)
	return nil
}

// Remove severs any connection between the actor and otherID, in either
// direction and whatever its status. Idempotent: removing a connection that
// does not exist succeeds and changes nothing.
func (s *ConnectionService) Remove(actor models.Identity, otherID uint) error {
	opID := uuid.NewString()

	if _, err := s.connectionRepo.DeleteBetween(actor.UserID, otherID); err != nil {
		return err
	}

	if err := s.userRepo.RemoveMutual(actor.UserID, otherID); err != nil {
		logger.Error("Remove transition partially applied",
			"op_id", opID, "user_a", actor.UserID, "user_b", otherID, "error", err)
		return err
	}

	logger.Info("Connection removed", "op_id", opID, "user_a", actor.UserID, "user_b", otherID)
	return nil
}

// Block records the block and severs any existing relationship, pending or
// accepted. Further requests in either direction fail until unblocked.
func (s *ConnectionService) Block(actor models.Identity, otherID uint) error {
	if actor.UserID == otherID {
		return errors.New(errors.ErrCodeInvalidOperation, "you cannot block yourself")
	}

	opID := uuid.NewString()

	if err := s.blockRepo.Block(actor.UserID, otherID); err != nil {
		return err
	}

	if _, err := s.connectionRepo.DeleteBetween(actor.UserID, otherID); err != nil {
		logger.Error("Block transition partially applied",
			"op_id", opID, "blocker_id", actor.UserID, "blocked_id", otherID, "error", err)
		return err
	}

	if err := s.userRepo.RemoveMutual(actor.UserID, otherID); err != nil {
		logger.Error("Block transition partially applied",
			"op_id", opID, "blocker_id", actor.UserID, "blocked_id", otherID, "error", err)
		return err
	}

	logger.Info("User blocked", "op_id", opID, "blocker_id", actor.UserID, "blocked_id", otherID)
	return nil
}

// Unblock removes the actor's block on otherID. The severed connection is not
// restored.
func (s *ConnectionService) Unblock(actor models.Identity, otherID uint) error {
	return s.blockRepo.Unblock(actor.UserID, otherID)
}

// Status reports the pairwise state as the actor sees it, plus the request id
// when a pending request is involved.
func (s *ConnectionService) Status(actor models.Identity, otherID uint) (string, uint, error) {
	if actor.UserID == otherID {
		return "", 0, errors.New(errors.ErrCodeInvalidOperation, "cannot check connection status with yourself")
	}
	return s.connectionRepo.StatusBetween(actor.UserID, otherID)
}

// CountAccepted serves the connections-count display.
func (s *ConnectionService) CountAccepted(userID uint) (int64, error) {
	return s.connectionRepo.CountAccepted(userID)
}

// IsConnected checks the projection, used to gate mutual-connection display.
func (s *ConnectionService) IsConnected(userA, userB uint) (bool, error) {
	return s.userRepo.IsConnected(userA, userB)
}

// ListConnections returns the actor's accepted connections as display
// identities.
func (s *ConnectionService) ListConnections(actor models.Identity) ([]models.UserSummary, error) {
	connections, err := s.connectionRepo.ListAcceptedFor(actor.UserID)
	if err != nil {
		return nil, err
	}

	summaries := make([]models.UserSummary, 0, len(connections))
	for _, conn := range connections {
		other := conn.Sender
		if conn.SenderID == actor.UserID {
			other = conn.Receiver
		}
		summaries = append(summaries, SummarizeUser(&other))
	}

	return summaries, nil
}

// InvitationView is one incoming pending request for the network page.
type InvitationView struct {
	ID        uint               `json:"_id"`
	Sender    models.UserSummary `json:"sender"`
	CreatedAt time.Time          `json:"createdAt"`
}

// ListInvitations returns incoming pending requests, newest first.
func (s *ConnectionService) ListInvitations(actor models.Identity) ([]InvitationView, error) {
	requests, err := s.connectionRepo.ListPendingFor(actor.UserID)
	if err != nil {
		return nil, err
	}

	invitations := make([]InvitationView, 0, len(requests))
	for _, req := range requests {
		invitations = append(invitations, InvitationView{
			ID:        req.ID,
			Sender:    SummarizeUser(&req.Sender),
			CreatedAt: req.CreatedAt,
		})
	}

	return invitations, nil
}
