package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pronetwork/backend/internal/middleware"
	"github.com/pronetwork/backend/internal/services"
	"github.com/pronetwork/backend/pkg/errors"
)

// Connect handles POST /connect/:receiverId.
func (h *Manager) Connect(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return respondError(c, errors.New(errors.ErrCodeUnauthorized, "not authenticated"))
	}

	receiverID, err := parseIDParam(c, "receiverId")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.Connections.Request(identity, receiverID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "status": "request_sent"})
}

// Accept handles POST /accept/:senderId.
func (h *Manager) Accept(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return respondError(c, errors.New(errors.ErrCodeUnauthorized, "not authenticated"))
	}

	senderID, err := parseIDParam(c, "senderId")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.Connections.Respond(identity, senderID, services.DecisionAccept); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true, "status": "connected"})
}

// Reject handles POST /reject/:senderId and POST /notifications/reject/:senderId.
func (h *Manager) Reject(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return respondError(c, errors.New(errors.ErrCodeUnauthorized, "not authenticated"))
	}

	senderID, err := parseIDParam(c, "senderId")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.Connections.Respond(identity, senderID, services.DecisionReject); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// Disconnect handles POST /disconnect/:userId. Idempotent.
func (h *Manager) Disconnect(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return respondError(c, errors.New(errors.ErrCodeUnauthorized, "not authenticated"))
	}

	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.Connections.Remove(identity, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// ListConnections handles GET /api/connections.
func (h *Manager) ListConnections(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return respondError(c, errors.New(errors.ErrCodeUnauthorized, "not authenticated"))
	}

	connections, err := h.Connections.ListConnections(identity)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(connections)
}

// ListInvitations handles GET /api/invitations.
func (h *Manager) ListInvitations(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return respondError(c, errors.New(errors.ErrCodeUnauthorized, "not authenticated"))
	}

	invitations, err := h.Connections.ListInvitations(identity)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(invitations)
}

// ConnectionStatus handles GET /api/connections/status/:userId.
func (h *Manager) ConnectionStatus(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return respondError(c, errors.New(errors.ErrCodeUnauthorized, "not authenticated"))
	}

	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return respondError(c, err)
	}

	state, requestID, err := h.Connections.Status(identity, userID)
	if err != nil {
		return respondError(c, err)
	}

	response := fiber.Map{"status": state}
	if requestID != 0 {
		response["requestId"] = requestID
	}
	return c.JSON(response)
}

// ConnectionCount handles GET /api/connections/count/:userId, the public
// connections-count display.
func (h *Manager) ConnectionCount(c *fiber.Ctx) error {
	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return respondError(c, err)
	}

	count, err := h.Connections.CountAccepted(userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"count": count})
}
