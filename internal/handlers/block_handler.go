package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pronetwork/backend/internal/middleware"
	"github.com/pronetwork/backend/pkg/errors"
)

// Block handles POST /block/:userId. Any existing connection with the
// blocked user is severed as part of the transition.
func (h *Manager) Block(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return respondError(c, errors.New(errors.ErrCodeUnauthorized, "not authenticated"))
	}

	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.Connections.Block(identity, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}

// Unblock handles POST /unblock/:userId.
func (h *Manager) Unblock(c *fiber.Ctx) error {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return respondError(c, errors.New(errors.ErrCodeUnauthorized, "not authenticated"))
	}

	userID, err := parseIDParam(c, "userId")
	if err != nil {
		return respondError(c, err)
	}

	if err := h.Connections.Unblock(identity, userID); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{"success": true})
}
