package handlers

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/pronetwork/backend/internal/config"
	"github.com/pronetwork/backend/internal/realtime"
	"github.com/pronetwork/backend/internal/services"
	"github.com/pronetwork/backend/pkg/errors"
	"github.com/pronetwork/backend/pkg/logger"
)

type Manager struct {
	Config        *config.Config
	Connections   *services.ConnectionService
	Notifications *services.NotificationService
	Hub           *realtime.Hub
}

func NewManager(
	cfg *config.Config,
	connections *services.ConnectionService,
	notifications *services.NotificationService,
	hub *realtime.Hub,
) *Manager {
	return &Manager{
		Config:        cfg,
		Connections:   connections,
		Notifications: notifications,
		Hub:           hub,
	}
}

// respondError maps application error codes to HTTP statuses. Persistence
// failures are logged here and surface as a generic 500; nothing is swallowed
// below this point.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch errors.CodeOf(err) {
	case errors.ErrCodeUnauthorized:
		status = fiber.StatusUnauthorized
	case errors.ErrCodeForbidden:
		status = fiber.StatusForbidden
	case errors.ErrCodeNotFound:
		status = fiber.StatusNotFound
	case errors.ErrCodeConflict:
		status = fiber.StatusConflict
	case errors.ErrCodeInvalidOperation, errors.ErrCodeValidation:
		status = fiber.StatusBadRequest
	case errors.ErrCodeRateLimited:
		status = fiber.StatusTooManyRequests
	}

	if status == fiber.StatusInternalServerError {
		logger.Error("Request failed", "path", c.Path(), "error", err)
		return c.Status(status).JSON(fiber.Map{"success": false})
	}

	return c.Status(status).JSON(fiber.Map{
		"success": false,
		"message": errors.MessageOf(err),
	})
}

// parseIDParam reads a numeric route parameter.
func parseIDParam(c *fiber.Ctx, name string) (uint, error) {
	raw := c.Params(name)
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, errors.New(errors.ErrCodeValidation, "invalid "+name)
	}
	return uint(id), nil
}
