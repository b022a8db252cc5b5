package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/pronetwork/backend/internal/middleware"
	"github.com/pronetwork/backend/pkg/logger"
)

// UpgradeRequired rejects plain HTTP requests on the websocket route.
func UpgradeRequired(c *fiber.Ctx) error {
	if websocket.IsWebSocketUpgrade(c) {
		return c.Next()
	}
	return fiber.ErrUpgradeRequired
}

// ServeWS handles GET /ws. The connection joins the room of the caller's own
// identity; the server never pushes anything but content-free wake-up
// signals, so the read loop exists only to detect the close.
func (h *Manager) ServeWS() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		identity, ok := middleware.LocalIdentity(conn.Locals)
		if !ok {
			_ = conn.Close()
			return
		}

		h.Hub.Register(identity.UserID, conn)
		defer h.Hub.Unregister(identity.UserID, conn)
		logger.Debug("Websocket joined", "user_id", identity.UserID)

		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	})
}
