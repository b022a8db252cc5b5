package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pronetwork/backend/internal/middleware"
)

// RegisterRoutes wires the connection, notification, block and websocket
// routes. Paths follow the original web client's expectations.
func (h *Manager) RegisterRoutes(app *fiber.App, auth *middleware.Auth, limiter *middleware.RateLimiter) {
	// Connection lifecycle
	app.Post("/connect/:receiverId", auth.RequireUser, limiter.Handle, h.Connect)
	app.Post("/accept/:senderId", auth.RequireUser, limiter.Handle, h.Accept)
	app.Post("/reject/:senderId", auth.RequireUser, limiter.Handle, h.Reject)
	app.Post("/disconnect/:userId", auth.RequireUser, limiter.Handle, h.Disconnect)

	// Notifications
	app.Get("/notifications", auth.RequireUser, limiter.Handle, h.GetNotifications)
	app.Get("/notifications/data", auth.RequireUser, limiter.Handle, h.GetNotificationsData)
	app.Get("/notifications/unread-count", auth.RequireUser, limiter.Handle, h.UnreadCount)
	app.Post("/notifications/mark-all-read", auth.RequireUser, limiter.Handle, h.MarkAllRead)
	app.Post("/notifications/reject/:senderId", auth.RequireUser, limiter.Handle, h.Reject)
	app.Post("/notifications/:id/read", auth.RequireUser, limiter.Handle, h.MarkRead)

	// Network views
	app.Get("/api/connections", auth.RequireUser, limiter.Handle, h.ListConnections)
	app.Get("/api/invitations", auth.RequireUser, limiter.Handle, h.ListInvitations)
	app.Get("/api/connections/status/:userId", auth.RequireUser, limiter.Handle, h.ConnectionStatus)
	app.Get("/api/connections/count/:userId", auth.RequireUser, limiter.Handle, h.ConnectionCount)

	// Blocking
	app.Post("/block/:userId", auth.RequireUser, limiter.Handle, h.Block)
	app.Post("/unblock/:userId", auth.RequireUser, limiter.Handle, h.Unblock)

	// Real-time badge channel
	app.Get("/ws", UpgradeRequired, auth.RequireUser, h.ServeWS())
}
