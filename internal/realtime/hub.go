package realtime

import (
	"sync"

	"github.com/pronetwork/backend/internal/events"
	"github.com/pronetwork/backend/pkg/logger"
)

// Conn is the slice of a websocket connection the hub needs. Satisfied by
// *websocket.Conn.
type Conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Envelope is the only message the hub ever pushes. Content-free on purpose:
// clients re-fetch counts and lists when they receive it.
type Envelope struct {
	Event string `json:"event"`
}

const EventNewNotification = "new_notification"

// Hub tracks live websocket connections, one room per user identity. A user
// may hold several connections (multiple tabs); all of them get the signal.
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint]map[Conn]struct{}
}

func NewHub() *Hub {
	return &Hub{
		rooms: make(map[uint]map[Conn]struct{}),
	}
}

func (h *Hub) Register(userID uint, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[userID]
	if !ok {
		room = make(map[Conn]struct{})
		h.rooms[userID] = room
	}
	room[conn] = struct{}{}
}

func (h *Hub) Unregister(userID uint, conn Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	room, ok := h.rooms[userID]
	if !ok {
		return
	}
	delete(room, conn)
	if len(room) == 0 {
		delete(h.rooms, userID)
	}
}

// Notify pushes the wake-up signal to every connection in the user's room.
// Best effort: connections that fail to write are closed and dropped.
func (h *Hub) Notify(userID uint) {
	h.mu.RLock()
	room := h.rooms[userID]
	conns := make([]Conn, 0, len(room))
	for conn := range room {
		conns = append(conns, conn)
	}
	h.mu.RUnlock()

	envelope := Envelope{Event: EventNewNotification}
	for _, conn := range conns {
		if err := conn.WriteJSON(envelope); err != nil {
			_ = conn.Close()
			h.Unregister(userID, conn)
		}
	}
}

// RoomSize reports the number of live connections for a user.
func (h *Hub) RoomSize(userID uint) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}

// Forward consumes bus events until the channel closes, waking the recipient
// of each persisted notification. Run in its own goroutine.
func (h *Hub) Forward(ch <-chan events.NotificationCreated) {
	for event := range ch {
		h.Notify(event.RecipientID)
		logger.Debug("Pushed notification signal",
			"recipient_id", event.RecipientID,
			"type", event.Type,
		)
	}
}
