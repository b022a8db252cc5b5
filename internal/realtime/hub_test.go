package realtime

import (
	"errors"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/pronetwork/backend/internal/events"
	"github.com/pronetwork/backend/pkg/logger"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// fakeConn records pushed envelopes and can simulate a dead socket.
type fakeConn struct {
	mu       sync.Mutex
	messages []Envelope
	failing  bool
	closed   bool
}

func (c *fakeConn) WriteJSON(v interface{}) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.failing {
		return errors.New("connection reset")
	}
	c.messages = append(c.messages, v.(Envelope))
	return nil
}

func (c *fakeConn) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.closed = true
	return nil
}

func (c *fakeConn) received() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.messages)
}

func TestHub_Notify(t *testing.T) {
	hub := NewHub()

	// Two tabs for the same user, one connection for another.
	tab1 := &fakeConn{}
	tab2 := &fakeConn{}
	other := &fakeConn{}

	hub.Register(1, tab1)
	hub.Register(1, tab2)
	hub.Register(2, other)

	hub.Notify(1)

	if tab1.received() != 1 || tab2.received() != 1 {
		t.Errorf("user 1 connections received %d/%d messages, want 1/1", tab1.received(), tab2.received())
	}
	if other.received() != 0 {
		t.Errorf("user 2 connection received %d messages, want 0", other.received())
	}

	if tab1.messages[0].Event != EventNewNotification {
		t.Errorf("Event = %q, want %q", tab1.messages[0].Event, EventNewNotification)
	}
}

func TestHub_Notify_EmptyRoom(t *testing.T) {
	hub := NewHub()

	// Nobody connected; must be a silent no-op.
	hub.Notify(42)
}

func TestHub_Notify_DropsFailingConn(t *testing.T) {
	hub := NewHub()

	healthy := &fakeConn{}
	dead := &fakeConn{failing: true}

	hub.Register(1, healthy)
	hub.Register(1, dead)

	hub.Notify(1)

	if healthy.received() != 1 {
		t.Errorf("healthy connection received %d messages, want 1", healthy.received())
	}
	if !dead.closed {
		t.Error("failing connection was not closed")
	}
	if hub.RoomSize(1) != 1 {
		t.Errorf("RoomSize(1) = %d, want 1", hub.RoomSize(1))
	}
}

func TestHub_Unregister(t *testing.T) {
	hub := NewHub()

	conn := &fakeConn{}
	hub.Register(1, conn)
	hub.Unregister(1, conn)

	if hub.RoomSize(1) != 0 {
		t.Errorf("RoomSize(1) = %d, want 0", hub.RoomSize(1))
	}

	// Unregistering an unknown connection is a no-op.
	hub.Unregister(1, conn)
	hub.Unregister(99, conn)

	hub.Notify(1)
	if conn.received() != 0 {
		t.Errorf("unregistered connection received %d messages, want 0", conn.received())
	}
}

func TestHub_Forward(t *testing.T) {
	hub := NewHub()

	conn := &fakeConn{}
	hub.Register(7, conn)

	bus := events.NewBus()
	ch := bus.Subscribe()

	done := make(chan struct{})
	go func() {
		hub.Forward(ch)
		close(done)
	}()

	bus.Publish(events.NotificationCreated{NotificationID: 1, RecipientID: 7, Type: "like"})
	bus.Close()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Forward did not return after bus close")
	}

	if conn.received() != 1 {
		t.Errorf("connection received %d messages, want 1", conn.received())
	}
}
