package websocket

import (
	"testing"
	"time"

	"cv-builder-be/internal/model"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

func (h *Hub) clientCount(sessionID uuid.UUID) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[sessionID])
}

func TestHubSendDropsSlowReaderWithoutPanic(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	sessionID := uuid.New()
	slow := &Client{Hub: hub, SessionID: sessionID, Send: make(chan []byte, 1)}
	hub.register <- slow
	require.Eventually(t, func() bool {
		return hub.clientCount(sessionID) == 1
	}, time.Second, time.Millisecond)

	// Fill the buffer so the next push hits the default branch.
	slow.Send <- []byte("stuck")

	hub.Send(sessionID, model.SyncStatus{SessionID: sessionID, PendingCount: 1})

	// The slow client is unregistered exactly once; the hub keeps running.
	require.Eventually(t, func() bool {
		return hub.clientCount(sessionID) == 0
	}, time.Second, time.Millisecond)

	hub.Send(sessionID, model.SyncStatus{SessionID: sessionID, PendingCount: 2})

	_, open := <-slow.Send
	assert.True(t, open, "buffered message still readable")
	_, open = <-slow.Send
	assert.False(t, open, "channel closed by unregister")
}

func TestHubFansOutToEveryTab(t *testing.T) {
	hub := NewHub(nil, nopLogger{})
	go hub.Run()

	sessionID := uuid.New()
	a := &Client{Hub: hub, SessionID: sessionID, Send: make(chan []byte, 4)}
	b := &Client{Hub: hub, SessionID: sessionID, Send: make(chan []byte, 4)}
	hub.register <- a
	hub.register <- b
	require.Eventually(t, func() bool {
		return hub.clientCount(sessionID) == 2
	}, time.Second, time.Millisecond)

	hub.Send(sessionID, model.SyncStatus{SessionID: sessionID, PendingCount: 3})

	for _, c := range []*Client{a, b} {
		select {
		case msg := <-c.Send:
			assert.Contains(t, string(msg), "sync_status")
		case <-time.After(time.Second):
			t.Fatal("client never received the status push")
		}
	}
}
