package websocket

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func newTestClient(userID uuid.UUID, buffer int) *Client {
	return &Client{
		UserID: userID,
		Send:   make(chan []byte, buffer),
	}
}

func TestHubRegisterAndLookup(t *testing.T) {
	hub := NewHub(nil)
	userID := uuid.New()
	client := newTestClient(userID, 1)

	hub.Register(client)

	assert.Equal(t, client, hub.Lookup(userID))
	assert.Nil(t, hub.Lookup(uuid.New()))
}

func TestHubReconnectReplacesPrevious(t *testing.T) {
	hub := NewHub(nil)
	userID := uuid.New()
	first := newTestClient(userID, 1)
	second := newTestClient(userID, 1)

	hub.Register(first)
	hub.Register(second)

	assert.Equal(t, second, hub.Lookup(userID))

	// Pushes land on the new socket, not the replaced one.
	assert.True(t, hub.PushToUser(userID, []byte("hello")))
	assert.Len(t, second.Send, 1)
	assert.Len(t, first.Send, 0)
}

func TestHubUnregisterIsIdentityChecked(t *testing.T) {
	hub := NewHub(nil)
	userID := uuid.New()
	stale := newTestClient(userID, 1)
	fresh := newTestClient(userID, 1)

	hub.Register(stale)
	hub.Register(fresh)

	// The stale socket closing must not evict the fresh registration.
	hub.Unregister(stale)
	assert.Equal(t, fresh, hub.Lookup(userID))

	hub.Unregister(fresh)
	assert.Nil(t, hub.Lookup(userID))
}

func TestHubPushToOfflineUser(t *testing.T) {
	hub := NewHub(nil)

	assert.False(t, hub.PushToUser(uuid.New(), []byte("nobody home")))
}

func TestHubPushDeliversPayload(t *testing.T) {
	hub := NewHub(nil)
	userID := uuid.New()
	client := newTestClient(userID, 4)
	hub.Register(client)

	payload := []byte(`{"type":"new_message"}`)
	assert.True(t, hub.PushToUser(userID, payload))
	assert.Equal(t, payload, <-client.Send)
}

func TestHubPushFullBufferDropsConnection(t *testing.T) {
	hub := NewHub(nil)
	userID := uuid.New()
	client := newTestClient(userID, 1)
	hub.Register(client)

	assert.True(t, hub.PushToUser(userID, []byte("first")))

	// The buffer is full now; the next push fails and evicts the client.
	assert.False(t, hub.PushToUser(userID, []byte("second")))
	assert.Nil(t, hub.Lookup(userID))

	// The frame handler writes replies straight to Send; a dropped client
	// must not leave a closed channel behind it.
	<-client.Send
	assert.NotPanics(t, func() {
		client.Send <- []byte("late reply")
	})
}
