package live

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHubDeliversOrderEvents(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 10)}
	hub.register <- client

	hub.NotifyOrder("ORD-493021", "44.98")

	select {
	case data := <-client.Send:
		var ev orderEvent
		require.NoError(t, json.Unmarshal(data, &ev))
		assert.Equal(t, "order_completed", ev.Event)
		assert.Equal(t, "ORD-493021", ev.OrderNumber)
		assert.Equal(t, "44.98", ev.Total)
	case <-time.After(2 * time.Second):
		t.Fatal("no event delivered")
	}
}

func TestHubUnregisterClosesSend(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{Send: make(chan []byte, 1)}
	hub.register <- client
	hub.unregister <- client

	select {
	case _, open := <-client.Send:
		assert.False(t, open)
	case <-time.After(2 * time.Second):
		t.Fatal("send channel not closed")
	}
}

func TestRegisterAfterStopDoesNotBlock(t *testing.T) {
	hub := NewHub()
	hub.Stop()

	client := &Client{Send: make(chan []byte, 1)}
	joined := make(chan bool, 1)
	go func() { joined <- hub.add(client) }()

	select {
	case ok := <-joined:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("register blocked after stop")
	}

	// Unregister after stop must not block either.
	done := make(chan struct{})
	go func() {
		hub.remove(client)
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("unregister blocked after stop")
	}
}

func TestHubDropsEventWithNoListeners(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	done := make(chan struct{})
	go func() {
		hub.NotifyOrder("ORD-000001", "1.00")
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(3 * time.Second):
		t.Fatal("NotifyOrder blocked with no listeners")
	}
}
