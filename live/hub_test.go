package live

import (
	"encoding/json"
	"testing"
	"time"
)

func TestHubRegisterBroadcastUnregister(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	client := &Client{
		Send:    make(chan []byte, 10),
		EventID: "evt1",
	}

	hub.register <- client

	update := Update{Action: "POST", EventID: "evt1", Entity: "discount", ID: "d1"}
	hub.Broadcast("evt1", update)

	select {
	case got := <-client.Send:
		var decoded Update
		if err := json.Unmarshal(got, &decoded); err != nil {
			t.Fatalf("broadcast payload not JSON: %v", err)
		}
		if decoded != update {
			t.Fatalf("expected %+v, got %+v", update, decoded)
		}
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for broadcast")
	}

	hub.unregister <- client
}

func TestHubBroadcastIsScopedToEvent(t *testing.T) {
	hub := NewHub()
	go hub.Run()
	defer hub.Stop()

	watching := &Client{Send: make(chan []byte, 10), EventID: "evt1"}
	other := &Client{Send: make(chan []byte, 10), EventID: "evt2"}
	hub.register <- watching
	hub.register <- other

	hub.Broadcast("evt1", Update{Action: "POST", EventID: "evt1"})

	select {
	case <-watching.Send:
	case <-time.After(1 * time.Second):
		t.Fatal("timeout waiting for scoped broadcast")
	}

	select {
	case msg := <-other.Send:
		t.Fatalf("client for another event received %s", msg)
	case <-time.After(100 * time.Millisecond):
	}
}
