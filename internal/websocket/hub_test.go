package websocket

import (
	"testing"
)

func newTestClient(userID string) *Client {
	return &Client{
		send:   make(chan *Message, 8),
		userID: userID,
		rooms:  make(map[string]bool),
	}
}

func drain(c *Client) []*Message {
	var msgs []*Message
	for {
		select {
		case m := <-c.send:
			msgs = append(msgs, m)
		default:
			return msgs
		}
	}
}

func TestHubRoomScopedBroadcast(t *testing.T) {
	hub := NewHub()

	viewer1 := newTestClient("u1")
	viewer2 := newTestClient("u2")
	other := newTestClient("u3")

	hub.registerClient(viewer1)
	hub.registerClient(viewer2)
	hub.registerClient(other)

	hub.joinRoom(&subscription{client: viewer1, matchID: "m1"})
	hub.joinRoom(&subscription{client: viewer2, matchID: "m1"})
	hub.joinRoom(&subscription{client: other, matchID: "m2"})

	hub.broadcastMessage(&Message{MatchID: "m1", Type: "matchUpdated", Payload: "snapshot"})

	if got := drain(viewer1); len(got) != 1 || got[0].Type != "matchUpdated" {
		t.Errorf("viewer1 expected 1 matchUpdated message, got %v", got)
	}
	if got := drain(viewer2); len(got) != 1 {
		t.Errorf("viewer2 expected 1 message, got %d", len(got))
	}
	if got := drain(other); len(got) != 0 {
		t.Errorf("client in another room expected no messages, got %d", len(got))
	}
}

func TestHubBroadcastToUnknownRoom(t *testing.T) {
	hub := NewHub()

	a := newTestClient("u1")
	hub.registerClient(a)
	hub.joinRoom(&subscription{client: a, matchID: "m1"})

	hub.broadcastMessage(&Message{MatchID: "m2", Type: "matchUpdated", Payload: nil})

	if got := drain(a); len(got) != 0 {
		t.Errorf("event for another match reached a subscriber, got %d messages", len(got))
	}
}

func TestHubLeaveRoomStopsDelivery(t *testing.T) {
	hub := NewHub()

	c := newTestClient("u1")
	hub.registerClient(c)
	hub.joinRoom(&subscription{client: c, matchID: "m1"})
	hub.leaveRoom(&subscription{client: c, matchID: "m1"})

	hub.broadcastMessage(&Message{MatchID: "m1", Type: "matchUpdated", Payload: nil})

	if got := drain(c); len(got) != 0 {
		t.Errorf("expected no messages after leaving, got %d", len(got))
	}
	if _, exists := hub.rooms["m1"]; exists {
		t.Error("empty room should be removed")
	}
}

func TestHubUnregisterCleansRooms(t *testing.T) {
	hub := NewHub()

	c := newTestClient("u1")
	hub.registerClient(c)
	hub.joinRoom(&subscription{client: c, matchID: "m1"})
	hub.joinRoom(&subscription{client: c, matchID: "m2"})

	hub.unregisterClient(c)

	if len(hub.rooms) != 0 {
		t.Errorf("expected all rooms cleaned up, got %d", len(hub.rooms))
	}
	if len(hub.clients) != 0 {
		t.Errorf("expected no clients, got %d", len(hub.clients))
	}
	if _, ok := <-c.send; ok {
		t.Error("send channel should be closed after unregister")
	}
}

func TestHubJoinRequiresRegisteredClient(t *testing.T) {
	hub := NewHub()

	stranger := newTestClient("u1")
	hub.joinRoom(&subscription{client: stranger, matchID: "m1"})

	if len(hub.rooms) != 0 {
		t.Error("unregistered client must not create a room")
	}
}
