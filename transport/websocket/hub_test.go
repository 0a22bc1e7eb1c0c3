package websocket

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/wricardo/mcp-training/chessnav/game/engine"
)

func testBoard(t *testing.T) *engine.BoardState {
	t.Helper()
	board, err := engine.ParseLayout([]string{"k..", ".#.", "..n"})
	if err != nil {
		t.Fatalf("ParseLayout failed: %v", err)
	}
	return board.State()
}

func newTestClient(hub *Hub, sessionID string) *Client {
	return &Client{
		hub:       hub,
		sessionID: sessionID,
		send:      make(chan []byte, 256),
	}
}

func startHub(t *testing.T) *Hub {
	t.Helper()
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	t.Cleanup(func() {
		cancel()
		<-hub.done
	})
	return hub
}

func TestHubRegisterClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "test-session")

	hub.registerClient(client)

	if !hub.sessions["test-session"][client] {
		t.Error("Client was not registered in session")
	}
	if len(hub.sessions["test-session"]) != 1 {
		t.Errorf("Expected 1 client in session, got %d", len(hub.sessions["test-session"]))
	}
}

func TestHubUnregisterClient(t *testing.T) {
	hub := NewHub()
	client := newTestClient(hub, "test-session")

	hub.registerClient(client)
	hub.unregisterClient(client)

	if _, exists := hub.sessions["test-session"]; exists {
		t.Error("Session should have been cleaned up after last client unregistered")
	}
	if _, ok := <-client.send; ok {
		t.Error("send channel should be closed")
	}

	// A second unregister must not panic on the closed channel
	hub.unregisterClient(client)
}

func TestHubMultipleClientsInSession(t *testing.T) {
	hub := NewHub()
	sessionID := "multi-client-session"

	client1 := newTestClient(hub, sessionID)
	client2 := newTestClient(hub, sessionID)
	hub.registerClient(client1)
	hub.registerClient(client2)

	if len(hub.sessions[sessionID]) != 2 {
		t.Errorf("Expected 2 clients in session, got %d", len(hub.sessions[sessionID]))
	}

	hub.unregisterClient(client1)

	if len(hub.sessions[sessionID]) != 1 || !hub.sessions[sessionID][client2] {
		t.Error("client2 should be the only one left")
	}
}

func TestHubBroadcastMessage(t *testing.T) {
	hub := NewHub()
	watcher := newTestClient(hub, "watched")
	other := newTestClient(hub, "elsewhere")
	hub.registerClient(watcher)
	hub.registerClient(other)

	hub.broadcastMessage(&Message{SessionID: "watched", Board: testBoard(t), Event: EventBoardUpdate})

	select {
	case data := <-watcher.send:
		var message Message
		if err := json.Unmarshal(data, &message); err != nil {
			t.Fatalf("Failed to unmarshal message: %v", err)
		}
		if message.Event != EventBoardUpdate {
			t.Errorf("Expected event %s, got %s", EventBoardUpdate, message.Event)
		}
		if message.Board == nil || message.Board.Layout[1] != ".#." {
			t.Errorf("Board not correctly transmitted: %+v", message.Board)
		}
	default:
		t.Error("watcher received nothing")
	}

	select {
	case <-other.send:
		t.Error("clients of other sessions must not receive the message")
	default:
	}
}

func TestHubDropsSlowClients(t *testing.T) {
	hub := NewHub()
	slow := &Client{hub: hub, sessionID: "slow", send: make(chan []byte)}
	hub.registerClient(slow)

	hub.broadcastMessage(&Message{SessionID: "slow", Event: "ping"})

	if _, exists := hub.sessions["slow"]; exists {
		t.Error("client with a full buffer should be dropped")
	}
}

func TestHubBroadcastEvent(t *testing.T) {
	hub := NewHub()

	hub.BroadcastEvent("event-test", EventPathFound, "test-data")

	select {
	case message := <-hub.broadcast:
		if message.SessionID != "event-test" {
			t.Errorf("Expected sessionID 'event-test', got %s", message.SessionID)
		}
		if message.Event != EventPathFound {
			t.Errorf("Expected event %s, got %s", EventPathFound, message.Event)
		}
		if message.Data != "test-data" {
			t.Errorf("Expected data 'test-data', got %v", message.Data)
		}
	case <-time.After(100 * time.Millisecond):
		t.Error("No broadcast message queued")
	}
}

func TestHubStoppedDoesNotBlock(t *testing.T) {
	hub := NewHub()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	hub.Run(ctx)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 100; i++ {
			hub.BroadcastBoard("x", nil)
		}
		if n := hub.ClientCount("x"); n != 0 {
			t.Errorf("expected 0 clients, got %d", n)
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("broadcasting to a stopped hub blocked")
	}
}

func serveTestHub(t *testing.T, hub *Hub) string {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hub.ServeWS(w, r, r.URL.Query().Get("session"))
	}))
	t.Cleanup(server.Close)
	return "ws" + strings.TrimPrefix(server.URL, "http")
}

func waitForClients(t *testing.T, hub *Hub, sessionID string, want int) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for hub.ClientCount(sessionID) != want {
		if time.Now().After(deadline) {
			t.Fatalf("expected %d clients on %s, got %d", want, sessionID, hub.ClientCount(sessionID))
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestWebSocketLifecycle(t *testing.T) {
	hub := startHub(t)
	wsURL := serveTestHub(t, hub)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?session=ws-test", nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}

	waitForClients(t, hub, "ws-test", 1)

	conn.Close()

	waitForClients(t, hub, "ws-test", 0)
}

func TestWebSocketReceivesBoard(t *testing.T) {
	hub := startHub(t)
	wsURL := serveTestHub(t, hub)

	conn, _, err := websocket.DefaultDialer.Dial(wsURL+"?session=msg-test", nil)
	if err != nil {
		t.Fatalf("Failed to connect to WebSocket: %v", err)
	}
	defer conn.Close()

	waitForClients(t, hub, "msg-test", 1)

	hub.BroadcastBoard("msg-test", testBoard(t))

	conn.SetReadDeadline(time.Now().Add(time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("Failed to read WebSocket message: %v", err)
	}

	var message Message
	if err := json.Unmarshal(data, &message); err != nil {
		t.Fatalf("Failed to unmarshal message: %v", err)
	}
	if message.SessionID != "msg-test" {
		t.Errorf("Expected sessionID 'msg-test', got %s", message.SessionID)
	}
	if message.Board == nil || message.Board.Width != 3 || len(message.Board.Occupants) != 3 {
		t.Errorf("Board not correctly received: %+v", message.Board)
	}
}
