package network

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"ascent/internal/climb"
	"ascent/internal/platform/logger"

	"github.com/gorilla/websocket"
)

func TestFeedStartsOpen(t *testing.T) {
	f := NewHandFeed(DefaultStaleAfter)
	if f.Sample(climb.Left).Gripping || f.Sample(climb.Right).Gripping {
		t.Error("Expected open hands before the first frame")
	}
}

func TestFeedUpdateAndStale(t *testing.T) {
	now := time.Unix(100, 0)
	f := NewHandFeed(time.Second)
	f.now = func() time.Time { return now }

	f.Update(HandsPayload{
		Left:  HandInput{Position: [3]float32{1, 2, 3}, Grip: true},
		Right: HandInput{Position: [3]float32{-1, 2, 0}},
	})

	left := f.Sample(climb.Left)
	if !left.Gripping || left.Position.X != 1 || left.Position.Z != 3 {
		t.Errorf("Unexpected left sample %+v", left)
	}
	if f.Sample(climb.Right).Gripping {
		t.Error("Expected an open right hand")
	}

	now = now.Add(2 * time.Second)
	left = f.Sample(climb.Left)
	if left.Gripping {
		t.Error("Expected a stale feed to open the hand")
	}
	if left.Position.Y != 2 {
		t.Errorf("Expected the last position to be kept, got %+v", left.Position)
	}
}

func TestFeedDropsOldFrames(t *testing.T) {
	f := NewHandFeed(0)
	if !f.Update(HandsPayload{Seq: 5, Left: HandInput{Grip: true}}) {
		t.Fatal("Expected the first frame to be accepted")
	}
	if f.Update(HandsPayload{Seq: 4}) {
		t.Error("Expected an older frame to be dropped")
	}
	if !f.Sample(climb.Left).Gripping {
		t.Error("Dropped frame must not overwrite the newer one")
	}
	if f.Frames() != 1 {
		t.Errorf("Expected 1 accepted frame, got %d", f.Frames())
	}
}

func startHub(t *testing.T, configure ...func(*Hub)) (*Hub, *httptest.Server) {
	t.Helper()
	hub := NewHub(logger.Discard(), NewHandFeed(time.Minute))
	for _, fn := range configure {
		fn(hub)
	}
	ctx, cancel := context.WithCancel(context.Background())
	go hub.Run(ctx)
	srv := httptest.NewServer(http.HandlerFunc(hub.ServeWS))
	t.Cleanup(func() {
		srv.Close()
		cancel()
	})
	return hub, srv
}

func dial(t *testing.T, srv *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("Timed out waiting for %s", what)
}

func TestHubDeliversHandFrames(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)

	msg := `{"type":"hands","payload":{"seq":1,"left":{"position":[0,1.5,0.3],"grip":true},"right":{"position":[0.2,1,0]}}}`
	if err := conn.WriteMessage(websocket.TextMessage, []byte(msg)); err != nil {
		t.Fatalf("write: %v", err)
	}

	waitFor(t, "hand frame", func() bool { return hub.Feed.Frames() == 1 })
	left := hub.Feed.Sample(climb.Left)
	if !left.Gripping || left.Position.Y != 1.5 {
		t.Errorf("Unexpected left sample %+v", left)
	}
}

func TestHubForwardsSceneRequests(t *testing.T) {
	got := make(chan string, 1)
	_, srv := startHub(t, func(h *Hub) {
		h.OnSceneRequest = func(name string) { got <- name }
	})
	conn := dial(t, srv)

	conn.WriteMessage(websocket.TextMessage, []byte(`{"type":"scene","payload":{"name":"ClimbScene"}}`))

	select {
	case name := <-got:
		if name != "ClimbScene" {
			t.Errorf("Expected ClimbScene, got %q", name)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Timed out waiting for the scene request")
	}
}

func TestHubBroadcast(t *testing.T) {
	hub, srv := startHub(t)
	conn := dial(t, srv)
	waitFor(t, "registration", func() bool { return hub.ClientCount() == 1 })

	if err := hub.Broadcast(map[string]any{"type": "hud", "tick": 7}); err != nil {
		t.Fatalf("broadcast: %v", err)
	}

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal %s: %v", data, err)
	}
	if decoded["type"] != "hud" || decoded["tick"] != float64(7) {
		t.Errorf("Unexpected message %v", decoded)
	}
}

func TestBroadcastAfterShutdown(t *testing.T) {
	hub := NewHub(logger.Discard(), nil)
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		hub.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	if err := hub.Broadcast("late"); err != ErrHubClosed {
		t.Errorf("Expected ErrHubClosed, got %v", err)
	}
}
