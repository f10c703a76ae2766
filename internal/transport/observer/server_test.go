package observer

import (
	"encoding/json"
	"log"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"gridhunt.ai/internal/protocol"
)

func testServer(t *testing.T) (*Server, *httptest.Server) {
	t.Helper()
	run := protocol.RunMsg{
		Type:            protocol.TypeRun,
		ProtocolVersion: protocol.Version,
		RunID:           "run-1",
		Seed:            42,
		Side:            6,
		Ticks:           15,
	}
	s := NewServer(run, log.New(os.Stdout, "[test] ", 0))
	ts := httptest.NewServer(s.Handler())
	t.Cleanup(ts.Close)
	return s, ts
}

func dial(t *testing.T, ts *httptest.Server) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(ts.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func TestObserver_HelloThenRunThenFrames(t *testing.T) {
	s, ts := testServer(t)
	conn := dial(t, ts)

	hello := protocol.HelloMsg{Type: protocol.TypeHello, ProtocolVersion: protocol.Version, ObserverName: "w"}
	if err := conn.WriteJSON(hello); err != nil {
		t.Fatalf("hello: %v", err)
	}

	var run protocol.RunMsg
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if err := conn.ReadJSON(&run); err != nil {
		t.Fatalf("read run: %v", err)
	}
	if run.Type != protocol.TypeRun || run.RunID != "run-1" || run.Side != 6 {
		t.Fatalf("run msg: %+v", run)
	}

	frame := protocol.FrameMsg{
		Type:            protocol.TypeFrame,
		ProtocolVersion: protocol.Version,
		Tick:            3,
		Layer:           "[#]\n",
		Digest:          strings.Repeat("00", 32),
	}

	// The client is registered shortly after RUN goes out; rebroadcast until
	// a frame lands instead of racing the registration.
	got := make(chan protocol.FrameMsg, 1)
	go func() {
		var f protocol.FrameMsg
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		if err := conn.ReadJSON(&f); err == nil {
			got <- f
		}
	}()

	deadline := time.After(5 * time.Second)
	for {
		s.Broadcast(frame)
		select {
		case f := <-got:
			if f.Tick != 3 || f.Type != protocol.TypeFrame {
				t.Fatalf("frame: %+v", f)
			}
			return
		case <-deadline:
			t.Fatalf("no frame received")
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestObserver_RejectsNonHello(t *testing.T) {
	_, ts := testServer(t)
	conn := dial(t, ts)

	bad, _ := json.Marshal(protocol.BaseMessage{Type: "ATTACH"})
	if err := conn.WriteMessage(websocket.TextMessage, bad); err != nil {
		t.Fatalf("write: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	if _, _, err := conn.ReadMessage(); err == nil {
		t.Fatalf("server kept talking after a bad handshake")
	}
}

func TestSendLatest_DropsOldest(t *testing.T) {
	ch := make(chan []byte, 1)
	sendLatest(ch, []byte("a"))
	sendLatest(ch, []byte("b"))
	if got := string(<-ch); got != "b" {
		t.Fatalf("got %q want the newest frame", got)
	}
}
