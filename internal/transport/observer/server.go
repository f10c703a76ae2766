// Package observer serves a read-only websocket stream of tick frames.
// Observers can watch a run live; they cannot influence it.
package observer

import (
	"encoding/json"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"gridhunt.ai/internal/protocol"
)

// Server broadcasts marshaled frames to every connected observer.
type Server struct {
	log *log.Logger
	run protocol.RunMsg

	upgrader websocket.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
}

type client struct {
	out chan []byte
}

func NewServer(run protocol.RunMsg, logger *log.Logger) *Server {
	return &Server{
		log: logger,
		run: run,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  64 * 1024,
			WriteBufferSize: 64 * 1024,
			CheckOrigin:     func(r *http.Request) bool { return true }, // dev default
		},
		clients: map[*client]struct{}{},
	}
}

func (s *Server) Handler() http.HandlerFunc {
	return func(rw http.ResponseWriter, r *http.Request) {
		conn, err := s.upgrader.Upgrade(rw, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()

		// Handshake: the observer must send HELLO first.
		_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
		_, msg, err := conn.ReadMessage()
		if err != nil {
			return
		}
		base, err := protocol.DecodeBase(msg)
		if err != nil || base.Type != protocol.TypeHello {
			_ = conn.WriteControl(websocket.CloseMessage,
				websocket.FormatCloseMessage(websocket.ClosePolicyViolation, "expected HELLO"),
				time.Now().Add(time.Second))
			return
		}

		if b, err := json.Marshal(s.run); err == nil {
			_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
			if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
				return
			}
		}

		c := &client{out: make(chan []byte, 64)}
		s.mu.Lock()
		s.clients[c] = struct{}{}
		s.mu.Unlock()
		defer func() {
			s.mu.Lock()
			delete(s.clients, c)
			s.mu.Unlock()
		}()

		// Drain reads so pings/closes are processed; observers send nothing
		// else meaningful after HELLO. The out channel is never closed, so
		// Broadcast can always send without racing the teardown.
		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = conn.SetReadDeadline(time.Time{})
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case <-done:
				return
			case b := <-c.out:
				_ = conn.SetWriteDeadline(time.Now().Add(5 * time.Second))
				if err := conn.WriteMessage(websocket.TextMessage, b); err != nil {
					return
				}
			}
		}
	}
}

// Broadcast fans a frame out to every client, dropping the oldest pending
// frame for slow consumers rather than blocking the sim.
func (s *Server) Broadcast(frame protocol.FrameMsg) {
	b, err := json.Marshal(frame)
	if err != nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for c := range s.clients {
		sendLatest(c.out, b)
	}
}

func sendLatest(ch chan []byte, b []byte) {
	for {
		select {
		case ch <- b:
			return
		default:
			select {
			case <-ch:
			default:
			}
		}
	}
}
