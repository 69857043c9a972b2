package multitouch

import (
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// RemoteSample is one pointer in a remote touch message.
type RemoteSample struct {
	ID       int     `json:"id"`
	X        float64 `json:"x"`
	Y        float64 `json:"y"`
	Pressure float64 `json:"p,omitempty"`
}

// RemoteHistory is a batched older sample in a remote touch message.
type RemoteHistory struct {
	Time     float64        `json:"time"`
	Pointers []RemoteSample `json:"pointers"`
}

// RemoteMessage is the websocket payload sent by a remote touch client,
// typically a browser forwarding pointer events. Time is in milliseconds.
type RemoteMessage struct {
	T        string          `json:"t"`
	Action   string          `json:"action,omitempty"`
	Index    int             `json:"index,omitempty"`
	Time     float64         `json:"time,omitempty"`
	Pointers []RemoteSample  `json:"pointers,omitempty"`
	History  []RemoteHistory `json:"history,omitempty"`
	Handled  bool            `json:"handled,omitempty"`
	Error    string          `json:"error,omitempty"`
}

// RawEvent converts a "touch" message into a RawEvent.
func (m RemoteMessage) RawEvent() (RawEvent, error) {
	if m.T != "touch" {
		return RawEvent{}, fmt.Errorf("%w: message type %q", ErrMalformedEvent, m.T)
	}
	a, ok := ParseAction(m.Action)
	if !ok {
		return RawEvent{}, fmt.Errorf("%w: action %q", ErrMalformedEvent, m.Action)
	}
	raw := RawAction(a)
	if a == ActionPointerDown || a == ActionPointerUp {
		raw = PointerAction(a, m.Index)
	}
	ev := RawEvent{
		Action:    raw,
		Pointers:  remoteSamples(m.Pointers),
		EventTime: millis(m.Time),
	}
	for _, h := range m.History {
		ev.History = append(ev.History, HistoricalSample{Pointers: remoteSamples(h.Pointers), EventTime: millis(h.Time)})
	}
	if err := ev.Validate(); err != nil {
		return RawEvent{}, err
	}
	return ev, nil
}

func remoteSamples(in []RemoteSample) []PointerSample {
	out := make([]PointerSample, len(in))
	for i, s := range in {
		out[i] = PointerSample{X: s.X, Y: s.Y, Pressure: s.Pressure, ID: s.ID}
	}
	return out
}

func millis(ms float64) time.Duration {
	return time.Duration(ms * float64(time.Millisecond))
}

// RemoteServer accepts one websocket client at a time and feeds its touch
// messages to a handler. Every message is answered with an "ack" carrying
// the handled flag, or an "error" for messages that cannot be decoded;
// malformed messages never close the connection.
//
// The handler runs under the server's lock; use Do to touch the same state
// from another goroutine.
type RemoteServer struct {
	mu       sync.Mutex
	connMu   sync.Mutex
	upgrader websocket.Upgrader
	handle   func(*RawEvent) bool
	conn     *websocket.Conn
}

// NewRemoteServer creates a server delivering events to handle.
func NewRemoteServer(handle func(*RawEvent) bool) *RemoteServer {
	return &RemoteServer{
		handle: handle,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  4096,
			WriteBufferSize: 4096,
			CheckOrigin:     func(*http.Request) bool { return true },
		},
	}
}

// Do runs fn while holding the lock the handler runs under.
func (s *RemoteServer) Do(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn()
}

// Capabilities implements Platform. Remote clients report every pointer.
func (s *RemoteServer) Capabilities() Capabilities {
	return Capabilities{MultiTouch: true}
}

// ServeHTTP upgrades the connection and processes touch messages until the
// client disconnects.
func (s *RemoteServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return
	}
	if err := s.acceptConn(conn); err != nil {
		_ = conn.WriteJSON(RemoteMessage{T: "error", Error: err.Error()})
		_ = conn.Close()
		return
	}
	defer s.cleanupConn(conn)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		var reply RemoteMessage
		var msg RemoteMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			reply = RemoteMessage{T: "error", Error: fmt.Sprintf("decode message: %v", err)}
		} else {
			reply = s.handleMessage(msg)
		}
		if err := conn.WriteJSON(reply); err != nil {
			return
		}
	}
}

// handleMessage decodes one message and returns the reply.
func (s *RemoteServer) handleMessage(msg RemoteMessage) RemoteMessage {
	if msg.T == "ping" {
		return RemoteMessage{T: "pong"}
	}
	ev, err := msg.RawEvent()
	if err != nil {
		return RemoteMessage{T: "error", Error: err.Error()}
	}
	s.mu.Lock()
	handled := s.handle(&ev)
	s.mu.Unlock()
	return RemoteMessage{T: "ack", Handled: handled}
}

// acceptConn ensures only one active connection exists.
func (s *RemoteServer) acceptConn(conn *websocket.Conn) error {
	s.connMu.Lock()
	defer s.connMu.Unlock()
	if s.conn != nil {
		return fmt.Errorf("remote touch connection already active")
	}
	s.conn = conn
	return nil
}

// cleanupConn clears the active connection when closed.
func (s *RemoteServer) cleanupConn(conn *websocket.Conn) {
	s.connMu.Lock()
	if s.conn == conn {
		s.conn = nil
	}
	s.connMu.Unlock()
	_ = conn.Close()
}
