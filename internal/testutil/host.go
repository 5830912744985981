// Package testutil provides a scripted evaluation host for tests that need a
// real WebSocket peer.
package testutil

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/atomicstack/snek-console/internal/protocol"
	"github.com/coder/websocket"
)

// Handler reacts to a frame received from the console. It runs on the host's
// read goroutine and may call Host.Send.
type Handler func(h *Host, msg protocol.Message)

// Host is a single-connection fake evaluation host.
type Host struct {
	t       testing.TB
	server  *httptest.Server
	handler Handler

	mu        sync.Mutex
	conn      *websocket.Conn
	connected chan struct{}
	received  chan protocol.Message
	query     string
}

// NewHost starts a host; it is shut down automatically when the test ends.
func NewHost(t testing.TB, handler Handler) *Host {
	t.Helper()
	h := &Host{
		t:         t,
		handler:   handler,
		connected: make(chan struct{}),
		received:  make(chan protocol.Message, 64),
	}
	h.server = httptest.NewServer(http.HandlerFunc(h.serve))
	t.Cleanup(h.Close)
	return h
}

// URL returns the ws:// endpoint of the host.
func (h *Host) URL() string {
	return "ws" + strings.TrimPrefix(h.server.URL, "http") + "/sktk?session=main"
}

// Query returns the raw query string of the accepted connection.
func (h *Host) Query() string {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.query
}

func (h *Host) serve(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		h.t.Logf("accept error: %v", err)
		return
	}
	h.mu.Lock()
	h.conn = conn
	h.query = r.URL.RawQuery
	h.mu.Unlock()
	close(h.connected)

	ctx := context.Background()
	for {
		_, data, err := conn.Read(ctx)
		if err != nil {
			return
		}
		msg, err := protocol.Decode(data)
		if err != nil {
			h.t.Logf("host decode error: %v", err)
			continue
		}
		select {
		case h.received <- msg:
		default:
			h.t.Logf("host receive buffer full, dropping %s", msg.Tag())
		}
		if h.handler != nil {
			h.handler(h, msg)
		}
	}
}

// WaitConnected blocks until the console has connected.
func (h *Host) WaitConnected() {
	h.t.Helper()
	select {
	case <-h.connected:
	case <-time.After(5 * time.Second):
		h.t.Fatalf("timeout waiting for console connection")
	}
}

// Send writes msg to the connected console.
func (h *Host) Send(msg protocol.Message) {
	data, err := protocol.Encode(msg)
	if err != nil {
		h.t.Errorf("host encode %s: %v", msg.Tag(), err)
		return
	}
	h.SendRaw(data)
}

// SendRaw writes an arbitrary text frame.
func (h *Host) SendRaw(data []byte) {
	<-h.connected
	h.mu.Lock()
	defer h.mu.Unlock()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := h.conn.Write(ctx, websocket.MessageText, data); err != nil {
		h.t.Logf("host write: %v", err)
	}
}

// Next returns the next frame received from the console.
func (h *Host) Next() protocol.Message {
	h.t.Helper()
	select {
	case msg := <-h.received:
		return msg
	case <-time.After(5 * time.Second):
		h.t.Fatalf("timeout waiting for frame from console")
		return nil
	}
}

// Disconnect closes the console connection with a normal closure.
func (h *Host) Disconnect() {
	<-h.connected
	h.mu.Lock()
	defer h.mu.Unlock()
	_ = h.conn.Close(websocket.StatusNormalClosure, "host shutting down")
}

// Close stops the server.
func (h *Host) Close() {
	h.server.CloseClientConnections()
	h.server.Close()
}
