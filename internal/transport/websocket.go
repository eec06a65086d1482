// internal/transport/websocket.go
package transport

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync/atomic"

	"github.com/coder/websocket"
)

// Subprotocol is offered when dialing a WebSocket relay.
const Subprotocol = "reversi"

// WebSocketConn carries protocol lines in text frames. A frame may hold
// several lines; each outbound line is sent as its own frame.
type WebSocketConn struct {
	conn    *websocket.Conn
	target  string
	pending []string
	closed  atomic.Bool
}

// DialWebSocket connects to a ws:// or wss:// relay that forwards lines to the game server.
func DialWebSocket(ctx context.Context, target string) (*WebSocketConn, error) {
	c, _, err := websocket.Dial(ctx, target, &websocket.DialOptions{
		Subprotocols: []string{Subprotocol},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to dial websocket %s: %w", target, err)
	}
	return NewWebSocketConn(c, target), nil
}

// NewWebSocketConn wraps an established WebSocket connection.
func NewWebSocketConn(c *websocket.Conn, target string) *WebSocketConn {
	return &WebSocketConn{conn: c, target: target}
}

// ReadLine returns the next buffered line, reading frames as needed.
// Non-text frames are skipped.
func (w *WebSocketConn) ReadLine(ctx context.Context) (string, error) {
	for len(w.pending) == 0 {
		msgType, data, err := w.conn.Read(ctx)
		if err != nil {
			if w.closed.Load() {
				return "", ErrClosed
			}
			status := websocket.CloseStatus(err)
			if status == websocket.StatusNormalClosure || status == websocket.StatusGoingAway {
				return "", io.EOF
			}
			return "", err
		}
		if msgType != websocket.MessageText {
			continue
		}
		w.pending = splitLines(string(data))
	}
	line := w.pending[0]
	w.pending = w.pending[1:]
	return line, nil
}

func splitLines(s string) []string {
	lines := strings.Split(s, "\n")
	if n := len(lines); n > 0 && lines[n-1] == "" {
		lines = lines[:n-1]
	}
	for i := range lines {
		lines[i] = strings.TrimSuffix(lines[i], "\r")
	}
	return lines
}

// WriteLine sends line as one text frame, newline-terminated.
func (w *WebSocketConn) WriteLine(ctx context.Context, line string) error {
	if w.closed.Load() {
		return ErrClosed
	}
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	return w.conn.Write(ctx, websocket.MessageText, []byte(line))
}

// Close sends a normal closure; it is safe to call more than once.
func (w *WebSocketConn) Close() error {
	if !w.closed.CompareAndSwap(false, true) {
		return nil
	}
	// a failed close handshake means the peer is already gone
	_ = w.conn.Close(websocket.StatusNormalClosure, "client closed")
	return nil
}

func (w *WebSocketConn) RemoteAddr() string {
	return w.target
}
