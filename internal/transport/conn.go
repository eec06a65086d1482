// internal/transport/conn.go
package transport

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
)

// ErrClosed is returned by ReadLine after the connection was closed locally.
var ErrClosed = errors.New("transport closed")

// Conn is a line-oriented duplex connection to the game server. ReadLine and
// WriteLine may run concurrently with each other; callers serialise writes.
type Conn interface {
	// ReadLine blocks for the next line and returns it without its terminator.
	ReadLine(ctx context.Context) (string, error)

	// WriteLine sends one newline-terminated line.
	WriteLine(ctx context.Context, line string) error

	// Close closes the connection and unblocks a pending ReadLine.
	Close() error

	// RemoteAddr returns the peer address for logging.
	RemoteAddr() string
}

// Kind names a transport implementation.
type Kind string

const (
	KindTCP       Kind = "tcp"
	KindWebSocket Kind = "ws"
)

// ParseKind maps a config value to a transport kind.
func ParseKind(s string) (Kind, error) {
	switch Kind(strings.ToLower(strings.TrimSpace(s))) {
	case "", KindTCP:
		return KindTCP, nil
	case KindWebSocket, "websocket":
		return KindWebSocket, nil
	default:
		return "", fmt.Errorf("unknown transport %q", s)
	}
}

// Dial opens a connection of the given kind. For TCP target is host:port, for
// WebSocket it is a ws:// or wss:// URL.
func Dial(ctx context.Context, kind Kind, target string) (Conn, error) {
	switch kind {
	case KindTCP:
		return DialTCP(ctx, target)
	case KindWebSocket:
		u, err := url.Parse(target)
		if err != nil || (u.Scheme != "ws" && u.Scheme != "wss") {
			return nil, fmt.Errorf("invalid websocket url %q", target)
		}
		return DialWebSocket(ctx, target)
	default:
		return nil, fmt.Errorf("unknown transport %q", kind)
	}
}
