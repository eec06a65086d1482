// internal/transport/tcp.go
package transport

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"strings"
	"sync/atomic"
	"time"
)

// TCPConn carries newline-delimited lines over a stream socket.
type TCPConn struct {
	conn   net.Conn
	reader *bufio.Reader
	closed atomic.Bool
}

// DialTCP connects to addr (host:port).
func DialTCP(ctx context.Context, addr string) (*TCPConn, error) {
	var d net.Dialer
	c, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to %s: %w", addr, err)
	}
	return NewTCPConn(c), nil
}

// NewTCPConn wraps an established stream connection.
func NewTCPConn(c net.Conn) *TCPConn {
	return &TCPConn{conn: c, reader: bufio.NewReader(c)}
}

// ReadLine reads up to the next '\n'. A context deadline bounds the read;
// plain cancellation is not observed, Close unblocks a pending read instead.
func (t *TCPConn) ReadLine(ctx context.Context) (string, error) {
	if dl, ok := ctx.Deadline(); ok {
		_ = t.conn.SetReadDeadline(dl)
	} else {
		_ = t.conn.SetReadDeadline(time.Time{})
	}

	line, err := t.reader.ReadString('\n')
	if err != nil {
		if t.closed.Load() {
			return "", ErrClosed
		}
		// a final unterminated line is still a line
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// WriteLine writes line, appending '\n' when missing.
func (t *TCPConn) WriteLine(ctx context.Context, line string) error {
	if t.closed.Load() {
		return ErrClosed
	}
	if dl, ok := ctx.Deadline(); ok {
		_ = t.conn.SetWriteDeadline(dl)
	} else {
		_ = t.conn.SetWriteDeadline(time.Time{})
	}
	if !strings.HasSuffix(line, "\n") {
		line += "\n"
	}
	_, err := io.WriteString(t.conn, line)
	return err
}

// Close is safe to call more than once.
func (t *TCPConn) Close() error {
	if !t.closed.CompareAndSwap(false, true) {
		return nil
	}
	return t.conn.Close()
}

func (t *TCPConn) RemoteAddr() string {
	return t.conn.RemoteAddr().String()
}
