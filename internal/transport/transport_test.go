// internal/transport/transport_test.go
package transport

import (
	"bufio"
	"context"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testContext(t *testing.T) context.Context {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return ctx
}

func TestTCPRoundTrip(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	received := make(chan string, 1)
	go func() {
		c, err := ln.Accept()
		if err != nil {
			return
		}
		defer c.Close()
		r := bufio.NewReader(c)
		line, _ := r.ReadString('\n')
		received <- line
		// two lines in one write, the second with CRLF and the last unterminated
		_, _ = io.WriteString(c, "LOGIN;alice;\nPING;\r\nMOVE;5")
	}()

	ctx := testContext(t)
	conn, err := Dial(ctx, KindTCP, ln.Addr().String())
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteLine(ctx, "LOGIN;alice"))
	assert.Equal(t, "LOGIN;alice\n", <-received)

	for _, want := range []string{"LOGIN;alice;", "PING;", "MOVE;5"} {
		got, err := conn.ReadLine(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err = conn.ReadLine(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestTCPCloseUnblocksRead(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()
	go func() {
		c, err := ln.Accept()
		if err == nil {
			// hold the connection open without writing
			time.Sleep(2 * time.Second)
			c.Close()
		}
	}()

	conn, err := DialTCP(testContext(t), ln.Addr().String())
	require.NoError(t, err)

	errs := make(chan error, 1)
	go func() {
		_, err := conn.ReadLine(context.Background())
		errs <- err
	}()
	time.Sleep(50 * time.Millisecond)
	require.NoError(t, conn.Close())
	require.NoError(t, conn.Close())

	select {
	case err := <-errs:
		assert.ErrorIs(t, err, ErrClosed)
	case <-time.After(time.Second):
		t.Fatal("ReadLine did not return after Close")
	}
	assert.ErrorIs(t, conn.WriteLine(context.Background(), "PONG;"), ErrClosed)
}

func TestWebSocketRoundTrip(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		c, err := websocket.Accept(w, r, &websocket.AcceptOptions{Subprotocols: []string{Subprotocol}})
		if err != nil {
			return
		}
		defer c.Close(websocket.StatusInternalError, "handler exit")
		if c.Subprotocol() != Subprotocol {
			c.Close(websocket.StatusPolicyViolation, "wrong subprotocol")
			return
		}
		ctx := r.Context()
		_, data, err := c.Read(ctx)
		if err != nil {
			return
		}
		// echo back, then send a frame carrying two lines and a binary frame
		_ = c.Write(ctx, websocket.MessageText, data)
		_ = c.Write(ctx, websocket.MessageBinary, []byte{0x1})
		_ = c.Write(ctx, websocket.MessageText, []byte("PING;\nOPP_MOVE;1;2\r\n"))
		c.Close(websocket.StatusNormalClosure, "")
	}))
	defer srv.Close()

	ctx := testContext(t)
	target := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, err := Dial(ctx, KindWebSocket, target)
	require.NoError(t, err)
	defer conn.Close()
	assert.Equal(t, target, conn.RemoteAddr())

	require.NoError(t, conn.WriteLine(ctx, "WANT_GAME;"))
	for _, want := range []string{"WANT_GAME;", "PING;", "OPP_MOVE;1;2"} {
		got, err := conn.ReadLine(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err = conn.ReadLine(ctx)
	assert.ErrorIs(t, err, io.EOF)
}

func TestDialRejectsBadTargets(t *testing.T) {
	ctx := testContext(t)
	_, err := Dial(ctx, KindWebSocket, "http://example.com")
	assert.Error(t, err)
	_, err = Dial(ctx, Kind("carrier-pigeon"), "x")
	assert.Error(t, err)
}

func TestParseKind(t *testing.T) {
	for in, want := range map[string]Kind{"": KindTCP, "TCP": KindTCP, "ws": KindWebSocket, " websocket ": KindWebSocket} {
		got, err := ParseKind(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := ParseKind("udp")
	assert.Error(t, err)
}
