// internal/session/session.go
package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jason-s-yu/reversi/internal/board"
	"github.com/jason-s-yu/reversi/internal/events"
	"github.com/jason-s-yu/reversi/internal/game"
	"github.com/jason-s-yu/reversi/internal/health"
	"github.com/jason-s-yu/reversi/internal/protocol"
	"github.com/jason-s-yu/reversi/internal/transport"
	"github.com/sirupsen/logrus"
)

// Session owns one connection to the game server. The receive loop is the
// only writer of the game state; other goroutines read it through Game.
type Session struct {
	id     uuid.UUID
	conn   transport.Conn
	codec  protocol.Codec
	sink   Sink
	opts   options
	logger *logrus.Entry

	monitor *health.Monitor
	mirror  *events.Mirror

	mu         sync.Mutex // guards state, game, err, started and loggingOut
	state      State
	game       *game.Game
	err        error
	started    bool
	loggingOut bool

	writeMu sync.Mutex // serialises outbound lines

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup
	done   chan struct{}
}

// New wraps an open connection. The session stays in StateConnecting and reads
// nothing until Start is called. A nil sink discards notifications.
func New(conn transport.Conn, sink Sink, opts ...Option) *Session {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	if sink == nil {
		sink = Callbacks{}
	}

	id := uuid.New()
	ctx, cancel := context.WithCancel(context.Background())
	s := &Session{
		id:      id,
		conn:    conn,
		codec:   protocol.NewCodec(o.dialect),
		sink:    sink,
		opts:    o,
		logger:  o.logger.WithField("session", id),
		monitor: health.New(o.thresholds, o.clock()),
		state:   StateConnecting,
		game:    game.New(),
		ctx:     ctx,
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	if o.publisher != nil {
		s.mirror = events.NewMirror(o.publisher, id, s.logger, 0)
	}
	return s
}

// Dial connects with the given transport and starts a session on it.
func Dial(ctx context.Context, kind transport.Kind, target string, sink Sink, opts ...Option) (*Session, error) {
	conn, err := transport.Dial(ctx, kind, target)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrTransport, err)
	}
	s := New(conn, sink, opts...)
	transport.LogConnect(s.logger, conn, kind)
	s.Start()
	return s, nil
}

// Start launches the receive and heartbeat loops. Calling it again, or after
// the session was closed, does nothing.
func (s *Session) Start() {
	s.mu.Lock()
	if s.started || s.state != StateConnecting {
		s.mu.Unlock()
		return
	}
	s.started = true
	s.state = StateLoggedOut
	s.mu.Unlock()

	s.monitor.Heartbeat(s.opts.clock())
	s.wg.Add(2)
	go s.receiveLoop()
	go s.healthLoop()
	go func() {
		s.wg.Wait()
		close(s.done)
	}()
}

// ID identifies the session in logs and mirrored events.
func (s *Session) ID() uuid.UUID {
	return s.id
}

// State returns the current lifecycle state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Game returns a copy of the current game state.
func (s *Session) Game() game.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.State()
}

// Err returns the fatal error, or nil if the session has not faulted.
func (s *Session) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

// Done is closed once both loops have exited.
func (s *Session) Done() <-chan struct{} {
	return s.done
}

// Login asks the server to log in as name. The name is padded with spaces to
// the full field width, as the server expects.
func (s *Session) Login(name string) error {
	if name == "" {
		return game.ErrEmptyName
	}
	if len(name) > game.MaxNameLength {
		return fmt.Errorf("%w: %q", game.ErrNameTooLong, name)
	}
	return s.send(protocol.LoginCommand{Name: fmt.Sprintf("%-*s", game.MaxNameLength, name)})
}

// RequestGame asks the server for a game, either the first one or another
// after a game has ended.
func (s *Session) RequestGame() error {
	return s.send(protocol.RequestGameCommand{})
}

// ProposeMove sends a move. The board only changes once the server accepts it;
// the turn is not checked locally, the server answers out-of-turn moves with a
// rejection.
func (s *Session) ProposeMove(x, y int) error {
	if x < 0 || x >= board.Size || y < 0 || y >= board.Size {
		return fmt.Errorf("%w: (%d,%d)", board.ErrOutOfBounds, x, y)
	}
	return s.send(protocol.MoveCommand{X: x, Y: y})
}

// RespondToOpponentDisconnect tells the server whether to wait for the opponent.
func (s *Session) RespondToOpponentDisconnect(wait bool) error {
	return s.send(protocol.WaitReplyCommand{Wait: wait})
}

// Logout sends LOGOUT and closes the session. The session ends in StateClosed
// and OnFatalError is not called, even if the server hangs up first.
// Other commands are refused once Logout has been called.
func (s *Session) Logout() error {
	s.mu.Lock()
	if s.state.Terminal() {
		s.mu.Unlock()
		return ErrClosed
	}
	s.loggingOut = true
	s.mu.Unlock()

	err := s.send(protocol.LogoutCommand{})
	if errors.Is(err, ErrClosed) {
		return err
	}
	s.close()
	return err
}

// Close closes the session without notifying the server.
func (s *Session) Close() error {
	s.close()
	return nil
}

func (s *Session) send(cmd protocol.Command) error {
	if _, ok := cmd.(protocol.LogoutCommand); !ok && s.isLoggingOut() {
		return ErrClosed
	}
	line, err := s.codec.Encode(cmd)
	if err != nil {
		return err
	}
	if err := s.write(line); err != nil {
		if errors.Is(err, ErrClosed) {
			return err
		}
		s.fail(ErrTransport, err)
		return fmt.Errorf("%w: %w", ErrTransport, err)
	}

	raw := strings.TrimSuffix(line, "\n")
	tag, _, _ := strings.Cut(raw, protocol.Delimiter)
	if tag == protocol.TagPong {
		s.logger.Trace("Sent PONG")
	} else {
		s.logger.WithField("tag", tag).Debug("Sent command")
	}
	s.mirror.Record(events.DirectionOut, tag, map[string]interface{}{"line": raw})
	return nil
}

func (s *Session) write(line string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	if s.State().Terminal() {
		return ErrClosed
	}
	ctx, cancel := context.WithTimeout(s.ctx, s.opts.writeTimeout)
	defer cancel()
	return s.conn.WriteLine(ctx, line)
}

func (s *Session) isLoggingOut() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loggingOut
}

// fail moves the session to StateFaulted and reports err once.
func (s *Session) fail(kind, cause error) {
	fe := &FatalError{Kind: kind, Err: cause}

	s.mu.Lock()
	if s.state.Terminal() {
		s.mu.Unlock()
		return
	}
	prev := s.state
	s.state = StateFaulted
	s.err = fe
	s.mu.Unlock()

	s.logger.WithFields(logrus.Fields{
		"state": prev,
		"error": fe,
	}).Error("Session faulted")
	s.shutdown(fe)
	s.sink.OnFatalError(fe)
}

func (s *Session) close() {
	s.mu.Lock()
	if s.state.Terminal() {
		s.mu.Unlock()
		return
	}
	s.state = StateClosed
	s.mu.Unlock()

	s.shutdown(nil)
}

// shutdown runs once, after the state became terminal.
func (s *Session) shutdown(cause error) {
	s.cancel()
	_ = s.conn.Close()
	transport.LogDisconnect(s.logger, s.conn, cause)
	s.mirror.Close()

	s.mu.Lock()
	started := s.started
	s.mu.Unlock()
	if !started {
		close(s.done)
	}
}

func (s *Session) receiveLoop() {
	defer s.wg.Done()
	for {
		line, err := s.conn.ReadLine(s.ctx)
		if err != nil {
			s.mu.Lock()
			quiet := s.state.Terminal() || s.loggingOut
			s.mu.Unlock()
			if quiet {
				// the server may hang up as soon as it reads LOGOUT
				s.close()
			} else {
				s.fail(ErrTransport, err)
			}
			return
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := s.handleLine(line); err != nil {
			return
		}
	}
}

func (s *Session) healthLoop() {
	defer s.wg.Done()
	s.monitor.Run(s.ctx, s.opts.clock, s.onHealthSignal)
}

func (s *Session) onHealthSignal(sig health.Signal) {
	if s.State().Terminal() {
		return
	}
	if sig.Warning {
		s.logger.WithField("silence", sig.Silence).Warn("No heartbeat from server")
		if err := s.sink.OnConnectionWarning(); err != nil {
			s.fail(ErrShellAbort, err)
			return
		}
	}
	if sig.Zombie {
		s.logger.WithField("silence", sig.Silence).Warn("Connection presumed dead")
		if s.opts.zombieAutoClose {
			s.fail(ErrZombieTimeout, fmt.Errorf("no heartbeat for %s", sig.Silence))
			return
		}
		if err := s.sink.OnZombieTimeout(sig.Silence); err != nil {
			s.fail(ErrShellAbort, err)
		}
	}
}
