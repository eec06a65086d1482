// internal/session/dispatch.go
package session

import (
	"fmt"
	"strings"

	"github.com/jason-s-yu/reversi/internal/events"
	"github.com/jason-s-yu/reversi/internal/game"
	"github.com/jason-s-yu/reversi/internal/protocol"
	"github.com/sirupsen/logrus"
)

// reaction is what a dispatched message asks for once the state lock is released.
type reaction struct {
	reply  protocol.Command
	notify func(Sink) error
}

func notify(fn func(Sink) error) reaction {
	return reaction{notify: fn}
}

// handleLine decodes and applies one inbound line. A non-nil error means the
// session has faulted and the receive loop must stop.
func (s *Session) handleLine(line string) error {
	msg, err := s.codec.Decode(line)
	if err != nil {
		s.fail(ErrProtocolViolation, err)
		return err
	}

	if msg.Tag() == protocol.TagPing {
		s.logger.Trace("Received PING")
	} else {
		s.logger.WithField("tag", msg.Tag()).Debug("Received message")
	}
	s.mirror.Record(events.DirectionIn, msg.Tag(), map[string]interface{}{"line": line})

	s.mu.Lock()
	if s.state.Terminal() {
		s.mu.Unlock()
		return ErrClosed
	}
	prev := s.state
	r, err := s.apply(msg)
	next := s.state
	s.mu.Unlock()
	if err != nil {
		s.fail(ErrProtocolViolation, fmt.Errorf("%s: %w", msg.Tag(), err))
		return err
	}
	if next != prev {
		s.logger.WithFields(logrus.Fields{"from": prev, "to": next}).Info("Session state changed")
	}

	if r.reply != nil {
		if err := s.send(r.reply); err != nil {
			return err
		}
	}
	if r.notify != nil {
		if err := r.notify(s.sink); err != nil {
			s.fail(ErrShellAbort, err)
			return err
		}
	}
	return nil
}

// apply mutates the game for msg. Called with s.mu held. Changes are made on
// a copy and only kept when the whole message applies.
func (s *Session) apply(msg protocol.Message) (reaction, error) {
	work := *s.game
	r, err := s.applyTo(&work, msg)
	if err != nil {
		return reaction{}, err
	}
	*s.game = work
	return r, nil
}

func (s *Session) applyTo(g *game.Game, msg protocol.Message) (reaction, error) {
	switch m := msg.(type) {
	case protocol.Login:
		name := trimName(m.Name)
		if err := g.AssignLocalName(name); err != nil {
			return reaction{}, err
		}
		s.state = StateAwaitingGame
		return notify(func(k Sink) error { return k.OnLoginAccepted(name) }), nil

	case protocol.GameAssigned:
		if err := g.AssignLocalColor(m.Color); err != nil {
			return reaction{}, err
		}
		s.state = StateWaiting
		return notify(func(k Sink) error { return k.OnColorAssigned(m.Color) }), nil

	case protocol.StartGame:
		name := trimName(m.OpponentName)
		if err := g.AssignRemote(name, m.OpponentColor); err != nil {
			return reaction{}, err
		}
		if err := g.StartNewGame(m.LocalFirst); err != nil {
			return reaction{}, err
		}
		s.state = StateInGame
		return notify(func(k Sink) error { return k.OnGameStarted(name, m.OpponentColor, m.LocalFirst) }), nil

	case protocol.MoveResult:
		if m.Status.Rejected() {
			s.logger.WithField("status", m.Status).Warn("Move rejected by server")
			return notify(func(k Sink) error { return k.OnMoveRejected(m.Status) }), nil
		}
		if _, err := g.ApplyLocalMove(m.X, m.Y); err != nil {
			return reaction{}, err
		}
		return notify(func(k Sink) error { return k.OnLocalMoveApplied(m.X, m.Y) }), nil

	case protocol.OpponentMove:
		if _, err := g.ApplyRemoteMove(m.X, m.Y); err != nil {
			return reaction{}, err
		}
		return notify(func(k Sink) error { return k.OnOpponentMoveApplied(m.X, m.Y) }), nil

	case protocol.GameStatus:
		if err := g.EndGame(); err != nil {
			return reaction{}, err
		}
		s.state = StateGameOver
		outcome := game.ClassifyStatus(trimName(m.Result), g.Local().Name)
		return notify(func(k Sink) error { return k.OnGameEnded(outcome) }), nil

	case protocol.OpponentDisconnected:
		if err := g.MarkRemoteGone(); err != nil {
			return reaction{}, err
		}
		return notify(func(k Sink) error { return k.OnOpponentDisconnected() }), nil

	case protocol.Reconnect:
		if err := g.AssignRemote(trimName(m.OpponentName), m.OpponentColor); err != nil {
			return reaction{}, err
		}
		if err := g.Restore(m.Board, trimName(m.TurnPlayer)); err != nil {
			return reaction{}, err
		}
		s.state = StateInGame
		return notify(func(k Sink) error { return k.OnReconnected() }), nil

	case protocol.Ping:
		s.monitor.Heartbeat(s.opts.clock())
		return reaction{reply: protocol.PongCommand{}}, nil

	default:
		return reaction{}, fmt.Errorf("no handler for %T", msg)
	}
}

// trimName drops the space padding the server keeps on fixed-width names.
func trimName(name string) string {
	return strings.TrimRight(name, " ")
}
