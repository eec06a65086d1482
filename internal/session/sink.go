// internal/session/sink.go
package session

import (
	"time"

	"github.com/jason-s-yu/reversi/internal/board"
	"github.com/jason-s-yu/reversi/internal/game"
	"github.com/jason-s-yu/reversi/internal/protocol"
)

// Sink receives session notifications. Calls come from the receive loop or the
// health loop, never while the session holds its state lock, and never
// concurrently with each other for the same loop. Arguments are copies.
//
// Returning a non-nil error faults the session with ErrShellAbort.
type Sink interface {
	OnLoginAccepted(name string) error
	OnColorAssigned(color board.Cell) error
	OnGameStarted(opponentName string, opponentColor board.Cell, isLocalTurn bool) error
	OnMoveRejected(code protocol.MoveStatus) error
	OnLocalMoveApplied(x, y int) error
	OnOpponentMoveApplied(x, y int) error
	OnGameEnded(outcome game.Outcome) error
	OnOpponentDisconnected() error
	OnReconnected() error
	OnConnectionWarning() error
	OnZombieTimeout(silence time.Duration) error

	// OnFatalError is called exactly once when the session faults.
	OnFatalError(err error)
}

// Callbacks implements Sink with optional function fields; nil fields are no-ops.
type Callbacks struct {
	LoginAcceptedFn        func(name string) error
	ColorAssignedFn        func(color board.Cell) error
	GameStartedFn          func(opponentName string, opponentColor board.Cell, isLocalTurn bool) error
	MoveRejectedFn         func(code protocol.MoveStatus) error
	LocalMoveAppliedFn     func(x, y int) error
	OpponentMoveAppliedFn  func(x, y int) error
	GameEndedFn            func(outcome game.Outcome) error
	OpponentDisconnectedFn func() error
	ReconnectedFn          func() error
	ConnectionWarningFn    func() error
	ZombieTimeoutFn        func(silence time.Duration) error
	FatalErrorFn           func(err error)
}

var _ Sink = Callbacks{}

func (c Callbacks) OnLoginAccepted(name string) error {
	if c.LoginAcceptedFn == nil {
		return nil
	}
	return c.LoginAcceptedFn(name)
}

func (c Callbacks) OnColorAssigned(color board.Cell) error {
	if c.ColorAssignedFn == nil {
		return nil
	}
	return c.ColorAssignedFn(color)
}

func (c Callbacks) OnGameStarted(opponentName string, opponentColor board.Cell, isLocalTurn bool) error {
	if c.GameStartedFn == nil {
		return nil
	}
	return c.GameStartedFn(opponentName, opponentColor, isLocalTurn)
}

func (c Callbacks) OnMoveRejected(code protocol.MoveStatus) error {
	if c.MoveRejectedFn == nil {
		return nil
	}
	return c.MoveRejectedFn(code)
}

func (c Callbacks) OnLocalMoveApplied(x, y int) error {
	if c.LocalMoveAppliedFn == nil {
		return nil
	}
	return c.LocalMoveAppliedFn(x, y)
}

func (c Callbacks) OnOpponentMoveApplied(x, y int) error {
	if c.OpponentMoveAppliedFn == nil {
		return nil
	}
	return c.OpponentMoveAppliedFn(x, y)
}

func (c Callbacks) OnGameEnded(outcome game.Outcome) error {
	if c.GameEndedFn == nil {
		return nil
	}
	return c.GameEndedFn(outcome)
}

func (c Callbacks) OnOpponentDisconnected() error {
	if c.OpponentDisconnectedFn == nil {
		return nil
	}
	return c.OpponentDisconnectedFn()
}

func (c Callbacks) OnReconnected() error {
	if c.ReconnectedFn == nil {
		return nil
	}
	return c.ReconnectedFn()
}

func (c Callbacks) OnConnectionWarning() error {
	if c.ConnectionWarningFn == nil {
		return nil
	}
	return c.ConnectionWarningFn()
}

func (c Callbacks) OnZombieTimeout(silence time.Duration) error {
	if c.ZombieTimeoutFn == nil {
		return nil
	}
	return c.ZombieTimeoutFn(silence)
}

func (c Callbacks) OnFatalError(err error) {
	if c.FatalErrorFn != nil {
		c.FatalErrorFn(err)
	}
}
