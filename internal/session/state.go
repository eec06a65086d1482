// internal/session/state.go
package session

// State is the lifecycle position of a session.
type State int

const (
	StateConnecting State = iota
	StateLoggedOut
	StateAwaitingGame // logged in, no game requested or assigned yet
	StateWaiting      // color assigned, waiting for an opponent
	StateInGame
	StateGameOver
	StateFaulted
	StateClosed
)

func (s State) String() string {
	switch s {
	case StateConnecting:
		return "connecting"
	case StateLoggedOut:
		return "logged_out"
	case StateAwaitingGame:
		return "awaiting_game"
	case StateWaiting:
		return "waiting"
	case StateInGame:
		return "in_game"
	case StateGameOver:
		return "game_over"
	case StateFaulted:
		return "faulted"
	case StateClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// Terminal reports whether the session has stopped for good.
func (s State) Terminal() bool {
	return s == StateFaulted || s == StateClosed
}
