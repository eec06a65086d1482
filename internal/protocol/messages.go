// internal/protocol/messages.go
package protocol

import (
	"fmt"

	"github.com/jason-s-yu/reversi/internal/board"
)

// Delimiter separates fields on the wire.
const Delimiter = ";"

// Wire tags shared by both dialects.
const (
	TagLogin           = "LOGIN"
	TagStartGame       = "START_GAME"
	TagMove            = "MOVE"
	TagOppMove         = "OPP_MOVE"
	TagGameStatus      = "GAME_STATUS"
	TagOppDisconnected = "OPP_DISCONNECTED"
	TagReconnect       = "RECONNECT"
	TagPing            = "PING"
	TagPong            = "PONG"
	TagLogout          = "LOGOUT"

	TagWantGame  = "WANT_GAME"
	TagJoinGame  = "JOIN_GAME"
	TagWaitReply = "WAIT_REPLY"
)

// Replies to an opponent-disconnected prompt.
const (
	ReplyWait    = "WAIT"
	ReplyNotWait = "NOT_WAIT"
)

// MoveStatus is the status code the server attaches to a MOVE reply.
type MoveStatus int

// Rejection codes. Any other status means the move was accepted.
const (
	StatusGameNotFound MoveStatus = 5
	StatusNotMyTurn    MoveStatus = 6
	StatusInvalidMove  MoveStatus = 7
	StatusFieldTaken   MoveStatus = 8
)

// Rejected reports whether the server refused the move.
func (s MoveStatus) Rejected() bool {
	switch s {
	case StatusGameNotFound, StatusNotMyTurn, StatusInvalidMove, StatusFieldTaken:
		return true
	default:
		return false
	}
}

func (s MoveStatus) String() string {
	switch s {
	case StatusGameNotFound:
		return "game_not_found"
	case StatusNotMyTurn:
		return "not_my_turn"
	case StatusInvalidMove:
		return "invalid_move"
	case StatusFieldTaken:
		return "field_taken"
	default:
		return fmt.Sprintf("ok(%d)", int(s))
	}
}

// Message is an inbound server message. The set of implementations is closed.
type Message interface {
	Tag() string
	inbound()
}

// Login confirms the login and echoes the accepted name.
type Login struct {
	Name string
}

// GameAssigned answers a game request with the color this client will play.
type GameAssigned struct {
	Color      board.Cell
	RequestTag string // WANT_GAME or JOIN_GAME, depending on the dialect
}

// StartGame announces the opponent and who moves first.
type StartGame struct {
	OpponentName  string
	OpponentColor board.Cell
	LocalFirst    bool
}

// MoveResult is the server's answer to this client's MOVE.
type MoveResult struct {
	Status MoveStatus
	X, Y   int
	HasPos bool // rejected moves may omit the coordinates
}

// OpponentMove is a move the opponent made.
type OpponentMove struct {
	X, Y int
}

// GameStatus ends the game. Result is DRAW, OPP_DISCONNECTED or the winner's name.
type GameStatus struct {
	Result string
}

// OpponentDisconnected reports that the opponent dropped mid-game.
type OpponentDisconnected struct{}

// Reconnect restores a game after this client reconnected.
type Reconnect struct {
	Board         string
	TurnPlayer    string
	OpponentName  string
	OpponentColor board.Cell
}

// Ping is the server heartbeat.
type Ping struct{}

func (Login) Tag() string { return TagLogin }
func (m GameAssigned) Tag() string { return m.RequestTag }
func (StartGame) Tag() string { return TagStartGame }
func (MoveResult) Tag() string { return TagMove }
func (OpponentMove) Tag() string { return TagOppMove }
func (GameStatus) Tag() string { return TagGameStatus }
func (OpponentDisconnected) Tag() string { return TagOppDisconnected }
func (Reconnect) Tag() string { return TagReconnect }
func (Ping) Tag() string { return TagPing }

func (Login) inbound() {}
func (GameAssigned) inbound() {}
func (StartGame) inbound() {}
func (MoveResult) inbound() {}
func (OpponentMove) inbound() {}
func (GameStatus) inbound() {}
func (OpponentDisconnected) inbound() {}
func (Reconnect) inbound() {}
func (Ping) inbound() {}

// Command is an outbound client message.
type Command interface {
	fields(d Dialect) (tag string, fields []string)
}

type LoginCommand struct{ Name string }

type RequestGameCommand struct{}

type MoveCommand struct{ X, Y int }

type WaitReplyCommand struct{ Wait bool }

type LogoutCommand struct{}

type PongCommand struct{}

func (c LoginCommand) fields(Dialect) (string, []string) { return TagLogin, []string{c.Name} }

func (RequestGameCommand) fields(d Dialect) (string, []string) { return d.gameTag(), nil }

func (c MoveCommand) fields(Dialect) (string, []string) {
	return TagMove, []string{fmt.Sprint(c.X), fmt.Sprint(c.Y)}
}

func (c WaitReplyCommand) fields(d Dialect) (string, []string) {
	reply := ReplyNotWait
	if c.Wait {
		reply = ReplyWait
	}
	return d.waitReplyTag(), []string{reply}
}

func (LogoutCommand) fields(Dialect) (string, []string) { return TagLogout, nil }

func (PongCommand) fields(Dialect) (string, []string) { return TagPong, nil }
