// internal/protocol/codec.go
package protocol

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/jason-s-yu/reversi/internal/board"
)

var (
	ErrUnknownTag   = errors.New("unknown message tag")
	ErrMalformed    = errors.New("malformed message")
	ErrInvalidField = errors.New("field contains a delimiter or line break")
)

// Dialect selects between the two tag sets servers have used for the game
// request and the opponent-disconnected reply. A codec speaks exactly one.
type Dialect int

const (
	// DialectWantGame uses WANT_GAME and answers OPP_DISCONNECTED with OPP_DISCONNECTED.
	DialectWantGame Dialect = iota
	// DialectJoinGame uses JOIN_GAME and answers OPP_DISCONNECTED with WAIT_REPLY.
	DialectJoinGame
)

// ParseDialect maps a config value to a dialect.
func ParseDialect(s string) (Dialect, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "want_game":
		return DialectWantGame, nil
	case "join_game":
		return DialectJoinGame, nil
	default:
		return DialectWantGame, fmt.Errorf("unknown protocol dialect %q", s)
	}
}

func (d Dialect) String() string {
	if d == DialectJoinGame {
		return "join_game"
	}
	return "want_game"
}

func (d Dialect) gameTag() string {
	if d == DialectJoinGame {
		return TagJoinGame
	}
	return TagWantGame
}

func (d Dialect) waitReplyTag() string {
	if d == DialectJoinGame {
		return TagWaitReply
	}
	return TagOppDisconnected
}

// DecodeError describes a line that could not be decoded. It matches
// ErrUnknownTag or ErrMalformed with errors.Is.
type DecodeError struct {
	Kind   error
	Line   string
	Reason string
}

func (e *DecodeError) Error() string {
	if e.Reason == "" {
		return fmt.Sprintf("%v: %q", e.Kind, e.Line)
	}
	return fmt.Sprintf("%v: %s: %q", e.Kind, e.Reason, e.Line)
}

func (e *DecodeError) Unwrap() error { return e.Kind }

// Codec translates between wire lines and typed messages for one dialect.
type Codec struct {
	Dialect Dialect
}

// NewCodec returns a codec for the given dialect.
func NewCodec(d Dialect) Codec {
	return Codec{Dialect: d}
}

// Decode parses one line (with or without its line terminator).
func (c Codec) Decode(raw string) (Message, error) {
	line := strings.TrimSuffix(raw, "\n")
	line = strings.TrimSuffix(line, "\r")

	parts := strings.Split(line, Delimiter)
	if n := len(parts); n > 1 && parts[n-1] == "" {
		parts = parts[:n-1]
	}
	tag, args := parts[0], parts[1:]

	malformed := func(reason string) error {
		return &DecodeError{Kind: ErrMalformed, Line: line, Reason: reason}
	}
	need := func(n int) error {
		if len(args) < n {
			return malformed(fmt.Sprintf("%s needs %d fields, got %d", tag, n, len(args)))
		}
		return nil
	}
	color := func(s string) (board.Cell, error) {
		if len(s) != 1 {
			return board.Empty, malformed(fmt.Sprintf("color field %q", s))
		}
		cell, err := board.ParseColor(s[0])
		if err != nil {
			return board.Empty, malformed(err.Error())
		}
		return cell, nil
	}
	number := func(s string) (int, error) {
		n, err := strconv.Atoi(s)
		if err != nil {
			return 0, malformed(fmt.Sprintf("%q is not a number", s))
		}
		return n, nil
	}

	switch tag {
	case TagLogin:
		if err := need(1); err != nil {
			return nil, err
		}
		if args[0] == "" {
			return nil, malformed("empty name")
		}
		return Login{Name: args[0]}, nil

	case c.Dialect.gameTag():
		if err := need(1); err != nil {
			return nil, err
		}
		cell, err := color(args[0])
		if err != nil {
			return nil, err
		}
		return GameAssigned{Color: cell, RequestTag: tag}, nil

	case TagStartGame:
		if err := need(3); err != nil {
			return nil, err
		}
		if args[0] == "" {
			return nil, malformed("empty opponent name")
		}
		cell, err := color(args[1])
		if err != nil {
			return nil, err
		}
		var first bool
		switch args[2] {
		case "1":
			first = true
		case "0":
			first = false
		default:
			return nil, malformed(fmt.Sprintf("first-mover flag %q", args[2]))
		}
		return StartGame{OpponentName: args[0], OpponentColor: cell, LocalFirst: first}, nil

	case TagMove:
		if err := need(1); err != nil {
			return nil, err
		}
		code, err := number(args[0])
		if err != nil {
			return nil, err
		}
		status := MoveStatus(code)
		if status.Rejected() && len(args) < 3 {
			return MoveResult{Status: status}, nil
		}
		if err := need(3); err != nil {
			return nil, err
		}
		x, err := number(args[1])
		if err != nil {
			return nil, err
		}
		y, err := number(args[2])
		if err != nil {
			return nil, err
		}
		return MoveResult{Status: status, X: x, Y: y, HasPos: true}, nil

	case TagOppMove:
		if err := need(2); err != nil {
			return nil, err
		}
		x, err := number(args[0])
		if err != nil {
			return nil, err
		}
		y, err := number(args[1])
		if err != nil {
			return nil, err
		}
		return OpponentMove{X: x, Y: y}, nil

	case TagGameStatus:
		if err := need(1); err != nil {
			return nil, err
		}
		if args[0] == "" {
			return nil, malformed("empty result")
		}
		return GameStatus{Result: args[0]}, nil

	case TagOppDisconnected:
		return OpponentDisconnected{}, nil

	case TagReconnect:
		if err := need(4); err != nil {
			return nil, err
		}
		if len(args[0]) != board.SnapshotLen {
			return nil, malformed(fmt.Sprintf("board snapshot has %d cells, want %d", len(args[0]), board.SnapshotLen))
		}
		for i := 0; i < len(args[0]); i++ {
			if _, err := board.ParseCell(args[0][i]); err != nil {
				return nil, malformed(err.Error())
			}
		}
		if args[2] == "" {
			return nil, malformed("empty opponent name")
		}
		cell, err := color(args[3])
		if err != nil {
			return nil, err
		}
		return Reconnect{Board: args[0], TurnPlayer: args[1], OpponentName: args[2], OpponentColor: cell}, nil

	case TagPing:
		return Ping{}, nil

	default:
		return nil, &DecodeError{Kind: ErrUnknownTag, Line: line}
	}
}

// Encode renders a command as a newline-terminated wire line. Commands without
// fields keep the trailing delimiter ("PONG;").
func (c Codec) Encode(cmd Command) (string, error) {
	tag, fields := cmd.fields(c.Dialect)
	for _, f := range fields {
		if strings.ContainsAny(f, Delimiter+"\r\n") {
			return "", fmt.Errorf("%w: %s field %q", ErrInvalidField, tag, f)
		}
	}
	if len(fields) == 0 {
		return tag + Delimiter + "\n", nil
	}
	return tag + Delimiter + strings.Join(fields, Delimiter) + "\n", nil
}
