// internal/game/game.go
package game

import (
	"errors"
	"fmt"

	"github.com/jason-s-yu/reversi/internal/board"
)

// MaxNameLength is the longest player name the server accepts.
const MaxNameLength = 20

var (
	ErrEmptyName         = errors.New("player name is empty")
	ErrNameTooLong       = fmt.Errorf("player name exceeds %d characters", MaxNameLength)
	ErrColorConflict     = errors.New("local and remote colors must differ")
	ErrPlayersUnassigned = errors.New("both players need a name and color first")
)

// Side identifies one of the two seats from this client's point of view.
type Side int

const (
	Local Side = iota
	Remote
)

func (s Side) String() string {
	if s == Local {
		return "local"
	}
	return "remote"
}

// Player is one participant. A zero Color means the server has not assigned one yet.
type Player struct {
	Name  string
	Color board.Cell
}

func (p Player) ready() bool {
	return p.Name != "" && p.Color.IsColor()
}

// Game holds the player identities, the turn flag and the board for one
// connection. It is not safe for concurrent use: the session's receive loop is
// the only writer, other goroutines read copies via State.
type Game struct {
	local  Player
	remote Player

	turn       Side
	started    bool
	over       bool
	remoteGone bool

	board board.Board
}

// New returns a game with no players assigned.
func New() *Game {
	return &Game{}
}

// AssignLocalName records the name the server accepted at login.
func (g *Game) AssignLocalName(name string) error {
	if name == "" {
		return ErrEmptyName
	}
	if len(name) > MaxNameLength {
		return fmt.Errorf("%w: %q", ErrNameTooLong, name)
	}
	g.local.Name = name
	return nil
}

// AssignLocalColor records the color the server assigned to this client.
func (g *Game) AssignLocalColor(c board.Cell) error {
	if !c.IsColor() {
		return fmt.Errorf("%w: local %s", board.ErrInvalidColor, c)
	}
	if g.remote.Color.IsColor() && g.remote.Color == c {
		// a new matchmaking round; the previous opponent no longer applies
		g.remote = Player{}
	}
	g.local.Color = c
	return nil
}

// AssignRemote records the opponent. If the local color is still unknown (for
// example right after a reconnect) it becomes the opposite of the remote color.
func (g *Game) AssignRemote(name string, c board.Cell) error {
	if name == "" {
		return ErrEmptyName
	}
	if !c.IsColor() {
		return fmt.Errorf("%w: remote %s", board.ErrInvalidColor, c)
	}
	switch {
	case !g.local.Color.IsColor():
		g.local.Color = c.Opponent()
	case g.local.Color == c:
		return fmt.Errorf("%w: both are %s", ErrColorConflict, c)
	}
	g.remote = Player{Name: name, Color: c}
	g.remoteGone = false
	return nil
}

func (g *Game) requireReady() error {
	if !g.local.ready() || !g.remote.ready() {
		return ErrPlayersUnassigned
	}
	return nil
}

// StartNewGame resets the board to the opening position and hands the first
// turn to whoever moves first.
func (g *Game) StartNewGame(localIsFirst bool) error {
	if err := g.requireReady(); err != nil {
		return err
	}
	if err := g.board.Reset(localIsFirst, g.local.Color, g.remote.Color); err != nil {
		return err
	}
	g.turn = Remote
	if localIsFirst {
		g.turn = Local
	}
	g.started = true
	g.over = false
	g.remoteGone = false
	return nil
}

// SetTurn sets whose turn it is.
func (g *Game) SetTurn(isLocal bool) error {
	if err := g.requireReady(); err != nil {
		return err
	}
	g.turn = Remote
	if isLocal {
		g.turn = Local
	}
	return nil
}

// ApplyLocalMove applies a move the server confirmed for this client and
// passes the turn to the opponent.
func (g *Game) ApplyLocalMove(x, y int) (int, error) {
	return g.applyMove(Local, x, y)
}

// ApplyRemoteMove applies the opponent's move and passes the turn back.
func (g *Game) ApplyRemoteMove(x, y int) (int, error) {
	return g.applyMove(Remote, x, y)
}

func (g *Game) applyMove(side Side, x, y int) (int, error) {
	if err := g.requireReady(); err != nil {
		return 0, err
	}
	color := g.local.Color
	next := Remote
	if side == Remote {
		color = g.remote.Color
		next = Local
	}
	flipped, err := g.board.ApplyMove(x, y, color)
	if err != nil {
		return 0, err
	}
	g.turn = next
	return flipped, nil
}

// Restore replaces the board with a server snapshot and sets the turn from the
// name of the player who is to move.
func (g *Game) Restore(snapshot, turnPlayer string) error {
	if err := g.requireReady(); err != nil {
		return err
	}
	if err := g.board.ApplySnapshot(snapshot); err != nil {
		return err
	}
	g.turn = Remote
	if turnPlayer == g.local.Name {
		g.turn = Local
	}
	g.started = true
	g.over = false
	g.remoteGone = false
	return nil
}

// MarkRemoteGone records that the opponent dropped; no one can move until they
// return or the server ends the game.
func (g *Game) MarkRemoteGone() error {
	if err := g.requireReady(); err != nil {
		return err
	}
	g.remoteGone = true
	g.turn = Remote
	return nil
}

// EndGame marks the game as finished.
func (g *Game) EndGame() error {
	if err := g.requireReady(); err != nil {
		return err
	}
	g.over = true
	return nil
}

// Local returns the local player.
func (g *Game) Local() Player { return g.local }

// Remote returns the opponent.
func (g *Game) Remote() Player { return g.remote }

// Turn returns whose turn it is.
func (g *Game) Turn() Side { return g.turn }

// Over reports whether the current game has ended.
func (g *Game) Over() bool { return g.over }

// Board returns a copy of the board.
func (g *Game) Board() board.Board { return g.board }
