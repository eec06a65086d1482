// internal/game/state.go
package game

import (
	"github.com/jason-s-yu/reversi/internal/board"
)

// PlayerState is the copy of a player handed to the presentation shell.
type PlayerState struct {
	Name  string `json:"name"`
	Color string `json:"color,omitempty"`
	Cells int    `json:"cells"`
}

// State is a read-only snapshot of the game. Nothing in it aliases the live game.
type State struct {
	Local       PlayerState `json:"local"`
	Remote      PlayerState `json:"remote"`
	LocalTurn   bool        `json:"localTurn"`
	Started     bool        `json:"started"`
	GameOver    bool        `json:"gameOver"`
	RemoteGone  bool        `json:"remoteGone"`
	Board       string      `json:"board"`
	Rows        []string    `json:"-"`
	EmptyCells  int         `json:"emptyCells"`
	LocalColor  board.Cell  `json:"-"`
	RemoteColor board.Cell  `json:"-"`
}

func playerState(p Player, b *board.Board) PlayerState {
	ps := PlayerState{Name: p.Name}
	if p.Color.IsColor() {
		ps.Color = string(p.Color.Char())
		ps.Cells = b.Count(p.Color)
	}
	return ps
}

// State builds a snapshot of the current game.
func (g *Game) State() State {
	b := g.board
	return State{
		Local:       playerState(g.local, &b),
		Remote:      playerState(g.remote, &b),
		LocalTurn:   g.turn == Local,
		Started:     g.started,
		GameOver:    g.over,
		RemoteGone:  g.remoteGone,
		Board:       b.Snapshot(),
		Rows:        b.Rows(),
		EmptyCells:  b.Count(board.Empty),
		LocalColor:  g.local.Color,
		RemoteColor: g.remote.Color,
	}
}
