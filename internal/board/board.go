// internal/board/board.go
package board

import (
	"errors"
	"fmt"
	"strings"
)

// Size is the edge length of the board.
const Size = 4

// SnapshotLen is the length of a dense board encoding.
const SnapshotLen = Size * Size

var (
	ErrOutOfBounds       = errors.New("coordinates out of bounds")
	ErrInvalidColor      = errors.New("invalid color")
	ErrMalformedSnapshot = errors.New("malformed board snapshot")
)

// directions are the eight compass steps as {dx, dy}.
var directions = [8][2]int{
	{0, 1}, {1, 0}, {0, -1}, {-1, 0},
	{1, 1}, {1, -1}, {-1, 1}, {-1, -1},
}

// Board is the grid of cells, indexed [y][x] (row-major).
// It holds no lock; the session's receive loop is its only writer.
type Board [Size][Size]Cell

func inBounds(x, y int) bool {
	return x >= 0 && x < Size && y >= 0 && y < Size
}

// At returns the cell at column x, row y.
func (b *Board) At(x, y int) (Cell, error) {
	if !inBounds(x, y) {
		return Empty, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	return b[y][x], nil
}

// Clear sets every cell to Empty.
func (b *Board) Clear() {
	*b = Board{}
}

// Reset clears the board and places the opening pattern. The first mover owns
// the main diagonal of the centre square, the second mover the anti-diagonal.
func (b *Board) Reset(localIsFirst bool, local, remote Cell) error {
	if !local.IsColor() || !remote.IsColor() || local == remote {
		return fmt.Errorf("%w: local=%s remote=%s", ErrInvalidColor, local, remote)
	}
	first, second := local, remote
	if !localIsFirst {
		first, second = remote, local
	}

	b.Clear()
	mid := Size / 2
	b[mid-1][mid-1] = first
	b[mid][mid] = first
	b[mid-1][mid] = second
	b[mid][mid-1] = second
	return nil
}

// ApplyMove places c at (x, y) and flips every bounded run of opponent cells.
// It does not check that the move is legal; the server has already accepted it.
// Returns the number of flipped cells.
func (b *Board) ApplyMove(x, y int, c Cell) (int, error) {
	if !inBounds(x, y) {
		return 0, fmt.Errorf("%w: (%d,%d)", ErrOutOfBounds, x, y)
	}
	if !c.IsColor() {
		return 0, fmt.Errorf("%w: cannot move with %s", ErrInvalidColor, c)
	}
	opp := c.Opponent()

	b[y][x] = c

	// collect first so no direction sees another direction's flips
	var toFlip [][2]int
	for _, d := range directions {
		var run [][2]int
		cx, cy := x+d[0], y+d[1]
		for inBounds(cx, cy) && b[cy][cx] == opp {
			run = append(run, [2]int{cx, cy})
			cx += d[0]
			cy += d[1]
		}
		if len(run) > 0 && inBounds(cx, cy) && b[cy][cx] == c {
			toFlip = append(toFlip, run...)
		}
	}
	for _, p := range toFlip {
		b[p[1]][p[0]] = c
	}
	return len(toFlip), nil
}

// ApplySnapshot overwrites the board from a dense row-major encoding.
// The board is left untouched when the snapshot is rejected.
func (b *Board) ApplySnapshot(s string) error {
	if len(s) != SnapshotLen {
		return fmt.Errorf("%w: length %d, want %d", ErrMalformedSnapshot, len(s), SnapshotLen)
	}
	var next Board
	for i := 0; i < SnapshotLen; i++ {
		c, err := ParseCell(s[i])
		if err != nil {
			return fmt.Errorf("%w: index %d: %v", ErrMalformedSnapshot, i, err)
		}
		next[i/Size][i%Size] = c
	}
	*b = next
	return nil
}

// Snapshot encodes the board row-major, one character per cell.
func (b *Board) Snapshot() string {
	var sb strings.Builder
	sb.Grow(SnapshotLen)
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			sb.WriteByte(b[y][x].Char())
		}
	}
	return sb.String()
}

// Count returns how many cells hold c.
func (b *Board) Count(c Cell) int {
	n := 0
	for y := 0; y < Size; y++ {
		for x := 0; x < Size; x++ {
			if b[y][x] == c {
				n++
			}
		}
	}
	return n
}

// Rows renders each row as wire characters, for display.
func (b *Board) Rows() []string {
	s := b.Snapshot()
	rows := make([]string, Size)
	for y := 0; y < Size; y++ {
		rows[y] = s[y*Size : (y+1)*Size]
	}
	return rows
}
