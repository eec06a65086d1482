// internal/board/cell.go
package board

import "fmt"

// Cell is the content of a single board square.
type Cell byte

const (
	Empty  Cell = iota
	ColorA      // 'R' on the wire
	ColorB      // 'B' on the wire
)

// Wire characters used by the server for cells and player colors.
const (
	CharEmpty  byte = ' '
	CharColorA byte = 'R'
	CharColorB byte = 'B'
)

// IsColor reports whether the cell holds a player color.
func (c Cell) IsColor() bool {
	return c == ColorA || c == ColorB
}

// Opponent returns the other player color. Empty has no opponent and maps to Empty.
func (c Cell) Opponent() Cell {
	switch c {
	case ColorA:
		return ColorB
	case ColorB:
		return ColorA
	default:
		return Empty
	}
}

// Char returns the wire character for the cell.
func (c Cell) Char() byte {
	switch c {
	case ColorA:
		return CharColorA
	case ColorB:
		return CharColorB
	default:
		return CharEmpty
	}
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case ColorA:
		return "R"
	case ColorB:
		return "B"
	default:
		return fmt.Sprintf("cell(%d)", byte(c))
	}
}

// ParseCell decodes a wire character into a cell.
func ParseCell(b byte) (Cell, error) {
	switch b {
	case CharEmpty:
		return Empty, nil
	case CharColorA:
		return ColorA, nil
	case CharColorB:
		return ColorB, nil
	default:
		return Empty, fmt.Errorf("%w: unknown cell char %q", ErrInvalidColor, b)
	}
}

// ParseColor decodes a wire character that must name a player color.
func ParseColor(b byte) (Cell, error) {
	c, err := ParseCell(b)
	if err != nil {
		return Empty, err
	}
	if !c.IsColor() {
		return Empty, fmt.Errorf("%w: %q is not a player color", ErrInvalidColor, b)
	}
	return c, nil
}
