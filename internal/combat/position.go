package combat

import "fmt"

// BoardSize is the fixed edge length of the battle grid.
const BoardSize = 8

// Position is a 0-based (row, col) cell on the 8x8 board.
type Position struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// InBounds reports whether the position lies on the board.
func (p Position) InBounds() bool {
	return p.Row >= 0 && p.Row < BoardSize && p.Col >= 0 && p.Col < BoardSize
}

// Manhattan returns the Manhattan distance to other. This is the range
// metric for basic attacks and skills.
func (p Position) Manhattan(other Position) int {
	return abs(p.Row-other.Row) + abs(p.Col-other.Col)
}

// Chebyshev returns the Chebyshev distance to other. The enemy AI uses it
// as its approach heuristic.
func (p Position) Chebyshev(other Position) int {
	dr := abs(p.Row - other.Row)
	dc := abs(p.Col - other.Col)
	if dr > dc {
		return dr
	}
	return dc
}

// Less orders positions lexicographically (row, then col). Used for
// deterministic tie-breaking.
func (p Position) Less(other Position) bool {
	if p.Row != other.Row {
		return p.Row < other.Row
	}
	return p.Col < other.Col
}

func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.Row, p.Col)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
