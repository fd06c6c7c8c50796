package combat

import (
	"github.com/skirmishlabs/combat-api/internal/errors"
)

// Board tracks cell occupancy: at most one character per cell, and every
// placed character's Position must match exactly one board cell.
type Board struct {
	cells [BoardSize][BoardSize]string
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// At returns the ID of the character occupying p, or "" if the cell is
// empty or out of bounds.
func (b *Board) At(p Position) string {
	if !p.InBounds() {
		return ""
	}
	return b.cells[p.Row][p.Col]
}

// Occupied reports whether p holds a character.
func (b *Board) Occupied(p Position) bool {
	return b.At(p) != ""
}

// Place puts a character on an empty cell and records the position on the
// character.
func (b *Board) Place(c *Character, p Position) error {
	if !p.InBounds() {
		return errors.OutOfRangef("position %s is off the board", p)
	}
	if occupant := b.cells[p.Row][p.Col]; occupant != "" {
		return errors.AlreadyExists("cell " + p.String() + " is occupied by " + occupant)
	}
	b.cells[p.Row][p.Col] = c.ID
	pos := p
	c.Position = &pos
	return nil
}

// Move relocates a character to an empty cell, keeping the board and the
// character's recorded position consistent. A mismatch between the two is
// an invariant violation and fails the operation without mutating state.
func (b *Board) Move(c *Character, to Position) error {
	if c.Position == nil {
		return errors.Internal("character " + c.ID + " has no position")
	}
	from := *c.Position
	if b.cells[from.Row][from.Col] != c.ID {
		return errors.Internalf("board desync: cell %s does not hold %s", from, c.ID)
	}
	if !to.InBounds() {
		return errors.OutOfRangef("position %s is off the board", to)
	}
	if occupant := b.cells[to.Row][to.Col]; occupant != "" {
		return errors.AlreadyExists("cell " + to.String() + " is occupied by " + occupant)
	}

	b.cells[from.Row][from.Col] = ""
	b.cells[to.Row][to.Col] = c.ID
	pos := to
	c.Position = &pos
	return nil
}

// Remove clears a character's cell. The character keeps its last position
// for post-battle reporting.
func (b *Board) Remove(c *Character) {
	if c.Position == nil {
		return
	}
	if b.cells[c.Position.Row][c.Position.Col] == c.ID {
		b.cells[c.Position.Row][c.Position.Col] = ""
	}
}
