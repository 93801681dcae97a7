package core

import (
	"fmt"
	"strings"
)

// Move places a token on Cell and then rotates Quadrant in Direction
type Move struct {
	Cell      Coordinate
	Quadrant  Quadrant
	Direction Direction
}

// NewMove creates a move placing at (row, col) and rotating q in direction d
func NewMove(row, col int, q Quadrant, d Direction) Move {
	return Move{Cell: NewCoordinate(row, col), Quadrant: q, Direction: d}
}

// Validate checks the move is well formed and legal on b
func (m Move) Validate(b *Board) error {
	if !m.Cell.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidCoordinate, m.Cell)
	}
	if !m.Quadrant.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidQuadrant, m.Quadrant)
	}
	if !m.Direction.IsValid() {
		return fmt.Errorf("%w: %d", ErrInvalidDirection, m.Direction)
	}
	if b.At(m.Cell) != Empty {
		return fmt.Errorf("%w: %s", ErrCellOccupied, m.Cell)
	}
	return nil
}

// ApplyMove places token and rotates the chosen quadrant. Nothing is
// mutated when the move is rejected.
func ApplyMove(b *Board, m Move, token Cell) error {
	if !token.IsToken() {
		return WrapMoveError(m, token, ErrInvalidToken)
	}
	if err := m.Validate(b); err != nil {
		return WrapMoveError(m, token, err)
	}
	b.cells[m.Cell.Index()] = token
	b.occupied++
	b.Rotate(m.Quadrant, m.Direction)
	return nil
}

// UndoMove reverses a move previously applied with ApplyMove
func UndoMove(b *Board, m Move) {
	b.Rotate(m.Quadrant, m.Direction.Opposite())
	b.clear(m.Cell)
}

// String formats the move as "b/n gD": placement block and position,
// rotated block and R (clockwise) or L (counter-clockwise)
func (m Move) String() string {
	dir := byte('R')
	if m.Direction == CounterClockwise {
		dir = 'L'
	}
	return fmt.Sprintf("%d/%d %d%c", m.Cell.Quadrant().Block(), m.Cell.Position(), m.Quadrant.Block(), dir)
}

// ParseMove reads the "b/n gD" notation. Surrounding whitespace and a lower case direction are accepted.
func ParseMove(s string) (Move, error) {
	t := strings.TrimSpace(s)
	if len(t) != 6 || t[1] != '/' || t[3] != ' ' {
		return Move{}, fmt.Errorf("%w: %q, expected block/position block-to-rotate direction", ErrMalformedMove, s)
	}

	block, okBlock := digitIn(t[0], 1, NumQuadrants)
	pos, okPos := digitIn(t[2], 1, QuadrantSize*QuadrantSize)
	rot, okRot := digitIn(t[4], 1, NumQuadrants)
	if !okBlock || !okPos || !okRot {
		return Move{}, fmt.Errorf("%w: %q", ErrMalformedMove, s)
	}

	var dir Direction
	switch t[5] {
	case 'R', 'r':
		dir = Clockwise
	case 'L', 'l':
		dir = CounterClockwise
	default:
		return Move{}, fmt.Errorf("%w: %q, direction must be L or R", ErrMalformedMove, s)
	}

	return Move{
		Cell:      Quadrant(block - 1).Cell(pos),
		Quadrant:  Quadrant(rot - 1),
		Direction: dir,
	}, nil
}

func digitIn(ch byte, lo, hi int) (int, bool) {
	if ch < '0' || ch > '9' {
		return 0, false
	}
	d := int(ch - '0')
	return d, d >= lo && d <= hi
}

// Explain describes what the move does for the given token
func (m Move) Explain(token Cell) string {
	side := "Right"
	if m.Direction == CounterClockwise {
		side = "Left"
	}
	return fmt.Sprintf("Placing %c in cell %s, and rotating Block %d %s",
		token.Symbol(), m.Cell, m.Quadrant.Block(), side)
}
