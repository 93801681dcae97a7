package core

import (
	"fmt"
	"strings"
)

// Board is the 6x6 Pentago grid. Cells are stored row-major.
type Board struct {
	cells    [NumCells]Cell
	occupied int
}

// NewBoard returns an empty board
func NewBoard() *Board {
	return &Board{}
}

// ParseBoard decodes a 36 character row-major encoding over ".bw"
func ParseBoard(s string) (*Board, error) {
	if len(s) != NumCells {
		return nil, fmt.Errorf("%w: expected %d characters, got %d", ErrMalformedEncoding, NumCells, len(s))
	}

	b := NewBoard()
	for i := 0; i < NumCells; i++ {
		cell, ok := CellFromSymbol(s[i])
		if !ok {
			return nil, fmt.Errorf("%w: unrecognised symbol %q at index %d", ErrMalformedEncoding, s[i], i)
		}
		b.cells[i] = cell
		if cell != Empty {
			b.occupied++
		}
	}
	return b, nil
}

// MustParseBoard is ParseBoard for fixtures; it panics on a bad encoding
func MustParseBoard(s string) *Board {
	b, err := ParseBoard(s)
	if err != nil {
		panic(err)
	}
	return b
}

// String returns the 36 character encoding of the board
func (b *Board) String() string {
	var sb strings.Builder
	sb.Grow(NumCells)
	for _, c := range b.cells {
		sb.WriteByte(c.Symbol())
	}
	return sb.String()
}

// Get returns the cell at (row, col)
func (b *Board) Get(row, col int) (Cell, error) {
	c := Coordinate{Row: row, Col: col}
	if !c.IsValid() {
		return Empty, fmt.Errorf("%w: %s", ErrInvalidCoordinate, c)
	}
	return b.cells[c.Index()], nil
}

// At returns the cell at a coordinate already known to be valid
func (b *Board) At(c Coordinate) Cell {
	return b.cells[c.Index()]
}

// Set overwrites the cell at (row, col), keeping the occupied count in step
func (b *Board) Set(row, col int, cell Cell) error {
	c := Coordinate{Row: row, Col: col}
	if !c.IsValid() {
		return fmt.Errorf("%w: %s", ErrInvalidCoordinate, c)
	}
	if cell > TokenB {
		return fmt.Errorf("%w: %d", ErrInvalidToken, cell)
	}

	idx := c.Index()
	prev := b.cells[idx]
	if prev == Empty && cell != Empty {
		b.occupied++
	} else if prev != Empty && cell == Empty {
		b.occupied--
	}
	b.cells[idx] = cell
	return nil
}

// Place puts token on an empty cell
func (b *Board) Place(row, col int, token Cell) error {
	if !token.IsToken() {
		return fmt.Errorf("%w: %s", ErrInvalidToken, token)
	}
	current, err := b.Get(row, col)
	if err != nil {
		return err
	}
	if current != Empty {
		return fmt.Errorf("%w: %s holds %s", ErrCellOccupied, NewCoordinate(row, col), current)
	}
	b.cells[NewCoordinate(row, col).Index()] = token
	b.occupied++
	return nil
}

// clear empties a cell without validation; used to undo a placement
func (b *Board) clear(c Coordinate) {
	if b.cells[c.Index()] != Empty {
		b.cells[c.Index()] = Empty
		b.occupied--
	}
}

// Rotate turns one quadrant 90 degrees in place
func (b *Board) Rotate(q Quadrant, d Direction) {
	src := b.cells
	o := q.Origin()
	for r := 0; r < QuadrantSize; r++ {
		for c := 0; c < QuadrantSize; c++ {
			from := NewCoordinate(o.Row+r, o.Col+c)
			b.cells[from.Rotated(d).Index()] = src[from.Index()]
		}
	}
}

// Occupied returns the number of non-empty cells
func (b *Board) Occupied() int {
	return b.occupied
}

// EmptyCells returns the number of empty cells
func (b *Board) EmptyCells() int {
	return NumCells - b.occupied
}

// IsFull reports whether every cell holds a token
func (b *Board) IsFull() bool {
	return b.occupied == NumCells
}

// Count returns how many cells hold the given token
func (b *Board) Count(token Cell) int {
	n := 0
	for _, c := range b.cells {
		if c == token {
			n++
		}
	}
	return n
}

// Cells returns a copy of the cells in row-major order
func (b *Board) Cells() [NumCells]Cell {
	return b.cells
}

// Clone returns an independent copy of the board
func (b *Board) Clone() *Board {
	cp := *b
	return &cp
}

// Equal reports whether both boards hold the same cells
func (b *Board) Equal(other *Board) bool {
	if other == nil {
		return false
	}
	return b.cells == other.cells
}
