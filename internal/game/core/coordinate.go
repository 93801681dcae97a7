package core

import "fmt"

// Board geometry
const (
	BoardSize    = 6
	QuadrantSize = 3
	NumCells     = BoardSize * BoardSize
	NumQuadrants = 4
)

// Coordinate is a (row, column) position on the board
type Coordinate struct {
	Row, Col int
}

// NewCoordinate creates a new coordinate with the given row and column
func NewCoordinate(row, col int) Coordinate {
	return Coordinate{Row: row, Col: col}
}

// FromIndex creates a coordinate from a row-major cell index
func FromIndex(idx int) Coordinate {
	return Coordinate{Row: idx / BoardSize, Col: idx % BoardSize}
}

// IsValid checks if the coordinate lies on the 6x6 board
func (c Coordinate) IsValid() bool {
	return c.Row >= 0 && c.Row < BoardSize && c.Col >= 0 && c.Col < BoardSize
}

// Index converts the coordinate to a row-major cell index
func (c Coordinate) Index() int {
	return c.Row*BoardSize + c.Col
}

// Quadrant returns the quadrant the coordinate falls in
func (c Coordinate) Quadrant() Quadrant {
	return Quadrant((c.Row/QuadrantSize)*2 + c.Col/QuadrantSize)
}

// Position returns the 1..9 position of the cell within its quadrant
func (c Coordinate) Position() int {
	return (c.Row%QuadrantSize)*QuadrantSize + c.Col%QuadrantSize + 1
}

// IsBorder reports whether the cell is on the outer ring of the board
func (c Coordinate) IsBorder() bool {
	return c.Row == 0 || c.Col == 0 || c.Row == BoardSize-1 || c.Col == BoardSize-1
}

// Rotated returns where c lands when its quadrant turns in direction d.
// Clockwise maps local (r, c) to (c, 2-r); CounterClockwise is the inverse.
func (c Coordinate) Rotated(d Direction) Coordinate {
	o := c.Quadrant().Origin()
	r, col := c.Row-o.Row, c.Col-o.Col
	last := QuadrantSize - 1
	if d == Clockwise {
		return Coordinate{Row: o.Row + col, Col: o.Col + last - r}
	}
	return Coordinate{Row: o.Row + last - col, Col: o.Col + r}
}

func (c Coordinate) String() string {
	return fmt.Sprintf("[%d][%d]", c.Row, c.Col)
}

// Quadrant names one of the four fixed 3x3 regions
type Quadrant uint8

const (
	TopLeft Quadrant = iota
	TopRight
	BottomLeft
	BottomRight
)

// AllQuadrants lists the quadrants in enumeration order
var AllQuadrants = [NumQuadrants]Quadrant{TopLeft, TopRight, BottomLeft, BottomRight}

// IsValid checks the quadrant is one of the four named regions
func (q Quadrant) IsValid() bool {
	return q <= BottomRight
}

// Origin returns the board coordinate of the quadrant's top-left cell
func (q Quadrant) Origin() Coordinate {
	return Coordinate{
		Row: int(q/2) * QuadrantSize,
		Col: int(q%2) * QuadrantSize,
	}
}

// Block returns the 1-based block number used in move notation
func (q Quadrant) Block() int {
	return int(q) + 1
}

// Cell maps a 1..9 position within the quadrant to a board coordinate
func (q Quadrant) Cell(position int) Coordinate {
	o := q.Origin()
	return Coordinate{
		Row: o.Row + (position-1)/QuadrantSize,
		Col: o.Col + (position-1)%QuadrantSize,
	}
}

func (q Quadrant) String() string {
	switch q {
	case TopLeft:
		return "TopLeft"
	case TopRight:
		return "TopRight"
	case BottomLeft:
		return "BottomLeft"
	case BottomRight:
		return "BottomRight"
	default:
		return fmt.Sprintf("Quadrant(%d)", uint8(q))
	}
}

// Direction is the sense of a quadrant rotation
type Direction uint8

const (
	Clockwise Direction = iota
	CounterClockwise
)

// AllDirections lists the directions in enumeration order
var AllDirections = [2]Direction{Clockwise, CounterClockwise}

// Opposite returns the direction that undoes this one
func (d Direction) Opposite() Direction {
	if d == Clockwise {
		return CounterClockwise
	}
	return Clockwise
}

// IsValid checks the direction is Clockwise or CounterClockwise
func (d Direction) IsValid() bool {
	return d <= CounterClockwise
}

func (d Direction) String() string {
	switch d {
	case Clockwise:
		return "Clockwise"
	case CounterClockwise:
		return "CounterClockwise"
	default:
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
}
