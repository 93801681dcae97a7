package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

func randomBoard(t *testing.T, rng *rand.Rand) *Board {
	t.Helper()
	b := NewBoard()
	for i := 0; i < NumCells; i++ {
		c := FromIndex(i)
		require.NoError(t, b.Set(c.Row, c.Col, Cell(rng.Intn(3))))
	}
	return b
}

func TestNewBoard(t *testing.T) {
	b := NewBoard()
	assert.Equal(t, 0, b.Occupied())
	assert.Equal(t, NumCells, b.EmptyCells())
	assert.False(t, b.IsFull())
	assert.Equal(t, strings.Repeat(".", NumCells), b.String())
}

func TestBoard_GetSetBounds(t *testing.T) {
	b := NewBoard()
	tests := []struct {
		name     string
		row, col int
	}{
		{"negative row", -1, 0},
		{"negative col", 0, -1},
		{"row too large", 6, 0},
		{"col too large", 0, 6},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := b.Get(tt.row, tt.col)
			assert.ErrorIs(t, err, ErrInvalidCoordinate)
			assert.ErrorIs(t, b.Set(tt.row, tt.col, TokenA), ErrInvalidCoordinate)
			assert.ErrorIs(t, b.Place(tt.row, tt.col, TokenA), ErrInvalidCoordinate)
		})
	}
	assert.Equal(t, 0, b.Occupied())
}

func TestBoard_SetTracksOccupied(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.Set(0, 0, TokenA))
	require.NoError(t, b.Set(0, 0, TokenB))
	assert.Equal(t, 1, b.Occupied())

	require.NoError(t, b.Set(5, 5, TokenB))
	assert.Equal(t, 2, b.Occupied())

	require.NoError(t, b.Set(0, 0, Empty))
	assert.Equal(t, 1, b.Occupied())

	cell, err := b.Get(5, 5)
	require.NoError(t, err)
	assert.Equal(t, TokenB, cell)

	assert.ErrorIs(t, b.Set(1, 1, Cell(7)), ErrInvalidToken)
}

func TestBoard_Place(t *testing.T) {
	b := NewBoard()
	require.NoError(t, b.Place(2, 3, TokenA))
	assert.Equal(t, 1, b.Occupied())

	before := b.Clone()
	err := b.Place(2, 3, TokenB)
	assert.ErrorIs(t, err, ErrCellOccupied)
	assert.True(t, b.Equal(before), "rejected placement must not mutate the board")
	assert.Equal(t, 1, b.Occupied())

	assert.ErrorIs(t, b.Place(0, 0, Empty), ErrInvalidToken)
}

func TestBoard_RotateMapping(t *testing.T) {
	tests := []struct {
		name string
		q    Quadrant
		d    Direction
		from Coordinate
		to   Coordinate
	}{
		{"top-left corner cw", TopLeft, Clockwise, NewCoordinate(0, 0), NewCoordinate(0, 2)},
		{"top-left edge cw", TopLeft, Clockwise, NewCoordinate(0, 1), NewCoordinate(1, 2)},
		{"top-left bottom corner cw", TopLeft, Clockwise, NewCoordinate(2, 0), NewCoordinate(0, 0)},
		{"top-left corner ccw", TopLeft, CounterClockwise, NewCoordinate(0, 0), NewCoordinate(2, 0)},
		{"centre is fixed", BottomRight, Clockwise, NewCoordinate(4, 4), NewCoordinate(4, 4)},
		{"top-right cw", TopRight, Clockwise, NewCoordinate(0, 3), NewCoordinate(0, 5)},
		{"bottom-left ccw", BottomLeft, CounterClockwise, NewCoordinate(3, 2), NewCoordinate(3, 0)},
		{"bottom-right cw", BottomRight, Clockwise, NewCoordinate(5, 3), NewCoordinate(3, 3)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBoard()
			require.NoError(t, b.Place(tt.from.Row, tt.from.Col, TokenA))
			b.Rotate(tt.q, tt.d)
			assert.Equal(t, TokenA, b.At(tt.to))
			assert.Equal(t, 1, b.Occupied())
		})
	}
}

func TestBoard_RotateRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for i := 0; i < 50; i++ {
		b := randomBoard(t, rng)
		for _, q := range AllQuadrants {
			for _, d := range AllDirections {
				orig := b.Clone()
				b.Rotate(q, d)
				b.Rotate(q, d.Opposite())
				require.True(t, b.Equal(orig), "rotate %s %s then back changed the board", q, d)
			}
		}
	}
}

func TestBoard_RotateLeavesOtherQuadrantsUntouched(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	b := randomBoard(t, rng)
	for _, q := range AllQuadrants {
		orig := b.Clone()
		b.Rotate(q, Clockwise)
		for i := 0; i < NumCells; i++ {
			c := FromIndex(i)
			if c.Quadrant() != q {
				assert.Equal(t, orig.At(c), b.At(c), "cell %s outside %s moved", c, q)
			}
		}
		assert.Equal(t, orig.Occupied(), b.Occupied())
	}
}

func TestBoard_FourRotationsIsIdentity(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	b := randomBoard(t, rng)
	orig := b.Clone()
	for i := 0; i < 4; i++ {
		b.Rotate(TopRight, CounterClockwise)
	}
	assert.True(t, b.Equal(orig))
}

func TestParseBoard(t *testing.T) {
	t.Run("valid encoding", func(t *testing.T) {
		enc := "w.b.bw.w.b.wb.w..wb....w...bw.bbb.ww"
		b, err := ParseBoard(enc)
		require.NoError(t, err)
		assert.Equal(t, enc, b.String())
		assert.Equal(t, strings.Count(enc, "b")+strings.Count(enc, "w"), b.Occupied())
		assert.Equal(t, TokenB, b.At(NewCoordinate(0, 0)))
		assert.Equal(t, TokenA, b.At(NewCoordinate(0, 2)))
	})

	t.Run("upper case tokens", func(t *testing.T) {
		b, err := ParseBoard("B" + strings.Repeat(".", 34) + "W")
		require.NoError(t, err)
		assert.Equal(t, "b"+strings.Repeat(".", 34)+"w", b.String())
	})

	tests := []struct {
		name string
		in   string
	}{
		{"empty", ""},
		{"too short", strings.Repeat(".", 35)},
		{"too long", strings.Repeat(".", 37)},
		{"unknown symbol", "x" + strings.Repeat(".", 35)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := ParseBoard(tt.in)
			assert.Nil(t, b)
			assert.ErrorIs(t, err, ErrMalformedEncoding)
		})
	}
}

func TestBoard_CloneIsIndependent(t *testing.T) {
	b := NewBoard()
	cp := b.Clone()
	require.NoError(t, cp.Place(1, 1, TokenB))
	assert.Equal(t, 0, b.Occupied())
	assert.False(t, b.Equal(cp))
	assert.Equal(t, 1, cp.Count(TokenB))
}
