package core

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoordinate_IndexRoundTrip(t *testing.T) {
	for idx := 0; idx < NumCells; idx++ {
		c := FromIndex(idx)
		assert.True(t, c.IsValid())
		assert.Equal(t, idx, c.Index())
	}
	assert.Equal(t, NewCoordinate(2, 5), FromIndex(17))
}

func TestCoordinate_IsValid(t *testing.T) {
	tests := []struct {
		name  string
		coord Coordinate
		valid bool
	}{
		{"origin", NewCoordinate(0, 0), true},
		{"far corner", NewCoordinate(5, 5), true},
		{"negative", NewCoordinate(-1, 2), false},
		{"row overflow", NewCoordinate(6, 2), false},
		{"col overflow", NewCoordinate(2, 6), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.valid, tt.coord.IsValid())
		})
	}
}

func TestCoordinate_QuadrantAndPosition(t *testing.T) {
	tests := []struct {
		coord    Coordinate
		quadrant Quadrant
		position int
	}{
		{NewCoordinate(0, 0), TopLeft, 1},
		{NewCoordinate(1, 1), TopLeft, 5},
		{NewCoordinate(2, 5), TopRight, 9},
		{NewCoordinate(3, 0), BottomLeft, 1},
		{NewCoordinate(5, 4), BottomRight, 8},
	}

	for _, tt := range tests {
		t.Run(tt.coord.String(), func(t *testing.T) {
			assert.Equal(t, tt.quadrant, tt.coord.Quadrant())
			assert.Equal(t, tt.position, tt.coord.Position())
			assert.Equal(t, tt.coord, tt.quadrant.Cell(tt.position))
		})
	}
}

func TestCoordinate_IsBorder(t *testing.T) {
	border := 0
	for idx := 0; idx < NumCells; idx++ {
		if FromIndex(idx).IsBorder() {
			border++
		}
	}
	assert.Equal(t, 20, border)
	assert.False(t, NewCoordinate(2, 3).IsBorder())
}

func TestQuadrant_Origin(t *testing.T) {
	assert.Equal(t, NewCoordinate(0, 0), TopLeft.Origin())
	assert.Equal(t, NewCoordinate(0, 3), TopRight.Origin())
	assert.Equal(t, NewCoordinate(3, 0), BottomLeft.Origin())
	assert.Equal(t, NewCoordinate(3, 3), BottomRight.Origin())
	assert.False(t, Quadrant(4).IsValid())
	assert.Equal(t, "Quadrant(4)", Quadrant(4).String())
}

func TestDirection_Opposite(t *testing.T) {
	assert.Equal(t, CounterClockwise, Clockwise.Opposite())
	assert.Equal(t, Clockwise, CounterClockwise.Opposite())
	assert.Equal(t, "Clockwise", Clockwise.String())
}

func TestCell(t *testing.T) {
	assert.Equal(t, TokenB, TokenA.Opponent())
	assert.Equal(t, TokenA, TokenB.Opponent())
	assert.Equal(t, Empty, Empty.Opponent())
	assert.False(t, Empty.IsToken())

	tests := []struct {
		in   string
		want Cell
	}{
		{"b", TokenA},
		{"Black", TokenA},
		{" W ", TokenB},
		{"white", TokenB},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			var c Cell
			assert.NoError(t, c.UnmarshalText([]byte(tt.in)))
			assert.Equal(t, tt.want, c)
		})
	}

	_, err := ParseToken("red")
	assert.ErrorIs(t, err, ErrInvalidToken)

	text, err := TokenB.MarshalText()
	assert.NoError(t, err)
	assert.Equal(t, "w", string(text))
}

func TestCoordinate_Rotated(t *testing.T) {
	// Top-left corner of the bottom-right block goes to its top-right corner
	assert.Equal(t, NewCoordinate(3, 5), NewCoordinate(3, 3).Rotated(Clockwise))
	assert.Equal(t, NewCoordinate(5, 3), NewCoordinate(3, 3).Rotated(CounterClockwise))
	assert.Equal(t, NewCoordinate(1, 1), NewCoordinate(1, 1).Rotated(Clockwise), "centre is fixed")

	for idx := 0; idx < NumCells; idx++ {
		c := FromIndex(idx)
		for _, d := range AllDirections {
			r := c.Rotated(d)
			assert.Equal(t, c.Quadrant(), r.Quadrant())
			assert.Equal(t, c, r.Rotated(d.Opposite()))
		}
	}
}
