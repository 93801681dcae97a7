package rules

import (
	"iter"

	"github.com/mitchelldurbincs/pentago/internal/game/core"
)

// MovesPerCell is the number of distinct moves that place on one empty cell:
// four quadrants times two directions.
const MovesPerCell = core.NumQuadrants * 2

// NumActions is the size of the flat action space (every cell, quadrant and direction)
const NumActions = core.NumCells * MovesPerCell

// LegalMoves yields every legal move on b in a fixed order: empty cells in
// row-major order, then quadrants TopLeft, TopRight, BottomLeft, BottomRight,
// then Clockwise before CounterClockwise. Each call starts a fresh walk.
// A full board yields nothing.
func LegalMoves(b *core.Board) iter.Seq[core.Move] {
	return func(yield func(core.Move) bool) {
		if b.IsFull() {
			return
		}
		for idx := 0; idx < core.NumCells; idx++ {
			c := core.FromIndex(idx)
			if b.At(c) != core.Empty {
				continue
			}
			for _, q := range core.AllQuadrants {
				for _, d := range core.AllDirections {
					if !yield(core.Move{Cell: c, Quadrant: q, Direction: d}) {
						return
					}
				}
			}
		}
	}
}

// CollectMoves returns LegalMoves as a slice
func CollectMoves(b *core.Board) []core.Move {
	moves := make([]core.Move, 0, MoveCount(b))
	for m := range LegalMoves(b) {
		moves = append(moves, m)
	}
	return moves
}

// MoveCount returns the number of legal moves without enumerating them
func MoveCount(b *core.Board) int {
	return MovesPerCell * b.EmptyCells()
}

// IsLegal reports whether m can be played on b
func IsLegal(b *core.Board, m core.Move) bool {
	return m.Validate(b) == nil
}

// ActionIndex maps a move to its slot in the flat action space.
// Index = (cell * 4 + quadrant) * 2 + direction, matching LegalMoves order.
func ActionIndex(m core.Move) int {
	return (m.Cell.Index()*core.NumQuadrants+int(m.Quadrant))*2 + int(m.Direction)
}

// MoveFromAction is the inverse of ActionIndex
func MoveFromAction(idx int) core.Move {
	return core.Move{
		Cell:      core.FromIndex(idx / MovesPerCell),
		Quadrant:  core.Quadrant((idx % MovesPerCell) / 2),
		Direction: core.Direction(idx % 2),
	}
}

// LegalActionMask returns a flattened boolean mask over the action space;
// true marks a legal move
func LegalActionMask(b *core.Board) []bool {
	mask := make([]bool, NumActions)
	for m := range LegalMoves(b) {
		mask[ActionIndex(m)] = true
	}
	return mask
}
