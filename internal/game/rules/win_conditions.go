package rules

import (
	"fmt"

	"github.com/mitchelldurbincs/pentago/internal/game/core"
	"github.com/rs/zerolog"
)

// WinLength is the run length that wins the game
const WinLength = 5

// GameResult is the state of a board as judged by the win detector
type GameResult int

const (
	InProgress GameResult = iota
	WinA
	WinB
	Draw
	// DoubleWin means both tokens hold a five-in-a-row at once. It is a
	// rules ambiguity, resolved only through Adjudicate.
	DoubleWin
)

// DoubleWinPolicy is how a simultaneous five-in-a-row for both players is
// scored: the game is a draw.
const DoubleWinPolicy = Draw

func (r GameResult) String() string {
	switch r {
	case InProgress:
		return "InProgress"
	case WinA:
		return "WinA"
	case WinB:
		return "WinB"
	case Draw:
		return "Draw"
	case DoubleWin:
		return "DoubleWin"
	default:
		return fmt.Sprintf("GameResult(%d)", int(r))
	}
}

// IsTerminal reports whether the game is over
func (r GameResult) IsTerminal() bool {
	return r != InProgress
}

// Winner returns the winning token, or Empty when nobody (or both) won
func (r GameResult) Winner() core.Cell {
	switch r {
	case WinA:
		return core.TokenA
	case WinB:
		return core.TokenB
	default:
		return core.Empty
	}
}

// Adjudicate resolves DoubleWin with DoubleWinPolicy; other results pass through
func Adjudicate(r GameResult) GameResult {
	if r == DoubleWin {
		return DoubleWinPolicy
	}
	return r
}

// WinFor returns the result that declares token the winner
func WinFor(token core.Cell) GameResult {
	switch token {
	case core.TokenA:
		return WinA
	case core.TokenB:
		return WinB
	default:
		return InProgress
	}
}

// Line is an ordered run of board coordinates long enough to hold a win
type Line []core.Coordinate

var allLines = buildLines()

func buildLines() []Line {
	lines := make([]Line, 0, 18)
	walk := func(row, col, dr, dc int) Line {
		var l Line
		for c := core.NewCoordinate(row, col); c.IsValid(); c = core.NewCoordinate(c.Row+dr, c.Col+dc) {
			l = append(l, c)
		}
		return l
	}

	for i := 0; i < core.BoardSize; i++ {
		lines = append(lines, walk(i, 0, 0, 1))
	}
	for i := 0; i < core.BoardSize; i++ {
		lines = append(lines, walk(0, i, 1, 0))
	}
	// Diagonals of length >= 5: the main one plus one offset either side
	for _, start := range []core.Coordinate{{Row: 0, Col: 0}, {Row: 0, Col: 1}, {Row: 1, Col: 0}} {
		lines = append(lines, walk(start.Row, start.Col, 1, 1))
	}
	last := core.BoardSize - 1
	for _, start := range []core.Coordinate{{Row: 0, Col: last}, {Row: 0, Col: last - 1}, {Row: 1, Col: last}} {
		lines = append(lines, walk(start.Row, start.Col, 1, -1))
	}
	return lines
}

// Lines returns every row, column and diagonal of length >= WinLength.
// The slice is shared and must not be modified.
func Lines() []Line {
	return allLines
}

// longestRuns returns the longest run of each token across all lines
func longestRuns(b *core.Board) (runA, runB int) {
	for _, line := range allLines {
		var current core.Cell
		length := 0
		for _, c := range line {
			cell := b.At(c)
			if cell != core.Empty && cell == current {
				length++
			} else {
				current = cell
				length = 1
			}
			switch {
			case current == core.TokenA && length > runA:
				runA = length
			case current == core.TokenB && length > runB:
				runB = length
			}
		}
	}
	return runA, runB
}

// HasFive reports whether token holds a run of WinLength or more
func HasFive(b *core.Board, token core.Cell) bool {
	runA, runB := longestRuns(b)
	switch token {
	case core.TokenA:
		return runA >= WinLength
	case core.TokenB:
		return runB >= WinLength
	default:
		return false
	}
}

// EvaluateResult scans the whole board. Both tokens winning yields DoubleWin;
// a full board with no winner is a Draw.
func EvaluateResult(b *core.Board) GameResult {
	runA, runB := longestRuns(b)
	winA := runA >= WinLength
	winB := runB >= WinLength

	switch {
	case winA && winB:
		return DoubleWin
	case winA:
		return WinA
	case winB:
		return WinB
	case b.IsFull():
		return Draw
	default:
		return InProgress
	}
}

// WinConditionChecker handles game over detection for a session
type WinConditionChecker struct {
	logger zerolog.Logger
}

// NewWinConditionChecker creates a new win condition checker
func NewWinConditionChecker(logger zerolog.Logger) *WinConditionChecker {
	return &WinConditionChecker{
		logger: logger.With().Str("component", "WinConditionChecker").Logger(),
	}
}

// CheckGameOver evaluates b and returns (isGameOver, result). The result is
// reported as detected; DoubleWin is not adjudicated here.
func (wc *WinConditionChecker) CheckGameOver(b *core.Board) (bool, GameResult) {
	result := EvaluateResult(b)

	switch result {
	case WinA, WinB:
		wc.logger.Info().Str("winner", result.Winner().String()).Msg("Winner determined")
	case DoubleWin:
		wc.logger.Info().
			Str("policy", DoubleWinPolicy.String()).
			Msg("Both players completed five in a row")
	case Draw:
		wc.logger.Info().Msg("Board full with no winner")
	}

	wc.logger.Debug().
		Bool("is_game_over", result.IsTerminal()).
		Int("occupied", b.Occupied()).
		Str("result", result.String()).
		Msg("Game over check complete")

	return result.IsTerminal(), result
}
