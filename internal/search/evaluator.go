package search

import (
	"errors"
	"fmt"

	"github.com/mitchelldurbincs/pentago/internal/game/core"
	"github.com/mitchelldurbincs/pentago/internal/game/rules"
)

// WinScore is the payoff of a won position. Heuristic scores never reach it.
const WinScore = 1_000_000

var ErrInvalidWeights = errors.New("invalid evaluator weights")

// Evaluator scores a board from the perspective of one token
type Evaluator interface {
	Score(b *core.Board, perspective core.Cell) int
}

// Weights is the heuristic value of an unblocked window holding 2, 3 or 4
// tokens of one colour, plus a bonus per token off the border ring.
type Weights struct {
	Two    int `mapstructure:"two"`
	Three  int `mapstructure:"three"`
	Four   int `mapstructure:"four"`
	Center int `mapstructure:"center"`
}

// DefaultWeights returns the stock weight table
func DefaultWeights() Weights {
	return Weights{Two: 10, Three: 100, Four: 1000, Center: 5}
}

type window [rules.WinLength]core.Coordinate

var allWindows = buildWindows()

func buildWindows() []window {
	var ws []window
	for _, line := range rules.Lines() {
		for start := 0; start+rules.WinLength <= len(line); start++ {
			var w window
			copy(w[:], line[start:start+rules.WinLength])
			ws = append(ws, w)
		}
	}
	return ws
}

// innerCells is the number of cells off the border ring
const innerCells = (core.BoardSize - 2) * (core.BoardSize - 2)

// MaxHeuristic is the largest absolute score the heuristic can produce
func MaxHeuristic(w Weights) int {
	return len(allWindows)*w.Four + innerCells*w.Center
}

// Validate checks the weights increase with run length and stay below WinScore
func (w Weights) Validate() error {
	if w.Two < 0 || w.Center < 0 {
		return fmt.Errorf("%w: weights must be non-negative", ErrInvalidWeights)
	}
	if !(w.Two < w.Three && w.Three < w.Four) {
		return fmt.Errorf("%w: need two < three < four, got %d, %d, %d", ErrInvalidWeights, w.Two, w.Three, w.Four)
	}
	if MaxHeuristic(w) >= WinScore {
		return fmt.Errorf("%w: heuristic range %d reaches the win score", ErrInvalidWeights, MaxHeuristic(w))
	}
	return nil
}

// LineEvaluator scores every five-cell window of every winning line. A window
// holding k of one colour and none of the other counts weight(k) for that colour.
type LineEvaluator struct {
	weights Weights
	byCount [rules.WinLength]int
}

// NewLineEvaluator creates an evaluator with the given weight table
func NewLineEvaluator(w Weights) (*LineEvaluator, error) {
	if err := w.Validate(); err != nil {
		return nil, err
	}
	return &LineEvaluator{
		weights: w,
		byCount: [rules.WinLength]int{0, 0, w.Two, w.Three, w.Four},
	}, nil
}

// Weights returns the evaluator's weight table
func (e *LineEvaluator) Weights() Weights {
	return e.weights
}

// Score returns WinScore for a board perspective has won, -WinScore for a
// lost one, 0 for a draw and the heuristic otherwise
func (e *LineEvaluator) Score(b *core.Board, perspective core.Cell) int {
	if !perspective.IsToken() {
		return 0
	}
	switch rules.Adjudicate(rules.EvaluateResult(b)) {
	case rules.WinFor(perspective):
		return WinScore
	case rules.WinFor(perspective.Opponent()):
		return -WinScore
	case rules.Draw:
		return 0
	}
	return e.Heuristic(b, perspective)
}

// Heuristic is the positional score without the terminal check
func (e *LineEvaluator) Heuristic(b *core.Board, perspective core.Cell) int {
	opponent := perspective.Opponent()
	score := 0

	for i := range allWindows {
		own, opp := 0, 0
		for _, c := range allWindows[i] {
			switch b.At(c) {
			case perspective:
				own++
			case opponent:
				opp++
			}
		}
		switch {
		case opp == 0 && own < rules.WinLength:
			score += e.byCount[own]
		case own == 0 && opp < rules.WinLength:
			score -= e.byCount[opp]
		}
	}

	if e.weights.Center != 0 {
		for r := 1; r < core.BoardSize-1; r++ {
			for c := 1; c < core.BoardSize-1; c++ {
				switch b.At(core.NewCoordinate(r, c)) {
				case perspective:
					score += e.weights.Center
				case opponent:
					score -= e.weights.Center
				}
			}
		}
	}
	return score
}
