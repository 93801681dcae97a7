package search

import (
	"testing"

	"github.com/mitchelldurbincs/pentago/internal/game/core"
	"github.com/mitchelldurbincs/pentago/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newEvaluator(t *testing.T) *LineEvaluator {
	t.Helper()
	e, err := NewLineEvaluator(DefaultWeights())
	require.NoError(t, err)
	return e
}

func TestLineEvaluator_EmptyBoardIsNeutral(t *testing.T) {
	e := newEvaluator(t)
	assert.Equal(t, 0, e.Score(core.NewBoard(), core.TokenA))
	assert.Equal(t, 0, e.Score(core.NewBoard(), core.Empty))
}

func TestLineEvaluator_TerminalScores(t *testing.T) {
	e := newEvaluator(t)

	win := testutil.Board(t, "bbbbb.", "w.w.w.", "..w...", "...w..", "......", "......")
	assert.Equal(t, WinScore, e.Score(win, core.TokenA))
	assert.Equal(t, -WinScore, e.Score(win, core.TokenB))

	double := testutil.Board(t, "bbbbb.", "wwwww.", "......", "......", "......", "......")
	assert.Equal(t, 0, e.Score(double, core.TokenA), "double win is adjudicated as a draw")

	draw := core.MustParseBoard(testutil.DrawBoard)
	assert.Equal(t, 0, e.Score(draw, core.TokenB))
}

func TestLineEvaluator_RewardsLongerRuns(t *testing.T) {
	e := newEvaluator(t)

	two := testutil.Board(t, "......", ".bb...", "......", "......", "......", "......")
	three := testutil.Board(t, "......", ".bbb..", "......", "......", "......", "......")
	four := testutil.Board(t, "......", ".bbbb.", "......", "......", "......", "......")

	s2 := e.Score(two, core.TokenA)
	s3 := e.Score(three, core.TokenA)
	s4 := e.Score(four, core.TokenA)
	assert.Greater(t, s2, 0)
	assert.Greater(t, s3, s2)
	assert.Greater(t, s4, s3)
}

func TestLineEvaluator_BlockedWindowsDoNotCount(t *testing.T) {
	e, err := NewLineEvaluator(Weights{Two: 10, Three: 100, Four: 1000})
	require.NoError(t, err)

	open := testutil.Board(t, "bbb...", "......", "......", "......", "......", "......")
	blocked := testutil.Board(t, "bbbw..", "......", "......", "......", "......", "......")
	assert.Greater(t, e.Score(open, core.TokenA), e.Score(blocked, core.TokenA))
}

func TestLineEvaluator_Antisymmetric(t *testing.T) {
	e := newEvaluator(t)
	rng := testutil.NewTestRNG(5)
	for i := 0; i < 30; i++ {
		b, _ := testutil.RandomPosition(t, rng, 12+rng.Intn(20))
		a := e.Score(b, core.TokenA)
		assert.Equal(t, -a, e.Score(b, core.TokenB))
		assert.Less(t, a, WinScore)
		assert.Greater(t, a, -WinScore)
		assert.LessOrEqual(t, a, MaxHeuristic(DefaultWeights()))
	}
}

func TestWeights_Validate(t *testing.T) {
	tests := []struct {
		name    string
		weights Weights
		valid   bool
	}{
		{"defaults", DefaultWeights(), true},
		{"no centre bonus", Weights{Two: 1, Three: 2, Four: 3}, true},
		{"negative", Weights{Two: -1, Three: 2, Four: 3}, false},
		{"not increasing", Weights{Two: 10, Three: 10, Four: 100}, false},
		{"reaches win score", Weights{Two: 1, Three: 2, Four: WinScore}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.weights.Validate()
			if tt.valid {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidWeights)
			}
		})
	}
}

func TestMaxHeuristic(t *testing.T) {
	assert.Equal(t, 32*1000+16*5, MaxHeuristic(DefaultWeights()))
	assert.Len(t, allWindows, 32)
}
