package testutil

import (
	"strings"
	"testing"

	"github.com/mitchelldurbincs/pentago/internal/game/core"
	"github.com/mitchelldurbincs/pentago/internal/game/rules"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// DrawBoard is a full board with no five-in-a-row for either token
const DrawBoard = "bwwbbbbbwwbbwwwwbwbwbbwwwbbbwbbwbwww"

// Board builds a board from six row strings over ".bw"
func Board(t *testing.T, rows ...string) *core.Board {
	t.Helper()
	require.Len(t, rows, core.BoardSize, "a board needs six rows")
	b, err := core.ParseBoard(strings.Join(rows, ""))
	require.NoError(t, err)
	return b
}

// RandomPosition plays random legal moves from an empty board, TokenA first,
// until exactly emptyCells remain and nobody has won. It returns the board
// and the token to move next.
func RandomPosition(t *testing.T, rng *rand.Rand, emptyCells int) (*core.Board, core.Cell) {
	t.Helper()
	require.True(t, emptyCells > 0 && emptyCells <= core.NumCells)

	for attempt := 0; attempt < 1000; attempt++ {
		b := core.NewBoard()
		token := core.TokenA
		ok := true
		for b.EmptyCells() > emptyCells {
			moves := rules.CollectMoves(b)
			m := moves[rng.Intn(len(moves))]
			require.NoError(t, core.ApplyMove(b, m, token))
			if rules.EvaluateResult(b) != rules.InProgress {
				ok = false
				break
			}
			token = token.Opponent()
		}
		if ok {
			return b, token
		}
	}
	t.Fatalf("no undecided position with %d empty cells found", emptyCells)
	return nil, core.Empty
}
