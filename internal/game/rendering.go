package game

import (
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/mattn/go-colorable"
	"github.com/mattn/go-isatty"
	"github.com/mitchelldurbincs/pentago/internal/config"
	"github.com/mitchelldurbincs/pentago/internal/game/core"
)

// ANSI color codes
const (
	ColorReset = "\033[0m"
	ColorRed   = "\033[31m"
	ColorBlue  = "\033[34m"
	ColorGray  = "\033[90m"
)

var tokenColors = map[core.Cell]string{
	core.Empty:  ColorGray,
	core.TokenA: ColorRed,
	core.TokenB: ColorBlue,
}

const frameLine = "+-------+-------+\n"

// renderGrid draws 36 labels in row-major order inside the block frame
func renderGrid(label func(idx int) string) string {
	var sb strings.Builder
	sb.Grow(len(frameLine) * 9)

	sb.WriteString(frameLine)
	for row := 0; row < core.BoardSize; row++ {
		for col := 0; col < core.BoardSize; col++ {
			if col%core.QuadrantSize == 0 {
				sb.WriteString("| ")
			}
			sb.WriteString(label(row*core.BoardSize + col))
			sb.WriteByte(' ')
		}
		sb.WriteString("|\n")
		if row%core.QuadrantSize == core.QuadrantSize-1 {
			sb.WriteString(frameLine)
		}
	}
	return sb.String()
}

// RenderBoard draws b with the 2x2 block frame. With color set, tokens are
// wrapped in ANSI color codes.
func RenderBoard(b *core.Board, color bool) string {
	cells := b.Cells()
	return renderGrid(func(idx int) string {
		symbol := string(cells[idx].Symbol())
		if !color {
			return symbol
		}
		return tokenColors[cells[idx]] + symbol + ColorReset
	})
}

// renderLegendBoard draws the 1..9 position numbers, with block q turned in
// direction d when rotate is set
func renderLegendBoard(rotate bool, q core.Quadrant, d core.Direction) string {
	var labels [core.NumCells]string
	for idx := range labels {
		from := core.FromIndex(idx)
		to := from
		if rotate && from.Quadrant() == q {
			to = from.Rotated(d)
		}
		labels[to.Index()] = strconv.Itoa(from.Position())
	}
	return renderGrid(func(idx int) string { return labels[idx] })
}

// Instructions explains the rules and move notation
const Instructions = `
    Two players alternate turns, placing marbles on a 6x6 grid, each
    trying to be the first to get 5 of their own colored marbles
    (black or white) in a row, either horizontally, vertically, or
    diagonally.  After placing a marble on the grid, the player rotates
    one of 4 subgrids clockwise (Right) or counter-clockwise (Left).

    Moves have the form "b/n gD", where b and n describe the subgrid and
    position where the marble will be placed, g specifies the subgrid to
    rotate, and D is either L or R, for rotating the subgrid left or right.
    Numbering follows the scheme shown below (between 1 and 9), where
    subgrids 1 and 2 are on the top, and 3 and 4 are on the bottom:
`

// RenderLegend returns the instructions, the position legend and two
// rotation examples
func RenderLegend() string {
	var sb strings.Builder
	sb.WriteString(Instructions)
	sb.WriteString("\n")
	sb.WriteString(renderLegendBoard(false, core.TopLeft, core.Clockwise))
	sb.WriteString("\nRotating subgrid 1 Right:\n")
	sb.WriteString(renderLegendBoard(true, core.TopLeft, core.Clockwise))
	sb.WriteString("\nRotating subgrid 3 Left:\n")
	sb.WriteString(renderLegendBoard(true, core.BottomLeft, core.CounterClockwise))
	return sb.String()
}

// ColorEnabled resolves a game.color mode for output going to f
func ColorEnabled(mode string, f *os.File) bool {
	switch mode {
	case config.ColorAlways:
		return true
	case config.ColorNever:
		return false
	default:
		fd := f.Fd()
		return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
	}
}

// Output wraps f so ANSI colors also render on Windows consoles
func Output(f *os.File) io.Writer {
	return colorable.NewColorable(f)
}
