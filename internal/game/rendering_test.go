package game

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/mitchelldurbincs/pentago/internal/config"
	"github.com/mitchelldurbincs/pentago/internal/game/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderBoard_Empty(t *testing.T) {
	row := "| . . . | . . . |\n"
	want := frameLine + strings.Repeat(row, 3) + frameLine + strings.Repeat(row, 3) + frameLine

	assert.Equal(t, want, RenderBoard(core.NewBoard(), false))
}

func TestRenderBoard_Tokens(t *testing.T) {
	b := newWinInOneBoard(t)

	plain := RenderBoard(b, false)
	lines := strings.Split(plain, "\n")
	assert.Equal(t, "| b b b | b . . |", lines[1])
	assert.Equal(t, "| w w . | . . . |", lines[2])

	colored := RenderBoard(b, true)
	assert.Contains(t, colored, ColorRed+"b"+ColorReset)
	assert.Contains(t, colored, ColorBlue+"w"+ColorReset)
	assert.Contains(t, colored, ColorGray+"."+ColorReset)
}

func TestRenderLegend(t *testing.T) {
	legend := RenderLegend()

	assert.True(t, strings.HasPrefix(legend, Instructions))
	assert.Contains(t, legend, "| 1 2 3 | 1 2 3 |\n| 4 5 6 | 4 5 6 |\n| 7 8 9 | 7 8 9 |")

	right := legend[strings.Index(legend, "Rotating subgrid 1 Right:"):]
	assert.Contains(t, right, "| 7 4 1 | 1 2 3 |\n| 8 5 2 | 4 5 6 |\n| 9 6 3 | 7 8 9 |")

	left := legend[strings.Index(legend, "Rotating subgrid 3 Left:"):]
	assert.Contains(t, left, "| 3 6 9 | 1 2 3 |\n| 2 5 8 | 4 5 6 |\n| 1 4 7 | 7 8 9 |")
}

func TestColorEnabled(t *testing.T) {
	f, err := os.Create(filepath.Join(t.TempDir(), "out.txt"))
	require.NoError(t, err)
	defer f.Close()

	assert.True(t, ColorEnabled(config.ColorAlways, f))
	assert.False(t, ColorEnabled(config.ColorNever, f))
	assert.False(t, ColorEnabled(config.ColorAuto, f), "a regular file is not a terminal")
	assert.NotNil(t, Output(f))
}
