package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/mitchelldurbincs/pentago/internal/game/core"
	"github.com/mitchelldurbincs/pentago/internal/search"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resetGlobals(t *testing.T) {
	t.Helper()
	cfg = nil
	v = nil
	t.Cleanup(func() {
		cfg = nil
		v = nil
	})
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pentago.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestInit(t *testing.T) {
	resetGlobals(t)

	path := writeConfig(t, `
log:
  level: debug
  format: json
search:
  depth: 3
  time_budget: 750ms
  workers: 4
  weights:
    two: 1
    three: 20
    four: 300
    center: 0
game:
  board: "w.b.bw.w.b.wb.w..wb....w...bw.bbb.ww"
  color: never
  transcript:
    dir: games
players:
  - name: Ada
    kind: human
    token: black
  - name: Deep
    kind: c
    token: w
`)

	require.NoError(t, Init(path))

	c := Get()
	assert.Equal(t, "debug", c.Log.Level)
	assert.Equal(t, "json", c.Log.Format)
	assert.Equal(t, 3, c.Search.Depth)
	assert.Equal(t, 750*time.Millisecond, c.Search.TimeBudget)
	assert.Equal(t, 4, c.Search.Workers)
	assert.True(t, c.Search.Pruning, "unset keys keep their defaults")
	assert.Equal(t, search.Weights{Two: 1, Three: 20, Four: 300}, c.Search.Weights)
	assert.Equal(t, ColorNever, c.Game.Color)
	assert.Equal(t, "games", c.Game.Transcript.Dir)
	assert.Equal(t, path, ConfigFilePath())

	require.True(t, c.HasPlayers())
	pair := c.PlayerPair()
	assert.Equal(t, core.PlayerConfig{Name: "Ada", Kind: core.Human, Token: core.TokenA}, pair[0])
	assert.Equal(t, core.PlayerConfig{Name: "Deep", Kind: core.Computer, Token: core.TokenB}, pair[1])

	b, err := c.StartingBoard()
	require.NoError(t, err)
	assert.Equal(t, "w.b.bw.w.b.wb.w..wb....w...bw.bbb.ww", b.String())
}

func TestInitWithDefaults(t *testing.T) {
	resetGlobals(t)

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	defer func() { _ = os.Chdir(wd) }()

	require.NoError(t, Init(""))

	c := Get()
	assert.Equal(t, "info", c.Log.Level)
	assert.Equal(t, 2, c.Search.Depth)
	assert.Equal(t, time.Duration(0), c.Search.TimeBudget)
	assert.True(t, c.Search.Pruning)
	assert.Equal(t, 1, c.Search.Workers)
	assert.Equal(t, search.DefaultWeights(), c.Search.Weights)
	assert.Equal(t, "draw", c.Rules.DoubleWinPolicy)
	assert.Equal(t, ColorAuto, c.Game.Color)
	assert.True(t, c.Game.Transcript.Enabled)
	assert.False(t, c.HasPlayers())

	b, err := c.StartingBoard()
	require.NoError(t, err)
	assert.Equal(t, 0, b.Occupied())
}

func TestInitMissingExplicitFile(t *testing.T) {
	resetGlobals(t)
	assert.Error(t, Init("/non/existent/path/pentago.yaml"))
}

func TestEnvironmentVariables(t *testing.T) {
	resetGlobals(t)

	t.Setenv("PENTAGO_SEARCH_DEPTH", "4")
	t.Setenv("PENTAGO_SEARCH_TIME_BUDGET", "2s")
	t.Setenv("PENTAGO_GAME_COLOR", "always")

	require.NoError(t, Init(writeConfig(t, "search:\n  depth: 1\n")))

	c := Get()
	assert.Equal(t, 4, c.Search.Depth, "environment overrides the file")
	assert.Equal(t, 2*time.Second, c.Search.TimeBudget)
	assert.Equal(t, ColorAlways, c.Game.Color)
}

func TestSet(t *testing.T) {
	resetGlobals(t)
	require.NoError(t, Init(writeConfig(t, "")))

	require.NoError(t, Set("search.depth", 5))
	require.NoError(t, Set("game.instructions", true))
	assert.Equal(t, 5, Get().Search.Depth)
	assert.True(t, Get().Game.Instructions)

	assert.Error(t, Set("search.depth", 0))
	assert.Equal(t, 5, Get().Search.Depth, "an invalid update keeps the last good config")
}

func TestSearchOptions(t *testing.T) {
	resetGlobals(t)
	require.NoError(t, Init(writeConfig(t, "search:\n  time_budget: 10ms\n")))

	options, err := Get().SearchOptions()
	require.NoError(t, err)
	assert.Len(t, options, 5)

	require.NoError(t, Set("search.time_budget", "0s"))
	options, err = Get().SearchOptions()
	require.NoError(t, err)
	assert.Len(t, options, 4)
}

func TestSearchOptions_BadWeights(t *testing.T) {
	c := &Config{Search: SearchConfig{
		Depth:   2,
		Workers: 1,
		Pruning: true,
		Weights: search.Weights{Two: 100, Three: 10, Four: 1000},
	}}

	options, err := c.SearchOptions()
	assert.ErrorIs(t, err, search.ErrInvalidWeights)
	assert.Len(t, options, 3, "no evaluator option without valid weights")
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Log:    LogConfig{Level: "info", Format: "console"},
			Search: SearchConfig{Depth: 2, Workers: 1, Weights: search.DefaultWeights()},
			Rules:  RulesConfig{DoubleWinPolicy: "draw"},
			Game:   GameConfig{Color: ColorAuto, Transcript: TranscriptConfig{Enabled: true, Dir: "."}},
		}
	}
	require.NoError(t, Validate(valid()))

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }},
		{"bad log format", func(c *Config) { c.Log.Format = "xml" }},
		{"zero depth", func(c *Config) { c.Search.Depth = 0 }},
		{"negative budget", func(c *Config) { c.Search.TimeBudget = -time.Second }},
		{"no workers", func(c *Config) { c.Search.Workers = 0 }},
		{"bad weights", func(c *Config) { c.Search.Weights.Three = 1 }},
		{"other double win policy", func(c *Config) { c.Rules.DoubleWinPolicy = "first-mover" }},
		{"bad color", func(c *Config) { c.Game.Color = "sometimes" }},
		{"bad board", func(c *Config) { c.Game.Board = "bw" }},
		{"no transcript dir", func(c *Config) { c.Game.Transcript.Dir = "" }},
		{"one player", func(c *Config) {
			c.Players = []core.PlayerConfig{{Name: "Ada", Token: core.TokenA}}
		}},
		{"duplicate tokens", func(c *Config) {
			c.Players = []core.PlayerConfig{
				{Name: "Ada", Token: core.TokenA},
				{Name: "Bob", Token: core.TokenA},
			}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mutate(c)
			assert.Error(t, Validate(c))
		})
	}
}

func TestWatchConfig(t *testing.T) {
	resetGlobals(t)
	path := writeConfig(t, "search:\n  depth: 2\n")
	require.NoError(t, Init(path))

	changed := make(chan *Config, 1)
	WatchConfig(zerolog.Nop(), func(c *Config) {
		select {
		case changed <- c:
		default:
		}
	})

	require.NoError(t, os.WriteFile(path, []byte("search:\n  depth: 4\n"), 0644))

	select {
	case c := <-changed:
		assert.Equal(t, 4, c.Search.Depth)
	case <-time.After(5 * time.Second):
		t.Skip("no file change notification delivered on this filesystem")
	}
}
