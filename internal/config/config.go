package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-viper/mapstructure/v2"
	"github.com/mitchelldurbincs/pentago/internal/game/core"
	"github.com/mitchelldurbincs/pentago/internal/game/rules"
	"github.com/mitchelldurbincs/pentago/internal/search"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

// Color modes for board output
const (
	ColorAuto   = "auto"
	ColorAlways = "always"
	ColorNever  = "never"
)

// Config holds all configuration for the application
type Config struct {
	Log     LogConfig           `mapstructure:"log"`
	Search  SearchConfig        `mapstructure:"search"`
	Rules   RulesConfig         `mapstructure:"rules"`
	Game    GameConfig          `mapstructure:"game"`
	Players []core.PlayerConfig `mapstructure:"players"`
}

// LogConfig holds logger settings
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// SearchConfig holds computer player settings
type SearchConfig struct {
	Depth int `mapstructure:"depth"`
	// TimeBudget caps one move's search; zero means no limit
	TimeBudget time.Duration  `mapstructure:"time_budget"`
	Pruning    bool           `mapstructure:"pruning"`
	Workers    int            `mapstructure:"workers"`
	Weights    search.Weights `mapstructure:"weights"`
}

// RulesConfig holds rule variants
type RulesConfig struct {
	DoubleWinPolicy string `mapstructure:"double_win_policy"`
}

// GameConfig holds session settings
type GameConfig struct {
	// Board is an optional 36-character starting position
	Board        string           `mapstructure:"board"`
	Color        string           `mapstructure:"color"`
	Instructions bool             `mapstructure:"instructions"`
	Transcript   TranscriptConfig `mapstructure:"transcript"`
	// RandomSeed seeds random players; zero picks a time-based seed
	RandomSeed uint64 `mapstructure:"random_seed"`
}

// TranscriptConfig holds game record settings
type TranscriptConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Dir     string `mapstructure:"dir"`
}

var (
	// Global config instance
	cfg *Config
	v   *viper.Viper
)

// setViperDefaults sets all default values using Viper's SetDefault
func setViperDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "console")

	weights := search.DefaultWeights()
	v.SetDefault("search.depth", 2)
	v.SetDefault("search.time_budget", "0s")
	v.SetDefault("search.pruning", true)
	v.SetDefault("search.workers", 1)
	v.SetDefault("search.weights.two", weights.Two)
	v.SetDefault("search.weights.three", weights.Three)
	v.SetDefault("search.weights.four", weights.Four)
	v.SetDefault("search.weights.center", weights.Center)

	v.SetDefault("rules.double_win_policy", "draw")

	v.SetDefault("game.board", "")
	v.SetDefault("game.color", ColorAuto)
	v.SetDefault("game.instructions", false)
	v.SetDefault("game.transcript.enabled", true)
	v.SetDefault("game.transcript.dir", ".")
	v.SetDefault("game.random_seed", 0)
}

func decodeHook() viper.DecoderConfigOption {
	return viper.DecodeHook(mapstructure.ComposeDecodeHookFunc(
		mapstructure.TextUnmarshallerHookFunc(),
		mapstructure.StringToTimeDurationHookFunc(),
	))
}

// Init initializes the configuration. An empty configPath searches the
// default locations; a missing default file is not an error.
func Init(configPath string) error {
	v = viper.New()

	setViperDefaults(v)

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("pentago")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	v.SetEnvPrefix("PENTAGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return fmt.Errorf("error reading config file: %w", err)
		}
	}

	c, err := decode(v)
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

func decode(v *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c, decodeHook()); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}
	if err := Validate(c); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return c, nil
}

// Get returns the global config instance
func Get() *Config {
	if cfg == nil {
		if err := Init(""); err != nil {
			panic("failed to initialize config with defaults: " + err.Error())
		}
	}
	return cfg
}

// GetViper returns the viper instance for flag binding
func GetViper() *viper.Viper {
	if v == nil {
		panic("config not initialized - call Init() first")
	}
	return v
}

// Reload decodes the current viper state again, picking up bound flags and
// values changed with Set. The previous config is kept if the new one is invalid.
func Reload() error {
	c, err := decode(GetViper())
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Set allows runtime config updates
func Set(key string, value interface{}) error {
	GetViper().Set(key, value)
	return Reload()
}

// ConfigFilePath returns the path of the loaded config file
func ConfigFilePath() string {
	return GetViper().ConfigFileUsed()
}

// WatchConfig enables hot-reloading of the config file. Invalid edits are
// logged and ignored.
func WatchConfig(logger zerolog.Logger, onChange func(*Config)) {
	v := GetViper()
	v.OnConfigChange(func(e fsnotify.Event) {
		if err := Reload(); err != nil {
			logger.Warn().Err(err).Str("file", e.Name).Msg("Ignoring invalid config change")
			return
		}
		logger.Info().Str("file", e.Name).Msg("Config reloaded")
		if onChange != nil {
			onChange(cfg)
		}
	})
	v.WatchConfig()
}

// SearchOptions translates the search section into searcher options. Bad
// weights are reported along with the options for the default evaluator.
func (c *Config) SearchOptions() ([]search.Option, error) {
	options := []search.Option{
		search.WithPruning(c.Search.Pruning),
		search.WithWorkers(c.Search.Workers),
		search.WithMetrics(),
	}
	if c.Search.TimeBudget > 0 {
		options = append(options, search.WithDuration(c.Search.TimeBudget))
	}
	e, err := search.NewLineEvaluator(c.Search.Weights)
	if err != nil {
		return options, fmt.Errorf("search.weights: %w", err)
	}
	return append(options, search.WithEvaluator(e)), nil
}

// StartingBoard parses game.board, or returns an empty board
func (c *Config) StartingBoard() (*core.Board, error) {
	if c.Game.Board == "" {
		return core.NewBoard(), nil
	}
	return core.ParseBoard(c.Game.Board)
}

// HasPlayers reports whether the players section is filled in
func (c *Config) HasPlayers() bool {
	return len(c.Players) == 2
}

// PlayerPair returns the configured players in seat order
func (c *Config) PlayerPair() [2]core.PlayerConfig {
	var pair [2]core.PlayerConfig
	copy(pair[:], c.Players)
	return pair
}

// Validate validates the configuration values
func Validate(c *Config) error {
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Format != "console" && c.Log.Format != "json" {
		return fmt.Errorf("log.format must be console or json, got %q", c.Log.Format)
	}

	if c.Search.Depth < 1 {
		return fmt.Errorf("search.depth must be at least 1")
	}
	if c.Search.TimeBudget < 0 {
		return fmt.Errorf("search.time_budget must be non-negative")
	}
	if c.Search.Workers < 1 {
		return fmt.Errorf("search.workers must be at least 1")
	}
	if err := c.Search.Weights.Validate(); err != nil {
		return fmt.Errorf("search.weights: %w", err)
	}

	if !strings.EqualFold(c.Rules.DoubleWinPolicy, rules.DoubleWinPolicy.String()) {
		return fmt.Errorf("rules.double_win_policy: only %q is supported, got %q",
			strings.ToLower(rules.DoubleWinPolicy.String()), c.Rules.DoubleWinPolicy)
	}

	switch c.Game.Color {
	case ColorAuto, ColorAlways, ColorNever:
	default:
		return fmt.Errorf("game.color must be auto, always or never, got %q", c.Game.Color)
	}
	if c.Game.Board != "" {
		if _, err := core.ParseBoard(c.Game.Board); err != nil {
			return fmt.Errorf("game.board: %w", err)
		}
	}
	if c.Game.Transcript.Enabled && c.Game.Transcript.Dir == "" {
		return fmt.Errorf("game.transcript.dir must be set when transcripts are enabled")
	}

	switch len(c.Players) {
	case 0:
	case 2:
		if err := core.ValidatePlayers(c.PlayerPair()); err != nil {
			return fmt.Errorf("players: %w", err)
		}
	default:
		return fmt.Errorf("players must list exactly two entries, got %d", len(c.Players))
	}

	return nil
}
