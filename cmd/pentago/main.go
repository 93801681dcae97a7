package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/pflag"

	"github.com/mitchelldurbincs/pentago/internal/config"
	"github.com/mitchelldurbincs/pentago/internal/game"
	"github.com/mitchelldurbincs/pentago/internal/game/core"
	"github.com/mitchelldurbincs/pentago/internal/game/events"
	"github.com/mitchelldurbincs/pentago/internal/game/events/subscribers"
	"github.com/mitchelldurbincs/pentago/internal/transcript"
)

// flagKeys maps command line flags to the config keys they override
var flagKeys = map[string]string{
	"board":       "game.board",
	"depth":       "search.depth",
	"time-budget": "search.time_budget",
	"workers":     "search.workers",
	"log-level":   "log.level",
	"log-format":  "log.format",
	"color":       "game.color",
	"seed":        "game.random_seed",
	"out-dir":     "game.transcript.dir",
}

func main() {
	flags := pflag.NewFlagSet("pentago", pflag.ExitOnError)
	configPath := flags.StringP("config", "c", "", "Path to config file with the players section filled in")
	flags.StringP("board", "b", "", "36-character starting position over .bw, Player 1 to move")
	flags.Int("depth", 0, "Search depth of computer players")
	flags.Duration("time-budget", 0, "Time limit per computer move (0 for none)")
	flags.Int("workers", 0, "Goroutines searching root moves")
	flags.String("log-level", "", "Log level (trace, debug, info, warn, error)")
	flags.String("log-format", "", "Log format (console, json)")
	flags.String("color", "", "Colored board output (auto, always, never)")
	flags.Uint64("seed", 0, "Seed for random players (0 for time based)")
	flags.String("out-dir", "", "Directory for transcripts and saved setups")
	noTranscript := flags.Bool("no-transcript", false, "Do not write a transcript")
	watch := flags.Bool("watch", false, "Apply search setting changes in the config file while playing")
	_ = flags.Parse(os.Args[1:])

	if err := config.Init(*configPath); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize config")
	}
	if err := bindFlags(flags, *noTranscript); err != nil {
		log.Fatal().Err(err).Msg("Invalid command line options")
	}
	cfg := config.Get()

	setupLogging(cfg.Log.Level, cfg.Log.Format)

	out := game.Output(os.Stdout)
	console := game.NewConsole(os.Stdin, out)
	console.Println("\n" + game.WelcomeBanner)

	start := time.Now()
	fs := afero.NewOsFs()

	var players [2]core.PlayerConfig
	if cfg.HasPlayers() {
		players = cfg.PlayerPair()
		game.AnnounceSetup(console, config.ConfigFilePath(), players, cfg.Game.Instructions)
	} else {
		var err error
		if players, err = game.SetupPlayers(console); err != nil {
			log.Fatal().Err(err).Msg("Player setup failed")
		}
		path, err := transcript.SaveSetup(fs, cfg.Game.Transcript.Dir, players, start)
		if err != nil {
			log.Warn().Err(err).Msg("Could not save player setup")
		} else {
			log.Info().Str("path", path).Msg("Player setup saved")
		}
	}

	board, err := cfg.StartingBoard()
	if err != nil {
		log.Fatal().Err(err).Msg("Invalid starting board")
	}

	gameID := uuid.NewString()
	bus := events.NewEventBus()
	eventLogger := subscribers.NewLoggerSubscriber("game-log", log.Logger, zerolog.DebugLevel)
	eventLogger.SetDevMode(cfg.Log.Level == zerolog.TraceLevel.String())
	bus.Subscribe(eventLogger)

	engine := game.NewEngine(game.WithPublisher(bus, gameID))
	if *watch && config.ConfigFilePath() != "" {
		config.WatchConfig(log.Logger, func(c *config.Config) {
			options, err := c.SearchOptions()
			if err != nil {
				log.Warn().Err(err).Msg("Keeping current search settings")
				return
			}
			engine.SetSearchOptions(options...)
		})
	}

	var recorder game.Recorder
	if cfg.Game.Transcript.Enabled {
		recorder = transcript.NewWriter(fs, cfg.Game.Transcript.Dir, gameID, log.Logger)
	}

	session, err := game.NewSession(game.SessionConfig{
		GameID:   gameID,
		Board:    board,
		Players:  players,
		Depth:    cfg.Search.Depth,
		Engine:   engine,
		EventBus: bus,
		Console:  console,
		Color:    game.ColorEnabled(cfg.Game.Color, os.Stdout),
		Recorder: recorder,
		Seed:     cfg.Game.RandomSeed,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to create game")
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		log.Info().Str("signal", sig.String()).Msg("Received shutdown signal")
		// A second signal ends the process, even while waiting for input
		signal.Stop(sigCh)
		cancel()
	}()

	outcome, err := session.Run(ctx)
	if err != nil && ctx.Err() == nil {
		log.Error().Err(err).Msg("Game stopped")
		os.Exit(1)
	}

	log.Info().
		Str("game_id", outcome.GameID).
		Str("result", outcome.Result.String()).
		Str("winner", outcome.Winner).
		Int("moves", outcome.Moves).
		Dur("duration", outcome.Duration).
		Msg("Game finished")
}

// bindFlags lets explicitly set flags override the file and environment
func bindFlags(flags *pflag.FlagSet, noTranscript bool) error {
	v := config.GetViper()
	for name, key := range flagKeys {
		if !flags.Changed(name) {
			continue
		}
		if err := v.BindPFlag(key, flags.Lookup(name)); err != nil {
			return err
		}
	}
	if noTranscript {
		v.Set("game.transcript.enabled", false)
	}
	return config.Reload()
}

func setupLogging(level, format string) {
	logLevel, err := zerolog.ParseLevel(level)
	if err != nil {
		logLevel = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(logLevel)

	// Logs go to stderr so they do not mix with the board on stdout
	if format == "json" {
		log.Logger = zerolog.New(os.Stderr).With().Timestamp().Logger()
	} else {
		log.Logger = log.Output(zerolog.ConsoleWriter{
			Out:        os.Stderr,
			TimeFormat: time.RFC3339,
		})
	}
}
