package game

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/mitchelldurbincs/pentago/internal/game/core"
	"github.com/mitchelldurbincs/pentago/internal/game/events"
	"github.com/mitchelldurbincs/pentago/internal/game/rules"
	"github.com/mitchelldurbincs/pentago/internal/game/states"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

// Recorder receives the course of a game, e.g. to write a transcript
type Recorder interface {
	Begin(players [2]core.PlayerConfig) error
	// Record is called with the position before m is applied
	Record(before *core.Board, m core.Move) error
	Finish(final *core.Board, outcome string) error
}

// SessionConfig configures a single game. Only Players is required.
type SessionConfig struct {
	GameID string
	// Board is the starting position; it is copied, not played on
	Board   *core.Board
	Players [2]core.PlayerConfig
	// Depth is the computer players' search depth
	Depth    int
	Engine   *Engine
	EventBus *events.EventBus
	Console  *Console
	Color    bool
	Recorder Recorder
	// Seed drives random players; zero picks one from the clock
	Seed   uint64
	Logger *zerolog.Logger
}

// Outcome summarises a finished session
type Outcome struct {
	GameID string
	// Detected is the board result as found, before DoubleWin adjudication
	Detected rules.GameResult
	Result   rules.GameResult
	// Winner is the winning player's name, empty when nobody won
	Winner      string
	WinnerToken core.Cell
	Moves       int
	Duration    time.Duration
	Aborted     bool
	Final       *core.Board
}

// Message is the closing line shown to the players
func (o Outcome) Message() string {
	switch {
	case o.Aborted:
		return "Exiting game."
	case o.Detected == rules.DoubleWin:
		return "Game ends in a tie (multiple winners)."
	case o.Result == rules.WinA || o.Result == rules.WinB:
		return fmt.Sprintf("%s (%s) wins", o.Winner, o.WinnerToken.ColorName())
	default:
		return "Game ends in a tie (no winner)."
	}
}

// Session plays one game between two players, player 1 moving first
type Session struct {
	id       string
	board    *core.Board
	configs  [2]core.PlayerConfig
	players  [2]Player
	engine   *Engine
	bus      *events.EventBus
	machine  *states.StateMachine
	gctx     *states.GameContext
	console  *Console
	color    bool
	recorder Recorder
	logger   zerolog.Logger
}

// NewSession validates cfg and prepares the players. The session is left
// in PhaseSetup, or PhaseError when the players are invalid.
func NewSession(cfg SessionConfig) (*Session, error) {
	id := cfg.GameID
	if id == "" {
		id = uuid.NewString()
	}

	logger := log.Logger
	if cfg.Logger != nil {
		logger = *cfg.Logger
	}
	logger = logger.With().Str("component", "Session").Str("game_id", id).Logger()

	bus := cfg.EventBus
	if bus == nil {
		bus = events.NewEventBusWithLogger(logger)
	}

	gctx := states.NewGameContext(id, logger)
	machine := states.NewStateMachine(gctx, bus)
	if err := machine.TransitionTo(states.PhaseSetup, "session created"); err != nil {
		return nil, err
	}

	if err := core.ValidatePlayers(cfg.Players); err != nil {
		_ = machine.Fail(err)
		return nil, fmt.Errorf("invalid players: %w", err)
	}

	board := core.NewBoard()
	if cfg.Board != nil {
		board = cfg.Board.Clone()
	}

	engine := cfg.Engine
	if engine == nil {
		engine = NewEngine(WithPublisher(bus, id), WithLogger(logger))
	}

	console := cfg.Console
	if console == nil {
		console = NewConsole(os.Stdin, os.Stdout)
	}

	seed := cfg.Seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rng := rand.New(rand.NewSource(seed))

	s := &Session{
		id:       id,
		board:    board,
		configs:  cfg.Players,
		engine:   engine,
		bus:      bus,
		machine:  machine,
		gctx:     gctx,
		console:  console,
		color:    cfg.Color,
		recorder: cfg.Recorder,
		logger:   logger,
	}

	deps := PlayerDeps{Engine: engine, Console: console, Depth: cfg.Depth, RNG: rng}
	for i, pc := range cfg.Players {
		p, err := NewPlayer(pc, deps)
		if err != nil {
			_ = machine.Fail(err)
			return nil, fmt.Errorf("player %d: %w", i+1, err)
		}
		s.players[i] = p
	}
	gctx.PlayerCount = len(s.players)

	logger.Debug().
		Str("player1", cfg.Players[0].String()).
		Str("player2", cfg.Players[1].String()).
		Str("board", board.String()).
		Uint64("seed", seed).
		Msg("Session created")

	return s, nil
}

// ID returns the session's game ID
func (s *Session) ID() string {
	return s.id
}

// Phase returns the session's current phase
func (s *Session) Phase() states.GamePhase {
	return s.machine.CurrentPhase()
}

// History returns the phase transitions so far
func (s *Session) History() []states.Transition {
	return s.machine.GetHistory()
}

// Board returns a copy of the current position
func (s *Session) Board() *core.Board {
	return s.board.Clone()
}

// EventBus returns the bus session events are published on
func (s *Session) EventBus() *events.EventBus {
	return s.bus
}

// Run alternates turns until the board is decided, a player quits or ctx
// is done. A quit returns a nil error; a cancelled ctx returns ctx.Err()
// alongside the aborted outcome.
func (s *Session) Run(ctx context.Context) (Outcome, error) {
	if err := s.machine.TransitionTo(states.PhaseRunning, "players ready"); err != nil {
		return Outcome{}, err
	}

	names := []string{s.configs[0].Name, s.configs[1].Name}
	s.bus.Publish(events.NewGameStartedEvent(s.id, names, s.board.String()))

	if s.recorder != nil {
		if err := s.recorder.Begin(s.configs); err != nil {
			return s.fail(fmt.Errorf("starting transcript: %w", err))
		}
	}

	s.console.Printf("\n%s\n%s\n\n", s.configs[0], s.configs[1])
	s.console.Printf("%s", RenderBoard(s.board, s.color))

	result := s.engine.CheckResult(s.board)
	current := 0
	for !result.IsTerminal() {
		if err := ctx.Err(); err != nil {
			return s.abort(err.Error(), err)
		}

		player := s.players[current]
		pc := player.Config()
		s.bus.Publish(events.NewTurnStartedEvent(s.id, pc.Name, pc.Token, s.gctx.Moves+1))

		m, err := player.NextMove(ctx, s.board)
		switch {
		case errors.Is(err, ErrPlayerQuit):
			return s.abort(pc.Name+" quit", nil)
		case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
			return s.abort(err.Error(), err)
		case err != nil:
			return s.fail(fmt.Errorf("%s: %w", pc.Name, err))
		}

		s.console.Printf("%s's move: %s\n", pc.Name, m)
		before := s.board.Clone()
		if err := s.engine.ApplyMove(s.board, m, pc.Token); err != nil {
			return s.fail(err)
		}
		s.gctx.Moves++
		if s.recorder != nil {
			if err := s.recorder.Record(before, m); err != nil {
				return s.fail(fmt.Errorf("recording move: %w", err))
			}
		}

		s.console.Println(m.Explain(pc.Token))
		s.console.Printf("%s", RenderBoard(s.board, s.color))

		result = s.engine.CheckResult(s.board)
		current = 1 - current
	}

	return s.finish(result)
}

func (s *Session) outcome() Outcome {
	return Outcome{
		GameID:   s.id,
		Detected: rules.InProgress,
		Result:   rules.InProgress,
		Moves:    s.gctx.Moves,
		Final:    s.board.Clone(),
	}
}

func (s *Session) finish(detected rules.GameResult) (Outcome, error) {
	o := s.outcome()
	o.Detected = detected
	o.Result = rules.Adjudicate(detected)
	o.WinnerToken = o.Result.Winner()
	for _, pc := range s.configs {
		if o.WinnerToken.IsToken() && pc.Token == o.WinnerToken {
			o.Winner = pc.Name
		}
	}

	s.gctx.Result = o.Result
	s.gctx.Winner = o.Winner
	if err := s.machine.TransitionTo(states.PhaseEnded, detected.String()); err != nil {
		return o, err
	}
	o.Duration = s.gctx.GetElapsedTime()

	return s.close(o, nil)
}

func (s *Session) abort(reason string, cause error) (Outcome, error) {
	o := s.outcome()
	o.Aborted = true
	if err := s.machine.TransitionTo(states.PhaseAborted, reason); err != nil {
		return o, err
	}
	o.Duration = s.gctx.GetElapsedTime()

	return s.close(o, cause)
}

func (s *Session) fail(err error) (Outcome, error) {
	o := s.outcome()
	o.Aborted = true
	if terr := s.machine.Fail(err); terr != nil {
		s.logger.Error().Err(terr).Msg("Could not enter error state")
	}
	o.Duration = s.gctx.GetElapsedTime()

	if s.recorder != nil {
		if ferr := s.recorder.Finish(s.board, "Game stopped: "+err.Error()); ferr != nil {
			s.logger.Error().Err(ferr).Msg("Could not finish transcript")
		}
	}
	s.bus.Publish(events.NewGameEndedEvent(s.id, o.Result, "", o.Duration, o.Moves))
	return o, err
}

func (s *Session) close(o Outcome, cause error) (Outcome, error) {
	msg := o.Message()
	s.console.Println(msg)

	if s.recorder != nil {
		if err := s.recorder.Finish(s.board, msg); err != nil {
			return o, fmt.Errorf("finishing transcript: %w", err)
		}
	}
	s.bus.Publish(events.NewGameEndedEvent(s.id, o.Result, o.Winner, o.Duration, o.Moves))
	return o, cause
}
