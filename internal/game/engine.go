package game

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/mitchelldurbincs/pentago/internal/game/core"
	"github.com/mitchelldurbincs/pentago/internal/game/events"
	"github.com/mitchelldurbincs/pentago/internal/game/rules"
	"github.com/mitchelldurbincs/pentago/internal/search"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Engine is the entry point for playing on a board: it applies moves,
// asks the searcher for moves and judges positions. It holds no board of
// its own and may be shared by both players of a session.
type Engine struct {
	gameID    string
	searcher  atomic.Pointer[search.Searcher]
	checker   *rules.WinConditionChecker
	publisher events.Publisher
	logger    zerolog.Logger
	applied   atomic.Int64
}

// EngineOption configures an Engine
type EngineOption func(e *Engine)

// WithSearcher sets the searcher used by ComputeMove
func WithSearcher(s *search.Searcher) EngineOption {
	return func(e *Engine) {
		e.searcher.Store(s)
	}
}

// WithPublisher makes the engine publish move events for gameID
func WithPublisher(p events.Publisher, gameID string) EngineOption {
	return func(e *Engine) {
		e.publisher = p
		e.gameID = gameID
	}
}

func WithLogger(logger zerolog.Logger) EngineOption {
	return func(e *Engine) {
		e.logger = logger
	}
}

// NewEngine creates an engine. Without WithSearcher it searches with the
// configured search options.
func NewEngine(opts ...EngineOption) *Engine {
	e := &Engine{logger: log.Logger}
	for _, opt := range opts {
		opt(e)
	}
	e.logger = e.logger.With().Str("component", "GameEngine").Logger()
	if e.searcher.Load() == nil {
		e.SetSearchOptions(DefaultSearchOptions()...)
	}
	e.checker = rules.NewWinConditionChecker(e.logger)
	return e
}

// ApplyMove places token at m.Cell and rotates m.Quadrant. A rejected move
// returns a *core.MoveError and leaves b untouched.
func (e *Engine) ApplyMove(b *core.Board, m core.Move, token core.Cell) error {
	if err := core.ApplyMove(b, m, token); err != nil {
		e.logger.Debug().Err(err).Str("move", m.String()).Msg("Move rejected")
		return err
	}
	turn := int(e.applied.Add(1))

	e.logger.Debug().
		Int("turn", turn).
		Str("token", token.String()).
		Str("move", m.String()).
		Str("board", b.String()).
		Msg("Move applied")
	e.publish(events.NewMoveAppliedEvent(e.gameID, m, token, b.String(), turn))
	return nil
}

// ComputeMove returns the searcher's choice for token at the given depth.
// b is restored before returning.
func (e *Engine) ComputeMove(ctx context.Context, b *core.Board, token core.Cell, depth int) (core.Move, error) {
	res, err := e.Compute(ctx, b, token, depth)
	if err != nil {
		return core.Move{}, err
	}
	return res.Move, nil
}

// Compute is ComputeMove with the full search result
func (e *Engine) Compute(ctx context.Context, b *core.Board, token core.Cell, depth int) (search.Result, error) {
	start := time.Now()
	res, err := e.searcher.Load().BestMove(ctx, b, token, depth)
	if err != nil {
		return res, err
	}
	elapsed := time.Since(start)

	e.logger.Info().
		Str("token", token.String()).
		Str("move", res.Move.String()).
		Int("score", res.Score).
		Int("depth", res.Depth).
		Int64("nodes", res.Metrics.Nodes).
		Float64("nodes_per_sec", res.Metrics.NodesPerSecond()).
		Dur("elapsed", elapsed).
		Bool("completed", res.Completed).
		Msg("Move computed")
	e.publish(events.NewMoveComputedEvent(e.gameID, res.Move, token, res.Score, res.Depth,
		res.Metrics.Nodes, elapsed, res.Completed))
	return res, nil
}

// SetSearchOptions replaces the searcher; searches already running finish
// with the old one
func (e *Engine) SetSearchOptions(options ...search.Option) {
	e.searcher.Store(search.NewSearcher(append(options, search.WithLogger(e.logger))...))
}

// CheckResult reports the board as detected. DoubleWin is returned as is;
// callers score it with rules.Adjudicate.
func (e *Engine) CheckResult(b *core.Board) rules.GameResult {
	_, result := e.checker.CheckGameOver(b)
	return result
}

// Applied returns how many moves this engine has applied
func (e *Engine) Applied() int {
	return int(e.applied.Load())
}

func (e *Engine) rejectInput(input string, token core.Cell, reason error) {
	e.publish(events.NewMoveRejectedEvent(e.gameID, input, token, reason))
}

func (e *Engine) publish(event events.Event) {
	if e.publisher != nil {
		e.publisher.Publish(event)
	}
}
