package search

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/mitchelldurbincs/pentago/internal/game/core"
	"github.com/mitchelldurbincs/pentago/internal/game/rules"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"
)

var (
	ErrInvalidDepth = errors.New("invalid search depth")
	ErrNoLegalMoves = errors.New("no legal moves")

	errSearchAborted = errors.New("search aborted")
)

const (
	infinity = math.MaxInt32
	// pollInterval is how many nodes a worker visits between deadline checks
	pollInterval = 1024
)

type Option func(s *Searcher)

// WithPruning toggles alpha-beta pruning. The chosen move and score are the
// same either way.
func WithPruning(enabled bool) Option {
	return func(s *Searcher) {
		s.pruning = enabled
	}
}

// WithDuration sets a wall-clock budget per BestMove call
func WithDuration(duration time.Duration) Option {
	return func(s *Searcher) {
		if duration > 0 {
			s.duration = duration
		}
	}
}

// WithWorkers searches root moves on up to n goroutines, each on its own board copy
func WithWorkers(n int) Option {
	return func(s *Searcher) {
		if n > 0 {
			s.workers = n
		}
	}
}

func WithEvaluator(e Evaluator) Option {
	return func(s *Searcher) {
		if e != nil {
			s.evaluator = e
		}
	}
}

func WithMetrics() Option {
	return func(s *Searcher) {
		s.metrics = true
	}
}

func WithLogger(logger zerolog.Logger) Option {
	return func(s *Searcher) {
		s.logger = logger.With().Str("component", "searcher").Logger()
	}
}

// Searcher picks moves by depth-limited minimax over the legal move tree.
// It keeps no state between calls and is safe for concurrent use.
type Searcher struct {
	pruning   bool
	duration  time.Duration
	workers   int
	evaluator Evaluator
	metrics   bool
	logger    zerolog.Logger
}

// Result is the outcome of a BestMove call
type Result struct {
	Move  core.Move
	Score int
	// Depth is the deepest fully searched iteration behind Move
	Depth int
	// Completed is false when the budget or context stopped the search early
	Completed bool
	Metrics   SearchMetrics
}

func NewSearcher(options ...Option) *Searcher {
	defaultEvaluator, _ := NewLineEvaluator(DefaultWeights())
	s := &Searcher{ // Default values
		pruning:   true,
		workers:   1,
		evaluator: defaultEvaluator,
		logger:    log.With().Str("component", "searcher").Logger(),
	}
	for _, option := range options {
		option(s)
	}
	return s
}

// rootResult is one iteration's answer at the root
type rootResult struct {
	move     core.Move
	score    int
	found    bool
	complete bool
}

// worker carries the per-goroutine node counter used for deadline polling
type worker struct {
	ctx       context.Context
	nodes     int
	collector MetricsCollector
}

func (w *worker) aborted() bool {
	w.nodes++
	w.collector.AddNode()
	return w.nodes%pollInterval == 0 && w.ctx.Err() != nil
}

// BestMove returns the move that maximises token's guaranteed payoff within
// depth plies. Ties go to the first move in rules.LegalMoves order.
// b is explored in place and is identical to its input state on return.
func (s *Searcher) BestMove(ctx context.Context, b *core.Board, token core.Cell, depth int) (Result, error) {
	if depth <= 0 {
		return Result{}, fmt.Errorf("%w: %d", ErrInvalidDepth, depth)
	}
	if !token.IsToken() {
		return Result{}, fmt.Errorf("%w: %s", core.ErrInvalidToken, token)
	}
	if b.IsFull() {
		return Result{}, ErrNoLegalMoves
	}

	collector := NewNoMetricsCollector()
	if s.metrics {
		collector = NewMetricsCollector()
	}
	collector.Start()

	if s.duration > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.duration)
		defer cancel()
	}

	var (
		best      rootResult
		bestDepth int
	)
	if s.duration > 0 {
		// Iterative deepening: an interrupted iteration is discarded unless
		// nothing has completed yet.
		for d := 1; d <= depth; d++ {
			r := s.searchRoot(ctx, b, token, d, collector)
			if r.complete {
				best, bestDepth = r, d
				continue
			}
			if !best.found && r.found {
				best = r
			}
			break
		}
	} else {
		best = s.searchRoot(ctx, b, token, depth, collector)
		if best.complete {
			bestDepth = depth
		}
	}

	if !best.found {
		// Stopped before a single root move was scored
		for m := range rules.LegalMoves(b) {
			best = rootResult{move: m, found: true}
			break
		}
	}

	res := Result{
		Move:      best.move,
		Score:     best.score,
		Depth:     bestDepth,
		Completed: best.complete && bestDepth == depth,
		Metrics:   collector.Complete(),
	}

	s.logger.Debug().
		Str("token", token.String()).
		Str("move", res.Move.String()).
		Int("score", res.Score).
		Int("depth", res.Depth).
		Bool("completed", res.Completed).
		Int64("nodes", res.Metrics.Nodes).
		Int64("cutoffs", res.Metrics.Cutoffs).
		Msg("Search finished")

	return res, nil
}

func (s *Searcher) searchRoot(ctx context.Context, b *core.Board, token core.Cell, depth int, collector MetricsCollector) rootResult {
	if s.workers > 1 {
		return s.searchRootParallel(ctx, b, token, depth, collector)
	}

	w := &worker{ctx: ctx, collector: collector}
	var best rootResult
	alpha := -infinity

	for m := range rules.LegalMoves(b) {
		if err := core.ApplyMove(b, m, token); err != nil {
			s.logger.Error().Err(err).Str("move", m.String()).Msg("Generated move rejected")
			continue
		}
		v, err := s.minimax(w, b, depth-1, alpha, infinity, false, token)
		core.UndoMove(b, m)
		if err != nil {
			return best
		}

		// A child that failed low returns a bound <= alpha, never above the best so far
		if !best.found || v > best.score {
			best = rootResult{move: m, score: v, found: true}
		}
		if s.pruning && v > alpha {
			alpha = v
		}
	}

	best.complete = true
	return best
}

func (s *Searcher) searchRootParallel(ctx context.Context, b *core.Board, token core.Cell, depth int, collector MetricsCollector) rootResult {
	moves := rules.CollectMoves(b)
	scores := make([]int, len(moves))
	done := make([]bool, len(moves))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, m := range moves {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			board := b.Clone()
			if err := core.ApplyMove(board, m, token); err != nil {
				return err
			}
			w := &worker{ctx: gctx, collector: collector}
			// Full window per root move so every score is exact
			v, err := s.minimax(w, board, depth-1, -infinity, infinity, false, token)
			if err != nil {
				return err
			}
			scores[i] = v
			done[i] = true
			return nil
		})
	}
	err := g.Wait()

	var best rootResult
	for i, m := range moves {
		if done[i] && (!best.found || scores[i] > best.score) {
			best = rootResult{move: m, score: scores[i], found: true}
		}
	}
	best.complete = err == nil
	return best
}

// minimax scores b from root's perspective. depth is the remaining ply count;
// maximizing is true when root is to move.
func (s *Searcher) minimax(w *worker, b *core.Board, depth, alpha, beta int, maximizing bool, root core.Cell) (int, error) {
	if w.aborted() {
		return 0, errSearchAborted
	}

	switch rules.Adjudicate(rules.EvaluateResult(b)) {
	case rules.WinFor(root):
		// Sooner wins keep more remaining depth and score higher
		return WinScore + depth, nil
	case rules.WinFor(root.Opponent()):
		return -(WinScore + depth), nil
	case rules.Draw:
		return 0, nil
	}

	if depth == 0 {
		w.collector.AddLeaf()
		return s.evaluator.Score(b, root), nil
	}

	mover := root
	if !maximizing {
		mover = root.Opponent()
	}

	value := infinity
	if maximizing {
		value = -infinity
	}

	for m := range rules.LegalMoves(b) {
		if err := core.ApplyMove(b, m, mover); err != nil {
			return 0, err
		}
		v, err := s.minimax(w, b, depth-1, alpha, beta, !maximizing, root)
		core.UndoMove(b, m)
		if err != nil {
			return 0, err
		}

		if maximizing {
			value = max(value, v)
			if s.pruning {
				alpha = max(alpha, value)
			}
		} else {
			value = min(value, v)
			if s.pruning {
				beta = min(beta, value)
			}
		}
		if s.pruning && alpha >= beta {
			w.collector.AddCutoff()
			break
		}
	}

	return value, nil
}
