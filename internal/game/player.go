package game

import (
	"context"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/mitchelldurbincs/pentago/internal/game/core"
	"github.com/mitchelldurbincs/pentago/internal/game/rules"
	"github.com/mitchelldurbincs/pentago/internal/search"
	"golang.org/x/exp/rand"
)

// ErrPlayerQuit is returned by a human player who typed exit or closed input
var ErrPlayerQuit = errors.New("player quit")

// Player picks moves for one seat
type Player interface {
	Config() core.PlayerConfig
	// NextMove returns a legal move for the player's token on b. b is not
	// modified.
	NextMove(ctx context.Context, b *core.Board) (core.Move, error)
}

// PlayerDeps are the collaborators the player kinds draw on
type PlayerDeps struct {
	Engine  *Engine
	Console *Console
	// Depth is the computer player's search depth
	Depth int
	RNG   *rand.Rand
}

// NewPlayer builds the Player for cfg.Kind
func NewPlayer(cfg core.PlayerConfig, deps PlayerDeps) (Player, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	switch cfg.Kind {
	case core.Human:
		if deps.Console == nil {
			return nil, fmt.Errorf("human player %s needs a console", cfg.Name)
		}
		return &HumanPlayer{cfg: cfg, console: deps.Console, engine: deps.Engine}, nil
	case core.Computer:
		if deps.Engine == nil {
			return nil, fmt.Errorf("computer player %s needs an engine", cfg.Name)
		}
		depth := deps.Depth
		if depth <= 0 {
			depth = DefaultSearchDepth()
		}
		return &ComputerPlayer{cfg: cfg, engine: deps.Engine, depth: depth}, nil
	case core.Random:
		return NewRandomPlayer(cfg, deps.RNG), nil
	default:
		return nil, fmt.Errorf("%w: %s", core.ErrInvalidPlayerKind, cfg.Kind)
	}
}

// HumanPlayer reads moves in "b/n gD" notation from the console
type HumanPlayer struct {
	cfg     core.PlayerConfig
	console *Console
	engine  *Engine
}

func (h *HumanPlayer) Config() core.PlayerConfig {
	return h.cfg
}

// NextMove prompts until a legal move is entered. "exit" or end of input
// returns ErrPlayerQuit.
func (h *HumanPlayer) NextMove(ctx context.Context, b *core.Board) (core.Move, error) {
	for {
		if err := ctx.Err(); err != nil {
			return core.Move{}, err
		}

		line, err := h.console.Prompt(fmt.Sprintf(movePrompt, h.cfg.Name))
		if ctxErr := ctx.Err(); ctxErr != nil {
			return core.Move{}, ctxErr
		}
		if errors.Is(err, io.EOF) {
			return core.Move{}, fmt.Errorf("%w: input closed", ErrPlayerQuit)
		}
		if err != nil {
			return core.Move{}, fmt.Errorf("reading move: %w", err)
		}
		if line == ExitCommand {
			return core.Move{}, ErrPlayerQuit
		}

		m, err := core.ParseMove(line)
		if err == nil {
			err = m.Validate(b)
		}
		if err != nil {
			h.console.Println(invalidMove)
			if h.engine != nil {
				h.engine.rejectInput(line, h.cfg.Token, err)
			}
			continue
		}
		return m, nil
	}
}

// ComputerPlayer asks the engine's searcher for a move
type ComputerPlayer struct {
	cfg    core.PlayerConfig
	engine *Engine
	depth  int
}

func (c *ComputerPlayer) Config() core.PlayerConfig {
	return c.cfg
}

func (c *ComputerPlayer) NextMove(ctx context.Context, b *core.Board) (core.Move, error) {
	return c.engine.ComputeMove(ctx, b, c.cfg.Token, c.depth)
}

// RandomPlayer plays a uniformly random legal move, sampled from the legal
// action mask
type RandomPlayer struct {
	cfg core.PlayerConfig
	mu  sync.Mutex
	rng *rand.Rand
}

// NewRandomPlayer creates a random player. A nil rng is seeded from the cfg name.
func NewRandomPlayer(cfg core.PlayerConfig, rng *rand.Rand) *RandomPlayer {
	if rng == nil {
		var seed uint64
		for _, ch := range cfg.Name {
			seed = seed*31 + uint64(ch)
		}
		rng = rand.New(rand.NewSource(seed))
	}
	return &RandomPlayer{cfg: cfg, rng: rng}
}

func (r *RandomPlayer) Config() core.PlayerConfig {
	return r.cfg
}

func (r *RandomPlayer) NextMove(ctx context.Context, b *core.Board) (core.Move, error) {
	if err := ctx.Err(); err != nil {
		return core.Move{}, err
	}
	actions := make([]int, 0, rules.MoveCount(b))
	for idx, legal := range rules.LegalActionMask(b) {
		if legal {
			actions = append(actions, idx)
		}
	}
	if len(actions) == 0 {
		return core.Move{}, search.ErrNoLegalMoves
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return rules.MoveFromAction(actions[r.rng.Intn(len(actions))]), nil
}
