package states

import (
	"errors"
	"fmt"
	"time"
)

// InitializingState represents session construction
type InitializingState struct{}

func NewInitializingState() State {
	return &InitializingState{}
}

func (s *InitializingState) Phase() GamePhase {
	return PhaseInitializing
}

func (s *InitializingState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Entering Initializing state")
	return nil
}

func (s *InitializingState) Exit(ctx *GameContext) error {
	return nil
}

func (s *InitializingState) Validate(ctx *GameContext) error {
	return nil
}

// SetupState represents player and board configuration
type SetupState struct{}

func NewSetupState() State {
	return &SetupState{}
}

func (s *SetupState) Phase() GamePhase {
	return PhaseSetup
}

func (s *SetupState) Enter(ctx *GameContext) error {
	ctx.Logger.Debug().Msg("Setting up players")
	return nil
}

func (s *SetupState) Exit(ctx *GameContext) error {
	ctx.Logger.Debug().
		Int("player_count", ctx.PlayerCount).
		Msg("Setup complete")
	return nil
}

func (s *SetupState) Validate(ctx *GameContext) error {
	return nil
}

// RunningState represents active play
type RunningState struct{}

func NewRunningState() State {
	return &RunningState{}
}

func (s *RunningState) Phase() GamePhase {
	return PhaseRunning
}

func (s *RunningState) Enter(ctx *GameContext) error {
	ctx.StartTime = time.Now()
	ctx.Logger.Info().
		Time("start_time", ctx.StartTime).
		Msg("Game started")
	return nil
}

func (s *RunningState) Exit(ctx *GameContext) error {
	ctx.EndTime = time.Now()
	ctx.Logger.Debug().
		Dur("elapsed", ctx.GetElapsedTime()).
		Int("moves", ctx.Moves).
		Msg("Exiting running state")
	return nil
}

func (s *RunningState) Validate(ctx *GameContext) error {
	if !ctx.IsReady() {
		return fmt.Errorf("a game needs %d players, have %d", RequiredPlayers, ctx.PlayerCount)
	}
	return nil
}

// EndedState represents a game decided on the board
type EndedState struct{}

func NewEndedState() State {
	return &EndedState{}
}

func (s *EndedState) Phase() GamePhase {
	return PhaseEnded
}

func (s *EndedState) Enter(ctx *GameContext) error {
	ctx.Logger.Info().
		Str("result", ctx.Result.String()).
		Str("winner", ctx.Winner).
		Int("moves", ctx.Moves).
		Dur("game_duration", ctx.GetElapsedTime()).
		Msg("Game ended")
	return nil
}

func (s *EndedState) Exit(ctx *GameContext) error {
	return nil
}

func (s *EndedState) Validate(ctx *GameContext) error {
	if !ctx.Result.IsTerminal() {
		return errors.New("ended state requires a terminal result")
	}
	return nil
}

// AbortedState represents a game abandoned before a result
type AbortedState struct{}

func NewAbortedState() State {
	return &AbortedState{}
}

func (s *AbortedState) Phase() GamePhase {
	return PhaseAborted
}

func (s *AbortedState) Enter(ctx *GameContext) error {
	if ctx.EndTime.IsZero() {
		ctx.EndTime = time.Now()
	}
	ctx.Logger.Info().
		Int("moves", ctx.Moves).
		Msg("Game aborted")
	return nil
}

func (s *AbortedState) Exit(ctx *GameContext) error {
	return nil
}

func (s *AbortedState) Validate(ctx *GameContext) error {
	return nil
}

// ErrorState represents an error condition
type ErrorState struct{}

func NewErrorState() State {
	return &ErrorState{}
}

func (s *ErrorState) Phase() GamePhase {
	return PhaseError
}

func (s *ErrorState) Enter(ctx *GameContext) error {
	if ctx.EndTime.IsZero() {
		ctx.EndTime = time.Now()
	}
	ctx.Logger.Error().
		Err(ctx.Error).
		Msg("Game entered error state")
	return nil
}

func (s *ErrorState) Exit(ctx *GameContext) error {
	return nil
}

func (s *ErrorState) Validate(ctx *GameContext) error {
	if ctx.Error == nil {
		return errors.New("error state requires an error in context")
	}
	return nil
}
