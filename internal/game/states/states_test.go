package states

import (
	"errors"
	"testing"
	"time"

	"github.com/mitchelldurbincs/pentago/internal/game/rules"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestStateImplementations(t *testing.T) {
	logger := zerolog.Nop()

	t.Run("InitializingState", func(t *testing.T) {
		state := NewInitializingState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseInitializing, state.Phase())
		assert.NoError(t, state.Enter(ctx))
		assert.NoError(t, state.Exit(ctx))
		assert.NoError(t, state.Validate(ctx))
	})

	t.Run("SetupState", func(t *testing.T) {
		state := NewSetupState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseSetup, state.Phase())
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.NoError(t, state.Exit(ctx))
	})

	t.Run("RunningState", func(t *testing.T) {
		state := NewRunningState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseRunning, state.Phase())
		assert.Error(t, state.Validate(ctx))

		ctx.PlayerCount = 2
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.False(t, ctx.StartTime.IsZero())

		time.Sleep(5 * time.Millisecond)
		assert.NoError(t, state.Exit(ctx))
		assert.False(t, ctx.EndTime.IsZero())
		assert.Greater(t, ctx.GetElapsedTime(), time.Duration(0))
	})

	t.Run("EndedState", func(t *testing.T) {
		state := NewEndedState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseEnded, state.Phase())
		assert.Error(t, state.Validate(ctx))

		for _, r := range []rules.GameResult{rules.WinA, rules.WinB, rules.Draw} {
			ctx.Result = r
			assert.NoError(t, state.Validate(ctx), r.String())
		}
		assert.NoError(t, state.Enter(ctx))
	})

	t.Run("AbortedState", func(t *testing.T) {
		state := NewAbortedState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseAborted, state.Phase())
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.False(t, ctx.EndTime.IsZero())
	})

	t.Run("ErrorState", func(t *testing.T) {
		state := NewErrorState()
		ctx := NewGameContext("test", logger)

		assert.Equal(t, PhaseError, state.Phase())

		err := state.Validate(ctx)
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "requires an error")

		ctx.Error = errors.New("test error")
		assert.NoError(t, state.Validate(ctx))
		assert.NoError(t, state.Enter(ctx))
		assert.NoError(t, state.Exit(ctx))
	})
}
