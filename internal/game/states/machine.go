package states

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mitchelldurbincs/pentago/internal/game/events"
)

// ErrInvalidTransition is returned when the current phase does not allow the target
var ErrInvalidTransition = errors.New("invalid phase transition")

// State represents a session phase with lifecycle callbacks
type State interface {
	// Phase returns the GamePhase this state represents
	Phase() GamePhase

	// Enter is called when transitioning into this state
	Enter(ctx *GameContext) error

	// Exit is called when transitioning out of this state
	Exit(ctx *GameContext) error

	// Validate checks whether the context allows entering this state
	Validate(ctx *GameContext) error
}

// Transition represents a state transition in the history
type Transition struct {
	From      GamePhase
	To        GamePhase
	Timestamp time.Time
	Reason    string
}

// StateMachine manages session phase transitions and history
type StateMachine struct {
	mu           sync.RWMutex
	currentPhase GamePhase
	states       map[GamePhase]State
	context      *GameContext
	history      []Transition
	publisher    events.Publisher
}

// NewStateMachine creates a new state machine in PhaseInitializing.
// publisher may be nil.
func NewStateMachine(ctx *GameContext, publisher events.Publisher) *StateMachine {
	sm := &StateMachine{
		currentPhase: PhaseInitializing,
		states:       make(map[GamePhase]State),
		context:      ctx,
		history:      make([]Transition, 0, 8),
		publisher:    publisher,
	}

	for _, s := range []State{
		NewInitializingState(),
		NewSetupState(),
		NewRunningState(),
		NewEndedState(),
		NewAbortedState(),
		NewErrorState(),
	} {
		sm.states[s.Phase()] = s
	}

	return sm
}

// RegisterState replaces the implementation for a phase
func (sm *StateMachine) RegisterState(state State) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.states[state.Phase()] = state
}

// CurrentPhase returns the current phase
func (sm *StateMachine) CurrentPhase() GamePhase {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase
}

// TransitionTo attempts to transition to the specified phase
func (sm *StateMachine) TransitionTo(targetPhase GamePhase, reason string) error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.currentPhase.CanTransitionTo(targetPhase) {
		return fmt.Errorf("%w: %s to %s", ErrInvalidTransition, sm.currentPhase, targetPhase)
	}

	targetState, ok := sm.states[targetPhase]
	if !ok {
		return fmt.Errorf("no state implementation for phase %s", targetPhase)
	}
	if err := targetState.Validate(sm.context); err != nil {
		return fmt.Errorf("target state validation failed: %w", err)
	}

	if currentState, ok := sm.states[sm.currentPhase]; ok {
		if err := currentState.Exit(sm.context); err != nil {
			// The transition still goes ahead.
			sm.context.Logger.Error().
				Err(err).
				Str("from_phase", sm.currentPhase.String()).
				Str("to_phase", targetPhase.String()).
				Msg("Error exiting state")
		}
	}

	previousPhase := sm.currentPhase
	sm.currentPhase = targetPhase
	if err := targetState.Enter(sm.context); err != nil {
		sm.currentPhase = previousPhase
		return fmt.Errorf("failed to enter state %s: %w", targetPhase, err)
	}

	sm.history = append(sm.history, Transition{
		From:      previousPhase,
		To:        targetPhase,
		Timestamp: time.Now(),
		Reason:    reason,
	})

	if sm.publisher != nil {
		sm.publisher.Publish(events.NewStateTransitionEvent(
			sm.context.GameID,
			previousPhase.String(),
			targetPhase.String(),
			reason,
		))
	}

	sm.context.Logger.Debug().
		Str("from_phase", previousPhase.String()).
		Str("to_phase", targetPhase.String()).
		Str("reason", reason).
		Msg("State transition completed")

	return nil
}

// Fail records err in the context and moves to PhaseError. It returns the
// transition error if the current phase cannot fail, which only happens
// once the session is already finished.
func (sm *StateMachine) Fail(err error) error {
	sm.mu.Lock()
	sm.context.Error = err
	sm.mu.Unlock()
	return sm.TransitionTo(PhaseError, err.Error())
}

// GetHistory returns a copy of the transition history
func (sm *StateMachine) GetHistory() []Transition {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	history := make([]Transition, len(sm.history))
	copy(history, sm.history)
	return history
}

// GetContext returns the game context
func (sm *StateMachine) GetContext() *GameContext {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.context
}

// CanTransitionTo checks if a transition to the target phase is allowed
func (sm *StateMachine) CanTransitionTo(targetPhase GamePhase) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.currentPhase.CanTransitionTo(targetPhase)
}
