package events

import (
	"time"

	"github.com/mitchelldurbincs/pentago/internal/game/core"
	"github.com/mitchelldurbincs/pentago/internal/game/rules"
)

// Event type constants
const (
	TypeGameStarted     = "game.started"
	TypeGameEnded       = "game.ended"
	TypeTurnStarted     = "turn.started"
	TypeMoveApplied     = "move.applied"
	TypeMoveRejected    = "move.rejected"
	TypeMoveComputed    = "move.computed"
	TypeStateTransition = "state.transition"
)

// GameStartedEvent is published when a session starts playing
type GameStartedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Players  []string
	Board    string
}

// NewGameStartedEvent creates a new GameStartedEvent. board is the encoding
// of the starting position.
func NewGameStartedEvent(gameID string, players []string, board string) *GameStartedEvent {
	return &GameStartedEvent{
		BaseEvent: newBase(TypeGameStarted, gameID),
		Players:   players,
		Board:     board,
	}
}

// GameEndedEvent is published when a game reaches a terminal result or is abandoned
type GameEndedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Result   rules.GameResult
	// Winner is the winning player's name, empty for draws and aborted games
	Winner   string
	Duration time.Duration
	Moves    int
	Aborted  bool
}

// NewGameEndedEvent creates a new GameEndedEvent
func NewGameEndedEvent(gameID string, result rules.GameResult, winner string, duration time.Duration, moves int) *GameEndedEvent {
	return &GameEndedEvent{
		BaseEvent: newBase(TypeGameEnded, gameID),
		Result:    result,
		Winner:    winner,
		Duration:  duration,
		Moves:     moves,
		Aborted:   !result.IsTerminal(),
	}
}

// TurnStartedEvent is published before a player is asked for a move
type TurnStartedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Player   string
}

// NewTurnStartedEvent creates a new TurnStartedEvent
func NewTurnStartedEvent(gameID, player string, token core.Cell, turn int) *TurnStartedEvent {
	return &TurnStartedEvent{
		BaseEvent: newBase(TypeTurnStarted, gameID),
		Metadata:  EventMetadata{Token: token.String(), Turn: turn},
		Player:    player,
	}
}

// MoveAppliedEvent is published after a move has changed the board
type MoveAppliedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Move     core.Move
	Token    core.Cell
	// Board is the encoding of the position after the move
	Board string
}

// NewMoveAppliedEvent creates a new MoveAppliedEvent
func NewMoveAppliedEvent(gameID string, m core.Move, token core.Cell, board string, turn int) *MoveAppliedEvent {
	return &MoveAppliedEvent{
		BaseEvent: newBase(TypeMoveApplied, gameID),
		Metadata:  EventMetadata{Token: token.String(), Turn: turn},
		Move:      m,
		Token:     token,
		Board:     board,
	}
}

// MoveRejectedEvent is published when a submitted move fails validation
type MoveRejectedEvent struct {
	BaseEvent
	Metadata EventMetadata
	Input    string
	Reason   string
}

// NewMoveRejectedEvent creates a new MoveRejectedEvent. input is what the
// player entered, which may not parse as a move at all.
func NewMoveRejectedEvent(gameID, input string, token core.Cell, reason error) *MoveRejectedEvent {
	return &MoveRejectedEvent{
		BaseEvent: newBase(TypeMoveRejected, gameID),
		Metadata:  EventMetadata{Token: token.String()},
		Input:     input,
		Reason:    reason.Error(),
	}
}

// MoveComputedEvent is published when the search picks a move
type MoveComputedEvent struct {
	BaseEvent
	Metadata  EventMetadata
	Move      core.Move
	Token     core.Cell
	Score     int
	Depth     int
	Nodes     int64
	Elapsed   time.Duration
	Completed bool
}

// NewMoveComputedEvent creates a new MoveComputedEvent
func NewMoveComputedEvent(gameID string, m core.Move, token core.Cell, score, depth int, nodes int64, elapsed time.Duration, completed bool) *MoveComputedEvent {
	return &MoveComputedEvent{
		BaseEvent: newBase(TypeMoveComputed, gameID),
		Metadata:  EventMetadata{Token: token.String()},
		Move:      m,
		Token:     token,
		Score:     score,
		Depth:     depth,
		Nodes:     nodes,
		Elapsed:   elapsed,
		Completed: completed,
	}
}

// StateTransitionEvent is published when the session changes phase
type StateTransitionEvent struct {
	BaseEvent
	FromPhase string
	ToPhase   string
	Reason    string
}

// NewStateTransitionEvent creates a new StateTransitionEvent
func NewStateTransitionEvent(gameID, fromPhase, toPhase, reason string) *StateTransitionEvent {
	return &StateTransitionEvent{
		BaseEvent: newBase(TypeStateTransition, gameID),
		FromPhase: fromPhase,
		ToPhase:   toPhase,
		Reason:    reason,
	}
}
