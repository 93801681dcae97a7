package states

import (
	"time"

	"github.com/mitchelldurbincs/pentago/internal/game/rules"
	"github.com/rs/zerolog"
)

// RequiredPlayers is the number of players a session needs to run
const RequiredPlayers = 2

// GameContext provides session information to states for making decisions
type GameContext struct {
	// GameID uniquely identifies this session
	GameID string

	Logger zerolog.Logger

	// PlayerCount is the number of configured players
	PlayerCount int

	// StartTime is when PhaseRunning was entered
	StartTime time.Time

	// EndTime is when a terminal phase was entered
	EndTime time.Time

	// Moves counts moves applied so far
	Moves int

	// Result is the adjudicated outcome once the board is terminal
	Result rules.GameResult

	// Winner is the winning player's name, empty on a draw
	Winner string

	// Error holds any error that caused transition to PhaseError
	Error error

	Metadata map[string]interface{}
}

// NewGameContext creates a new game context
func NewGameContext(gameID string, logger zerolog.Logger) *GameContext {
	return &GameContext{
		GameID:   gameID,
		Logger:   logger.With().Str("game_id", gameID).Logger(),
		Result:   rules.InProgress,
		Metadata: make(map[string]interface{}),
	}
}

// IsReady returns true if the session has exactly the players it needs
func (gc *GameContext) IsReady() bool {
	return gc.PlayerCount == RequiredPlayers
}

// GetElapsedTime returns the time spent in PhaseRunning so far, or in total
// once the session has finished
func (gc *GameContext) GetElapsedTime() time.Duration {
	if gc.StartTime.IsZero() {
		return 0
	}
	if !gc.EndTime.IsZero() {
		return gc.EndTime.Sub(gc.StartTime)
	}
	return time.Since(gc.StartTime)
}

// SetMetadata stores custom data for states
func (gc *GameContext) SetMetadata(key string, value interface{}) {
	gc.Metadata[key] = value
}

// GetMetadata retrieves custom data stored by states
func (gc *GameContext) GetMetadata(key string) (interface{}, bool) {
	val, exists := gc.Metadata[key]
	return val, exists
}
