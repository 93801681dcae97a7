package subscribers

import (
	"encoding/json"

	"github.com/mitchelldurbincs/pentago/internal/game/events"
	"github.com/rs/zerolog"
)

// LoggerSubscriber logs events to structured logs
type LoggerSubscriber struct {
	id              string
	logger          zerolog.Logger
	logLevel        zerolog.Level
	eventTypeFilter map[string]bool // If non-nil, only log these event types
	devMode         bool            // If true, log full event details
}

// NewLoggerSubscriber creates a new logger subscriber
func NewLoggerSubscriber(id string, logger zerolog.Logger, logLevel zerolog.Level) *LoggerSubscriber {
	return &LoggerSubscriber{
		id:       id,
		logger:   logger.With().Str("subscriber", "event_logger").Logger(),
		logLevel: logLevel,
	}
}

// ID returns the subscriber's unique identifier
func (ls *LoggerSubscriber) ID() string {
	return ls.id
}

// SetEventFilter sets which event types to log (nil means log all)
func (ls *LoggerSubscriber) SetEventFilter(eventTypes []string) {
	if len(eventTypes) == 0 {
		ls.eventTypeFilter = nil
		return
	}

	ls.eventTypeFilter = make(map[string]bool, len(eventTypes))
	for _, eventType := range eventTypes {
		ls.eventTypeFilter[eventType] = true
	}
}

// SetDevMode enables or disables logging of the full event payload
func (ls *LoggerSubscriber) SetDevMode(enabled bool) {
	ls.devMode = enabled
}

// InterestedIn returns true if the subscriber wants to receive this event type
func (ls *LoggerSubscriber) InterestedIn(eventType string) bool {
	if ls.eventTypeFilter == nil {
		return true
	}
	return ls.eventTypeFilter[eventType]
}

// HandleEvent processes an event by logging it
func (ls *LoggerSubscriber) HandleEvent(event events.Event) {
	logEvent := ls.logger.WithLevel(ls.level()).
		Str("event_type", event.Type()).
		Str("game_id", event.GameID()).
		Time("timestamp", event.Timestamp())

	switch e := event.(type) {
	case *events.GameStartedEvent:
		logEvent.
			Strs("players", e.Players).
			Str("board", e.Board)

	case *events.GameEndedEvent:
		logEvent.
			Str("result", e.Result.String()).
			Str("winner", e.Winner).
			Dur("duration", e.Duration).
			Int("moves", e.Moves).
			Bool("aborted", e.Aborted)

	case *events.TurnStartedEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("player", e.Player).
			Str("token", e.Metadata.Token)

	case *events.MoveAppliedEvent:
		logEvent.
			Int("turn", e.Metadata.Turn).
			Str("move", e.Move.String()).
			Str("token", e.Token.String()).
			Str("board", e.Board)

	case *events.MoveRejectedEvent:
		logEvent.
			Str("input", e.Input).
			Str("token", e.Metadata.Token).
			Str("reason", e.Reason)

	case *events.MoveComputedEvent:
		logEvent.
			Str("move", e.Move.String()).
			Str("token", e.Token.String()).
			Int("score", e.Score).
			Int("depth", e.Depth).
			Int64("nodes", e.Nodes).
			Dur("elapsed", e.Elapsed).
			Bool("completed", e.Completed)

	case *events.StateTransitionEvent:
		logEvent.
			Str("from", e.FromPhase).
			Str("to", e.ToPhase).
			Str("reason", e.Reason)
	}

	if ls.devMode {
		if jsonData, err := json.Marshal(event); err == nil {
			logEvent.RawJSON("event_data", jsonData)
		}
	}

	logEvent.Msg("Game event")
}

func (ls *LoggerSubscriber) level() zerolog.Level {
	switch ls.logLevel {
	case zerolog.DebugLevel, zerolog.InfoLevel, zerolog.WarnLevel, zerolog.ErrorLevel:
		return ls.logLevel
	default:
		return zerolog.InfoLevel
	}
}
