package events

import (
	"time"
)

// Event is the base interface for all game events
type Event interface {
	// Type returns the event type as a string for filtering and logging
	Type() string
	// Timestamp returns when the event occurred
	Timestamp() time.Time
	// GameID returns the ID of the game this event belongs to
	GameID() string
}

// BaseEvent provides common fields for all events
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Game      string    `json:"game_id"`
}

func newBase(eventType, gameID string) BaseEvent {
	return BaseEvent{EventType: eventType, Time: time.Now(), Game: gameID}
}

// Type implements Event interface
func (e BaseEvent) Type() string {
	return e.EventType
}

// Timestamp implements Event interface
func (e BaseEvent) Timestamp() time.Time {
	return e.Time
}

// GameID implements Event interface
func (e BaseEvent) GameID() string {
	return e.Game
}

// EventHandler is a function that processes events
type EventHandler func(Event)

// Subscriber represents an entity that can receive events
type Subscriber interface {
	ID() string
	HandleEvent(Event)
	// InterestedIn returns true if the subscriber wants to receive this event type
	InterestedIn(eventType string) bool
}

// EventMetadata contains additional context for events
type EventMetadata struct {
	// Token of the player the event concerns, if any
	Token string `json:"token,omitempty"`
	// Turn is the 1-based move number
	Turn  int                    `json:"turn,omitempty"`
	Extra map[string]interface{} `json:"extra,omitempty"`
}

// Publisher is the interface for publishing events
type Publisher interface {
	Publish(Event)
}

// Bus is the main event bus interface
type Bus interface {
	Publisher
	Subscribe(Subscriber)
	Unsubscribe(subscriberID string)
	// SubscribeFunc adds a function handler for one event type and returns its handler ID
	SubscribeFunc(eventType string, handler EventHandler) string
	UnsubscribeFunc(handlerID string)
}
