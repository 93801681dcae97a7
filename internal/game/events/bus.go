package events

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

type funcHandler struct {
	id      string
	handler EventHandler
}

// EventBus is a synchronous event bus implementation. Handlers run on the
// publisher's goroutine in subscription order.
type EventBus struct {
	subscribers  map[string]Subscriber
	order        []string
	funcHandlers map[string][]funcHandler
	nextHandler  int
	mu           sync.RWMutex
	logger       zerolog.Logger
}

var _ Bus = (*EventBus)(nil)

// NewEventBus creates a new event bus instance
func NewEventBus() *EventBus {
	return NewEventBusWithLogger(log.Logger)
}

// NewEventBusWithLogger creates an event bus that logs through logger
func NewEventBusWithLogger(logger zerolog.Logger) *EventBus {
	return &EventBus{
		subscribers:  make(map[string]Subscriber),
		funcHandlers: make(map[string][]funcHandler),
		logger:       logger.With().Str("component", "event_bus").Logger(),
	}
}

// Subscribe adds a subscriber; a subscriber with the same ID is replaced
func (eb *EventBus) Subscribe(subscriber Subscriber) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if _, exists := eb.subscribers[subscriber.ID()]; !exists {
		eb.order = append(eb.order, subscriber.ID())
	}
	eb.subscribers[subscriber.ID()] = subscriber
	eb.logger.Debug().
		Str("subscriber_id", subscriber.ID()).
		Msg("Subscriber added to event bus")
}

// Unsubscribe removes a subscriber from the event bus
func (eb *EventBus) Unsubscribe(subscriberID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	if _, exists := eb.subscribers[subscriberID]; !exists {
		return
	}
	delete(eb.subscribers, subscriberID)
	for i, id := range eb.order {
		if id == subscriberID {
			eb.order = append(eb.order[:i], eb.order[i+1:]...)
			break
		}
	}
	eb.logger.Debug().
		Str("subscriber_id", subscriberID).
		Msg("Subscriber removed from event bus")
}

// SubscribeFunc adds a function handler for specific event types
func (eb *EventBus) SubscribeFunc(eventType string, handler EventHandler) string {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	eb.nextHandler++
	handlerID := fmt.Sprintf("%s#%d", eventType, eb.nextHandler)
	eb.funcHandlers[eventType] = append(eb.funcHandlers[eventType], funcHandler{id: handlerID, handler: handler})
	eb.logger.Debug().
		Str("event_type", eventType).
		Str("handler_id", handlerID).
		Msg("Function handler added to event bus")

	return handlerID
}

// UnsubscribeFunc removes a function handler by the ID SubscribeFunc returned
func (eb *EventBus) UnsubscribeFunc(handlerID string) {
	eb.mu.Lock()
	defer eb.mu.Unlock()

	for eventType, handlers := range eb.funcHandlers {
		for i, h := range handlers {
			if h.id == handlerID {
				eb.funcHandlers[eventType] = append(handlers[:i], handlers[i+1:]...)
				return
			}
		}
	}
}

// Publish sends an event to all interested subscribers synchronously.
// A panicking handler is logged and does not stop delivery to the others.
func (eb *EventBus) Publish(event Event) {
	eb.mu.RLock()
	defer eb.mu.RUnlock()

	eventType := event.Type()

	eb.logger.Debug().
		Str("event_type", eventType).
		Str("game_id", event.GameID()).
		Msg("Publishing event")

	for _, id := range eb.order {
		subscriber := eb.subscribers[id]
		if !subscriber.InterestedIn(eventType) {
			continue
		}
		eb.deliver(eventType, id, func() { subscriber.HandleEvent(event) })
	}

	for _, h := range eb.funcHandlers[eventType] {
		eb.deliver(eventType, h.id, func() { h.handler(event) })
	}
}

func (eb *EventBus) deliver(eventType, handlerID string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			eb.logger.Error().
				Str("handler_id", handlerID).
				Str("event_type", eventType).
				Interface("panic", r).
				Msg("Event handler panicked")
		}
	}()
	fn()
}

// GetSubscriberCount returns the number of subscribers for debugging
func (eb *EventBus) GetSubscriberCount() int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.subscribers)
}

// GetFuncHandlerCount returns the number of function handlers for a specific event type
func (eb *EventBus) GetFuncHandlerCount(eventType string) int {
	eb.mu.RLock()
	defer eb.mu.RUnlock()
	return len(eb.funcHandlers[eventType])
}
