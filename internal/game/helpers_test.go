package game

import (
	"bytes"
	"strings"
	"sync"
	"testing"

	"github.com/mitchelldurbincs/pentago/internal/game/core"
	"github.com/mitchelldurbincs/pentago/internal/game/events"
	"github.com/mitchelldurbincs/pentago/internal/search"
	"github.com/mitchelldurbincs/pentago/internal/testutil"
	"github.com/rs/zerolog"
)

// Black to move wins with 2/2 and any rotation of block 3 or 4
var winInOneRows = []string{
	"bbbb..",
	"ww....",
	"ww....",
	"......",
	"......",
	"......",
}

// eventRecorder collects every event published on a bus
type eventRecorder struct {
	mu     sync.Mutex
	events []events.Event
}

func (r *eventRecorder) ID() string                 { return "recorder" }
func (r *eventRecorder) InterestedIn(_ string) bool { return true }

func (r *eventRecorder) HandleEvent(e events.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *eventRecorder) ofType(eventType string) []events.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []events.Event
	for _, e := range r.events {
		if e.Type() == eventType {
			out = append(out, e)
		}
	}
	return out
}

func newRecordedBus() (*events.EventBus, *eventRecorder) {
	bus := events.NewEventBusWithLogger(zerolog.Nop())
	rec := &eventRecorder{}
	bus.Subscribe(rec)
	return bus, rec
}

func newTestEngine(bus events.Publisher) *Engine {
	logger := testutil.NopLogger()
	return NewEngine(
		WithSearcher(search.NewSearcher(search.WithLogger(logger), search.WithMetrics())),
		WithPublisher(bus, "test-game"),
		WithLogger(logger),
	)
}

func newTestConsole(input string) (*Console, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return NewConsole(strings.NewReader(input), out), out
}

func human(name string, token core.Cell) core.PlayerConfig {
	return core.PlayerConfig{Name: name, Kind: core.Human, Token: token}
}

func newWinInOneBoard(t *testing.T) *core.Board {
	return testutil.Board(t, winInOneRows...)
}
