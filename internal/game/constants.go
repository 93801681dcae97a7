package game

import (
	"github.com/mitchelldurbincs/pentago/internal/config"
	"github.com/mitchelldurbincs/pentago/internal/search"
	"github.com/rs/zerolog/log"
)

// Console text
const (
	WelcomeBanner = "-------------------\nWelcome to Pentago!\n-------------------"
	ExitCommand   = "exit"
	movePrompt    = "Input your move, %s (block/position block-to-rotate direction): "
	invalidMove   = "Invalid move.  "
)

// Search settings from the global configuration, used when a session or
// engine is built without explicit values.

func DefaultSearchDepth() int {
	return config.Get().Search.Depth
}

func DefaultSearchOptions() []search.Option {
	options, err := config.Get().SearchOptions()
	if err != nil {
		log.Warn().Err(err).Msg("Using default evaluator")
	}
	return options
}
