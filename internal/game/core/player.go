package core

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidPlayerKind = errors.New("invalid player kind")
	ErrDuplicateToken    = errors.New("players must use distinct tokens")
	ErrEmptyPlayerName   = errors.New("player name is empty")
)

// PlayerKind says who picks a player's moves
type PlayerKind uint8

const (
	Human PlayerKind = iota
	Computer
	// Random plays a uniformly random legal move
	Random
)

func (k PlayerKind) String() string {
	switch k {
	case Human:
		return "human"
	case Computer:
		return "computer"
	case Random:
		return "random"
	default:
		return fmt.Sprintf("PlayerKind(%d)", uint8(k))
	}
}

// ParsePlayerKind accepts a kind name or its first letter, in any case
func ParsePlayerKind(s string) (PlayerKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "human", "h":
		return Human, nil
	case "computer", "c":
		return Computer, nil
	case "random", "r":
		return Random, nil
	default:
		return Human, fmt.Errorf("%w: %q", ErrInvalidPlayerKind, s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (k PlayerKind) MarshalText() ([]byte, error) {
	if k > Random {
		return nil, ErrInvalidPlayerKind
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (k *PlayerKind) UnmarshalText(text []byte) error {
	kind, err := ParsePlayerKind(string(text))
	if err != nil {
		return err
	}
	*k = kind
	return nil
}

// PlayerConfig describes one seat at the board
type PlayerConfig struct {
	Name  string     `mapstructure:"name"`
	Kind  PlayerKind `mapstructure:"kind"`
	Token Cell       `mapstructure:"token"`
}

func (p PlayerConfig) String() string {
	return fmt.Sprintf("Player %s: type=%s, plays %s tokens", p.Name, p.Kind, p.Token.ColorName())
}

// Validate checks a single player entry
func (p PlayerConfig) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return ErrEmptyPlayerName
	}
	if p.Kind > Random {
		return fmt.Errorf("%w: %d", ErrInvalidPlayerKind, p.Kind)
	}
	if !p.Token.IsToken() {
		return fmt.Errorf("player %s: %w", p.Name, ErrInvalidToken)
	}
	return nil
}

// ValidatePlayers checks both entries and that their tokens differ
func ValidatePlayers(players [2]PlayerConfig) error {
	for i, p := range players {
		if err := p.Validate(); err != nil {
			return fmt.Errorf("player %d: %w", i+1, err)
		}
	}
	if players[0].Token == players[1].Token {
		return fmt.Errorf("%w: both play %s", ErrDuplicateToken, players[0].Token.ColorName())
	}
	return nil
}
