package core

import (
	"fmt"
	"strings"
)

// Cell is the content of one board square
type Cell uint8

const (
	Empty Cell = iota
	TokenA
	TokenB
)

// Encoding symbols used by ParseBoard and Board.String
const (
	EmptySymbol  = '.'
	TokenASymbol = 'b'
	TokenBSymbol = 'w'
)

// IsToken reports whether the cell holds a player's token
func (c Cell) IsToken() bool {
	return c == TokenA || c == TokenB
}

// Opponent returns the other player's token. Empty has no opponent.
func (c Cell) Opponent() Cell {
	switch c {
	case TokenA:
		return TokenB
	case TokenB:
		return TokenA
	default:
		return Empty
	}
}

// Symbol returns the single character used in the board encoding
func (c Cell) Symbol() byte {
	switch c {
	case TokenA:
		return TokenASymbol
	case TokenB:
		return TokenBSymbol
	default:
		return EmptySymbol
	}
}

// ColorName is the marble colour shown to players
func (c Cell) ColorName() string {
	switch c {
	case TokenA:
		return "Black"
	case TokenB:
		return "White"
	default:
		return "Empty"
	}
}

func (c Cell) String() string {
	switch c {
	case Empty:
		return "empty"
	case TokenA:
		return "black"
	case TokenB:
		return "white"
	default:
		return fmt.Sprintf("Cell(%d)", uint8(c))
	}
}

// CellFromSymbol decodes one encoding character. Token symbols are case-insensitive.
func CellFromSymbol(ch byte) (Cell, bool) {
	switch ch {
	case EmptySymbol:
		return Empty, true
	case TokenASymbol, 'B':
		return TokenA, true
	case TokenBSymbol, 'W':
		return TokenB, true
	default:
		return Empty, false
	}
}

// ParseToken accepts "b", "black", "w" or "white" in any case
func ParseToken(s string) (Cell, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "b", "black":
		return TokenA, nil
	case "w", "white":
		return TokenB, nil
	default:
		return Empty, fmt.Errorf("%w: %q", ErrInvalidToken, s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (c Cell) MarshalText() ([]byte, error) {
	if !c.IsToken() {
		return nil, ErrInvalidToken
	}
	return []byte{c.Symbol()}, nil
}

// UnmarshalText implements encoding.TextUnmarshaler so config files can name tokens
func (c *Cell) UnmarshalText(text []byte) error {
	token, err := ParseToken(string(text))
	if err != nil {
		return err
	}
	*c = token
	return nil
}
