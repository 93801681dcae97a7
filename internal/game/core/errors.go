package core

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrCellOccupied      = errors.New("cell is occupied")
	ErrMalformedEncoding = errors.New("malformed board encoding")
	ErrMalformedMove     = errors.New("malformed move")
	ErrInvalidToken      = errors.New("invalid token")
	ErrInvalidQuadrant   = errors.New("invalid quadrant")
	ErrInvalidDirection  = errors.New("invalid direction")
)

// MoveError attaches the rejected move and token to an underlying error
type MoveError struct {
	Move  Move
	Token Cell
	Err   error
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("%s move %s: %v", e.Token, e.Move, e.Err)
}

func (e *MoveError) Unwrap() error {
	return e.Err
}

// WrapMoveError wraps err with move context. A nil err stays nil.
func WrapMoveError(m Move, token Cell, err error) error {
	if err == nil {
		return nil
	}
	return &MoveError{Move: m, Token: token, Err: err}
}
