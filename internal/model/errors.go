package model

import "errors"

var (
	ErrInvalidMove     = errors.New("invalid move")
	ErrOutOfBounds     = errors.New("square out of bounds")
	ErrMalformedRecord = errors.New("malformed record")
	ErrNoLegalMoves    = errors.New("no legal moves")
)
