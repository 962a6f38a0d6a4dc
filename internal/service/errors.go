package service

import "errors"

var (
	ErrGameNotFound  = errors.New("game not found")
	ErrNoSavedGame   = errors.New("no saved game")
	ErrSessionClosed = errors.New("session closed")
	ErrInvalidSquare = errors.New("invalid square")
)
