package model

import (
	"errors"
	"fmt"
)

var (
	ErrIllegalMove        = errors.New("illegal move")
	ErrInvalidPromotion   = errors.New("invalid promotion choice")
	ErrPromotionPending   = errors.New("promotion pending")
	ErrNoPromotionPending = errors.New("no promotion pending")
	ErrCorruptSnapshot    = errors.New("corrupt snapshot")
)

type IllegalReason string

const (
	ReasonOutOfBounds IllegalReason = "out of bounds"
	ReasonNoPiece     IllegalReason = "no piece at from square"
	ReasonWrongTurn   IllegalReason = "not your turn"
	ReasonOwnPiece    IllegalReason = "destination holds own piece"
	ReasonShape       IllegalReason = "piece cannot move there"
	ReasonKingExposed IllegalReason = "move leaves king in check"
)

// IllegalMoveError describes a rejected transition. The state it was
// attempted against is left unchanged.
type IllegalMoveError struct {
	From   Position
	To     Position
	Reason IllegalReason
}

func (e *IllegalMoveError) Error() string {
	return fmt.Sprintf("illegal move %s-%s: %s", e.From, e.To, e.Reason)
}

func (e *IllegalMoveError) Unwrap() error {
	return ErrIllegalMove
}

func illegal(from, to Position, reason IllegalReason) error {
	return &IllegalMoveError{From: from, To: to, Reason: reason}
}
