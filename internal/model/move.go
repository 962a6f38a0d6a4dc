package model

import "fmt"

// MoveRequest is a move as submitted by a client, in algebraic squares.
// Promotion may accompany a pawn move to the last rank to resolve it in one
// step.
type MoveRequest struct {
	From      string    `json:"from"`
	To        string    `json:"to"`
	Promotion PieceType `json:"promotion,omitempty"`
}

func (m MoveRequest) Positions() (Position, Position, error) {
	from, err := ParsePosition(m.From)
	if err != nil {
		return Position{}, Position{}, fmt.Errorf("from: %w", err)
	}
	to, err := ParsePosition(m.To)
	if err != nil {
		return Position{}, Position{}, fmt.Errorf("to: %w", err)
	}
	return from, to, nil
}

type CastleRookMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}
