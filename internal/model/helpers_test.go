package model

import (
	"testing"
)

func mustPos(s string) Position {
	p, err := ParsePosition(s)
	if err != nil {
		panic(err)
	}
	return p
}

var symbolPieces = map[byte]PieceType{
	'k': King, 'q': Queen, 'r': Rook, 'b': Bishop, 'n': Knight, 'p': Pawn,
}

// customGame builds a game from placements such as "Ke1" (white king on e1)
// or "qd8" (black queen on d8). Castling rights start intact.
func customGame(t *testing.T, toMove Color, placements ...string) *GameState {
	t.Helper()
	g := NewGame(DefaultTimeControl)
	g.board = Board{}
	g.toMove = toMove
	for _, pl := range placements {
		if len(pl) != 3 {
			t.Fatalf("bad placement %q", pl)
		}
		color := Black
		sym := pl[0]
		if sym >= 'A' && sym <= 'Z' {
			color = White
			sym += 'a' - 'A'
		}
		kind, ok := symbolPieces[sym]
		if !ok {
			t.Fatalf("bad piece in %q", pl)
		}
		g.board.set(mustPos(pl[1:]), Piece{Type: kind, Color: color})
	}
	return g
}

// play applies moves written as "e2e4". A fifth character resolves a
// promotion: q, r, b or n.
func play(t *testing.T, g *GameState, moves ...string) MoveResult {
	t.Helper()
	var res MoveResult
	for _, m := range moves {
		var err error
		res, err = g.ApplyMove(mustPos(m[:2]), mustPos(m[2:4]))
		if err != nil {
			t.Fatalf("%s: %v", m, err)
		}
		if len(m) == 5 {
			res, err = g.ResolvePromotion(symbolPieces[m[4]])
			if err != nil {
				t.Fatalf("%s: %v", m, err)
			}
		}
	}
	return res
}

func containsPos(list []Position, p Position) bool {
	for _, q := range list {
		if q == p {
			return true
		}
	}
	return false
}
