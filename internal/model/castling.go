package model

// CastlingRights records permanent loss of castling eligibility. Flags only
// ever go from false to true; undo restores an earlier copy.
type CastlingRights struct {
	WhiteKingMoved          bool `json:"whiteKingMoved"`
	WhiteKingsideRookMoved  bool `json:"whiteKingsideRookMoved"`
	WhiteQueensideRookMoved bool `json:"whiteQueensideRookMoved"`
	BlackKingMoved          bool `json:"blackKingMoved"`
	BlackKingsideRookMoved  bool `json:"blackKingsideRookMoved"`
	BlackQueensideRookMoved bool `json:"blackQueensideRookMoved"`
}

func (c CastlingRights) CanCastle(color Color, kingside bool) bool {
	if color == White {
		if c.WhiteKingMoved {
			return false
		}
		if kingside {
			return !c.WhiteKingsideRookMoved
		}
		return !c.WhiteQueensideRookMoved
	}
	if c.BlackKingMoved {
		return false
	}
	if kingside {
		return !c.BlackKingsideRookMoved
	}
	return !c.BlackQueensideRookMoved
}

func (c *CastlingRights) markKingMoved(color Color) {
	if color == White {
		c.WhiteKingMoved = true
	} else {
		c.BlackKingMoved = true
	}
}

// markRookSquare flags the rook of color whose original square is sq. It is
// called both when a rook leaves sq and when anything is captured on sq.
func (c *CastlingRights) markRookSquare(color Color, sq Position) {
	if sq.Y != color.homeRank() {
		return
	}
	switch {
	case sq.X == 7 && color == White:
		c.WhiteKingsideRookMoved = true
	case sq.X == 0 && color == White:
		c.WhiteQueensideRookMoved = true
	case sq.X == 7 && color == Black:
		c.BlackKingsideRookMoved = true
	case sq.X == 0 && color == Black:
		c.BlackQueensideRookMoved = true
	}
}

func kingHome(color Color) Position {
	return Position{X: 4, Y: color.homeRank()}
}

// castleRookMove is the rook relocation that accompanies a king moving from
// its home square to to.
func castleRookMove(color Color, to Position) CastleRookMove {
	rank := color.homeRank()
	if to.X > 4 {
		return CastleRookMove{From: Position{X: 7, Y: rank}, To: Position{X: 5, Y: rank}}
	}
	return CastleRookMove{From: Position{X: 0, Y: rank}, To: Position{X: 3, Y: rank}}
}
