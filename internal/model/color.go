package model

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

func (c Color) Opposite() Color {
	if c == White {
		return Black
	}
	return White
}

func (c Color) isValid() bool {
	return c == White || c == Black
}

// forward is the rank-index step of this color's pawns.
func (c Color) forward() int {
	if c == White {
		return -1
	}
	return 1
}

func (c Color) homeRank() int {
	if c == White {
		return 7
	}
	return 0
}

func (c Color) pawnStartRank() int {
	if c == White {
		return 6
	}
	return 1
}

func (c Color) promotionRank() int {
	if c == White {
		return 0
	}
	return 7
}

// enPassantRank is the rank a pawn must stand on to capture en passant.
func (c Color) enPassantRank() int {
	if c == White {
		return 3
	}
	return 4
}
