package model

type StatusKind string

const (
	StatusNormal               StatusKind = "normal"
	StatusCheck                StatusKind = "check"
	StatusCheckmate            StatusKind = "checkmate"
	StatusStalemate            StatusKind = "stalemate"
	StatusInsufficientMaterial StatusKind = "draw_insufficient_material"
	StatusRepetition           StatusKind = "draw_repetition"
)

// Status classifies the position for the side to move. Winner is set only
// for checkmate.
type Status struct {
	Kind   StatusKind `json:"kind"`
	Winner Color      `json:"winner,omitempty"`
}

func (s Status) IsTerminal() bool {
	switch s.Kind {
	case StatusCheckmate, StatusStalemate, StatusInsufficientMaterial, StatusRepetition:
		return true
	}
	return false
}

func (s Status) IsDraw() bool {
	switch s.Kind {
	case StatusStalemate, StatusInsufficientMaterial, StatusRepetition:
		return true
	}
	return false
}

func (s Status) isValid() bool {
	switch s.Kind {
	case StatusNormal, StatusCheck, StatusStalemate, StatusInsufficientMaterial, StatusRepetition:
		return s.Winner == ""
	case StatusCheckmate:
		return s.Winner.isValid()
	}
	return false
}

func (s Status) String() string {
	if s.Kind == StatusCheckmate {
		return string(s.Kind) + " (" + string(s.Winner) + " wins)"
	}
	return string(s.Kind)
}

// evaluate classifies the position for color. The first matching condition
// wins: checkmate, stalemate, insufficient material, repetition, check.
func (g *GameState) evaluate(color Color) Status {
	inCheck := IsInCheck(&g.board, color)
	hasMove := g.hasLegalMove(color)
	switch {
	case inCheck && !hasMove:
		return Status{Kind: StatusCheckmate, Winner: color.Opposite()}
	case !hasMove:
		return Status{Kind: StatusStalemate}
	case isInsufficientMaterial(&g.board):
		return Status{Kind: StatusInsufficientMaterial}
	case g.IsThreefoldRepetition():
		return Status{Kind: StatusRepetition}
	case inCheck:
		return Status{Kind: StatusCheck}
	}
	return Status{Kind: StatusNormal}
}

func (g *GameState) IsCheckmate(color Color) bool {
	return IsInCheck(&g.board, color) && !g.hasLegalMove(color)
}

func (g *GameState) IsStalemate(color Color) bool {
	return !IsInCheck(&g.board, color) && !g.hasLegalMove(color)
}

func (g *GameState) IsInsufficientMaterial() bool {
	return isInsufficientMaterial(&g.board)
}

// IsThreefoldRepetition counts the current piece placement in the position
// log. Side to move, castling rights and en passant availability are not
// part of the key.
func (g *GameState) IsThreefoldRepetition() bool {
	key := g.board.Key()
	count := 0
	for _, pos := range g.positions {
		if pos == key {
			count++
		}
	}
	return count >= 3
}

// isInsufficientMaterial accepts only bare kings, or bare kings plus a single
// minor piece on one side. Anything else is treated as mating material.
func isInsufficientMaterial(b *Board) bool {
	minors := map[Color]int{}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			switch b[y][x].Type {
			case Pawn, Rook, Queen:
				return false
			case Knight, Bishop:
				minors[b[y][x].Color]++
			}
		}
	}
	return minors[White]+minors[Black] <= 1
}
