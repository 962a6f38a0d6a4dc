package model

// IsInCheck reports whether color's king is attacked on b. Whose turn it is
// does not matter.
func IsInCheck(b *Board, color Color) bool {
	return isSquareAttacked(b, color.Opposite(), b.findKing(color))
}

// isSquareAttacked scans every piece of attackingColor and asks whether it
// could capture on target, whether or not target is occupied.
func isSquareAttacked(b *Board, attackingColor Color, target Position) bool {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			pc := b[y][x]
			if pc.IsEmpty() || pc.Color != attackingColor {
				continue
			}
			if attacks(b, pc, Position{X: x, Y: y}, target) {
				return true
			}
		}
	}
	return false
}

func attacks(b *Board, pc Piece, from, target Position) bool {
	switch pc.Type {
	case Pawn:
		// pawns attack diagonally even onto empty squares
		return target.Y-from.Y == pc.Color.forward() && abs(target.X-from.X) == 1
	case King:
		return from != target && abs(target.X-from.X) <= 1 && abs(target.Y-from.Y) <= 1
	default:
		return isShapeLegal(b, from, target, moveContext{})
	}
}
