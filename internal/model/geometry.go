package model

// moveContext carries the state outside the board that pawn and king
// geometry depends on. The zero value disables castling and en passant,
// which is what attack detection wants.
type moveContext struct {
	castling  *CastlingRights
	enPassant *Position
}

// isShapeLegal reports whether the piece on from may travel to to by its
// movement rules on b. It never mutates b and ignores check, except for the
// attacked-square conditions that are part of castling itself. Capturing a
// friendly piece is rejected by the caller.
func isShapeLegal(b *Board, from, to Position, ctx moveContext) bool {
	if !boundaryCheck(from) || !boundaryCheck(to) || from == to {
		return false
	}
	piece, ok := b.At(from)
	if !ok {
		return false
	}
	switch piece.Type {
	case Pawn:
		return isPawnShape(b, piece.Color, from, to, ctx.enPassant)
	case Knight:
		return isKnightShape(from, to)
	case Bishop:
		return isDiagonal(from, to) && isPathClear(b, from, to)
	case Rook:
		return isStraight(from, to) && isPathClear(b, from, to)
	case Queen:
		return (isDiagonal(from, to) || isStraight(from, to)) && isPathClear(b, from, to)
	case King:
		if abs(to.X-from.X) <= 1 && abs(to.Y-from.Y) <= 1 {
			return true
		}
		return ctx.castling != nil && isCastleShape(b, piece.Color, from, to, *ctx.castling)
	}
	return false
}

func isPawnShape(b *Board, color Color, from, to Position, window *Position) bool {
	dir := color.forward()
	dx := to.X - from.X
	dy := to.Y - from.Y
	_, occupied := b.At(to)

	if dx == 0 {
		if occupied {
			return false
		}
		if dy == dir {
			return true
		}
		// both the skipped square and the destination must be empty
		mid := Position{X: from.X, Y: from.Y + dir}
		_, blocked := b.At(mid)
		return dy == 2*dir && from.Y == color.pawnStartRank() && !blocked
	}

	if abs(dx) != 1 || dy != dir {
		return false
	}
	if target, ok := b.At(to); ok {
		return target.Color != color
	}
	return isEnPassantShape(color, from, to, window)
}

// isEnPassantShape checks the en passant window: the window holds the square
// of the pawn that just advanced two squares.
func isEnPassantShape(color Color, from, to Position, window *Position) bool {
	if window == nil {
		return false
	}
	return from.Y == color.enPassantRank() &&
		abs(from.X-window.X) == 1 &&
		to.X == window.X &&
		to.Y == window.Y+color.forward()
}

func isKnightShape(from, to Position) bool {
	dx, dy := abs(to.X-from.X), abs(to.Y-from.Y)
	return (dx == 1 && dy == 2) || (dx == 2 && dy == 1)
}

func isDiagonal(from, to Position) bool {
	return abs(to.X-from.X) == abs(to.Y-from.Y)
}

func isStraight(from, to Position) bool {
	return from.X == to.X || from.Y == to.Y
}

// isPathClear walks the line between from and to, exclusive of both ends.
func isPathClear(b *Board, from, to Position) bool {
	step := Position{X: sign(to.X - from.X), Y: sign(to.Y - from.Y)}
	cur := Position{X: from.X + step.X, Y: from.Y + step.Y}
	for cur != to {
		if _, ok := b.At(cur); ok {
			return false
		}
		cur = Position{X: cur.X + step.X, Y: cur.Y + step.Y}
	}
	return true
}

// isCastleShape covers the two-file king move: rights intact, king and rook
// on their original squares, every square between them empty, and the
// king's start, crossing and destination squares not attacked.
func isCastleShape(b *Board, color Color, from, to Position, rights CastlingRights) bool {
	if from != kingHome(color) || to.Y != from.Y || abs(to.X-from.X) != 2 {
		return false
	}
	kingside := to.X > from.X
	if !rights.CanCastle(color, kingside) {
		return false
	}
	rookMove := castleRookMove(color, to)
	rook, ok := b.At(rookMove.From)
	if !ok || rook.Type != Rook || rook.Color != color {
		return false
	}
	if !isPathClear(b, from, rookMove.From) {
		return false
	}
	enemy := color.Opposite()
	step := sign(to.X - from.X)
	for x := from.X; x != to.X+step; x += step {
		if isSquareAttacked(b, enemy, Position{X: x, Y: from.Y}) {
			return false
		}
	}
	return true
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}

func sign(x int) int {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}
