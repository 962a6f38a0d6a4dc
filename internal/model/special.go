package model

// moveEffects is everything a shape-legal move does to the position. The
// same value drives both the scratch-board simulation in the legality check
// and the real transition, so the two can never disagree.
type moveEffects struct {
	piece      Piece
	from       Position
	to         Position
	captured   *Piece
	capturedAt Position
	enPassant  bool
	castle     *CastleRookMove
	promotes   bool
	doubleStep bool
}

// resolveEffects classifies a move that already passed isShapeLegal.
func resolveEffects(b *Board, from, to Position, window *Position) moveEffects {
	piece, _ := b.At(from)
	fx := moveEffects{piece: piece, from: from, to: to}

	if target, ok := b.At(to); ok {
		fx.captured = &target
		fx.capturedAt = to
	}

	switch piece.Type {
	case Pawn:
		if fx.captured == nil && from.X != to.X && isEnPassantShape(piece.Color, from, to, window) {
			// the captured pawn sits on the window square, not the destination
			victim, _ := b.At(*window)
			fx.captured = &victim
			fx.capturedAt = *window
			fx.enPassant = true
		}
		fx.promotes = to.Y == piece.Color.promotionRank()
		fx.doubleStep = abs(to.Y-from.Y) == 2
	case King:
		if abs(to.X-from.X) == 2 {
			rm := castleRookMove(piece.Color, to)
			fx.castle = &rm
		}
	}
	return fx
}

// apply relocates the mover, removes any captured piece and moves the
// castling rook in one step. A promoting pawn lands as a pawn; its final
// kind is written by resolvePromotion.
func (fx moveEffects) apply(b *Board) {
	if fx.captured != nil {
		b.clear(fx.capturedAt)
	}
	b.clear(fx.from)
	b.set(fx.to, fx.piece)
	if fx.castle != nil {
		rook, _ := b.At(fx.castle.From)
		b.clear(fx.castle.From)
		b.set(fx.castle.To, rook)
	}
}

// updateRights applies the castling-right consequences of fx: a king move
// forfeits both sides, a rook leaving its original square forfeits that
// side, and a rook captured on its original square forfeits it for its owner.
func (fx moveEffects) updateRights(rights *CastlingRights) {
	switch fx.piece.Type {
	case King:
		rights.markKingMoved(fx.piece.Color)
	case Rook:
		rights.markRookSquare(fx.piece.Color, fx.from)
	}
	if fx.captured != nil && fx.captured.Type == Rook {
		rights.markRookSquare(fx.captured.Color, fx.capturedAt)
	}
}

// nextWindow is the en passant window that is open for the reply to fx.
func (fx moveEffects) nextWindow() *Position {
	if fx.piece.Type == Pawn && fx.doubleStep {
		to := fx.to
		return &to
	}
	return nil
}

var promotionChoices = map[PieceType]bool{
	Queen:  true,
	Rook:   true,
	Bishop: true,
	Knight: true,
}

func IsPromotionChoice(kind PieceType) bool {
	return promotionChoices[kind]
}
