package model

func (g *GameState) context() moveContext {
	return moveContext{castling: &g.castling, enPassant: g.enPassant}
}

// checkMove runs the full legality test for mover: geometry under the
// current rights and window, no capture of an own piece, and a simulation on
// a scratch board that must not leave mover's king attacked.
func (g *GameState) checkMove(from, to Position, mover Color) (moveEffects, error) {
	if !boundaryCheck(from) || !boundaryCheck(to) {
		return moveEffects{}, illegal(from, to, ReasonOutOfBounds)
	}
	piece, ok := g.board.At(from)
	if !ok {
		return moveEffects{}, illegal(from, to, ReasonNoPiece)
	}
	if piece.Color != mover {
		return moveEffects{}, illegal(from, to, ReasonWrongTurn)
	}
	if target, ok := g.board.At(to); ok && target.Color == mover {
		return moveEffects{}, illegal(from, to, ReasonOwnPiece)
	}
	if !isShapeLegal(&g.board, from, to, g.context()) {
		return moveEffects{}, illegal(from, to, ReasonShape)
	}

	fx := resolveEffects(&g.board, from, to, g.enPassant)
	scratch := g.board
	fx.apply(&scratch)
	if IsInCheck(&scratch, mover) {
		return moveEffects{}, illegal(from, to, ReasonKingExposed)
	}
	return fx, nil
}

// ValidateMove returns nil when the side to move may play from-to, or an
// *IllegalMoveError saying why not.
func (g *GameState) ValidateMove(from, to Position) error {
	_, err := g.checkMove(from, to, g.toMove)
	return err
}

func (g *GameState) IsLegal(from, to Position) bool {
	return g.ValidateMove(from, to) == nil
}

// Promotes reports whether from-to is a legal pawn move onto the last rank.
// The error is the one ValidateMove would return.
func (g *GameState) Promotes(from, to Position) (bool, error) {
	fx, err := g.checkMove(from, to, g.toMove)
	if err != nil {
		return false, err
	}
	return fx.promotes, nil
}

// LegalDestinations lists every square the piece on from can legally reach,
// scanning all 64 targets. It is empty for an empty square.
func (g *GameState) LegalDestinations(from Position) []Position {
	piece, ok := g.board.At(from)
	if !ok {
		return []Position{}
	}
	return g.legalDestinationsFor(from, piece.Color)
}

func (g *GameState) legalDestinationsFor(from Position, mover Color) []Position {
	moves := []Position{}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			to := Position{X: x, Y: y}
			if _, err := g.checkMove(from, to, mover); err == nil {
				moves = append(moves, to)
			}
		}
	}
	return moves
}

// LegalMoves enumerates every legal move for color.
func (g *GameState) LegalMoves(color Color) []SimpleMove {
	legalMoves := []SimpleMove{}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if pc := g.board[y][x]; pc.IsEmpty() || pc.Color != color {
				continue
			}
			from := Position{X: x, Y: y}
			for _, to := range g.legalDestinationsFor(from, color) {
				legalMoves = append(legalMoves, SimpleMove{From: from, To: to})
			}
		}
	}
	return legalMoves
}

func (g *GameState) hasLegalMove(color Color) bool {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if pc := g.board[y][x]; pc.IsEmpty() || pc.Color != color {
				continue
			}
			from := Position{X: x, Y: y}
			for ty := 0; ty < 8; ty++ {
				for tx := 0; tx < 8; tx++ {
					if _, err := g.checkMove(from, Position{X: tx, Y: ty}, color); err == nil {
						return true
					}
				}
			}
		}
	}
	return false
}
