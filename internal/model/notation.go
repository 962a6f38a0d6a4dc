package model

import "fmt"

// getNotation renders fx in the history's algebraic-like form. promotion is
// empty unless the move promoted.
func getNotation(fx moveEffects, promotion PieceType) string {
	if fx.castle != nil {
		if fx.to.X > fx.from.X {
			return "O-O"
		}
		return "O-O-O"
	}
	pieceNotationPrefix := fx.piece.Type.getPieceNotation()
	pieceNotationCapture := ""
	if fx.captured != nil {
		pieceNotationCapture = "x"
	}
	pawnFileSpecifier := ""
	if fx.piece.Type == Pawn && fx.captured != nil {
		pawnFileSpecifier = fx.from.getFileNotation()
	}
	notation := fmt.Sprintf("%s%s%s%s", pieceNotationPrefix, pawnFileSpecifier, pieceNotationCapture, fx.to.getSquareNotation())
	if fx.enPassant {
		notation += " e.p."
	}
	if promotion != "" {
		notation += "=" + promotion.getPieceNotation()
	}
	return notation
}

func statusSuffix(s Status) string {
	switch s.Kind {
	case StatusCheckmate:
		return "#"
	case StatusCheck:
		return "+"
	}
	return ""
}
