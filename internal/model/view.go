package model

// GameView is a read-only copy of a game for the view layer.
type GameView struct {
	Board            Board             `json:"board"`
	ToMove           Color             `json:"toMove"`
	Status           Status            `json:"status"`
	IsCheck          bool              `json:"isCheck"`
	Phase            Phase             `json:"phase"`
	SelectedSquare   *Position         `json:"selectedSquare"`
	LegalMoves       []Position        `json:"legalMoves"`
	CastlingRights   CastlingRights    `json:"castlingRights"`
	EnPassantTarget  *Position         `json:"enPassantTarget"`
	CapturedPieces   CapturedPieces    `json:"capturedPieces"`
	MoveHistory      []string          `json:"moveHistory"`
	Clock            Clock             `json:"clock"`
	GameStarted      bool              `json:"gameStarted"`
	PendingPromotion *PendingPromotion `json:"pendingPromotion"`
	LastMove         *SimpleMove       `json:"lastMove"`
	CanUndo          bool              `json:"canUndo"`
	CanRedo          bool              `json:"canRedo"`
}

func (g *GameState) View() GameView {
	v := GameView{
		Board:            g.board,
		ToMove:           g.toMove,
		Status:           g.status,
		IsCheck:          IsInCheck(&g.board, g.toMove),
		Phase:            g.phase,
		SelectedSquare:   clonePosition(g.selected),
		LegalMoves:       []Position{},
		CastlingRights:   g.castling,
		EnPassantTarget:  clonePosition(g.enPassant),
		CapturedPieces:   g.captured.clone(),
		MoveHistory:      append(make([]string, 0, len(g.history)), g.history...),
		Clock:            g.clock,
		GameStarted:      g.started,
		PendingPromotion: g.Pending(),
		CanUndo:          g.CanUndo(),
		CanRedo:          g.CanRedo(),
	}
	if g.selected != nil {
		v.LegalMoves = g.LegalDestinations(*g.selected)
	}
	if g.lastMove != nil {
		lm := *g.lastMove
		v.LastMove = &lm
	}
	return v
}
