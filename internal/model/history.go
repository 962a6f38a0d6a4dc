package model

import "strings"

// CapturedPieces lists, per capturing side, the pieces it has taken in
// capture order.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]Piece, 0),
		Black: make([]Piece, 0),
	}
}

func (c CapturedPieces) clone() CapturedPieces {
	return CapturedPieces{
		White: append(make([]Piece, 0, len(c.White)), c.White...),
		Black: append(make([]Piece, 0, len(c.Black)), c.Black...),
	}
}

func (c *CapturedPieces) add(by Color, pc Piece) {
	if by == White {
		c.White = append(c.White, pc)
	} else {
		c.Black = append(c.Black, pc)
	}
}

// snapshot is a field-by-field copy of everything a half-move can change,
// apart from the history and position log which are trimmed or extended
// alongside it.
type snapshot struct {
	board     Board
	toMove    Color
	castling  CastlingRights
	enPassant *Position
	captured  CapturedPieces
	clock     Clock
	status    Status
	started   bool
	lastMove  *SimpleMove
}

// MoveRecord pairs a move's display notation with the state it was played
// from (on the undo stack) or the state it leads to (on the redo stack).
type MoveRecord struct {
	Notation  string
	Move      SimpleMove
	Promotion PieceType
	state     snapshot
}

// withState copies r's move description onto a different state.
func (r MoveRecord) withState(s snapshot) MoveRecord {
	return MoveRecord{Notation: r.Notation, Move: r.Move, Promotion: r.Promotion, state: s}
}

func (g *GameState) takeSnapshot() snapshot {
	s := snapshot{
		board:     g.board,
		toMove:    g.toMove,
		castling:  g.castling,
		enPassant: clonePosition(g.enPassant),
		captured:  g.captured.clone(),
		clock:     g.clock,
		status:    g.status,
		started:   g.started,
	}
	if g.lastMove != nil {
		lm := *g.lastMove
		s.lastMove = &lm
	}
	return s
}

// restore copies s into g so that the record itself stays untouched.
func (g *GameState) restore(s snapshot) {
	g.board = s.board
	g.toMove = s.toMove
	g.castling = s.castling
	g.enPassant = clonePosition(s.enPassant)
	g.captured = s.captured.clone()
	g.clock = s.clock
	g.status = s.status
	g.started = s.started
	g.lastMove = nil
	if s.lastMove != nil {
		lm := *s.lastMove
		g.lastMove = &lm
	}
}

// Undo steps back one completed half-move. It reports false when there is
// nothing to undo.
func (g *GameState) Undo() (bool, error) {
	if g.pending != nil {
		return false, ErrPromotionPending
	}
	if len(g.undoStack) == 0 {
		return false, nil
	}
	last := len(g.undoStack) - 1
	rec := g.undoStack[last]
	g.undoStack = g.undoStack[:last]

	g.redoStack = append(g.redoStack, rec.withState(g.takeSnapshot()))
	g.restore(rec.state)
	g.history = g.history[:len(g.history)-1]
	g.positions = g.positions[:len(g.positions)-1]
	g.clearSelection()
	return true, nil
}

// Redo replays the most recently undone half-move. It reports false when the
// redo stack is empty.
func (g *GameState) Redo() (bool, error) {
	if g.pending != nil {
		return false, ErrPromotionPending
	}
	if len(g.redoStack) == 0 {
		return false, nil
	}
	last := len(g.redoStack) - 1
	rec := g.redoStack[last]
	g.redoStack = g.redoStack[:last]

	g.undoStack = append(g.undoStack, rec.withState(g.takeSnapshot()))
	g.restore(rec.state)
	g.history = append(g.history, rec.Notation)
	g.positions = append(g.positions, g.board.Key())
	g.clearSelection()
	return true, nil
}

func (g *GameState) CanUndo() bool {
	return g.pending == nil && len(g.undoStack) > 0
}

func (g *GameState) CanRedo() bool {
	return g.pending == nil && len(g.redoStack) > 0
}

// UCIMoves lists the completed half-moves in coordinate form, for example
// "e2e4" or "a7a8q".
func (g *GameState) UCIMoves() []string {
	moves := make([]string, 0, len(g.undoStack))
	for _, rec := range g.undoStack {
		m := rec.Move.From.String() + rec.Move.To.String()
		if rec.Promotion != "" {
			m += strings.ToLower(rec.Promotion.getPieceNotation())
		}
		moves = append(moves, m)
	}
	return moves
}
