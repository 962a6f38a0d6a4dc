package model

import "fmt"

type Phase string

const (
	AwaitingSelection Phase = "awaitingSelection"
	PieceSelected     Phase = "pieceSelected"
	PromotionPending  Phase = "promotionPending"
)

// GameState is the aggregate root of one game. It is not safe for
// concurrent use; the owner serializes access.
type GameState struct {
	board     Board
	toMove    Color
	castling  CastlingRights
	enPassant *Position
	captured  CapturedPieces
	clock     Clock
	status    Status
	started   bool
	lastMove  *SimpleMove

	history   []string
	positions []string
	undoStack []MoveRecord
	redoStack []MoveRecord

	phase    Phase
	selected *Position
	pending  *PendingPromotion
}

// PendingPromotion is the suspended half of a pawn move that reached the
// last rank. The board already shows the pawn on To.
type PendingPromotion struct {
	From      Position `json:"from"`
	To        Position `json:"to"`
	Color     Color    `json:"color"`
	Capture   bool     `json:"capture"`
	EnPassant bool     `json:"enPassant"`

	fx     moveEffects
	record MoveRecord
}

// MoveResult reports what a transition did. Pending is set, and Notation
// and Status are empty, while a promotion choice is outstanding.
type MoveResult struct {
	From      Position          `json:"from"`
	To        Position          `json:"to"`
	Notation  string            `json:"notation,omitempty"`
	Captured  *Piece            `json:"captured,omitempty"`
	EnPassant bool              `json:"enPassant"`
	Castle    *CastleRookMove   `json:"castle,omitempty"`
	Status    Status            `json:"status"`
	Pending   *PendingPromotion `json:"pending,omitempty"`
}

func NewGame(tc TimeControl) *GameState {
	g := &GameState{
		board:     newBoard(),
		toMove:    White,
		captured:  newCapturedPieces(),
		clock:     NewClock(tc),
		status:    Status{Kind: StatusNormal},
		history:   make([]string, 0),
		positions: make([]string, 0),
		phase:     AwaitingSelection,
	}
	return g
}

// SelectMoves selects the piece on sq if it belongs to the side to move and
// returns its legal destinations. Any other square clears the selection.
func (g *GameState) SelectMoves(sq Position) []Position {
	if g.pending != nil {
		return []Position{}
	}
	piece, ok := g.board.At(sq)
	if !ok || piece.Color != g.toMove {
		g.clearSelection()
		return []Position{}
	}
	g.selected = &sq
	g.phase = PieceSelected
	return g.LegalDestinations(sq)
}

func (g *GameState) clearSelection() {
	g.selected = nil
	if g.pending != nil {
		g.phase = PromotionPending
	} else {
		g.phase = AwaitingSelection
	}
}

// ApplyMove plays from-to for the side to move. An illegal move returns an
// *IllegalMoveError and leaves the position untouched. A pawn reaching the
// last rank suspends the transition until ResolvePromotion.
func (g *GameState) ApplyMove(from, to Position) (MoveResult, error) {
	if g.pending != nil {
		return MoveResult{}, ErrPromotionPending
	}
	fx, err := g.checkMove(from, to, g.toMove)
	g.clearSelection()
	if err != nil {
		return MoveResult{}, err
	}

	record := MoveRecord{state: g.takeSnapshot()}
	g.redoStack = nil
	g.started = true
	g.clock.addIncrement(g.toMove)

	fx.apply(&g.board)
	if fx.captured != nil {
		g.captured.add(g.toMove, *fx.captured)
	}
	fx.updateRights(&g.castling)
	g.enPassant = fx.nextWindow()
	g.lastMove = &SimpleMove{From: from, To: to}

	if fx.promotes {
		g.pending = &PendingPromotion{
			From:      from,
			To:        to,
			Color:     g.toMove,
			Capture:   fx.captured != nil,
			EnPassant: fx.enPassant,
			fx:        fx,
			record:    record,
		}
		g.phase = PromotionPending
		result := fx.result()
		result.Pending = g.Pending()
		return result, nil
	}

	return g.completeMove(fx, record, ""), nil
}

// ResolvePromotion finalizes a pending promotion with kind and performs the
// bookkeeping ApplyMove deferred.
func (g *GameState) ResolvePromotion(kind PieceType) (MoveResult, error) {
	if g.pending == nil {
		return MoveResult{}, ErrNoPromotionPending
	}
	if !IsPromotionChoice(kind) {
		return MoveResult{}, fmt.Errorf("%w: %q", ErrInvalidPromotion, kind)
	}
	p := g.pending
	g.board.set(p.To, Piece{Type: kind, Color: p.Color})
	g.pending = nil
	return g.completeMove(p.fx, p.record, kind), nil
}

// completeMove hands the turn over, logs the position, classifies it for the
// next mover and pushes the undo record.
func (g *GameState) completeMove(fx moveEffects, record MoveRecord, promotion PieceType) MoveResult {
	g.toMove = g.toMove.Opposite()
	g.positions = append(g.positions, g.board.Key())
	g.status = g.evaluate(g.toMove)

	record.Notation = getNotation(fx, promotion) + statusSuffix(g.status)
	record.Move = SimpleMove{From: fx.from, To: fx.to}
	record.Promotion = promotion
	g.undoStack = append(g.undoStack, record)
	g.history = append(g.history, record.Notation)
	g.clearSelection()

	result := fx.result()
	result.Notation = record.Notation
	result.Status = g.status
	return result
}

func (fx moveEffects) result() MoveResult {
	r := MoveResult{
		From:      fx.from,
		To:        fx.to,
		EnPassant: fx.enPassant,
	}
	if fx.captured != nil {
		c := *fx.captured
		r.Captured = &c
	}
	if fx.castle != nil {
		c := *fx.castle
		r.Castle = &c
	}
	return r
}

// Tick takes one second from the side to move once the game has started.
// The returned flag is true only on the tick that exhausts that side's time;
// acting on it is up to the caller.
func (g *GameState) Tick() (Clock, bool) {
	if !g.started {
		return g.clock, false
	}
	expired := g.clock.tick(g.toMove)
	return g.clock, expired
}

func (g *GameState) Status() Status {
	return g.status
}

func (g *GameState) Board() Board {
	return g.board
}

func (g *GameState) ToMove() Color {
	return g.toMove
}

func (g *GameState) Castling() CastlingRights {
	return g.castling
}

func (g *GameState) EnPassant() *Position {
	return clonePosition(g.enPassant)
}

func (g *GameState) Captured() CapturedPieces {
	return g.captured.clone()
}

func (g *GameState) Clock() Clock {
	return g.clock
}

func (g *GameState) Started() bool {
	return g.started
}

func (g *GameState) Phase() Phase {
	return g.phase
}

func (g *GameState) History() []string {
	return append([]string(nil), g.history...)
}

func (g *GameState) PositionLog() []string {
	return append([]string(nil), g.positions...)
}

func (g *GameState) Pending() *PendingPromotion {
	if g.pending == nil {
		return nil
	}
	p := *g.pending
	return &p
}
