package model

import (
	"bytes"
	"encoding/json"
	"fmt"
)

const snapshotVersion = 1

type stateDocument struct {
	Board     Board          `json:"board"`
	ToMove    Color          `json:"toMove"`
	Castling  CastlingRights `json:"castling"`
	EnPassant *Position      `json:"enPassant"`
	Captured  CapturedPieces `json:"captured"`
	Clock     Clock          `json:"clock"`
	Status    Status         `json:"status"`
	Started   bool           `json:"started"`
	LastMove  *SimpleMove    `json:"lastMove"`
}

type recordDocument struct {
	Notation  string        `json:"notation"`
	Move      SimpleMove    `json:"move"`
	Promotion PieceType     `json:"promotion,omitempty"`
	State     stateDocument `json:"state"`
}

type pendingDocument struct {
	From   Position       `json:"from"`
	To     Position       `json:"to"`
	Record recordDocument `json:"record"`
}

// gameDocument is the save format. Undo and redo stacks are included, so a
// loaded game can be stepped back exactly like the one that was saved.
type gameDocument struct {
	Version     int              `json:"version"`
	State       stateDocument    `json:"state"`
	MoveHistory []string         `json:"moveHistory"`
	PositionLog []string         `json:"positionLog"`
	Undo        []recordDocument `json:"undo"`
	Redo        []recordDocument `json:"redo"`
	Pending     *pendingDocument `json:"pending"`
}

func Serialize(g *GameState) ([]byte, error) {
	doc := gameDocument{
		Version:     snapshotVersion,
		State:       newStateDocument(g.takeSnapshot()),
		MoveHistory: append(make([]string, 0, len(g.history)), g.history...),
		PositionLog: append(make([]string, 0, len(g.positions)), g.positions...),
		Undo:        newRecordDocuments(g.undoStack),
		Redo:        newRecordDocuments(g.redoStack),
	}
	if g.pending != nil {
		doc.Pending = &pendingDocument{
			From:   g.pending.From,
			To:     g.pending.To,
			Record: newRecordDocument(g.pending.record),
		}
	}
	return json.Marshal(doc)
}

// Deserialize rebuilds a game from Serialize output. Any decoding or
// consistency failure is reported as ErrCorruptSnapshot and no state is
// returned.
func Deserialize(data []byte) (*GameState, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var doc gameDocument
	if err := dec.Decode(&doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	g, err := doc.build()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorruptSnapshot, err)
	}
	return g, nil
}

func (doc gameDocument) build() (*GameState, error) {
	if doc.Version != snapshotVersion {
		return nil, fmt.Errorf("unsupported version %d", doc.Version)
	}
	state, err := doc.State.snapshot()
	if err != nil {
		return nil, fmt.Errorf("state: %w", err)
	}
	if len(doc.MoveHistory) != len(doc.PositionLog) || len(doc.MoveHistory) != len(doc.Undo) {
		return nil, fmt.Errorf("history (%d), position log (%d) and undo stack (%d) disagree",
			len(doc.MoveHistory), len(doc.PositionLog), len(doc.Undo))
	}
	for i, key := range doc.PositionLog {
		if len(key) != 64 {
			return nil, fmt.Errorf("position log entry %d is malformed", i)
		}
	}

	g := &GameState{
		history:   append(make([]string, 0, len(doc.MoveHistory)), doc.MoveHistory...),
		positions: append(make([]string, 0, len(doc.PositionLog)), doc.PositionLog...),
		phase:     AwaitingSelection,
	}
	g.restore(state)
	if g.undoStack, err = buildRecords(doc.Undo); err != nil {
		return nil, fmt.Errorf("undo: %w", err)
	}
	if g.redoStack, err = buildRecords(doc.Redo); err != nil {
		return nil, fmt.Errorf("redo: %w", err)
	}
	if doc.Pending != nil {
		if g.pending, err = doc.Pending.build(); err != nil {
			return nil, fmt.Errorf("pending promotion: %w", err)
		}
		if pawn, _ := g.board.At(g.pending.To); pawn.Type != Pawn || pawn.Color != g.pending.Color {
			return nil, fmt.Errorf("pending promotion square %s holds no pawn", g.pending.To)
		}
		g.phase = PromotionPending
	} else if want := g.evaluate(g.toMove); want != g.status {
		return nil, fmt.Errorf("status %s does not match the position (%s)", g.status, want)
	}
	return g, nil
}

// build re-derives the move's effects from the pre-move state, which also
// proves the suspended move was legal there.
func (doc pendingDocument) build() (*PendingPromotion, error) {
	rec, err := doc.Record.record()
	if err != nil {
		return nil, err
	}
	before := &GameState{}
	before.restore(rec.state)
	fx, err := before.checkMove(doc.From, doc.To, before.toMove)
	if err != nil {
		return nil, err
	}
	if !fx.promotes {
		return nil, fmt.Errorf("%s-%s does not promote", doc.From, doc.To)
	}
	return &PendingPromotion{
		From:      doc.From,
		To:        doc.To,
		Color:     before.toMove,
		Capture:   fx.captured != nil,
		EnPassant: fx.enPassant,
		fx:        fx,
		record:    rec,
	}, nil
}

func newStateDocument(s snapshot) stateDocument {
	return stateDocument{
		Board:     s.board,
		ToMove:    s.toMove,
		Castling:  s.castling,
		EnPassant: s.enPassant,
		Captured:  s.captured,
		Clock:     s.clock,
		Status:    s.status,
		Started:   s.started,
		LastMove:  s.lastMove,
	}
}

func newRecordDocument(r MoveRecord) recordDocument {
	return recordDocument{
		Notation:  r.Notation,
		Move:      r.Move,
		Promotion: r.Promotion,
		State:     newStateDocument(r.state),
	}
}

func newRecordDocuments(records []MoveRecord) []recordDocument {
	docs := make([]recordDocument, 0, len(records))
	for _, r := range records {
		docs = append(docs, newRecordDocument(r))
	}
	return docs
}

func buildRecords(docs []recordDocument) ([]MoveRecord, error) {
	records := make([]MoveRecord, 0, len(docs))
	for i, d := range docs {
		rec, err := d.record()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func (d recordDocument) record() (MoveRecord, error) {
	s, err := d.State.snapshot()
	if err != nil {
		return MoveRecord{}, err
	}
	if d.Promotion != "" && !IsPromotionChoice(d.Promotion) {
		return MoveRecord{}, fmt.Errorf("invalid promotion %q", d.Promotion)
	}
	return MoveRecord{Notation: d.Notation, Move: d.Move, Promotion: d.Promotion, state: s}, nil
}

func (d stateDocument) snapshot() (snapshot, error) {
	white, black := d.Board.countKings()
	if white != 1 || black != 1 {
		return snapshot{}, fmt.Errorf("expected one king per side, found %d white and %d black", white, black)
	}
	if !d.ToMove.isValid() {
		return snapshot{}, fmt.Errorf("invalid side to move %q", d.ToMove)
	}
	if d.EnPassant != nil && !boundaryCheck(*d.EnPassant) {
		return snapshot{}, fmt.Errorf("en passant square out of bounds")
	}
	if d.LastMove != nil && (!boundaryCheck(d.LastMove.From) || !boundaryCheck(d.LastMove.To)) {
		return snapshot{}, fmt.Errorf("last move out of bounds")
	}
	for _, pc := range append(append([]Piece{}, d.Captured.White...), d.Captured.Black...) {
		if !pc.isValid() {
			return snapshot{}, fmt.Errorf("invalid captured piece %q/%q", pc.Type, pc.Color)
		}
	}
	if d.Clock.White < 0 || d.Clock.Black < 0 || d.Clock.Increment < 0 {
		return snapshot{}, fmt.Errorf("negative clock value")
	}
	if !d.Status.isValid() {
		return snapshot{}, fmt.Errorf("invalid status %q", d.Status.Kind)
	}
	return snapshot{
		board:     d.Board,
		toMove:    d.ToMove,
		castling:  d.Castling,
		enPassant: clonePosition(d.EnPassant),
		captured:  d.Captured.clone(),
		clock:     d.Clock,
		status:    d.Status,
		started:   d.Started,
		lastMove:  d.LastMove,
	}, nil
}
