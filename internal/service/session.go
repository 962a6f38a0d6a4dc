package service

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/ws"
	"go.uber.org/zap"
)

// Observer receives every state change of a session. *websocket.Conn
// satisfies it.
type Observer interface {
	WriteJSON(v interface{}) error
}

// MoveOutcome pairs what a transition did with the state it produced.
type MoveOutcome struct {
	Result model.MoveResult `json:"result"`
	State  model.GameView   `json:"state"`
}

// Session owns exactly one game. Every access to the game, including the
// clock goroutine's ticks, goes through mu.
type Session struct {
	ID string

	mu        sync.Mutex
	game      *model.GameState
	tc        model.TimeControl
	saved     []byte
	observers map[string]Observer
	closed    bool

	tickInterval time.Duration
	clockCancel  context.CancelFunc
	clockGen     uint64

	logger *zap.Logger
}

func newSession(id string, tc model.TimeControl, tickInterval time.Duration, logger *zap.Logger) *Session {
	return &Session{
		ID:           id,
		game:         model.NewGame(tc),
		tc:           tc,
		observers:    make(map[string]Observer),
		tickInterval: tickInterval,
		logger:       logger.With(zap.String("game_id", id)),
	}
}

func (s *Session) Snapshot() model.GameView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.View()
}

func (s *Session) Status() model.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.Status()
}

// LegalMoves lists the destinations of the piece on square without touching
// the selection.
func (s *Session) LegalMoves(square string) ([]model.Position, error) {
	sq, err := model.ParsePosition(square)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSquare, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	return s.game.LegalDestinations(sq), nil
}

// Select highlights the piece on square for the side to move and shares the
// new selection with observers.
func (s *Session) Select(square string) ([]model.Position, error) {
	sq, err := model.ParsePosition(square)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSquare, err)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	moves := s.game.SelectMoves(sq)
	s.broadcastStateLocked()
	return moves, nil
}

// Move applies req. When req names a promotion piece the pawn must reach
// the last rank, and the promotion is resolved in the same step. A piece
// named for any other legal move is rejected with ErrInvalidPromotion.
func (s *Session) Move(req model.MoveRequest) (MoveOutcome, error) {
	from, to, err := req.Positions()
	if err != nil {
		return MoveOutcome{}, fmt.Errorf("%w: %v", ErrInvalidSquare, err)
	}
	if req.Promotion != "" && !model.IsPromotionChoice(req.Promotion) {
		return MoveOutcome{}, fmt.Errorf("%w: %q", model.ErrInvalidPromotion, req.Promotion)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return MoveOutcome{}, ErrSessionClosed
	}
	if req.Promotion != "" && s.game.Phase() != model.PromotionPending {
		if promotes, err := s.game.Promotes(from, to); err == nil && !promotes {
			return MoveOutcome{}, fmt.Errorf("%w: %s-%s does not promote", model.ErrInvalidPromotion, from, to)
		}
	}

	res, err := s.game.ApplyMove(from, to)
	if err != nil {
		s.logger.Debug("move rejected",
			zap.Stringer("from", from),
			zap.Stringer("to", to),
			zap.Error(err),
		)
		return MoveOutcome{}, err
	}
	if res.Pending != nil && req.Promotion != "" {
		if res, err = s.game.ResolvePromotion(req.Promotion); err != nil {
			return MoveOutcome{}, err
		}
	}
	s.logResult(res)
	s.afterTransitionLocked()
	return MoveOutcome{Result: res, State: s.game.View()}, nil
}

func (s *Session) Promote(piece string) (MoveOutcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return MoveOutcome{}, ErrSessionClosed
	}

	res, err := s.game.ResolvePromotion(model.PieceType(piece))
	if err != nil {
		return MoveOutcome{}, err
	}
	s.logResult(res)
	s.afterTransitionLocked()
	return MoveOutcome{Result: res, State: s.game.View()}, nil
}

// Undo steps back one half-move. The flag is false when there was nothing
// to undo; the view is returned either way.
func (s *Session) Undo() (bool, model.GameView, error) {
	return s.step((*model.GameState).Undo, "undo")
}

func (s *Session) Redo() (bool, model.GameView, error) {
	return s.step((*model.GameState).Redo, "redo")
}

func (s *Session) step(fn func(*model.GameState) (bool, error), name string) (bool, model.GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false, model.GameView{}, ErrSessionClosed
	}
	ok, err := fn(s.game)
	if err != nil {
		return false, model.GameView{}, err
	}
	if ok {
		s.logger.Debug(name, zap.Int("moves", len(s.game.History())))
		s.afterTransitionLocked()
	}
	return ok, s.game.View(), nil
}

// NewGame resets the board to the standard position. The save slot is kept.
func (s *Session) NewGame() (model.GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return model.GameView{}, ErrSessionClosed
	}
	s.game = model.NewGame(s.tc)
	s.logger.Info("new game")
	s.afterTransitionLocked()
	return s.game.View(), nil
}

// Save stores the live game in the session's single save slot, replacing
// any earlier save.
func (s *Session) Save() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	data, err := model.Serialize(s.game)
	if err != nil {
		return fmt.Errorf("failed to serialize game: %w", err)
	}
	s.saved = data
	s.logger.Info("game saved", zap.Int("bytes", len(data)))
	return nil
}

func (s *Session) Load() (model.GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return model.GameView{}, ErrSessionClosed
	}
	if s.saved == nil {
		return model.GameView{}, ErrNoSavedGame
	}
	return s.replaceLocked(s.saved)
}

func (s *Session) Export() ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrSessionClosed
	}
	return model.Serialize(s.game)
}

// Import replaces the live game with a snapshot produced by Export. On any
// decoding failure the live game is kept.
func (s *Session) Import(data []byte) (model.GameView, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaceLocked(data)
}

func (s *Session) replaceLocked(data []byte) (model.GameView, error) {
	if s.closed {
		return model.GameView{}, ErrSessionClosed
	}
	g, err := model.Deserialize(data)
	if err != nil {
		s.logger.Warn("snapshot rejected", zap.Error(err))
		return model.GameView{}, err
	}
	s.game = g
	s.logger.Info("game loaded", zap.Int("moves", len(g.History())))
	s.afterTransitionLocked()
	return s.game.View(), nil
}

// Register attaches an observer and sends it the current state.
func (s *Session) Register(id string, o Observer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return ErrSessionClosed
	}
	msg, err := ws.NewMessage(ws.MessageTypeGameState, s.game.View())
	if err != nil {
		return err
	}
	if err := o.WriteJSON(msg); err != nil {
		return fmt.Errorf("failed to send initial state: %w", err)
	}
	s.observers[id] = o
	s.logger.Debug("observer registered", zap.String("observer", id), zap.Int("observers", len(s.observers)))
	return nil
}

func (s *Session) Unregister(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.observers, id)
}

// close stops the clock and drops every observer. No tick fires afterwards.
func (s *Session) close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	s.stopClockLocked()
	s.observers = make(map[string]Observer)
}

func (s *Session) afterTransitionLocked() {
	s.syncClockLocked()
	s.broadcastStateLocked()
}

func (s *Session) logResult(res model.MoveResult) {
	if res.Pending != nil {
		s.logger.Info("promotion pending",
			zap.Stringer("from", res.From),
			zap.Stringer("to", res.To),
		)
		return
	}
	s.logger.Info("move applied",
		zap.Stringer("from", res.From),
		zap.Stringer("to", res.To),
		zap.String("notation", res.Notation),
		zap.Stringer("status", res.Status),
	)
}

func (s *Session) broadcastStateLocked() {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, s.game.View())
	if err != nil {
		s.logger.Error("failed to marshal state", zap.Error(err))
		return
	}
	s.broadcastLocked(msg)
}

func (s *Session) broadcastLocked(msg ws.Message) {
	for id, o := range s.observers {
		if err := o.WriteJSON(msg); err != nil {
			s.logger.Warn("failed to send to observer, dropping it",
				zap.String("observer", id),
				zap.Error(err),
			)
			delete(s.observers, id)
		}
	}
}
