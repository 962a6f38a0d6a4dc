// service/game_manager.go
package service

import (
	"sync"
	"time"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GameManager owns every live session, keyed by id. Sessions are
// independent; none shares state with another.
type GameManager struct {
	games        map[string]*Session
	mu           sync.RWMutex
	timeControl  model.TimeControl
	tickInterval time.Duration
	logger       *zap.Logger
}

// NewGameManager builds a manager whose sessions start with tc. A
// non-positive tickInterval means one tick per second.
func NewGameManager(tc model.TimeControl, tickInterval time.Duration, logger *zap.Logger) *GameManager {
	if tickInterval <= 0 {
		tickInterval = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameManager{
		games:        make(map[string]*Session),
		timeControl:  tc,
		tickInterval: tickInterval,
		logger:       logger,
	}
}

func (gm *GameManager) Create() *Session {
	gameID := uuid.New().String()
	session := newSession(gameID, gm.timeControl, gm.tickInterval, gm.logger)

	gm.mu.Lock()
	gm.games[gameID] = session
	count := len(gm.games)
	gm.mu.Unlock()

	gm.logger.Info("game created", zap.String("game_id", gameID), zap.Int("games", count))
	return session
}

func (gm *GameManager) Get(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.games[gameID]
	if !exists {
		return nil, ErrGameNotFound
	}
	return session, nil
}

// Remove tears the session down: its clock stops and its observers are
// dropped.
func (gm *GameManager) Remove(gameID string) error {
	gm.mu.Lock()
	session, exists := gm.games[gameID]
	delete(gm.games, gameID)
	gm.mu.Unlock()

	if !exists {
		return ErrGameNotFound
	}
	session.close()
	gm.logger.Info("game removed", zap.String("game_id", gameID))
	return nil
}

func (gm *GameManager) Len() int {
	gm.mu.RLock()
	defer gm.mu.RUnlock()
	return len(gm.games)
}

// Shutdown removes every session.
func (gm *GameManager) Shutdown() {
	gm.mu.Lock()
	sessions := gm.games
	gm.games = make(map[string]*Session)
	gm.mu.Unlock()

	for _, session := range sessions {
		session.close()
	}
	gm.logger.Info("all games closed", zap.Int("games", len(sessions)))
}
