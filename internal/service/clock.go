package service

import (
	"context"
	"time"

	"github.com/benbeisheim/chess-backend/internal/ws"
	"go.uber.org/zap"
)

// syncClockLocked (re)starts the ticker for the side to move, or stops it
// when nothing should be timed: before the first move, after a terminal
// status, or once the mover's time is gone.
func (s *Session) syncClockLocked() {
	g := s.game
	s.stopClockLocked()
	if s.closed || !g.Started() || g.Status().IsTerminal() || g.Clock().Expired(g.ToMove()) {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	s.clockCancel = cancel
	go s.runClock(ctx, s.clockGen)
}

// stopClockLocked cancels the ticker. Bumping the generation also voids a
// tick that is already waiting for the lock.
func (s *Session) stopClockLocked() {
	if s.clockCancel != nil {
		s.clockCancel()
		s.clockCancel = nil
	}
	s.clockGen++
}

func (s *Session) runClock(ctx context.Context, gen uint64) {
	ticker := time.NewTicker(s.tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if !s.tick(gen) {
				return
			}
		}
	}
}

// tick takes one second from the side to move and reports whether the
// ticker should keep running.
func (s *Session) tick(gen uint64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.clockGen {
		return false
	}

	clock, expired := s.game.Tick()
	s.broadcastStateLocked()
	if !expired {
		return true
	}

	color := s.game.ToMove()
	s.logger.Info("clock expired", zap.String("color", string(color)))
	msg, err := ws.NewMessage(ws.MessageTypeClockExpired, ws.ClockExpiredPayload{
		Color: string(color),
		White: clock.White,
		Black: clock.Black,
	})
	if err != nil {
		s.logger.Error("failed to marshal clock expiry", zap.Error(err))
	} else {
		s.broadcastLocked(msg)
	}
	s.stopClockLocked()
	return false
}
