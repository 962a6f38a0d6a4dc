package service

import (
	"fmt"
	"sync"

	"github.com/corentings/chess/v2"
	"github.com/corentings/chess/v2/opening"
)

// Opening names the ECO line the game's moves follow.
type Opening struct {
	Code  string `json:"code"`
	Title string `json:"title"`
}

var (
	ecoOnce sync.Once
	ecoBook *opening.BookECO
)

func ecoBookInstance() *opening.BookECO {
	ecoOnce.Do(func() {
		ecoBook = opening.NewBookECO()
	})
	return ecoBook
}

// lookupOpening replays uciMoves on a reference board and finds the deepest
// matching book line. The zero Opening means no line matched.
func lookupOpening(uciMoves []string) (Opening, error) {
	game := chess.NewGame()
	uci := chess.UCINotation{}
	for _, m := range uciMoves {
		pos := game.Position()
		mv, err := uci.Decode(pos, m)
		if err != nil {
			return Opening{}, fmt.Errorf("replay %s: %w", m, err)
		}
		san := chess.AlgebraicNotation{}.Encode(pos, mv)
		if err := game.PushMove(san, &chess.PushMoveOptions{ForceMainline: true}); err != nil {
			return Opening{}, fmt.Errorf("replay %s: %w", m, err)
		}
	}

	book := ecoBookInstance()
	if book == nil {
		return Opening{}, nil
	}
	eco := book.Find(game.Moves())
	if eco == nil {
		return Opening{}, nil
	}
	return Opening{Code: eco.Code(), Title: eco.Title()}, nil
}

// Opening reports the book line of the moves played so far.
func (s *Session) Opening() (Opening, error) {
	s.mu.Lock()
	moves := s.game.UCIMoves()
	s.mu.Unlock()
	return lookupOpening(moves)
}
