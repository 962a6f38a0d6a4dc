package service

import (
	"github.com/benbeisheim/chess-backend/internal/model"
)

// GameService is the facade the controllers use; every call names its game
// by id.
type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

func (gs *GameService) CreateGame() (string, model.GameView) {
	session := gs.gameManager.Create()
	return session.ID, session.Snapshot()
}

func (gs *GameService) RemoveGame(gameID string) error {
	return gs.gameManager.Remove(gameID)
}

func (gs *GameService) GetGameState(gameID string) (model.GameView, error) {
	session, err := gs.gameManager.Get(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	return session.Snapshot(), nil
}

func (gs *GameService) GetStatus(gameID string) (model.Status, error) {
	session, err := gs.gameManager.Get(gameID)
	if err != nil {
		return model.Status{}, err
	}
	return session.Status(), nil
}

func (gs *GameService) LegalMoves(gameID, square string) ([]model.Position, error) {
	session, err := gs.gameManager.Get(gameID)
	if err != nil {
		return nil, err
	}
	return session.LegalMoves(square)
}

func (gs *GameService) Select(gameID, square string) ([]model.Position, error) {
	session, err := gs.gameManager.Get(gameID)
	if err != nil {
		return nil, err
	}
	return session.Select(square)
}

func (gs *GameService) HandleMove(gameID string, move model.MoveRequest) (MoveOutcome, error) {
	session, err := gs.gameManager.Get(gameID)
	if err != nil {
		return MoveOutcome{}, err
	}
	return session.Move(move)
}

func (gs *GameService) Promote(gameID, piece string) (MoveOutcome, error) {
	session, err := gs.gameManager.Get(gameID)
	if err != nil {
		return MoveOutcome{}, err
	}
	return session.Promote(piece)
}

func (gs *GameService) Undo(gameID string) (bool, model.GameView, error) {
	session, err := gs.gameManager.Get(gameID)
	if err != nil {
		return false, model.GameView{}, err
	}
	return session.Undo()
}

func (gs *GameService) Redo(gameID string) (bool, model.GameView, error) {
	session, err := gs.gameManager.Get(gameID)
	if err != nil {
		return false, model.GameView{}, err
	}
	return session.Redo()
}

func (gs *GameService) NewGame(gameID string) (model.GameView, error) {
	session, err := gs.gameManager.Get(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	return session.NewGame()
}

func (gs *GameService) Save(gameID string) error {
	session, err := gs.gameManager.Get(gameID)
	if err != nil {
		return err
	}
	return session.Save()
}

func (gs *GameService) Load(gameID string) (model.GameView, error) {
	session, err := gs.gameManager.Get(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	return session.Load()
}

func (gs *GameService) Export(gameID string) ([]byte, error) {
	session, err := gs.gameManager.Get(gameID)
	if err != nil {
		return nil, err
	}
	return session.Export()
}

func (gs *GameService) Import(gameID string, data []byte) (model.GameView, error) {
	session, err := gs.gameManager.Get(gameID)
	if err != nil {
		return model.GameView{}, err
	}
	return session.Import(data)
}

func (gs *GameService) RegisterConnection(gameID, connID string, conn Observer) error {
	session, err := gs.gameManager.Get(gameID)
	if err != nil {
		return err
	}
	return session.Register(connID, conn)
}

func (gs *GameService) UnregisterConnection(gameID, connID string) {
	session, err := gs.gameManager.Get(gameID)
	if err != nil {
		return
	}
	session.Unregister(connID)
}

func (gs *GameService) GetOpening(gameID string) (Opening, error) {
	session, err := gs.gameManager.Get(gameID)
	if err != nil {
		return Opening{}, err
	}
	return session.Opening()
}
