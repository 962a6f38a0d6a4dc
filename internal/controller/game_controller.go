package controller

import (
	"errors"

	"github.com/benbeisheim/chess-backend/internal/model"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type GameController struct {
	gameService *service.GameService
	logger      *zap.Logger
}

func NewGameController(gameService *service.GameService, logger *zap.Logger) *GameController {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &GameController{gameService: gameService, logger: logger}
}

type promotionRequest struct {
	Piece string `json:"piece"`
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	gameID, state := gc.gameService.CreateGame()
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
		"state":   state,
	})
}

func (gc *GameController) DeleteGame(c *fiber.Ctx) error {
	if err := gc.gameService.RemoveGame(c.Params("gameId")); err != nil {
		return gc.fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	gameState, err := gc.gameService.GetGameState(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(gameState)
}

func (gc *GameController) GetStatus(c *fiber.Ctx) error {
	status, err := gc.gameService.GetStatus(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"status":   status,
		"terminal": status.IsTerminal(),
	})
}

func (gc *GameController) GetOpening(c *fiber.Ctx) error {
	o, err := gc.gameService.GetOpening(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(o)
}

func (gc *GameController) GetLegalMoves(c *fiber.Ctx) error {
	square := c.Params("square")
	moves, err := gc.gameService.LegalMoves(c.Params("gameId"), square)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{
		"square":       square,
		"destinations": squareNames(moves),
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var move model.MoveRequest
	if err := c.BodyParser(&move); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid move body",
		})
	}
	outcome, err := gc.gameService.HandleMove(c.Params("gameId"), move)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(outcome)
}

func (gc *GameController) Promote(c *fiber.Ctx) error {
	var req promotionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid promotion body",
		})
	}
	outcome, err := gc.gameService.Promote(c.Params("gameId"), req.Piece)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(outcome)
}

func (gc *GameController) Undo(c *fiber.Ctx) error {
	changed, state, err := gc.gameService.Undo(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{"changed": changed, "state": state})
}

func (gc *GameController) Redo(c *fiber.Ctx) error {
	changed, state, err := gc.gameService.Redo(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{"changed": changed, "state": state})
}

func (gc *GameController) NewGame(c *fiber.Ctx) error {
	state, err := gc.gameService.NewGame(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) Save(c *fiber.Ctx) error {
	if err := gc.gameService.Save(c.Params("gameId")); err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Game saved"})
}

func (gc *GameController) Load(c *fiber.Ctx) error {
	state, err := gc.gameService.Load(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(state)
}

func (gc *GameController) Export(c *fiber.Ctx) error {
	data, err := gc.gameService.Export(c.Params("gameId"))
	if err != nil {
		return gc.fail(c, err)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(data)
}

func (gc *GameController) Import(c *fiber.Ctx) error {
	// the request body buffer is reused once the handler returns
	body := append([]byte(nil), c.Body()...)
	state, err := gc.gameService.Import(c.Params("gameId"), body)
	if err != nil {
		return gc.fail(c, err)
	}
	return c.JSON(state)
}

// fail writes err as a JSON error body with the matching status code.
func (gc *GameController) fail(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	body := fiber.Map{"error": err.Error()}

	var ime *model.IllegalMoveError
	if errors.As(err, &ime) {
		body["reason"] = ime.Reason
	}
	if status >= fiber.StatusInternalServerError {
		gc.logger.Error("request failed",
			zap.String("game_id", c.Params("gameId")),
			zap.String("path", c.Path()),
			zap.Error(err),
		)
	}
	return c.Status(status).JSON(body)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound),
		errors.Is(err, service.ErrNoSavedGame),
		errors.Is(err, service.ErrSessionClosed):
		return fiber.StatusNotFound
	case errors.Is(err, model.ErrIllegalMove),
		errors.Is(err, model.ErrInvalidPromotion),
		errors.Is(err, model.ErrPromotionPending),
		errors.Is(err, model.ErrNoPromotionPending):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, model.ErrCorruptSnapshot),
		errors.Is(err, service.ErrInvalidSquare):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func squareNames(positions []model.Position) []string {
	names := make([]string, 0, len(positions))
	for _, p := range positions {
		names = append(names, p.String())
	}
	return names
}
