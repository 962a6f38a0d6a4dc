package controller

import (
	"github.com/benbeisheim/chess-backend/internal/middleware"
	"github.com/benbeisheim/chess-backend/internal/service"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the REST API under /api/game and the live board
// channel under /ws/game.
func RegisterRoutes(app *fiber.App, gameService *service.GameService, gc *GameController, wsc *WebSocketController, origins []string) {
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(gameService), websocket.New(wsc.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         origins,
	}))

	api := app.Group("/api")
	gameRoutes := api.Group("/game")
	gameRoutes.Post("/", gc.CreateGame)
	gameRoutes.Get("/:gameId", gc.GetGameState)
	gameRoutes.Delete("/:gameId", gc.DeleteGame)
	gameRoutes.Get("/:gameId/status", gc.GetStatus)
	gameRoutes.Get("/:gameId/opening", gc.GetOpening)
	gameRoutes.Get("/:gameId/moves/:square", gc.GetLegalMoves)
	gameRoutes.Post("/:gameId/move", gc.MakeMove)
	gameRoutes.Post("/:gameId/promotion", gc.Promote)
	gameRoutes.Post("/:gameId/undo", gc.Undo)
	gameRoutes.Post("/:gameId/redo", gc.Redo)
	gameRoutes.Post("/:gameId/new", gc.NewGame)
	gameRoutes.Post("/:gameId/save", gc.Save)
	gameRoutes.Post("/:gameId/load", gc.Load)
	gameRoutes.Get("/:gameId/export", gc.Export)
	gameRoutes.Post("/:gameId/import", gc.Import)
}
