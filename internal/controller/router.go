package controller

import (
	"github.com/benbeisheim/macanchess-backend/internal/middleware"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RegisterRoutes mounts the REST API under /api and the game socket under /ws.
func RegisterRoutes(app *fiber.App, gc *GameController, wsc *WebSocketController, origins []string) {
	app.Use("/ws", middleware.EnsurePlayerID())
	app.Get("/ws/game/:gameId", middleware.WebSocketUpgrade(), websocket.New(wsc.HandleConnection, websocket.Config{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		Origins:         origins,
	}))

	api := app.Group("/api", middleware.EnsurePlayerID())

	saves := api.Group("/saves")
	saves.Get("/", gc.ListSaves)
	saves.Delete("/:slot", gc.DeleteSave)

	gameRoutes := api.Group("/game")
	gameRoutes.Post("/create", gc.CreateGame)
	gameRoutes.Post("/join/:gameId", gc.JoinGame)
	gameRoutes.Get("/:gameId", gc.GetGameState)
	gameRoutes.Delete("/:gameId", gc.EndGame)
	gameRoutes.Get("/:gameId/moves/:square", gc.LegalMoves)
	gameRoutes.Post("/:gameId/move", gc.MakeMove)
	gameRoutes.Post("/:gameId/reset", gc.ResetGame)
	gameRoutes.Get("/:gameId/record", gc.ExportRecord)
	gameRoutes.Post("/:gameId/record", gc.ImportRecord)
	gameRoutes.Get("/:gameId/fen", gc.GetFEN)
	gameRoutes.Post("/:gameId/save/:slot", gc.SaveGame)
	gameRoutes.Post("/:gameId/load/:slot", gc.LoadGame)
}
