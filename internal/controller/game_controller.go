package controller

import (
	"errors"

	"github.com/benbeisheim/macanchess-backend/internal/model"
	"github.com/benbeisheim/macanchess-backend/internal/service"
	"github.com/benbeisheim/macanchess-backend/internal/storage"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
)

type GameController struct {
	gameService *service.GameService
}

func NewGameController(gameService *service.GameService) *GameController {
	return &GameController{gameService: gameService}
}

type createGameRequest struct {
	Mode model.GameMode `json:"mode"`
}

type moveRequest struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// statusFor maps service and engine errors onto HTTP status codes.
func statusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrGameNotFound), errors.Is(err, storage.ErrSlotNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, service.ErrGameFull), errors.Is(err, service.ErrGameExists):
		return fiber.StatusConflict
	case errors.Is(err, service.ErrNotSeated), errors.Is(err, service.ErrNotYourTurn),
		errors.Is(err, service.ErrReservedPlayerID):
		return fiber.StatusForbidden
	case errors.Is(err, model.ErrMalformedRecord):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, model.ErrInvalidMove), errors.Is(err, model.ErrOutOfBounds),
		errors.Is(err, service.ErrInvalidMode), errors.Is(err, storage.ErrInvalidSlot):
		return fiber.StatusBadRequest
	}
	return fiber.StatusInternalServerError
}

func writeError(c *fiber.Ctx, err error) error {
	status := statusFor(err)
	if status == fiber.StatusInternalServerError {
		log.Errorw("request failed", "method", c.Method(), "path", c.Path(), "error", err)
	}
	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}

func playerID(c *fiber.Ctx) string {
	id, _ := c.Locals("playerID").(string)
	return id
}

func (gc *GameController) CreateGame(c *fiber.Ctx) error {
	var req createGameRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "invalid request body",
			})
		}
	}

	gameID, err := gc.gameService.CreateGame(req.Mode)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game created",
		"game_id": gameID,
	})
}

func (gc *GameController) JoinGame(c *fiber.Ctx) error {
	color, err := gc.gameService.JoinGame(c.Params("gameId"), playerID(c))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Game joined",
		"color":   color,
	})
}

func (gc *GameController) GetGameState(c *fiber.Ctx) error {
	view, err := gc.gameService.GetGameView(c.Params("gameId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) LegalMoves(c *fiber.Ctx) error {
	square := c.Params("square")
	squares, err := gc.gameService.LegalMoves(c.Params("gameId"), square)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"square": square,
		"moves":  squares,
	})
}

func (gc *GameController) MakeMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "invalid request body",
		})
	}

	view, result, err := gc.gameService.HandleMove(c.Params("gameId"), playerID(c), req.From, req.To)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"result": result,
		"state":  view,
	})
}

func (gc *GameController) ResetGame(c *fiber.Ctx) error {
	view, err := gc.gameService.ResetGame(c.Params("gameId"), playerID(c))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) EndGame(c *fiber.Ctx) error {
	if err := gc.gameService.EndGame(c.Params("gameId")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (gc *GameController) ExportRecord(c *fiber.Ctx) error {
	rec, err := gc.gameService.ExportRecord(c.Params("gameId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(rec)
}

func (gc *GameController) ImportRecord(c *fiber.Ctx) error {
	rec, err := model.ParseRecord(c.Body())
	if err != nil {
		return writeError(c, err)
	}
	view, err := gc.gameService.ImportRecord(c.Params("gameId"), playerID(c), rec)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) GetFEN(c *fiber.Ctx) error {
	fen, err := gc.gameService.FEN(c.Params("gameId"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"fen": fen,
	})
}

func (gc *GameController) SaveGame(c *fiber.Ctx) error {
	slot := c.Params("slot")
	if err := gc.gameService.SaveGame(c.Params("gameId"), slot); err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"message": "Game saved",
		"slot":    slot,
	})
}

func (gc *GameController) LoadGame(c *fiber.Ctx) error {
	view, err := gc.gameService.LoadGame(c.Params("gameId"), playerID(c), c.Params("slot"))
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(view)
}

func (gc *GameController) ListSaves(c *fiber.Ctx) error {
	slots, err := gc.gameService.ListSaves()
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(fiber.Map{
		"slots": slots,
	})
}

func (gc *GameController) DeleteSave(c *fiber.Ctx) error {
	if err := gc.gameService.DeleteSave(c.Params("slot")); err != nil {
		return writeError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
