package controller

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/benbeisheim/macanchess-backend/internal/service"
	"github.com/benbeisheim/macanchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

type WebSocketController struct {
	gameService *service.GameService
}

func NewWebSocketController(gameService *service.GameService) *WebSocketController {
	return &WebSocketController{
		gameService: gameService,
	}
}

// HandleConnection is called when a new WebSocket connection is established
func (wsc *WebSocketController) HandleConnection(c *websocket.Conn) {
	gameID, _ := c.Locals("wsGameID").(string)
	playerID, _ := c.Locals("wsPlayerID").(string)

	if err := wsc.gameService.RegisterConnection(gameID, playerID, c); err != nil {
		if !errors.Is(err, service.ErrDuplicateConnection) {
			log.Warnw("register connection", "game", gameID, "player", playerID, "error", err)
			wsc.gameService.SendError(gameID, c, err)
			c.Close()
		}
		return
	}
	defer wsc.gameService.UnregisterConnection(gameID, playerID, c)

	for {
		messageType, message, err := c.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Warnw("websocket read", "game", gameID, "player", playerID, "error", err)
			}
			return
		}
		if messageType != websocket.TextMessage {
			continue
		}

		var msg ws.Message
		if err := json.Unmarshal(message, &msg); err != nil {
			wsc.gameService.SendError(gameID, c, fmt.Errorf("malformed message: %w", err))
			continue
		}
		if err := wsc.handleMessage(gameID, playerID, msg); err != nil {
			log.Debugw("websocket message rejected", "game", gameID, "player", playerID, "type", msg.Type, "error", err)
			wsc.gameService.SendError(gameID, c, err)
		}
	}
}

// handleMessage applies one client message. State changes reach every
// connection through the session broadcast.
func (wsc *WebSocketController) handleMessage(gameID, playerID string, msg ws.Message) error {
	switch msg.Type {
	case ws.MessageTypeMove:
		var move ws.MovePayload
		if err := json.Unmarshal(msg.Payload, &move); err != nil {
			return fmt.Errorf("malformed move: %w", err)
		}
		_, _, err := wsc.gameService.HandleMove(gameID, playerID, move.From, move.To)
		return err

	case ws.MessageTypeReset:
		_, err := wsc.gameService.ResetGame(gameID, playerID)
		return err

	default:
		return fmt.Errorf("unknown message type: %s", msg.Type)
	}
}
