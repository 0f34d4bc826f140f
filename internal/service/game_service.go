package service

import (
	"fmt"

	"github.com/benbeisheim/macanchess-backend/internal/model"
	"github.com/benbeisheim/macanchess-backend/internal/ws"
	"github.com/google/uuid"
)

type GameService struct {
	gameManager *GameManager
}

func NewGameService(gameManager *GameManager) *GameService {
	return &GameService{
		gameManager: gameManager,
	}
}

// CreateGame opens a game in mode; an empty mode means pvp.
func (gs *GameService) CreateGame(mode model.GameMode) (string, error) {
	if mode == "" {
		mode = model.ModePvP
	}
	gameID := uuid.New().String()

	if err := gs.gameManager.CreateGame(gameID, mode); err != nil {
		return "", fmt.Errorf("failed to create game: %w", err)
	}

	return gameID, nil
}

func (gs *GameService) JoinGame(gameID string, playerID string) (model.PlayerColor, error) {
	return gs.gameManager.AddPlayerToGame(gameID, playerID)
}

func (gs *GameService) GetGameView(gameID string) (GameView, error) {
	return gs.gameManager.GetGameView(gameID)
}

func (gs *GameService) LegalMoves(gameID string, square string) ([]string, error) {
	return gs.gameManager.LegalMoves(gameID, square)
}

func (gs *GameService) HandleMove(gameID string, playerID string, from, to string) (GameView, model.MoveResult, error) {
	return gs.gameManager.MakeMove(gameID, playerID, from, to)
}

func (gs *GameService) ResetGame(gameID string, playerID string) (GameView, error) {
	return gs.gameManager.ResetGame(gameID, playerID)
}

func (gs *GameService) ExportRecord(gameID string) (model.Record, error) {
	return gs.gameManager.Record(gameID)
}

func (gs *GameService) ImportRecord(gameID string, playerID string, rec model.Record) (GameView, error) {
	return gs.gameManager.RestoreRecord(gameID, playerID, rec)
}

func (gs *GameService) FEN(gameID string) (string, error) {
	return gs.gameManager.FEN(gameID)
}

func (gs *GameService) SaveGame(gameID string, slot string) error {
	return gs.gameManager.SaveGame(gameID, slot)
}

func (gs *GameService) LoadGame(gameID string, playerID string, slot string) (GameView, error) {
	return gs.gameManager.LoadGame(gameID, playerID, slot)
}

func (gs *GameService) ListSaves() ([]string, error) {
	return gs.gameManager.ListSaves()
}

func (gs *GameService) DeleteSave(slot string) error {
	return gs.gameManager.DeleteSave(slot)
}

func (gs *GameService) EndGame(gameID string) error {
	return gs.gameManager.RemoveGame(gameID)
}

func (gs *GameService) RegisterConnection(gameID string, playerID string, conn Conn) error {
	return gs.gameManager.RegisterConnection(gameID, playerID, conn)
}

// SendError reports err to a single connection.
func (gs *GameService) SendError(gameID string, conn Conn, err error) error {
	msg, merr := ws.NewMessage(ws.MessageTypeError, ws.ErrorPayload{Error: err.Error()})
	if merr != nil {
		return merr
	}
	return gs.gameManager.SendMessage(gameID, conn, msg)
}

func (gs *GameService) UnregisterConnection(gameID string, playerID string, conn Conn) {
	gs.gameManager.UnregisterConnection(gameID, playerID, conn)
}
