package service

import (
	"fmt"
	"sync"
	"time"

	"github.com/benbeisheim/macanchess-backend/internal/model"
	"github.com/benbeisheim/macanchess-backend/internal/storage"
	"github.com/benbeisheim/macanchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
)

type GameManager struct {
	games   map[string]*Session
	store   *storage.Store
	aiDelay time.Duration
	// seed feeds each new session's move picker
	seed func() int64
	mu   sync.RWMutex
}

func NewGameManager(store *storage.Store, aiDelay time.Duration) *GameManager {
	return &GameManager{
		games:   make(map[string]*Session),
		store:   store,
		aiDelay: aiDelay,
		seed:    func() int64 { return time.Now().UnixNano() },
	}
}

func (gm *GameManager) CreateGame(gameID string, mode model.GameMode) error {
	if !mode.Valid() {
		return fmt.Errorf("%w: %q", ErrInvalidMode, mode)
	}

	gm.mu.Lock()
	defer gm.mu.Unlock()

	if _, exists := gm.games[gameID]; exists {
		return ErrGameExists
	}
	gm.games[gameID] = newSession(gameID, mode, gm.aiDelay, gm.seed())
	log.Infow("game created", "game", gameID, "mode", mode)
	return nil
}

func (gm *GameManager) GetSession(gameID string) (*Session, error) {
	gm.mu.RLock()
	defer gm.mu.RUnlock()

	session, exists := gm.games[gameID]
	if !exists {
		return nil, fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	return session, nil
}

// RemoveGame stops the session's computer player and closes its connections.
func (gm *GameManager) RemoveGame(gameID string) error {
	gm.mu.Lock()
	session, exists := gm.games[gameID]
	delete(gm.games, gameID)
	gm.mu.Unlock()

	if !exists {
		return fmt.Errorf("%w: %s", ErrGameNotFound, gameID)
	}
	session.close()
	log.Infow("game removed", "game", gameID)
	return nil
}

func (gm *GameManager) AddPlayerToGame(gameID string, playerID string) (model.PlayerColor, error) {
	session, err := gm.GetSession(gameID)
	if err != nil {
		return "", err
	}
	return session.AddPlayer(playerID)
}

func (gm *GameManager) GetGameView(gameID string) (GameView, error) {
	session, err := gm.GetSession(gameID)
	if err != nil {
		return GameView{}, err
	}
	return session.View(), nil
}

func (gm *GameManager) LegalMoves(gameID string, square string) ([]string, error) {
	session, err := gm.GetSession(gameID)
	if err != nil {
		return nil, err
	}
	return session.LegalMoves(square)
}

func (gm *GameManager) MakeMove(gameID string, playerID string, from, to string) (GameView, model.MoveResult, error) {
	session, err := gm.GetSession(gameID)
	if err != nil {
		return GameView{}, model.MoveResult{}, err
	}
	return session.MakeMove(playerID, from, to)
}

func (gm *GameManager) ResetGame(gameID string, playerID string) (GameView, error) {
	session, err := gm.GetSession(gameID)
	if err != nil {
		return GameView{}, err
	}
	return session.Reset(playerID)
}

func (gm *GameManager) Record(gameID string) (model.Record, error) {
	session, err := gm.GetSession(gameID)
	if err != nil {
		return model.Record{}, err
	}
	return session.Record(), nil
}

func (gm *GameManager) RestoreRecord(gameID string, playerID string, rec model.Record) (GameView, error) {
	session, err := gm.GetSession(gameID)
	if err != nil {
		return GameView{}, err
	}
	return session.Restore(playerID, rec)
}

func (gm *GameManager) FEN(gameID string) (string, error) {
	session, err := gm.GetSession(gameID)
	if err != nil {
		return "", err
	}
	return session.FEN(), nil
}

func (gm *GameManager) SaveGame(gameID string, slot string) error {
	session, err := gm.GetSession(gameID)
	if err != nil {
		return err
	}
	if err := gm.store.Save(slot, session.Record()); err != nil {
		return err
	}
	log.Infow("game saved", "game", gameID, "slot", slot)
	return nil
}

func (gm *GameManager) LoadGame(gameID string, playerID string, slot string) (GameView, error) {
	session, err := gm.GetSession(gameID)
	if err != nil {
		return GameView{}, err
	}
	rec, err := gm.store.Load(slot)
	if err != nil {
		return GameView{}, err
	}
	return session.Restore(playerID, rec)
}

func (gm *GameManager) ListSaves() ([]string, error) {
	return gm.store.List()
}

func (gm *GameManager) DeleteSave(slot string) error {
	return gm.store.Delete(slot)
}

func (gm *GameManager) RegisterConnection(gameID string, playerID string, conn Conn) error {
	session, err := gm.GetSession(gameID)
	if err != nil {
		return err
	}
	return session.RegisterConnection(playerID, conn)
}

func (gm *GameManager) SendMessage(gameID string, conn Conn, msg ws.Message) error {
	session, err := gm.GetSession(gameID)
	if err != nil {
		return conn.WriteJSON(msg)
	}
	return session.Write(conn, msg)
}

func (gm *GameManager) UnregisterConnection(gameID string, playerID string, conn Conn) {
	session, err := gm.GetSession(gameID)
	if err != nil {
		return
	}
	session.UnregisterConnection(playerID, conn)
}
