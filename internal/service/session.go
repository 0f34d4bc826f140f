package service

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/benbeisheim/macanchess-backend/internal/model"
	"github.com/benbeisheim/macanchess-backend/internal/ws"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/websocket/v2"
)

// ComputerID occupies the Black seat of pve games.
const ComputerID = "computer"

var ErrDuplicateConnection = errors.New("connection already exists")

// Conn is the part of a websocket connection a session writes to.
type Conn interface {
	WriteJSON(v interface{}) error
	WriteMessage(messageType int, data []byte) error
	Close() error
}

// GameConnections maps player ids to the sockets watching one session.
type GameConnections struct {
	connections map[string]Conn // playerID -> connection
	mu          sync.RWMutex
	// serializes writes; a websocket allows one writer at a time
	writeMu sync.Mutex
}

func NewGameConnections() *GameConnections {
	return &GameConnections{
		connections: make(map[string]Conn),
	}
}

// Session is one hosted game: the engine state, who sits where, and who is watching.
type Session struct {
	ID string

	mu       sync.Mutex
	game     *model.Game
	seats    Seats
	lastMove *model.SimpleMove

	rng      *rand.Rand
	aiDelay  time.Duration
	aiTimer  *time.Timer
	aiGen    int
	thinking bool

	connections *GameConnections
}

func newSession(id string, mode model.GameMode, aiDelay time.Duration, seed int64) *Session {
	s := &Session{
		ID:          id,
		game:        model.NewGameWithMode(mode),
		rng:         rand.New(rand.NewSource(seed)),
		aiDelay:     aiDelay,
		connections: NewGameConnections(),
	}
	s.seatComputerLocked()
	return s
}

func (s *Session) seatComputerLocked() {
	if s.game.Mode() == model.ModePvE {
		s.seats.Black = model.ClientPlayer{ID: ComputerID, Color: model.PlayerColorBlack}
	} else if s.seats.Black.ID == ComputerID {
		s.seats.Black = model.ClientPlayer{}
	}
}

// AddPlayer seats playerID and returns its color. A player already seated gets
// its seat back, except that in pvp the White player may also claim an empty
// Black seat to play both sides from one client.
func (s *Session) AddPlayer(playerID string) (model.PlayerColor, error) {
	if playerID == ComputerID {
		return "", ErrReservedPlayerID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case s.seats.White.ID == "":
		s.seats.White = model.ClientPlayer{ID: playerID, Color: model.PlayerColorWhite}
		log.Infow("player seated", "game", s.ID, "player", playerID, "color", model.PlayerColorWhite)
		return model.PlayerColorWhite, nil
	case s.seats.Black.ID == "":
		s.seats.Black = model.ClientPlayer{ID: playerID, Color: model.PlayerColorBlack}
		log.Infow("player seated", "game", s.ID, "player", playerID, "color", model.PlayerColorBlack)
		return model.PlayerColorBlack, nil
	case s.seats.White.ID == playerID:
		return model.PlayerColorWhite, nil
	case s.seats.Black.ID == playerID:
		return model.PlayerColorBlack, nil
	}
	return "", ErrGameFull
}

func (s *Session) isSeatedLocked(playerID string) bool {
	if playerID == "" || playerID == ComputerID {
		return false
	}
	return s.seats.White.ID == playerID || s.seats.Black.ID == playerID
}

func (s *Session) holdsSeatLocked(playerID string, color model.PlayerColor) bool {
	if color == model.PlayerColorWhite {
		return s.seats.White.ID == playerID
	}
	return s.seats.Black.ID == playerID
}

func (s *Session) View() GameView {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.viewLocked()
}

func (s *Session) viewLocked() GameView {
	return newGameView(s.ID, s.game, s.seats, s.lastMove, s.thinking)
}

// LegalMoves lists the destination squares of the piece on square.
func (s *Session) LegalMoves(square string) ([]string, error) {
	from, err := model.ParseSquare(square)
	if err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	targets := s.game.LegalMoves(from)
	squares := make([]string, 0, len(targets))
	for _, to := range targets {
		squares = append(squares, to.String())
	}
	return squares, nil
}

func (s *Session) MakeMove(playerID, from, to string) (GameView, model.MoveResult, error) {
	view, result, err := s.makeMove(playerID, from, to)
	if err != nil {
		return GameView{}, model.MoveResult{}, err
	}
	s.broadcast(view)
	return view, result, nil
}

func (s *Session) makeMove(playerID, from, to string) (GameView, model.MoveResult, error) {
	fromPos, err := model.ParseSquare(from)
	if err != nil {
		return GameView{}, model.MoveResult{}, fmt.Errorf("%w: %v", model.ErrInvalidMove, err)
	}
	toPos, err := model.ParseSquare(to)
	if err != nil {
		return GameView{}, model.MoveResult{}, fmt.Errorf("%w: %v", model.ErrInvalidMove, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.isSeatedLocked(playerID) {
		return GameView{}, model.MoveResult{}, ErrNotSeated
	}
	if !s.holdsSeatLocked(playerID, s.game.ToMove()) {
		return GameView{}, model.MoveResult{}, ErrNotYourTurn
	}
	result, err := s.game.ApplyMove(fromPos, toPos)
	if err != nil {
		return GameView{}, model.MoveResult{}, err
	}
	s.lastMove = &result.Move
	log.Infow("move", "game", s.ID, "player", playerID, "notation", result.Notation)
	s.scheduleComputerLocked()
	return s.viewLocked(), result, nil
}

// Reset starts a fresh game in the current mode. Seats are kept.
func (s *Session) Reset(playerID string) (GameView, error) {
	s.mu.Lock()
	if !s.isSeatedLocked(playerID) {
		s.mu.Unlock()
		return GameView{}, ErrNotSeated
	}
	s.stopComputerLocked()
	s.game = model.NewGameWithMode(s.game.Mode())
	s.lastMove = nil
	log.Infow("game reset", "game", s.ID, "player", playerID)
	view := s.viewLocked()
	s.mu.Unlock()

	s.broadcast(view)
	return view, nil
}

func (s *Session) Record() model.Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return model.Encode(s.game)
}

func (s *Session) FEN() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.game.FEN()
}

// Restore replaces the game with rec. A malformed record leaves the session untouched.
func (s *Session) Restore(playerID string, rec model.Record) (GameView, error) {
	s.mu.Lock()
	if !s.isSeatedLocked(playerID) {
		s.mu.Unlock()
		return GameView{}, ErrNotSeated
	}
	if rec.Mode == model.ModePvE && !s.blackSeatFreeForLocked(playerID) {
		s.mu.Unlock()
		return GameView{}, fmt.Errorf("%w: black is held by %s", ErrGameFull, s.seats.Black.ID)
	}
	if err := s.game.Restore(rec); err != nil {
		s.mu.Unlock()
		return GameView{}, err
	}
	s.stopComputerLocked()
	s.seatComputerLocked()
	s.lastMove = nil
	s.scheduleComputerLocked()
	log.Infow("game restored", "game", s.ID, "player", playerID, "mode", s.game.Mode(), "plies", len(rec.History))
	view := s.viewLocked()
	s.mu.Unlock()

	s.broadcast(view)
	return view, nil
}

// blackSeatFreeForLocked reports whether the computer may take Black without
// unseating someone other than playerID.
func (s *Session) blackSeatFreeForLocked(playerID string) bool {
	switch s.seats.Black.ID {
	case "", ComputerID, playerID:
		return true
	}
	return false
}

// scheduleComputerLocked arms the computer's reply when it is Black's turn in
// a pve game that is still going.
func (s *Session) scheduleComputerLocked() {
	if s.game.Mode() != model.ModePvE || s.game.ToMove() != model.PlayerColorBlack {
		return
	}
	if s.game.Status() != model.StatusOngoing {
		return
	}
	s.stopComputerLocked()
	s.thinking = true
	gen := s.aiGen
	s.aiTimer = time.AfterFunc(s.aiDelay, func() { s.playComputerMove(gen) })
}

func (s *Session) stopComputerLocked() {
	if s.aiTimer != nil {
		s.aiTimer.Stop()
		s.aiTimer = nil
	}
	s.aiGen++
	s.thinking = false
}

func (s *Session) playComputerMove(gen int) {
	s.mu.Lock()
	if gen != s.aiGen {
		// reset, restored or rescheduled since this timer was armed
		s.mu.Unlock()
		return
	}
	s.aiTimer = nil
	s.thinking = false
	if s.game.Mode() != model.ModePvE || s.game.ToMove() != model.PlayerColorBlack {
		s.mu.Unlock()
		return
	}

	result, err := s.game.PlayComputerMove(s.rng)
	if err != nil {
		log.Warnw("computer move failed", "game", s.ID, "error", err)
	} else {
		s.lastMove = &result.Move
		log.Infow("computer move", "game", s.ID, "notation", result.Notation)
	}
	view := s.viewLocked()
	s.mu.Unlock()

	s.broadcast(view)
}

func (s *Session) close() {
	s.mu.Lock()
	s.stopComputerLocked()
	s.mu.Unlock()

	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	for playerID, conn := range s.connections.connections {
		conn.Close()
		delete(s.connections.connections, playerID)
	}
}

// RegisterConnection subscribes conn to state updates for playerID and sends
// it the current state. Anyone may watch; only seated players may move.
func (s *Session) RegisterConnection(playerID string, conn Conn) error {
	s.connections.mu.Lock()
	if _, exists := s.connections.connections[playerID]; exists {
		// keep the healthy connection, reject the new one
		s.connections.mu.Unlock()
		conn.WriteMessage(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ErrDuplicateConnection.Error()),
		)
		conn.Close()
		return ErrDuplicateConnection
	}
	s.connections.connections[playerID] = conn
	s.connections.mu.Unlock()
	log.Debugw("connection registered", "game", s.ID, "player", playerID)

	s.send(playerID, conn, s.View())
	return nil
}

// UnregisterConnection drops conn, unless playerID has since reconnected on another one.
func (s *Session) UnregisterConnection(playerID string, conn Conn) {
	s.connections.mu.Lock()
	defer s.connections.mu.Unlock()
	if current, exists := s.connections.connections[playerID]; exists && current == conn {
		delete(s.connections.connections, playerID)
		log.Debugw("connection unregistered", "game", s.ID, "player", playerID)
	}
}

func (s *Session) broadcast(view GameView) {
	s.connections.mu.RLock()
	active := make(map[string]Conn, len(s.connections.connections))
	for playerID, conn := range s.connections.connections {
		active[playerID] = conn
	}
	s.connections.mu.RUnlock()

	for playerID, conn := range active {
		s.send(playerID, conn, view)
	}
}

func (s *Session) send(playerID string, conn Conn, view GameView) {
	msg, err := ws.NewMessage(ws.MessageTypeGameState, view)
	if err != nil {
		log.Errorw("marshal game state", "game", s.ID, "error", err)
		return
	}
	if err := s.Write(conn, msg); err != nil {
		log.Warnw("dropping connection", "game", s.ID, "player", playerID, "error", err)
		s.UnregisterConnection(playerID, conn)
	}
}

// Write sends msg on conn, serialized with the session's broadcasts.
func (s *Session) Write(conn Conn, msg ws.Message) error {
	s.connections.writeMu.Lock()
	defer s.connections.writeMu.Unlock()
	return conn.WriteJSON(msg)
}
