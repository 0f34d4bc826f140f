package model

import (
	"fmt"
)

// Game is the rule engine for one board. It is not safe for concurrent use;
// the owner serialises every call.
type Game struct {
	state GameState
}

type GameState struct {
	Board          *BoardState    `json:"boardState"`
	ToMove         PlayerColor    `json:"toMove"`
	MoveHistory    []string       `json:"moveHistory"`
	CapturedPieces CapturedPieces `json:"capturedPieces"`
	Mode           GameMode       `json:"mode"`
}

// CapturedPieces are listed under the side that took them.
type CapturedPieces struct {
	White []Piece `json:"white"`
	Black []Piece `json:"black"`
}

func NewGame() *Game {
	return NewGameWithMode(ModePvP)
}

func NewGameWithMode(mode GameMode) *Game {
	return &Game{state: newGameState(mode)}
}

func newGameState(mode GameMode) GameState {
	return GameState{
		Board:          newBoard(),
		ToMove:         PlayerColorWhite,
		MoveHistory:    make([]string, 0),
		CapturedPieces: newCapturedPieces(),
		Mode:           mode,
	}
}

func newCapturedPieces() CapturedPieces {
	return CapturedPieces{
		White: make([]Piece, 0),
		Black: make([]Piece, 0),
	}
}

func (c *CapturedPieces) add(capturer PlayerColor, piece Piece) {
	if capturer == PlayerColorWhite {
		c.White = append(c.White, piece)
	} else {
		c.Black = append(c.Black, piece)
	}
}

func (g *Game) ToMove() PlayerColor { return g.state.ToMove }

func (g *Game) Mode() GameMode { return g.state.Mode }

// PieceAt returns a copy of the piece on position.
func (g *Game) PieceAt(position Position) (Piece, bool) {
	piece := g.state.Board.pieceAt(position)
	if piece == nil {
		return Piece{}, false
	}
	return *piece, true
}

func (g *Game) History() []string {
	return append(make([]string, 0, len(g.state.MoveHistory)), g.state.MoveHistory...)
}

// Snapshot deep-copies the state; changes to it never reach the game.
func (g *Game) Snapshot() GameState {
	return GameState{
		Board:       g.state.Board.clone(),
		ToMove:      g.state.ToMove,
		MoveHistory: g.History(),
		CapturedPieces: CapturedPieces{
			White: append(make([]Piece, 0, len(g.state.CapturedPieces.White)), g.state.CapturedPieces.White...),
			Black: append(make([]Piece, 0, len(g.state.CapturedPieces.Black)), g.state.CapturedPieces.Black...),
		},
		Mode: g.state.Mode,
	}
}

// Status classifies the position for the side to move.
func (g *Game) Status() GameStatus {
	if g.hasLegalMove(g.state.ToMove) {
		return StatusOngoing
	}
	if g.IsInCheck(g.state.ToMove) {
		return StatusCheckmate
	}
	return StatusStalemate
}

// ApplyMove validates from->to against the side to move and the legal move
// list, then commits it.
func (g *Game) ApplyMove(from, to Position) (MoveResult, error) {
	if !boundaryCheck(from) || !boundaryCheck(to) {
		return MoveResult{}, fmt.Errorf("%w: %+v -> %+v: %w", ErrInvalidMove, from, to, ErrOutOfBounds)
	}
	piece := g.state.Board.pieceAt(from)
	if piece == nil {
		return MoveResult{}, fmt.Errorf("%w: no piece at %s", ErrInvalidMove, from)
	}
	if piece.Color != g.state.ToMove {
		return MoveResult{}, fmt.Errorf("%w: %s to move, %s belongs to %s", ErrInvalidMove, g.state.ToMove, from, piece.Color)
	}
	if !g.isLegal(from, to) {
		return MoveResult{}, fmt.Errorf("%w: %s %s -> %s", ErrInvalidMove, piece.Type.Name(), from, to)
	}
	return g.executeMove(from, to), nil
}

func (g *Game) executeMove(from, to Position) MoveResult {
	board := g.state.Board
	mover := g.state.ToMove
	u := board.relocate(from, to)
	u.piece.HasMoved = true

	result := MoveResult{
		Committed: true,
		Move:      SimpleMove{From: from, To: to},
		Piece:     *u.piece,
	}
	notation := fmt.Sprintf("%s %s → %s", u.piece.Type.Name(), from, to)
	if u.captured != nil {
		captured := *u.captured
		g.state.CapturedPieces.add(mover, captured)
		result.Captured = &captured
		notation += " ×" + captured.Type.Name()
	}

	opponent := mover.Opponent()
	inCheck := isKingInCheck(board, opponent)
	noMoves := !g.hasLegalMove(opponent)
	result.Check = inCheck
	switch {
	case inCheck && noMoves:
		result.Checkmate = true
		notation += " #"
	case inCheck:
		notation += " +"
	case noMoves:
		result.Stalemate = true
	}
	result.Notation = notation

	g.state.MoveHistory = append(g.state.MoveHistory, notation)
	g.switchTurn()
	return result
}

func (g *Game) switchTurn() {
	g.state.ToMove = g.state.ToMove.Opponent()
}
