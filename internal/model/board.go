package model

import (
	"fmt"
	"strings"
)

type PieceType string

const (
	King   PieceType = "K"
	Queen  PieceType = "Q"
	Rook   PieceType = "R"
	Bishop PieceType = "B"
	Knight PieceType = "N"
	Pawn   PieceType = "P"
)

// Name is the descriptive name used in move notation.
func (p PieceType) Name() string {
	switch p {
	case King:
		return "Lion"
	case Queen:
		return "Panther"
	case Rook:
		return "Boar"
	case Bishop:
		return "Tiger"
	case Knight:
		return "Cheetah"
	case Pawn:
		return "Rabbit"
	}
	return ""
}

func (p PieceType) valid() bool {
	return p.Name() != ""
}

type BoardState struct {
	Board             [][]*Piece `json:"board"`
	BlackKingPosition Position   `json:"blackKingPosition"`
	WhiteKingPosition Position   `json:"whiteKingPosition"`
}

type Piece struct {
	Type     PieceType   `json:"type"`
	Color    PlayerColor `json:"color"`
	Position Position    `json:"position"`
	HasMoved bool        `json:"hasMoved"`
}

// Position addresses a square: X is the file (0 = a), Y the row (0 = Black's back rank).
type Position struct {
	X int `json:"x"`
	Y int `json:"y"`
}

func (p Position) String() string {
	return fmt.Sprintf("%c%d", p.X+97, 8-p.Y)
}

func (p Position) add(dir Position) Position {
	return Position{X: p.X + dir.X, Y: p.Y + dir.Y}
}

// ParseSquare converts "e2" style text into a Position.
func ParseSquare(square string) (Position, error) {
	s := strings.ToLower(strings.TrimSpace(square))
	if len(s) != 2 {
		return Position{}, fmt.Errorf("%w: %q", ErrOutOfBounds, square)
	}
	pos := Position{X: int(s[0]) - 'a', Y: 8 - (int(s[1]) - '0')}
	if !boundaryCheck(pos) {
		return Position{}, fmt.Errorf("%w: %q", ErrOutOfBounds, square)
	}
	return pos, nil
}

func boundaryCheck(position Position) bool {
	return position.X >= 0 && position.X < 8 && position.Y >= 0 && position.Y < 8
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func emptyBoard() *BoardState {
	board := &BoardState{}
	for i := 0; i < 8; i++ {
		board.Board = append(board.Board, make([]*Piece, 8))
	}
	return board
}

func newBoard() *BoardState {
	board := emptyBoard()
	for x, kind := range backRank {
		board.place(&Piece{Type: kind, Color: PlayerColorBlack, Position: Position{X: x, Y: 0}})
		board.place(&Piece{Type: Pawn, Color: PlayerColorBlack, Position: Position{X: x, Y: 1}})
		board.place(&Piece{Type: Pawn, Color: PlayerColorWhite, Position: Position{X: x, Y: 6}})
		board.place(&Piece{Type: kind, Color: PlayerColorWhite, Position: Position{X: x, Y: 7}})
	}
	return board
}

// place puts a piece on its own square, used only while building a board.
func (b *BoardState) place(piece *Piece) {
	b.Board[piece.Position.Y][piece.Position.X] = piece
	if piece.Type == King {
		b.setKingPosition(piece.Color, piece.Position)
	}
}

func (b *BoardState) pieceAt(position Position) *Piece {
	if !boundaryCheck(position) {
		return nil
	}
	return b.Board[position.Y][position.X]
}

func (b *BoardState) kingPosition(color PlayerColor) Position {
	if color == PlayerColorWhite {
		return b.WhiteKingPosition
	}
	return b.BlackKingPosition
}

func (b *BoardState) setKingPosition(color PlayerColor, position Position) {
	if color == PlayerColorWhite {
		b.WhiteKingPosition = position
	} else {
		b.BlackKingPosition = position
	}
}

// undo holds what relocate changed so revert can put it back exactly.
type undo struct {
	piece    *Piece
	captured *Piece
	from     Position
	to       Position
}

// relocate is the only routine that moves pieces on the grid. The piece at
// to, if any, is shadowed rather than touched: its Position is left as is.
func (b *BoardState) relocate(from, to Position) undo {
	piece := b.Board[from.Y][from.X]
	u := undo{piece: piece, captured: b.Board[to.Y][to.X], from: from, to: to}
	b.Board[to.Y][to.X] = piece
	b.Board[from.Y][from.X] = nil
	piece.Position = to
	if piece.Type == King {
		b.setKingPosition(piece.Color, to)
	}
	return u
}

func (b *BoardState) revert(u undo) {
	b.Board[u.from.Y][u.from.X] = u.piece
	b.Board[u.to.Y][u.to.X] = u.captured
	u.piece.Position = u.from
	if u.piece.Type == King {
		b.setKingPosition(u.piece.Color, u.from)
	}
}

// clone deep-copies the grid so callers outside the engine cannot reach live pieces.
func (b *BoardState) clone() *BoardState {
	c := emptyBoard()
	for y, row := range b.Board {
		for x, piece := range row {
			if piece != nil {
				p := *piece
				c.Board[y][x] = &p
			}
		}
	}
	c.WhiteKingPosition = b.WhiteKingPosition
	c.BlackKingPosition = b.BlackKingPosition
	return c
}
