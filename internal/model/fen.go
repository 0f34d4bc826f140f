package model

import (
	"fmt"

	"github.com/notnil/chess"
)

var fenPieces = map[PlayerColor]map[PieceType]chess.Piece{
	PlayerColorWhite: {
		King: chess.WhiteKing, Queen: chess.WhiteQueen, Rook: chess.WhiteRook,
		Bishop: chess.WhiteBishop, Knight: chess.WhiteKnight, Pawn: chess.WhitePawn,
	},
	PlayerColorBlack: {
		King: chess.BlackKing, Queen: chess.BlackQueen, Rook: chess.BlackRook,
		Bishop: chess.BlackBishop, Knight: chess.BlackKnight, Pawn: chess.BlackPawn,
	},
}

var fenKinds = map[chess.PieceType]PieceType{
	chess.King:   King,
	chess.Queen:  Queen,
	chess.Rook:   Rook,
	chess.Bishop: Bishop,
	chess.Knight: Knight,
	chess.Pawn:   Pawn,
}

func toChessSquare(p Position) chess.Square {
	return chess.Square((7-p.Y)*8 + p.X)
}

func fromChessSquare(sq chess.Square) Position {
	return Position{X: int(sq.File()), Y: 7 - int(sq.Rank())}
}

// FEN describes the position in Forsyth-Edwards notation. Castling and en
// passant fields are always "-" since neither exists in this game.
func (g *Game) FEN() string {
	squares := make(map[chess.Square]chess.Piece)
	for _, row := range g.state.Board.Board {
		for _, piece := range row {
			if piece != nil {
				squares[toChessSquare(piece.Position)] = fenPieces[piece.Color][piece.Type]
			}
		}
	}
	turn := "w"
	if g.state.ToMove == PlayerColorBlack {
		turn = "b"
	}
	return fmt.Sprintf("%s %s - - 0 %d", chess.NewBoard(squares).String(), turn, len(g.state.MoveHistory)/2+1)
}

// GameFromFEN starts a game from a FEN position. Pawns away from their
// starting row are marked as moved; everything else is not.
func GameFromFEN(fen string) (*Game, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	pos := chess.NewGame(opt).Position()

	board := emptyBoard()
	kings := map[PlayerColor]int{}
	for sq, cp := range pos.Board().SquareMap() {
		kind, ok := fenKinds[cp.Type()]
		if !ok {
			continue
		}
		color := PlayerColorWhite
		if cp.Color() == chess.Black {
			color = PlayerColorBlack
		}
		position := fromChessSquare(sq)
		if kind == King {
			kings[color]++
		}
		board.place(&Piece{
			Type:     kind,
			Color:    color,
			Position: position,
			HasMoved: kind == Pawn && position.Y != color.pawnStartRow(),
		})
	}
	toMove := PlayerColorWhite
	if pos.Turn() == chess.Black {
		toMove = PlayerColorBlack
	}
	if err := checkPosition(board, kings, toMove); err != nil {
		return nil, err
	}
	return &Game{state: GameState{
		Board:          board,
		ToMove:         toMove,
		MoveHistory:    make([]string, 0),
		CapturedPieces: newCapturedPieces(),
		Mode:           ModePvP,
	}}, nil
}
