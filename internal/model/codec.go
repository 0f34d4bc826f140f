package model

import (
	"encoding/json"
	"fmt"
)

// Record is the persisted form of a game. Its JSON layout is shared with
// existing save files and must not change.
type Record struct {
	Board     [][]*PieceRecord `json:"board"`
	Turn      PlayerColor      `json:"turn"`
	History   []string         `json:"history"`
	CapturedW []PieceType      `json:"captured_w"`
	CapturedB []PieceType      `json:"captured_b"`
	Mode      GameMode         `json:"mode"`
}

type PieceRecord struct {
	Type     PieceType   `json:"type"`
	Color    PlayerColor `json:"color"`
	HasMoved *bool       `json:"has_moved"`
}

func Encode(g *Game) Record {
	rec := Record{
		Board:     make([][]*PieceRecord, 8),
		Turn:      g.state.ToMove,
		History:   g.History(),
		CapturedW: capturedKinds(g.state.CapturedPieces.White),
		CapturedB: capturedKinds(g.state.CapturedPieces.Black),
		Mode:      g.state.Mode,
	}
	for y, row := range g.state.Board.Board {
		rec.Board[y] = make([]*PieceRecord, 8)
		for x, piece := range row {
			if piece == nil {
				continue
			}
			hasMoved := piece.HasMoved
			rec.Board[y][x] = &PieceRecord{Type: piece.Type, Color: piece.Color, HasMoved: &hasMoved}
		}
	}
	return rec
}

func capturedKinds(pieces []Piece) []PieceType {
	kinds := make([]PieceType, 0, len(pieces))
	for _, p := range pieces {
		kinds = append(kinds, p.Type)
	}
	return kinds
}

// Decode builds a new game from rec. Captured pieces come back by kind only
// and the king cache is recomputed from the grid.
func Decode(rec Record) (*Game, error) {
	switch {
	case rec.Board == nil:
		return nil, malformed("missing board")
	case rec.History == nil:
		return nil, malformed("missing history")
	case rec.CapturedW == nil:
		return nil, malformed("missing captured_w")
	case rec.CapturedB == nil:
		return nil, malformed("missing captured_b")
	case !rec.Turn.valid():
		return nil, malformed("unknown turn %q", rec.Turn)
	}
	mode := rec.Mode
	if mode == "" {
		mode = ModePvP
	}
	if !mode.Valid() {
		return nil, malformed("unknown mode %q", rec.Mode)
	}
	if len(rec.Board) != 8 {
		return nil, malformed("board has %d rows", len(rec.Board))
	}

	board := emptyBoard()
	kings := map[PlayerColor]int{}
	for y, row := range rec.Board {
		if len(row) != 8 {
			return nil, malformed("row %d has %d cells", y, len(row))
		}
		for x, cell := range row {
			if cell == nil {
				continue
			}
			pos := Position{X: x, Y: y}
			if !cell.Type.valid() {
				return nil, malformed("unknown piece type %q at %s", cell.Type, pos)
			}
			if !cell.Color.valid() {
				return nil, malformed("unknown color %q at %s", cell.Color, pos)
			}
			if cell.HasMoved == nil {
				return nil, malformed("missing has_moved at %s", pos)
			}
			if cell.Type == King {
				kings[cell.Color]++
			}
			board.place(&Piece{Type: cell.Type, Color: cell.Color, Position: pos, HasMoved: *cell.HasMoved})
		}
	}
	if err := checkPosition(board, kings, rec.Turn); err != nil {
		return nil, err
	}

	capturedWhite, err := decodeCaptured(rec.CapturedW, PlayerColorBlack)
	if err != nil {
		return nil, err
	}
	capturedBlack, err := decodeCaptured(rec.CapturedB, PlayerColorWhite)
	if err != nil {
		return nil, err
	}
	return &Game{state: GameState{
		Board:          board,
		ToMove:         rec.Turn,
		MoveHistory:    append(make([]string, 0, len(rec.History)), rec.History...),
		CapturedPieces: CapturedPieces{White: capturedWhite, Black: capturedBlack},
		Mode:           mode,
	}}, nil
}

// checkPosition rejects boards the engine cannot play from: a missing or extra
// king, or the side that just moved still standing in check.
func checkPosition(board *BoardState, kings map[PlayerColor]int, toMove PlayerColor) error {
	if kings[PlayerColorWhite] != 1 || kings[PlayerColorBlack] != 1 {
		return malformed("need one king per side, have white=%d black=%d", kings[PlayerColorWhite], kings[PlayerColorBlack])
	}
	if isKingInCheck(board, toMove.Opponent()) {
		return malformed("%s is in check with %s to move", toMove.Opponent(), toMove)
	}
	return nil
}

func decodeCaptured(kinds []PieceType, color PlayerColor) ([]Piece, error) {
	pieces := make([]Piece, 0, len(kinds))
	for _, kind := range kinds {
		if !kind.valid() {
			return nil, malformed("unknown captured piece type %q", kind)
		}
		pieces = append(pieces, Piece{Type: kind, Color: color})
	}
	return pieces, nil
}

// Restore replaces the game with rec. On error the game is left as it was.
func (g *Game) Restore(rec Record) error {
	decoded, err := Decode(rec)
	if err != nil {
		return err
	}
	g.state = decoded.state
	return nil
}

func EncodeJSON(g *Game) ([]byte, error) {
	return json.MarshalIndent(Encode(g), "", "    ")
}

// ParseRecord unmarshals a record without validating it.
func ParseRecord(data []byte) (Record, error) {
	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		return Record{}, fmt.Errorf("%w: %v", ErrMalformedRecord, err)
	}
	return rec, nil
}

func DecodeJSON(data []byte) (*Game, error) {
	rec, err := ParseRecord(data)
	if err != nil {
		return nil, err
	}
	return Decode(rec)
}

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformedRecord, fmt.Sprintf(format, args...))
}
