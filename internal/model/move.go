package model

type SimpleMove struct {
	From Position `json:"from"`
	To   Position `json:"to"`
}

func (m SimpleMove) String() string {
	return m.From.String() + m.To.String()
}

// MoveResult describes a committed move and the position it left for the opponent.
type MoveResult struct {
	Committed bool       `json:"committed"`
	Move      SimpleMove `json:"move"`
	Piece     Piece      `json:"piece"`
	Captured  *Piece     `json:"capturedPiece"`
	Notation  string     `json:"notation"`
	Check     bool       `json:"isCheck"`
	Checkmate bool       `json:"isCheckmate"`
	Stalemate bool       `json:"isStalemate"`
}

type GameStatus string

const (
	StatusOngoing   GameStatus = "ongoing"
	StatusCheckmate GameStatus = "checkmate"
	StatusStalemate GameStatus = "stalemate"
)
