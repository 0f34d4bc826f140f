package service

import "github.com/benbeisheim/macanchess-backend/internal/model"

type Seats struct {
	White model.ClientPlayer `json:"white"`
	Black model.ClientPlayer `json:"black"`
}

// GameView is what clients see of a session, over REST and the websocket.
type GameView struct {
	ID             string               `json:"gameId"`
	Mode           model.GameMode       `json:"mode"`
	Board          [][]*model.Piece     `json:"board"`
	ToMove         model.PlayerColor    `json:"toMove"`
	MoveHistory    []string             `json:"moveHistory"`
	CapturedPieces model.CapturedPieces `json:"capturedPieces"`
	IsCheck        bool                 `json:"isCheck"`
	Status         model.GameStatus     `json:"status"`
	Winner         model.PlayerColor    `json:"winner,omitempty"`
	LastMove       *model.SimpleMove    `json:"lastMove"`
	Thinking       bool                 `json:"thinking"`
	Players        Seats                `json:"players"`
	FEN            string               `json:"fen"`
}

func newGameView(id string, g *model.Game, seats Seats, lastMove *model.SimpleMove, thinking bool) GameView {
	snap := g.Snapshot()
	view := GameView{
		ID:             id,
		Mode:           snap.Mode,
		Board:          snap.Board.Board,
		ToMove:         snap.ToMove,
		MoveHistory:    snap.MoveHistory,
		CapturedPieces: snap.CapturedPieces,
		IsCheck:        g.IsInCheck(snap.ToMove),
		Status:         g.Status(),
		Thinking:       thinking,
		Players:        seats,
		FEN:            g.FEN(),
	}
	if lastMove != nil {
		m := *lastMove
		view.LastMove = &m
	}
	if view.Status == model.StatusCheckmate {
		view.Winner = snap.ToMove.Opponent()
	}
	return view
}
