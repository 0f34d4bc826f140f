package model

import (
	"errors"
	"math/rand"
	"strings"
	"testing"
)

func TestOpeningMoveAndWrongSide(t *testing.T) {
	g := NewGame()
	if _, err := g.ApplyMove(mustSquare(t, "e7"), mustSquare(t, "e5")); !errors.Is(err, ErrInvalidMove) {
		t.Fatalf("black pawn on white's turn: got %v want ErrInvalidMove", err)
	}
	result := play(t, g, "e2", "e4")
	if !result.Committed || result.Checkmate {
		t.Fatalf("unexpected result %+v", result)
	}
	if result.Notation != "Rabbit e2 → e4" {
		t.Fatalf("notation: got %q", result.Notation)
	}
	if g.ToMove() != PlayerColorBlack {
		t.Fatalf("turn after e4: %s", g.ToMove())
	}
	pawn, ok := g.PieceAt(mustSquare(t, "e4"))
	if !ok || pawn.Type != Pawn || !pawn.HasMoved {
		t.Fatalf("e4 holds %+v", pawn)
	}
}

func TestApplyMoveRejectsIllegalRequests(t *testing.T) {
	tests := []struct {
		name     string
		from, to Position
	}{
		{name: "empty square", from: Position{X: 4, Y: 4}, to: Position{X: 4, Y: 3}},
		{name: "off board", from: Position{X: 4, Y: 6}, to: Position{X: 4, Y: -2}},
		{name: "not a pawn move", from: Position{X: 4, Y: 6}, to: Position{X: 4, Y: 3}},
		{name: "onto own piece", from: Position{X: 0, Y: 7}, to: Position{X: 0, Y: 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := NewGame()
			before := Encode(g)
			if _, err := g.ApplyMove(tt.from, tt.to); !errors.Is(err, ErrInvalidMove) {
				t.Fatalf("got %v want ErrInvalidMove", err)
			}
			if g.ToMove() != PlayerColorWhite || len(g.History()) != 0 {
				t.Fatal("rejected move changed the game")
			}
			if after := Encode(g); len(after.History) != len(before.History) {
				t.Fatal("rejected move wrote history")
			}
		})
	}
}

func TestFoolsMate(t *testing.T) {
	g := NewGame()
	play(t, g, "f2", "f3")
	play(t, g, "e7", "e5")
	play(t, g, "g2", "g4")
	result := play(t, g, "d8", "h4")

	if !result.Checkmate || !result.Check {
		t.Fatalf("expected checkmate, got %+v", result)
	}
	if !g.IsCheckmate(PlayerColorWhite) {
		t.Fatal("IsCheckmate(white) = false")
	}
	if g.Status() != StatusCheckmate {
		t.Fatalf("status: %s", g.Status())
	}
	history := g.History()
	if len(history) != 4 {
		t.Fatalf("history length %d", len(history))
	}
	last := history[len(history)-1]
	if last != "Panther d8 → h4 #" || !strings.HasSuffix(last, " #") {
		t.Fatalf("last notation %q", last)
	}
	if len(g.AllLegalMoves(PlayerColorWhite)) != 0 {
		t.Fatal("mated side still has moves")
	}
}

func TestCheckNotationAndCaptures(t *testing.T) {
	g := NewGame()
	play(t, g, "e2", "e4")
	play(t, g, "d7", "d5")
	result := play(t, g, "e4", "d5")
	if result.Captured == nil || result.Captured.Type != Pawn {
		t.Fatalf("capture not reported: %+v", result)
	}
	if result.Notation != "Rabbit e4 → d5 ×Rabbit" {
		t.Fatalf("capture notation %q", result.Notation)
	}
	snap := g.Snapshot()
	if len(snap.CapturedPieces.White) != 1 || snap.CapturedPieces.White[0].Color != PlayerColorBlack {
		t.Fatalf("white captures %+v", snap.CapturedPieces.White)
	}
	if len(snap.CapturedPieces.Black) != 0 {
		t.Fatalf("black captures %+v", snap.CapturedPieces.Black)
	}

	play(t, g, "e7", "e6")
	check := play(t, g, "f1", "b5")
	if !check.Check || check.Checkmate || check.Notation != "Tiger f1 → b5 +" {
		t.Fatalf("check result %+v", check)
	}
	if !g.IsInCheck(PlayerColorBlack) {
		t.Fatal("black should be in check")
	}
}

func TestStalemateIsNotCheckmate(t *testing.T) {
	g := gameFromDiagram(t, PlayerColorWhite,
		".......k",
		".....K..",
		"........",
		"......Q.",
		"........",
		"........",
		"........",
		"........",
	)
	result := play(t, g, "g5", "g6")
	if !result.Stalemate || result.Checkmate || result.Check {
		t.Fatalf("expected stalemate, got %+v", result)
	}
	if result.Notation != "Panther g5 → g6" {
		t.Fatalf("notation %q", result.Notation)
	}
	if g.Status() != StatusStalemate || !g.IsStalemate(PlayerColorBlack) || g.IsCheckmate(PlayerColorBlack) {
		t.Fatalf("status %s", g.Status())
	}
}

func TestKingMoveUpdatesCache(t *testing.T) {
	g := NewGame()
	play(t, g, "e2", "e4")
	play(t, g, "e7", "e5")
	play(t, g, "e1", "e2")
	if got := g.state.Board.kingPosition(PlayerColorWhite); got != mustSquare(t, "e2") {
		t.Fatalf("white king cache %s", got)
	}
	assertConsistent(t, g)
}

func TestRandomGamesKeepInvariants(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	for game := 0; game < 10; game++ {
		g := NewGame()
		for ply := 0; ply < 120; ply++ {
			color := g.ToMove()
			if want := []PlayerColor{PlayerColorWhite, PlayerColorBlack}[ply%2]; color != want {
				t.Fatalf("game %d ply %d: %s to move, want %s", game, ply, color, want)
			}
			moves := g.AllLegalMoves(color)
			if len(moves) == 0 {
				if g.Status() == StatusOngoing {
					t.Fatalf("no moves but status ongoing")
				}
				break
			}
			for _, m := range moves {
				if g.state.Board.wouldCauseSelfCheck(m.From, m.To) {
					t.Fatalf("generator returned self-check %s", m)
				}
			}
			m := moves[rng.Intn(len(moves))]
			if _, err := g.ApplyMove(m.From, m.To); err != nil {
				t.Fatalf("game %d ply %d %s: %v", game, ply, m, err)
			}
			if g.IsInCheck(color) {
				t.Fatalf("%s left its king in check with %s", color, m)
			}
			assertConsistent(t, g)
		}
	}
}

func TestSnapshotIsDetached(t *testing.T) {
	g := NewGame()
	snap := g.Snapshot()
	snap.Board.Board[6][4] = nil
	snap.MoveHistory = append(snap.MoveHistory, "bogus")
	if _, ok := g.PieceAt(mustSquare(t, "e2")); !ok {
		t.Fatal("snapshot edit reached the live board")
	}
	if len(g.History()) != 0 {
		t.Fatal("snapshot edit reached the history")
	}
}
