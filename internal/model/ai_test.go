package model

import (
	"errors"
	"math/rand"
	"testing"
)

func TestSingleCaptureAlwaysChosen(t *testing.T) {
	g := NewGame()
	play(t, g, "e2", "e4")
	play(t, g, "d7", "d5")

	want := SimpleMove{From: mustSquare(t, "e4"), To: mustSquare(t, "d5")}
	for seed := int64(0); seed < 25; seed++ {
		got, ok := SelectMove(g, PlayerColorWhite, rand.New(rand.NewSource(seed)))
		if !ok || got != want {
			t.Fatalf("seed %d: got %s ok=%v want %s", seed, got, ok, want)
		}
	}
	if got, ok := SelectMove(g, PlayerColorWhite, nil); !ok || got != want {
		t.Fatalf("nil rng: got %s", got)
	}
	if len(g.History()) != 2 || g.ToMove() != PlayerColorWhite {
		t.Fatal("SelectMove must not play the move")
	}
}

func TestSelectMovePrefersValuableCapture(t *testing.T) {
	g := gameFromDiagram(t, PlayerColorBlack,
		".......k",
		"........",
		"..Q.R...",
		"........",
		"...n....",
		"........",
		"........",
		".......K",
	)
	for seed := int64(0); seed < 10; seed++ {
		got, ok := SelectMove(g, PlayerColorBlack, rand.New(rand.NewSource(seed)))
		if !ok {
			t.Fatal("no move selected")
		}
		if got.String() != "d4c6" {
			t.Fatalf("seed %d: got %s want the queen capture d4c6", seed, got)
		}
	}
}

func TestSelectMoveIsReproducibleForASeed(t *testing.T) {
	g := NewGame()
	first, _ := SelectMove(g, PlayerColorWhite, rand.New(rand.NewSource(99)))
	for i := 0; i < 5; i++ {
		again, _ := SelectMove(g, PlayerColorWhite, rand.New(rand.NewSource(99)))
		if again != first {
			t.Fatalf("seed 99 gave %s then %s", first, again)
		}
	}
	if first.To.Y < 2 || first.To.Y > 5 || first.To.X < 2 || first.To.X > 5 {
		t.Fatalf("opening choice %s should land in the centre", first)
	}
}

func TestSelectMoveWithoutMoves(t *testing.T) {
	g := NewGame()
	play(t, g, "f2", "f3")
	play(t, g, "e7", "e5")
	play(t, g, "g2", "g4")
	play(t, g, "d8", "h4")
	if _, ok := SelectMove(g, PlayerColorWhite, rand.New(rand.NewSource(1))); ok {
		t.Fatal("mated side has no move to select")
	}
	if _, err := g.PlayComputerMove(rand.New(rand.NewSource(1))); !errors.Is(err, ErrNoLegalMoves) {
		t.Fatalf("PlayComputerMove: got %v want ErrNoLegalMoves", err)
	}
}

func TestPlayComputerMoveCommits(t *testing.T) {
	g := NewGameWithMode(ModePvE)
	play(t, g, "e2", "e4")
	result, err := g.PlayComputerMove(rand.New(rand.NewSource(5)))
	if err != nil {
		t.Fatalf("computer move: %v", err)
	}
	if !result.Committed || result.Piece.Color != PlayerColorBlack {
		t.Fatalf("result %+v", result)
	}
	if g.ToMove() != PlayerColorWhite || len(g.History()) != 2 {
		t.Fatal("computer move not recorded")
	}
}
