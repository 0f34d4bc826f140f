package model

import (
	"math/rand"
	"reflect"
	"testing"

	"github.com/benbeisheim/macanchess-backend/internal/oracle"
)

func TestPerftInitialPosition(t *testing.T) {
	// Castling, en passant and promotion cannot occur in the first three plies,
	// so the standard counts apply.
	want := []int{1, 20, 400, 8902}
	g := NewGame()
	before := Encode(g)
	for depth, nodes := range want {
		if got := g.Perft(depth); got != nodes {
			t.Fatalf("perft(%d): got %d want %d", depth, got, nodes)
		}
	}
	if !reflect.DeepEqual(before, Encode(g)) {
		t.Fatal("perft changed the game")
	}
	assertConsistent(t, g)
}

func TestPerftDivideSumsToPerft(t *testing.T) {
	g := NewGame()
	divide := g.PerftDivide(2)
	if len(divide) != 20 {
		t.Fatalf("root moves %d", len(divide))
	}
	total := 0
	for _, n := range divide {
		total += n
	}
	if total != 400 {
		t.Fatalf("divide total %d", total)
	}
	if divide["g1f3"] != 20 {
		t.Fatalf("g1f3 subtree %d", divide["g1f3"])
	}
}

// Random games are compared move for move against two independent generators.
// The FEN never offers castling or en passant, and promotions collapse to one
// from/to pair, so the sets must match until a pawn reaches the last row.
func TestLegalMovesMatchReferenceGenerators(t *testing.T) {
	rng := rand.New(rand.NewSource(2024))
	positions := 0
	for game := 0; game < 12; game++ {
		g := NewGame()
		for ply := 0; ply < 80 && !pawnOnLastRow(g); ply++ {
			fen := g.FEN()
			got := moveNames(g.AllLegalMoves(g.ToMove()))
			want, err := oracle.DragontoothMoves(fen)
			if err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("%s\nengine:      %v\ndragontooth: %v", fen, got, want)
			}
			if want, err = oracle.NotnilMoves(fen); err != nil {
				t.Fatal(err)
			}
			if !reflect.DeepEqual(got, want) {
				t.Fatalf("%s\nengine: %v\nnotnil: %v", fen, got, want)
			}
			positions++
			if len(got) == 0 {
				break
			}
			if randomPlayout(t, g, rng, 1) == 0 {
				break
			}
		}
	}
	if positions < 100 {
		t.Fatalf("only %d positions compared", positions)
	}
}

func TestPerftDivideMatchesDragontooth(t *testing.T) {
	g := NewGame()
	for _, mv := range [][2]string{{"e2", "e4"}, {"d7", "d5"}, {"g1", "f3"}} {
		play(t, g, mv[0], mv[1])
	}
	want, err := oracle.Divide(g.FEN(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if got := g.PerftDivide(3); !reflect.DeepEqual(got, want) {
		t.Fatalf("divide mismatch\nengine:      %v\ndragontooth: %v", got, want)
	}
}
