package model

import (
	"math/rand"
	"sort"
	"strings"
	"testing"
)

func mustSquare(t *testing.T, square string) Position {
	t.Helper()
	pos, err := ParseSquare(square)
	if err != nil {
		t.Fatalf("parse square %q: %v", square, err)
	}
	return pos
}

func play(t *testing.T, g *Game, from, to string) MoveResult {
	t.Helper()
	result, err := g.ApplyMove(mustSquare(t, from), mustSquare(t, to))
	if err != nil {
		t.Fatalf("move %s-%s: %v", from, to, err)
	}
	return result
}

// gameFromDiagram builds a game from eight rows, Black's back rank first.
// Upper case is White, lower case Black, '.' an empty square.
func gameFromDiagram(t *testing.T, toMove PlayerColor, rows ...string) *Game {
	t.Helper()
	if len(rows) != 8 {
		t.Fatalf("diagram needs 8 rows, got %d", len(rows))
	}
	board := emptyBoard()
	for y, row := range rows {
		if len(row) != 8 {
			t.Fatalf("row %d needs 8 squares: %q", y, row)
		}
		for x, ch := range row {
			if ch == '.' {
				continue
			}
			color := PlayerColorBlack
			if strings.ToUpper(string(ch)) == string(ch) {
				color = PlayerColorWhite
			}
			kind := PieceType(strings.ToUpper(string(ch)))
			if !kind.valid() {
				t.Fatalf("unknown piece %q", ch)
			}
			pos := Position{X: x, Y: y}
			board.place(&Piece{Type: kind, Color: color, Position: pos, HasMoved: kind == Pawn && y != color.pawnStartRow()})
		}
	}
	return &Game{state: GameState{
		Board:          board,
		ToMove:         toMove,
		MoveHistory:    make([]string, 0),
		CapturedPieces: newCapturedPieces(),
		Mode:           ModePvP,
	}}
}

func squares(positions []Position) []string {
	out := make([]string, 0, len(positions))
	for _, p := range positions {
		out = append(out, p.String())
	}
	sort.Strings(out)
	return out
}

func moveNames(moves []SimpleMove) []string {
	out := make([]string, 0, len(moves))
	for _, m := range moves {
		out = append(out, m.String())
	}
	sort.Strings(out)
	return out
}

func assertConsistent(t *testing.T, g *Game) {
	t.Helper()
	kings := map[PlayerColor]int{}
	for y, row := range g.state.Board.Board {
		for x, piece := range row {
			if piece == nil {
				continue
			}
			pos := Position{X: x, Y: y}
			if piece.Position != pos {
				t.Fatalf("piece on %s thinks it is on %s", pos, piece.Position)
			}
			if piece.Type == King {
				kings[piece.Color]++
				if cached := g.state.Board.kingPosition(piece.Color); cached != pos {
					t.Fatalf("%s king on %s but cache says %s", piece.Color, pos, cached)
				}
			}
		}
	}
	if kings[PlayerColorWhite] != 1 || kings[PlayerColorBlack] != 1 {
		t.Fatalf("king count white=%d black=%d", kings[PlayerColorWhite], kings[PlayerColorBlack])
	}
}

func pawnOnLastRow(g *Game) bool {
	for _, y := range []int{0, 7} {
		for _, piece := range g.state.Board.Board[y] {
			if piece != nil && piece.Type == Pawn {
				return true
			}
		}
	}
	return false
}

// randomPlayout plays up to plies random legal moves and returns how many were played.
func randomPlayout(t *testing.T, g *Game, rng *rand.Rand, plies int) int {
	t.Helper()
	for ply := 0; ply < plies; ply++ {
		moves := g.AllLegalMoves(g.ToMove())
		if len(moves) == 0 {
			return ply
		}
		m := moves[rng.Intn(len(moves))]
		if _, err := g.ApplyMove(m.From, m.To); err != nil {
			t.Fatalf("ply %d %s: %v", ply, m, err)
		}
	}
	return plies
}
