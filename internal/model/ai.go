package model

import "fmt"

// Shuffler is satisfied by *rand.Rand.
type Shuffler interface {
	Shuffle(n int, swap func(i, j int))
}

// Scores are kept in tenths of a pawn.
var pieceValues = map[PieceType]int{
	Pawn:   10,
	Knight: 30,
	Bishop: 30,
	Rook:   50,
	Queen:  90,
	King:   1000,
}

const centreBonus = 1

// SelectMove picks the legal move for color with the most valuable capture,
// preferring centre squares. Candidates are shuffled with rng first and the
// first strictly better score wins, so rng only decides between equal scores.
// A nil rng keeps board scan order.
func SelectMove(g *Game, color PlayerColor, rng Shuffler) (SimpleMove, bool) {
	moves := g.AllLegalMoves(color)
	if len(moves) == 0 {
		return SimpleMove{}, false
	}
	if rng != nil {
		rng.Shuffle(len(moves), func(i, j int) {
			moves[i], moves[j] = moves[j], moves[i]
		})
	}
	best := moves[0]
	bestScore := -1
	for _, move := range moves {
		if score := scoreMove(g.state.Board, move); score > bestScore {
			best, bestScore = move, score
		}
	}
	return best, true
}

func scoreMove(board *BoardState, move SimpleMove) int {
	score := 0
	if target := board.pieceAt(move.To); target != nil {
		score = pieceValues[target.Type]
	}
	if move.To.Y >= 2 && move.To.Y <= 5 && move.To.X >= 2 && move.To.X <= 5 {
		score += centreBonus
	}
	return score
}

// PlayComputerMove selects a move for the side to move and applies it.
func (g *Game) PlayComputerMove(rng Shuffler) (MoveResult, error) {
	move, ok := SelectMove(g, g.state.ToMove, rng)
	if !ok {
		return MoveResult{}, fmt.Errorf("%w for %s", ErrNoLegalMoves, g.state.ToMove)
	}
	return g.ApplyMove(move.From, move.To)
}
