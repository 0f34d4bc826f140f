package model

// Perft counts the leaf nodes of the legal move tree depth plies deep.
// It plays moves through relocate/revert, so history and captures stay untouched.
func (g *Game) Perft(depth int) int {
	if depth <= 0 {
		return 1
	}
	color := g.state.ToMove
	moves := g.AllLegalMoves(color)
	if depth == 1 {
		return len(moves)
	}
	nodes := 0
	for _, move := range moves {
		nodes += g.perftChild(move, depth-1)
	}
	return nodes
}

// PerftDivide splits the perft count by root move, keyed like "e2e4".
func (g *Game) PerftDivide(depth int) map[string]int {
	divide := make(map[string]int)
	if depth <= 0 {
		return divide
	}
	for _, move := range g.AllLegalMoves(g.state.ToMove) {
		divide[move.String()] = g.perftChild(move, depth-1)
	}
	return divide
}

func (g *Game) perftChild(move SimpleMove, depth int) int {
	color := g.state.ToMove
	u := g.state.Board.relocate(move.From, move.To)
	g.state.ToMove = color.Opponent()
	nodes := g.Perft(depth)
	g.state.ToMove = color
	g.state.Board.revert(u)
	return nodes
}
