package model

var (
	orthogonalDirs = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}}
	diagonalDirs   = []Position{{X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
	knightDirs     = []Position{{X: 2, Y: 1}, {X: 2, Y: -1}, {X: -2, Y: 1}, {X: -2, Y: -1}, {X: 1, Y: 2}, {X: 1, Y: -2}, {X: -1, Y: 2}, {X: -1, Y: -2}}
	kingDirs       = []Position{{X: 1, Y: 0}, {X: -1, Y: 0}, {X: 0, Y: 1}, {X: 0, Y: -1}, {X: 1, Y: 1}, {X: 1, Y: -1}, {X: -1, Y: 1}, {X: -1, Y: -1}}
)

type moveRule struct {
	dirs    []Position
	sliding bool
}

// Pawns are not in the table: their pushes and captures depend on side and occupancy.
var moveRules = map[PieceType]moveRule{
	King:   {dirs: kingDirs},
	Queen:  {dirs: kingDirs, sliding: true},
	Rook:   {dirs: orthogonalDirs, sliding: true},
	Bishop: {dirs: diagonalDirs, sliding: true},
	Knight: {dirs: knightDirs},
}

func pseudoMoves(board *BoardState, piece *Piece) []Position {
	if piece.Type == Pawn {
		return pseudoPawnMoves(board, piece)
	}
	rule, ok := moveRules[piece.Type]
	if !ok {
		return nil
	}
	targets := []Position{}
	for _, dir := range rule.dirs {
		targetPos := piece.Position.add(dir)
		for boundaryCheck(targetPos) {
			occupant := board.Board[targetPos.Y][targetPos.X]
			if occupant == nil {
				targets = append(targets, targetPos)
			} else {
				if occupant.Color != piece.Color {
					targets = append(targets, targetPos)
				}
				break
			}
			if !rule.sliding {
				break
			}
			targetPos = targetPos.add(dir)
		}
	}
	return targets
}

func pseudoPawnMoves(board *BoardState, piece *Piece) []Position {
	targets := []Position{}
	dy := piece.Color.forward()
	one := Position{X: piece.Position.X, Y: piece.Position.Y + dy}
	if boundaryCheck(one) && board.pieceAt(one) == nil {
		targets = append(targets, one)
		two := Position{X: one.X, Y: one.Y + dy}
		if piece.Position.Y == piece.Color.pawnStartRow() && board.pieceAt(two) == nil {
			targets = append(targets, two)
		}
	}
	for _, dx := range []int{-1, 1} {
		diag := Position{X: piece.Position.X + dx, Y: piece.Position.Y + dy}
		if target := board.pieceAt(diag); target != nil && target.Color != piece.Color {
			targets = append(targets, diag)
		}
	}
	return targets
}

// LegalMoves returns the destinations the piece on from may move to without
// leaving its own king attacked. It does not consider whose turn it is.
func (g *Game) LegalMoves(from Position) []Position {
	piece := g.state.Board.pieceAt(from)
	if piece == nil {
		return []Position{}
	}
	legal := []Position{}
	for _, to := range pseudoMoves(g.state.Board, piece) {
		if !g.state.Board.wouldCauseSelfCheck(from, to) {
			legal = append(legal, to)
		}
	}
	return legal
}

// AllLegalMoves scans the board row by row and collects every legal move for color.
func (g *Game) AllLegalMoves(color PlayerColor) []SimpleMove {
	legalMoves := []SimpleMove{}
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			piece := g.state.Board.Board[y][x]
			if piece == nil || piece.Color != color {
				continue
			}
			from := Position{X: x, Y: y}
			for _, to := range g.LegalMoves(from) {
				legalMoves = append(legalMoves, SimpleMove{From: from, To: to})
			}
		}
	}
	return legalMoves
}

func (g *Game) hasLegalMove(color PlayerColor) bool {
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			piece := g.state.Board.Board[y][x]
			if piece != nil && piece.Color == color && len(g.LegalMoves(Position{X: x, Y: y})) > 0 {
				return true
			}
		}
	}
	return false
}

func (g *Game) isLegal(from, to Position) bool {
	for _, dest := range g.LegalMoves(from) {
		if dest == to {
			return true
		}
	}
	return false
}
