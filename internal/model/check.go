package model

func isKingInCheck(board *BoardState, color PlayerColor) bool {
	return isSquareAttacked(board, color.Opponent(), board.kingPosition(color))
}

// isSquareAttacked looks outward from position for an attacker of attackingColor.
func isSquareAttacked(board *BoardState, attackingColor PlayerColor, position Position) bool {
	for _, dir := range orthogonalDirs {
		if slidingAttacker(board, attackingColor, position, dir, Rook) {
			return true
		}
	}
	for _, dir := range diagonalDirs {
		if slidingAttacker(board, attackingColor, position, dir, Bishop) {
			return true
		}
	}
	for _, dir := range knightDirs {
		if isPieceAt(board, position.add(dir), attackingColor, Knight) {
			return true
		}
	}
	for _, dir := range kingDirs {
		if isPieceAt(board, position.add(dir), attackingColor, King) {
			return true
		}
	}
	// A pawn attacks the two squares diagonally in front of it.
	pawnRow := position.Y - attackingColor.forward()
	for _, dx := range []int{-1, 1} {
		if isPieceAt(board, Position{X: position.X + dx, Y: pawnRow}, attackingColor, Pawn) {
			return true
		}
	}
	return false
}

func slidingAttacker(board *BoardState, attackingColor PlayerColor, position, dir Position, kind PieceType) bool {
	targetPos := position.add(dir)
	for boundaryCheck(targetPos) {
		if piece := board.Board[targetPos.Y][targetPos.X]; piece != nil {
			return piece.Color == attackingColor && (piece.Type == kind || piece.Type == Queen)
		}
		targetPos = targetPos.add(dir)
	}
	return false
}

func isPieceAt(board *BoardState, position Position, color PlayerColor, kind PieceType) bool {
	piece := board.pieceAt(position)
	return piece != nil && piece.Color == color && piece.Type == kind
}

// wouldCauseSelfCheck plays from->to on the grid, asks whether the mover's king
// is attacked, and restores the grid, the piece and the king cache.
func (b *BoardState) wouldCauseSelfCheck(from, to Position) bool {
	piece := b.pieceAt(from)
	if piece == nil || !boundaryCheck(to) {
		return false
	}
	u := b.relocate(from, to)
	inCheck := isKingInCheck(b, piece.Color)
	b.revert(u)
	return inCheck
}

// IsInCheck reports whether color's king is attacked.
func (g *Game) IsInCheck(color PlayerColor) bool {
	return isKingInCheck(g.state.Board, color)
}

// IsCheckmate is check with no legal reply.
func (g *Game) IsCheckmate(color PlayerColor) bool {
	return g.IsInCheck(color) && !g.hasLegalMove(color)
}

// IsStalemate is no legal reply without being in check.
func (g *Game) IsStalemate(color PlayerColor) bool {
	return !g.IsInCheck(color) && !g.hasLegalMove(color)
}
