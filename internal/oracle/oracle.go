// Package oracle computes legal moves and perft counts with third-party
// generators, restricted to the moves this engine knows: no castling, no en
// passant and no promotion. Positions must be given as FEN with "-" castling
// and en passant fields.
package oracle

import (
	"errors"
	"fmt"
	"sort"

	"github.com/dylhunn/dragontoothmg"
	"github.com/notnil/chess"
)

var (
	ErrBadFEN    = errors.New("oracle: bad fen")
	ErrPromotion = errors.New("oracle: promotion within horizon")
)

func squareName(sq uint8) string {
	return fmt.Sprintf("%c%d", 'a'+sq%8, sq/8+1)
}

func parse(fen string) (dragontoothmg.Board, error) {
	// dragontoothmg panics on bad input, notnil reports it
	if _, err := chess.FEN(fen); err != nil {
		return dragontoothmg.Board{}, fmt.Errorf("%w: %v", ErrBadFEN, err)
	}
	return dragontoothmg.ParseFen(fen), nil
}

// isEnPassant reports a pawn capture onto an empty square.
func isEnPassant(b *dragontoothmg.Board, m dragontoothmg.Move) bool {
	from, to := m.From(), m.To()
	if from%8 == to%8 {
		return false
	}
	own, other := &b.White, &b.Black
	if !b.Wtomove {
		own, other = &b.Black, &b.White
	}
	return own.Pawns&(uint64(1)<<from) != 0 && other.All&(uint64(1)<<to) == 0
}

// moves returns the legal moves with en passant dropped and promotions
// collapsed to one entry per from/to pair.
func moves(b *dragontoothmg.Board) (list []dragontoothmg.Move, promotes bool) {
	seen := map[string]bool{}
	for _, m := range b.GenerateLegalMoves() {
		if isEnPassant(b, m) {
			continue
		}
		if m.Promote() != dragontoothmg.Nothing {
			promotes = true
		}
		key := squareName(m.From()) + squareName(m.To())
		if seen[key] {
			continue
		}
		seen[key] = true
		list = append(list, m)
	}
	return list, promotes
}

// DragontoothMoves lists the legal moves of fen as sorted "e2e4" strings.
func DragontoothMoves(fen string) ([]string, error) {
	b, err := parse(fen)
	if err != nil {
		return nil, err
	}
	list, _ := moves(&b)
	out := make([]string, 0, len(list))
	for _, m := range list {
		out = append(out, squareName(m.From())+squareName(m.To()))
	}
	sort.Strings(out)
	return out, nil
}

// NotnilMoves is DragontoothMoves computed by notnil/chess.
func NotnilMoves(fen string) ([]string, error) {
	opt, err := chess.FEN(fen)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadFEN, err)
	}
	pos := chess.NewGame(opt).Position()
	seen := map[string]bool{}
	for _, m := range pos.ValidMoves() {
		if m.HasTag(chess.EnPassant) || m.HasTag(chess.KingSideCastle) || m.HasTag(chess.QueenSideCastle) {
			continue
		}
		seen[m.S1().String()+m.S2().String()] = true
	}
	out := make([]string, 0, len(seen))
	for k := range seen {
		out = append(out, k)
	}
	sort.Strings(out)
	return out, nil
}

// Divide splits the perft count of fen by root move. It fails with
// ErrPromotion when a pawn could promote above the last ply, since the
// engine's pawns do not promote.
func Divide(fen string, depth int) (map[string]int, error) {
	b, err := parse(fen)
	if err != nil {
		return nil, err
	}
	divide := make(map[string]int)
	if depth <= 0 {
		return divide, nil
	}
	list, promotes := moves(&b)
	if promotes && depth > 1 {
		return nil, ErrPromotion
	}
	for _, m := range list {
		unapply := b.Apply(m)
		n, err := perft(&b, depth-1)
		unapply()
		if err != nil {
			return nil, err
		}
		divide[squareName(m.From())+squareName(m.To())] = n
	}
	return divide, nil
}

func perft(b *dragontoothmg.Board, depth int) (int, error) {
	if depth == 0 {
		return 1, nil
	}
	list, promotes := moves(b)
	if depth == 1 {
		return len(list), nil
	}
	if promotes {
		return 0, ErrPromotion
	}
	nodes := 0
	for _, m := range list {
		unapply := b.Apply(m)
		n, err := perft(b, depth-1)
		unapply()
		if err != nil {
			return 0, err
		}
		nodes += n
	}
	return nodes, nil
}
