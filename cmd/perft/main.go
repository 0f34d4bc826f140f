// Command perft counts move-tree leaves for a position and can compare the
// per-move split against dragontoothmg.
package main

import (
	"flag"
	"fmt"
	"os"
	"sort"

	"github.com/benbeisheim/macanchess-backend/internal/model"
	"github.com/benbeisheim/macanchess-backend/internal/oracle"
	"github.com/gofiber/fiber/v2/log"
)

func main() {
	fen := flag.String("fen", "", "position to search (default: initial position)")
	depth := flag.Int("depth", 3, "search depth in plies")
	verify := flag.Bool("verify", false, "compare each root move against dragontoothmg")
	flag.Parse()
	if *depth < 1 {
		log.Fatalf("depth must be at least 1, got %d", *depth)
	}

	g := model.NewGame()
	if *fen != "" {
		var err error
		if g, err = model.GameFromFEN(*fen); err != nil {
			log.Fatal(err)
		}
	}

	divide := g.PerftDivide(*depth)
	moves := make([]string, 0, len(divide))
	for m := range divide {
		moves = append(moves, m)
	}
	sort.Strings(moves)

	var want map[string]int
	if *verify {
		var err error
		// re-export so castling and en passant fields are cleared
		if want, err = oracle.Divide(g.FEN(), *depth); err != nil {
			log.Fatal(err)
		}
	}

	total, mismatches := 0, 0
	for _, m := range moves {
		total += divide[m]
		if want == nil {
			fmt.Printf("%s: %d\n", m, divide[m])
			continue
		}
		mark := ""
		if want[m] != divide[m] {
			mark = fmt.Sprintf("  (dragontooth %d)", want[m])
			mismatches++
		}
		fmt.Printf("%s: %d%s\n", m, divide[m], mark)
	}
	for m, n := range want {
		if _, ok := divide[m]; !ok {
			fmt.Printf("%s: missing (dragontooth %d)\n", m, n)
			mismatches++
		}
	}
	fmt.Printf("\nnodes: %d\n", total)

	if mismatches > 0 {
		fmt.Printf("%d mismatches\n", mismatches)
		os.Exit(1)
	}
}
