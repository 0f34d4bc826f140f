package oracle

import (
	"errors"
	"reflect"
	"testing"
)

const initial = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w - - 0 1"

func TestInitialPosition(t *testing.T) {
	dt, err := DragontoothMoves(initial)
	if err != nil {
		t.Fatal(err)
	}
	nn, err := NotnilMoves(initial)
	if err != nil {
		t.Fatal(err)
	}
	if len(dt) != 20 || !reflect.DeepEqual(dt, nn) {
		t.Fatalf("dragontooth %v\nnotnil %v", dt, nn)
	}

	divide, err := Divide(initial, 2)
	if err != nil {
		t.Fatal(err)
	}
	total := 0
	for _, n := range divide {
		total += n
	}
	if len(divide) != 20 || total != 400 {
		t.Fatalf("divide %v", divide)
	}
}

func TestEnPassantIsDropped(t *testing.T) {
	fen := "4k3/8/8/3pP3/8/8/8/4K3 w - d6 0 1"
	want := []string{"e1d1", "e1d2", "e1e2", "e1f1", "e1f2", "e5e6"}
	for name, gen := range map[string]func(string) ([]string, error){
		"dragontooth": DragontoothMoves,
		"notnil":      NotnilMoves,
	} {
		got, err := gen(fen)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(got, want) {
			t.Fatalf("%s: got %v want %v", name, got, want)
		}
	}
}

func TestPromotion(t *testing.T) {
	fen := "8/P6k/8/8/8/8/8/K7 w - - 0 1"
	divide, err := Divide(fen, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(divide) != 4 || divide["a7a8"] != 1 {
		t.Fatalf("divide %v", divide)
	}
	if _, err := Divide(fen, 2); !errors.Is(err, ErrPromotion) {
		t.Fatalf("got %v want ErrPromotion", err)
	}
}

func TestBadFEN(t *testing.T) {
	if _, err := DragontoothMoves("not a fen"); !errors.Is(err, ErrBadFEN) {
		t.Fatalf("got %v want ErrBadFEN", err)
	}
	if _, err := Divide("not a fen", 1); !errors.Is(err, ErrBadFEN) {
		t.Fatalf("got %v want ErrBadFEN", err)
	}
}
