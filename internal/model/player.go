package model

type PlayerColor string

const (
	PlayerColorWhite PlayerColor = "white"
	PlayerColorBlack PlayerColor = "black"
)

func (c PlayerColor) Opponent() PlayerColor {
	if c == PlayerColorWhite {
		return PlayerColorBlack
	}
	return PlayerColorWhite
}

func (c PlayerColor) valid() bool {
	return c == PlayerColorWhite || c == PlayerColorBlack
}

// forward is the row delta of a pawn step for this side.
func (c PlayerColor) forward() int {
	if c == PlayerColorWhite {
		return -1
	}
	return 1
}

func (c PlayerColor) pawnStartRow() int {
	if c == PlayerColorWhite {
		return 6
	}
	return 1
}

// GameMode says who plays Black: another person (pvp) or the computer (pve).
type GameMode string

const (
	ModePvP GameMode = "pvp"
	ModePvE GameMode = "pve"
)

func (m GameMode) Valid() bool {
	return m == ModePvP || m == ModePvE
}

type ClientPlayer struct {
	ID    string      `json:"name"`
	Color PlayerColor `json:"color"`
}
