package mines

import (
	"fmt"
	"strconv"
	"strings"
)

type CellState int8

const (
	Unknown      CellState = -2
	Flagged      CellState = -1
	Mine         CellState = 64
	ExplodedMine CellState = 65
	/*
	 * Values 0 to 8 mean the cell is open and carry its surrounding
	 * mine count. Mine and ExplodedMine only appear once a loss has
	 * exposed the full mine set.
	 */
)

func (s CellState) String() string {
	switch {
	case s == Unknown:
		return "."
	case s == Flagged:
		return "*"
	case s == Mine:
		return "o"
	case s == ExplodedMine:
		return "X"
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	default:
		return "!"
	}
}

type Grid []CellState

func (g Grid) ToString(width int) string {
	var b strings.Builder
	for y := range len(g) / width {
		for x := range width {
			i := y*width + x
			if i >= len(g) {
				break
			}
			fmt.Fprint(&b, g[i].String()+" ")
		}
		fmt.Fprint(&b, "\n")

	}
	return b.String()
}

// PlayerView renders the player-visible grid, one [CellState] per
// cell, for the presentation layer to draw each frame.
func (s *GameState) PlayerView() Grid {
	g := make(Grid, s.CellCount())
	for i := range g {
		switch {
		case s.revealed[i] && s.mines[i]:
			if i == s.exploded {
				g[i] = ExplodedMine
			} else {
				g[i] = Mine
			}
		case s.revealed[i]:
			g[i] = CellState(s.numbers[i])
		case s.flagged[i]:
			g[i] = Flagged
		default:
			g[i] = Unknown
		}
	}
	return g
}
