package mines

import (
	"math/rand/v2"

	"github.com/sirupsen/logrus"
)

var Log = logrus.New()

// GameState is a single board: the mine layout, the player's reveal
// and flag marks, and the terminal flags. A board starts empty; mines
// are placed lazily by the first Reveal so the opening move can be
// kept safe. Invalid player input (out-of-bounds coordinates, moves
// against a finished game, moves on ineligible cells) is a silent
// no-op throughout.
type GameState struct {
	GameParams
	mines     []bool
	numbers   []int8 /* -1 on mine cells, 0-8 elsewhere */
	revealed  []bool
	flagged   []bool
	generated bool

	Dead, Won   bool
	exploded    int
	flagsLeft   int
	revealCount int

	rnd *rand.Rand
}

func NewGame(params GameParams, r *rand.Rand) (*GameState, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	n := params.CellCount()
	return &GameState{
		GameParams: params,
		mines:      make([]bool, n),
		numbers:    make([]int8, n),
		revealed:   make([]bool, n),
		flagged:    make([]bool, n),
		exploded:   -1,
		flagsLeft:  params.MineCount,
		rnd:        r,
	}, nil
}

func (s *GameState) Active() bool { return !s.Dead && !s.Won }

func (s *GameState) Generated() bool { return s.generated }

func (s *GameState) FlagsLeft() int { return s.flagsLeft }

func (s *GameState) RevealCount() int { return s.revealCount }

// ExplodedAt reports the cell whose mine ended the game, if any.
func (s *GameState) ExplodedAt() (x, y int, ok bool) {
	if s.exploded < 0 {
		return 0, 0, false
	}
	return s.exploded % s.Width, s.exploded / s.Width, true
}

// Cell is a read-only view of one cell for the presentation layer.
type Cell struct {
	Revealed, Flagged, Mine bool
	Count                   int8
}

func (s *GameState) CellAt(x, y int) Cell {
	i := y*s.Width + x
	return Cell{
		Revealed: s.revealed[i],
		Flagged:  s.flagged[i],
		Mine:     s.mines[i],
		Count:    s.numbers[i],
	}
}

func (s *GameState) Reveal(x, y int) {
	if !s.Active() || !s.PointInBounds(x, y) {
		return
	}
	i := y*s.Width + x
	if s.flagged[i] || s.revealed[i] {
		return
	}
	if !s.generated {
		s.placeMines(x, y)
	}
	if s.mines[i] {
		/*
		 * The player has landed on a mine. Bad luck. Expose the
		 * whole mine set so the final board shows what was where.
		 */
		s.Dead = true
		s.exploded = i
		for j, mine := range s.mines {
			if mine {
				s.revealed[j] = true
			}
		}
		return
	}
	if s.numbers[i] == 0 {
		s.floodReveal(x, y)
	} else {
		s.revealed[i] = true
		s.revealCount++
	}
	s.checkWin()
}

// floodReveal opens the connected zero-region around x,y plus its
// numbered border. Cells with a nonzero count are revealed but never
// used as expansion sources. Explicit worklist, no recursion: the
// cascade is bounded by the board size.
func (s *GameState) floodReveal(x, y int) {
	var (
		std     = newCelltodo(s.CellCount())
		visited = make([]bool, s.CellCount())
		start   = y*s.Width + x
	)
	std.add(start)
	visited[start] = true
	for i := std.head; i != -1; i = std.next[i] {
		if s.flagged[i] || s.revealed[i] {
			continue
		}
		s.revealed[i] = true
		s.revealCount++
		if s.numbers[i] != 0 {
			continue
		}
		for nx, ny := range s.neighbours(i%s.Width, i/s.Width) {
			j := ny*s.Width + nx
			if !visited[j] && !s.revealed[j] && !s.flagged[j] {
				visited[j] = true
				std.add(j)
			}
		}
	}
}

// ToggleFlag marks or unmarks a covered cell. Planting a flag needs
// a flag left in stock; removing one always succeeds.
func (s *GameState) ToggleFlag(x, y int) {
	if !s.Active() || !s.PointInBounds(x, y) {
		return
	}
	i := y*s.Width + x
	if s.revealed[i] {
		return
	}
	if s.flagged[i] {
		s.flagged[i] = false
		s.flagsLeft++
	} else if s.flagsLeft > 0 {
		s.flagged[i] = true
		s.flagsLeft--
	}
}

// Chord opens every unflagged covered neighbour of a revealed
// numbered cell, but only when the flagged neighbours match its count
// exactly. A misplaced flag makes chording lose the game.
func (s *GameState) Chord(x, y int) {
	if !s.Active() || !s.PointInBounds(x, y) {
		return
	}
	i := y*s.Width + x
	if !s.revealed[i] || s.numbers[i] <= 0 {
		return
	}
	c := int(s.numbers[i])
	js := make([]int, 0, 8-c)
	m := 0
	for nx, ny := range s.neighbours(x, y) {
		j := ny*s.Width + nx
		if s.flagged[j] {
			m++
		} else if !s.revealed[j] {
			js = append(js, j)
		}
	}
	if m != c {
		/* ambiguous: the flags neither confirm nor deny anything */
		return
	}
	for _, j := range js {
		s.Reveal(j%s.Width, j/s.Width)
		if !s.Active() {
			return
		}
	}
}

// checkWin is the sole place a win is declared. Winning flags every
// remaining mine and empties the flag stock.
func (s *GameState) checkWin() {
	if !s.Active() || s.revealCount < s.CellCount()-s.MineCount {
		return
	}
	s.Won = true
	for i, mine := range s.mines {
		if mine && !s.flagged[i] {
			s.flagged[i] = true
		}
	}
	s.flagsLeft = 0
}
