package mines

import (
	"math/rand/v2"
	"slices"

	"github.com/sirupsen/logrus"
)

/*
 * Mines are not placed until the player reveals their first cell, so
 * placement can keep a forbidden zone around that cell: the cell
 * itself plus, with SafeOpening, its up-to-8 neighbours. A layout
 * whose opening cell carries a nonzero count would not auto-flood, so
 * with SafeOpening such layouts are discarded and redrawn until the
 * opening is a zero. Dense boards may never produce one; past
 * maxPlacementAttempts the last layout is accepted as-is instead of
 * spinning forever.
 */

const maxPlacementAttempts = 100

func (s *GameState) placeMines(safeX, safeY int) {
	safe := safeY*s.Width + safeX

	forbidden := make([]bool, s.CellCount())
	forbidden[safe] = true
	if s.SafeOpening {
		for nx, ny := range s.neighbours(safeX, safeY) {
			forbidden[ny*s.Width+nx] = true
		}
	}

	candidates := make([]int, 0, s.CellCount())
	for i, f := range forbidden {
		if !f {
			candidates = append(candidates, i)
		}
	}
	if len(candidates) < s.MineCount {
		/* board too small for the full safe zone */
		candidates = candidates[:0]
		for i := range s.CellCount() {
			if i != safe {
				candidates = append(candidates, i)
			}
		}
	}

	attempt := 0
	for {
		attempt++
		s.mines = attemptPlacement(s.rnd, s.CellCount(), candidates, s.MineCount)
		s.numbers = countNumbers(s.GameParams, s.mines)
		if !s.SafeOpening || s.numbers[safe] == 0 {
			break
		}
		if attempt >= maxPlacementAttempts {
			Log.WithFields(logrus.Fields{
				"params":   s.GameParams.Seed(),
				"attempts": attempt,
			}).Warn("accepting a nonzero opening cell")
			break
		}
	}
	s.generated = true
}

// attemptPlacement draws mineCount distinct cells from candidates
// uniformly at random and returns a fresh mine layout. candidates is
// left untouched so the retry loop can call it again.
func attemptPlacement(r *rand.Rand, cells int, candidates []int, mineCount int) []bool {
	grid := make([]bool, cells)
	cand := slices.Clone(candidates)
	k := len(cand)
	for range mineCount {
		i := r.IntN(k)
		grid[cand[i]] = true
		k--
		cand[i] = cand[k]
	}
	return grid
}

// countNumbers computes every cell's neighbouring mine count. Mine
// cells get -1; their count is never consulted by the reveal logic.
func countNumbers(p GameParams, mines []bool) []int8 {
	numbers := make([]int8, len(mines))
	for y := range p.Height {
		for x := range p.Width {
			i := y*p.Width + x
			if mines[i] {
				numbers[i] = -1
				continue
			}
			for nx, ny := range p.neighbours(x, y) {
				if mines[ny*p.Width+nx] {
					numbers[i]++
				}
			}
		}
	}
	return numbers
}
