package mines

import (
	"fmt"
	"iter"
	"strings"
)

var ErrBadParams = fmt.Errorf("bad game params")

// GameParams fully describes one board configuration. SafeOpening
// asks placement to guarantee a zero-count opening cell whenever the
// board has room for it.
type GameParams struct {
	Width, Height, MineCount int
	SafeOpening              bool
}

func (p GameParams) CellCount() int { return p.Width * p.Height }

// Validate rejects configurations no board can be built from. This is
// the only fatal precondition in the package; everything downstream
// treats bad player input as a no-op.
func (p GameParams) Validate() error {
	if p.Width < 1 || p.Height < 1 {
		return fmt.Errorf("%w: %dx%d grid", ErrBadParams, p.Width, p.Height)
	}
	if p.MineCount < 1 || p.MineCount > p.CellCount()-1 {
		return fmt.Errorf(
			"%w: %d mines do not fit a %dx%d grid",
			ErrBadParams, p.MineCount, p.Width, p.Height,
		)
	}
	return nil
}

func (p GameParams) PointInBounds(x, y int) bool {
	return 0 <= x && x < p.Width && 0 <= y && y < p.Height
}

// Seed is a compact textual form of the params, accepted back by
// [ParseSeed]. SafeOpening is encoded as a trailing 0 or 1.
func (p GameParams) Seed() string {
	s := 0
	if p.SafeOpening {
		s = 1
	}
	return fmt.Sprintf("%d:%d:%d:%d", p.Width, p.Height, p.MineCount, s)
}

func ParseSeed(seed string) (*GameParams, error) {
	p := &GameParams{}
	s := 0
	sseed := strings.ReplaceAll(seed, ":", " ")
	n, err := fmt.Sscanf(
		sseed, "%d %d %d %d", &p.Width, &p.Height, &p.MineCount, &s,
	)
	if n != 4 || err != nil {
		return nil, fmt.Errorf(
			`invalid game params seed (sseed = "%s", n = %d, err = %w)`,
			sseed, n, err,
		)
	}
	p.SafeOpening = s == 1
	return p, nil
}

// neighbours yields the coordinates of the up-to-8 cells around x,y.
// Edge and corner cells yield fewer.
func (p GameParams) neighbours(x, y int) iter.Seq2[int, int] {
	return func(yield func(int, int) bool) {
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				if dx == 0 && dy == 0 {
					continue
				}
				if p.PointInBounds(x+dx, y+dy) && !yield(x+dx, y+dy) {
					return
				}
			}
		}
	}
}
