// Package session ties one live board to the game clock and the
// per-difficulty best-time records.
package session

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/store"
)

var Log = logrus.New()

// Session owns the active difficulty, one board, the elapsed-time
// clock and the best-time records. Input events are forwarded to the
// board; every call completes fully before returning, so a UI layer
// only has to serialize its events into the session.
type Session struct {
	cfg    *config.Config
	active string
	game   *mines.GameState

	safeOpening bool
	rnd         *rand.Rand
	clock       Clock
	times       store.BestTimes
	best        store.Records

	started   bool
	startedAt time.Time
	endedAt   time.Time
}

func New(
	cfg *config.Config,
	times store.BestTimes,
	rnd *rand.Rand,
	clock Clock,
) (*Session, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Session{
		cfg:         cfg,
		active:      cfg.StartDifficulty,
		safeOpening: true,
		rnd:         rnd,
		clock:       clock,
		times:       times,
		best:        times.Load(),
	}
	if err := s.Reset(); err != nil {
		return nil, err
	}
	return s, nil
}

// Reset re-resolves the active profile and replaces the board
// wholesale; the timer and the old board's terminal state go with it.
func (s *Session) Reset() error {
	params, err := s.cfg.Difficulties[s.active].Resolve()
	if err != nil {
		return err
	}
	params.SafeOpening = s.safeOpening
	game, err := mines.NewGame(params, s.rnd)
	if err != nil {
		return err
	}
	s.game = game
	s.started = false
	s.startedAt = time.Time{}
	s.endedAt = time.Time{}
	return nil
}

// Game exposes the board for the presentation layer to read.
func (s *Session) Game() *mines.GameState { return s.game }

func (s *Session) Difficulty() string { return s.active }

// SetDifficulty switches the active profile and starts a new game.
func (s *Session) SetDifficulty(id string) error {
	if _, ok := s.cfg.Difficulties[id]; !ok {
		return fmt.Errorf("unknown difficulty %q", id)
	}
	s.active = id
	return s.Reset()
}

func (s *Session) SafeOpening() bool { return s.safeOpening }

// ToggleSafeOpening flips the safe-first-click policy. A policy
// change always starts a new game rather than mutating one mid-play.
func (s *Session) ToggleSafeOpening() error {
	s.safeOpening = !s.safeOpening
	return s.Reset()
}

func (s *Session) Reveal(x, y int) {
	if !s.game.Active() || !s.game.PointInBounds(x, y) {
		return
	}
	if c := s.game.CellAt(x, y); c.Revealed || c.Flagged {
		return
	}
	// the clock starts on the first effective reveal, before mines
	// are even placed
	if !s.started {
		s.started = true
		s.startedAt = s.clock.Now()
	}
	s.game.Reveal(x, y)
	s.afterMove()
}

func (s *Session) ToggleFlag(x, y int) {
	s.game.ToggleFlag(x, y)
}

func (s *Session) Chord(x, y int) {
	s.game.Chord(x, y)
	s.afterMove()
}

func (s *Session) afterMove() {
	if s.game.Active() || !s.endedAt.IsZero() {
		return
	}
	s.endedAt = s.clock.Now()
	if s.game.Won {
		s.recordBest()
	}
}

// Elapsed is zero until the first reveal; afterwards it runs with the
// clock and freezes on the terminal transition.
func (s *Session) Elapsed() time.Duration {
	if !s.started {
		return 0
	}
	end := s.endedAt
	if end.IsZero() {
		end = s.clock.Now()
	}
	return max(0, end.Sub(s.startedAt))
}

// BestTime reports the stored best for a difficulty, if any.
func (s *Session) BestTime(id string) (float64, bool) {
	t, ok := s.best[id]
	return t, ok
}

// recordBest persists a strictly better (or first) positive winning
// time, for the active difficulty only. A failed write is logged and
// forgotten; the in-memory record stands.
func (s *Session) recordBest() {
	t := s.Elapsed().Seconds()
	if t <= 0 {
		return
	}
	if best, ok := s.best[s.active]; ok && best <= t {
		return
	}
	s.best[s.active] = t
	if err := s.times.Save(s.best); err != nil {
		Log.WithError(err).Warn("could not persist best times")
	}
}
