package session

import (
	"errors"
	"maps"
	"math/rand/v2"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/store"
)

func TestMain(m *testing.M) {
	Log.SetFormatter(&logrus.TextFormatter{
		DisableTimestamp: true,
	})
	m.Run()
}

type fakeClock struct{ now time.Time }

func (c *fakeClock) Now() time.Time { return c.now }

func (c *fakeClock) advance(d time.Duration) { c.now = c.now.Add(d) }

type memStore struct {
	records store.Records
	saves   int
	saveErr error
}

func (m *memStore) Load() store.Records {
	if m.records == nil {
		return store.Records{}
	}
	return m.records
}

func (m *memStore) Save(r store.Records) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.records = maps.Clone(r)
	return nil
}

func testConfig() *config.Config {
	return &config.Config{
		Mode:            "development",
		StartDifficulty: "standard",
		Difficulties: map[string]config.Profile{
			"standard": {Width: 8, Height: 8, MineCount: 10},
			"dense":    {Width: 8, Height: 8, Density: 0.25},
		},
		DifficultyOrder: []string{"standard", "dense"},
	}
}

func newTestSession(t *testing.T) (*Session, *fakeClock, *memStore) {
	t.Helper()
	clock := &fakeClock{now: time.Unix(1000, 0)}
	st := &memStore{}
	s, err := New(testConfig(), st, rand.New(rand.NewPCG(1, 2)), clock)
	require.NoError(t, err)
	return s, clock, st
}

// startRun makes the opening reveal. A layout whose opening flood
// clears the whole board would win at time zero, so those boards are
// redrawn: the tests need a run they can finish after moving the
// fake clock.
func startRun(t *testing.T, s *Session) {
	t.Helper()
	for range 100 {
		s.Reveal(0, 0)
		if s.Game().Active() {
			return
		}
		require.NoError(t, s.Reset())
	}
	t.Fatal("could not open a board without finishing it")
}

// finishWin reveals every remaining safe cell.
func finishWin(t *testing.T, s *Session) {
	t.Helper()
	game := s.Game()
	for y := range game.Height {
		for x := range game.Width {
			if !game.CellAt(x, y).Mine {
				s.Reveal(x, y)
			}
		}
	}
	require.True(t, game.Won, "expected the game to be won")
}

// loseOn reveals some mine cell.
func loseOn(t *testing.T, s *Session) {
	t.Helper()
	game := s.Game()
	for y := range game.Height {
		for x := range game.Width {
			if game.CellAt(x, y).Mine {
				s.Reveal(x, y)
				require.True(t, game.Dead, "expected the game to be lost")
				return
			}
		}
	}
	t.Fatal("no mine on the board")
}

func TestClockStartsOnFirstEffectiveReveal(t *testing.T) {
	t.Parallel()
	s, clock, _ := newTestSession(t)

	assert.Equal(t, time.Duration(0), s.Elapsed())

	// flags and rejected reveals must not start the clock
	s.ToggleFlag(0, 0)
	s.Reveal(0, 0)
	clock.advance(5 * time.Second)
	assert.Equal(t, time.Duration(0), s.Elapsed())
	s.ToggleFlag(0, 0)

	startRun(t, s)
	clock.advance(3 * time.Second)
	assert.Equal(t, 3*time.Second, s.Elapsed())
	clock.advance(2 * time.Second)
	assert.Equal(t, 5*time.Second, s.Elapsed())
}

func TestClockFreezesOnLoss(t *testing.T) {
	t.Parallel()
	s, clock, _ := newTestSession(t)

	startRun(t, s)
	clock.advance(7 * time.Second)
	loseOn(t, s)
	clock.advance(time.Minute)
	assert.Equal(t, 7*time.Second, s.Elapsed())
}

func TestResetClearsTimer(t *testing.T) {
	t.Parallel()
	s, clock, _ := newTestSession(t)

	startRun(t, s)
	clock.advance(3 * time.Second)
	require.NoError(t, s.Reset())
	assert.Equal(t, time.Duration(0), s.Elapsed())
	assert.Equal(t, 0, s.Game().RevealCount())
}

func TestBestTimeRecording(t *testing.T) {
	t.Parallel()
	s, clock, st := newTestSession(t)

	startRun(t, s)
	clock.advance(12300 * time.Millisecond)
	finishWin(t, s)

	best, ok := s.BestTime("standard")
	require.True(t, ok, "expected a best time after the first win")
	assert.InDelta(t, 12.3, best, 1e-9)
	assert.Equal(t, 1, st.saves)
	assert.InDelta(t, 12.3, st.records["standard"], 1e-9)

	// a slower win must not overwrite the record
	require.NoError(t, s.Reset())
	startRun(t, s)
	clock.advance(15 * time.Second)
	finishWin(t, s)
	best, _ = s.BestTime("standard")
	assert.InDelta(t, 12.3, best, 1e-9)
	assert.Equal(t, 1, st.saves)

	// a faster one does
	require.NoError(t, s.Reset())
	startRun(t, s)
	clock.advance(9900 * time.Millisecond)
	finishWin(t, s)
	best, _ = s.BestTime("standard")
	assert.InDelta(t, 9.9, best, 1e-9)
	assert.Equal(t, 2, st.saves)
}

func TestWinTouchesOnlyActiveDifficulty(t *testing.T) {
	t.Parallel()
	clock := &fakeClock{now: time.Unix(1000, 0)}
	st := &memStore{records: store.Records{"dense": 5}}
	s, err := New(testConfig(), st, rand.New(rand.NewPCG(1, 2)), clock)
	require.NoError(t, err)

	startRun(t, s)
	clock.advance(30 * time.Second)
	finishWin(t, s)

	assert.InDelta(t, 5, st.records["dense"], 1e-9)
	assert.InDelta(t, 30, st.records["standard"], 1e-9)

	best, ok := s.BestTime("dense")
	require.True(t, ok)
	assert.InDelta(t, 5, best, 1e-9)
}

func TestLossRecordsNothing(t *testing.T) {
	t.Parallel()
	s, clock, st := newTestSession(t)

	startRun(t, s)
	clock.advance(3 * time.Second)
	loseOn(t, s)

	_, ok := s.BestTime("standard")
	assert.False(t, ok)
	assert.Equal(t, 0, st.saves)
}

func TestSaveFailureIsSwallowed(t *testing.T) {
	t.Parallel()
	s, clock, st := newTestSession(t)
	st.saveErr = errors.New("disk full")

	startRun(t, s)
	clock.advance(10 * time.Second)
	finishWin(t, s)

	// the in-memory record stands even though the write failed
	best, ok := s.BestTime("standard")
	require.True(t, ok)
	assert.InDelta(t, 10, best, 1e-9)
	assert.Equal(t, 0, st.saves)
}

func TestSetDifficulty(t *testing.T) {
	t.Parallel()
	s, _, _ := newTestSession(t)

	startRun(t, s)
	require.NoError(t, s.SetDifficulty("dense"))
	assert.Equal(t, "dense", s.Difficulty())
	assert.Equal(t, 0, s.Game().RevealCount())
	// 8*8*0.25 mines for the density profile
	assert.Equal(t, 16, s.Game().MineCount)

	err := s.SetDifficulty("nightmare")
	require.Error(t, err)
	assert.Equal(t, "dense", s.Difficulty())
}

func TestToggleSafeOpeningStartsNewGame(t *testing.T) {
	t.Parallel()
	s, _, _ := newTestSession(t)

	assert.True(t, s.SafeOpening())
	startRun(t, s)
	require.NoError(t, s.ToggleSafeOpening())
	assert.False(t, s.SafeOpening())
	assert.Equal(t, 0, s.Game().RevealCount())
	require.NoError(t, s.ToggleSafeOpening())
	assert.True(t, s.SafeOpening())
}

func TestNewRejectsBadConfig(t *testing.T) {
	t.Parallel()

	cfg := testConfig()
	cfg.StartDifficulty = "unheard-of"
	_, err := New(cfg, &memStore{}, rand.New(rand.NewPCG(1, 2)), &fakeClock{})
	assert.Error(t, err)

	cfg = testConfig()
	cfg.Difficulties["broken"] = config.Profile{Width: 0, Height: 9, MineCount: 10}
	_, err = New(cfg, &memStore{}, rand.New(rand.NewPCG(1, 2)), &fakeClock{})
	assert.Error(t, err)
}
