package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/mines"
	"github.com/vancomm/minesweeper-engine/internal/session"
	"github.com/vancomm/minesweeper-engine/internal/store"
)

func parsePoint(fields []string) (x int, y int, err error) {
	if len(fields) != 3 {
		return 0, 0, fmt.Errorf("usage: %s x y", fields[0])
	}
	if x, err = strconv.Atoi(fields[1]); err != nil {
		return 0, 0, fmt.Errorf("bad x %q", fields[1])
	}
	if y, err = strconv.Atoi(fields[2]); err != nil {
		return 0, 0, fmt.Errorf("bad y %q", fields[2])
	}
	return x, y, nil
}

func execute(sess *session.Session, line string) error {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "r", "f", "c":
		x, y, err := parsePoint(fields)
		if err != nil {
			return err
		}
		switch fields[0] {
		case "r":
			sess.Reveal(x, y)
		case "f":
			sess.ToggleFlag(x, y)
		case "c":
			sess.Chord(x, y)
		}
		return nil
	case "n":
		return sess.Reset()
	case "d":
		if len(fields) != 2 {
			return fmt.Errorf("usage: d <name|W:H:M:s>")
		}
		return setDifficulty(sess, fields[1])
	case "z":
		return sess.ToggleSafeOpening()
	case "q":
		return errQuit
	default:
		return fmt.Errorf("unknown command %q", fields[0])
	}
}

// setDifficulty accepts either a configured profile name or a raw
// params seed, which lands in the custom slot.
func setDifficulty(sess *session.Session, arg string) error {
	nameErr := sess.SetDifficulty(arg)
	if nameErr == nil {
		return nil
	}
	params, err := mines.ParseSeed(arg)
	if err != nil {
		return nameErr
	}
	if err := params.Validate(); err != nil {
		return err
	}
	cfg.Difficulties[store.LegacyDifficulty] = config.Profile{
		Width:     params.Width,
		Height:    params.Height,
		MineCount: params.MineCount,
	}
	return sess.SetDifficulty(store.LegacyDifficulty)
}

func render(sess *session.Session) {
	game := sess.Game()
	fmt.Print(game.PlayerView().ToString(game.Width))

	best := "--"
	if t, ok := sess.BestTime(sess.Difficulty()); ok {
		best = fmt.Sprintf("%.2fs", t)
	}
	policy := "off"
	if sess.SafeOpening() {
		policy = "on"
	}
	fmt.Printf("[%s] flags left: %d  time: %.2fs  best: %s  safe opening: %s\n",
		sess.Difficulty(), game.FlagsLeft(),
		sess.Elapsed().Seconds(), best, policy,
	)

	switch {
	case game.Won:
		fmt.Println("you win! (n to play again)")
	case game.Dead:
		if x, y, ok := game.ExplodedAt(); ok {
			fmt.Printf("boom @ %d:%d. (n to play again)\n", x, y)
		}
	}
}
