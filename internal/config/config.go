// Package config carries the app configuration and the named
// difficulty profiles boards are built from.
package config

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/vancomm/minesweeper-engine/internal/mines"
)

// Profile is one named difficulty: grid dimensions plus either an
// exact mine count or a mine density the count is derived from.
type Profile struct {
	Width     int     `json:"grid_w"`
	Height    int     `json:"grid_h"`
	MineCount int     `json:"mines,omitempty"`
	Density   float64 `json:"density,omitempty"`
}

// Resolve turns the profile into validated game params. Density
// profiles derive their mine count as max(1, floor(w*h*density)).
func (p Profile) Resolve() (mines.GameParams, error) {
	mineCount := p.MineCount
	if mineCount == 0 {
		mineCount = int(float64(p.Width*p.Height) * p.Density)
		if mineCount < 1 {
			mineCount = 1
		}
	}
	params := mines.GameParams{
		Width:     p.Width,
		Height:    p.Height,
		MineCount: mineCount,
	}
	return params, params.Validate()
}

type Config struct {
	Mode            string             `json:"mode"`
	SaveFile        string             `json:"save_file"`
	LogFile         string             `json:"log_file,omitempty"`
	StartDifficulty string             `json:"start_difficulty"`
	Difficulties    map[string]Profile `json:"difficulties"`
	DifficultyOrder []string           `json:"difficulty_order"`
}

// Default carries the classic presets; the custom profile is density
// based.
func Default() *Config {
	return &Config{
		Mode:            "development",
		SaveFile:        "minesweeper_scores.json",
		StartDifficulty: "medium",
		Difficulties: map[string]Profile{
			"easy":   {Width: 9, Height: 9, MineCount: 10},
			"medium": {Width: 16, Height: 16, MineCount: 40},
			"hard":   {Width: 30, Height: 16, MineCount: 99},
			"custom": {Width: 24, Height: 16, Density: 0.21},
		},
		DifficultyOrder: []string{"easy", "medium", "hard", "custom"},
	}
}

func ReadConfig(path string, config *Config) error {
	if b, err := os.ReadFile(path); err != nil {
		return err
	} else {
		return json.Unmarshal(b, config)
	}
}

// Validate resolves every profile up front so a bad difficulty is
// rejected before any board is built from it.
func (c Config) Validate() error {
	if len(c.Difficulties) == 0 {
		return fmt.Errorf("no difficulty profiles configured")
	}
	if _, ok := c.Difficulties[c.StartDifficulty]; !ok {
		return fmt.Errorf("unknown start difficulty %q", c.StartDifficulty)
	}
	for name, p := range c.Difficulties {
		if _, err := p.Resolve(); err != nil {
			return fmt.Errorf("difficulty %q: %w", name, err)
		}
	}
	return nil
}

func (c Config) Production() bool {
	return c.Mode == "production"
}

func (c Config) Development() bool {
	return c.Mode != "production"
}

func (c Config) Fields() logrus.Fields {
	return map[string]any{
		"mode":             c.Mode,
		"save_file":        c.SaveFile,
		"log_file":         c.LogFile,
		"start_difficulty": c.StartDifficulty,
		"difficulties":     len(c.Difficulties),
	}
}
