// Package config provides YAML-based game configuration loading and the
// runtime speed settings for the snake.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// ErrInvalidConfig is returned when a loaded configuration cannot be played.
var ErrInvalidConfig = errors.New("invalid config")

// Board limits.
const (
	MinBoardWidth  = 10
	MinBoardHeight = 5
	MaxBoardWidth  = 200
	MaxBoardHeight = 100
)

// SnakeConfig contains all configuration for the snake game.
type SnakeConfig struct {
	Speed  SpeedPreset `yaml:"speed"`   // Named preset, see Presets
	TickMS int         `yaml:"tick_ms"` // Overrides the preset when > 0
	Board  BoardConfig `yaml:"board"`
	Snake  SnakeBody   `yaml:"snake"`
}

// BoardConfig defines the playing field.
type BoardConfig struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Walls  bool `yaml:"walls"` // false: the board wraps around
}

// SnakeBody defines the snake at session start.
type SnakeBody struct {
	InitialLength int `yaml:"initial_length"`
}

// SpeedPreset represents a named tick speed.
type SpeedPreset string

const (
	SpeedSlow   SpeedPreset = "slow"
	SpeedNormal SpeedPreset = "normal"
	SpeedFast   SpeedPreset = "fast"
	SpeedInsane SpeedPreset = "insane"
)

// Presets lists the speed presets from slowest to fastest.
var Presets = []SpeedPreset{SpeedSlow, SpeedNormal, SpeedFast, SpeedInsane}

// Period returns the tick period for the preset.
func (p SpeedPreset) Period() time.Duration {
	switch p {
	case SpeedSlow:
		return 200 * time.Millisecond
	case SpeedFast:
		return 80 * time.Millisecond
	case SpeedInsane:
		return 50 * time.Millisecond
	default:
		return 130 * time.Millisecond
	}
}

// Valid reports whether p names a known preset.
func (p SpeedPreset) Valid() bool {
	for _, known := range Presets {
		if p == known {
			return true
		}
	}
	return false
}

// ParseSpeed converts a user-supplied name into a preset.
func ParseSpeed(name string) (SpeedPreset, error) {
	p := SpeedPreset(strings.ToLower(strings.TrimSpace(name)))
	if !p.Valid() {
		return "", fmt.Errorf("%w: unknown speed %q (want one of %s)", ErrInvalidConfig, name, presetNames())
	}
	return p, nil
}

func presetNames() string {
	names := make([]string, len(Presets))
	for i, p := range Presets {
		names[i] = string(p)
	}
	return strings.Join(names, ", ")
}

// TickPeriod returns the effective tick period of the config.
func (c SnakeConfig) TickPeriod() time.Duration {
	if c.TickMS > 0 {
		return time.Duration(c.TickMS) * time.Millisecond
	}
	return c.Speed.Period()
}

// Validate checks the config for values the game cannot run with.
func (c SnakeConfig) Validate() error {
	if c.Speed != "" && !c.Speed.Valid() {
		return fmt.Errorf("%w: unknown speed %q", ErrInvalidConfig, c.Speed)
	}
	if c.TickMS < 0 {
		return fmt.Errorf("%w: tick_ms must not be negative", ErrInvalidConfig)
	}
	if c.Board.Width < MinBoardWidth || c.Board.Width > MaxBoardWidth {
		return fmt.Errorf("%w: board width %d not in [%d, %d]",
			ErrInvalidConfig, c.Board.Width, MinBoardWidth, MaxBoardWidth)
	}
	if c.Board.Height < MinBoardHeight || c.Board.Height > MaxBoardHeight {
		return fmt.Errorf("%w: board height %d not in [%d, %d]",
			ErrInvalidConfig, c.Board.Height, MinBoardHeight, MaxBoardHeight)
	}
	if c.Snake.InitialLength < 1 || c.Snake.InitialLength > c.Board.Width/2 {
		return fmt.Errorf("%w: initial length %d must be between 1 and half the board width",
			ErrInvalidConfig, c.Snake.InitialLength)
	}
	return nil
}
