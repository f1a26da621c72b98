package config

import (
	"sync"
	"time"
)

// Settings is the runtime speed selection shared by the UI and the engine.
// The engine reads Period once per session start, so a change made while
// playing takes effect on the next restart.
type Settings struct {
	mu       sync.RWMutex
	speed    SpeedPreset
	override time.Duration
}

// NewSettings creates settings from a loaded config.
func NewSettings(cfg SnakeConfig) *Settings {
	s := &Settings{speed: cfg.Speed}
	if !s.speed.Valid() {
		s.speed = SpeedNormal
	}
	if cfg.TickMS > 0 {
		s.override = time.Duration(cfg.TickMS) * time.Millisecond
	}
	return s
}

// Period returns the tick period for the next session.
func (s *Settings) Period() time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.override > 0 {
		return s.override
	}
	return s.speed.Period()
}

// Speed returns the selected preset.
func (s *Settings) Speed() SpeedPreset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.speed
}

// Custom reports whether an explicit tick_ms overrides the preset.
func (s *Settings) Custom() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.override > 0
}

// SetSpeed selects a preset and drops any tick_ms override.
func (s *Settings) SetSpeed(p SpeedPreset) {
	if !p.Valid() {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.speed = p
	s.override = 0
}

// Faster selects the next faster preset, saturating at the fastest.
func (s *Settings) Faster() SpeedPreset {
	return s.shift(1)
}

// Slower selects the next slower preset, saturating at the slowest.
func (s *Settings) Slower() SpeedPreset {
	return s.shift(-1)
}

func (s *Settings) shift(delta int) SpeedPreset {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := 1
	for i, p := range Presets {
		if p == s.speed {
			idx = i
		}
	}
	idx += delta
	if idx < 0 {
		idx = 0
	}
	if idx >= len(Presets) {
		idx = len(Presets) - 1
	}
	s.speed = Presets[idx]
	s.override = 0
	return s.speed
}
