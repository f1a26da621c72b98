package core

import (
	"sync"
	"time"
)

// ScoreChange is delivered to score observers after a fruit is recorded.
type ScoreChange struct {
	FruitsEaten int
	Highscore   int
}

// RunSnapshot is a consistent, read-only copy of a RunState.
type RunSnapshot struct {
	Phase        Phase
	SessionID    string
	SessionStart time.Time
	FruitsEaten  int
	Highscore    int
}

// RunState holds the lifecycle phase and the session counters shared between
// the engine and the presentation layer.
//
// The engine is the only writer of the phase. Logic steppers record fruits,
// everything else reads. RunState is created once per process and mutated in
// place; the highscore survives restarts.
type RunState struct {
	mu           sync.RWMutex
	phase        Phase
	sessionID    string
	sessionStart time.Time
	fruitsEaten  int
	highscore    int
	observers    []func(ScoreChange)
}

// NewRunState creates a RunState in the NotRunning phase.
func NewRunState() *RunState {
	return &RunState{phase: PhaseNotRunning}
}

// Phase returns the current phase.
func (s *RunState) Phase() Phase {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.phase
}

// SetPhase sets the phase unconditionally. Callers guarantee the transition is valid.
func (s *RunState) SetPhase(p Phase) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.phase = p
}

// BeginSession resets the per-session counters for a fresh session.
func (s *RunState) BeginSession(id string, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessionID = id
	s.sessionStart = now
	s.fruitsEaten = 0
}

// RecordFruitEaten increments the fruit counter, raising the highscore when
// it is beaten, and returns the new count.
func (s *RunState) RecordFruitEaten() int {
	s.mu.Lock()
	s.fruitsEaten++
	if s.fruitsEaten > s.highscore {
		s.highscore = s.fruitsEaten
	}
	change := ScoreChange{FruitsEaten: s.fruitsEaten, Highscore: s.highscore}
	observers := make([]func(ScoreChange), len(s.observers))
	copy(observers, s.observers)
	s.mu.Unlock()

	for _, fn := range observers {
		fn(change)
	}
	return change.FruitsEaten
}

// SeedHighscore raises the highscore to n, e.g. from persisted history.
// It never lowers the current highscore.
func (s *RunState) SeedHighscore(n int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n > s.highscore {
		s.highscore = n
	}
}

// OnScoreChange registers an observer called after every recorded fruit.
// Observers run on the recording goroutine and must not block.
func (s *RunState) OnScoreChange(fn func(ScoreChange)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, fn)
}

// FruitsEaten returns the fruit count of the current session.
func (s *RunState) FruitsEaten() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.fruitsEaten
}

// Highscore returns the best fruit count seen by this process.
func (s *RunState) Highscore() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.highscore
}

// SessionID returns the identifier of the current (or last) session.
func (s *RunState) SessionID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionID
}

// SessionStart returns when the current (or last) session began.
func (s *RunState) SessionStart() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.sessionStart
}

// ElapsedSeconds returns whole seconds since the session started.
// Only meaningful while a session is alive; returns 0 when NotRunning.
func (s *RunState) ElapsedSeconds(now time.Time) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.phase == PhaseNotRunning || s.sessionStart.IsZero() {
		return 0
	}
	elapsed := now.Sub(s.sessionStart)
	if elapsed < 0 {
		return 0
	}
	return int(elapsed / time.Second)
}

// Snapshot returns a consistent copy of the state.
func (s *RunState) Snapshot() RunSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return RunSnapshot{
		Phase:        s.phase,
		SessionID:    s.sessionID,
		SessionStart: s.sessionStart,
		FruitsEaten:  s.fruitsEaten,
		Highscore:    s.highscore,
	}
}
