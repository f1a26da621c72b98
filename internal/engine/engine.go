// Package engine owns the session lifecycle: it starts, pauses, restarts and
// stops game sessions, drives the logic tick on a Scheduler and announces
// every outcome on the event bus.
package engine

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/events"
)

// Stepper is the game logic driven by the engine.
type Stepper interface {
	// ResetState prepares a fresh board. Called only while no scheduler runs.
	ResetState()
	// OnTick advances the game by one step.
	OnTick() (core.TickResult, error)
}

// Renderer repaints the current game state. Called on the dispatcher's context.
type Renderer interface {
	Repaint() error
}

// Publisher accepts outbound events. Publish must not block.
type Publisher interface {
	Publish(evt events.Event)
}

// PeriodSource supplies the tick period for the next session.
type PeriodSource interface {
	Period() time.Duration
}

// Options holds the collaborators of an Engine.
type Options struct {
	Stepper    Stepper
	Renderer   Renderer
	Dispatcher Dispatcher
	Events     Publisher
	Settings   PeriodSource
	State      *core.RunState

	Clock        Clock        // Defaults to SystemClock
	Logger       *log.Logger  // Defaults to a discard logger
	NewSessionID func() string // Defaults to random UUIDs
}

// Engine coordinates one game session at a time.
type Engine struct {
	stepper    Stepper
	renderer   Renderer
	dispatcher Dispatcher
	events     Publisher
	settings   PeriodSource
	state      *core.RunState
	clock      Clock
	logger     *log.Logger
	newID      func() string

	// lifecycle serialises Start, Stop and Restart.
	lifecycle sync.Mutex

	// mu guards sched and period, and makes phase transitions atomic with them.
	mu     sync.Mutex
	sched  *Scheduler
	period time.Duration
}

// New creates an engine from opts.
func New(opts Options) (*Engine, error) {
	switch {
	case opts.Stepper == nil:
		return nil, ErrMissingStepper
	case opts.Renderer == nil:
		return nil, ErrMissingRenderer
	case opts.Dispatcher == nil:
		return nil, ErrMissingDispatcher
	case opts.Events == nil:
		return nil, ErrMissingPublisher
	case opts.Settings == nil:
		return nil, ErrMissingSettings
	case opts.State == nil:
		return nil, ErrMissingState
	}

	e := &Engine{
		stepper:    opts.Stepper,
		renderer:   opts.Renderer,
		dispatcher: opts.Dispatcher,
		events:     opts.Events,
		settings:   opts.Settings,
		state:      opts.State,
		clock:      opts.Clock,
		logger:     opts.Logger,
		newID:      opts.NewSessionID,
	}
	if e.clock == nil {
		e.clock = SystemClock
	}
	if e.logger == nil {
		e.logger = log.New(io.Discard)
	}
	if e.newID == nil {
		e.newID = uuid.NewString
	}
	return e, nil
}

// Start begins a new session without resetting the board.
// Any live session is stopped first.
func (e *Engine) Start() error {
	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()

	e.stop()
	return e.start()
}

// Restart stops any live session, resets the board and starts a new session.
// ResetState runs only after the old scheduler has fully stopped, so no tick
// of the previous session ever sees the fresh board.
func (e *Engine) Restart() error {
	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()

	e.stop()
	e.stepper.ResetState()
	return e.start()
}

// Stop ends the live session, if any. It never reports a game over.
func (e *Engine) Stop() {
	e.lifecycle.Lock()
	defer e.lifecycle.Unlock()

	e.stop()
}

// Pause suspends ticking. Pausing a paused session is a no-op.
func (e *Engine) Pause() error {
	return e.transition(func(from core.Phase) core.Phase {
		return core.PhasePaused
	})
}

// Resume continues a paused session. Resuming a running session is a no-op.
func (e *Engine) Resume() error {
	return e.transition(func(from core.Phase) core.Phase {
		return core.PhaseRunning
	})
}

// TogglePause flips between Running and Paused.
func (e *Engine) TogglePause() error {
	return e.transition(func(from core.Phase) core.Phase {
		if from == core.PhasePaused {
			return core.PhaseRunning
		}
		return core.PhasePaused
	})
}

// Active reports whether a session is alive (running or paused).
func (e *Engine) Active() bool {
	return e.state.Phase() != core.PhaseNotRunning
}

// State returns a snapshot of the run state.
func (e *Engine) State() core.RunSnapshot {
	return e.state.Snapshot()
}

// Period returns the tick period of the current (or last) session.
func (e *Engine) Period() time.Duration {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.period
}

func (e *Engine) transition(next func(from core.Phase) core.Phase) error {
	e.mu.Lock()
	from := e.state.Phase()
	if from == core.PhaseNotRunning {
		e.mu.Unlock()
		return ErrNotRunning
	}
	to := next(from)
	if to == from {
		e.mu.Unlock()
		return nil
	}
	e.state.SetPhase(to)
	e.mu.Unlock()

	e.logger.Debug("phase changed", "from", from, "to", to)
	e.events.Publish(events.StateChanged{From: from, To: to})
	return nil
}

// start begins a session. Caller holds lifecycle and no scheduler is live.
func (e *Engine) start() error {
	period := e.settings.Period()
	if period <= 0 {
		return fmt.Errorf("engine: start: %w: %v", ErrInvalidPeriod, period)
	}

	s := NewScheduler(e.state, e.dispatcher, e.logger)
	id := e.newID()

	e.mu.Lock()
	from := e.state.Phase()
	e.sched = s
	e.period = period
	e.state.BeginSession(id, e.clock.Now())
	e.state.SetPhase(core.PhaseRunning)
	e.mu.Unlock()

	e.logger.Info("session started", "session", id, "period", period)
	e.events.Publish(events.StateChanged{From: from, To: core.PhaseRunning})

	err := s.Start(period,
		func() error { return e.logicTick(s) },
		e.renderer.Repaint,
		func(err error) { e.fail(s, err) },
	)
	if err != nil {
		e.detach(s)
		return fmt.Errorf("engine: start: %w", err)
	}
	return nil
}

// stop ends the live session and waits for its scheduler. Caller holds lifecycle.
func (e *Engine) stop() {
	e.mu.Lock()
	s := e.sched
	e.sched = nil
	from := e.state.Phase()
	e.state.SetPhase(core.PhaseNotRunning)
	e.mu.Unlock()

	if s != nil {
		s.Cancel()
	}
	if from != core.PhaseNotRunning {
		e.logger.Info("session stopped", "session", e.state.SessionID())
		e.events.Publish(events.StateChanged{From: from, To: core.PhaseNotRunning})
	}
}

// detach ends the session owned by s without waiting for it.
// It reports whether s was still the live scheduler.
func (e *Engine) detach(s *Scheduler) (from core.Phase, ok bool) {
	e.mu.Lock()
	if e.sched != s {
		e.mu.Unlock()
		return core.PhaseNotRunning, false
	}
	from = e.state.Phase()
	e.sched = nil
	e.state.SetPhase(core.PhaseNotRunning)
	e.mu.Unlock()

	s.halt()
	if from != core.PhaseNotRunning {
		e.events.Publish(events.StateChanged{From: from, To: core.PhaseNotRunning})
	}
	return from, true
}

// logicTick runs on the scheduler goroutine.
func (e *Engine) logicTick(s *Scheduler) error {
	result, err := e.stepper.OnTick()
	if err != nil {
		return err
	}
	if result.Died {
		e.gameOver(s, result.Message)
	}
	return nil
}

// gameOver ends the session owned by s and reports the result once.
func (e *Engine) gameOver(s *Scheduler, message string) {
	e.mu.Lock()
	if e.sched != s {
		// A concurrent Stop already ended this session.
		e.mu.Unlock()
		return
	}
	snap := e.state.Snapshot()
	seconds := e.state.ElapsedSeconds(e.clock.Now())
	period := e.period
	from := snap.Phase
	e.sched = nil
	e.state.SetPhase(core.PhaseNotRunning)
	e.mu.Unlock()

	s.halt()

	e.logger.Info("game over",
		"session", snap.SessionID,
		"detail", message,
		"fruits", snap.FruitsEaten,
		"seconds", seconds)

	e.events.Publish(events.StateChanged{From: from, To: core.PhaseNotRunning})
	e.events.Publish(events.GameOver{
		SessionID:     snap.SessionID,
		DetailMessage: message,
		FruitsEaten:   snap.FruitsEaten,
		SecondsPlayed: seconds,
		TickPeriod:    period,
	})
}

// fail aborts the session owned by s after a tick failure.
func (e *Engine) fail(s *Scheduler, err error) {
	if _, ok := e.detach(s); !ok {
		e.logger.Warn("tick failure from stale scheduler", "err", err)
		return
	}
	e.logger.Error("session aborted", "session", e.state.SessionID(), "err", err)
	e.events.Publish(events.ExceptionOccurred{Cause: err})
}
