package engine

import (
	"fmt"
	"io"
	"runtime/debug"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// PhaseReader reports the current run phase.
type PhaseReader interface {
	Phase() core.Phase
}

// LogicFunc advances the simulation by one step.
type LogicFunc func() error

// RenderFunc repaints the current state.
type RenderFunc func() error

// FailureFunc receives the first tick failure, always as a *TickError.
type FailureFunc func(err error)

// Scheduler runs the logic tick at a fixed period on its own goroutine and
// hands render ticks to a Dispatcher.
//
// A Scheduler is a one-shot handle: it is started once and, once cancelled
// or failed, never runs again. Restarting a game creates a new Scheduler.
type Scheduler struct {
	phase      PhaseReader
	dispatcher Dispatcher
	logger     *log.Logger

	mu      sync.Mutex
	started bool

	onLogic   LogicFunc
	onRender  RenderFunc
	onFailure FailureFunc

	cancelled atomic.Bool
	failed    atomic.Bool
	stop      chan struct{}
	stopOnce  sync.Once
	done      chan struct{}

	// renderGate is held for reading by every render callback; Cancel takes
	// it for writing to wait out a render in flight.
	renderGate sync.RWMutex
}

// NewScheduler creates an idle scheduler.
func NewScheduler(phase PhaseReader, dispatcher Dispatcher, logger *log.Logger) *Scheduler {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Scheduler{
		phase:      phase,
		dispatcher: dispatcher,
		logger:     logger,
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Start launches the logic loop. The first cycle runs immediately, then one
// cycle per period. A slow cycle delays the next one; cycles never overlap.
func (s *Scheduler) Start(period time.Duration, onLogic LogicFunc, onRender RenderFunc, onFailure FailureFunc) error {
	if period <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidPeriod, period)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.started {
		return ErrSchedulerStarted
	}
	s.started = true
	s.onLogic = onLogic
	s.onRender = onRender
	s.onFailure = onFailure

	go s.loop(period)
	return nil
}

// Cancel stops the scheduler and waits until the logic loop has exited and no
// render callback is running. Safe to call multiple times.
// Must not be called from inside a tick callback.
func (s *Scheduler) Cancel() {
	s.halt()

	s.mu.Lock()
	started := s.started
	s.mu.Unlock()

	if started {
		<-s.done
	}

	s.renderGate.Lock()
	s.renderGate.Unlock()
}

// Active reports whether the scheduler has been started and not yet halted.
func (s *Scheduler) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.started && !s.cancelled.Load()
}

// Done returns a channel closed when the logic loop has exited.
func (s *Scheduler) Done() <-chan struct{} {
	return s.done
}

// halt marks the scheduler cancelled without waiting. Safe from callbacks.
func (s *Scheduler) halt() {
	s.cancelled.Store(true)
	s.stopOnce.Do(func() {
		close(s.stop)
	})
}

func (s *Scheduler) loop(period time.Duration) {
	defer close(s.done)

	ticker := time.NewTicker(period)
	defer ticker.Stop()

	for {
		if !s.cycle() {
			return
		}
		select {
		case <-ticker.C:
		case <-s.stop:
			return
		}
	}
}

// cycle runs one logic tick and reports whether the loop should go on.
func (s *Scheduler) cycle() bool {
	if s.cancelled.Load() {
		return false
	}
	if s.phase.Phase() != core.PhaseRunning {
		return true
	}

	if err := s.invoke(StageLogic, s.onLogic); err != nil {
		s.fail(err)
		return false
	}

	// The logic tick may have ended the session.
	if s.cancelled.Load() {
		return false
	}

	s.dispatcher.Submit(s.runRender)
	return true
}

func (s *Scheduler) runRender() {
	s.renderGate.RLock()
	defer s.renderGate.RUnlock()

	if s.cancelled.Load() {
		return
	}
	if err := s.invoke(StageRender, s.onRender); err != nil {
		s.fail(err)
	}
}

// invoke calls fn, converting errors and panics into a *TickError.
func (s *Scheduler) invoke(stage Stage, fn func() error) (err error) {
	if fn == nil {
		return nil
	}
	defer func() {
		if r := recover(); r != nil {
			err = &TickError{Stage: stage, Err: &PanicError{Value: r, Stack: debug.Stack()}}
		}
	}()
	if err := fn(); err != nil {
		return &TickError{Stage: stage, Err: err}
	}
	return nil
}

// fail halts the scheduler and reports the first failure only.
func (s *Scheduler) fail(err error) {
	if !s.failed.CompareAndSwap(false, true) {
		s.logger.Debug("suppressed tick failure", "err", err)
		return
	}
	s.halt()
	if s.onFailure != nil {
		s.onFailure(err)
	}
}
