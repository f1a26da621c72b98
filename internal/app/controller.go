// Package app wires the engine to the event bus: it turns player requests
// into engine calls and hands finished sessions to persistence.
package app

import (
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/events"
)

// Engine is the part of engine.Engine the controller drives.
type Engine interface {
	Restart() error
	Stop()
	TogglePause() error
}

// SessionResult is a finished session as handed to persistence.
type SessionResult struct {
	SessionID     string
	Detail        string
	FruitsEaten   int
	SecondsPlayed int
	TickMS        int
}

// ResultSaver persists finished sessions.
type ResultSaver interface {
	SaveSessionResult(r SessionResult) error
}

// Controller routes inbound requests from the bus to the engine.
type Controller struct {
	engine Engine
	bus    *events.Bus
	sub    *events.Subscription
	logger *log.Logger
	onQuit func()

	mu    sync.Mutex
	saver ResultSaver
}

// NewController subscribes to bus. onQuit runs after the engine is stopped on
// a quit request and may be nil.
func NewController(engine Engine, bus *events.Bus, logger *log.Logger, onQuit func()) *Controller {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Controller{
		engine: engine,
		bus:    bus,
		sub:    bus.Subscribe(events.DefaultBufferSize),
		logger: logger,
		onQuit: onQuit,
	}
}

// SetResultSaver enables persistence of finished sessions.
func (c *Controller) SetResultSaver(s ResultSaver) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.saver = s
}

// WatchScore republishes score changes of state on the bus.
func (c *Controller) WatchScore(state *core.RunState) {
	state.OnScoreChange(func(change core.ScoreChange) {
		c.bus.Publish(events.ScoreChanged{
			FruitsEaten: change.FruitsEaten,
			Highscore:   change.Highscore,
		})
	})
}

// Start begins the first session.
func (c *Controller) Start() error {
	if err := c.engine.Restart(); err != nil {
		return fmt.Errorf("app: start: %w", err)
	}
	return nil
}

// Run handles events until ctx is done or the controller is closed.
func (c *Controller) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case evt, ok := <-c.sub.Events():
			if !ok {
				return
			}
			c.handle(evt)
		}
	}
}

// Close unsubscribes from the bus; Run returns afterwards.
func (c *Controller) Close() {
	c.sub.Close()
}

func (c *Controller) handle(evt events.Event) {
	switch e := evt.(type) {
	case events.RestartRequested:
		if err := c.engine.Restart(); err != nil {
			c.logger.Error("restart failed", "err", err)
			c.bus.Publish(events.RequestRejected{Request: e, Err: err})
		}

	case events.QuitRequested:
		c.logger.Info("quit requested")
		c.engine.Stop()
		if c.onQuit != nil {
			c.onQuit()
		}

	case events.PauseRequested:
		if err := c.engine.TogglePause(); err != nil {
			c.logger.Debug("pause rejected", "err", err)
			c.bus.Publish(events.RequestRejected{Request: e, Err: err})
		}

	case events.GameOver:
		c.save(e)

	case events.ExceptionOccurred, events.StateChanged, events.ScoreChanged, events.RequestRejected:
		// Outbound, meant for the presentation layer

	default:
		c.logger.Warn("unhandled event", "type", fmt.Sprintf("%T", evt))
	}
}

func (c *Controller) save(g events.GameOver) {
	c.mu.Lock()
	saver := c.saver
	c.mu.Unlock()

	if saver == nil {
		return
	}
	result := SessionResult{
		SessionID:     g.SessionID,
		Detail:        g.DetailMessage,
		FruitsEaten:   g.FruitsEaten,
		SecondsPlayed: g.SecondsPlayed,
		TickMS:        int(g.TickPeriod.Milliseconds()),
	}
	if err := saver.SaveSessionResult(result); err != nil {
		c.logger.Error("failed to save session", "session", g.SessionID, "err", err)
	}
}
