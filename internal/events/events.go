// Package events defines the messages exchanged between the engine, the
// application controller and the presentation layer, and the Bus that
// carries them.
package events

import (
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Event is any message carried by the Bus.
// The set of variants is closed; only this package can add one.
type Event interface {
	event()
}

// GameOver is published exactly once when a session ends by death.
type GameOver struct {
	SessionID     string
	DetailMessage string
	FruitsEaten   int
	SecondsPlayed int
	TickPeriod    time.Duration
}

func (GameOver) event() {}

// ExceptionOccurred is published when a tick fails and the session is aborted.
type ExceptionOccurred struct {
	Cause error
}

func (ExceptionOccurred) event() {}

// StateChanged is published on every phase transition.
type StateChanged struct {
	From core.Phase
	To   core.Phase
}

func (StateChanged) event() {}

// ScoreChanged is published after every eaten fruit.
type ScoreChanged struct {
	FruitsEaten int
	Highscore   int
}

func (ScoreChanged) event() {}

// RequestRejected is sent back when an inbound request could not be served.
type RequestRejected struct {
	Request Event
	Err     error
}

func (RequestRejected) event() {}

// RestartRequested asks for a fresh session.
type RestartRequested struct{}

func (RestartRequested) event() {}

// QuitRequested asks the application to stop and exit.
type QuitRequested struct{}

func (QuitRequested) event() {}

// PauseRequested asks to toggle between Running and Paused.
type PauseRequested struct{}

func (PauseRequested) event() {}
