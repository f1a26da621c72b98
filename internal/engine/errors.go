package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidPeriod is returned when a scheduler is started with a non-positive period.
	ErrInvalidPeriod = errors.New("engine: tick period must be positive")
	// ErrSchedulerStarted is returned by a second Start on the same scheduler handle.
	ErrSchedulerStarted = errors.New("engine: scheduler already started")
	// ErrNotRunning is returned by pause operations when no session is alive.
	ErrNotRunning = errors.New("game not running")

	ErrMissingStepper    = errors.New("engine: stepper is required")
	ErrMissingRenderer   = errors.New("engine: renderer is required")
	ErrMissingDispatcher = errors.New("engine: dispatcher is required")
	ErrMissingPublisher  = errors.New("engine: event publisher is required")
	ErrMissingSettings   = errors.New("engine: period source is required")
	ErrMissingState      = errors.New("engine: run state is required")
)

// Stage names the part of a tick that failed.
type Stage string

const (
	StageLogic  Stage = "logic"
	StageRender Stage = "render"
)

// TickError wraps any failure raised by a tick callback.
type TickError struct {
	Stage Stage
	Err   error
}

func (e *TickError) Error() string {
	return fmt.Sprintf("engine: %s tick: %v", e.Stage, e.Err)
}

func (e *TickError) Unwrap() error {
	return e.Err
}

// PanicError is a recovered panic from a tick callback.
type PanicError struct {
	Value any
	Stack []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic: %v", e.Value)
}

// Unwrap exposes the panic value when it was an error.
func (e *PanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
