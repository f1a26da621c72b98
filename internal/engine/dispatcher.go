package engine

import (
	"context"
)

// Dispatcher runs render callbacks on the presentation's execution context.
// Submit must not block the caller.
type Dispatcher interface {
	Submit(fn func())
}

// DefaultRenderQueueSize is used when NewRenderQueue is given a non-positive size.
const DefaultRenderQueueSize = 4

// RenderQueue is a Dispatcher backed by a buffered channel.
// When the queue is full the oldest pending callback is dropped; render
// callbacks repaint a snapshot, so only the latest one matters.
type RenderQueue struct {
	ch chan func()
}

// NewRenderQueue creates a render queue holding at most size pending callbacks.
func NewRenderQueue(size int) *RenderQueue {
	if size < 1 {
		size = DefaultRenderQueueSize
	}
	return &RenderQueue{ch: make(chan func(), size)}
}

// Submit enqueues fn without blocking.
func (q *RenderQueue) Submit(fn func()) {
	select {
	case q.ch <- fn:
		return
	default:
	}

	// Queue full, drop oldest and retry
	select {
	case <-q.ch:
	default:
	}
	select {
	case q.ch <- fn:
	default:
	}
}

// C returns the queue so an event loop can receive callbacks itself.
func (q *RenderQueue) C() <-chan func() {
	return q.ch
}

// Drain runs every pending callback without waiting and returns how many ran.
func (q *RenderQueue) Drain() int {
	n := 0
	for {
		select {
		case fn := <-q.ch:
			fn()
			n++
		default:
			return n
		}
	}
}

// Run executes callbacks on the calling goroutine until ctx is done.
func (q *RenderQueue) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case fn := <-q.ch:
			fn()
		}
	}
}
