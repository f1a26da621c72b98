package events

import (
	"fmt"
	"io"
	"sync"

	"github.com/charmbracelet/log"
)

// DefaultBufferSize is used when Subscribe is called with a non-positive buffer.
const DefaultBufferSize = 64

// Bus is a fire-and-forget fan-out of events to every subscriber.
// Publish never blocks: a full subscriber loses its oldest pending event.
type Bus struct {
	mu     sync.RWMutex
	subs   map[uint64]*Subscription
	nextID uint64
	logger *log.Logger
}

// NewBus creates an empty bus. A nil logger discards log output.
func NewBus(logger *log.Logger) *Bus {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &Bus{
		subs:   make(map[uint64]*Subscription),
		logger: logger,
	}
}

// Subscribe registers a new subscriber with the given buffer size.
func (b *Bus) Subscribe(buffer int) *Subscription {
	if buffer < 1 {
		buffer = DefaultBufferSize
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	sub := &Subscription{
		id:     b.nextID,
		bus:    b,
		events: make(chan Event, buffer),
		done:   make(chan struct{}),
	}
	b.subs[sub.id] = sub
	return sub
}

// Publish delivers evt to every current subscriber.
// Safe to call from any goroutine, including from event handlers.
func (b *Bus) Publish(evt Event) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if len(b.subs) == 0 {
		b.logger.Debug("dead event", "type", fmt.Sprintf("%T", evt))
		return
	}
	for _, sub := range b.subs {
		if dropped := sub.send(evt); dropped != nil {
			b.logger.Warn("subscriber full, dropped event",
				"subscriber", sub.id,
				"dropped", fmt.Sprintf("%T", dropped))
		}
	}
}

// Subscribers returns the number of live subscriptions.
func (b *Bus) Subscribers() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.subs)
}

func (b *Bus) remove(id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.subs, id)
}

// Subscription is one subscriber's view of the bus.
type Subscription struct {
	id        uint64
	bus       *Bus
	events    chan Event
	done      chan struct{}
	closeOnce sync.Once
}

// send enqueues evt without blocking and returns the event it had to drop, if any.
// Called with the bus read lock held, so Close cannot close the channel concurrently.
func (s *Subscription) send(evt Event) Event {
	select {
	case s.events <- evt:
		return nil
	default:
	}

	// Buffer full, drop oldest and retry
	var dropped Event
	select {
	case dropped = <-s.events:
	default:
	}
	select {
	case s.events <- evt:
		return dropped
	default:
		return evt
	}
}

// Events returns the channel to receive events from.
// It is closed after Close.
func (s *Subscription) Events() <-chan Event {
	return s.events
}

// Done returns a channel that closes when the subscription is closed.
func (s *Subscription) Done() <-chan struct{} {
	return s.done
}

// Close unsubscribes and closes the event channel.
// Safe to call multiple times.
func (s *Subscription) Close() {
	s.closeOnce.Do(func() {
		s.bus.remove(s.id)
		close(s.done)
		close(s.events)
	})
}
