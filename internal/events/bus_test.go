package events

import (
	"sync"
	"testing"
	"time"
)

func receive(t *testing.T, sub *Subscription) Event {
	t.Helper()
	select {
	case evt := <-sub.Events():
		return evt
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for event")
		return nil
	}
}

func TestBusFanOut(t *testing.T) {
	bus := NewBus(nil)
	a := bus.Subscribe(4)
	b := bus.Subscribe(4)
	defer a.Close()
	defer b.Close()

	bus.Publish(QuitRequested{})

	if _, ok := receive(t, a).(QuitRequested); !ok {
		t.Error("subscriber a should receive QuitRequested")
	}
	if _, ok := receive(t, b).(QuitRequested); !ok {
		t.Error("subscriber b should receive QuitRequested")
	}
}

func TestBusPreservesOrder(t *testing.T) {
	bus := NewBus(nil)
	sub := bus.Subscribe(8)
	defer sub.Close()

	for i := 1; i <= 3; i++ {
		bus.Publish(ScoreChanged{FruitsEaten: i})
	}

	for i := 1; i <= 3; i++ {
		evt, ok := receive(t, sub).(ScoreChanged)
		if !ok || evt.FruitsEaten != i {
			t.Errorf("event %d = %+v, expected FruitsEaten=%d", i, evt, i)
		}
	}
}

func TestBusDropsOldestWhenFull(t *testing.T) {
	bus := NewBus(nil)
	sub := bus.Subscribe(2)
	defer sub.Close()

	bus.Publish(ScoreChanged{FruitsEaten: 1})
	bus.Publish(ScoreChanged{FruitsEaten: 2})
	bus.Publish(ScoreChanged{FruitsEaten: 3})

	first := receive(t, sub).(ScoreChanged)
	second := receive(t, sub).(ScoreChanged)
	if first.FruitsEaten != 2 || second.FruitsEaten != 3 {
		t.Errorf("got %d, %d; expected 2, 3", first.FruitsEaten, second.FruitsEaten)
	}
}

func TestBusPublishWithoutSubscribers(t *testing.T) {
	bus := NewBus(nil)
	// Must not panic or block
	bus.Publish(RestartRequested{})
}

func TestSubscriptionClose(t *testing.T) {
	bus := NewBus(nil)
	sub := bus.Subscribe(1)

	sub.Close()
	sub.Close() // idempotent

	if bus.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, expected 0", bus.Subscribers())
	}
	if _, ok := <-sub.Events(); ok {
		t.Error("Events() should be closed after Close")
	}
	select {
	case <-sub.Done():
	default:
		t.Error("Done() should be closed after Close")
	}

	// Publishing after close must not panic
	bus.Publish(RestartRequested{})
}

func TestBusConcurrentPublishAndClose(t *testing.T) {
	bus := NewBus(nil)
	subs := make([]*Subscription, 4)
	for i := range subs {
		subs[i] = bus.Subscribe(1)
	}

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 200; j++ {
				bus.Publish(ScoreChanged{FruitsEaten: j})
			}
		}()
	}
	for _, sub := range subs {
		wg.Add(1)
		go func(s *Subscription) {
			defer wg.Done()
			s.Close()
		}(sub)
	}
	wg.Wait()

	if bus.Subscribers() != 0 {
		t.Errorf("Subscribers() = %d, expected 0", bus.Subscribers())
	}
}
