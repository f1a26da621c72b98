package app

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/events"
)

var errNotRunning = errors.New("game not running")

type fakeEngine struct {
	mu       sync.Mutex
	restarts int
	stops    int
	toggles  int
	pauseErr error
}

func (f *fakeEngine) Restart() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.restarts++
	return nil
}

func (f *fakeEngine) Stop() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.stops++
}

func (f *fakeEngine) TogglePause() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.toggles++
	return f.pauseErr
}

func (f *fakeEngine) counts() (restarts, stops, toggles int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.restarts, f.stops, f.toggles
}

type memorySaver struct {
	mu      sync.Mutex
	results []SessionResult
}

func (m *memorySaver) SaveSessionResult(r SessionResult) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
	return nil
}

func (m *memorySaver) saved() []SessionResult {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]SessionResult(nil), m.results...)
}

func waitFor(t *testing.T, what string, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if cond() {
			return
		}
		time.Sleep(time.Millisecond)
	}
	t.Fatalf("timed out waiting for %s", what)
}

func runController(t *testing.T, engine *fakeEngine, onQuit func()) (*Controller, *events.Bus) {
	t.Helper()
	bus := events.NewBus(nil)
	c := NewController(engine, bus, nil, onQuit)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		c.Run(ctx)
		close(done)
	}()
	t.Cleanup(func() {
		cancel()
		<-done
		c.Close()
	})
	return c, bus
}

func TestControllerStartRestartsEngine(t *testing.T) {
	engine := &fakeEngine{}
	c, _ := runController(t, engine, nil)

	if err := c.Start(); err != nil {
		t.Fatal(err)
	}
	if restarts, _, _ := engine.counts(); restarts != 1 {
		t.Errorf("restarts = %d, expected 1", restarts)
	}
}

func TestControllerRoutesRequests(t *testing.T) {
	engine := &fakeEngine{}
	quit := make(chan struct{})
	_, bus := runController(t, engine, func() { close(quit) })

	bus.Publish(events.RestartRequested{})
	bus.Publish(events.PauseRequested{})
	bus.Publish(events.QuitRequested{})

	select {
	case <-quit:
	case <-time.After(2 * time.Second):
		t.Fatal("onQuit was not called")
	}

	restarts, stops, toggles := engine.counts()
	if restarts != 1 || stops != 1 || toggles != 1 {
		t.Errorf("counts = (%d, %d, %d), expected (1, 1, 1)", restarts, stops, toggles)
	}
}

func TestControllerRejectsPauseWhenNotRunning(t *testing.T) {
	engine := &fakeEngine{pauseErr: errNotRunning}
	_, bus := runController(t, engine, nil)

	observer := bus.Subscribe(8)
	defer observer.Close()

	bus.Publish(events.PauseRequested{})

	deadline := time.After(2 * time.Second)
	for {
		select {
		case evt := <-observer.Events():
			rejected, ok := evt.(events.RequestRejected)
			if !ok {
				continue
			}
			if _, ok := rejected.Request.(events.PauseRequested); !ok {
				t.Errorf("Request = %T, expected PauseRequested", rejected.Request)
			}
			if !errors.Is(rejected.Err, errNotRunning) {
				t.Errorf("Err = %v, expected errNotRunning", rejected.Err)
			}
			return
		case <-deadline:
			t.Fatal("timed out waiting for RequestRejected")
		}
	}
}

func TestControllerSavesGameOver(t *testing.T) {
	engine := &fakeEngine{}
	c, bus := runController(t, engine, nil)
	saver := &memorySaver{}
	c.SetResultSaver(saver)

	bus.Publish(events.GameOver{
		SessionID:     "abc",
		DetailMessage: "You hit the wall",
		FruitsEaten:   5,
		SecondsPlayed: 42,
		TickPeriod:    130 * time.Millisecond,
	})

	waitFor(t, "saved result", func() bool { return len(saver.saved()) == 1 })

	got := saver.saved()[0]
	want := SessionResult{SessionID: "abc", Detail: "You hit the wall", FruitsEaten: 5, SecondsPlayed: 42, TickMS: 130}
	if got != want {
		t.Errorf("saved = %+v, expected %+v", got, want)
	}
}

func TestControllerBridgesScoreChanges(t *testing.T) {
	engine := &fakeEngine{}
	c, bus := runController(t, engine, nil)

	observer := bus.Subscribe(8)
	defer observer.Close()

	state := core.NewRunState()
	c.WatchScore(state)
	state.BeginSession("s", time.Now())
	state.RecordFruitEaten()

	select {
	case evt := <-observer.Events():
		sc, ok := evt.(events.ScoreChanged)
		if !ok || sc.FruitsEaten != 1 || sc.Highscore != 1 {
			t.Errorf("event = %#v, expected ScoreChanged{1 1}", evt)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ScoreChanged")
	}
}
