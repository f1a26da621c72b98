package snake

import (
	"errors"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/engine"
)

var _ engine.Stepper = (*Game)(nil)

type fruitCounter struct {
	n int
}

func (f *fruitCounter) RecordFruitEaten() int {
	f.n++
	return f.n
}

func newGame(t *testing.T, cfg Config) (*Game, *fruitCounter) {
	t.Helper()
	fruits := &fruitCounter{}
	g, err := New(cfg, fruits)
	if err != nil {
		t.Fatalf("New(%+v): %v", cfg, err)
	}
	g.ResetState()
	return g, fruits
}

// parkFood moves the food somewhere the test path will not cross.
func parkFood(g *Game, p core.Point) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.food = p
}

func tick(t *testing.T, g *Game) core.TickResult {
	t.Helper()
	res, err := g.OnTick()
	if err != nil {
		t.Fatalf("OnTick: %v", err)
	}
	return res
}

func TestNewRejectsInvalidBoard(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
	}{
		{"too narrow", Config{Width: 1, Height: 5, InitialLength: 1}},
		{"no rows", Config{Width: 10, Height: 0, InitialLength: 1}},
		{"zero length", Config{Width: 10, Height: 5, InitialLength: 0}},
		{"too long", Config{Width: 10, Height: 5, InitialLength: 6}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := New(tt.cfg, nil); !errors.Is(err, ErrInvalidBoard) {
				t.Errorf("New() error = %v, expected ErrInvalidBoard", err)
			}
		})
	}
}

func TestOnTickBeforeReset(t *testing.T) {
	g, err := New(Config{Width: 10, Height: 5, InitialLength: 3}, nil)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := g.OnTick(); !errors.Is(err, ErrNotReset) {
		t.Errorf("OnTick() error = %v, expected ErrNotReset", err)
	}
}

func TestResetStateCentersSnake(t *testing.T) {
	g, _ := newGame(t, Config{Width: 20, Height: 10, Walls: true, InitialLength: 3, Seed: 1})
	snap := g.Snapshot()

	expected := []core.Point{{X: 10, Y: 5}, {X: 9, Y: 5}, {X: 8, Y: 5}}
	if len(snap.Body) != len(expected) {
		t.Fatalf("len(Body) = %d, expected %d", len(snap.Body), len(expected))
	}
	for i, p := range expected {
		if snap.Body[i] != p {
			t.Errorf("Body[%d] = %+v, expected %+v", i, snap.Body[i], p)
		}
	}
	if snap.Dir != core.DirRight {
		t.Errorf("Dir = %v, expected right", snap.Dir)
	}
	for _, seg := range snap.Body {
		if seg == snap.Food {
			t.Error("food spawned on the snake")
		}
	}
}

func TestHitWall(t *testing.T) {
	g, fruits := newGame(t, Config{Width: 10, Height: 5, Walls: true, InitialLength: 2, Seed: 1})
	parkFood(g, core.Point{X: 0, Y: 0})

	// Head starts at x=5, the last cell is x=9
	for i := 0; i < 4; i++ {
		if res := tick(t, g); res.Died {
			t.Fatalf("died early on tick %d: %s", i+1, res.Message)
		}
	}
	res := tick(t, g)
	if !res.Died || res.Message != MsgHitWall {
		t.Errorf("tick 5 = %+v, expected death by wall", res)
	}
	if fruits.n != 0 {
		t.Errorf("fruits = %d, expected 0", fruits.n)
	}
}

func TestWrapAroundWithoutWalls(t *testing.T) {
	g, _ := newGame(t, Config{Width: 10, Height: 5, Walls: false, InitialLength: 2, Seed: 1})
	parkFood(g, core.Point{X: 0, Y: 0})

	for i := 0; i < 5; i++ {
		if res := tick(t, g); res.Died {
			t.Fatalf("died on tick %d: %s", i+1, res.Message)
		}
	}
	if head := g.Snapshot().Head(); head != (core.Point{X: 0, Y: 2}) {
		t.Errorf("head = %+v, expected wrap to {0 2}", head)
	}
}

func TestEatingGrowsAndRecords(t *testing.T) {
	g, fruits := newGame(t, Config{Width: 10, Height: 5, Walls: true, InitialLength: 2, Seed: 7})
	parkFood(g, core.Point{X: 6, Y: 2})

	tick(t, g)

	snap := g.Snapshot()
	if len(snap.Body) != 3 {
		t.Errorf("len(Body) = %d, expected 3", len(snap.Body))
	}
	if fruits.n != 1 {
		t.Errorf("fruits = %d, expected 1", fruits.n)
	}
	if snap.Food == (core.Point{X: 6, Y: 2}) {
		t.Error("food should respawn after being eaten")
	}
}

func TestBiteSelf(t *testing.T) {
	g, _ := newGame(t, Config{Width: 20, Height: 10, Walls: true, InitialLength: 5, Seed: 1})
	parkFood(g, core.Point{X: 0, Y: 0})

	// Head at (10,5): down, left, then up runs into the body
	g.Turn(core.DirDown)
	tick(t, g)
	g.Turn(core.DirLeft)
	tick(t, g)
	g.Turn(core.DirUp)
	res := tick(t, g)

	if !res.Died || res.Message != MsgBitSelf {
		t.Errorf("result = %+v, expected death by self bite", res)
	}
}

func TestFollowingTailIsAllowed(t *testing.T) {
	g, _ := newGame(t, Config{Width: 20, Height: 10, Walls: true, InitialLength: 4, Seed: 1})
	parkFood(g, core.Point{X: 0, Y: 0})

	// A 4-long snake turning in a tight square steps into the cell its tail leaves.
	for _, dir := range []core.Direction{core.DirDown, core.DirLeft, core.DirUp, core.DirRight} {
		g.Turn(dir)
		if res := tick(t, g); res.Died {
			t.Fatalf("died turning %v: %s", dir, res.Message)
		}
	}
}

func TestBoardFullWins(t *testing.T) {
	g, fruits := newGame(t, Config{Width: 4, Height: 1, Walls: false, InitialLength: 2, Seed: 3})
	// Snake occupies x=1..2; free cells are 0 and 3
	parkFood(g, core.Point{X: 3, Y: 0})

	if res := tick(t, g); res.Died {
		t.Fatalf("died early: %s", res.Message)
	}
	if food := g.Snapshot().Food; food != (core.Point{X: 0, Y: 0}) {
		t.Fatalf("food = %+v, expected the last free cell", food)
	}

	res := tick(t, g)
	if !res.Died || res.Message != MsgBoardFull {
		t.Errorf("result = %+v, expected board-full win", res)
	}
	if fruits.n != 2 {
		t.Errorf("fruits = %d, expected 2", fruits.n)
	}
}

func TestNoImmediateReversal(t *testing.T) {
	g, _ := newGame(t, Config{Width: 20, Height: 10, Walls: true, InitialLength: 3, Seed: 1})

	if g.Turn(core.DirLeft) {
		t.Error("reversal should be rejected")
	}
	if g.Turn(core.DirRight) {
		t.Error("repeating the current direction should be rejected")
	}
	if !g.Turn(core.DirUp) {
		t.Error("turning up should be accepted")
	}
	// Down reverses the queued up turn
	if g.Turn(core.DirDown) {
		t.Error("reversal of the queued turn should be rejected")
	}
}

func TestTurnQueueIsBounded(t *testing.T) {
	g, _ := newGame(t, Config{Width: 20, Height: 10, Walls: true, InitialLength: 3, Seed: 1})

	g.Turn(core.DirUp)
	g.Turn(core.DirLeft)
	if g.Turn(core.DirDown) {
		t.Error("third pending turn should be dropped")
	}
	if n := g.Snapshot().PendingTurns; n != 2 {
		t.Errorf("PendingTurns = %d, expected 2", n)
	}

	parkFood(g, core.Point{X: 0, Y: 0})
	tick(t, g)
	tick(t, g)
	snap := g.Snapshot()
	if snap.Dir != core.DirLeft || snap.PendingTurns != 0 {
		t.Errorf("after two ticks Dir = %v pending = %d, expected left and 0", snap.Dir, snap.PendingTurns)
	}
}

func TestDeterminism(t *testing.T) {
	cfg := Config{Width: 20, Height: 10, Walls: false, InitialLength: 3, Seed: 12345}
	g1, _ := newGame(t, cfg)
	g2, _ := newGame(t, cfg)

	for i := 0; i < 100; i++ {
		if i == 20 {
			g1.Turn(core.DirDown)
			g2.Turn(core.DirDown)
		}
		if i == 40 {
			g1.Turn(core.DirLeft)
			g2.Turn(core.DirLeft)
		}
		r1, _ := g1.OnTick()
		r2, _ := g2.OnTick()
		if r1 != r2 {
			t.Fatalf("tick %d: results differ: %+v vs %+v", i, r1, r2)
		}
		if r1.Died {
			break
		}
	}

	s1, s2 := g1.Snapshot(), g2.Snapshot()
	if s1.Tick != s2.Tick || s1.Head() != s2.Head() || s1.Food != s2.Food || len(s1.Body) != len(s2.Body) {
		t.Errorf("snapshots differ: %+v vs %+v", s1, s2)
	}
}

func TestRender(t *testing.T) {
	g, _ := newGame(t, Config{Width: 6, Height: 3, Walls: true, InitialLength: 2, Seed: 1})
	parkFood(g, core.Point{X: 0, Y: 0})

	w, h := g.ScreenSize()
	screen := core.NewScreen(w, h)
	g.Render(screen)

	expected := strings.Join([]string{
		"┌──────┐",
		"│*     │",
		"│  oO  │",
		"│      │",
		"└──────┘",
	}, "\n")
	if got := screen.String(); got != expected {
		t.Errorf("Render:\n%s\nexpected:\n%s", got, expected)
	}
	if c := screen.GetCell(4, 2); c.Color != core.ColorBrightGreen {
		t.Errorf("head color = %v, expected BrightGreen", c.Color)
	}
}
