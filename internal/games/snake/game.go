// Package snake implements the grid snake driven by the engine.
package snake

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// Death messages shown to the player.
const (
	MsgHitWall   = "You hit the wall"
	MsgBitSelf   = "You bit yourself"
	MsgBoardFull = "Board full, you win!"
)

// maxPendingTurns bounds how many key presses are buffered between moves.
const maxPendingTurns = 2

var (
	// ErrInvalidBoard is returned for board dimensions the snake cannot start on.
	ErrInvalidBoard = errors.New("snake: invalid board")
	// ErrNotReset is returned by OnTick before the first ResetState.
	ErrNotReset = errors.New("snake: board not initialised")
)

// FruitRecorder counts eaten fruits. Implemented by core.RunState.
type FruitRecorder interface {
	RecordFruitEaten() int
}

// Config describes the board.
type Config struct {
	Width         int
	Height        int
	Walls         bool // Border kills; otherwise the board wraps around
	InitialLength int
	Seed          int64
}

// Game is a snake on a rectangular board.
// All methods are safe for concurrent use: the engine ticks it on the
// scheduler goroutine while the UI steers and renders it.
type Game struct {
	cfg    Config
	board  core.Rect
	fruits FruitRecorder

	mu        sync.Mutex
	rng       *rand.Rand
	tick      uint64
	snake     []core.Point // Head at index 0
	direction core.Direction
	turns     []core.Direction
	food      core.Point
}

// New creates a game. The board is empty until ResetState is called.
func New(cfg Config, fruits FruitRecorder) (*Game, error) {
	if cfg.Width < 2 || cfg.Height < 1 {
		return nil, fmt.Errorf("%w: %dx%d", ErrInvalidBoard, cfg.Width, cfg.Height)
	}
	if cfg.InitialLength < 1 || cfg.InitialLength > cfg.Width/2 {
		return nil, fmt.Errorf("%w: initial length %d does not fit width %d",
			ErrInvalidBoard, cfg.InitialLength, cfg.Width)
	}
	return &Game{
		cfg:    cfg,
		board:  core.NewRect(0, 0, cfg.Width, cfg.Height),
		fruits: fruits,
		rng:    rand.New(rand.NewSource(cfg.Seed)),
	}, nil
}

// ScreenSize returns the screen dimensions Render needs, border included.
func (g *Game) ScreenSize() (w, h int) {
	return g.cfg.Width + 2, g.cfg.Height + 2
}

// Walls reports whether the border is deadly.
func (g *Game) Walls() bool {
	return g.cfg.Walls
}

// ResetState places a fresh snake in the middle of the board, heading right.
func (g *Game) ResetState() {
	g.mu.Lock()
	defer g.mu.Unlock()

	head := core.Point{X: g.cfg.Width / 2, Y: g.cfg.Height / 2}
	g.snake = make([]core.Point, g.cfg.InitialLength)
	for i := range g.snake {
		g.snake[i] = core.Point{X: head.X - i, Y: head.Y}
	}
	g.direction = core.DirRight
	g.turns = g.turns[:0]
	g.tick = 0
	g.spawnFood()
}

// Turn queues a direction change for an upcoming move.
// Reversals and repeats of the last queued direction are ignored.
func (g *Game) Turn(dir core.Direction) bool {
	g.mu.Lock()
	defer g.mu.Unlock()

	last := g.direction
	if n := len(g.turns); n > 0 {
		last = g.turns[n-1]
	}
	if dir == last || dir.Opposite(last) {
		return false
	}
	if len(g.turns) >= maxPendingTurns {
		return false
	}
	g.turns = append(g.turns, dir)
	return true
}

// OnTick moves the snake one cell.
func (g *Game) OnTick() (core.TickResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if len(g.snake) == 0 {
		return core.TickResult{}, ErrNotReset
	}
	g.tick++

	if len(g.turns) > 0 {
		g.direction = g.turns[0]
		g.turns = g.turns[1:]
	}

	next := g.snake[0].Add(g.direction.Delta())
	if !g.board.Contains(next) {
		if g.cfg.Walls {
			return core.Died(MsgHitWall), nil
		}
		next = next.Wrap(g.cfg.Width, g.cfg.Height)
	}

	grow := next == g.food
	body := g.snake
	if !grow {
		// The tail moves away this tick, so the head may take its cell.
		body = body[:len(body)-1]
	}
	for _, seg := range body {
		if seg == next {
			return core.Died(MsgBitSelf), nil
		}
	}

	moved := make([]core.Point, 0, len(body)+1)
	moved = append(moved, next)
	g.snake = append(moved, body...)

	if grow {
		if g.fruits != nil {
			g.fruits.RecordFruitEaten()
		}
		if len(g.snake) >= g.board.Area() {
			return core.Died(MsgBoardFull), nil
		}
		g.spawnFood()
	}
	return core.Continue(), nil
}

// spawnFood places food on a random free cell. Caller holds mu.
func (g *Game) spawnFood() {
	occupied := make(map[core.Point]bool, len(g.snake))
	for _, seg := range g.snake {
		occupied[seg] = true
	}

	var free []core.Point
	for y := 0; y < g.cfg.Height; y++ {
		for x := 0; x < g.cfg.Width; x++ {
			p := core.Point{X: x, Y: y}
			if !occupied[p] {
				free = append(free, p)
			}
		}
	}

	if len(free) == 0 {
		g.food = core.Point{X: -1, Y: -1}
		return
	}
	g.food = free[g.rng.Intn(len(free))]
}

// Render draws the border, the food and the snake into dst.
// dst should be at least ScreenSize large.
func (g *Game) Render(dst *core.Screen) {
	g.mu.Lock()
	defer g.mu.Unlock()

	dst.Clear()

	border := core.ColorGray
	if g.cfg.Walls {
		border = core.ColorYellow
	}
	dst.DrawBox(core.NewRect(0, 0, g.cfg.Width+2, g.cfg.Height+2), border)

	if g.food.X >= 0 {
		dst.SetColored(g.food.X+1, g.food.Y+1, '*', core.ColorBrightRed)
	}

	// Body first so the head wins on overlap
	for i := len(g.snake) - 1; i >= 0; i-- {
		seg := g.snake[i]
		if i == 0 {
			dst.SetColored(seg.X+1, seg.Y+1, 'O', core.ColorBrightGreen)
		} else {
			dst.SetColored(seg.X+1, seg.Y+1, 'o', core.ColorGreen)
		}
	}
}
