package snake

import "github.com/vovakirdan/tui-snake/internal/core"

// Snapshot captures the complete board state for determinism testing.
type Snapshot struct {
	Tick         uint64
	Body         []core.Point // Head at index 0
	Dir          core.Direction
	PendingTurns int
	Food         core.Point
}

// Head returns the head position, or (-1, -1) for an empty board.
func (s Snapshot) Head() core.Point {
	if len(s.Body) == 0 {
		return core.Point{X: -1, Y: -1}
	}
	return s.Body[0]
}

// Snapshot returns a copy of the current board state.
func (g *Game) Snapshot() Snapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	body := make([]core.Point, len(g.snake))
	copy(body, g.snake)
	return Snapshot{
		Tick:         g.tick,
		Body:         body,
		Dir:          g.direction,
		PendingTurns: len(g.turns),
		Food:         g.food,
	}
}
