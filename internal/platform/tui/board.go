package tui

import (
	"sync"

	"github.com/vovakirdan/tui-snake/internal/core"
)

// BoardSource draws the current game state into a screen buffer.
type BoardSource interface {
	Render(dst *core.Screen)
	ScreenSize() (w, h int)
}

// BoardView caches the last rendered frame of the board.
// Repaint is the engine's render tick; View reads the cached frame.
type BoardView struct {
	source BoardSource

	mu     sync.Mutex
	screen *core.Screen
	frame  string
	plain  string
	frames uint64
}

// NewBoardView creates a view sized for source.
func NewBoardView(source BoardSource) *BoardView {
	w, h := source.ScreenSize()
	return &BoardView{
		source: source,
		screen: core.NewScreen(w, h),
	}
}

// Repaint renders the board into the cached frame.
func (b *BoardView) Repaint() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.source.Render(b.screen)
	b.frame = RenderScreen(b.screen)
	b.plain = b.screen.String()
	b.frames++
	return nil
}

// Frame returns the last styled frame; empty before the first repaint.
func (b *BoardView) Frame() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frame
}

// Plain returns the last frame without styling.
func (b *BoardView) Plain() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.plain
}

// Frames returns how many repaints have happened.
func (b *BoardView) Frames() uint64 {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.frames
}

// Size returns the board frame dimensions.
func (b *BoardView) Size() (w, h int) {
	return b.screen.Width(), b.screen.Height()
}
