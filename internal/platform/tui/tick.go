// Package tui provides the Bubble Tea integration for the snake.
// It drains the engine's render queue and event bus inside the Bubble Tea
// loop, maps keys to requests and draws the board, HUD and dialogs.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/events"
)

// flashDuration is how long a transient status message stays visible.
const flashDuration = 2 * time.Second

// renderMsg carries one render callback from the engine's queue.
type renderMsg func()

// eventMsg carries one event from the bus.
type eventMsg struct {
	evt events.Event
}

// busClosedMsg is sent once the bus subscription is closed.
type busClosedMsg struct{}

// flashExpiredMsg clears the flash message it belongs to.
type flashExpiredMsg struct {
	seq int
}

// RenderSource is the UI side of the engine's render queue.
type RenderSource interface {
	C() <-chan func()
	Drain() int
}

// waitForRender blocks until the engine submits a render callback.
func waitForRender(q RenderSource) tea.Cmd {
	return func() tea.Msg {
		return renderMsg(<-q.C())
	}
}

// waitForEvent blocks until the next bus event.
func waitForEvent(sub *events.Subscription) tea.Cmd {
	return func() tea.Msg {
		evt, ok := <-sub.Events()
		if !ok {
			return busClosedMsg{}
		}
		return eventMsg{evt: evt}
	}
}

// flashCmd expires flash message seq after flashDuration.
func flashCmd(seq int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashExpiredMsg{seq: seq}
	})
}
