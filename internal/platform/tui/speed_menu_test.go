package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-snake/internal/config"
)

func TestSpeedMenuSelection(t *testing.T) {
	m := NewSpeedMenuModel(config.SpeedNormal, 80, 24)
	if m.cursor != 1 {
		t.Fatalf("cursor = %d, expected 1 (normal)", m.cursor)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyDown})
	next, cmd := next.(SpeedMenuModel).Update(tea.KeyMsg{Type: tea.KeyEnter})
	if cmd == nil {
		t.Error("selecting should quit the menu")
	}

	preset, ok := next.(SpeedMenuModel).Selected()
	if !ok || preset != config.SpeedFast {
		t.Errorf("Selected() = %q, %v; expected fast", preset, ok)
	}
}

func TestSpeedMenuCursorBounds(t *testing.T) {
	m := NewSpeedMenuModel(config.SpeedSlow, 80, 24)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	if next.(SpeedMenuModel).cursor != 0 {
		t.Error("cursor should not move above the first preset")
	}
}

func TestSpeedMenuQuit(t *testing.T) {
	m := NewSpeedMenuModel(config.SpeedNormal, 80, 24)
	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})

	sm := next.(SpeedMenuModel)
	if !sm.IsQuitting() {
		t.Error("q should quit")
	}
	if _, ok := sm.Selected(); ok {
		t.Error("quitting should not select a preset")
	}
}
