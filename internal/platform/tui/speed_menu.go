package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
)

// SpeedMenuModel lets users choose the speed preset before playing.
type SpeedMenuModel struct {
	cursor   int
	width    int
	height   int
	selected config.SpeedPreset
	choosing bool
	quitting bool
}

// NewSpeedMenuModel creates a speed selection model with the cursor on current.
func NewSpeedMenuModel(current config.SpeedPreset, width, height int) SpeedMenuModel {
	m := SpeedMenuModel{
		width:    width,
		height:   height,
		choosing: true,
	}
	for i, p := range config.Presets {
		if p == current {
			m.cursor = i
		}
	}
	return m
}

// Init initializes the model.
func (m SpeedMenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages.
func (m SpeedMenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m SpeedMenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit
	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}
	case MenuActionDown:
		if m.cursor < len(config.Presets)-1 {
			m.cursor++
		}
	case MenuActionSelect:
		m.choosing = false
		m.selected = config.Presets[m.cursor]
		return m, tea.Quit
	}
	return m, nil
}

// View renders the speed selection.
func (m SpeedMenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(titleStyle.Render("S N A K E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText("Select speed:", m.width))
	b.WriteString("\n\n")

	selectedStyle := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("229"))
	for i, p := range config.Presets {
		cursor := "  "
		line := fmt.Sprintf("%-8s %4dms", p, p.Period().Milliseconds())
		if i == m.cursor {
			cursor = "> "
			line = selectedStyle.Render(line)
		}
		b.WriteString(centerText(cursor+line, m.width))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(centerText(helpStyle.Render("Enter: Play  |  Q: Quit"), m.width))

	return b.String()
}

// Selected returns the chosen preset, or false if still choosing.
func (m SpeedMenuModel) Selected() (config.SpeedPreset, bool) {
	if m.choosing {
		return "", false
	}
	return m.selected, true
}

// IsQuitting returns true if user wants to quit.
func (m SpeedMenuModel) IsQuitting() bool {
	return m.quitting
}

// RunSpeedSelector shows the speed menu and applies the choice to settings.
// Returns false if the user quit instead of choosing.
func RunSpeedSelector(settings *config.Settings, width, height int) (bool, error) {
	model := NewSpeedMenuModel(settings.Speed(), width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return false, err
	}

	m, ok := finalModel.(SpeedMenuModel)
	if !ok || m.IsQuitting() {
		return false, nil
	}

	preset, chosen := m.Selected()
	if !chosen {
		return false, nil
	}
	settings.SetSpeed(preset)
	return true, nil
}
