package tui

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-snake/internal/config"
	"github.com/vovakirdan/tui-snake/internal/core"
	"github.com/vovakirdan/tui-snake/internal/engine"
	"github.com/vovakirdan/tui-snake/internal/events"
)

// Steerer accepts direction changes from the player.
type Steerer interface {
	Turn(dir core.Direction) bool
}

// Publisher posts requests on the event bus.
type Publisher interface {
	Publish(evt events.Event)
}

// GameDeps holds the collaborators of a GameModel.
type GameDeps struct {
	Game     Steerer
	Board    *BoardView
	Renders  RenderSource
	Events   *events.Subscription
	Bus      Publisher
	Settings *config.Settings
	State    *core.RunState
}

// hud is the status line state, updated from bus events only.
type hud struct {
	fruits    int
	highscore int
	phase     core.Phase
}

// GameModel is the Bubble Tea model for a running snake session.
// It never drives the game itself: requests go to the bus and the engine
// answers with events and render callbacks.
type GameModel struct {
	game     Steerer
	board    *BoardView
	renders  RenderSource
	sub      *events.Subscription
	bus      Publisher
	settings *config.Settings

	keys GameKeyMap
	help help.Model

	hud      hud
	dialog   dialog
	flash    string
	flashSeq int

	width    int
	height   int
	quitting bool
}

// NewGameModel creates the play screen.
func NewGameModel(deps GameDeps) GameModel {
	h := help.New()
	h.ShowAll = false

	m := GameModel{
		game:     deps.Game,
		board:    deps.Board,
		renders:  deps.Renders,
		sub:      deps.Events,
		bus:      deps.Bus,
		settings: deps.Settings,
		keys:     DefaultGameKeyMap(),
		help:     h,
	}
	if deps.State != nil {
		snap := deps.State.Snapshot()
		m.hud = hud{fruits: snap.FruitsEaten, highscore: snap.Highscore, phase: snap.Phase}
	}
	return m
}

// Init starts listening to the render queue and the bus.
func (m GameModel) Init() tea.Cmd {
	return tea.Batch(waitForRender(m.renders), waitForEvent(m.sub))
}

// Update handles messages and updates the model state.
func (m GameModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case renderMsg:
		// Render ticks run here, on the UI goroutine.
		if msg != nil {
			msg()
		}
		m.renders.Drain()
		return m, waitForRender(m.renders)

	case eventMsg:
		var cmd tea.Cmd
		m, cmd = m.handleEvent(msg.evt)
		return m, tea.Batch(cmd, waitForEvent(m.sub))

	case busClosedMsg:
		return m, nil

	case flashExpiredMsg:
		if msg.seq == m.flashSeq {
			m.flash = ""
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m GameModel) handleKey(msg tea.KeyMsg) (GameModel, tea.Cmd) {
	action := m.keys.Action(msg)

	if action == core.ActionQuit {
		m.quitting = true
		m.bus.Publish(events.QuitRequested{})
		return m, nil
	}

	switch m.dialog.kind {
	case dialogGameOver:
		if action == core.ActionRestart || action == core.ActionConfirm {
			m.dialog = dialog{}
			m.bus.Publish(events.RestartRequested{})
		}
		return m, nil
	case dialogException:
		if action == core.ActionConfirm || action == core.ActionBack {
			m.dialog = dialog{}
		}
		return m, nil
	}

	switch action {
	case core.ActionUp, core.ActionDown, core.ActionLeft, core.ActionRight:
		if dir, ok := action.Direction(); ok {
			m.game.Turn(dir)
		}
	case core.ActionPause:
		m.bus.Publish(events.PauseRequested{})
	case core.ActionRestart:
		m.bus.Publish(events.RestartRequested{})
	case core.ActionSpeedUp:
		return m.setFlash(fmt.Sprintf("Speed: %s (applies on restart)", m.settings.Faster()))
	case core.ActionSpeedDown:
		return m.setFlash(fmt.Sprintf("Speed: %s (applies on restart)", m.settings.Slower()))
	}
	return m, nil
}

// handleEvent applies one bus event to the view state.
func (m GameModel) handleEvent(evt events.Event) (GameModel, tea.Cmd) {
	switch e := evt.(type) {
	case events.StateChanged:
		m.hud.phase = e.To
		if e.From == core.PhaseNotRunning && e.To == core.PhaseRunning {
			m.hud.fruits = 0
			m.dialog = dialog{}
		}

	case events.ScoreChanged:
		m.hud.fruits = e.FruitsEaten
		m.hud.highscore = e.Highscore

	case events.GameOver:
		m.hud.fruits = e.FruitsEaten
		m.dialog = gameOverDialog(e.DetailMessage, e.FruitsEaten, e.SecondsPlayed)

	case events.ExceptionOccurred:
		m.dialog = exceptionDialog(e.Cause)

	case events.RequestRejected:
		return m.setFlash(rejectionText(e))
	}
	return m, nil
}

func rejectionText(e events.RequestRejected) string {
	if _, ok := e.Request.(events.PauseRequested); ok && errors.Is(e.Err, engine.ErrNotRunning) {
		return "Game not running, nothing to pause"
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "Request rejected"
}

func (m GameModel) setFlash(text string) (GameModel, tea.Cmd) {
	m.flashSeq++
	m.flash = text
	return m, flashCmd(m.flashSeq)
}

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("10"))
	hudStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229"))
	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("11"))
	flashStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9")).
			Italic(true)
	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// View renders the HUD, the board (or a dialog over it) and the help bar.
func (m GameModel) View() string {
	if m.quitting {
		return ""
	}

	width := m.width
	boardW, boardH := m.board.Size()
	if width < boardW {
		width = boardW
	}

	var b strings.Builder
	b.WriteString(centerText(titleStyle.Render("S N A K E"), width))
	b.WriteString("\n")
	b.WriteString(centerText(m.hudLine(), width))
	b.WriteString("\n")

	var body string
	if m.dialog.kind != dialogNone {
		body = m.dialog.render(boardW, boardH)
	} else {
		body = m.board.Frame()
		if body == "" {
			body = lipgloss.Place(boardW, boardH, lipgloss.Center, lipgloss.Center, "Starting...")
		}
	}
	for _, line := range strings.Split(body, "\n") {
		b.WriteString(centerText(line, width))
		b.WriteString("\n")
	}

	b.WriteString(centerText(flashStyle.Render(m.flash), width))
	b.WriteString("\n")
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))

	return b.String()
}

func (m GameModel) hudLine() string {
	speed := string(m.settings.Speed())
	if m.settings.Custom() {
		speed = fmt.Sprintf("%dms", m.settings.Period().Milliseconds())
	}
	line := hudStyle.Render(fmt.Sprintf("Fruits eaten: %d   Highscore: %d   Speed: %s",
		m.hud.fruits, m.hud.highscore, speed))

	switch m.hud.phase {
	case core.PhasePaused:
		line += "   " + pausedStyle.Render("PAUSED")
	case core.PhaseNotRunning:
		line += "   " + helpStyle.Render("stopped")
	}
	return line
}

// NewProgram creates the Bubble Tea program for the play screen.
func NewProgram(m GameModel) *tea.Program {
	return tea.NewProgram(
		m,
		tea.WithAltScreen(), // Use alternate screen buffer
	)
}
