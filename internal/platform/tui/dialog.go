package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// dialogKind identifies the modal currently shown over the board.
type dialogKind int

const (
	dialogNone dialogKind = iota
	dialogGameOver
	dialogException
)

// dialog is a modal message with a header, body lines and button hints.
type dialog struct {
	kind    dialogKind
	header  string
	lines   []string
	buttons []string
}

func gameOverDialog(detail string, fruits, seconds int) dialog {
	return dialog{
		kind:   dialogGameOver,
		header: "Game over",
		lines: []string{
			detail,
			fmt.Sprintf("Fruits eaten: %d", fruits),
			fmt.Sprintf("Time survived: %s", FormatDuration(seconds)),
		},
		buttons: []string{"[Enter/R] Restart", "[Q] Quit"},
	}
}

func exceptionDialog(cause error) dialog {
	msg := "unknown error"
	if cause != nil {
		msg = cause.Error()
	}
	return dialog{
		kind:    dialogException,
		header:  "Unhandled Exception!",
		lines:   []string{msg},
		buttons: []string{"[Enter] OK"},
	}
}

var (
	dialogBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(1, 3)
	dialogErrorBoxStyle = dialogBoxStyle.
				BorderForeground(lipgloss.Color("9"))
	dialogHeaderStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(lipgloss.Color("229"))
	dialogButtonStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("241"))
)

// render draws the dialog centered in a w x h area.
func (d dialog) render(w, h int) string {
	var b strings.Builder
	b.WriteString(dialogHeaderStyle.Render(d.header))
	b.WriteString("\n\n")
	b.WriteString(strings.Join(d.lines, "\n"))
	b.WriteString("\n\n")
	b.WriteString(dialogButtonStyle.Render(strings.Join(d.buttons, "   ")))

	box := dialogBoxStyle
	if d.kind == dialogException {
		box = dialogErrorBoxStyle
	}
	return lipgloss.Place(w, h, lipgloss.Center, lipgloss.Center, box.Render(b.String()))
}
