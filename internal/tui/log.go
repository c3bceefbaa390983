package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"

	"github.com/invadm/invadm/internal/api"
)

// logState drives the log overlay: pick a level, type a message, send it
// to the backend, show the acknowledgement.
type logState struct {
	LevelIndex int // index into api.LogLevels
	Input      textinput.Model
	Submitting bool
	Receipt    *api.LogReceipt
	ErrMsg     string
}

func newLogState() logState {
	input := textinput.New()
	input.Placeholder = "Log message"
	input.CharLimit = 512
	input.Width = 50
	input.Focus()
	return logState{
		LevelIndex: defaultLevelIndex(),
		Input:      input,
	}
}

// reset clears the overlay back to its initial state after a successful
// send, so the next open starts fresh.
func (l *logState) reset() {
	l.LevelIndex = defaultLevelIndex()
	l.Input.SetValue("")
	l.Submitting = false
	l.Receipt = nil
	l.ErrMsg = ""
}

func defaultLevelIndex() int {
	for i, level := range api.LogLevels {
		if level == "info" {
			return i
		}
	}
	return 0
}

// Level returns the currently selected log level.
func (l logState) Level() string {
	return api.LogLevels[l.LevelIndex]
}

// cycleLevel moves the level selection by delta, wrapping around.
func (l *logState) cycleLevel(delta int) {
	n := len(api.LogLevels)
	l.LevelIndex = (l.LevelIndex + delta + n) % n
}

// View renders the log overlay.
func (l logState) View(width int) string {
	var b strings.Builder

	b.WriteString(FocusedInputStyle.Render("Send Log Message"))
	b.WriteString("\n\n")

	if l.Receipt != nil {
		b.WriteString(RenderSuccess("Log message accepted"))
		b.WriteString("\n\n")
		b.WriteString(EnvKeyStyle.Render("Level:        "))
		b.WriteString(EnvValueStyle.Render(l.Receipt.Level))
		b.WriteString("\n")
		if l.Receipt.Timestamp != "" {
			b.WriteString(EnvKeyStyle.Render("Timestamp:    "))
			b.WriteString(EnvValueStyle.Render(l.Receipt.Timestamp))
			b.WriteString("\n")
		}
		if l.Receipt.Destination != "" {
			b.WriteString(EnvKeyStyle.Render("Destination:  "))
			b.WriteString(EnvValueStyle.Render(l.Receipt.Destination))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("esc close"))
	} else {
		b.WriteString(renderLevelSelector(l.LevelIndex))
		b.WriteString("\n\n")
		b.WriteString(l.Input.View())
		b.WriteString("\n")

		if l.ErrMsg != "" {
			b.WriteString("\n")
			b.WriteString(ModalErrorStyle.Render("✗ " + l.ErrMsg))
			b.WriteString("\n")
		}

		b.WriteString("\n")
		if l.Submitting {
			b.WriteString(SubtitleStyle.Render("Sending..."))
		} else {
			b.WriteString(HelpStyle.Render("↑/↓ level • enter send • esc cancel"))
		}
	}

	boxWidth := SafeModalWidth(68, width)
	return ModalBoxStyle.Width(boxWidth).Render(b.String())
}

func renderLevelSelector(selected int) string {
	parts := make([]string, 0, len(api.LogLevels))
	for i, level := range api.LogLevels {
		style := lipgloss.NewStyle().Foreground(SubtleColor).Padding(0, 1)
		if i == selected {
			style = style.Foreground(HighlightColor).Bold(true)
		}
		parts = append(parts, style.Render(level))
	}
	return fmt.Sprintf("Level: %s", strings.Join(parts, ""))
}
