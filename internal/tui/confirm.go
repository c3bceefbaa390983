package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/invadm/invadm/internal/api"
)

// confirmState holds the pending delete awaiting user confirmation.
type confirmState struct {
	Item   api.Item
	Cursor int // 0 = cancel, 1 = delete
}

func newConfirmState(item api.Item) confirmState {
	return confirmState{Item: item, Cursor: 0}
}

// View renders the delete confirmation overlay.
func (c confirmState) View(width int) string {
	var b strings.Builder

	title := lipgloss.NewStyle().
		Foreground(WarningColor).
		Bold(true).
		Render("⚠ Delete Item")
	b.WriteString(title)
	b.WriteString("\n\n")

	b.WriteString(fmt.Sprintf("Delete %s?\n", c.Item.FormatCompact()))
	b.WriteString(SubtitleStyle.Render("This permanently removes the item from the backend."))
	b.WriteString("\n\n")

	b.WriteString(renderButton("Cancel", c.Cursor == 0))
	b.WriteString("   ")
	b.WriteString(renderButton("Delete", c.Cursor == 1))
	b.WriteString("\n\n")

	b.WriteString(HelpStyle.Render("←/→ choose • enter confirm • esc cancel • y delete"))

	boxWidth := SafeModalWidth(56, width)
	return ModalBoxStyle.BorderForeground(WarningColor).Width(boxWidth).Render(b.String())
}

func renderButton(label string, selected bool) string {
	style := lipgloss.NewStyle().Padding(0, 2).Foreground(TextColor)
	if selected {
		style = style.Bold(true).Foreground(lipgloss.Color("#000000")).Background(WarningColor)
	}
	return style.Render(label)
}
