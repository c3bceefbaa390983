package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/invadm/invadm/internal/api"
)

// pasteState drives the pastebin overlay: enter text, send it to the
// backend, display the returned URL.
type pasteState struct {
	Input      textinput.Model
	Submitting bool
	Result     *api.Paste // set once the backend answered
	ErrMsg     string
}

func newPasteState() pasteState {
	input := textinput.New()
	input.Placeholder = "Text to share"
	input.CharLimit = 2048
	input.Width = 50
	input.Focus()
	return pasteState{Input: input}
}

// View renders the paste overlay.
func (p pasteState) View(width int) string {
	var b strings.Builder

	b.WriteString(FocusedInputStyle.Render("Share via Pastebin"))
	b.WriteString("\n\n")

	if p.Result != nil {
		b.WriteString(RenderSuccess("Paste created"))
		b.WriteString("\n\n")
		b.WriteString(EnvKeyStyle.Render("URL:      "))
		b.WriteString(EnvValueStyle.Render(p.Result.URL))
		b.WriteString("\n")
		if p.Result.ExpiresAt != "" {
			b.WriteString(EnvKeyStyle.Render("Expires:  "))
			b.WriteString(EnvValueStyle.Render(p.Result.ExpiresAt))
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(HelpStyle.Render("esc close"))
	} else {
		b.WriteString(p.Input.View())
		b.WriteString("\n")

		if p.ErrMsg != "" {
			b.WriteString("\n")
			b.WriteString(ModalErrorStyle.Render("✗ " + p.ErrMsg))
			b.WriteString("\n")
		}

		b.WriteString("\n")
		if p.Submitting {
			b.WriteString(SubtitleStyle.Render("Uploading..."))
		} else {
			b.WriteString(HelpStyle.Render("enter share • esc cancel"))
		}
	}

	boxWidth := SafeModalWidth(64, width)
	return ModalBoxStyle.Width(boxWidth).Render(b.String())
}
