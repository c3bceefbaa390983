package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/invadm/invadm/internal/api"
)

// envState drives the backend environment overlay.
type envState struct {
	Loading bool
	Env     api.Environment
	ErrMsg  string
}

func newEnvState() envState {
	return envState{Loading: true}
}

// View renders the environment overlay.
func (e envState) View(width int) string {
	var b strings.Builder

	b.WriteString(FocusedInputStyle.Render("Backend Environment"))
	b.WriteString("\n\n")

	switch {
	case e.Loading:
		b.WriteString(SubtitleStyle.Render("Fetching environment..."))
		b.WriteString("\n")

	case e.ErrMsg != "":
		b.WriteString(ModalErrorStyle.Render("✗ " + e.ErrMsg))
		b.WriteString("\n")

	case len(e.Env) == 0:
		b.WriteString(SubtitleStyle.Render("(empty environment report)"))
		b.WriteString("\n")

	default:
		keys := make([]string, 0, len(e.Env))
		for k := range e.Env {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		for _, k := range keys {
			b.WriteString(EnvKeyStyle.Render(fmt.Sprintf("%-20s", k)))
			b.WriteString(EnvValueStyle.Render(formatEnvValue(e.Env[k])))
			b.WriteString("\n")
		}
	}

	b.WriteString("\n")
	b.WriteString(HelpStyle.Render("esc close"))

	boxWidth := SafeModalWidth(72, width)
	return ModalBoxStyle.Width(boxWidth).Render(b.String())
}

// formatEnvValue flattens nested report values into a single line.
func formatEnvValue(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case map[string]any:
		keys := make([]string, 0, len(val))
		for k := range val {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		parts := make([]string, 0, len(keys))
		for _, k := range keys {
			parts = append(parts, fmt.Sprintf("%s=%v", k, val[k]))
		}
		return strings.Join(parts, " ")
	default:
		return fmt.Sprintf("%v", v)
	}
}
