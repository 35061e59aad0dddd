package tui

import (
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ClearActiveCmdMsg clears the active command highlight in the footer.
type ClearActiveCmdMsg struct{}

// ShortcutEntry pairs a trigger key with the display label for footer highlighting.
type ShortcutEntry struct {
	Key   string // trigger key to match against activeCmd (empty = no highlight)
	Label string // display text
}

// HighlightCmd returns a 500ms tick command to clear the active command highlight.
// Callers set activeCmd on the model before returning:
//
//	m.activeCmd = "d"
//	return m, tui.HighlightCmd()
func HighlightCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(time.Time) tea.Msg {
		return ClearActiveCmdMsg{}
	})
}

// Shortcuts converts key bindings to footer entries.
func Shortcuts(bindings []key.Binding) []ShortcutEntry {
	out := make([]ShortcutEntry, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		k := ""
		if keys := b.Keys(); len(keys) > 0 {
			k = keys[0]
		}
		out = append(out, ShortcutEntry{Key: k, Label: h.Key + " " + h.Desc})
	}
	return out
}

// RenderFooterBar renders a footer bar with shortcut labels.
// The shortcut matching activeCmd is rendered with StyleHighlight; others are dim.
func RenderFooterBar(shortcuts []ShortcutEntry, activeCmd string) string {
	dimStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color("240"))

	parts := make([]string, len(shortcuts))
	for i, sc := range shortcuts {
		if activeCmd != "" && sc.Key == activeCmd {
			parts[i] = StyleHighlight.Render("[ " + sc.Label + " ]")
		} else {
			parts[i] = dimStyle.Render(sc.Label)
		}
	}

	return lipgloss.NewStyle().Padding(0, 1).Render(strings.Join(parts, dimStyle.Render(" • ")))
}
