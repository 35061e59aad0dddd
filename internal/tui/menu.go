package tui

import (
	"fmt"
	"io"

	"github.com/blackwell-systems/pagectl/internal/actions"
	"github.com/blackwell-systems/pagectl/internal/tui/delegate"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/lipgloss"
)

// MenuItem is one evaluated entry of the actions menu.
type MenuItem struct {
	actions.State
}

// FilterValue implements list.Item
func (m MenuItem) FilterValue() string { return m.Label }

func renderMenuItem(w io.Writer, item list.Item, focused bool) {
	mi, ok := item.(MenuItem)
	if !ok {
		return
	}
	label := fmt.Sprintf("%-24s", mi.Label)
	dim := lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	switch {
	case focused && mi.Enabled:
		_, _ = fmt.Fprint(w, StyleHighlight.Render("› "+label))
	case focused:
		_, _ = fmt.Fprint(w, dim.Render("› "+label+" (disabled)"))
	case mi.Enabled:
		_, _ = fmt.Fprint(w, "  "+StyleNormal.Render(label))
	default:
		_, _ = fmt.Fprint(w, "  "+dim.Render(label))
	}
}

func newMenu(states []actions.State) list.Model {
	items := make([]list.Item, len(states))
	for i, s := range states {
		items[i] = MenuItem{State: s}
	}
	l := list.New(items, delegate.New(renderMenuItem), 36, len(items)+4)
	l.Title = "Actions"
	l.SetShowStatusBar(false)
	l.SetFilteringEnabled(false)
	l.SetShowHelp(false)
	l.SetShowPagination(false)
	l.Styles.Title = StyleHeader
	return l
}
